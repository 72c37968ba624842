package services

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/PranjalBarnwal/quizApp/models"
)

type QuizService struct {
	db    *gorm.DB
	cache *QuizCache // nil disables caching
}

func NewQuizService(db *gorm.DB, cache *QuizCache) *QuizService {
	return &QuizService{db: db, cache: cache}
}

type CreateQuizRequest struct {
	Title      string `json:"title" binding:"required"`
	TotalScore int    `json:"total_score" binding:"required"`
	Duration   int    `json:"duration" binding:"required"` // minutes
}

type AddQuestionRequest struct {
	Text          string   `json:"text" binding:"required"`
	Options       []string `json:"options" binding:"required,min=2"`
	CorrectOption *int     `json:"correct_option" binding:"required"`
}

func (s *QuizService) CreateQuiz(ctx context.Context, req *CreateQuizRequest) (*models.Quiz, error) {
	if req.TotalScore <= 0 {
		return nil, fmt.Errorf("%w: total_score must be positive", ErrInvalidInput)
	}
	if req.Duration <= 0 {
		return nil, fmt.Errorf("%w: duration must be positive", ErrInvalidInput)
	}

	quiz := models.Quiz{
		Title:      req.Title,
		TotalScore: req.TotalScore,
		Duration:   req.Duration,
	}

	if err := s.db.WithContext(ctx).Create(&quiz).Error; err != nil {
		return nil, err
	}

	s.invalidateCache(ctx)
	return &quiz, nil
}

// AddQuestion creates a question with one option row per entry; the option at
// CorrectOption is the single correct one. The index is validated here so the
// exactly-one-correct invariant holds by construction.
func (s *QuizService) AddQuestion(ctx context.Context, quizID uint, req *AddQuestionRequest) (*models.Question, error) {
	if len(req.Options) < 2 {
		return nil, fmt.Errorf("%w: at least two options are required", ErrInvalidInput)
	}
	if req.CorrectOption == nil || *req.CorrectOption < 0 || *req.CorrectOption >= len(req.Options) {
		return nil, fmt.Errorf("%w: correct_option is out of range", ErrInvalidInput)
	}

	var quiz models.Quiz
	if err := s.db.WithContext(ctx).First(&quiz, quizID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuizNotFound
		}
		return nil, err
	}

	question := models.Question{
		QuizID: quizID,
		Text:   req.Text,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&question).Error; err != nil {
			return err
		}

		for index, text := range req.Options {
			option := models.QuestionOption{
				QuestionID: question.ID,
				OptionText: text,
				IsCorrect:  index == *req.CorrectOption,
			}
			if err := tx.Create(&option).Error; err != nil {
				return err
			}
			question.Options = append(question.Options, option)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidateCache(ctx)
	return &question, nil
}

// ListQuizzes returns every quiz, without questions so correct answers are
// never exposed through listing. Served through the redis cache when enabled.
func (s *QuizService) ListQuizzes(ctx context.Context) ([]models.Quiz, error) {
	if s.cache == nil {
		return s.loadQuizzes(ctx)
	}
	return s.cache.ListQuizzes(ctx, s.loadQuizzes)
}

func (s *QuizService) loadQuizzes(ctx context.Context) ([]models.Quiz, error) {
	var quizzes []models.Quiz
	err := s.db.WithContext(ctx).Order("id").Find(&quizzes).Error
	return quizzes, err
}

func (s *QuizService) invalidateCache(ctx context.Context) {
	if s.cache != nil {
		s.cache.Invalidate(ctx)
	}
}
