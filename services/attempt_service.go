package services

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/PranjalBarnwal/quizApp/models"
)

// AttemptService drives the attempt lifecycle for a (user, quiz) pair:
// NotStarted -> InProgress -> Submitted, with Submitted terminal.
type AttemptService struct {
	db  *gorm.DB
	now func() time.Time
}

func NewAttemptService(db *gorm.DB) *AttemptService {
	return NewAttemptServiceWithClock(db, time.Now)
}

// NewAttemptServiceWithClock allows deterministic timestamps in tests.
func NewAttemptServiceWithClock(db *gorm.DB, now func() time.Time) *AttemptService {
	return &AttemptService{db: db, now: now}
}

type AnswerSubmission struct {
	QuestionID     uint  `json:"question_id" binding:"required"`
	SelectedOption *uint `json:"selected_option"` // nil means no answer
}

type SubmitRequest struct {
	Answers []AnswerSubmission `json:"answers"`
}

type AnswerBreakdown struct {
	QuestionID     uint  `json:"question_id"`
	SelectedOption *uint `json:"selected_option"`
	CorrectOption  *uint `json:"correct_option"`
}

type StartResult struct {
	QuizID   uint `json:"quiz_id"`
	Duration int  `json:"duration"`
}

type SubmitResult struct {
	Score   float64           `json:"score"`
	Answers []AnswerBreakdown `json:"answers"`
}

type ReviewResult struct {
	QuizID     uint              `json:"quiz_id"`
	TotalScore int               `json:"total_score"`
	UserScore  float64           `json:"user_score"`
	Answers    []AnswerBreakdown `json:"answers"`
}

// Start records the attempt's start time, the sole basis for later expiry
// checks. The insert is the uniqueness check: a duplicate (user, quiz) pair
// trips the composite unique index, so two concurrent starts cannot both
// succeed.
func (s *AttemptService) Start(ctx context.Context, userID, quizID uint) (*StartResult, error) {
	var quiz models.Quiz
	if err := s.db.WithContext(ctx).First(&quiz, quizID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuizNotFound
		}
		return nil, err
	}

	attempt := models.QuizAttempt{
		UserID:    userID,
		QuizID:    quizID,
		Score:     0,
		StartTime: s.now().UTC(),
	}

	if err := s.db.WithContext(ctx).Create(&attempt).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadyStarted
		}
		return nil, err
	}

	return &StartResult{QuizID: quiz.ID, Duration: quiz.Duration}, nil
}

// Submit scores the attempt and finalizes it. Scoring walks the quiz's own
// question set, so the denominator is always the quiz's question count:
// omitted questions score zero and duplicate or extraneous submitted entries
// are ignored. The score and the per-question selections are written in one
// transaction.
func (s *AttemptService) Submit(ctx context.Context, userID, quizID uint, req *SubmitRequest) (*SubmitResult, error) {
	var attempt models.QuizAttempt
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND quiz_id = ?", userID, quizID).
		First(&attempt).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotStarted
		}
		return nil, err
	}
	if attempt.SubmittedAt != nil {
		return nil, ErrAlreadySubmitted
	}

	quiz, err := s.loadQuizWithQuestions(ctx, quizID)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	if now.Sub(attempt.StartTime) > time.Duration(quiz.Duration)*time.Minute {
		return nil, ErrTimeExpired
	}

	// Last submitted entry per question wins; entries for unknown questions
	// are dropped below when walking the quiz's questions.
	submitted := make(map[uint]*uint, len(req.Answers))
	for _, answer := range req.Answers {
		submitted[answer.QuestionID] = answer.SelectedOption
	}

	breakdown := make([]AnswerBreakdown, 0, len(quiz.Questions))
	records := make([]models.AttemptAnswer, 0, len(quiz.Questions))
	correctCount := 0

	for _, question := range quiz.Questions {
		correctID := correctOptionID(question)
		selectedID := validSelection(question, submitted[question.ID])

		if selectedID != nil && correctID != nil && *selectedID == *correctID {
			correctCount++
		}

		breakdown = append(breakdown, AnswerBreakdown{
			QuestionID:     question.ID,
			SelectedOption: selectedID,
			CorrectOption:  correctID,
		})
		records = append(records, models.AttemptAnswer{
			AttemptID:        attempt.ID,
			QuestionID:       question.ID,
			SelectedOptionID: selectedID,
		})
	}

	score := 0.0
	if len(quiz.Questions) > 0 {
		score = float64(correctCount) / float64(len(quiz.Questions)) * float64(quiz.TotalScore)
	}

	if err := s.finalizeAttempt(ctx, attempt.ID, score, now, records); err != nil {
		return nil, err
	}

	return &SubmitResult{Score: score, Answers: breakdown}, nil
}

// finalizeAttempt flips the attempt into its terminal state. The update is
// conditional on submitted_at still being NULL, so when two submits race only
// one finalize lands; the loser sees zero affected rows and reports
// ErrAlreadySubmitted. Answer rows are written only after the guard succeeds,
// in the same transaction.
func (s *AttemptService) finalizeAttempt(ctx context.Context, attemptID uint, score float64, submittedAt time.Time, records []models.AttemptAnswer) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.QuizAttempt{}).
			Where("id = ? AND submitted_at IS NULL", attemptID).
			Updates(map[string]interface{}{"score": score, "submitted_at": submittedAt})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrAlreadySubmitted
		}

		if len(records) > 0 {
			if err := tx.Create(&records).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Response rebuilds the per-question breakdown from the selections persisted
// at submit time.
func (s *AttemptService) Response(ctx context.Context, userID, quizID uint) (*ReviewResult, error) {
	quiz, err := s.loadQuizWithQuestions(ctx, quizID)
	if err != nil {
		return nil, err
	}

	var attempt models.QuizAttempt
	err = s.db.WithContext(ctx).
		Where("user_id = ? AND quiz_id = ?", userID, quizID).
		First(&attempt).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAttemptNotFound
		}
		return nil, err
	}

	var answers []models.AttemptAnswer
	if err := s.db.WithContext(ctx).Where("attempt_id = ?", attempt.ID).Find(&answers).Error; err != nil {
		return nil, err
	}
	selections := make(map[uint]*uint, len(answers))
	for _, answer := range answers {
		selections[answer.QuestionID] = answer.SelectedOptionID
	}

	breakdown := make([]AnswerBreakdown, 0, len(quiz.Questions))
	for _, question := range quiz.Questions {
		breakdown = append(breakdown, AnswerBreakdown{
			QuestionID:     question.ID,
			SelectedOption: selections[question.ID],
			CorrectOption:  correctOptionID(question),
		})
	}

	return &ReviewResult{
		QuizID:     quiz.ID,
		TotalScore: quiz.TotalScore,
		UserScore:  attempt.Score,
		Answers:    breakdown,
	}, nil
}

func (s *AttemptService) loadQuizWithQuestions(ctx context.Context, quizID uint) (*models.Quiz, error) {
	var quiz models.Quiz
	err := s.db.WithContext(ctx).
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("questions.id")
		}).
		Preload("Questions.Options", func(db *gorm.DB) *gorm.DB {
			return db.Order("question_options.id")
		}).
		First(&quiz, quizID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuizNotFound
		}
		return nil, err
	}
	return &quiz, nil
}

func correctOptionID(question models.Question) *uint {
	for _, option := range question.Options {
		if option.IsCorrect {
			id := option.ID
			return &id
		}
	}
	return nil
}

// validSelection returns the selected option ID only if it names one of the
// question's own options; anything else counts as no answer.
func validSelection(question models.Question, selected *uint) *uint {
	if selected == nil {
		return nil
	}
	for _, option := range question.Options {
		if option.ID == *selected {
			id := option.ID
			return &id
		}
	}
	return nil
}
