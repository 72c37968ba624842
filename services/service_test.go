package services

import (
	"context"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/PranjalBarnwal/quizApp/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	// A single connection keeps every query on the same in-memory database.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("db handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	err = db.AutoMigrate(
		&models.User{},
		&models.Quiz{},
		&models.Question{},
		&models.QuestionOption{},
		&models.QuizAttempt{},
		&models.AttemptAnswer{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func registerUser(t *testing.T, db *gorm.DB, username string, isAdmin bool) *models.User {
	t.Helper()
	svc := NewAuthService(db, "test-secret", time.Hour)
	user, err := svc.Register(context.Background(), &RegisterRequest{
		Username: username,
		Password: "password123",
		IsAdmin:  isAdmin,
	})
	if err != nil {
		t.Fatalf("register %s: %v", username, err)
	}
	return user
}

func createQuiz(t *testing.T, db *gorm.DB, totalScore, duration int) *models.Quiz {
	t.Helper()
	svc := NewQuizService(db, nil)
	quiz, err := svc.CreateQuiz(context.Background(), &CreateQuizRequest{
		Title:      "Test quiz",
		TotalScore: totalScore,
		Duration:   duration,
	})
	if err != nil {
		t.Fatalf("create quiz: %v", err)
	}
	return quiz
}

func addQuestion(t *testing.T, db *gorm.DB, quizID uint, text string, options []string, correct int) *models.Question {
	t.Helper()
	svc := NewQuizService(db, nil)
	question, err := svc.AddQuestion(context.Background(), quizID, &AddQuestionRequest{
		Text:          text,
		Options:       options,
		CorrectOption: &correct,
	})
	if err != nil {
		t.Fatalf("add question: %v", err)
	}
	return question
}

// fakeClock lets tests move time forward between start and submit.
type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}
