package models

import (
	"time"
)

// AttemptAnswer persists which option the user picked for a question, written
// in the same transaction as the attempt's score so the review endpoint can
// read real selections back. SelectedOptionID is nil when the user gave no
// valid answer for the question.
type AttemptAnswer struct {
	ID               uint      `json:"id" gorm:"primaryKey"`
	AttemptID        uint      `json:"attempt_id" gorm:"not null;index"`
	QuestionID       uint      `json:"question_id" gorm:"not null"`
	SelectedOptionID *uint     `json:"selected_option_id"`
	CreatedAt        time.Time `json:"created_at"`

	// Relationships
	Attempt QuizAttempt `json:"attempt,omitempty"`
}
