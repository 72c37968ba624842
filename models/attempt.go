package models

import (
	"time"
)

// QuizAttempt records one user's single pass at a quiz. The composite unique
// index makes "start" an atomic insert-if-absent: a second start for the same
// (user, quiz) fails at the database instead of racing a lookup.
type QuizAttempt struct {
	ID          uint       `json:"id" gorm:"primaryKey"`
	UserID      uint       `json:"user_id" gorm:"not null;uniqueIndex:idx_attempt_user_quiz"`
	QuizID      uint       `json:"quiz_id" gorm:"not null;uniqueIndex:idx_attempt_user_quiz"`
	Score       float64    `json:"score" gorm:"not null;default:0"`
	StartTime   time.Time  `json:"start_time"`
	SubmittedAt *time.Time `json:"submitted_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	// Relationships
	User    User            `json:"user,omitempty"`
	Quiz    Quiz            `json:"quiz,omitempty"`
	Answers []AttemptAnswer `json:"answers,omitempty" gorm:"foreignKey:AttemptID"`
}
