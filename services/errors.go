package services

import "errors"

var (
	// ErrUsernameTaken is returned when registering a username that already exists.
	ErrUsernameTaken = errors.New("username already exists")
	// ErrInvalidCredentials is returned on login with a bad username or password.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidToken covers malformed, forged and expired tokens, and tokens
	// without a subject claim.
	ErrInvalidToken = errors.New("invalid token")
	// ErrUserNotFound is returned when a token's subject no longer exists.
	ErrUserNotFound = errors.New("user not found")
	// ErrQuizNotFound indicates the referenced quiz does not exist.
	ErrQuizNotFound = errors.New("quiz not found")
	// ErrAttemptNotFound is returned when reviewing a quiz the user never attempted.
	ErrAttemptNotFound = errors.New("no attempt found for this quiz")
	// ErrAlreadyStarted is returned on a second start for the same user and quiz.
	ErrAlreadyStarted = errors.New("quiz already started or attempted")
	// ErrNotStarted is returned on submit without a prior start.
	ErrNotStarted = errors.New("quiz not started")
	// ErrTimeExpired is returned when a submission arrives after the quiz duration.
	ErrTimeExpired = errors.New("quiz time has expired")
	// ErrAlreadySubmitted is returned on a second submission for the same attempt.
	ErrAlreadySubmitted = errors.New("quiz already submitted")
	// ErrInvalidInput marks client input rejected before it reaches the data layer.
	ErrInvalidInput = errors.New("invalid input")
)
