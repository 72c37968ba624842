package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/PranjalBarnwal/quizApp/models"
)

func TestRegisterDuplicateUsername(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, "test-secret", time.Hour)
	ctx := context.Background()

	req := &RegisterRequest{Username: "alice", Password: "secret"}
	if _, err := svc.Register(ctx, req); err != nil {
		t.Fatalf("first register: %v", err)
	}

	_, err := svc.Register(ctx, req)
	if !errors.Is(err, ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}
}

func TestLogin(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, "test-secret", time.Hour)
	ctx := context.Background()

	if _, err := svc.Register(ctx, &RegisterRequest{Username: "alice", Password: "secret"}); err != nil {
		t.Fatalf("register: %v", err)
	}

	tests := []struct {
		name     string
		username string
		password string
		wantErr  error
	}{
		{"valid credentials", "alice", "secret", nil},
		{"wrong password", "alice", "wrong", ErrInvalidCredentials},
		{"unknown user", "bob", "secret", ErrInvalidCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := svc.Login(ctx, &LoginRequest{Username: tt.username, Password: tt.password})
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("login: %v", err)
			}
			if token == "" {
				t.Fatal("expected a token")
			}
		})
	}
}

func TestAuthenticate(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, "test-secret", time.Hour)
	ctx := context.Background()

	if _, err := svc.Register(ctx, &RegisterRequest{Username: "alice", Password: "secret"}); err != nil {
		t.Fatalf("register: %v", err)
	}
	token, err := svc.Login(ctx, &LoginRequest{Username: "alice", Password: "secret"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	user, err := svc.Authenticate(ctx, token)
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if user.Username != "alice" {
		t.Fatalf("expected alice, got %s", user.Username)
	}

	if _, err := svc.Authenticate(ctx, "not-a-token"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for garbage, got %v", err)
	}

	// Token signed with a different secret must be rejected.
	other := NewAuthService(db, "other-secret", time.Hour)
	forged, err := other.Login(ctx, &LoginRequest{Username: "alice", Password: "secret"})
	if err != nil {
		t.Fatalf("login with other secret: %v", err)
	}
	if _, err := svc.Authenticate(ctx, forged); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for bad signature, got %v", err)
	}
}

func TestAuthenticateExpiredToken(t *testing.T) {
	db := newTestDB(t)
	// Negative TTL issues an already-expired token.
	svc := NewAuthService(db, "test-secret", -time.Minute)
	ctx := context.Background()

	if _, err := svc.Register(ctx, &RegisterRequest{Username: "alice", Password: "secret"}); err != nil {
		t.Fatalf("register: %v", err)
	}
	token, err := svc.Login(ctx, &LoginRequest{Username: "alice", Password: "secret"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	if _, err := svc.Authenticate(ctx, token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestAuthenticateDeletedUser(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, "test-secret", time.Hour)
	ctx := context.Background()

	if _, err := svc.Register(ctx, &RegisterRequest{Username: "alice", Password: "secret"}); err != nil {
		t.Fatalf("register: %v", err)
	}
	token, err := svc.Login(ctx, &LoginRequest{Username: "alice", Password: "secret"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	if err := db.Where("username = ?", "alice").Delete(&models.User{}).Error; err != nil {
		t.Fatalf("delete user: %v", err)
	}

	if _, err := svc.Authenticate(ctx, token); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

// A demotion must take effect on the next request even though the old token
// still carries is_admin=true.
func TestAuthenticateReflectsFreshAdminFlag(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, "test-secret", time.Hour)
	ctx := context.Background()

	if _, err := svc.Register(ctx, &RegisterRequest{Username: "root", Password: "secret", IsAdmin: true}); err != nil {
		t.Fatalf("register: %v", err)
	}
	token, err := svc.Login(ctx, &LoginRequest{Username: "root", Password: "secret"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	user, err := svc.Authenticate(ctx, token)
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if !user.IsAdmin {
		t.Fatal("expected admin before demotion")
	}

	err = db.Model(&models.User{}).Where("username = ?", "root").Update("is_admin", false).Error
	if err != nil {
		t.Fatalf("demote: %v", err)
	}

	user, err = svc.Authenticate(ctx, token)
	if err != nil {
		t.Fatalf("authenticate after demotion: %v", err)
	}
	if user.IsAdmin {
		t.Fatal("expected admin flag to come from the user row, not the token claim")
	}
}
