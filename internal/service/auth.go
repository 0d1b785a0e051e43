package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ndemidov/storefront/internal/hash"
	"github.com/ndemidov/storefront/internal/logging"
	"github.com/ndemidov/storefront/internal/models"
	"github.com/ndemidov/storefront/internal/repo"
	"github.com/ndemidov/storefront/internal/tokens"
)

const minPasswordLen = 6

// AuthService is the credential store: it owns registration, login and
// session token verification. Passwords are stored as bcrypt hashes,
// never plaintext.
type AuthService struct {
	Repo      *repo.GormRepo
	JWTSecret []byte
	Producer  EventPublisher
}

func (s *AuthService) Register(ctx context.Context, name, email, password string) (*models.User, string, error) {
	l := logging.FromContext(ctx).With("svc", "auth.register")

	// The HTTP layer validates too; the store still rejects bad input
	// defensively.
	if name == "" || !strings.Contains(email, "@") {
		return nil, "", fmt.Errorf("name and email required: %w", ErrInvalidInput)
	}
	if len(password) < minPasswordLen {
		return nil, "", fmt.Errorf("password must be at least %d characters: %w", minPasswordLen, ErrInvalidInput)
	}

	pwHash, err := hash.HashPassword(password)
	if err != nil {
		l.Error("register_failed", "reason", "cannot hash password", "error", err)
		return nil, "", err
	}

	user := models.User{
		Name:         name,
		Email:        email,
		PasswordHash: pwHash,
	}
	if err := s.Repo.CreateUserIfNotExists(ctx, &user); err != nil {
		if errors.Is(err, repo.ErrUserExists) {
			return nil, "", fmt.Errorf("%s: %w", email, ErrDuplicateEmail)
		}
		l.Error("register_failed", "error", err)
		return nil, "", err
	}

	token, err := tokens.NewSessionToken(user.ID, s.JWTSecret)
	if err != nil {
		l.Error("register_failed", "reason", "cannot sign token", "error", err)
		return nil, "", err
	}

	s.publish(ctx, user.ID, map[string]any{
		"type":    "user_registered",
		"user_id": user.ID,
		"email":   user.Email,
	})

	l.Info("user_registered", "user_id", user.ID)
	return &user, token, nil
}

// Login returns the same ErrInvalidCredentials for an unknown email and
// for a hash mismatch, so callers cannot enumerate registered users.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	l := logging.FromContext(ctx).With("svc", "auth.login")

	user, err := s.Repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		l.Error("login_failed", "error", err)
		return nil, "", err
	}
	if !hash.CheckPassword(user.PasswordHash, password) {
		return nil, "", ErrInvalidCredentials
	}

	token, err := tokens.NewSessionToken(user.ID, s.JWTSecret)
	if err != nil {
		l.Error("login_failed", "reason", "cannot sign token", "error", err)
		return nil, "", err
	}

	s.publish(ctx, user.ID, map[string]any{
		"type":    "user_logged_in",
		"user_id": user.ID,
	})

	l.Info("user_logged_in", "user_id", user.ID)
	return user, token, nil
}

// Verify resolves a bearer token to a user id. A malformed token, a bad
// signature and a subject that no longer resolves all fail the same way.
func (s *AuthService) Verify(ctx context.Context, tokenStr string) (uuid.UUID, error) {
	claims, err := tokens.SessionClaimsFromToken(tokenStr, s.JWTSecret)
	if err != nil {
		return uuid.Nil, fmt.Errorf("parse token: %w", ErrUnauthenticated)
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, fmt.Errorf("token subject: %w", ErrUnauthenticated)
	}

	if _, err := s.Repo.GetUserByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return uuid.Nil, fmt.Errorf("unknown user: %w", ErrUnauthenticated)
		}
		return uuid.Nil, err
	}

	return userID, nil
}

func (s *AuthService) publish(ctx context.Context, userID uuid.UUID, event map[string]any) {
	if s.Producer == nil {
		return
	}
	if err := s.Producer.PublishEvent(ctx, "user_events", userID.String(), event); err != nil {
		logging.FromContext(ctx).Warn("kafka publish failed", "topic", "user_events", "error", err)
	}
}
