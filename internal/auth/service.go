// Package auth registers and authenticates users and issues bearer tokens.
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/starford/jotter/internal/apperr"
	"github.com/starford/jotter/internal/models"
	"github.com/starford/jotter/internal/storage"
)

// DefaultTokenTTL is how long an issued token stays valid.
const DefaultTokenTTL = 2 * time.Hour

// Config holds token and hashing settings.
type Config struct {
	Secret     string
	TokenTTL   time.Duration
	BcryptCost int
}

// Service implements registration, login and token verification.
type Service struct {
	users storage.UserStore
	cfg   Config
	now   func() time.Time
}

// NewService creates a new auth service.
func NewService(users storage.UserStore, cfg Config) *Service {
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = DefaultTokenTTL
	}
	if cfg.BcryptCost == 0 {
		cfg.BcryptCost = bcrypt.DefaultCost
	}
	return &Service{users: users, cfg: cfg, now: time.Now}
}

type credentials struct {
	Username string
	Password string
}

func (c credentials) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Username, validation.Required),
		validation.Field(&c.Password, validation.Required),
	)
}

// Register creates a user and returns a token for it.
func (s *Service) Register(ctx context.Context, username, password string) (string, error) {
	if err := (credentials{Username: username, Password: password}).Validate(); err != nil {
		return "", fmt.Errorf("%w: %v", apperr.ErrValidation, err)
	}
	if _, err := s.users.UserByUsername(ctx, username); err == nil {
		return "", apperr.ErrAlreadyExists
	} else if !errors.Is(err, apperr.ErrNotFound) {
		return "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cfg.BcryptCost)
	if err != nil {
		return "", fmt.Errorf("auth: hash password: %w", err)
	}
	u := &models.User{
		ID:           storage.NewID(),
		Username:     username,
		PasswordHash: string(hash),
		CreatedAt:    s.now().UTC().Truncate(time.Millisecond),
	}
	// The store's unique index still guards against a concurrent registration.
	if err := s.users.CreateUser(ctx, u); err != nil {
		return "", err
	}
	return s.issue(u.ID, u.Username)
}

// Login verifies the password and returns a fresh token.
func (s *Service) Login(ctx context.Context, username, password string) (string, error) {
	if err := (credentials{Username: username, Password: password}).Validate(); err != nil {
		return "", fmt.Errorf("%w: %v", apperr.ErrValidation, err)
	}
	u, err := s.users.UserByUsername(ctx, username)
	if errors.Is(err, apperr.ErrNotFound) {
		return "", apperr.ErrInvalidCredentials
	}
	if err != nil {
		return "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return "", apperr.ErrInvalidCredentials
	}
	return s.issue(u.ID, u.Username)
}

// Authenticate verifies a bearer token.
func (s *Service) Authenticate(token string) (Identity, error) {
	claims, err := s.parse(token)
	if err != nil {
		return Identity{}, fmt.Errorf("%w: %v", apperr.ErrUnauthenticated, err)
	}
	return Identity{UserID: claims.UserID, Username: claims.Username}, nil
}

// UserByUsername resolves a registered user.
func (s *Service) UserByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.users.UserByUsername(ctx, username)
}
