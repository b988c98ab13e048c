// Package users is the credential store: registration, password checks and
// profile lookup.
package users

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"gorm.io/gorm"

	"creator-finance/internal/apperr"
	"creator-finance/internal/auth"
	"creator-finance/internal/models"
)

const (
	MinPasswordLen = 6
	// bcrypt ignores everything past 72 bytes.
	maxPasswordBytes = 72
)

// Seeder populates sample data for a freshly registered user.
type Seeder interface {
	Seed(ctx context.Context, userID uint) error
}

type Store struct {
	db     *gorm.DB
	cost   int
	seeder Seeder
	log    *slog.Logger

	// compared against when the email is unknown so both failure paths cost a bcrypt check
	dummyHash string
}

// NewStore builds the store. seeder may be nil.
func NewStore(db *gorm.DB, bcryptCost int, seeder Seeder) (*Store, error) {
	dummy, err := auth.HashPassword("not-a-real-password", bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("prepare credential store: %w", err)
	}
	return &Store{
		db:        db,
		cost:      bcryptCost,
		seeder:    seeder,
		log:       slog.Default().With("component", "users"),
		dummyHash: dummy,
	}, nil
}

// Register creates a user with a hashed password. A seeding failure is
// logged and does not fail the registration.
func (s *Store) Register(ctx context.Context, name, email, password string) (*models.User, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" || email == "" || password == "" {
		return nil, apperr.Validation("all fields are required")
	}
	if utf8.RuneCountInString(password) < MinPasswordLen {
		return nil, apperr.Validation("password must be at least %d characters", MinPasswordLen)
	}
	if len(password) > maxPasswordBytes {
		return nil, apperr.Validation("password must be at most %d bytes", maxPasswordBytes)
	}

	var existing models.User
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&existing).Error
	switch {
	case err == nil:
		return nil, apperr.ErrDuplicateEmail
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, fmt.Errorf("lookup email: %w", err)
	}

	hash, err := auth.HashPassword(password, s.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := models.User{Name: name, Email: email, PasswordHash: hash}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		// lost a race with a concurrent registration
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	if s.seeder != nil {
		if err := s.seeder.Seed(ctx, user.ID); err != nil {
			s.log.WarnContext(ctx, "sample data not created", "user_id", user.ID, "error", err)
		}
	}
	return &user, nil
}

// Verify returns the user whose email and password match. Unknown email and
// wrong password fail with the same error.
func (s *Store) Verify(ctx context.Context, email, password string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("email = ?", strings.TrimSpace(email)).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		auth.CheckPassword(s.dummyHash, password)
		return nil, apperr.ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	if !auth.CheckPassword(user.PasswordHash, password) {
		return nil, apperr.ErrInvalidCredentials
	}
	return &user, nil
}

func (s *Store) Get(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("User not found")
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &user, nil
}
