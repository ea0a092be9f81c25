package user

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/openplanhq/trackd/internal/application/ports"
	"github.com/openplanhq/trackd/internal/domain"
	domerrors "github.com/openplanhq/trackd/internal/domain/errors"
)

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// CreateUserInput is the new user's email and optional display name.
type CreateUserInput struct {
	Email       string
	DisplayName string
}

// CreateUserResult returns the created user.
type CreateUserResult struct {
	User *domain.User
}

// CreateUser creates a user with a unique email.
type CreateUser struct {
	users ports.UserRepository
}

// NewCreateUser builds the use case.
func NewCreateUser(users ports.UserRepository) *CreateUser {
	return &CreateUser{users: users}
}

// Execute creates the user.
func (uc *CreateUser) Execute(ctx context.Context, input CreateUserInput) (*CreateUserResult, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if !emailRegex.MatchString(email) {
		return nil, domerrors.ErrValidation
	}
	existing, err := uc.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domerrors.ErrConflict
	}
	now := time.Now()
	u := &domain.User{
		ID:          domain.NewUserID(uuid.New()),
		Email:       email,
		DisplayName: strings.TrimSpace(input.DisplayName),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.users.Create(ctx, u); err != nil {
		return nil, err
	}
	return &CreateUserResult{User: u}, nil
}
