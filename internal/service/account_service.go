package service

import (
	"context"
	"fmt"
	"time"

	"daily_diet/internal/models"
	"daily_diet/internal/repository"

	"github.com/google/uuid"
)

// AccountService handles registration. No credentials are involved;
// authentication is session-token-only.
type AccountService struct {
	users repository.Users
}

func NewAccountService(users repository.Users) *AccountService {
	return &AccountService{users: users}
}

var _ Accounts = (*AccountService)(nil)

// Register creates a new user. A duplicate email fails at the storage layer
// and is passed through as a generic creation error, without naming the
// colliding field.
func (s *AccountService) Register(ctx context.Context, name, email string) (models.User, error) {
	now := time.Now().UTC()
	u := models.User{
		ID:        uuid.NewString(),
		Name:      name,
		Email:     email,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.users.Create(ctx, u); err != nil {
		return models.User{}, fmt.Errorf("create user: %w", err)
	}
	return u, nil
}
