package service

import (
	"context"
	"errors"
	"fmt"

	"daily_diet/internal/models"
	"daily_diet/internal/repository"

	"github.com/google/uuid"
)

// Domain errors for session flows.
var (
	ErrUserNotFound    = errors.New("user not found")
	ErrUnauthenticated = errors.New("unauthenticated")
)

// SessionService is the session directory: it issues tokens and resolves
// them back to identities. One active token per user; Issue overwrites the
// stored token so the previous one stops resolving immediately. Concurrent
// Issue calls for the same user race last-writer-wins, so a token returned
// to a losing caller may never resolve.
type SessionService struct {
	users repository.Users
}

func NewSessionService(users repository.Users) *SessionService {
	return &SessionService{users: users}
}

var _ Sessions = (*SessionService)(nil)

// Issue authenticates by email and returns a fresh session token.
// The token is a v4 UUID: fixed-length, opaque, drawn from crypto/rand.
func (s *SessionService) Issue(ctx context.Context, email string) (string, error) {
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return "", fmt.Errorf("look up user for session: %w", err)
	}
	if u == nil {
		return "", ErrUserNotFound
	}

	token := uuid.NewString()
	if err := s.users.ReplaceSession(ctx, u.ID, u.SessionID, token); err != nil {
		return "", fmt.Errorf("replace session for user %q: %w", u.ID, err)
	}
	return token, nil
}

// Resolve maps a token to the identity holding it. An empty or unknown token
// yields ErrUnauthenticated. Tokens carry no expiry; they live until the
// next Issue for the same user.
func (s *SessionService) Resolve(ctx context.Context, token string) (models.Identity, error) {
	if token == "" {
		return models.Identity{}, ErrUnauthenticated
	}

	u, err := s.users.GetBySessionID(ctx, token)
	if err != nil {
		return models.Identity{}, fmt.Errorf("look up session: %w", err)
	}
	if u == nil {
		return models.Identity{}, ErrUnauthenticated
	}
	return models.Identity{ID: u.ID, Name: u.Name, Email: u.Email}, nil
}
