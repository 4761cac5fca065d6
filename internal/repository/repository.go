package repository

import (
	"context"
	"database/sql"

	"daily_diet/internal/models"
)

// Users persists accounts and their single active session token.
type Users interface {
	Create(ctx context.Context, u models.User) error
	// GetByEmail returns (nil, nil) when no user has the email.
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// GetBySessionID returns (nil, nil) when the token matches no user.
	GetBySessionID(ctx context.Context, sessionID string) (*models.User, error)
	// ReplaceSession overwrites the stored token for the user. oldSessionID is
	// the token being invalidated ("" if none); decorators use it to drop
	// cached lookups so a replaced token stops resolving immediately.
	ReplaceSession(ctx context.Context, userID, oldSessionID, newSessionID string) error
}

// Meals persists meal records. Reads scoped by owner never reveal whether a
// foreign meal exists.
type Meals interface {
	Create(ctx context.Context, m models.Meal) error
	// GetByID is unscoped; the caller is expected to authorize ownership.
	// Returns (nil, nil) when the meal does not exist.
	GetByID(ctx context.Context, id string) (*models.Meal, error)
	// GetOwned returns (nil, nil) when the meal does not exist or belongs to
	// someone else.
	GetOwned(ctx context.Context, ownerID, id string) (*models.Meal, error)
	// ListByOwner orders by date, ties broken by insertion order.
	ListByOwner(ctx context.Context, ownerID string, newestFirst bool) ([]models.Meal, error)
	Update(ctx context.Context, m models.Meal) error
	Delete(ctx context.Context, id string) error
}

type Repository struct {
	Users Users
	Meals Meals
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		Users: NewUserSQLite(db),
		Meals: NewMealSQLite(db),
	}
}
