package service

import (
	"context"

	"daily_diet/internal/models"
	"daily_diet/internal/repository"
)

// Accounts handles user registration.
type Accounts interface {
	Register(ctx context.Context, name, email string) (models.User, error)
}

// Sessions maps opaque session tokens to user identities. Issuing a new
// token for a user invalidates the previous one; there is no separate
// logout or revoke operation.
type Sessions interface {
	Issue(ctx context.Context, email string) (string, error)
	Resolve(ctx context.Context, token string) (models.Identity, error)
}

// Meals exposes owner-scoped meal CRUD. Mutations of a single meal are
// authorized against its owner before executing; reads filter by owner in
// the query itself.
type Meals interface {
	Create(ctx context.Context, owner models.Identity, in MealInput) (models.Meal, error)
	Update(ctx context.Context, owner models.Identity, id string, in MealInput) error
	Delete(ctx context.Context, owner models.Identity, id string) error
	Get(ctx context.Context, owner models.Identity, id string) (models.Meal, error)
	List(ctx context.Context, owner models.Identity) ([]models.Meal, error)
}

// Adherence computes aggregate diet-compliance metrics for one user.
type Adherence interface {
	Metrics(ctx context.Context, owner models.Identity) (models.AdherenceMetrics, error)
}

//
// Root Service aggregates all sub-services.
//

type Service struct {
	Accounts
	Sessions
	Meals
	Adherence
}

// NewService wires the repository layer into concrete services.
func NewService(repos *repository.Repository) *Service {
	return &Service{
		Accounts:  NewAccountService(repos.Users),
		Sessions:  NewSessionService(repos.Users),
		Meals:     NewMealService(repos.Meals),
		Adherence: NewAdherenceService(repos.Meals),
	}
}
