package service

import (
	"errors"

	"daily_diet/internal/models"
)

// Domain errors for ownership decisions. The two must stay distinct: a
// missing meal maps to 404 at the boundary, a foreign one to 401.
var (
	ErrMealNotFound = errors.New("meal not found")
	ErrUnauthorized = errors.New("unauthorized")
)

// OwnershipGuard decides whether an identity may act on a meal. It must run
// before any single-resource mutation. Collection reads don't use it; they
// filter the query by owner instead, which never leaks that a foreign meal
// exists.
type OwnershipGuard struct{}

// Authorize returns nil when owner may mutate meal, ErrMealNotFound when the
// meal is absent, and ErrUnauthorized when it belongs to someone else.
func (OwnershipGuard) Authorize(owner models.Identity, meal *models.Meal) error {
	if meal == nil {
		return ErrMealNotFound
	}
	if meal.UserID != owner.ID {
		return ErrUnauthorized
	}
	return nil
}
