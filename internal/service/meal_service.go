package service

import (
	"context"
	"fmt"
	"time"

	"daily_diet/internal/models"
	"daily_diet/internal/repository"

	"github.com/google/uuid"
)

// MealInput is the validated payload for creating or replacing a meal.
type MealInput struct {
	Name          string
	Description   string
	Date          time.Time
	IsOnDailyDiet bool
}

// MealService implements owner-scoped meal CRUD. Update and Delete fetch the
// meal unscoped and run it through the ownership guard; Get and List scope
// the query by owner instead.
type MealService struct {
	meals repository.Meals
	guard OwnershipGuard
}

func NewMealService(meals repository.Meals) *MealService {
	return &MealService{meals: meals}
}

var _ Meals = (*MealService)(nil)

func (s *MealService) Create(ctx context.Context, owner models.Identity, in MealInput) (models.Meal, error) {
	now := time.Now().UTC()
	m := models.Meal{
		ID:            uuid.NewString(),
		UserID:        owner.ID,
		Name:          in.Name,
		Description:   in.Description,
		Date:          in.Date.UTC(),
		IsOnDailyDiet: in.IsOnDailyDiet,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.meals.Create(ctx, m); err != nil {
		return models.Meal{}, fmt.Errorf("create meal: %w", err)
	}
	return m, nil
}

// Update replaces the meal's payload. Owner and CreatedAt are untouched;
// ownership is immutable after creation.
func (s *MealService) Update(ctx context.Context, owner models.Identity, id string, in MealInput) error {
	cur, err := s.meals.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("fetch meal for update: %w", err)
	}
	if err := s.guard.Authorize(owner, cur); err != nil {
		return err
	}

	cur.Name = in.Name
	cur.Description = in.Description
	cur.Date = in.Date.UTC()
	cur.IsOnDailyDiet = in.IsOnDailyDiet
	cur.UpdatedAt = time.Now().UTC()

	if err := s.meals.Update(ctx, *cur); err != nil {
		return fmt.Errorf("update meal: %w", err)
	}
	return nil
}

func (s *MealService) Delete(ctx context.Context, owner models.Identity, id string) error {
	cur, err := s.meals.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("fetch meal for delete: %w", err)
	}
	if err := s.guard.Authorize(owner, cur); err != nil {
		return err
	}

	if err := s.meals.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete meal: %w", err)
	}
	return nil
}

// Get reads through an owner-scoped query, so a foreign meal is
// indistinguishable from a missing one.
func (s *MealService) Get(ctx context.Context, owner models.Identity, id string) (models.Meal, error) {
	m, err := s.meals.GetOwned(ctx, owner.ID, id)
	if err != nil {
		return models.Meal{}, fmt.Errorf("fetch meal: %w", err)
	}
	if m == nil {
		return models.Meal{}, ErrMealNotFound
	}
	return *m, nil
}

// List returns the owner's meals newest first, the presentation order of the
// listing endpoint. The analyzer consumes the opposite order; the two are
// independent concerns.
func (s *MealService) List(ctx context.Context, owner models.Identity) ([]models.Meal, error) {
	meals, err := s.meals.ListByOwner(ctx, owner.ID, true)
	if err != nil {
		return nil, fmt.Errorf("list meals: %w", err)
	}
	return meals, nil
}
