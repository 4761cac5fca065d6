package handlers

import (
	"context"

	"daily_diet/internal/models"
	"daily_diet/internal/service"
)

// Function-backed service mocks for handler tests. Unset functions fall back
// to zero values so tests only stub what they assert on.

type mockAccounts struct {
	registerFn func(ctx context.Context, name, email string) (models.User, error)
}

func (m *mockAccounts) Register(ctx context.Context, name, email string) (models.User, error) {
	if m.registerFn != nil {
		return m.registerFn(ctx, name, email)
	}
	return models.User{}, nil
}

type mockSessions struct {
	issueFn   func(ctx context.Context, email string) (string, error)
	resolveFn func(ctx context.Context, token string) (models.Identity, error)
}

func (m *mockSessions) Issue(ctx context.Context, email string) (string, error) {
	if m.issueFn != nil {
		return m.issueFn(ctx, email)
	}
	return "", nil
}

func (m *mockSessions) Resolve(ctx context.Context, token string) (models.Identity, error) {
	if m.resolveFn != nil {
		return m.resolveFn(ctx, token)
	}
	return models.Identity{}, nil
}

type mockMeals struct {
	createFn func(ctx context.Context, owner models.Identity, in service.MealInput) (models.Meal, error)
	updateFn func(ctx context.Context, owner models.Identity, id string, in service.MealInput) error
	deleteFn func(ctx context.Context, owner models.Identity, id string) error
	getFn    func(ctx context.Context, owner models.Identity, id string) (models.Meal, error)
	listFn   func(ctx context.Context, owner models.Identity) ([]models.Meal, error)
}

func (m *mockMeals) Create(ctx context.Context, owner models.Identity, in service.MealInput) (models.Meal, error) {
	if m.createFn != nil {
		return m.createFn(ctx, owner, in)
	}
	return models.Meal{}, nil
}

func (m *mockMeals) Update(ctx context.Context, owner models.Identity, id string, in service.MealInput) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, owner, id, in)
	}
	return nil
}

func (m *mockMeals) Delete(ctx context.Context, owner models.Identity, id string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, owner, id)
	}
	return nil
}

func (m *mockMeals) Get(ctx context.Context, owner models.Identity, id string) (models.Meal, error) {
	if m.getFn != nil {
		return m.getFn(ctx, owner, id)
	}
	return models.Meal{}, nil
}

func (m *mockMeals) List(ctx context.Context, owner models.Identity) ([]models.Meal, error) {
	if m.listFn != nil {
		return m.listFn(ctx, owner)
	}
	return nil, nil
}

type mockAdherence struct {
	metricsFn func(ctx context.Context, owner models.Identity) (models.AdherenceMetrics, error)
}

func (m *mockAdherence) Metrics(ctx context.Context, owner models.Identity) (models.AdherenceMetrics, error) {
	if m.metricsFn != nil {
		return m.metricsFn(ctx, owner)
	}
	return models.AdherenceMetrics{}, nil
}

// resolveAs returns a Sessions mock that resolves every token to the given
// identity, for tests that only care about what happens behind the middleware.
func resolveAs(identity models.Identity) *mockSessions {
	return &mockSessions{
		resolveFn: func(ctx context.Context, token string) (models.Identity, error) {
			return identity, nil
		},
	}
}
