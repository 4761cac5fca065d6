package service

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"daily_diet/internal/models"
	"daily_diet/internal/repository"
)

// In-memory fakes implementing the repository interfaces, used by the
// service-level scenario tests.

type fakeUsers struct {
	mu    sync.Mutex
	users map[string]models.User // by ID
}

var _ repository.Users = (*fakeUsers)(nil)

func newFakeUsers() *fakeUsers {
	return &fakeUsers{users: make(map[string]models.User)}
}

func (f *fakeUsers) Create(_ context.Context, u models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.users {
		if existing.Email == u.Email {
			return fmt.Errorf("unique constraint failed: users.email")
		}
	}
	f.users[u.ID] = u
	return nil
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, nil
}

func (f *fakeUsers) GetBySessionID(_ context.Context, sessionID string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.SessionID != "" && u.SessionID == sessionID {
			u := u
			return &u, nil
		}
	}
	return nil, nil
}

func (f *fakeUsers) ReplaceSession(_ context.Context, userID, _, newSessionID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[userID]
	if !ok {
		return fmt.Errorf("no user %q", userID)
	}
	u.SessionID = newSessionID
	f.users[userID] = u
	return nil
}

// fakeMeals keeps meals in insertion order so date ties break the same way
// rowid ordering does in SQLite.
type fakeMeals struct {
	mu    sync.Mutex
	meals []models.Meal
}

var _ repository.Meals = (*fakeMeals)(nil)

func newFakeMeals() *fakeMeals {
	return &fakeMeals{}
}

func (f *fakeMeals) Create(_ context.Context, m models.Meal) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.meals = append(f.meals, m)
	return nil
}

func (f *fakeMeals) GetByID(_ context.Context, id string) (*models.Meal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, m := range f.meals {
		if m.ID == id {
			m := m
			return &m, nil
		}
	}
	return nil, nil
}

func (f *fakeMeals) GetOwned(_ context.Context, ownerID, id string) (*models.Meal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, m := range f.meals {
		if m.ID == id && m.UserID == ownerID {
			m := m
			return &m, nil
		}
	}
	return nil, nil
}

func (f *fakeMeals) ListByOwner(_ context.Context, ownerID string, newestFirst bool) ([]models.Meal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]models.Meal, 0, len(f.meals))
	for _, m := range f.meals {
		if m.UserID == ownerID {
			out = append(out, m)
		}
	}
	// Stable sort over the insertion-ordered slice keeps ties in insertion
	// order, matching "ORDER BY date ASC, rowid ASC".
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	if newestFirst {
		for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
			out[i], out[j] = out[j], out[i]
		}
	}
	return out, nil
}

func (f *fakeMeals) Update(_ context.Context, m models.Meal) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.meals {
		if f.meals[i].ID == m.ID {
			f.meals[i] = m
			return nil
		}
	}
	return fmt.Errorf("no meal %q", m.ID)
}

func (f *fakeMeals) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.meals {
		if f.meals[i].ID == id {
			f.meals = append(f.meals[:i], f.meals[i+1:]...)
			return nil
		}
	}
	return nil
}
