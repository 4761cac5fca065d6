package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"daily_diet/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
)

func newMockMealRepo(t *testing.T) (*MealSQLite, sqlmock.Sqlmock, func()) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}

	repo := NewMealSQLite(db)
	cleanup := func() {
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Fatalf("unmet sqlmock expectations: %v", err)
		}
		_ = db.Close()
	}
	return repo, mock, cleanup
}

func testMeal() models.Meal {
	at := time.Date(2024, time.March, 22, 12, 0, 0, 0, time.UTC)
	return models.Meal{
		ID:            "meal-1",
		UserID:        "user-1",
		Name:          "lunch",
		Description:   "salad",
		Date:          at,
		IsOnDailyDiet: true,
		CreatedAt:     at,
		UpdatedAt:     at,
	}
}

func mealRows(meals ...models.Meal) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{"id", "user_id", "name", "description", "date", "is_on_daily_diet", "created_at", "updated_at"})
	for _, m := range meals {
		rows.AddRow(m.ID, m.UserID, m.Name, m.Description, m.Date, m.IsOnDailyDiet, m.CreatedAt, m.UpdatedAt)
	}
	return rows
}

func TestMealSQLite_Create(t *testing.T) {
	m := testMeal()

	t.Run("success", func(t *testing.T) {
		repo, mock, cleanup := newMockMealRepo(t)
		defer cleanup()

		mock.ExpectExec(regexp.QuoteMeta(insertMealSQL)).
			WithArgs(m.ID, m.UserID, m.Name, m.Description, m.Date.Format(timeLayout), m.IsOnDailyDiet, m.CreatedAt.Format(timeLayout), m.UpdatedAt.Format(timeLayout)).
			WillReturnResult(sqlmock.NewResult(1, 1))

		if err := repo.Create(context.Background(), m); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("exec error is wrapped", func(t *testing.T) {
		repo, mock, cleanup := newMockMealRepo(t)
		defer cleanup()

		mock.ExpectExec(regexp.QuoteMeta(insertMealSQL)).
			WillReturnError(errors.New("db exec failed"))

		if err := repo.Create(context.Background(), m); err == nil {
			t.Fatalf("expected error, got nil")
		}
	})
}

func TestMealSQLite_GetByID(t *testing.T) {
	m := testMeal()

	t.Run("found", func(t *testing.T) {
		repo, mock, cleanup := newMockMealRepo(t)
		defer cleanup()

		mock.ExpectQuery(regexp.QuoteMeta(selectMealByIDSQL)).
			WithArgs(m.ID).
			WillReturnRows(mealRows(m))

		got, err := repo.GetByID(context.Background(), m.ID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got == nil || got.ID != m.ID || got.UserID != m.UserID || !got.IsOnDailyDiet {
			t.Fatalf("unexpected meal: %+v", got)
		}
	})

	t.Run("missing yields nil, nil", func(t *testing.T) {
		repo, mock, cleanup := newMockMealRepo(t)
		defer cleanup()

		mock.ExpectQuery(regexp.QuoteMeta(selectMealByIDSQL)).
			WithArgs("no-such-id").
			WillReturnError(sql.ErrNoRows)

		got, err := repo.GetByID(context.Background(), "no-such-id")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != nil {
			t.Fatalf("expected nil meal, got %+v", got)
		}
	})
}

// GetOwned passes both the owner and the id, so a foreign meal behaves like
// a missing one at the SQL level already.
func TestMealSQLite_GetOwned(t *testing.T) {
	m := testMeal()

	t.Run("owned meal found", func(t *testing.T) {
		repo, mock, cleanup := newMockMealRepo(t)
		defer cleanup()

		mock.ExpectQuery(regexp.QuoteMeta(selectOwnedMealSQL)).
			WithArgs(m.UserID, m.ID).
			WillReturnRows(mealRows(m))

		got, err := repo.GetOwned(context.Background(), m.UserID, m.ID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got == nil || got.ID != m.ID {
			t.Fatalf("unexpected meal: %+v", got)
		}
	})

	t.Run("foreign owner yields nil, nil", func(t *testing.T) {
		repo, mock, cleanup := newMockMealRepo(t)
		defer cleanup()

		mock.ExpectQuery(regexp.QuoteMeta(selectOwnedMealSQL)).
			WithArgs("someone-else", m.ID).
			WillReturnError(sql.ErrNoRows)

		got, err := repo.GetOwned(context.Background(), "someone-else", m.ID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != nil {
			t.Fatalf("expected nil meal, got %+v", got)
		}
	})
}

func TestMealSQLite_ListByOwner(t *testing.T) {
	base := time.Date(2024, time.March, 22, 8, 0, 0, 0, time.UTC)
	first := testMeal()
	first.ID, first.Date = "meal-1", base
	second := testMeal()
	second.ID, second.Date = "meal-2", base.Add(4*time.Hour)

	t.Run("oldest first feeds the analyzer", func(t *testing.T) {
		repo, mock, cleanup := newMockMealRepo(t)
		defer cleanup()

		mock.ExpectQuery(regexp.QuoteMeta(listMealsOldestSQL)).
			WithArgs("user-1").
			WillReturnRows(mealRows(first, second))

		got, err := repo.ListByOwner(context.Background(), "user-1", false)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got) != 2 || got[0].ID != "meal-1" || got[1].ID != "meal-2" {
			t.Fatalf("unexpected order: %+v", got)
		}
	})

	t.Run("newest first for the listing endpoint", func(t *testing.T) {
		repo, mock, cleanup := newMockMealRepo(t)
		defer cleanup()

		mock.ExpectQuery(regexp.QuoteMeta(listMealsNewestSQL)).
			WithArgs("user-1").
			WillReturnRows(mealRows(second, first))

		got, err := repo.ListByOwner(context.Background(), "user-1", true)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got) != 2 || got[0].ID != "meal-2" {
			t.Fatalf("unexpected order: %+v", got)
		}
	})

	t.Run("no meals yields empty slice, not nil", func(t *testing.T) {
		repo, mock, cleanup := newMockMealRepo(t)
		defer cleanup()

		mock.ExpectQuery(regexp.QuoteMeta(listMealsNewestSQL)).
			WithArgs("user-1").
			WillReturnRows(mealRows())

		got, err := repo.ListByOwner(context.Background(), "user-1", true)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got == nil || len(got) != 0 {
			t.Fatalf("expected empty slice, got %#v", got)
		}
	})
}

func TestMealSQLite_UpdateAndDelete(t *testing.T) {
	m := testMeal()

	t.Run("update", func(t *testing.T) {
		repo, mock, cleanup := newMockMealRepo(t)
		defer cleanup()

		mock.ExpectExec(regexp.QuoteMeta(updateMealSQL)).
			WithArgs(m.Name, m.Description, m.Date.Format(timeLayout), m.IsOnDailyDiet, m.UpdatedAt.Format(timeLayout), m.ID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		if err := repo.Update(context.Background(), m); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("delete", func(t *testing.T) {
		repo, mock, cleanup := newMockMealRepo(t)
		defer cleanup()

		mock.ExpectExec(regexp.QuoteMeta(deleteMealSQL)).
			WithArgs(m.ID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		if err := repo.Delete(context.Background(), m.ID); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}
