package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"daily_diet/internal/models"
)

type MealSQLite struct {
	db *sql.DB
}

func NewMealSQLite(db *sql.DB) *MealSQLite {
	return &MealSQLite{db: db}
}

var _ Meals = (*MealSQLite)(nil)

const (
	insertMealSQL = `INSERT INTO meals (id, user_id, name, description, date, is_on_daily_diet, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	selectMealColumns  = `id, user_id, name, description, date, is_on_daily_diet, created_at, updated_at`
	selectMealByIDSQL  = `SELECT ` + selectMealColumns + ` FROM meals WHERE id = ?`
	selectOwnedMealSQL = `SELECT ` + selectMealColumns + ` FROM meals WHERE user_id = ? AND id = ?`

	// Ties in date break by rowid, i.e. insertion order.
	listMealsOldestSQL = `SELECT ` + selectMealColumns + ` FROM meals WHERE user_id = ? ORDER BY date ASC, rowid ASC`
	listMealsNewestSQL = `SELECT ` + selectMealColumns + ` FROM meals WHERE user_id = ? ORDER BY date DESC, rowid DESC`

	updateMealSQL = `UPDATE meals SET name = ?, description = ?, date = ?, is_on_daily_diet = ?, updated_at = ? WHERE id = ?`
	deleteMealSQL = `DELETE FROM meals WHERE id = ?`
)

func (r *MealSQLite) Create(ctx context.Context, m models.Meal) error {
	_, err := r.db.ExecContext(ctx, insertMealSQL,
		m.ID,
		m.UserID,
		m.Name,
		m.Description,
		m.Date.UTC().Format(timeLayout),
		m.IsOnDailyDiet,
		m.CreatedAt.UTC().Format(timeLayout),
		m.UpdatedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("insert meal %q: %w", m.ID, err)
	}
	return nil
}

// GetByID fetches a meal regardless of owner. Returns (nil, nil) if not found.
func (r *MealSQLite) GetByID(ctx context.Context, id string) (*models.Meal, error) {
	m, err := r.scanMeal(r.db.QueryRowContext(ctx, selectMealByIDSQL, id))
	if err != nil {
		return nil, fmt.Errorf("select meal %q: %w", id, err)
	}
	return m, nil
}

// GetOwned fetches a meal only if it belongs to ownerID. Returns (nil, nil)
// both when the meal is absent and when it is someone else's, so callers
// cannot tell the two apart.
func (r *MealSQLite) GetOwned(ctx context.Context, ownerID, id string) (*models.Meal, error) {
	m, err := r.scanMeal(r.db.QueryRowContext(ctx, selectOwnedMealSQL, ownerID, id))
	if err != nil {
		return nil, fmt.Errorf("select owned meal %q: %w", id, err)
	}
	return m, nil
}

// ListByOwner returns the owner's meals ordered by date, newest or oldest
// first. Ties break by insertion order in both directions.
func (r *MealSQLite) ListByOwner(ctx context.Context, ownerID string, newestFirst bool) ([]models.Meal, error) {
	q := listMealsOldestSQL
	if newestFirst {
		q = listMealsNewestSQL
	}

	rows, err := r.db.QueryContext(ctx, q, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list meals for user %q: %w", ownerID, err)
	}
	defer rows.Close()

	out := make([]models.Meal, 0, 16)
	for rows.Next() {
		var m models.Meal
		if err := rows.Scan(&m.ID, &m.UserID, &m.Name, &m.Description, &m.Date, &m.IsOnDailyDiet, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, err
		}
		m.Date = m.Date.UTC()
		m.CreatedAt = m.CreatedAt.UTC()
		m.UpdatedAt = m.UpdatedAt.UTC()
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *MealSQLite) Update(ctx context.Context, m models.Meal) error {
	_, err := r.db.ExecContext(ctx, updateMealSQL,
		m.Name,
		m.Description,
		m.Date.UTC().Format(timeLayout),
		m.IsOnDailyDiet,
		m.UpdatedAt.UTC().Format(timeLayout),
		m.ID,
	)
	if err != nil {
		return fmt.Errorf("update meal %q: %w", m.ID, err)
	}
	return nil
}

func (r *MealSQLite) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, deleteMealSQL, id)
	if err != nil {
		return fmt.Errorf("delete meal %q: %w", id, err)
	}
	return nil
}

func (r *MealSQLite) scanMeal(row *sql.Row) (*models.Meal, error) {
	var m models.Meal
	err := row.Scan(&m.ID, &m.UserID, &m.Name, &m.Description, &m.Date, &m.IsOnDailyDiet, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	m.Date = m.Date.UTC()
	m.CreatedAt = m.CreatedAt.UTC()
	m.UpdatedAt = m.UpdatedAt.UTC()
	return &m, nil
}
