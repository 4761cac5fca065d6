package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"daily_diet/internal/models"
)

type UserSQLite struct {
	db *sql.DB
}

func NewUserSQLite(db *sql.DB) *UserSQLite {
	return &UserSQLite{db: db}
}

// Ensure implementation of the Users interface at compile time.
var _ Users = (*UserSQLite)(nil)

// SQLite TIMESTAMP format used for all stored times.
const timeLayout = "2006-01-02 15:04:05"

const (
	insertUserSQL = `INSERT INTO users (id, name, email, session_id, created_at, updated_at) VALUES (?, ?, ?, NULL, ?, ?)`

	selectUserByEmailSQL   = `SELECT id, name, email, session_id, created_at, updated_at FROM users WHERE email = ?`
	selectUserBySessionSQL = `SELECT id, name, email, session_id, created_at, updated_at FROM users WHERE session_id = ?`

	updateUserSessionSQL = `UPDATE users SET session_id = ?, updated_at = ? WHERE id = ?`
)

// Create inserts a new user. A duplicate email violates the unique index and
// surfaces as a wrapped driver error.
func (r *UserSQLite) Create(ctx context.Context, u models.User) error {
	_, err := r.db.ExecContext(ctx, insertUserSQL,
		u.ID,
		u.Name,
		u.Email,
		u.CreatedAt.UTC().Format(timeLayout),
		u.UpdatedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("insert user %q: %w", u.ID, err)
	}
	return nil
}

// GetByEmail fetches a user by email. Returns (nil, nil) if not found.
func (r *UserSQLite) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	u, err := r.scanUser(r.db.QueryRowContext(ctx, selectUserByEmailSQL, email))
	if err != nil {
		return nil, fmt.Errorf("select user by email: %w", err)
	}
	return u, nil
}

// GetBySessionID fetches the user holding the given session token.
// Returns (nil, nil) if no user holds it.
func (r *UserSQLite) GetBySessionID(ctx context.Context, sessionID string) (*models.User, error) {
	u, err := r.scanUser(r.db.QueryRowContext(ctx, selectUserBySessionSQL, sessionID))
	if err != nil {
		return nil, fmt.Errorf("select user by session: %w", err)
	}
	return u, nil
}

// ReplaceSession overwrites the user's stored token. The previous token stops
// resolving as soon as the row is updated; oldSessionID only matters to
// caching decorators.
func (r *UserSQLite) ReplaceSession(ctx context.Context, userID, _, newSessionID string) error {
	_, err := r.db.ExecContext(ctx, updateUserSessionSQL,
		newSessionID,
		time.Now().UTC().Format(timeLayout),
		userID,
	)
	if err != nil {
		return fmt.Errorf("update session for user %q: %w", userID, err)
	}
	return nil
}

func (r *UserSQLite) scanUser(row *sql.Row) (*models.User, error) {
	var (
		u         models.User
		sessionID sql.NullString
	)
	err := row.Scan(&u.ID, &u.Name, &u.Email, &sessionID, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	u.SessionID = sessionID.String
	u.CreatedAt = u.CreatedAt.UTC()
	u.UpdatedAt = u.UpdatedAt.UTC()
	return &u, nil
}
