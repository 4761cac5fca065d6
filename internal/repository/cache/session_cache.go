// Package cache decorates the Users repository with a Redis cache-aside
// layer for session-token resolution, the hottest lookup in the system
// (every authenticated request performs one).
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"daily_diet/internal/models"
	"daily_diet/internal/repository"

	"github.com/redis/go-redis/v9"
)

const sessionKeyPrefix = "session:"

// SessionCache wraps a Users repository and caches GetBySessionID results.
// The database row stays the source of truth; ReplaceSession drops the old
// token's cache entry around the row update, so a replaced token never
// resolves from a stale entry.
type SessionCache struct {
	next repository.Users
	rdb  *redis.Client
	ttl  time.Duration
}

func NewSessionCache(next repository.Users, rdb *redis.Client, ttl time.Duration) *SessionCache {
	return &SessionCache{next: next, rdb: rdb, ttl: ttl}
}

var _ repository.Users = (*SessionCache)(nil)

// cachedUser is the stored shape; models.User hides SessionID from JSON, and
// the cache needs it back on a hit.
type cachedUser struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	SessionID string    `json:"sessionId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func sessionKey(sessionID string) string {
	return sessionKeyPrefix + sessionID
}

func (c *SessionCache) Create(ctx context.Context, u models.User) error {
	return c.next.Create(ctx, u)
}

func (c *SessionCache) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return c.next.GetByEmail(ctx, email)
}

// GetBySessionID serves from Redis when possible and falls through to the
// underlying repository otherwise. Cache errors degrade to a plain DB lookup.
func (c *SessionCache) GetBySessionID(ctx context.Context, sessionID string) (*models.User, error) {
	if sessionID != "" {
		data, err := c.rdb.Get(ctx, sessionKey(sessionID)).Bytes()
		if err == nil {
			var cu cachedUser
			if jsonErr := json.Unmarshal(data, &cu); jsonErr == nil {
				return &models.User{
					ID:        cu.ID,
					Name:      cu.Name,
					Email:     cu.Email,
					SessionID: cu.SessionID,
					CreatedAt: cu.CreatedAt,
					UpdatedAt: cu.UpdatedAt,
				}, nil
			}
		}
	}

	u, err := c.next.GetBySessionID(ctx, sessionID)
	if err != nil || u == nil {
		return u, err
	}

	// Best-effort population; a failed write just means the next lookup hits
	// the database again.
	if data, err := json.Marshal(cachedUser{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		SessionID: u.SessionID,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}); err == nil {
		_ = c.rdb.Set(ctx, sessionKey(sessionID), data, c.ttl).Err()
	}
	return u, nil
}

// ReplaceSession drops the old token's cache entry, delegates, then drops it
// again. Both deletes must succeed: a replaced token that keeps resolving
// would break the single-active-session invariant. The second delete covers
// a resolve racing the row update, which can miss the cache after the first
// delete, read the not-yet-updated row and repopulate the old key.
func (c *SessionCache) ReplaceSession(ctx context.Context, userID, oldSessionID, newSessionID string) error {
	if err := c.dropSession(ctx, oldSessionID); err != nil {
		return err
	}
	if err := c.next.ReplaceSession(ctx, userID, oldSessionID, newSessionID); err != nil {
		return err
	}
	return c.dropSession(ctx, oldSessionID)
}

func (c *SessionCache) dropSession(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	if err := c.rdb.Del(ctx, sessionKey(sessionID)).Err(); err != nil && !errors.Is(err, redis.Nil) {
		return err
	}
	return nil
}
