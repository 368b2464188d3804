package repository

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// SessionRepository keeps the live token of every logged-in user.
type SessionRepository interface {
	Get(ctx context.Context, userID uint) (string, error)
	Save(ctx context.Context, userID uint, token string, ttl time.Duration) error
	// SaveIfAbsent stores token only when the user has no session and
	// reports whether it did.
	SaveIfAbsent(ctx context.Context, userID uint, token string, ttl time.Duration) (bool, error)
	Delete(ctx context.Context, userID uint) error
}

type sessionRepository struct {
	client *redis.Client
}

func NewSessionRepository(client *redis.Client) SessionRepository {
	return &sessionRepository{client: client}
}

func sessionKey(userID uint) string {
	return "session:user:" + strconv.FormatUint(uint64(userID), 10)
}

// Get returns "" without error when the user has no live session.
func (r *sessionRepository) Get(ctx context.Context, userID uint) (string, error) {
	token, err := r.client.Get(ctx, sessionKey(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	return token, err
}

// Save - Key: "session:user:{userID}", TTL: token lifetime
func (r *sessionRepository) Save(ctx context.Context, userID uint, token string, ttl time.Duration) error {
	return r.client.Set(ctx, sessionKey(userID), token, ttl).Err()
}

func (r *sessionRepository) SaveIfAbsent(ctx context.Context, userID uint, token string, ttl time.Duration) (bool, error) {
	return r.client.SetNX(ctx, sessionKey(userID), token, ttl).Result()
}

func (r *sessionRepository) Delete(ctx context.Context, userID uint) error {
	return r.client.Del(ctx, sessionKey(userID)).Err()
}
