package repositories

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sbilibin2017/blog-service/internal/logger"
)

// SessionRepository stores active sessions in Redis. A login writes a
// session key with the token TTL; logout deletes it, which revokes the
// token server-side before it expires.
type SessionRepository struct {
	client *redis.Client
	exp    time.Duration // session lifetime, matches token expiration
}

// NewSessionRepository creates a new repository instance.
func NewSessionRepository(client *redis.Client, expiration time.Duration) *SessionRepository {
	return &SessionRepository{
		client: client,
		exp:    expiration,
	}
}

func sessionKey(sessionID uuid.UUID) string {
	return fmt.Sprintf("session:%s", sessionID)
}

// Save registers an active session for a user.
func (r *SessionRepository) Save(ctx context.Context, sessionID uuid.UUID, userID int64) error {
	key := sessionKey(sessionID)
	err := r.client.Set(ctx, key, strconv.FormatInt(userID, 10), r.exp).Err()

	logger.Log.Infow(
		"key", key,
		"user_id", userID,
		"error", err,
	)

	return err
}

// GetUserID returns the user bound to an active session.
func (r *SessionRepository) GetUserID(ctx context.Context, sessionID uuid.UUID) (int64, error) {
	key := sessionKey(sessionID)

	val, err := r.client.Get(ctx, key).Result()
	if err != nil {
		logger.Log.Infow(
			"key", key,
			"error", err,
		)
		if err == redis.Nil {
			return 0, fmt.Errorf("session %s not found", sessionID)
		}
		return 0, err
	}

	userID, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		logger.Log.Infow(
			"key", key,
			"value", val,
			"error", err,
		)
		return 0, err
	}

	return userID, nil
}

// Delete removes a session. Deleting an absent session is not an error.
func (r *SessionRepository) Delete(ctx context.Context, sessionID uuid.UUID) error {
	key := sessionKey(sessionID)
	err := r.client.Del(ctx, key).Err()

	logger.Log.Infow(
		"key", key,
		"error", err,
	)

	return err
}
