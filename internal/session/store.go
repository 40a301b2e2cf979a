package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"assessment-service/internal/apperr"
	"assessment-service/internal/models"

	"github.com/redis/go-redis/v9"
)

// Abandoned sessions expire on their own; an active one is refreshed on
// every write-through.
const sessionTTL = 7 * 24 * time.Hour

// RedisStore keeps one persisted session per (user, phase) key.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func sessionKey(userID string, phase models.Phase) string {
	return fmt.Sprintf("assessment:session:%s:%s", userID, phase)
}

func (s *RedisStore) Load(ctx context.Context, userID string, phase models.Phase) (*models.PersistedSession, error) {
	raw, err := s.client.Get(ctx, sessionKey(userID, phase)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, &apperr.TransientStorageError{Op: "session load", Err: err}
	}
	var persisted models.PersistedSession
	if err := json.Unmarshal(raw, &persisted); err != nil {
		return nil, fmt.Errorf("corrupt session record for %s/%s: %w", userID, phase, err)
	}
	return &persisted, nil
}

func (s *RedisStore) Save(ctx context.Context, userID string, phase models.Phase, persisted *models.PersistedSession) error {
	raw, err := json.Marshal(persisted)
	if err != nil {
		return fmt.Errorf("marshal session for %s/%s: %w", userID, phase, err)
	}
	if err := s.client.Set(ctx, sessionKey(userID, phase), raw, sessionTTL).Err(); err != nil {
		return &apperr.TransientStorageError{Op: "session save", Err: err}
	}
	return nil
}

func (s *RedisStore) Clear(ctx context.Context, userID string, phase models.Phase) error {
	if err := s.client.Del(ctx, sessionKey(userID, phase)).Err(); err != nil {
		return &apperr.TransientStorageError{Op: "session clear", Err: err}
	}
	return nil
}
