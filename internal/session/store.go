// Package session stores staff login sessions in Redis. A session is issued
// at PIN login and checked on every admin request, replacing any client-held
// notion of who is signed in.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"chayen/internal/models"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

type Store interface {
	Create(ctx context.Context, staff models.Staff) (string, error)
	Get(ctx context.Context, token string) (models.Staff, error)
	Delete(ctx context.Context, token string) error
}

type redisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) Store {
	return &redisStore{client: client, ttl: ttl}
}

func sessionKey(token string) string {
	return "session:" + token
}

func (s *redisStore) Create(ctx context.Context, staff models.Staff) (string, error) {
	token := uuid.NewString()

	payload, err := json.Marshal(staff)
	if err != nil {
		return "", fmt.Errorf("failed to marshal session: %w", err)
	}

	if err := s.client.Set(ctx, sessionKey(token), payload, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("failed to store session: %w", err)
	}

	return token, nil
}

func (s *redisStore) Get(ctx context.Context, token string) (models.Staff, error) {
	payload, err := s.client.Get(ctx, sessionKey(token)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return models.Staff{}, models.ErrSessionNotFound
		}
		return models.Staff{}, fmt.Errorf("failed to load session: %w", err)
	}

	var staff models.Staff
	if err := json.Unmarshal(payload, &staff); err != nil {
		return models.Staff{}, fmt.Errorf("failed to unmarshal session: %w", err)
	}

	return staff, nil
}

func (s *redisStore) Delete(ctx context.Context, token string) error {
	if err := s.client.Del(ctx, sessionKey(token)).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}
