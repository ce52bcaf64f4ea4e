// Copyright (c) 2026 Document Template Engine. All rights reserved.
// Author: a.velichko.dev@gmail.com

package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/document-template-engine/backend/internal/platform/apperr"
)

// sessionKeyPrefix namespaces refresh sessions in the shared Redis instance.
const sessionKeyPrefix = "auth:session:"

// RedisSessionRepository implements SessionRepository on Redis.
//
// Redis is the right home for refresh sessions: they are pure TTL data and
// revocation must be immediate across all API instances.
type RedisSessionRepository struct {
	client *redis.Client
}

// NewRedisSessionRepository creates a Redis-backed SessionRepository.
func NewRedisSessionRepository(client *redis.Client) *RedisSessionRepository {
	return &RedisSessionRepository{client: client}
}

func (repository *RedisSessionRepository) Set(context context.Context, tokenHash string, userID string, ttl time.Duration) error {
	key := sessionKeyPrefix + tokenHash
	if err := repository.client.Set(context, key, userID, ttl).Err(); err != nil {
		return fmt.Errorf("redis_session_set_failed: %w", err)
	}
	return nil
}

func (repository *RedisSessionRepository) Get(context context.Context, tokenHash string) (string, error) {
	key := sessionKeyPrefix + tokenHash

	userID, err := repository.client.Get(context, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", apperr.Unauthorized("Invalid or expired refresh token")
		}
		return "", fmt.Errorf("redis_session_get_failed: %w", err)
	}

	return userID, nil
}

func (repository *RedisSessionRepository) Delete(context context.Context, tokenHash string) error {
	key := sessionKeyPrefix + tokenHash
	if err := repository.client.Del(context, key).Err(); err != nil {
		return fmt.Errorf("redis_session_delete_failed: %w", err)
	}
	return nil
}
