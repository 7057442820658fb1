/*
 * Copyright 2026 yeonilabs.
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrTokenNotFound is returned when a refresh token is absent from the store,
// either because it expired or because it was revoked.
var ErrTokenNotFound = errors.New("auth: refresh token not recognized")

// TokenStore tracks issued refresh tokens. Only stored tokens may be redeemed,
// so revoking a token ends the session it belongs to.
type TokenStore interface {
	// Save records a refresh token for the given user with the given lifetime.
	Save(ctx context.Context, token, userID string, ttl time.Duration) error
	// Validate returns the user id a stored token belongs to,
	// or ErrTokenNotFound.
	Validate(ctx context.Context, token string) (string, error)
	// Rotate atomically replaces an old token with a new one.
	Rotate(ctx context.Context, oldToken, newToken, userID string, ttl time.Duration) error
	// Revoke removes a token from the store. Revoking an unknown token is a no-op.
	Revoke(ctx context.Context, token string) error
}

// RedisTokenStore keeps refresh tokens in Redis with a TTL matching the
// token lifetime.
type RedisTokenStore struct {
	client *redis.Client
	prefix string
}

var _ TokenStore = (*RedisTokenStore)(nil)

// NewRedisTokenStore creates a TokenStore backed by the given Redis client.
func NewRedisTokenStore(client *redis.Client, prefix string) *RedisTokenStore {
	if prefix == "" {
		prefix = "auth:refresh"
	}
	return &RedisTokenStore{client: client, prefix: prefix}
}

func (s *RedisTokenStore) key(token string) string {
	return fmt.Sprintf("%s:%s", s.prefix, token)
}

func (s *RedisTokenStore) Save(ctx context.Context, token, userID string, ttl time.Duration) error {
	if err := s.client.Set(ctx, s.key(token), userID, ttl).Err(); err != nil {
		return fmt.Errorf("save refresh token: %w", err)
	}
	return nil
}

func (s *RedisTokenStore) Validate(ctx context.Context, token string) (string, error) {
	userID, err := s.client.Get(ctx, s.key(token)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrTokenNotFound
	}
	if err != nil {
		return "", fmt.Errorf("validate refresh token: %w", err)
	}
	return userID, nil
}

func (s *RedisTokenStore) Rotate(ctx context.Context, oldToken, newToken, userID string, ttl time.Duration) error {
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, s.key(oldToken))
		pipe.Set(ctx, s.key(newToken), userID, ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("rotate refresh token: %w", err)
	}
	return nil
}

func (s *RedisTokenStore) Revoke(ctx context.Context, token string) error {
	if err := s.client.Del(ctx, s.key(token)).Err(); err != nil {
		return fmt.Errorf("revoke refresh token: %w", err)
	}
	return nil
}
