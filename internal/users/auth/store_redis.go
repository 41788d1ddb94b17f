// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/folio/internal/platform/constants"
)

// # Revocation Repository

// RedisRevocationStore implements [RevocationStore] using Redis keys that expire
// together with the tokens they revoke.
type RedisRevocationStore struct {
	client *redis.Client
}

// NewRedisRevocationStore creates a new Redis-backed RevocationStore.
func NewRedisRevocationStore(client *redis.Client) *RedisRevocationStore {
	return &RedisRevocationStore{client: client}
}

func revokedKey(tokenID string) string {
	return fmt.Sprintf("%s%s", constants.RedisPrefixRevokedToken, tokenID)
}

/*
Revoke stores the token id with the remaining token lifetime as TTL.

Parameters:
  - context: context.Context
  - tokenID: string
  - ttl: time.Duration

Returns:
  - error: Execution errors
*/
func (repository *RedisRevocationStore) Revoke(context context.Context, tokenID string, ttl time.Duration) error {

	// An expired token needs no entry
	if ttl <= 0 {
		return nil
	}

	if err := repository.client.Set(context, revokedKey(tokenID), "1", ttl).Err(); err != nil {
		return fmt.Errorf("redis_revoked_token_set_failed: %w", err)
	}
	return nil
}

/*
IsRevoked checks for the token id key.

Returns:
  - bool: true when the key exists
  - error: Connectivity errors
*/
func (repository *RedisRevocationStore) IsRevoked(context context.Context, tokenID string) (bool, error) {
	count, err := repository.client.Exists(context, revokedKey(tokenID)).Result()
	if err != nil {
		return false, fmt.Errorf("redis_revoked_token_get_failed: %w", err)
	}
	return count > 0, nil
}
