package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// PendingMarker is stored under a key while its request is in flight.
const PendingMarker = "processing"

// reserveAttempts bounds the SETNX/GET race where a key vanishes between the
// two commands.
const reserveAttempts = 3

// IdempotencyStore implements usecase.IdempotencyStore using Redis.
type IdempotencyStore struct {
	client redis.Cmdable
	prefix string
}

// NewIdempotencyStore creates a store keyed under bank:idempotency:.
func NewIdempotencyStore(client redis.Cmdable) *IdempotencyStore {
	return &IdempotencyStore{client: client, prefix: "bank:idempotency:"}
}

func (s *IdempotencyStore) key(k string) string { return s.prefix + k }

// CheckAndSet reserves key for ttl. When the key is already taken it returns
// true with the stored value, which is PendingMarker for in-flight requests.
// A nil response reserves the key with PendingMarker.
func (s *IdempotencyStore) CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
	var value any = PendingMarker
	if response != nil {
		value = response
	}

	for range reserveAttempts {
		reserved, err := s.client.SetNX(ctx, s.key(key), value, ttl).Result()
		if err != nil {
			return false, nil, err
		}
		if reserved {
			return false, nil, nil
		}

		existing, err := s.client.Get(ctx, s.key(key)).Bytes()
		if errors.Is(err, redis.Nil) {
			continue
		}
		if err != nil {
			return false, nil, err
		}
		return true, existing, nil
	}

	return true, []byte(PendingMarker), nil
}

// Update stores the final response for key.
func (s *IdempotencyStore) Update(ctx context.Context, key string, response []byte, ttl time.Duration) error {
	return s.client.Set(ctx, s.key(key), response, ttl).Err()
}

// Release drops key so the request can be attempted again.
func (s *IdempotencyStore) Release(ctx context.Context, key string) error {
	return s.client.Del(ctx, s.key(key)).Err()
}
