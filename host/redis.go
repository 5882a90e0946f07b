package host

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// Flag values stored in Redis. Anything other than flagTrue reads as false.
const (
	flagTrue  = "1"
	flagFalse = "0"
)

// redisFlagStore implements the FlagStore interface using Redis, so the
// installed marker survives process restarts and is shared across processes.
type redisFlagStore struct {
	client redis.Cmdable // Cmdable keeps ClusterClient and SentinelClient usable.
}

// NewRedisFlagStore creates a Redis-backed flag store. It expects a
// pre-configured redis.Cmdable (e.g. redis.Client or redis.ClusterClient);
// the client's lifecycle is managed by the caller.
func NewRedisFlagStore(client redis.Cmdable) FlagStore {
	return &redisFlagStore{client: client}
}

// Get implements the FlagStore interface. A missing key reads as false.
func (s *redisFlagStore) Get(ctx context.Context, key string) (bool, error) {
	val, err := s.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to read flag from redis")
		return false, fmt.Errorf("redis flag get %q: %w", key, err)
	}
	return val == flagTrue, nil
}

// Set implements the FlagStore interface.
func (s *redisFlagStore) Set(ctx context.Context, key string, value bool) error {
	stored := flagFalse
	if value {
		stored = flagTrue
	}
	if err := s.client.Set(ctx, key, stored, 0).Err(); err != nil {
		log.Error().Err(err).Str("key", key).Bool("value", value).Msg("failed to write flag to redis")
		return fmt.Errorf("redis flag set %q: %w", key, err)
	}
	return nil
}

// Clear implements the FlagStore interface.
func (s *redisFlagStore) Clear(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, key).Err(); err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to clear flag in redis")
		return fmt.Errorf("redis flag clear %q: %w", key, err)
	}
	return nil
}
