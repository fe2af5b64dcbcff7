// README: Conversation store backed by Redis (JSON snapshot per thread).
package dialogue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"jelajah/internal/types"
)

const threadKeyPrefix = "jelajah:thread:"

// RedisStore implements ConversationStore on a single Redis key per thread.
// Expiry is the store's concern: every Put refreshes the TTL, so an idle
// conversation eventually evicts itself.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore returns a store with the given snapshot TTL (0 = no expiry).
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func (s *RedisStore) Get(ctx context.Context, threadID types.ID) (*TripPlanningState, error) {
	val, err := s.client.Get(ctx, threadKey(threadID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get thread %s: %w", threadID, err)
	}

	var state TripPlanningState
	if err := json.Unmarshal([]byte(val), &state); err != nil {
		return nil, fmt.Errorf("unmarshal thread %s: %w", threadID, err)
	}
	return &state, nil
}

func (s *RedisStore) Put(ctx context.Context, threadID types.ID, state *TripPlanningState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("marshal thread %s: %w", threadID, err)
	}
	if err := s.client.Set(ctx, threadKey(threadID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("put thread %s: %w", threadID, err)
	}
	return nil
}

func threadKey(id types.ID) string {
	return threadKeyPrefix + string(id)
}
