package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/solmerch/orderbot/internal/model/order"
)

const sessionKeyPrefix = "intake:session:"

// RedisStore keeps sessions as JSON blobs under a per-user key with a TTL,
// so abandoned conversations expire without a janitor and survive restarts.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore returns a store writing sessions with the given idle TTL.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &RedisStore{client: client, ttl: ttl}
}

func (r *RedisStore) Get(ctx context.Context, userID string) (order.Session, bool, error) {
	raw, err := r.client.Get(ctx, sessionKeyPrefix+userID).Bytes()
	if errors.Is(err, redis.Nil) {
		return order.Session{}, false, nil
	}
	if err != nil {
		return order.Session{}, false, fmt.Errorf("get session: %w", err)
	}

	var s order.Session
	if err := json.Unmarshal(raw, &s); err != nil {
		return order.Session{}, false, fmt.Errorf("decode session: %w", err)
	}
	return s, true, nil
}

func (r *RedisStore) Put(ctx context.Context, s order.Session) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := r.client.Set(ctx, sessionKeyPrefix+s.UserID, raw, r.ttl).Err(); err != nil {
		return fmt.Errorf("put session: %w", err)
	}
	return nil
}

func (r *RedisStore) Delete(ctx context.Context, userID string) error {
	if err := r.client.Del(ctx, sessionKeyPrefix+userID).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
