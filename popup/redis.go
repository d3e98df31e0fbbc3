package popup

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const DefaultRedisPrefix = "camstore:popup:"

// RedisStore keeps each session's shown set in a Redis SET that expires ttl
// after the last write, so several API instances agree on what was shown.
type RedisStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, prefix string, ttl time.Duration) *RedisStore {
	if prefix == "" {
		prefix = DefaultRedisPrefix
	}
	return &RedisStore{client: client, prefix: prefix, ttl: ttl}
}

func (r *RedisStore) key(session string) string {
	return r.prefix + session
}

func (r *RedisStore) Seen(ctx context.Context, session, offerID string) (bool, error) {
	return r.client.SIsMember(ctx, r.key(session), offerID).Result()
}

func (r *RedisStore) MarkSeen(ctx context.Context, session, offerID string) error {
	key := r.key(session)
	_, err := r.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.SAdd(ctx, key, offerID)
		if r.ttl > 0 {
			p.Expire(ctx, key, r.ttl)
		}
		return nil
	})
	return err
}
