package changefeed

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"

	"github.com/redis/go-redis/v9"
)

// DefaultRedisPrefix namespaces change channels as <prefix><table>.
const DefaultRedisPrefix = "camstore:changes:"

// RedisFeed fans mutations out over Redis pub/sub so every storefront
// instance hears about edits made through any admin instance.
type RedisFeed struct {
	client *redis.Client
	prefix string
}

func NewRedisFeed(client *redis.Client, prefix string) *RedisFeed {
	if prefix == "" {
		prefix = DefaultRedisPrefix
	}
	return &RedisFeed{client: client, prefix: prefix}
}

func (f *RedisFeed) channel(table string) string {
	return f.prefix + table
}

// Publish sends e to the table's channel.
func (f *RedisFeed) Publish(ctx context.Context, e Event) error {
	payload, err := json.Marshal(e)
	if err != nil {
		return err
	}
	if err := f.client.Publish(ctx, f.channel(e.Table), payload).Err(); err != nil {
		return fmt.Errorf("redis publish %s: %w", e.Table, err)
	}
	return nil
}

// Subscribe waits for Redis to confirm the subscription before returning.
func (f *RedisFeed) Subscribe(table string, fn Handler) (Subscription, error) {
	ctx := context.Background()
	ps := f.client.Subscribe(ctx, f.channel(table))
	if _, err := ps.Receive(ctx); err != nil {
		ps.Close()
		return nil, fmt.Errorf("redis subscribe %s: %w", table, err)
	}

	sub := &redisSubscription{ps: ps, done: make(chan struct{})}
	go func() {
		defer close(sub.done)
		for msg := range ps.Channel() {
			e, err := decodeNotification(msg.Payload)
			if err != nil {
				log.Printf("[changefeed:redis] bad payload on %s: %v", msg.Channel, err)
				continue
			}
			fn(e)
		}
	}()
	return sub, nil
}

type redisSubscription struct {
	ps   *redis.PubSub
	done chan struct{}
	once sync.Once
}

func (s *redisSubscription) Unsubscribe() error {
	var err error
	s.once.Do(func() {
		err = s.ps.Close()
		<-s.done
	})
	return err
}
