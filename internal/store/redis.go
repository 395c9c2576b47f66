package store

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// snapshotTTL bounds how long extraction snapshots stay in the landing
// store. Two pipeline cycles is enough to diff consecutive runs.
const snapshotTTL = 48 * time.Hour

// RedisStore is the landing store for the extraction job: raw resource
// pages pulled from the API are archived here instead of being discarded.
type RedisStore struct {
	client *redis.Client
}

func NewRedis(ctx context.Context, redisURL string) (*RedisStore, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parsing redis URL: %w", err)
	}

	client := redis.NewClient(opts)

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("pinging redis: %w", err)
	}

	return &RedisStore{client: client}, nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}

func (s *RedisStore) Client() *redis.Client {
	return s.client
}

// ArchivePage stores one raw page of a resource under a key scoped to the
// run date, e.g. landing:payments:2026-08-29:3.
func (s *RedisStore) ArchivePage(ctx context.Context, resource string, runDate time.Time, page int, payload []byte) error {
	key := fmt.Sprintf("landing:%s:%s:%d", resource, runDate.Format("2006-01-02"), page)
	if err := s.client.Set(ctx, key, payload, snapshotTTL).Err(); err != nil {
		return fmt.Errorf("archiving %s page %d: %w", resource, page, err)
	}
	return nil
}

// PageCount returns how many pages are archived for a resource on a given
// run date.
func (s *RedisStore) PageCount(ctx context.Context, resource string, runDate time.Time) (int, error) {
	pattern := fmt.Sprintf("landing:%s:%s:*", resource, runDate.Format("2006-01-02"))
	keys, err := s.client.Keys(ctx, pattern).Result()
	if err != nil {
		return 0, fmt.Errorf("counting archived pages for %s: %w", resource, err)
	}
	return len(keys), nil
}
