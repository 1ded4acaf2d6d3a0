package rediscache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	domainErrors "github.com/encryptSIM/backend/internal/domain/errors"
)

// Entry is the stored cache value plus the write timestamp, mirroring the
// shape clients already expect.
type Entry struct {
	Value     json.RawMessage `json:"value"`
	Timestamp int64           `json:"timestamp"`
	TTL       int             `json:"ttl,omitempty"`
}

// Cache is a TTL key-value store for the cache endpoints and sim-usage mirror.
type Cache struct {
	client *redis.Client
}

func New(addr string) *Cache {
	return &Cache{client: redis.NewClient(&redis.Options{Addr: addr})}
}

// Set stores the value under the key. A zero ttl means the entry never expires.
func (c *Cache) Set(ctx context.Context, key string, value json.RawMessage, ttl time.Duration) error {
	entry := Entry{Value: value, Timestamp: time.Now().UnixMilli()}
	if ttl > 0 {
		entry.TTL = int(ttl.Seconds())
	}
	raw, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, raw, ttl).Err()
}

func (c *Cache) Get(ctx context.Context, key string) (*Entry, error) {
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	var entry Entry
	if err := json.Unmarshal(raw, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

func (c *Cache) Delete(ctx context.Context, key string) error {
	return c.client.Del(ctx, key).Err()
}

// HealthCheck verifies redis connectivity.
func (c *Cache) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return c.client.Ping(ctx).Err()
}

func (c *Cache) Close() error {
	return c.client.Close()
}
