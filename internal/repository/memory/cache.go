package memory

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

type cacheEntry struct {
	value     string
	expiresAt time.Time
}

// Cache is an in-process stand-in for redis used when storage.type is memory.
type Cache struct {
	mu      sync.Mutex
	entries map[string]cacheEntry
	now     func() time.Time
}

func NewCache() *Cache {
	return &Cache{
		entries: make(map[string]cacheEntry),
		now:     time.Now,
	}
}

func (c *Cache) SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	valueJSON, err := json.Marshal(value)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	entry := cacheEntry{value: string(valueJSON)}
	if ttl > 0 {
		entry.expiresAt = c.now().Add(ttl)
	}
	c.entries[key] = entry

	return nil
}

func (c *Cache) Get(ctx context.Context, key string) *redis.StringCmd {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, exists := c.entries[key]
	if !exists {
		return redis.NewStringResult("", redis.Nil)
	}
	if !entry.expiresAt.IsZero() && !c.now().Before(entry.expiresAt) {
		delete(c.entries, key)
		return redis.NewStringResult("", redis.Nil)
	}

	return redis.NewStringResult(entry.value, nil)
}

func (c *Cache) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	c.mu.Lock()
	defer c.mu.Unlock()

	var deleted int64
	for _, key := range keys {
		if _, exists := c.entries[key]; exists {
			delete(c.entries, key)
			deleted++
		}
	}

	return redis.NewIntResult(deleted, nil)
}

// Incr behaves like redis INCR: a missing key counts as 0 and the result never expires.
func (c *Cache) Incr(ctx context.Context, key string) *redis.IntCmd {
	c.mu.Lock()
	defer c.mu.Unlock()

	var current int64
	if entry, exists := c.entries[key]; exists && (entry.expiresAt.IsZero() || c.now().Before(entry.expiresAt)) {
		value, err := strconv.ParseInt(entry.value, 10, 64)
		if err != nil {
			return redis.NewIntResult(0, errors.New("ERR value is not an integer or out of range"))
		}
		current = value
	}

	current++
	c.entries[key] = cacheEntry{value: strconv.FormatInt(current, 10)}

	return redis.NewIntResult(current, nil)
}
