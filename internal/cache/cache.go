// Package cache implements the TTL cache fronting upstream API responses.
// Entries live in an in-process map and are written through to the
// persistent blob store so they survive restarts. Expiry is lazy: an entry
// is purged from both tiers the first time it is read past its deadline.
package cache

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/vrickster/vault/internal/constants"
	"github.com/vrickster/vault/internal/storage"
	"github.com/vrickster/vault/pkg/logger"
)

type entry struct {
	Payload   json.RawMessage `json:"payload"`
	ExpiresAt int64           `json:"expires_at"` // epoch milliseconds
}

// TTLCache is safe for concurrent use. A persistence failure never fails
// the cache operation; the entry stays usable in memory.
type TTLCache struct {
	mu    sync.Mutex
	items map[string]entry
	store storage.Store
	log   logger.Logger

	// overridable for tests
	now func() time.Time
}

// New creates a cache backed by store. A nil store disables persistence.
func New(store storage.Store, log logger.Logger) *TTLCache {
	return &TTLCache{
		items: make(map[string]entry),
		store: store,
		log:   log,
		now:   time.Now,
	}
}

// Set stores payload under key with the given lifetime.
func (c *TTLCache) Set(key string, payload []byte, ttl time.Duration) {
	e := entry{
		Payload:   json.RawMessage(append([]byte(nil), payload...)),
		ExpiresAt: c.nowMs() + ttl.Milliseconds(),
	}

	c.mu.Lock()
	c.items[key] = e
	c.mu.Unlock()

	c.persist(key, e)
}

// Get returns the live payload for key, or (nil, false). The in-memory tier
// is consulted first; on a miss the entry is hydrated from the persistent
// store. Expired or absent entries are removed from both tiers.
func (c *TTLCache) Get(key string) ([]byte, bool) {
	c.mu.Lock()
	e, ok := c.items[key]
	c.mu.Unlock()

	if !ok {
		e, ok = c.hydrate(key)
	}
	if !ok {
		return nil, false
	}

	if c.nowMs() >= e.ExpiresAt {
		c.evict(key)
		return nil, false
	}

	return e.Payload, true
}

// Clear removes every in-memory entry and every persisted entry in this
// application's namespace, leaving unrelated persisted data untouched.
func (c *TTLCache) Clear() {
	c.mu.Lock()
	c.items = make(map[string]entry)
	c.mu.Unlock()

	if c.store == nil {
		return
	}
	keys, err := c.store.Keys(constants.CacheNamespace)
	if err != nil {
		c.log.Warnf("[Cache] failed to list persisted entries: %v", err)
		return
	}
	for _, k := range keys {
		if err := c.store.Delete(k); err != nil {
			c.log.Warnf("[Cache] failed to remove persisted entry %s: %v", k, err)
		}
	}
}

func (c *TTLCache) nowMs() int64 {
	return c.now().UnixMilli()
}

func (c *TTLCache) persist(key string, e entry) {
	if c.store == nil {
		return
	}
	data, err := json.Marshal(e)
	if err != nil {
		c.log.Warnf("[Cache] failed to encode entry %s: %v", key, err)
		return
	}
	if err := c.store.Set(constants.CacheNamespace+key, data); err != nil {
		c.log.Warnf("[Cache] failed to persist entry %s: %v", key, err)
	}
}

// hydrate restores an entry from the persistent store into memory.
func (c *TTLCache) hydrate(key string) (entry, bool) {
	if c.store == nil {
		return entry{}, false
	}
	data, err := c.store.Get(constants.CacheNamespace + key)
	if err != nil {
		c.log.Warnf("[Cache] failed to read persisted entry %s: %v", key, err)
		return entry{}, false
	}
	if data == nil {
		return entry{}, false
	}

	var e entry
	if err := json.Unmarshal(data, &e); err != nil {
		c.log.Warnf("[Cache] corrupt persisted entry %s: %v", key, err)
		c.store.Delete(constants.CacheNamespace + key)
		return entry{}, false
	}

	c.mu.Lock()
	c.items[key] = e
	c.mu.Unlock()

	return e, true
}

func (c *TTLCache) evict(key string) {
	c.mu.Lock()
	delete(c.items, key)
	c.mu.Unlock()

	if c.store == nil {
		return
	}
	if err := c.store.Delete(constants.CacheNamespace + key); err != nil {
		c.log.Warnf("[Cache] failed to remove persisted entry %s: %v", key, err)
	}
}
