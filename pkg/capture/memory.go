package capture

import (
	"sort"
	"sync"

	"github.com/patrickmn/go-cache"
)

// MemoryBackend keeps records in process memory on top of go-cache. An
// optional byte quota makes it behave like the browser's quota-limited
// localStorage, which is also what the store tests exercise.
type MemoryBackend struct {
	c     *cache.Cache
	quota int

	mu   sync.Mutex
	used int
}

// NewMemoryBackend creates an in-memory backend. quotaBytes == 0 means
// unlimited.
func NewMemoryBackend(quotaBytes int) *MemoryBackend {
	return &MemoryBackend{
		c:     cache.New(cache.NoExpiration, 0),
		quota: quotaBytes,
	}
}

func (b *MemoryBackend) Get(key string) ([]byte, bool, error) {
	if x, found := b.c.Get(key); found {
		return x.([]byte), true, nil
	}
	return nil, false, nil
}

func (b *MemoryBackend) Set(key string, value []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	old := 0
	if x, found := b.c.Get(key); found {
		old = len(x.([]byte))
	}
	if b.quota > 0 && b.used-old+len(value) > b.quota {
		return ErrQuotaExceeded
	}

	b.c.Set(key, value, cache.NoExpiration)
	b.used += len(value) - old
	return nil
}

func (b *MemoryBackend) Remove(key string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if x, found := b.c.Get(key); found {
		b.used -= len(x.([]byte))
	}
	b.c.Delete(key)
	return nil
}

func (b *MemoryBackend) Keys(prefix string) ([]string, error) {
	var keys []string
	for key := range b.c.Items() {
		if len(key) >= len(prefix) && key[:len(prefix)] == prefix {
			keys = append(keys, key)
		}
	}
	// Items() iterates a map; sort for a stable enumeration order.
	sort.Strings(keys)
	return keys, nil
}
