package repositories

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"
)

type cacheEntry struct {
	value     string
	expiresAt time.Time
}

func (e cacheEntry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && !now.Before(e.expiresAt)
}

// MemoryCacheRepository - кеш в памяти процесса, для режима без Redis и для тестов.
type MemoryCacheRepository struct {
	mu      sync.Mutex
	entries map[string]cacheEntry
	now     func() time.Time
}

func NewMemoryCacheRepository() *MemoryCacheRepository {
	return &MemoryCacheRepository{
		entries: make(map[string]cacheEntry),
		now:     time.Now,
	}
}

// lookup вызывается под блокировкой, истёкшие ключи удаляются лениво.
func (r *MemoryCacheRepository) lookup(key string) (cacheEntry, bool) {
	entry, ok := r.entries[key]
	if !ok {
		return cacheEntry{}, false
	}
	if entry.expired(r.now()) {
		delete(r.entries, key)
		return cacheEntry{}, false
	}
	return entry, true
}

func (r *MemoryCacheRepository) Get(_ context.Context, key string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.lookup(key)
	if !ok {
		return "", ErrCacheMiss
	}
	return entry.value, nil
}

func (r *MemoryCacheRepository) Set(_ context.Context, key string, value interface{}, expiration time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry := cacheEntry{value: fmt.Sprint(value)}
	if expiration > 0 {
		entry.expiresAt = r.now().Add(expiration)
	}
	r.entries[key] = entry
	return nil
}

func (r *MemoryCacheRepository) Del(_ context.Context, keys ...string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, key := range keys {
		delete(r.entries, key)
	}
	return nil
}

// Incr повторяет поведение Redis: отсутствующий ключ считается нулём, TTL сохраняется.
func (r *MemoryCacheRepository) Incr(_ context.Context, key string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, _ := r.lookup(key)
	var current int64
	if entry.value != "" {
		n, err := strconv.ParseInt(entry.value, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("значение ключа %q не является числом: %w", key, err)
		}
		current = n
	}
	current++
	entry.value = strconv.FormatInt(current, 10)
	r.entries[key] = entry
	return current, nil
}

func (r *MemoryCacheRepository) Expire(_ context.Context, key string, expiration time.Duration) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.lookup(key)
	if !ok {
		return false, nil
	}
	entry.expiresAt = r.now().Add(expiration)
	r.entries[key] = entry
	return true, nil
}
