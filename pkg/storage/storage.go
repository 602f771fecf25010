// Package storage - адаптер хранилища: синхронное строковое key-value хранилище
// и поверх него именованные коллекции записей, сериализованные в JSON.
package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// Логические имена коллекций.
const (
	CollectionOrders        = "orders"
	CollectionUsers         = "users"
	CollectionLogs          = "logs"
	CollectionNotifications = "notifications"
	CollectionCurrentUser   = "current_user"
)

// KeyValueStore - порт строкового хранилища. ok=false означает, что ключа нет.
type KeyValueStore interface {
	GetItem(ctx context.Context, key string) (value string, ok bool, err error)
	SetItem(ctx context.Context, key string, value string) error
	RemoveItem(ctx context.Context, key string) error
}

// Collections читает и перезаписывает коллекции целиком.
type Collections struct {
	store  KeyValueStore
	prefix string
	logger *zap.Logger

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewCollections(store KeyValueStore, prefix string, logger *zap.Logger) *Collections {
	return &Collections{
		store:  store,
		prefix: prefix,
		logger: logger,
		locks:  make(map[string]*sync.Mutex),
	}
}

// Key возвращает физический ключ коллекции с учётом префикса.
func (c *Collections) Key(name string) string {
	return c.prefix + name
}

// Lock захватывает мьютекс коллекции и возвращает функцию освобождения.
// Держать его нужно на всём цикле чтение -> изменение -> запись.
// Защищает только от писателей внутри одного процесса.
func (c *Collections) Lock(name string) func() {
	c.mu.Lock()
	l, ok := c.locks[name]
	if !ok {
		l = &sync.Mutex{}
		c.locks[name] = l
	}
	c.mu.Unlock()

	l.Lock()
	return l.Unlock
}

// Load возвращает коллекцию в порядке хранения. Отсутствующая или повреждённая
// коллекция читается как пустая, ошибка разбора наружу не уходит.
func Load[T any](ctx context.Context, c *Collections, name string) ([]T, error) {
	raw, ok, err := c.store.GetItem(ctx, c.Key(name))
	if err != nil {
		return nil, fmt.Errorf("чтение коллекции %s: %w", name, err)
	}
	records := make([]T, 0)
	if !ok || raw == "" {
		return records, nil
	}
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		c.logger.Warn("Повреждённая коллекция, читается как пустая",
			zap.String("collection", name), zap.Error(err))
		return make([]T, 0), nil
	}
	if records == nil {
		records = make([]T, 0)
	}
	return records, nil
}

// Save полностью перезаписывает коллекцию.
func Save[T any](ctx context.Context, c *Collections, name string, records []T) error {
	if records == nil {
		records = make([]T, 0)
	}
	payload, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("сериализация коллекции %s: %w", name, err)
	}
	if err := c.store.SetItem(ctx, c.Key(name), string(payload)); err != nil {
		return fmt.Errorf("запись коллекции %s: %w", name, err)
	}
	return nil
}

// LoadObject читает одиночный объект (например, текущую сессию).
// nil означает отсутствие или повреждённое содержимое.
func LoadObject[T any](ctx context.Context, c *Collections, name string) (*T, error) {
	raw, ok, err := c.store.GetItem(ctx, c.Key(name))
	if err != nil {
		return nil, fmt.Errorf("чтение объекта %s: %w", name, err)
	}
	if !ok || raw == "" || raw == "null" {
		return nil, nil
	}
	var obj T
	if err := json.Unmarshal([]byte(raw), &obj); err != nil {
		c.logger.Warn("Повреждённый объект, читается как отсутствующий",
			zap.String("key", name), zap.Error(err))
		return nil, nil
	}
	return &obj, nil
}

func SaveObject[T any](ctx context.Context, c *Collections, name string, obj T) error {
	payload, err := json.Marshal(obj)
	if err != nil {
		return fmt.Errorf("сериализация объекта %s: %w", name, err)
	}
	if err := c.store.SetItem(ctx, c.Key(name), string(payload)); err != nil {
		return fmt.Errorf("запись объекта %s: %w", name, err)
	}
	return nil
}

func (c *Collections) Remove(ctx context.Context, name string) error {
	if err := c.store.RemoveItem(ctx, c.Key(name)); err != nil {
		return fmt.Errorf("удаление %s: %w", name, err)
	}
	return nil
}
