package repositories

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"os-manager/pkg/storage"
)

// Поля, по которым можно сортировать список.
const (
	SortCreatedDate = "created_date"
	SortUpdatedDate = "updated_date"
)

// ListParams - сортировка и лимит независимы друг от друга.
// Пустой SortDesc сохраняет порядок хранения, Limit <= 0 - без ограничения.
type ListParams struct {
	SortDesc string
	Limit    int
}

var timeNow = func() time.Time { return time.Now().UTC() }

func newID() string {
	return uuid.NewString()
}

// collection - общая часть всех репозиториев поверх адаптера хранилища.
type collection[T any] struct {
	cols      *storage.Collections
	name      string
	id        func(*T) string
	timestamp func(*T, string) (time.Time, bool)
}

func (c collection[T]) lock() func() {
	return c.cols.Lock(c.name)
}

func (c collection[T]) load(ctx context.Context) ([]T, error) {
	return storage.Load[T](ctx, c.cols, c.name)
}

func (c collection[T]) save(ctx context.Context, items []T) error {
	return storage.Save(ctx, c.cols, c.name, items)
}

func (c collection[T]) indexOf(items []T, id string) int {
	for i := range items {
		if c.id(&items[i]) == id {
			return i
		}
	}
	return -1
}

func (c collection[T]) list(ctx context.Context, params ListParams) ([]T, error) {
	items, err := c.load(ctx)
	if err != nil {
		return nil, err
	}
	if params.SortDesc != "" && c.timestamp != nil {
		field := params.SortDesc
		sort.SliceStable(items, func(i, j int) bool {
			a, _ := c.timestamp(&items[i], field)
			b, _ := c.timestamp(&items[j], field)
			return a.After(b)
		})
	}
	if params.Limit > 0 && len(items) > params.Limit {
		items = items[:params.Limit]
	}
	return items, nil
}

func (c collection[T]) find(ctx context.Context, id string) (*T, bool, error) {
	items, err := c.load(ctx)
	if err != nil {
		return nil, false, err
	}
	idx := c.indexOf(items, id)
	if idx == -1 {
		return nil, false, nil
	}
	return &items[idx], true, nil
}

// delete удаляет запись; отсутствие записи ошибкой не считается.
func (c collection[T]) delete(ctx context.Context, id string) error {
	unlock := c.lock()
	defer unlock()

	items, err := c.load(ctx)
	if err != nil {
		return err
	}
	filtered := items[:0]
	for i := range items {
		if c.id(&items[i]) != id {
			filtered = append(filtered, items[i])
		}
	}
	return c.save(ctx, filtered)
}
