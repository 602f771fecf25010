package repositories

import (
	"context"
	"time"

	"os-manager/internal/entities"
	"os-manager/pkg/storage"
)

type NotificationRepositoryInterface interface {
	List(ctx context.Context, params ListParams) ([]entities.Notification, error)
	Create(ctx context.Context, n entities.Notification) (*entities.Notification, error)
	MarkAsRead(ctx context.Context, id string) error
	MarkAllAsRead(ctx context.Context) (int, error)
}

type NotificationRepository struct {
	c collection[entities.Notification]
}

func NewNotificationRepository(cols *storage.Collections) *NotificationRepository {
	return &NotificationRepository{
		c: collection[entities.Notification]{
			cols: cols,
			name: storage.CollectionNotifications,
			id:   func(n *entities.Notification) string { return n.ID },
			timestamp: func(n *entities.Notification, field string) (time.Time, bool) {
				if field == SortCreatedDate {
					return n.CreatedDate, true
				}
				return time.Time{}, false
			},
		},
	}
}

func (r *NotificationRepository) List(ctx context.Context, params ListParams) ([]entities.Notification, error) {
	return r.c.list(ctx, params)
}

func (r *NotificationRepository) Create(ctx context.Context, n entities.Notification) (*entities.Notification, error) {
	unlock := r.c.lock()
	defer unlock()

	notes, err := r.c.load(ctx)
	if err != nil {
		return nil, err
	}
	n.ID = newID()
	n.IsRead = false
	n.CreatedDate = timeNow()
	notes = append(notes, n)

	if err := r.c.save(ctx, notes); err != nil {
		return nil, err
	}
	return &n, nil
}

// MarkAsRead - отсутствующий id не является ошибкой.
func (r *NotificationRepository) MarkAsRead(ctx context.Context, id string) error {
	unlock := r.c.lock()
	defer unlock()

	notes, err := r.c.load(ctx)
	if err != nil {
		return err
	}
	idx := r.c.indexOf(notes, id)
	if idx == -1 || notes[idx].IsRead {
		return nil
	}
	notes[idx].IsRead = true
	return r.c.save(ctx, notes)
}

func (r *NotificationRepository) MarkAllAsRead(ctx context.Context) (int, error) {
	unlock := r.c.lock()
	defer unlock()

	notes, err := r.c.load(ctx)
	if err != nil {
		return 0, err
	}
	marked := 0
	for i := range notes {
		if !notes[i].IsRead {
			notes[i].IsRead = true
			marked++
		}
	}
	if marked == 0 {
		return 0, nil
	}
	return marked, r.c.save(ctx, notes)
}
