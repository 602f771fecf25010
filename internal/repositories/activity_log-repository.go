package repositories

import (
	"context"
	"time"

	"os-manager/internal/entities"
	"os-manager/pkg/storage"
)

// ActivityLogRepositoryInterface - журнал только дополняется.
type ActivityLogRepositoryInterface interface {
	List(ctx context.Context, params ListParams) ([]entities.ActivityLog, error)
	Create(ctx context.Context, log entities.ActivityLog) (*entities.ActivityLog, error)
}

type ActivityLogRepository struct {
	c collection[entities.ActivityLog]
}

func NewActivityLogRepository(cols *storage.Collections) *ActivityLogRepository {
	return &ActivityLogRepository{
		c: collection[entities.ActivityLog]{
			cols: cols,
			name: storage.CollectionLogs,
			id:   func(l *entities.ActivityLog) string { return l.ID },
			timestamp: func(l *entities.ActivityLog, field string) (time.Time, bool) {
				if field == SortCreatedDate {
					return l.CreatedDate, true
				}
				return time.Time{}, false
			},
		},
	}
}

func (r *ActivityLogRepository) List(ctx context.Context, params ListParams) ([]entities.ActivityLog, error) {
	return r.c.list(ctx, params)
}

func (r *ActivityLogRepository) Create(ctx context.Context, log entities.ActivityLog) (*entities.ActivityLog, error) {
	unlock := r.c.lock()
	defer unlock()

	logs, err := r.c.load(ctx)
	if err != nil {
		return nil, err
	}
	log.ID = newID()
	log.CreatedDate = timeNow()
	logs = append(logs, log)

	if err := r.c.save(ctx, logs); err != nil {
		return nil, err
	}
	return &log, nil
}
