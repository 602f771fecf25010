package repositories

import (
	"context"
	"time"

	"github.com/aarondl/null/v8"
	"go.uber.org/zap"

	"os-manager/internal/entities"
	apperrors "os-manager/pkg/errors"
	"os-manager/pkg/storage"
)

// OrderHook вызывается после успешной записи коллекции, пока блокировка ещё удерживается.
// before == nil для созданной заявки.
type OrderHook func(ctx context.Context, before *entities.ServiceOrder, after entities.ServiceOrder) error

type OrderRepositoryInterface interface {
	List(ctx context.Context, params ListParams) ([]entities.ServiceOrder, error)
	FindByID(ctx context.Context, id string) (*entities.ServiceOrder, error)
	Create(ctx context.Context, order entities.ServiceOrder, hooks ...OrderHook) (*entities.ServiceOrder, error)
	Update(ctx context.Context, id string, patch entities.ServiceOrderPatch, hooks ...OrderHook) (*entities.ServiceOrder, error)
	Delete(ctx context.Context, id string) error
}

type OrderRepository struct {
	c      collection[entities.ServiceOrder]
	logger *zap.Logger
}

func NewOrderRepository(cols *storage.Collections, logger *zap.Logger) *OrderRepository {
	return &OrderRepository{
		c: collection[entities.ServiceOrder]{
			cols: cols,
			name: storage.CollectionOrders,
			id:   func(o *entities.ServiceOrder) string { return o.ID },
			timestamp: func(o *entities.ServiceOrder, field string) (time.Time, bool) {
				switch field {
				case SortCreatedDate:
					return o.CreatedDate, true
				case SortUpdatedDate:
					return o.UpdatedDate, true
				}
				return time.Time{}, false
			},
		},
		logger: logger,
	}
}

func (r *OrderRepository) List(ctx context.Context, params ListParams) ([]entities.ServiceOrder, error) {
	return r.c.list(ctx, params)
}

func (r *OrderRepository) FindByID(ctx context.Context, id string) (*entities.ServiceOrder, error) {
	order, ok, err := r.c.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return order, nil
}

func (r *OrderRepository) Create(ctx context.Context, order entities.ServiceOrder, hooks ...OrderHook) (*entities.ServiceOrder, error) {
	unlock := r.c.lock()
	defer unlock()

	orders, err := r.c.load(ctx)
	if err != nil {
		return nil, err
	}

	now := timeNow()
	order.ID = newID()
	order.CreatedDate = now
	order.UpdatedDate = now
	stampExecuted(nil, &order, now)
	orders = append(orders, order)

	if err := r.c.save(ctx, orders); err != nil {
		return nil, err
	}
	r.logger.Debug("OrderRepository: заявка создана", zap.String("id", order.ID), zap.String("os_number", order.OSNumber))

	runHooks(ctx, r.logger, hooks, nil, order)
	return &order, nil
}

func (r *OrderRepository) Update(ctx context.Context, id string, patch entities.ServiceOrderPatch, hooks ...OrderHook) (*entities.ServiceOrder, error) {
	unlock := r.c.lock()
	defer unlock()

	orders, err := r.c.load(ctx)
	if err != nil {
		return nil, err
	}
	idx := r.c.indexOf(orders, id)
	if idx == -1 {
		return nil, apperrors.ErrNotFound
	}

	before := orders[idx]
	updated := before
	patch.Apply(&updated)
	updated.UpdatedDate = timeNow()
	stampExecuted(&before, &updated, updated.UpdatedDate)
	orders[idx] = updated

	if err := r.c.save(ctx, orders); err != nil {
		return nil, err
	}

	runHooks(ctx, r.logger, hooks, &before, updated)
	return &updated, nil
}

func (r *OrderRepository) Delete(ctx context.Context, id string) error {
	return r.c.delete(ctx, id)
}

// stampExecuted проставляет дату выполнения, когда заявка впервые переходит в executado
// и дата не была передана явно.
func stampExecuted(before *entities.ServiceOrder, after *entities.ServiceOrder, now time.Time) {
	if after.Status != entities.StatusExecutado || after.ExecutedDate.Valid {
		return
	}
	if before != nil && before.Status == entities.StatusExecutado {
		return
	}
	after.ExecutedDate = null.StringFrom(now.Format(entities.DateLayout))
}

// Ошибка хука не откатывает уже сохранённую запись, она только логируется.
func runHooks(ctx context.Context, logger *zap.Logger, hooks []OrderHook, before *entities.ServiceOrder, after entities.ServiceOrder) {
	for _, hook := range hooks {
		if err := hook(ctx, before, after); err != nil {
			logger.Error("OrderRepository: ошибка в обработчике после записи",
				zap.String("id", after.ID), zap.Error(err))
		}
	}
}
