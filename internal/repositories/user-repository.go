package repositories

import (
	"context"
	"time"

	"go.uber.org/zap"

	"os-manager/internal/entities"
	apperrors "os-manager/pkg/errors"
	"os-manager/pkg/storage"
)

type UserRepositoryInterface interface {
	List(ctx context.Context, params ListParams) ([]entities.User, error)
	Count(ctx context.Context) (int, error)
	FindByID(ctx context.Context, id string) (*entities.User, error)
	FindByEmail(ctx context.Context, email string) (*entities.User, error)
	Create(ctx context.Context, user entities.User) (*entities.User, error)
	CreateIfEmpty(ctx context.Context, users []entities.User) (bool, error)
	Update(ctx context.Context, id string, patch entities.UserPatch) (*entities.User, error)
	Delete(ctx context.Context, id string) error
}

type UserRepository struct {
	c      collection[entities.User]
	logger *zap.Logger
}

func NewUserRepository(cols *storage.Collections, logger *zap.Logger) *UserRepository {
	return &UserRepository{
		c: collection[entities.User]{
			cols: cols,
			name: storage.CollectionUsers,
			id:   func(u *entities.User) string { return u.ID },
			timestamp: func(u *entities.User, field string) (time.Time, bool) {
				switch field {
				case SortCreatedDate:
					return u.CreatedDate, true
				case SortUpdatedDate:
					return u.UpdatedDate, true
				}
				return time.Time{}, false
			},
		},
		logger: logger,
	}
}

func (r *UserRepository) List(ctx context.Context, params ListParams) ([]entities.User, error) {
	return r.c.list(ctx, params)
}

func (r *UserRepository) Count(ctx context.Context) (int, error) {
	users, err := r.c.load(ctx)
	if err != nil {
		return 0, err
	}
	return len(users), nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*entities.User, error) {
	user, ok, err := r.c.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return user, nil
}

// FindByEmail - точное совпадение, как в исходной консоли. Уникальность email не гарантируется,
// возвращается первая подходящая запись.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entities.User, error) {
	users, err := r.c.load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].Email == email {
			return &users[i], nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (r *UserRepository) Create(ctx context.Context, user entities.User) (*entities.User, error) {
	unlock := r.c.lock()
	defer unlock()

	users, err := r.c.load(ctx)
	if err != nil {
		return nil, err
	}
	now := timeNow()
	user.ID = newID()
	user.CreatedDate = now
	user.UpdatedDate = now
	users = append(users, user)

	if err := r.c.save(ctx, users); err != nil {
		return nil, err
	}
	r.logger.Debug("UserRepository: пользователь создан", zap.String("id", user.ID))
	return &user, nil
}

// CreateIfEmpty записывает пользователей только если коллекция пуста.
// Возвращает true, если запись произошла.
func (r *UserRepository) CreateIfEmpty(ctx context.Context, seed []entities.User) (bool, error) {
	unlock := r.c.lock()
	defer unlock()

	users, err := r.c.load(ctx)
	if err != nil {
		return false, err
	}
	if len(users) > 0 {
		return false, nil
	}

	now := timeNow()
	for _, u := range seed {
		if u.ID == "" {
			u.ID = newID()
		}
		u.CreatedDate = now
		u.UpdatedDate = now
		users = append(users, u)
	}
	if err := r.c.save(ctx, users); err != nil {
		return false, err
	}
	return true, nil
}

func (r *UserRepository) Update(ctx context.Context, id string, patch entities.UserPatch) (*entities.User, error) {
	unlock := r.c.lock()
	defer unlock()

	users, err := r.c.load(ctx)
	if err != nil {
		return nil, err
	}
	idx := r.c.indexOf(users, id)
	if idx == -1 {
		return nil, apperrors.ErrUserNotFound
	}

	updated := users[idx]
	patch.Apply(&updated)
	updated.UpdatedDate = timeNow()
	users[idx] = updated

	if err := r.c.save(ctx, users); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *UserRepository) Delete(ctx context.Context, id string) error {
	return r.c.delete(ctx, id)
}
