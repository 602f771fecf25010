package repositories

import (
	"context"

	"os-manager/internal/entities"
	"os-manager/pkg/storage"
)

// SessionRepositoryInterface - указатель на "текущего пользователя", хранится отдельно от коллекции users.
// Его наличие - единственный признак аутентификации: без токена и срока жизни.
type SessionRepositoryInterface interface {
	Get(ctx context.Context) (*entities.User, error)
	Set(ctx context.Context, user entities.User) error
	Clear(ctx context.Context) error
}

type SessionRepository struct {
	cols *storage.Collections
}

func NewSessionRepository(cols *storage.Collections) *SessionRepository {
	return &SessionRepository{cols: cols}
}

func (r *SessionRepository) Get(ctx context.Context) (*entities.User, error) {
	return storage.LoadObject[entities.User](ctx, r.cols, storage.CollectionCurrentUser)
}

// Set сохраняет копию пользователя без хеша пароля.
func (r *SessionRepository) Set(ctx context.Context, user entities.User) error {
	user.PasswordHash = ""
	return storage.SaveObject(ctx, r.cols, storage.CollectionCurrentUser, user)
}

func (r *SessionRepository) Clear(ctx context.Context) error {
	return r.cols.Remove(ctx, storage.CollectionCurrentUser)
}
