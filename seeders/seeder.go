package seeders

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"os-manager/internal/entities"
	"os-manager/internal/repositories"
	"os-manager/internal/services"
	"os-manager/pkg/storage"
	"os-manager/pkg/utils"
)

// SeedAll выполняется при старте сервера: только учётные записи по умолчанию.
func SeedAll(ctx context.Context, cols *storage.Collections, hasher services.PasswordHasher, password string, logger *zap.Logger) error {
	_, err := SeedUsers(ctx, cols, hasher, password, logger)
	return err
}

// SeedUsers создаёт учётные записи по умолчанию, только если коллекция пользователей пуста.
func SeedUsers(ctx context.Context, cols *storage.Collections, hasher services.PasswordHasher, password string, logger *zap.Logger) (bool, error) {
	hash, err := hasher.Hash(password)
	if err != nil {
		return false, fmt.Errorf("не удалось захешировать пароль по умолчанию: %w", err)
	}

	users := make([]entities.User, 0, len(defaultUsers))
	for _, u := range defaultUsers {
		users = append(users, entities.User{
			FullName:     u.FullName,
			Email:        u.Email,
			Role:         u.Role,
			Department:   utils.NullString(u.Department),
			Nickname:     utils.NullString(u.Nickname),
			IsActive:     true,
			PasswordHash: hash,
		})
	}

	created, err := repositories.NewUserRepository(cols, logger).CreateIfEmpty(ctx, users)
	if err != nil {
		return false, fmt.Errorf("ошибка наполнения пользователей: %w", err)
	}
	if created {
		logger.Info("Созданы учётные записи по умолчанию", zap.Int("count", len(users)))
	} else {
		logger.Debug("Пользователи уже есть, пропускаем")
	}
	return created, nil
}

// SeedDemoOrder добавляет демонстрационную заявку 1001 в пустую коллекцию заявок.
func SeedDemoOrder(ctx context.Context, cols *storage.Collections, logger *zap.Logger) (bool, error) {
	repo := repositories.NewOrderRepository(cols, logger)
	existing, err := repo.List(ctx, repositories.ListParams{Limit: 1})
	if err != nil {
		return false, err
	}
	if len(existing) > 0 {
		logger.Debug("Заявки уже есть, демо-заявка не нужна")
		return false, nil
	}

	order := demoOrder
	order.ScheduledDate = time.Now().AddDate(0, 0, 7).Format(entities.DateLayout)
	if _, err := repo.Create(ctx, order); err != nil {
		return false, fmt.Errorf("ошибка создания демо-заявки: %w", err)
	}
	logger.Info("Создана демо-заявка", zap.String("os_number", order.OSNumber))
	return true, nil
}
