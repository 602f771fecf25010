package main

import (
	"context"
	"flag"
	"log"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"os-manager/internal/services"
	"os-manager/pkg/config"
	"os-manager/pkg/database/postgresql"
	applogger "os-manager/pkg/logger"
	"os-manager/pkg/storage"
	"os-manager/seeders"
)

func main() {
	runUsers := flag.Bool("users", false, "Создать учётные записи по умолчанию (если пользователей нет)")
	runDemo := flag.Bool("demo", false, "Создать демо-заявку 1001 (если заявок нет)")
	runAll := flag.Bool("all", false, "Запустить все сидеры")
	flag.Parse()

	if !*runUsers && !*runDemo && !*runAll {
		log.Println("Не выбран ни один сидер. Доступные флаги:")
		flag.PrintDefaults()
		return
	}

	cfg := config.New()
	logger := applogger.NewLogger(cfg.Log)
	defer func() { _ = logger.Sync() }()
	ctx := context.Background()

	var store storage.KeyValueStore
	switch cfg.Storage.Driver {
	case "postgres":
		pool, err := postgresql.ConnectDB(ctx, cfg.Postgres.DSN, logger)
		if err != nil {
			logger.Fatal("не удалось подключиться к PostgreSQL", zap.Error(err))
		}
		defer pool.Close()
		if err := postgresql.Migrate(ctx, pool); err != nil {
			logger.Fatal("не удалось применить миграции", zap.Error(err))
		}
		store = storage.NewPostgresStore(pool)
	case "redis":
		client := redis.NewClient(&redis.Options{Addr: cfg.Redis.Address, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		defer client.Close()
		if err := client.Ping(ctx).Err(); err != nil {
			logger.Fatal("не удалось подключиться к Redis", zap.Error(err))
		}
		store = storage.NewRedisStore(client)
	default:
		logger.Fatal("Сидеры работают только с постоянным хранилищем (STORAGE_DRIVER=postgres|redis)",
			zap.String("driver", cfg.Storage.Driver))
	}
	cols := storage.NewCollections(store, cfg.Storage.KeyPrefix, logger)

	if *runAll || *runUsers {
		hasher, err := services.NewPasswordHasher(cfg.Auth.PasswordHasher)
		if err != nil {
			logger.Fatal("Неизвестный алгоритм хеширования", zap.Error(err))
		}
		if _, err := seeders.SeedUsers(ctx, cols, hasher, cfg.Auth.SeedDefaultPassword, logger); err != nil {
			logger.Fatal("Ошибка наполнения пользователей", zap.Error(err))
		}
	}
	if *runAll || *runDemo {
		if _, err := seeders.SeedDemoOrder(ctx, cols, logger); err != nil {
			logger.Fatal("Ошибка создания демо-заявки", zap.Error(err))
		}
	}
	logger.Info("Наполнение завершено")
}
