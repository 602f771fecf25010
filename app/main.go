package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"os-manager/internal/listeners"
	"os-manager/internal/repositories"
	"os-manager/internal/routes"
	"os-manager/internal/services"
	"os-manager/pkg/config"
	"os-manager/pkg/customvalidator"
	"os-manager/pkg/database/postgresql"
	apperrors "os-manager/pkg/errors"
	"os-manager/pkg/eventbus"
	applogger "os-manager/pkg/logger"
	"os-manager/pkg/metrics"
	appmiddleware "os-manager/pkg/middleware"
	"os-manager/pkg/service"
	"os-manager/pkg/storage"
	"os-manager/pkg/utils"
	"os-manager/pkg/websocket"
	"os-manager/seeders"
)

func main() {
	cfg := config.New()
	logger := applogger.NewLogger(cfg.Log)
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 1. Хранилище и кэш
	store, cache, closeStore := openStorage(ctx, cfg, logger)
	defer closeStore()
	cols := storage.NewCollections(store, cfg.Storage.KeyPrefix, logger)

	hasher, err := services.NewPasswordHasher(cfg.Auth.PasswordHasher)
	if err != nil {
		logger.Fatal("Неизвестный алгоритм хеширования паролей", zap.Error(err))
	}

	if err := seeders.SeedAll(ctx, cols, hasher, cfg.Auth.SeedDefaultPassword, logger); err != nil {
		logger.Fatal("Не удалось заполнить начальные данные", zap.Error(err))
	}

	// 2. События, websocket, метрики
	bus := eventbus.New(logger)
	hub := websocket.NewHub(logger)
	go hub.Run(ctx)

	registry := prometheus.NewRegistry()
	collector := metrics.NewCollector(registry)
	listeners.NewNotificationListener(hub, logger).Register(bus)
	listeners.NewMetricsListener(collector, logger).Register(bus)

	// 3. Echo
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		DisableStackAll: true,
		StackSize:       1 << 10,
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			logger.Error("!!! ОБНАРУЖЕНА ПАНИКА (PANIC) !!!",
				zap.String("method", c.Request().Method),
				zap.String("uri", c.Request().RequestURI),
				zap.Error(err),
				zap.String("stack", string(stack)),
			)
			if !c.Response().Committed {
				httpErr := apperrors.NewHttpError(http.StatusInternalServerError, "Внутренняя ошибка сервера", err, nil)
				_ = utils.ErrorResponse(c, httpErr, logger)
			}
			return err
		},
	}))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowCredentials: true,
		ExposeHeaders:    []string{echo.HeaderContentDisposition},
	}))
	e.Use(appmiddleware.InjectLogger(logger))
	e.Use(appmiddleware.RequestLogger(logger, collector))

	v := validator.New()
	if err := customvalidator.RegisterCustomValidations(v); err != nil {
		logger.Fatal("Ошибка регистрации кастомных правил валидации", zap.Error(err))
	}
	e.Validator = utils.NewValidator(v)

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok", "storage": cfg.Storage.Driver})
	})
	e.GET("/metrics", echo.WrapHandler(metrics.Handler(registry)))

	jwtSvc := service.NewJWTService(cfg.JWT.SecretKey, cfg.JWT.AccessTokenTTL, logger)
	routes.InitRouter(e, routes.Dependencies{
		Collections: cols,
		Cache:       cache,
		Hasher:      hasher,
		Bus:         bus,
		Hub:         hub,
		JWT:         jwtSvc,
	}, &routes.Loggers{
		Main:  logger,
		Auth:  logger.Named("auth"),
		Order: logger.Named("order"),
		User:  logger.Named("user"),
	}, cfg)

	// 4. Запуск и остановка
	go func() {
		logger.Info("Сервер запущен", zap.String("port", cfg.Server.Port), zap.String("storage", cfg.Storage.Driver))
		if err := e.Start(":" + cfg.Server.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Ошибка запуска сервера", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("Получен сигнал остановки, завершаем работу")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("Ошибка при остановке сервера", zap.Error(err))
	}
	bus.Wait()
}

// openStorage выбирает адаптер хранилища по STORAGE_DRIVER. Кэш попыток входа
// живёт в Redis, если он настроен, иначе в памяти процесса.
func openStorage(ctx context.Context, cfg *config.Config, logger *zap.Logger) (storage.KeyValueStore, repositories.CacheRepositoryInterface, func()) {
	switch cfg.Storage.Driver {
	case "redis":
		client := connectRedis(ctx, cfg, logger)
		return storage.NewRedisStore(client), repositories.NewRedisCacheRepository(client), func() { _ = client.Close() }
	case "postgres":
		pool := connectPostgres(ctx, cfg, logger)
		var cache repositories.CacheRepositoryInterface = repositories.NewMemoryCacheRepository()
		var client *redis.Client
		if cfg.Redis.Address != "" {
			client = redis.NewClient(&redis.Options{Addr: cfg.Redis.Address, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
			if err := client.Ping(ctx).Err(); err != nil {
				logger.Warn("Redis недоступен, кэш попыток входа в памяти", zap.Error(err))
				_ = client.Close()
				client = nil
			} else {
				cache = repositories.NewRedisCacheRepository(client)
			}
		}
		return storage.NewPostgresStore(pool), cache, func() {
			pool.Close()
			if client != nil {
				_ = client.Close()
			}
		}
	case "memory", "":
		logger.Warn("Используется хранилище в памяти, данные не переживут перезапуск")
		return storage.NewMemoryStore(), repositories.NewMemoryCacheRepository(), func() {}
	}
	logger.Fatal("Неизвестный STORAGE_DRIVER", zap.String("driver", cfg.Storage.Driver))
	return nil, nil, nil
}

func connectRedis(ctx context.Context, cfg *config.Config, logger *zap.Logger) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Address,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Fatal("не удалось подключиться к Redis", zap.Error(err), zap.String("address", cfg.Redis.Address))
	}
	return client
}

func connectPostgres(ctx context.Context, cfg *config.Config, logger *zap.Logger) *pgxpool.Pool {
	pool, err := postgresql.ConnectDB(ctx, cfg.Postgres.DSN, logger)
	if err != nil {
		logger.Fatal("не удалось подключиться к PostgreSQL", zap.Error(err))
	}
	if err := postgresql.Migrate(ctx, pool); err != nil {
		logger.Fatal("не удалось применить миграции", zap.Error(err))
	}
	return pool
}
