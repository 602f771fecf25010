package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"os-manager/internal/authz"
	"os-manager/internal/controllers"
	"os-manager/internal/repositories"
	"os-manager/internal/services"
	"os-manager/pkg/config"
	"os-manager/pkg/eventbus"
	"os-manager/pkg/middleware"
	"os-manager/pkg/sanitize"
	"os-manager/pkg/service"
	"os-manager/pkg/storage"
	"os-manager/pkg/websocket"
)

type Loggers struct {
	Main  *zap.Logger
	Auth  *zap.Logger
	Order *zap.Logger
	User  *zap.Logger
}

// Dependencies - инфраструктура, которую собирает main.
type Dependencies struct {
	Collections *storage.Collections
	Cache       repositories.CacheRepositoryInterface
	Hasher      services.PasswordHasher
	Bus         *eventbus.Bus
	Hub         *websocket.Hub
	JWT         service.JWTService
}

func InitRouter(e *echo.Echo, deps Dependencies, loggers *Loggers, cfg *config.Config) {
	loggers.Main.Info("InitRouter: начало создания маршрутов")

	api := e.Group("/api")
	gatekeeper := authz.NewGatekeeper()
	sanitizer := sanitize.NewTextSanitizer()

	// --- 1. РЕПОЗИТОРИИ ---
	userRepo := repositories.NewUserRepository(deps.Collections, loggers.User)
	orderRepo := repositories.NewOrderRepository(deps.Collections, loggers.Order)
	logRepo := repositories.NewActivityLogRepository(deps.Collections)
	notificationRepo := repositories.NewNotificationRepository(deps.Collections)
	sessionRepo := repositories.NewSessionRepository(deps.Collections)

	// --- 2. СЕРВИСЫ ---
	logService := services.NewActivityLogService(logRepo, gatekeeper, loggers.Main)
	notificationService := services.NewNotificationService(notificationRepo, gatekeeper, deps.Bus, loggers.Main)
	authService := services.NewAuthService(userRepo, sessionRepo, deps.Cache, deps.Hasher, logService, deps.Bus, loggers.Auth, &cfg.Auth)
	orderService := services.NewOrderService(orderRepo, notificationService, logService, gatekeeper, sanitizer, deps.Bus, loggers.Order)
	userService := services.NewUserService(userRepo, deps.Hasher, logService, gatekeeper, sanitizer, loggers.User)
	dashboardService := services.NewDashboardService(orderRepo, gatekeeper, loggers.Main)
	reportService := services.NewReportService(orderRepo, gatekeeper, logService, loggers.Main)

	// --- 3. КОНТРОЛЛЕРЫ ---
	authMW := middleware.NewAuthMiddleware(deps.JWT, authService, loggers.Auth)
	loginLimiter := middleware.NewLoginRateLimiter(cfg.Auth.LoginRatePerMinute, loggers.Auth)

	authCtrl := controllers.NewAuthController(authService, deps.JWT, loggers.Auth)
	orderCtrl := controllers.NewOrderController(orderService, loggers.Order)
	userCtrl := controllers.NewUserController(userService, loggers.User)
	logCtrl := controllers.NewActivityLogController(logService, loggers.Main)
	notificationCtrl := controllers.NewNotificationController(notificationService, loggers.Main)
	dashboardCtrl := controllers.NewDashboardController(dashboardService, loggers.Main)
	reportCtrl := controllers.NewReportController(reportService, loggers.Main)
	wsCtrl := controllers.NewWebSocketController(deps.Hub, cfg.Server.AllowedOrigins, loggers.Main)

	// --- 4. РОУТЕРЫ ---
	secureGroup := api.Group("", authMW.Auth)

	runAuthRouter(api, secureGroup, authCtrl, loginLimiter)
	runOrderRouter(secureGroup, orderCtrl)
	runUserRouter(secureGroup, userCtrl)
	runActivityLogRouter(secureGroup, logCtrl)
	runNotificationRouter(secureGroup, notificationCtrl)
	runDashboardRouter(secureGroup, dashboardCtrl)
	runReportRouter(secureGroup, reportCtrl)
	e.GET("/ws", wsCtrl.ServeWs, authMW.AuthQuery)

	loggers.Main.Info("InitRouter: создание маршрутов завершено")
}
