package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"os-manager/internal/authz"
	"os-manager/internal/entities"
	"os-manager/internal/repositories"
	"os-manager/pkg/config"
	"os-manager/pkg/eventbus"
	"os-manager/pkg/sanitize"
	"os-manager/pkg/storage"
	"os-manager/pkg/utils"
)

// testEnv - все сервисы поверх хранилища в памяти.
type testEnv struct {
	cols          *storage.Collections
	bus           *eventbus.Bus
	hasher        PasswordHasher
	users         *repositories.UserRepository
	orders        *repositories.OrderRepository
	logs          *repositories.ActivityLogRepository
	notifications *repositories.NotificationRepository
	session       *repositories.SessionRepository
	cache         *repositories.MemoryCacheRepository

	auth          *AuthService
	orderService  *OrderService
	userService   *UserService
	notifyService *NotificationService
	logService    *ActivityLogService
	dashboard     *DashboardService
	reports       *ReportService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	logger := zap.NewNop()
	cols := storage.NewCollections(storage.NewMemoryStore(), "os_manager_", logger)
	bus := eventbus.New(logger)
	gatekeeper := authz.NewGatekeeper()
	sanitizer := sanitize.NewTextSanitizer()
	hasher, err := NewPasswordHasher(HasherBcrypt)
	require.NoError(t, err)

	env := &testEnv{
		cols:          cols,
		bus:           bus,
		hasher:        hasher,
		users:         repositories.NewUserRepository(cols, logger),
		orders:        repositories.NewOrderRepository(cols, logger),
		logs:          repositories.NewActivityLogRepository(cols),
		notifications: repositories.NewNotificationRepository(cols),
		session:       repositories.NewSessionRepository(cols),
		cache:         repositories.NewMemoryCacheRepository(),
	}
	authCfg := &config.AuthConfig{MaxLoginAttempts: 3, LockoutDuration: time.Minute}

	env.logService = NewActivityLogService(env.logs, gatekeeper, logger)
	env.notifyService = NewNotificationService(env.notifications, gatekeeper, bus, logger)
	env.auth = NewAuthService(env.users, env.session, env.cache, hasher, env.logService, bus, logger, authCfg)
	env.orderService = NewOrderService(env.orders, env.notifyService, env.logService, gatekeeper, sanitizer, bus, logger)
	env.userService = NewUserService(env.users, hasher, env.logService, gatekeeper, sanitizer, logger)
	env.dashboard = NewDashboardService(env.orders, gatekeeper, logger)
	env.reports = NewReportService(env.orders, gatekeeper, env.logService, logger)

	t.Cleanup(bus.Wait)
	return env
}

// seedUser кладёт пользователя прямо в репозиторий, минуя проверки прав.
func (e *testEnv) seedUser(t *testing.T, email, password string, role entities.Role, active bool) *entities.User {
	t.Helper()
	hash, err := e.hasher.Hash(password)
	require.NoError(t, err)
	u, err := e.users.Create(context.Background(), entities.User{
		FullName:     email,
		Email:        email,
		Role:         role,
		IsActive:     active,
		PasswordHash: hash,
	})
	require.NoError(t, err)
	return u
}

// as возвращает контекст запроса от имени пользователя с указанной ролью.
func (e *testEnv) as(t *testing.T, role entities.Role) context.Context {
	t.Helper()
	u, err := e.users.Create(context.Background(), entities.User{
		FullName: string(role) + " tester",
		Email:    string(role) + "-" + time.Now().Format("150405.000000000") + "@ospro.com",
		Role:     role,
		IsActive: true,
	})
	require.NoError(t, err)
	return utils.WithActor(context.Background(), u)
}

func (e *testEnv) notificationsOfType(t *testing.T, kind entities.NotificationType) []entities.Notification {
	t.Helper()
	all, err := e.notifications.List(context.Background(), repositories.ListParams{})
	require.NoError(t, err)
	var out []entities.Notification
	for _, n := range all {
		if n.Type == kind {
			out = append(out, n)
		}
	}
	return out
}

func strPtr(s string) *string { return &s }

func boolPtr(b bool) *bool { return &b }
