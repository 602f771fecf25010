// internal/authz/permissions.go
package authz

// --- СПИСОК ВСЕХ ПЕРМИШЕНОВ В СИСТЕМЕ ---

const (
	// Общие экраны, доступны любой роли
	DashboardView     = "dashboard:view"
	TrackView         = "track:view"
	ProfileUpdate     = "profile:update"
	NotificationsView = "notifications:view"

	// Заявки (O.S.)
	OrdersView   = "orders:view"
	OrdersCreate = "orders:create"
	OrdersUpdate = "orders:update"
	OrdersDelete = "orders:delete"
	OrdersStatus = "orders:status"

	// Пользователи
	UsersManage = "users:manage"

	// Отчёты и журнал
	ReportsView = "reports:view"
	LogsView    = "logs:view"
)

// AllPermissions - полный список, в порядке отображения.
var AllPermissions = []string{
	DashboardView, TrackView, ProfileUpdate, NotificationsView,
	OrdersView, OrdersCreate, OrdersUpdate, OrdersDelete, OrdersStatus,
	UsersManage, ReportsView, LogsView,
}
