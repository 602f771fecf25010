package authz

import (
	"os-manager/internal/entities"
)

var common = []string{DashboardView, TrackView, ProfileUpdate, NotificationsView, OrdersView}

// rolePermissions - статическая таблица доступа. Роли вне таблицы прав не имеют.
var rolePermissions = map[entities.Role]map[string]bool{
	entities.RoleManager: set(common,
		OrdersCreate, OrdersUpdate, OrdersDelete, OrdersStatus,
		UsersManage, ReportsView, LogsView),
	entities.RoleAdmin: set(common,
		OrdersCreate, OrdersUpdate, OrdersDelete, OrdersStatus,
		UsersManage, ReportsView),
	entities.RoleAnalist: set(common,
		OrdersStatus, ReportsView),
	entities.RoleUser: set(common,
		OrdersCreate),
}

func set(base []string, extra ...string) map[string]bool {
	m := make(map[string]bool, len(base)+len(extra))
	for _, p := range base {
		m[p] = true
	}
	for _, p := range extra {
		m[p] = true
	}
	return m
}

// Can - есть ли у роли право.
func Can(role entities.Role, permission string) bool {
	return rolePermissions[role][permission]
}

// PermissionsFor возвращает права роли в порядке AllPermissions.
func PermissionsFor(role entities.Role) []string {
	perms := make([]string, 0, len(AllPermissions))
	for _, p := range AllPermissions {
		if Can(role, p) {
			perms = append(perms, p)
		}
	}
	return perms
}

// CanAssignRole - роль manager выдаёт и снимает только manager.
// Остальные роли может назначать любой, у кого есть users:manage.
func CanAssignRole(actorRole, targetRole entities.Role) bool {
	if !Can(actorRole, UsersManage) || !targetRole.Valid() {
		return false
	}
	if targetRole == entities.RoleManager {
		return actorRole == entities.RoleManager
	}
	return true
}
