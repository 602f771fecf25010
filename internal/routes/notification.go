package routes

import (
	"github.com/labstack/echo/v4"

	"os-manager/internal/controllers"
)

func runNotificationRouter(secureGroup *echo.Group, ctrl *controllers.NotificationController) {
	secureGroup.GET("/notifications", ctrl.GetNotifications)
	secureGroup.GET("/notifications/unread-count", ctrl.GetUnreadCount)
	secureGroup.PATCH("/notifications/read-all", ctrl.MarkAllAsRead)
	secureGroup.PATCH("/notifications/:id/read", ctrl.MarkAsRead)
}

func runActivityLogRouter(secureGroup *echo.Group, ctrl *controllers.ActivityLogController) {
	secureGroup.GET("/logs", ctrl.GetLogs)
}
