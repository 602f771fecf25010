package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"os-manager/internal/services"
	"os-manager/pkg/utils"
)

type NotificationController struct {
	notificationService services.NotificationServiceInterface
	logger              *zap.Logger
}

func NewNotificationController(notificationService services.NotificationServiceInterface, logger *zap.Logger) *NotificationController {
	return &NotificationController{notificationService: notificationService, logger: logger}
}

func (ctrl *NotificationController) GetNotifications(c echo.Context) error {
	list, err := ctrl.notificationService.List(c.Request().Context())
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, list, "Уведомления", http.StatusOK)
}

func (ctrl *NotificationController) GetUnreadCount(c echo.Context) error {
	count, err := ctrl.notificationService.UnreadCount(c.Request().Context())
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, map[string]int{"unread_count": count}, "Непрочитанные уведомления", http.StatusOK)
}

func (ctrl *NotificationController) MarkAsRead(c echo.Context) error {
	if err := ctrl.notificationService.MarkAsRead(c.Request().Context(), c.Param("id")); err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, nil, "Уведомление прочитано", http.StatusOK)
}

func (ctrl *NotificationController) MarkAllAsRead(c echo.Context) error {
	marked, err := ctrl.notificationService.MarkAllAsRead(c.Request().Context())
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, map[string]int{"marked": marked}, "Все уведомления прочитаны", http.StatusOK)
}
