package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"os-manager/internal/dto"
	"os-manager/internal/services"
	apperrors "os-manager/pkg/errors"
	"os-manager/pkg/utils"
)

type ActivityLogController struct {
	logService services.ActivityLogServiceInterface
	logger     *zap.Logger
}

func NewActivityLogController(logService services.ActivityLogServiceInterface, logger *zap.Logger) *ActivityLogController {
	return &ActivityLogController{logService: logService, logger: logger}
}

func (ctrl *ActivityLogController) GetLogs(c echo.Context) error {
	var filter dto.LogFilterDTO
	if err := c.Bind(&filter); err != nil {
		return utils.ErrorResponse(c, apperrors.NewHttpError(http.StatusBadRequest, "Неверные параметры фильтра", err, nil), ctrl.logger)
	}
	if err := c.Validate(&filter); err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	logs, err := ctrl.logService.List(c.Request().Context(), filter)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, logs, "Журнал действий", http.StatusOK)
}
