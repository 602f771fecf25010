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

type DashboardController struct {
	dashboardService services.DashboardServiceInterface
	logger           *zap.Logger
}

func NewDashboardController(dashboardService services.DashboardServiceInterface, logger *zap.Logger) *DashboardController {
	return &DashboardController{dashboardService: dashboardService, logger: logger}
}

func (ctrl *DashboardController) GetDashboard(c echo.Context) error {
	var filter dto.DashboardFilterDTO
	if err := c.Bind(&filter); err != nil {
		return utils.ErrorResponse(c, apperrors.NewHttpError(http.StatusBadRequest, "Неверные параметры дашборда", err, nil), ctrl.logger)
	}
	if err := c.Validate(&filter); err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	ctx, cancel := utils.RequestContext(c, reportTimeout)
	defer cancel()

	data, err := ctrl.dashboardService.Get(ctx, filter)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, data, "Данные дашборда", http.StatusOK)
}
