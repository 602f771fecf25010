package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"os-manager/internal/dto"
	"os-manager/internal/services"
	apperrors "os-manager/pkg/errors"
	"os-manager/pkg/utils"
)

const reportTimeout = 30 * time.Second

type ReportController struct {
	reportService services.ReportServiceInterface
	logger        *zap.Logger
}

func NewReportController(reportService services.ReportServiceInterface, logger *zap.Logger) *ReportController {
	return &ReportController{reportService: reportService, logger: logger}
}

func (ctrl *ReportController) bindFilter(c echo.Context) (dto.ReportFilterDTO, error) {
	var filter dto.ReportFilterDTO
	if err := c.Bind(&filter); err != nil {
		return filter, apperrors.NewHttpError(http.StatusBadRequest, "Неверные параметры отчёта", err, nil)
	}
	return filter, c.Validate(&filter)
}

func (ctrl *ReportController) GetReport(c echo.Context) error {
	filter, err := ctrl.bindFilter(c)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	ctx, cancel := utils.RequestContext(c, reportTimeout)
	defer cancel()

	report, err := ctrl.reportService.Report(ctx, filter)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, report, "Отчёт", http.StatusOK)
}

// ExportReport отдаёт файл (xlsx по умолчанию, csv по ?format=csv).
func (ctrl *ReportController) ExportReport(c echo.Context) error {
	filter, err := ctrl.bindFilter(c)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	ctx, cancel := utils.RequestContext(c, reportTimeout)
	defer cancel()

	file, err := ctrl.reportService.Export(ctx, filter)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, file.Name))
	return c.Blob(http.StatusOK, file.ContentType, file.Data)
}
