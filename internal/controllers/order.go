package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"os-manager/internal/dto"
	"os-manager/internal/entities"
	"os-manager/internal/services"
	apperrors "os-manager/pkg/errors"
	"os-manager/pkg/utils"
)

type OrderController struct {
	orderService services.OrderServiceInterface
	logger       *zap.Logger
}

func NewOrderController(orderService services.OrderServiceInterface, logger *zap.Logger) *OrderController {
	return &OrderController{orderService: orderService, logger: logger}
}

func (ctrl *OrderController) errorResponse(c echo.Context, err error) error {
	return utils.ErrorResponse(c, err, ctrl.logger)
}

func (ctrl *OrderController) GetOrders(c echo.Context) error {
	var filter dto.OrderFilterDTO
	if err := c.Bind(&filter); err != nil {
		return ctrl.errorResponse(c, apperrors.NewHttpError(http.StatusBadRequest, "Неверные параметры фильтра", err, nil))
	}
	if err := c.Validate(&filter); err != nil {
		return ctrl.errorResponse(c, err)
	}
	return ctrl.list(c, filter)
}

// TrackOrders - экран отслеживания: только просмотр, поиск без номера O.S.
func (ctrl *OrderController) TrackOrders(c echo.Context) error {
	filter := dto.OrderFilterDTO{
		Search: c.QueryParam("search"),
		Status: c.QueryParam("status"),
		Track:  true,
	}
	if err := c.Validate(&filter); err != nil {
		return ctrl.errorResponse(c, err)
	}
	return ctrl.list(c, filter)
}

func (ctrl *OrderController) list(c echo.Context, filter dto.OrderFilterDTO) error {
	orders, err := ctrl.orderService.List(c.Request().Context(), filter)
	if err != nil {
		return ctrl.errorResponse(c, err)
	}
	return utils.SuccessResponse(c, orders, "Список заявок", http.StatusOK)
}

func (ctrl *OrderController) FindOrder(c echo.Context) error {
	order, err := ctrl.orderService.FindByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return ctrl.errorResponse(c, err)
	}
	return utils.SuccessResponse(c, order, "Заявка", http.StatusOK)
}

func (ctrl *OrderController) CreateOrder(c echo.Context) error {
	var payload dto.CreateOrderDTO
	if err := c.Bind(&payload); err != nil {
		return ctrl.errorResponse(c, apperrors.NewHttpError(http.StatusBadRequest, "Неверный формат заявки", err, nil))
	}
	if err := c.Validate(&payload); err != nil {
		return ctrl.errorResponse(c, err)
	}

	order, err := ctrl.orderService.Create(c.Request().Context(), payload)
	if err != nil {
		return ctrl.errorResponse(c, err)
	}
	return utils.SuccessResponse(c, order, "Заявка создана", http.StatusCreated)
}

func (ctrl *OrderController) UpdateOrder(c echo.Context) error {
	var payload dto.UpdateOrderDTO
	if err := c.Bind(&payload); err != nil {
		return ctrl.errorResponse(c, apperrors.NewHttpError(http.StatusBadRequest, "Неверный формат заявки", err, nil))
	}
	if err := c.Validate(&payload); err != nil {
		return ctrl.errorResponse(c, err)
	}

	order, err := ctrl.orderService.Update(c.Request().Context(), c.Param("id"), payload)
	if err != nil {
		return ctrl.errorResponse(c, err)
	}
	return utils.SuccessResponse(c, order, "Заявка обновлена", http.StatusOK)
}

func (ctrl *OrderController) UpdateOrderStatus(c echo.Context) error {
	var payload dto.UpdateOrderStatusDTO
	if err := c.Bind(&payload); err != nil {
		return ctrl.errorResponse(c, apperrors.NewHttpError(http.StatusBadRequest, "Неверный формат статуса", err, nil))
	}
	if err := c.Validate(&payload); err != nil {
		return ctrl.errorResponse(c, err)
	}

	order, err := ctrl.orderService.UpdateStatus(c.Request().Context(), c.Param("id"), entities.OrderStatus(payload.Status))
	if err != nil {
		return ctrl.errorResponse(c, err)
	}
	return utils.SuccessResponse(c, order, "Статус заявки обновлён", http.StatusOK)
}

func (ctrl *OrderController) DeleteOrder(c echo.Context) error {
	if err := ctrl.orderService.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return ctrl.errorResponse(c, err)
	}
	return utils.SuccessResponse(c, nil, "Заявка удалена", http.StatusOK)
}
