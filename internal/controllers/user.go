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

type UserController struct {
	userService services.UserServiceInterface
	logger      *zap.Logger
}

func NewUserController(userService services.UserServiceInterface, logger *zap.Logger) *UserController {
	return &UserController{userService: userService, logger: logger}
}

func (ctrl *UserController) errorResponse(c echo.Context, err error) error {
	return utils.ErrorResponse(c, err, ctrl.logger)
}

func (ctrl *UserController) GetUsers(c echo.Context) error {
	users, err := ctrl.userService.List(c.Request().Context())
	if err != nil {
		return ctrl.errorResponse(c, err)
	}
	return utils.SuccessResponse(c, dto.NewUserResponseList(users), "Список пользователей", http.StatusOK)
}

func (ctrl *UserController) FindUser(c echo.Context) error {
	user, err := ctrl.userService.FindByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return ctrl.errorResponse(c, err)
	}
	return utils.SuccessResponse(c, dto.NewUserResponseDTO(user), "Пользователь", http.StatusOK)
}

func (ctrl *UserController) CreateUser(c echo.Context) error {
	var payload dto.CreateUserDTO
	if err := c.Bind(&payload); err != nil {
		return ctrl.errorResponse(c, apperrors.NewHttpError(http.StatusBadRequest, "Неверный формат данных пользователя", err, nil))
	}
	if err := c.Validate(&payload); err != nil {
		return ctrl.errorResponse(c, err)
	}

	user, err := ctrl.userService.Create(c.Request().Context(), payload)
	if err != nil {
		return ctrl.errorResponse(c, err)
	}
	return utils.SuccessResponse(c, dto.NewUserResponseDTO(user), "Пользователь создан", http.StatusCreated)
}

func (ctrl *UserController) UpdateUser(c echo.Context) error {
	var payload dto.UpdateUserDTO
	if err := c.Bind(&payload); err != nil {
		return ctrl.errorResponse(c, apperrors.NewHttpError(http.StatusBadRequest, "Неверный формат данных пользователя", err, nil))
	}
	if err := c.Validate(&payload); err != nil {
		return ctrl.errorResponse(c, err)
	}

	user, err := ctrl.userService.Update(c.Request().Context(), c.Param("id"), payload)
	if err != nil {
		return ctrl.errorResponse(c, err)
	}
	return utils.SuccessResponse(c, dto.NewUserResponseDTO(user), "Пользователь обновлён", http.StatusOK)
}

func (ctrl *UserController) DeleteUser(c echo.Context) error {
	if err := ctrl.userService.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return ctrl.errorResponse(c, err)
	}
	return utils.SuccessResponse(c, nil, "Пользователь удалён", http.StatusOK)
}
