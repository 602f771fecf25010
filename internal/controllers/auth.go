package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"os-manager/internal/authz"
	"os-manager/internal/dto"
	"os-manager/internal/entities"
	"os-manager/internal/services"
	apperrors "os-manager/pkg/errors"
	"os-manager/pkg/service"
	"os-manager/pkg/utils"
)

type AuthController struct {
	authService services.AuthServiceInterface
	jwtSvc      service.JWTService
	logger      *zap.Logger
}

func NewAuthController(authService services.AuthServiceInterface, jwtSvc service.JWTService, logger *zap.Logger) *AuthController {
	return &AuthController{
		authService: authService,
		jwtSvc:      jwtSvc,
		logger:      logger,
	}
}

func (ctrl *AuthController) errorResponse(c echo.Context, err error) error {
	return utils.ErrorResponse(c, err, ctrl.logger)
}

func (ctrl *AuthController) Login(c echo.Context) error {
	var payload dto.LoginDTO
	if err := c.Bind(&payload); err != nil {
		return ctrl.errorResponse(c, apperrors.NewHttpError(http.StatusBadRequest, "Неверный формат данных для входа", err, nil))
	}
	if err := c.Validate(&payload); err != nil {
		return ctrl.errorResponse(c, err)
	}

	user, err := ctrl.authService.Login(c.Request().Context(), payload)
	if err != nil {
		return ctrl.errorResponse(c, err)
	}

	token, err := ctrl.jwtSvc.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		return ctrl.errorResponse(c, apperrors.NewHttpError(http.StatusInternalServerError, "Не удалось выпустить токен", err, nil))
	}
	return utils.SuccessResponse(c, dto.AuthResponseDTO{
		AccessToken: token,
		User:        userWithPermissions(user),
	}, "Авторизация прошла успешно", http.StatusOK)
}

func (ctrl *AuthController) Logout(c echo.Context) error {
	if err := ctrl.authService.Logout(c.Request().Context()); err != nil {
		return ctrl.errorResponse(c, err)
	}
	return utils.SuccessResponse(c, nil, "Вы успешно вышли из системы.", http.StatusOK)
}

func (ctrl *AuthController) Me(c echo.Context) error {
	user, err := ctrl.authService.Me(c.Request().Context())
	if err != nil {
		return ctrl.errorResponse(c, err)
	}
	if user == nil {
		return ctrl.errorResponse(c, apperrors.ErrUnauthenticated)
	}
	return utils.SuccessResponse(c, userWithPermissions(user), "Профиль пользователя", http.StatusOK)
}

func (ctrl *AuthController) UpdateProfile(c echo.Context) error {
	var payload dto.ProfileUpdateDTO
	if err := c.Bind(&payload); err != nil {
		return ctrl.errorResponse(c, apperrors.NewHttpError(http.StatusBadRequest, "Неверный формат данных профиля", err, nil))
	}
	if err := c.Validate(&payload); err != nil {
		return ctrl.errorResponse(c, err)
	}

	user, err := ctrl.authService.UpdateProfile(c.Request().Context(), payload)
	if err != nil {
		return ctrl.errorResponse(c, err)
	}
	return utils.SuccessResponse(c, userWithPermissions(user), "Профиль обновлён", http.StatusOK)
}

func userWithPermissions(u *entities.User) *dto.UserResponseDTO {
	res := dto.NewUserResponseDTO(u)
	if res != nil {
		res.Permissions = authz.PermissionsFor(u.Role)
	}
	return res
}
