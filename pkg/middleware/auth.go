package middleware

import (
	"context"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"os-manager/internal/entities"
	apperrors "os-manager/pkg/errors"
	"os-manager/pkg/service"
	"os-manager/pkg/utils"
)

// UserLoader - источник актуальной записи пользователя по id из токена.
type UserLoader interface {
	GetUserByID(ctx context.Context, id string) (*entities.User, error)
}

type AuthMiddleware struct {
	jwtService service.JWTService
	users      UserLoader
	logger     *zap.Logger
}

func NewAuthMiddleware(jwtSvc service.JWTService, users UserLoader, logger *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtSvc,
		users:      users,
		logger:     logger,
	}
}

// Auth проверяет Bearer-токен и кладёт в контекст запроса актуального пользователя.
// Роль и активность берутся из хранилища, а не из токена.
func (m *AuthMiddleware) Auth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		tokenString, err := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
		if err != nil {
			m.logger.Debug("AuthMiddleware: нет корректного заголовка Authorization", zap.Error(err))
			return utils.ErrorResponse(c, err, m.logger)
		}
		return m.authenticate(c, tokenString, next)
	}
}

// AuthQuery - то же для websocket: браузер не может передать заголовок, токен приходит в ?token=.
func (m *AuthMiddleware) AuthQuery(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		tokenString := c.QueryParam("token")
		if tokenString == "" {
			return utils.ErrorResponse(c, apperrors.ErrEmptyAuthHeader, m.logger)
		}
		return m.authenticate(c, tokenString, next)
	}
}

func (m *AuthMiddleware) authenticate(c echo.Context, tokenString string, next echo.HandlerFunc) error {
	claims, err := m.jwtService.ValidateToken(tokenString)
	if err != nil {
		m.logger.Warn("AuthMiddleware: ошибка валидации токена", zap.Error(err))
		return utils.ErrorResponse(c, err, m.logger)
	}

	ctx := c.Request().Context()
	user, err := m.users.GetUserByID(ctx, claims.UserID)
	if err != nil {
		m.logger.Warn("AuthMiddleware: пользователь из токена не найден", zap.String("userID", claims.UserID))
		return utils.ErrorResponse(c, apperrors.ErrInvalidToken, m.logger)
	}
	if !user.IsActive {
		return utils.ErrorResponse(c, apperrors.ErrAccountInactive, m.logger)
	}

	c.SetRequest(c.Request().WithContext(utils.WithActor(ctx, user)))
	c.Set("user", user)
	return next(c)
}

func bearerToken(header string) (string, error) {
	if header == "" {
		return "", apperrors.ErrEmptyAuthHeader
	}
	parts := strings.Split(header, " ")
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", apperrors.ErrInvalidAuthHeader
	}
	return parts[1], nil
}
