package utils

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	apperrors "os-manager/pkg/errors"
)

type HTTPResponse struct {
	Status  bool        `json:"status"`
	Message string      `json:"message"`
	Body    interface{} `json:"body,omitempty"`
}

func SuccessResponse(ctx echo.Context, body interface{}, message string, code int) error {
	return ctx.JSON(code, &HTTPResponse{Status: true, Message: message, Body: body})
}

// ErrorResponse переводит доменную ошибку в HTTP-ответ. 5xx логируются, остальное нет.
func ErrorResponse(c echo.Context, err error, logger *zap.Logger) error {
	var httpErr *apperrors.HttpError
	if errors.As(err, &httpErr) {
		if httpErr.Err != nil && httpErr.Code >= http.StatusInternalServerError {
			logger.Error("HTTP Error",
				zap.Int("code", httpErr.Code),
				zap.String("message", httpErr.Message),
				zap.Error(httpErr.Err),
			)
		}
		response := &HTTPResponse{Status: false, Message: httpErr.Message}
		if httpErr.Details != nil {
			response.Body = httpErr.Details
		}
		return c.JSON(httpErr.Code, response)
	}

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		msgs := make([]string, 0, len(validationErrors))
		for _, e := range validationErrors {
			msgs = append(msgs, fmt.Sprintf("Поле '%s' не прошло проверку '%s'", e.Field(), e.Tag()))
		}
		return c.JSON(http.StatusBadRequest, &HTTPResponse{
			Status:  false,
			Message: "Ошибка валидации: " + strings.Join(msgs, "; "),
		})
	}

	code := apperrors.StatusCode(err)
	if code >= http.StatusInternalServerError {
		logger.Error("Unexpected Error", zap.Error(err))
		return c.JSON(code, &HTTPResponse{Status: false, Message: "Внутренняя ошибка сервера"})
	}
	return c.JSON(code, &HTTPResponse{Status: false, Message: err.Error()})
}
