package utils

import (
	"context"
	"time"

	"github.com/labstack/echo/v4"
)

// RequestContext - контекст запроса с ограничением по времени для тяжёлых выборок (отчёты, дашборд).
func RequestContext(c echo.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), timeout)
}
