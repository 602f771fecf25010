package middleware

import (
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"os-manager/pkg/metrics"
	"os-manager/pkg/utils"
)

// InjectLogger добавляет логгер в echo.Context и IP клиента в контекст запроса
// (IP попадает в журнал действий).
func InjectLogger(logger *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set("logger", logger)
			ctx := utils.WithRequestIP(c.Request().Context(), c.RealIP())
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}

// RequestLogger пишет одну строку на запрос и обновляет HTTP-метрики.
func RequestLogger(logger *zap.Logger, collector metrics.MetricsCollector) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}

			status := c.Response().Status
			route := c.Path()
			duration := time.Since(start)
			if collector != nil {
				collector.RecordHTTPRequest(c.Request().Method, route, status, duration.Seconds())
			}

			fields := []zap.Field{
				zap.String("method", c.Request().Method),
				zap.String("route", route),
				zap.Int("status", status),
				zap.Duration("duration", duration),
				zap.String("ip", c.RealIP()),
			}
			switch {
			case status >= 500:
				logger.Error("HTTP запрос", fields...)
			case status >= 400:
				logger.Warn("HTTP запрос", fields...)
			default:
				logger.Debug("HTTP запрос", fields...)
			}
			return nil
		}
	}
}
