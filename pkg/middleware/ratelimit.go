package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"os-manager/pkg/utils"
)

type ipLimiter struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

// LoginRateLimiter ограничивает частоту попыток входа с одного IP.
// Работает независимо от блокировки по email в AuthService.
type LoginRateLimiter struct {
	limit  rate.Limit
	burst  int
	idle   time.Duration
	logger *zap.Logger

	mu       sync.Mutex
	limiters map[string]*ipLimiter
}

func NewLoginRateLimiter(perMinute int, logger *zap.Logger) *LoginRateLimiter {
	if perMinute <= 0 {
		perMinute = 20
	}
	return &LoginRateLimiter{
		limit:    rate.Limit(float64(perMinute) / 60.0),
		burst:    perMinute,
		idle:     10 * time.Minute,
		logger:   logger,
		limiters: make(map[string]*ipLimiter),
	}
}

func (rl *LoginRateLimiter) get(ip string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	entry, ok := rl.limiters[ip]
	if !ok {
		entry = &ipLimiter{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.limiters[ip] = entry
	}
	entry.lastAccess = now
	return entry.limiter
}

// Cleanup удаляет лимитеры IP, к которым давно не обращались.
func (rl *LoginRateLimiter) Cleanup() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cutoff := time.Now().Add(-rl.idle)
	removed := 0
	for ip, entry := range rl.limiters {
		if entry.lastAccess.Before(cutoff) {
			delete(rl.limiters, ip)
			removed++
		}
	}
	return removed
}

func (rl *LoginRateLimiter) Middleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		ip := c.RealIP()
		if !rl.get(ip).Allow() {
			rl.logger.Warn("Превышен лимит попыток входа", zap.String("ip", ip))
			c.Response().Header().Set("Retry-After", "60")
			return c.JSON(http.StatusTooManyRequests, &utils.HTTPResponse{
				Status:  false,
				Message: "Muitas tentativas de login. Tente novamente em instantes.",
			})
		}
		return next(c)
	}
}
