package middleware

import (
	"net/http"
	"time"

	"barberflow/internal/caching"
	"barberflow/internal/common"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// LoginRateLimit throttles authentication attempts per client IP using a
// fixed window in Redis. Fails open when the cache is unreachable: a
// brute-force window is preferable to locking every tenant out.
func LoginRateLimit(cacheSvc caching.CacheService, limit int, window time.Duration) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key := "login:" + c.RealIP()

			limited, err := cacheSvc.IsRateLimited(c.Request().Context(), key, limit, window)
			if err != nil {
				log.Warn().Err(err).Msg("rate limit check failed, allowing request")
				return next(c)
			}
			if limited {
				return common.JSONError(c, http.StatusTooManyRequests, common.MsgTooManyAttempts)
			}

			return next(c)
		}
	}
}
