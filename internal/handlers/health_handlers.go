package handlers

import (
	"context"
	"net/http"

	"barberflow/internal/caching"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// Pinger is what the health check needs from the database pool.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandlers struct {
	db       Pinger
	cacheSvc caching.CacheService
}

func NewHealthHandlers(db Pinger, cacheSvc caching.CacheService) *HealthHandlers {
	return &HealthHandlers{db: db, cacheSvc: cacheSvc}
}

// Live reports process liveness only.
func (h *HealthHandlers) Live(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// Ready reports whether the dependencies answer. Postgres down means not
// ready; Redis down is degraded but still serving, matching the fail-open
// cache policy.
func (h *HealthHandlers) Ready(c echo.Context) error {
	ctx := c.Request().Context()

	status := map[string]string{
		"database": "ok",
		"cache":    "ok",
	}
	code := http.StatusOK

	if err := h.db.Ping(ctx); err != nil {
		log.Error().Err(err).Msg("database ping failed")
		status["database"] = "unavailable"
		code = http.StatusServiceUnavailable
	}
	if err := h.cacheSvc.Ping(ctx); err != nil {
		log.Warn().Err(err).Msg("cache ping failed")
		status["cache"] = "unavailable"
	}

	return c.JSON(code, status)
}
