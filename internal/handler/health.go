package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/deppfellow/ads-api/internal/middleware"
	"github.com/deppfellow/ads-api/internal/server"
	"github.com/labstack/echo/v4"
)

// DefaultHealthTimeout bounds a single dependency check when none is configured.
const DefaultHealthTimeout = 5 * time.Second

// HealthCheck is one dependency probe reported by /status.
//
// A failing Required check turns the whole response into 503; other checks
// are reported but leave the service healthy.
type HealthCheck struct {
	Name     string
	Required bool
	Ping     func(ctx context.Context) error
}

// HealthHandler reports whether the service and its dependencies are reachable.
type HealthHandler struct {
	Handler
	checks  []HealthCheck
	timeout time.Duration
}

// NewHealthHandler builds the configured checks: the database pool is
// required, Redis (when connected) is informational.
func NewHealthHandler(s *server.Server) *HealthHandler {
	var checks []HealthCheck

	timeout := DefaultHealthTimeout
	if obs := s.Config.Observability; obs != nil && obs.HealthChecks.Enabled {
		if obs.HealthChecks.Timeout > 0 {
			timeout = obs.HealthChecks.Timeout
		}

		if obs.HealthChecks.Has("database") && s.DB != nil {
			checks = append(checks, HealthCheck{
				Name:     "database",
				Required: true,
				Ping:     s.DB.Pool.Ping,
			})
		}

		if obs.HealthChecks.Has("redis") && s.Redis != nil {
			checks = append(checks, HealthCheck{
				Name: "redis",
				Ping: func(ctx context.Context) error {
					return s.Redis.Ping(ctx).Err()
				},
			})
		}
	}

	return NewHealthHandlerWithChecks(s, timeout, checks...)
}

// NewHealthHandlerWithChecks builds a HealthHandler over an explicit check list.
func NewHealthHandlerWithChecks(s *server.Server, timeout time.Duration, checks ...HealthCheck) *HealthHandler {
	return &HealthHandler{
		Handler: NewHandler(s),
		checks:  checks,
		timeout: timeout,
	}
}

// CheckHealth runs every check and answers 200 when all required ones pass,
// 503 otherwise.
//
//	{"status": "healthy", "timestamp": ..., "environment": ..., "checks": {...}}
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	start := time.Now()

	logger := middleware.GetLogger(c).With().
		Str("operation", "health_check").
		Logger()

	checks := make(map[string]interface{}, len(h.checks))
	isHealthy := true

	for _, check := range h.checks {
		checkStart := time.Now()
		err := h.ping(c.Request().Context(), check)
		elapsed := time.Since(checkStart)

		if err != nil {
			checks[check.Name] = map[string]interface{}{
				"status":        "unhealthy",
				"response_time": elapsed.String(),
				"error":         err.Error(),
			}
			if check.Required {
				isHealthy = false
			}

			logger.Error().
				Err(err).
				Str("check", check.Name).
				Dur("response_time", elapsed).
				Msg("health check failed")

			h.recordEvent(map[string]interface{}{
				"check_type":       check.Name,
				"operation":        "health_check",
				"error_type":       check.Name + "_unhealthy",
				"response_time_ms": elapsed.Milliseconds(),
				"error_message":    err.Error(),
			})
			continue
		}

		checks[check.Name] = map[string]interface{}{
			"status":        "healthy",
			"response_time": elapsed.String(),
		}

		logger.Debug().
			Str("check", check.Name).
			Dur("response_time", elapsed).
			Msg("health check passed")
	}

	response := map[string]interface{}{
		"status":      "healthy",
		"timestamp":   time.Now().UTC(),
		"environment": h.server.Config.Primary.Env,
		"checks":      checks,
	}

	if !isHealthy {
		response["status"] = "unhealthy"

		logger.Warn().
			Dur("total_duration", time.Since(start)).
			Msg("service unhealthy")

		h.recordEvent(map[string]interface{}{
			"check_type":        "overall",
			"operation":         "health_check",
			"error_type":        "overall_unhealthy",
			"total_duration_ms": time.Since(start).Milliseconds(),
		})

		return c.JSON(http.StatusServiceUnavailable, response)
	}

	return c.JSON(http.StatusOK, response)
}

func (h *HealthHandler) ping(ctx context.Context, check HealthCheck) error {
	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()
	return check.Ping(ctx)
}

func (h *HealthHandler) recordEvent(attrs map[string]interface{}) {
	if app := h.server.LoggerService.GetApplication(); app != nil {
		app.RecordCustomEvent("HealthCheckError", attrs)
	}
}
