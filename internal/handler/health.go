package handler

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/bookmarks/internal/server"
)

type HealthHandler struct {
	Handler
}

func NewHealthHandler(s *server.Server) *HealthHandler {
	return &HealthHandler{
		Handler: NewHandler(s),
	}
}

// CheckResult is the outcome of one dependency check.
type CheckResult struct {
	Status       string `json:"status"`
	ResponseTime string `json:"response_time"`
	Error        string `json:"error,omitempty"`
}

// HealthResponse is the body of GET /status.
type HealthResponse struct {
	Status      string                 `json:"status"`
	Timestamp   time.Time              `json:"timestamp"`
	Environment string                 `json:"environment"`
	Driver      string                 `json:"driver"`
	Checks      map[string]CheckResult `json:"checks"`
}

// CheckHealth pings the database and, when configured, redis. Any failed
// check turns the answer into a 503.
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	start := time.Now()

	logger := h.logger(c).With().
		Str("operation", "health_check").
		Logger()

	response := HealthResponse{
		Status:      "healthy",
		Timestamp:   time.Now().UTC(),
		Environment: h.server.Config.Primary.Env,
		Driver:      h.server.DB.Driver,
		Checks:      make(map[string]CheckResult),
	}

	observability := h.server.Config.Observability
	timeout := 5 * time.Second
	if observability != nil && observability.HealthChecks.Timeout > 0 {
		timeout = observability.HealthChecks.Timeout
	}

	checks := map[string]func(context.Context) error{
		"database": h.server.DB.Ping,
	}
	if h.server.Redis != nil {
		checks["redis"] = func(ctx context.Context) error {
			return h.server.Redis.Ping(ctx).Err()
		}
	}

	for name, check := range checks {
		if observability != nil && !observability.HasCheck(name) {
			continue
		}

		result := h.runCheck(c.Request().Context(), name, timeout, check)
		response.Checks[name] = result

		if result.Status != "healthy" {
			response.Status = "unhealthy"
		}
	}

	if response.Status != "healthy" {
		logger.Warn().
			Dur("total_duration", time.Since(start)).
			Msg("health check failed")

		h.recordHealthError("overall", map[string]any{
			"total_duration_ms": time.Since(start).Milliseconds(),
		})

		return c.JSON(http.StatusServiceUnavailable, response)
	}

	logger.Debug().
		Dur("total_duration", time.Since(start)).
		Msg("health check passed")

	if err := c.JSON(http.StatusOK, response); err != nil {
		logger.Error().Err(err).Msg("failed to write JSON response")
		return fmt.Errorf("failed to write JSON response: %w", err)
	}

	return nil
}

func (h *HealthHandler) runCheck(parent context.Context, name string, timeout time.Duration, check func(context.Context) error) CheckResult {
	ctx, cancel := context.WithTimeout(parent, timeout)
	defer cancel()

	checkStart := time.Now()
	err := check(ctx)
	elapsed := time.Since(checkStart)

	if err != nil {
		h.server.Logger.Error().
			Err(err).
			Str("check", name).
			Dur("response_time", elapsed).
			Msgf("%s health check failed", name)

		h.recordHealthError(name, map[string]any{
			"response_time_ms": elapsed.Milliseconds(),
			"error_message":    err.Error(),
		})

		return CheckResult{
			Status:       "unhealthy",
			ResponseTime: elapsed.String(),
			Error:        err.Error(),
		}
	}

	return CheckResult{
		Status:       "healthy",
		ResponseTime: elapsed.String(),
	}
}

func (h *HealthHandler) recordHealthError(checkType string, attrs map[string]any) {
	app := h.server.LoggerService.GetApplication()
	if app == nil {
		return
	}

	attrs["check_type"] = checkType
	attrs["operation"] = "health_check"
	attrs["error_type"] = checkType + "_unhealthy"
	app.RecordCustomEvent("HealthCheckError", attrs)
}
