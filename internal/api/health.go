package api

import (
	"context"
	"net/http"
	"time"
)

// healthCheckTimeout bounds each component probe.
const healthCheckTimeout = 2 * time.Second

// Component states reported by /api/health.
const (
	componentOK       = "ok"
	componentError    = "error"
	componentDisabled = "disabled"
)

// HealthResponse is the body of /api/health.
type HealthResponse struct {
	Status            string            `json:"status"`
	Version           string            `json:"version"`
	Timestamp         time.Time         `json:"ts"`
	Components        map[string]string `json:"components"`
	PendingMigrations int               `json:"pending_migrations"`
}

// handleHealth reports store reachability and the state of optional
// components. Only a failing database makes the response 503; optional
// components degrade the status without failing it.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
	defer cancel()

	resp := HealthResponse{
		Status:     "ok",
		Version:    s.version,
		Timestamp:  time.Now().UTC(),
		Components: map[string]string{},
	}
	code := http.StatusOK

	if err := s.db.HealthCheck(ctx); err != nil {
		s.logger.Warn("database health check failed", "error", err, "request_id", requestID(r.Context()))
		resp.Components["database"] = componentError
		resp.Status = "unavailable"
		code = http.StatusServiceUnavailable
	} else {
		resp.Components["database"] = componentOK
		if _, pending, err := s.db.GetMigrationStatus(ctx); err == nil {
			resp.PendingMigrations = len(pending)
		}
	}

	for name, checker := range map[string]HealthChecker{"mqtt": s.mqtt, "influxdb": s.influx} {
		state := componentDisabled
		if checker != nil {
			state = componentOK
			if err := checker.HealthCheck(ctx); err != nil {
				state = componentError
				if resp.Status == "ok" {
					resp.Status = "degraded"
				}
			}
		}
		resp.Components[name] = state
	}

	writeJSON(w, code, resp)
}
