package handler

import (
	"context"
	"net/http"
	"time"

	"lawfirm-cms/internal/cache"
	"lawfirm-cms/internal/model"
)

type pinger interface {
	Health(ctx context.Context) error
}

type HealthHandler struct {
	db    pinger
	cache *cache.Cache
}

func NewHealthHandler(db pinger, c *cache.Cache) *HealthHandler {
	return &HealthHandler{db: db, cache: c}
}

// Health reports liveness plus a database ping and cache counters. A failed
// ping degrades the report to 503 so load balancers rotate the instance out.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	status := http.StatusOK
	overall, dbStatus := "ok", "ok"
	if err := h.db.Health(ctx); err != nil {
		status = http.StatusServiceUnavailable
		overall, dbStatus = "degraded", "unavailable"
	}

	writeJSON(w, status, model.APIResponse{
		Success: status == http.StatusOK,
		Data: map[string]any{
			"status":   overall,
			"database": dbStatus,
			"cache":    h.cache.Stats(),
			"time":     time.Now().UTC().Format(time.RFC3339),
		},
	})
}
