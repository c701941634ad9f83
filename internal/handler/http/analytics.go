package http

import (
	"log/slog"
	"net/http"

	"github.com/davoodepb/temucore-shop-hub/internal/service"
	"github.com/davoodepb/temucore-shop-hub/pkg/httputil"
)

// AnalyticsHandler handles HTTP requests for the admin dashboard.
type AnalyticsHandler struct {
	service *service.AnalyticsService
	logger  *slog.Logger
}

// NewAnalyticsHandler creates a new analytics HTTP handler.
func NewAnalyticsHandler(svc *service.AnalyticsService, logger *slog.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{
		service: svc,
		logger:  logger,
	}
}

// Overview handles GET /api/v1/admin/analytics
func (h *AnalyticsHandler) Overview(w http.ResponseWriter, r *http.Request) {
	overview, err := h.service.Overview(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.OK(w, overview)
}
