package dashboard

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/iomzzz/Standards-final/internal/pkg/ctxlog"
	"github.com/iomzzz/Standards-final/internal/pkg/httputil"
)

var errorMappings = []httputil.ErrorMapping{
	{Error: ErrStatsUnavailable, Status: http.StatusServiceUnavailable, Message: "dashboard statistics unavailable"},
}

// Handler handles HTTP requests for the dashboard module.
type Handler struct {
	service *Service
}

// NewHandler creates a new dashboard handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers all HTTP routes for the dashboard module.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/dashboard/stats", h.GetStats)
}

// GetStats handles GET /dashboard/stats request.
func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.Stats(r.Context())
	if err != nil {
		ctxlog.FromContext(r.Context()).Error("failed to compute dashboard stats", "error", err)
		httputil.HandleError(r.Context(), w, err, errorMappings)
		return
	}

	httputil.JSON(w, http.StatusOK, stats)
}
