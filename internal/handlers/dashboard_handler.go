package handlers

import (
	"net/http"

	"vocablearn/internal/service"
)

// DashboardHandler handles dashboard endpoints
type DashboardHandler struct {
	dashboard *service.DashboardService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboard *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard}
}

// Stats handles GET /api/dashboard/stats
func (h *DashboardHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.dashboard.GetDashboardStats(UserIDFromContext(r.Context()))
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, stats)
}

// Progress handles GET /api/dashboard/progress
func (h *DashboardHandler) Progress(w http.ResponseWriter, r *http.Request) {
	weekly, err := h.dashboard.GetWeeklyProgress(UserIDFromContext(r.Context()))
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{"weeklyProgress": weekly})
}
