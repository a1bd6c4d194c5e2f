package handlers

import (
	"net/http"

	"dailyshop-backend/internal/services"
	"dailyshop-backend/pkg/utils"
)

type DashboardHandler struct {
	Service *services.ReportService
}

func NewDashboardHandler(s *services.ReportService) *DashboardHandler {
	return &DashboardHandler{Service: s}
}

// Summary returns the headline dashboard figures.
func (h *DashboardHandler) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.Service.DashboardSummary(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	utils.JSON(w, http.StatusOK, summary)
}
