package handlers

import (
	"net/http"

	"dailyshop-backend/internal/services"
	"dailyshop-backend/pkg/utils"
)

type BackupHandler struct {
	Service *services.BackupService
}

func NewBackupHandler(s *services.BackupService) *BackupHandler {
	return &BackupHandler{Service: s}
}

// TriggerBackup uploads a snapshot of the data directory on demand.
func (h *BackupHandler) TriggerBackup(w http.ResponseWriter, r *http.Request) {
	if !h.Service.Enabled() {
		http.Error(w, "Backup is not configured", http.StatusServiceUnavailable)
		return
	}

	key, err := h.Service.Snapshot(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	utils.JSON(w, http.StatusOK, map[string]string{"status": "uploaded", "key": key})
}
