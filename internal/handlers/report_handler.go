package handlers

import (
	"fmt"
	"net/http"

	"dailyshop-backend/internal/services"
	"dailyshop-backend/internal/store"
	"dailyshop-backend/internal/timeutil"

	"github.com/gorilla/mux"
)

type ReportHandler struct {
	Service *services.ReportService
}

func NewReportHandler(s *services.ReportService) *ReportHandler {
	return &ReportHandler{Service: s}
}

// ExportCSV dumps one exportable table as a CSV download.
func (h *ReportHandler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	entity := store.Entity(mux.Vars(r)["entity"])

	data, err := h.Service.TableCSV(r.Context(), entity)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeCSVDownload(w, string(entity), data)
}

// ExportBalancesCSV dumps the recomputed balance summary.
func (h *ReportHandler) ExportBalancesCSV(w http.ResponseWriter, r *http.Request) {
	data, err := h.Service.BalancesCSV(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeCSVDownload(w, "balances", data)
}

func (h *ReportHandler) InventoryPDF(w http.ResponseWriter, r *http.Request) {
	data, err := h.Service.InventoryPDF(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writePDFDownload(w, "inventory", data)
}

func (h *ReportHandler) ExpensesPDF(w http.ResponseWriter, r *http.Request) {
	data, err := h.Service.ExpensesPDF(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writePDFDownload(w, "expenses", data)
}

func (h *ReportHandler) BalancesPDF(w http.ResponseWriter, r *http.Request) {
	data, err := h.Service.BalancesPDF(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writePDFDownload(w, "balances", data)
}

func writeCSVDownload(w http.ResponseWriter, name string, data []byte) {
	filename := fmt.Sprintf("%s-%s.csv", name, timeutil.Today())
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	w.Write(data)
}

func writePDFDownload(w http.ResponseWriter, name string, data []byte) {
	filename := fmt.Sprintf("%s-%s.pdf", name, timeutil.Today())
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	w.Write(data)
}
