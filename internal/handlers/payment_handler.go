package handlers

import (
	"encoding/json"
	"net/http"

	"dailyshop-backend/internal/middleware"
	"dailyshop-backend/internal/models"
	"dailyshop-backend/internal/repositories"
	"dailyshop-backend/internal/services"
	"dailyshop-backend/pkg/utils"
)

type PaymentHandler struct {
	Sales *services.SalesService
	Repo  *repositories.PaymentRepository
}

func NewPaymentHandler(sales *services.SalesService, repo *repositories.PaymentRepository) *PaymentHandler {
	return &PaymentHandler{Sales: sales, Repo: repo}
}

func (h *PaymentHandler) ListPayments(w http.ResponseWriter, r *http.Request) {
	payments, err := h.Repo.List(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	utils.JSON(w, http.StatusOK, payments)
}

func (h *PaymentHandler) RecordPayment(w http.ResponseWriter, r *http.Request) {
	var req models.RecordPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	userID, _ := middleware.GetUserIDFromContext(r.Context())
	payment, err := h.Sales.RecordPayment(r.Context(), &req, userID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	utils.JSON(w, http.StatusCreated, payment)
}
