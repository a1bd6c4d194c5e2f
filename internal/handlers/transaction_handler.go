package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"dailyshop-backend/internal/middleware"
	"dailyshop-backend/internal/models"
	"dailyshop-backend/internal/repositories"
	"dailyshop-backend/internal/services"
	"dailyshop-backend/pkg/utils"
)

// TransactionHandler covers the purchases/expenses ledger.
type TransactionHandler struct {
	Sales *services.SalesService
	Repo  *repositories.TransactionRepository
}

func NewTransactionHandler(sales *services.SalesService, repo *repositories.TransactionRepository) *TransactionHandler {
	return &TransactionHandler{Sales: sales, Repo: repo}
}

func (h *TransactionHandler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	txns, err := h.Repo.List(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	utils.JSON(w, http.StatusOK, txns)
}

func (h *TransactionHandler) RecordPurchase(w http.ResponseWriter, r *http.Request) {
	var req models.RecordPurchaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	userID, _ := middleware.GetUserIDFromContext(r.Context())
	txn, err := h.Sales.RecordPurchase(r.Context(), &req, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrItemNotFound) {
			http.Error(w, "Item not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	utils.JSON(w, http.StatusCreated, txn)
}

func (h *TransactionHandler) RecordExpense(w http.ResponseWriter, r *http.Request) {
	var req models.RecordExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	userID, _ := middleware.GetUserIDFromContext(r.Context())
	txn, err := h.Sales.RecordExpense(r.Context(), &req, userID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	utils.JSON(w, http.StatusCreated, txn)
}
