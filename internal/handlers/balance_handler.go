package handlers

import (
	"net/http"

	"dailyshop-backend/internal/services"
	"dailyshop-backend/pkg/utils"

	"github.com/gorilla/mux"
)

type BalanceHandler struct {
	Service *services.BalanceService
}

func NewBalanceHandler(s *services.BalanceService) *BalanceHandler {
	return &BalanceHandler{Service: s}
}

// ListBalances returns every customer with credit history, largest pending
// balance first.
func (h *BalanceHandler) ListBalances(w http.ResponseWriter, r *http.Request) {
	balances, err := h.Service.ComputeBalances(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	utils.JSON(w, http.StatusOK, balances)
}

func (h *BalanceHandler) GetCustomerBalance(w http.ResponseWriter, r *http.Request) {
	customerID := mux.Vars(r)["customer_id"]

	balance, err := h.Service.CustomerBalance(r.Context(), customerID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	utils.JSON(w, http.StatusOK, balance)
}
