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

	"github.com/gorilla/mux"
)

type OrderHandler struct {
	Sales *services.SalesService
	Repo  *repositories.OrderRepository
}

func NewOrderHandler(sales *services.SalesService, repo *repositories.OrderRepository) *OrderHandler {
	return &OrderHandler{Sales: sales, Repo: repo}
}

func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.Repo.List(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	utils.JSON(w, http.StatusOK, orders)
}

func (h *OrderHandler) ListOrdersByCustomer(w http.ResponseWriter, r *http.Request) {
	customerID := mux.Vars(r)["customer_id"]

	orders, err := h.Repo.ListByCustomer(r.Context(), customerID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	utils.JSON(w, http.StatusOK, orders)
}

// RecordOrder records a sale. An insufficient-stock rejection maps to 409:
// the request was well-formed, the shop just cannot fill it.
func (h *OrderHandler) RecordOrder(w http.ResponseWriter, r *http.Request) {
	var req models.RecordOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	userID, _ := middleware.GetUserIDFromContext(r.Context())
	order, err := h.Sales.RecordOrder(r.Context(), &req, userID)
	if err != nil {
		var insufficient *services.InsufficientStockError
		switch {
		case errors.As(err, &insufficient):
			http.Error(w, err.Error(), http.StatusConflict)
		case errors.Is(err, repositories.ErrItemNotFound):
			http.Error(w, "Item not found", http.StatusNotFound)
		default:
			http.Error(w, err.Error(), http.StatusBadRequest)
		}
		return
	}
	utils.JSON(w, http.StatusCreated, order)
}
