package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"dailyshop-backend/internal/models"
	"dailyshop-backend/internal/repositories"
	"dailyshop-backend/pkg/utils"

	"github.com/gorilla/mux"
)

type InventoryHandler struct {
	Repo *repositories.InventoryRepository
}

func NewInventoryHandler(repo *repositories.InventoryRepository) *InventoryHandler {
	return &InventoryHandler{Repo: repo}
}

func (h *InventoryHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	items, err := h.Repo.List(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	utils.JSON(w, http.StatusOK, items)
}

func (h *InventoryHandler) GetItem(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	item, err := h.Repo.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, repositories.ErrItemNotFound) {
			http.Error(w, "Item not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	utils.JSON(w, http.StatusOK, item)
}

// UpsertItem creates or replaces an item. The item id is derived from the
// name and category, so posting the same item twice updates it in place.
func (h *InventoryHandler) UpsertItem(w http.ResponseWriter, r *http.Request) {
	var req models.UpsertItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	item := &models.InventoryItem{
		ItemName:  req.ItemName,
		Category:  req.Category,
		Unit:      req.Unit,
		StockQty:  req.StockQty,
		Rate:      req.Rate,
		MinQty:    req.MinQty,
		SellPrice: req.SellPrice,
	}
	if err := h.Repo.Upsert(r.Context(), item); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	utils.JSON(w, http.StatusCreated, item)
}
