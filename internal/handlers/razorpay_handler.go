package handlers

import (
	"encoding/json"
	"io"
	"log"
	"net/http"

	"dailyshop-backend/internal/middleware"
	"dailyshop-backend/internal/models"
	"dailyshop-backend/internal/services"
	"dailyshop-backend/pkg/utils"
)

type RazorpayHandler struct {
	Service *services.RazorpayService
}

func NewRazorpayHandler(s *services.RazorpayService) *RazorpayHandler {
	return &RazorpayHandler{Service: s}
}

// CreateSettlementOrder creates a Razorpay order covering the customer's
// pending balance. Customers settle their own balance; staff and admins can
// create orders for any customer.
func (h *RazorpayHandler) CreateSettlementOrder(w http.ResponseWriter, r *http.Request) {
	if !h.Service.Enabled() {
		http.Error(w, "Online settlement is not configured", http.StatusServiceUnavailable)
		return
	}

	var req struct {
		CustomerID string `json:"customer_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	role, _ := middleware.GetRoleFromContext(r.Context())
	if role == models.RoleCustomer {
		// Customers may only settle their own account.
		mobile, _ := middleware.GetMobileFromContext(r.Context())
		req.CustomerID = mobile
	}
	if req.CustomerID == "" {
		http.Error(w, "customer_id is required", http.StatusBadRequest)
		return
	}

	order, err := h.Service.CreateSettlementOrder(r.Context(), req.CustomerID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	utils.JSON(w, http.StatusCreated, order)
}

// Webhook receives payment events from Razorpay. The signature is verified
// before anything is written.
func (h *RazorpayHandler) Webhook(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Failed to read body", http.StatusBadRequest)
		return
	}

	signature := r.Header.Get("X-Razorpay-Signature")
	if !h.Service.VerifyWebhookSignature(body, signature) {
		log.Printf("[Razorpay] Webhook signature verification failed")
		http.Error(w, "Invalid signature", http.StatusUnauthorized)
		return
	}

	if err := h.Service.ProcessWebhook(r.Context(), body); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	utils.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
