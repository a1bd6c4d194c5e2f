package services

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math"

	"dailyshop-backend/internal/models"

	razorpay "github.com/razorpay/razorpay-go"
)

// RazorpayService lets a customer settle their pending credit balance
// online. A captured payment lands in the payments ledger exactly like a
// cash payment, so the balance calculator needs no special case.
type RazorpayService struct {
	client        *razorpay.Client
	webhookSecret string
	Balances      *BalanceService
	Sales         *SalesService
}

func NewRazorpayService(keyID, keySecret, webhookSecret string, balances *BalanceService, sales *SalesService) *RazorpayService {
	svc := &RazorpayService{
		webhookSecret: webhookSecret,
		Balances:      balances,
		Sales:         sales,
	}
	if keyID != "" && keySecret != "" {
		svc.client = razorpay.NewClient(keyID, keySecret)
	} else {
		log.Printf("[Razorpay] Not configured, online settlement disabled")
	}
	return svc
}

// Enabled reports whether online settlement is available.
func (s *RazorpayService) Enabled() bool {
	return s.client != nil
}

// CreateSettlementOrder creates a Razorpay order covering the customer's
// full pending balance. Amounts are in paise.
func (s *RazorpayService) CreateSettlementOrder(ctx context.Context, customerID string) (map[string]interface{}, error) {
	if s.client == nil {
		return nil, errors.New("online settlement is not configured")
	}

	balance, err := s.Balances.CustomerBalance(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if balance.PendingBalance <= 0 {
		return nil, fmt.Errorf("customer %s has no pending balance", customerID)
	}

	paise := int64(math.Round(balance.PendingBalance * 100))
	order, err := s.client.Order.Create(map[string]interface{}{
		"amount":   paise,
		"currency": "INR",
		"receipt":  "settle-" + customerID,
		"notes": map[string]interface{}{
			"customer_id": customerID,
		},
	}, nil)
	if err != nil {
		return nil, fmt.Errorf("create razorpay order: %w", err)
	}
	return order, nil
}

// VerifyWebhookSignature checks the X-Razorpay-Signature header.
func (s *RazorpayService) VerifyWebhookSignature(body []byte, signature string) bool {
	if s.webhookSecret == "" {
		return false
	}
	h := hmac.New(sha256.New, []byte(s.webhookSecret))
	h.Write(body)
	expected := hex.EncodeToString(h.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

type webhookPayload struct {
	Event   string `json:"event"`
	Payload struct {
		Payment struct {
			Entity struct {
				ID     string `json:"id"`
				Amount int64  `json:"amount"`
				Notes  struct {
					CustomerID string `json:"customer_id"`
				} `json:"notes"`
			} `json:"entity"`
		} `json:"payment"`
	} `json:"payload"`
}

// ProcessWebhook records a captured payment in the payments ledger. Other
// events are acknowledged and ignored.
func (s *RazorpayService) ProcessWebhook(ctx context.Context, body []byte) error {
	var payload webhookPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return fmt.Errorf("decode webhook: %w", err)
	}
	if payload.Event != "payment.captured" {
		log.Printf("[Razorpay] Ignoring webhook event: %s", payload.Event)
		return nil
	}

	entity := payload.Payload.Payment.Entity
	if entity.Notes.CustomerID == "" {
		return errors.New("webhook payment has no customer_id note")
	}

	_, err := s.Sales.RecordPayment(ctx, &models.RecordPaymentRequest{
		CustomerID: entity.Notes.CustomerID,
		Amount:     float64(entity.Amount) / 100,
		Mode:       "Online",
		Remarks:    "Razorpay " + entity.ID,
	}, "razorpay-webhook")
	if err != nil {
		return fmt.Errorf("record online payment: %w", err)
	}
	log.Printf("[Razorpay] Payment %s recorded for customer %s", entity.ID, entity.Notes.CustomerID)
	return nil
}
