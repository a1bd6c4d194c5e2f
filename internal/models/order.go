package models

const (
	PaymentModeCash   = "Cash"
	PaymentModeCredit = "Credit"

	// GuestCustomerID is used for walk-in sales with no registered customer.
	GuestCustomerID = "GUEST"
)

// Order is one append-only row in the sales ledger. Balance is fixed at
// insert time from the payment mode and never recomputed afterwards.
type Order struct {
	Date        string  `json:"date"`
	CustomerID  string  `json:"customer_id"` // mobile number or GUEST
	ItemID      string  `json:"item_id"`
	ItemName    string  `json:"item_name"`
	Qty         float64 `json:"qty"`
	Rate        float64 `json:"rate"` // selling price per unit
	Total       float64 `json:"total"`
	PaymentMode string  `json:"payment_mode"` // Cash or Credit
	Balance     float64 `json:"balance"`      // total when Credit, else 0
	UserID      string  `json:"user_id"`
	Remarks     string  `json:"remarks"`
}

// RecordOrderRequest represents the request body for recording a sale
type RecordOrderRequest struct {
	Date        string  `json:"date"`
	CustomerID  string  `json:"customer_id"`
	ItemID      string  `json:"item_id"`
	Qty         float64 `json:"qty"`
	Rate        float64 `json:"rate"`
	PaymentMode string  `json:"payment_mode"`
	Remarks     string  `json:"remarks"`
}
