package models

// Payment is one append-only row in the payments ledger. Payments offset a
// customer's outstanding credit balance; overpayment is allowed.
type Payment struct {
	Date       string  `json:"date"`
	CustomerID string  `json:"customer_id"`
	Amount     float64 `json:"amount"`
	Mode       string  `json:"mode"` // Cash, UPI, Online, ...
	Remarks    string  `json:"remarks"`
	UserID     string  `json:"user_id"`
}

// RecordPaymentRequest represents the request body for recording a payment
type RecordPaymentRequest struct {
	Date       string  `json:"date"`
	CustomerID string  `json:"customer_id"`
	Amount     float64 `json:"amount"`
	Mode       string  `json:"mode"`
	Remarks    string  `json:"remarks"`
}
