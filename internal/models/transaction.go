package models

// TransactionType distinguishes stock purchases from plain expenses in the
// combined expenses ledger.
type TransactionType string

const (
	TxnPurchase TransactionType = "Purchase"
	TxnExpense  TransactionType = "Expense"
)

// Transaction is one append-only row in the purchases/expenses ledger.
// Purchase rows reference an inventory item and raise its stock; expense
// rows carry a blank item_id and never touch inventory.
type Transaction struct {
	Date     string          `json:"date"`
	Type     TransactionType `json:"type"`
	Category string          `json:"category"`
	Item     string          `json:"item"`
	ItemID   string          `json:"item_id"`
	Qty      float64         `json:"qty"`
	Rate     float64         `json:"rate"`
	Amount   float64         `json:"amount"`
	UserID   string          `json:"user_id"`
	Remarks  string          `json:"remarks"`
}

// RecordPurchaseRequest represents the request body for logging a stock purchase
type RecordPurchaseRequest struct {
	Date    string  `json:"date"`
	ItemID  string  `json:"item_id"`
	Qty     float64 `json:"qty"`
	Rate    float64 `json:"rate"`
	Remarks string  `json:"remarks"`
}

// RecordExpenseRequest represents the request body for logging a plain expense
type RecordExpenseRequest struct {
	Date     string  `json:"date"`
	Category string  `json:"category"`
	Item     string  `json:"item"`
	Amount   float64 `json:"amount"`
	Remarks  string  `json:"remarks"`
}
