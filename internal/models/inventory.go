package models

import (
	"crypto/md5"
	"encoding/hex"
	"math"
	"strings"
)

type InventoryItem struct {
	ItemID    string  `json:"item_id"`
	ItemName  string  `json:"item_name"`
	Category  string  `json:"category"`
	Unit      string  `json:"unit"`
	StockQty  float64 `json:"stock_qty"`
	Rate      float64 `json:"rate"`       // purchase/cost price
	MinQty    float64 `json:"min_qty"`    // low-stock alert threshold
	SellPrice float64 `json:"sell_price"` // rounded to nearest 5 on save
}

// UpsertItemRequest represents the request body for creating or updating an item
type UpsertItemRequest struct {
	ItemName  string  `json:"item_name"`
	Category  string  `json:"category"`
	Unit      string  `json:"unit"`
	StockQty  float64 `json:"stock_qty"`
	Rate      float64 `json:"rate"`
	MinQty    float64 `json:"min_qty"`
	SellPrice float64 `json:"sell_price"`
}

// MakeItemID derives a stable item id from the item name and category.
func MakeItemID(name, category string) string {
	key := strings.ToLower(strings.TrimSpace(name)) + "|" + strings.ToLower(strings.TrimSpace(category))
	sum := md5.Sum([]byte(key))
	return hex.EncodeToString(sum[:])[:12]
}

// RoundPriceToFive rounds a selling price half away from zero to the
// nearest 5 currency units.
func RoundPriceToFive(price float64) float64 {
	return 5 * math.Trunc(price/5+math.Copysign(0.5, price))
}
