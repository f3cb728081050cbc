package events

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderPlacedLine struct {
	ProductID int             `json:"productId"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
}

type OrderPlacedPayload struct {
	OrderID   string            `json:"orderId"`
	ShopperID string            `json:"shopperId"`
	Lines     []OrderPlacedLine `json:"lines"`
	Total     decimal.Decimal   `json:"total"`
	Status    string            `json:"status"`
	PlacedAt  time.Time         `json:"placedAt"`
}

type CartUpdatedPayload struct {
	ShopperID     string `json:"shopperId"`
	Command       string `json:"command"`
	ProductID     int    `json:"productId,omitempty"`
	LineCount     int    `json:"lineCount"`
	TotalQuantity int    `json:"totalQuantity"`
}
