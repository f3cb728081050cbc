package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID          int             `gorm:"primaryKey;autoIncrement"     json:"id"`
	Name        string          `gorm:"not null"                     json:"name"`
	Description string          `gorm:"not null"                     json:"description"`
	Price       decimal.Decimal `gorm:"type:numeric(12,2);not null"  json:"price"`
	Category    string          `gorm:"index;not null"               json:"category"`
	Image       string          `json:"image"`
	Rating      float64         `gorm:"check:rating>=0 AND rating<=5" json:"rating"`
	Stock       uint            `json:"stock"`
	Discount    *uint           `json:"discount,omitempty"`
}

func (Product) TableName() string {
	return "products"
}

// FinalPrice is the display price after the optional discount percentage.
func (p Product) FinalPrice() decimal.Decimal {
	if p.Discount == nil || *p.Discount == 0 {
		return p.Price
	}
	pct := decimal.NewFromInt(int64(100 - min(*p.Discount, 100)))
	return p.Price.Mul(pct).Div(decimal.NewFromInt(100)).Round(2)
}

type OrderStatus string

const (
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusProcessing, OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

// CanTransition reports whether an order may move from s to next.
func (s OrderStatus) CanTransition(next OrderStatus) bool {
	switch s {
	case OrderStatusProcessing:
		return next == OrderStatusShipped || next == OrderStatusCancelled
	case OrderStatusShipped:
		return next == OrderStatusDelivered
	}
	return false
}

type Address struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Street    string `json:"street"`
	City      string `json:"city"`
	State     string `json:"state,omitempty"`
	ZIP       string `json:"zip"`
	Country   string `json:"country"`
}

type Order struct {
	ID             string          `gorm:"primaryKey"                                     json:"id"`
	ShopperID      string          `gorm:"index;not null"                                 json:"shopper_id"`
	IdempotencyKey string          `gorm:"uniqueIndex;not null"                           json:"-"`
	Items          []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	Subtotal       decimal.Decimal `gorm:"type:numeric(12,2);not null"                    json:"subtotal"`
	Tax            decimal.Decimal `gorm:"type:numeric(12,2);not null"                    json:"tax"`
	Shipping       decimal.Decimal `gorm:"type:numeric(12,2);not null"                    json:"shipping"`
	Total          decimal.Decimal `gorm:"type:numeric(12,2);not null"                    json:"total"`
	Status         OrderStatus     `gorm:"index;not null"                                 json:"status"`
	PlacedAt       time.Time       `gorm:"index;not null"                                 json:"placed_at"`
	ShipTo         Address         `gorm:"embedded;embeddedPrefix:ship_"                  json:"ship_to"`
	CardLast4      string          `json:"card_last4"`
	Notes          string          `json:"notes,omitempty"`

	TrackingNumber    string     `json:"tracking_number,omitempty"`
	EstimatedDelivery *time.Time `json:"estimated_delivery,omitempty"`
	ShippedAt         *time.Time `json:"shipped_at,omitempty"`
	DeliveredAt       *time.Time `json:"delivered_at,omitempty"`
	CancelledAt       *time.Time `json:"cancelled_at,omitempty"`
}

// EstimatedTransit is added to the ship time to give the estimated delivery.
const EstimatedTransit = 5 * 24 * time.Hour

// Advance moves the order to next at the given time and stamps the matching
// fields. tracking is only recorded when the order ships. The caller checks
// CanTransition first.
func (o *Order) Advance(next OrderStatus, at time.Time, tracking string) {
	o.Status = next
	switch next {
	case OrderStatusShipped:
		eta := at.Add(EstimatedTransit)
		o.ShippedAt = &at
		o.EstimatedDelivery = &eta
		o.TrackingNumber = tracking
	case OrderStatusDelivered:
		o.DeliveredAt = &at
	case OrderStatusCancelled:
		o.CancelledAt = &at
	}
}

func (Order) TableName() string {
	return "orders"
}

type OrderItem struct {
	ID        uint            `gorm:"primaryKey"                  json:"-"`
	OrderID   string          `gorm:"index;not null"              json:"-"`
	ProductID int             `gorm:"not null"                    json:"product_id"`
	Name      string          `gorm:"not null"                    json:"name"`
	Quantity  int             `gorm:"not null;check:quantity>0"   json:"quantity"`
	UnitPrice decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"unit_price"`
	LineTotal decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"line_total"`
}

func (OrderItem) TableName() string {
	return "order_items"
}
