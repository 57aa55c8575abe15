package model

import "time"

// OrderStatus is the state of an order.  Orders are confirmed at creation
// and never change afterwards.
type OrderStatus string

// OrderConfirmed is the only order status in this design.
const OrderConfirmed OrderStatus = "CONFIRMED"

// Order is a permanent sale record.  Total = Quantity*UnitPrice + Fees,
// with all money values rounded to cents half-up at creation time.
type Order struct {
	ID        string      `json:"id"`
	EventID   string      `json:"event_id"`
	TierID    string      `json:"tier_id"`
	Customer  string      `json:"customer"`
	Quantity  int         `json:"quantity"`
	UnitPrice float64     `json:"unit_price"`
	Fees      float64     `json:"fees"`
	Total     float64     `json:"total"`
	Status    OrderStatus `json:"status"`
	CreatedAt time.Time   `json:"created_at"`
}
