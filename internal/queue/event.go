// Package queue defines the message payloads exchanged over the broker
// and the background consumer that drains them.
package queue

// OrderConfirmedEvent is published when an order is confirmed, whether it
// came from a converted hold or a direct purchase.  It carries enough
// denormalized detail for downstream consumers to log or notify without
// calling back into the service.
type OrderConfirmedEvent struct {
	OrderID     string  `json:"order_id"`
	EventID     string  `json:"event_id"`
	EventName   string  `json:"event_name"`
	VenueName   string  `json:"venue_name"`
	TierID      string  `json:"tier_id"`
	TierName    string  `json:"tier_name"`
	Customer    string  `json:"customer"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	Fees        float64 `json:"fees"`
	Total       float64 `json:"total"`
	FromHold    bool    `json:"from_hold"`
	ConfirmedAt string  `json:"confirmed_at"`
}
