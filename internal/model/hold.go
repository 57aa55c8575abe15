package model

import "time"

// HoldStatus is the state of a hold.  A hold is created ACTIVE and moves
// exactly once to one of the three terminal states; after that it is kept
// as an immutable audit record.
type HoldStatus string

const (
	HoldActive    HoldStatus = "ACTIVE"
	HoldExpired   HoldStatus = "EXPIRED"
	HoldReleased  HoldStatus = "RELEASED"
	HoldConverted HoldStatus = "CONVERTED"
)

// Hold is a time-boxed claim on a quantity of a tier's inventory.  It
// reduces the tier's available capacity without yet being a sale.  Holds
// reference their event and tier by id only.
type Hold struct {
	ID        string     `json:"id"`
	EventID   string     `json:"event_id"`
	TierID    string     `json:"tier_id"`
	Customer  string     `json:"customer"`
	Quantity  int        `json:"quantity"`
	Status    HoldStatus `json:"status"`
	CreatedAt time.Time  `json:"created_at"`
	ExpiresAt time.Time  `json:"expires_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// Lapsed reports whether the hold is ACTIVE and its expiry time has been
// reached.  Only the registry sweep acts on a lapsed hold.
func (h Hold) Lapsed(now time.Time) bool {
	return h.Status == HoldActive && !now.Before(h.ExpiresAt)
}

// WithStatus returns a copy transitioned to the given status.  Callers
// must only transition away from ACTIVE; the engine enforces this.
func (h Hold) WithStatus(status HoldStatus, now time.Time) Hold {
	h.Status = status
	h.UpdatedAt = now
	return h
}
