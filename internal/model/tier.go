package model

import "time"

// Tier is a priced category of tickets for an event with a fixed capacity.
// Capacity is partitioned into three mutually exclusive buckets: sold,
// held and available.  The invariant
//
//	capacity == sold + held + available
//
// must hold after every mutation, with all three buckets non-negative.
// Tiers are immutable values; every mutation produces a new copy via the
// With* methods below and the caller replaces the stored value inside the
// engine's critical section.
type Tier struct {
	ID        string    `json:"id"`
	EventID   string    `json:"event_id"`
	Name      string    `json:"name"`
	UnitPrice float64   `json:"unit_price"`
	Capacity  int       `json:"capacity"`
	SoldCount int       `json:"sold_count"`
	HeldCount int       `json:"held_count"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Available returns the number of tickets that are neither sold nor held,
// floored at zero.
func (t Tier) Available() int {
	avail := t.Capacity - t.SoldCount - t.HeldCount
	if avail < 0 {
		return 0
	}
	return avail
}

// WithHold returns a copy with qty added to the held bucket.  The caller
// must have verified Available() >= qty first.
func (t Tier) WithHold(qty int, now time.Time) Tier {
	t.HeldCount += qty
	t.UpdatedAt = now
	return t
}

// WithReleasedHold returns a copy with qty removed from the held bucket,
// floored at zero so a double release cannot drive the counter negative.
func (t Tier) WithReleasedHold(qty int, now time.Time) Tier {
	t.HeldCount -= qty
	if t.HeldCount < 0 {
		t.HeldCount = 0
	}
	t.UpdatedAt = now
	return t
}

// WithSale returns a copy with qty added to the sold bucket.  Used for
// direct purchases; the caller must have verified Available() >= qty.
func (t Tier) WithSale(qty int, now time.Time) Tier {
	t.SoldCount += qty
	t.UpdatedAt = now
	return t
}

// WithSaleFromHold moves qty from held to sold in a single step.  Doing
// both adjustments in one copy means the quantity is never observable as
// neither held nor sold, which would open a double-book window.
func (t Tier) WithSaleFromHold(qty int, now time.Time) Tier {
	t.HeldCount -= qty
	if t.HeldCount < 0 {
		t.HeldCount = 0
	}
	t.SoldCount += qty
	t.UpdatedAt = now
	return t
}
