package inventory

import (
	"fmt"

	"github.com/iliyamo/ticket-reservation/internal/model"
)

// LoadDemoData populates the ledger with the demo tiers for the seeded
// catalog, an in-flight hold and one confirmed order.  Sold and held
// counts are part of the seed so the catalog looks lived-in out of the
// box.  Intended for local development only; the corresponding events
// must already exist in the directory.
func (e *Engine) LoadDemoData() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	now := e.now()

	tiers := []model.Tier{
		{ID: "tier-echoes-ga", EventID: "event-echoes", Name: "GA Floor", UnitPrice: 85.00, Capacity: 6000, SoldCount: 1200, HeldCount: 2},
		{ID: "tier-echoes-vip", EventID: "event-echoes", Name: "VIP Club", UnitPrice: 220.00, Capacity: 800, SoldCount: 320},
		{ID: "tier-derby-lower", EventID: "event-city-derby", Name: "Lower Bowl", UnitPrice: 95.00, Capacity: 5000, SoldCount: 2100},
		{ID: "tier-derby-club", EventID: "event-city-derby", Name: "Club Seats", UnitPrice: 180.00, Capacity: 1200, SoldCount: 540},
		{ID: "tier-laughs-orch", EventID: "event-late-night", Name: "Orchestra", UnitPrice: 55.00, Capacity: 1200, SoldCount: 420},
		{ID: "tier-laughs-bal", EventID: "event-late-night", Name: "Balcony", UnitPrice: 38.00, Capacity: 1000, SoldCount: 300},
	}
	for i := range tiers {
		if _, ok := e.dir.GetEvent(tiers[i].EventID); !ok {
			return fmt.Errorf("demo seed: %w: %s", ErrUnknownEvent, tiers[i].EventID)
		}
		tiers[i].CreatedAt = now
		tiers[i].UpdatedAt = now
		if err := e.ledger.Define(tiers[i]); err != nil {
			return fmt.Errorf("demo seed: %w", err)
		}
	}

	// The GA tier above carries HeldCount 2 for this hold.
	e.holds.Put(model.Hold{
		ID:        "hold-echoes-ga-demo",
		EventID:   "event-echoes",
		TierID:    "tier-echoes-ga",
		Customer:  "Sasha Kim",
		Quantity:  2,
		Status:    model.HoldActive,
		CreatedAt: now,
		ExpiresAt: now.Add(e.params.HoldTTL),
		UpdatedAt: now,
	})

	// Two VIP tickets out of the seeded sold count, fees at the default
	// 12% + 2.50 schedule.
	e.orders["order-echoes-vip-demo"] = model.Order{
		ID:        "order-echoes-vip-demo",
		EventID:   "event-echoes",
		TierID:    "tier-echoes-vip",
		Customer:  "Andre White",
		Quantity:  2,
		UnitPrice: 220.00,
		Fees:      55.30,
		Total:     495.30,
		Status:    model.OrderConfirmed,
		CreatedAt: now,
	}
	return nil
}
