package inventory

import (
	"fmt"
	"sort"
	"time"

	"github.com/iliyamo/ticket-reservation/internal/model"
)

// TierLedger keeps the per-tier capacity counters (capacity, sold, held)
// and performs all adjustments on them.  It is a plain map of immutable
// Tier values; every mutation replaces the stored value with a fresh copy.
//
// The ledger is not safe for concurrent use on its own.  It belongs to the
// Engine's single critical section and every method assumes the caller
// holds that lock.
type TierLedger struct {
	tiers map[string]model.Tier
}

// NewTierLedger returns an empty ledger.
func NewTierLedger() *TierLedger {
	return &TierLedger{tiers: make(map[string]model.Tier)}
}

// Define registers a new tier.  Tier ids are unique across all events.
func (l *TierLedger) Define(t model.Tier) error {
	if _, ok := l.tiers[t.ID]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateTier, t.ID)
	}
	l.tiers[t.ID] = t
	return nil
}

// Get returns the tier with the given id.
func (l *TierLedger) Get(id string) (model.Tier, bool) {
	t, ok := l.tiers[id]
	return t, ok
}

// ListByEvent returns the tiers of an event sorted by price, cheapest
// first; ties break on id for a stable order.
func (l *TierLedger) ListByEvent(eventID string) []model.Tier {
	out := make([]model.Tier, 0, 4)
	for _, t := range l.tiers {
		if t.EventID == eventID {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].UnitPrice != out[j].UnitPrice {
			return out[i].UnitPrice < out[j].UnitPrice
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// Count returns the total number of tiers across all events.
func (l *TierLedger) Count() int { return len(l.tiers) }

// Available returns the tier's free capacity, or 0 for an unknown tier.
func (l *TierLedger) Available(id string) int {
	t, ok := l.tiers[id]
	if !ok {
		return 0
	}
	return t.Available()
}

// Reserve moves qty tickets from available to held.  It fails with
// ErrInsufficientInventory, changing nothing, when fewer than qty tickets
// are available.
func (l *TierLedger) Reserve(id string, qty int, now time.Time) error {
	t, ok := l.tiers[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownTier, id)
	}
	if t.Available() < qty {
		return fmt.Errorf("%w: tier %s has %d left", ErrInsufficientInventory, id, t.Available())
	}
	l.tiers[id] = t.WithHold(qty, now)
	return nil
}

// Release returns qty held tickets to available, flooring the held count
// at zero.  Unknown tiers are ignored so that sweeping a hold whose tier
// vanished can never fail.
func (l *TierLedger) Release(id string, qty int, now time.Time) {
	t, ok := l.tiers[id]
	if !ok {
		return
	}
	l.tiers[id] = t.WithReleasedHold(qty, now)
}

// Sell records a direct walk-in sale of qty tickets.  It fails with
// ErrInsufficientInventory, changing nothing, when fewer than qty tickets
// are available.
func (l *TierLedger) Sell(id string, qty int, now time.Time) error {
	t, ok := l.tiers[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownTier, id)
	}
	if t.Available() < qty {
		return fmt.Errorf("%w: tier %s has %d left", ErrInsufficientInventory, id, t.Available())
	}
	l.tiers[id] = t.WithSale(qty, now)
	return nil
}

// SellFromHeld converts qty held tickets into sold ones in one atomic
// replacement, so the quantity is never observable as neither held nor
// sold nor available.
func (l *TierLedger) SellFromHeld(id string, qty int, now time.Time) {
	t, ok := l.tiers[id]
	if !ok {
		return
	}
	l.tiers[id] = t.WithSaleFromHold(qty, now)
}
