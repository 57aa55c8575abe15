package inventory

import (
	"sort"
	"time"

	"github.com/iliyamo/ticket-reservation/internal/model"
)

// HoldRegistry stores holds keyed by id.  Terminal holds are kept forever
// as audit records; nothing is ever deleted.  Like the ledger, the
// registry has no lock of its own and must only be touched while holding
// the Engine's critical section.
type HoldRegistry struct {
	holds map[string]model.Hold
}

// NewHoldRegistry returns an empty registry.
func NewHoldRegistry() *HoldRegistry {
	return &HoldRegistry{holds: make(map[string]model.Hold)}
}

// Put stores or replaces a hold.
func (r *HoldRegistry) Put(h model.Hold) {
	r.holds[h.ID] = h
}

// Get returns the hold with the given id.
func (r *HoldRegistry) Get(id string) (model.Hold, bool) {
	h, ok := r.holds[id]
	return h, ok
}

// ListByEvent returns an event's holds, newest first.
func (r *HoldRegistry) ListByEvent(eventID string) []model.Hold {
	out := make([]model.Hold, 0, 8)
	for _, h := range r.holds {
		if h.EventID == eventID {
			out = append(out, h)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// ActiveCount returns the number of holds still in the ACTIVE state.
func (r *HoldRegistry) ActiveCount() int {
	n := 0
	for _, h := range r.holds {
		if h.Status == model.HoldActive {
			n++
		}
	}
	return n
}

// SweepExpired reclaims every ACTIVE hold whose expiry time has been
// reached: the held quantity goes back to the ledger and the hold is
// transitioned to EXPIRED.  This is the only place holds expire.  There is
// no background timer; the engine runs the sweep at the start of every
// entry point, so callers always observe post-sweep state.  Returns the
// number of holds reclaimed.
func (r *HoldRegistry) SweepExpired(now time.Time, ledger *TierLedger) int {
	n := 0
	for id, h := range r.holds {
		if !h.Lapsed(now) {
			continue
		}
		ledger.Release(h.TierID, h.Quantity, now)
		r.holds[id] = h.WithStatus(model.HoldExpired, now)
		n++
	}
	return n
}
