package inventory

import (
	"testing"
	"time"

	"github.com/iliyamo/ticket-reservation/internal/model"
)

func TestRegistrySweepReclaimsLapsedHolds(t *testing.T) {
	now := time.Now()
	l := newTestLedger(t, 10)
	if err := l.Reserve("t1", 4, now); err != nil {
		t.Fatalf("reserve: %v", err)
	}
	r := NewHoldRegistry()
	r.Put(model.Hold{
		ID: "h1", EventID: "e1", TierID: "t1", Quantity: 4,
		Status: model.HoldActive, CreatedAt: now, ExpiresAt: now.Add(time.Minute),
	})

	if n := r.SweepExpired(now, l); n != 0 {
		t.Fatalf("swept %d holds before expiry", n)
	}
	if n := r.SweepExpired(now.Add(time.Minute), l); n != 1 {
		t.Fatalf("swept %d holds, want 1", n)
	}
	h, _ := r.Get("h1")
	if h.Status != model.HoldExpired {
		t.Fatalf("status = %s, want EXPIRED", h.Status)
	}
	if got := l.Available("t1"); got != 10 {
		t.Fatalf("available = %d, want 10 after reclaim", got)
	}
	// A second sweep must be a no-op: the hold is terminal now.
	if n := r.SweepExpired(now.Add(time.Hour), l); n != 0 {
		t.Fatalf("terminal hold swept again")
	}
	assertInvariant(t, l, "t1")
}

func TestRegistrySweepSkipsTerminalHolds(t *testing.T) {
	now := time.Now()
	l := newTestLedger(t, 10)
	r := NewHoldRegistry()
	r.Put(model.Hold{
		ID: "h1", EventID: "e1", TierID: "t1", Quantity: 2,
		Status: model.HoldReleased, CreatedAt: now, ExpiresAt: now.Add(-time.Minute),
	})
	if n := r.SweepExpired(now, l); n != 0 {
		t.Fatalf("released hold swept")
	}
	if got := l.Available("t1"); got != 10 {
		t.Fatalf("ledger mutated by terminal hold: available=%d", got)
	}
}

func TestRegistryListByEventNewestFirst(t *testing.T) {
	now := time.Now()
	r := NewHoldRegistry()
	r.Put(model.Hold{ID: "h1", EventID: "e1", CreatedAt: now})
	r.Put(model.Hold{ID: "h2", EventID: "e1", CreatedAt: now.Add(time.Second)})
	r.Put(model.Hold{ID: "h3", EventID: "e2", CreatedAt: now.Add(2 * time.Second)})

	got := r.ListByEvent("e1")
	if len(got) != 2 || got[0].ID != "h2" || got[1].ID != "h1" {
		t.Fatalf("unexpected order: %+v", got)
	}
}

func TestRegistryActiveCount(t *testing.T) {
	now := time.Now()
	r := NewHoldRegistry()
	r.Put(model.Hold{ID: "h1", Status: model.HoldActive, CreatedAt: now})
	r.Put(model.Hold{ID: "h2", Status: model.HoldConverted, CreatedAt: now})
	if got := r.ActiveCount(); got != 1 {
		t.Fatalf("active count = %d, want 1", got)
	}
}
