package inventory

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/iliyamo/ticket-reservation/internal/directory"
	"github.com/iliyamo/ticket-reservation/internal/model"
)

var testStart = time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

// testClock drives the engine's notion of time from the test.
type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestEngine(t *testing.T, p Params) (*Engine, *testClock) {
	t.Helper()
	dir := directory.New()
	if _, err := dir.CreateVenue("venue-1", "Main Hall", "Austin", "TX", 2000); err != nil {
		t.Fatalf("create venue: %v", err)
	}
	if _, err := dir.CreateEvent("event-1", "Test Show", "CONCERT", "venue-1",
		testStart.Add(48*time.Hour), "", ""); err != nil {
		t.Fatalf("create event: %v", err)
	}
	eng := NewEngine(dir, p)
	clock := &testClock{now: testStart}
	eng.now = clock.Now
	return eng, clock
}

func defineTier(t *testing.T, eng *Engine, id string, price float64, capacity int) {
	t.Helper()
	if _, err := eng.DefineTier("event-1", id, "Tier "+id, price, capacity); err != nil {
		t.Fatalf("define tier %s: %v", id, err)
	}
}

func tierState(t *testing.T, eng *Engine, id string) model.Tier {
	t.Helper()
	tiers, err := eng.ListTiers("event-1")
	if err != nil {
		t.Fatalf("list tiers: %v", err)
	}
	for _, tier := range tiers {
		if tier.ID == id {
			return tier
		}
	}
	t.Fatalf("tier %s not found", id)
	return model.Tier{}
}

func TestHoldExpiresOnNextCall(t *testing.T) {
	eng, clock := newTestEngine(t, Params{HoldTTL: time.Minute, MaxTicketsPerOrder: 8})
	defineTier(t, eng, "ga", 85, 10)

	hold, err := eng.CreateHold("event-1", "ga", "Ada", 4)
	if err != nil {
		t.Fatalf("create hold: %v", err)
	}
	if hold.Status != model.HoldActive {
		t.Fatalf("status = %s, want ACTIVE", hold.Status)
	}
	if got := tierState(t, eng, "ga").Available(); got != 6 {
		t.Fatalf("available = %d, want 6", got)
	}

	clock.Advance(2 * time.Minute)

	// Any engine call triggers the sweep; a summary is enough.
	summary, err := eng.EventSummary("event-1")
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if summary.Available != 10 || summary.Held != 0 {
		t.Fatalf("post-expiry summary: %+v", summary)
	}
	holds, err := eng.ListHolds("event-1")
	if err != nil {
		t.Fatalf("list holds: %v", err)
	}
	if len(holds) != 1 || holds[0].Status != model.HoldExpired {
		t.Fatalf("hold not expired: %+v", holds)
	}
}

func TestConvertHoldToOrder(t *testing.T) {
	eng, _ := newTestEngine(t, Params{HoldTTL: 12 * time.Minute, MaxTicketsPerOrder: 8, ServiceFeePercent: 0.12, FlatFee: 2.50})
	defineTier(t, eng, "ga", 85, 10)

	hold, err := eng.CreateHold("event-1", "ga", "Ada", 3)
	if err != nil {
		t.Fatalf("create hold: %v", err)
	}
	if got := tierState(t, eng, "ga").Available(); got != 7 {
		t.Fatalf("available after hold = %d, want 7", got)
	}

	order, err := eng.CreateOrder("event-1", "ga", "Ada", 3, hold.ID)
	if err != nil {
		t.Fatalf("create order: %v", err)
	}
	if order.Status != model.OrderConfirmed {
		t.Fatalf("order status = %s", order.Status)
	}
	tier := tierState(t, eng, "ga")
	if tier.SoldCount != 3 || tier.HeldCount != 0 || tier.Available() != 7 {
		t.Fatalf("conversion changed committed capacity: %+v", tier)
	}
	holds, _ := eng.ListHolds("event-1")
	if holds[0].Status != model.HoldConverted {
		t.Fatalf("hold status = %s, want CONVERTED", holds[0].Status)
	}
}

func TestInsufficientInventoryLeavesNoTrace(t *testing.T) {
	eng, _ := newTestEngine(t, Params{HoldTTL: time.Minute, MaxTicketsPerOrder: 8})
	defineTier(t, eng, "ga", 85, 5)

	if _, err := eng.CreateHold("event-1", "ga", "Ada", 6); !errors.Is(err, ErrInsufficientInventory) {
		t.Fatalf("err = %v, want ErrInsufficientInventory", err)
	}
	tier := tierState(t, eng, "ga")
	if tier.SoldCount != 0 || tier.HeldCount != 0 {
		t.Fatalf("failed hold mutated counters: %+v", tier)
	}
	holds, _ := eng.ListHolds("event-1")
	if len(holds) != 0 {
		t.Fatalf("hold record created on failure")
	}

	if _, err := eng.CreateOrder("event-1", "ga", "Ada", 6, ""); !errors.Is(err, ErrInsufficientInventory) {
		t.Fatalf("order err = %v, want ErrInsufficientInventory", err)
	}
	orders, _ := eng.ListOrders("event-1")
	if len(orders) != 0 {
		t.Fatalf("order record created on failure")
	}
}

func TestDirectOrderFeeMath(t *testing.T) {
	eng, _ := newTestEngine(t, Params{HoldTTL: time.Minute, MaxTicketsPerOrder: 8, ServiceFeePercent: 0.12, FlatFee: 2.50})
	defineTier(t, eng, "ga", 85.00, 100)

	order, err := eng.CreateOrder("event-1", "ga", "Ada", 2, "")
	if err != nil {
		t.Fatalf("create order: %v", err)
	}
	if order.UnitPrice != 85.00 {
		t.Fatalf("unit price = %v", order.UnitPrice)
	}
	if order.Fees != 22.90 {
		t.Fatalf("fees = %v, want 22.90", order.Fees)
	}
	if order.Total != 192.90 {
		t.Fatalf("total = %v, want 192.90", order.Total)
	}
	if got := tierState(t, eng, "ga").SoldCount; got != 2 {
		t.Fatalf("sold = %d, want 2", got)
	}
}

func TestLastTicketRace(t *testing.T) {
	eng, _ := newTestEngine(t, Params{HoldTTL: time.Minute, MaxTicketsPerOrder: 8})
	defineTier(t, eng, "ga", 85, 1)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = eng.CreateHold("event-1", "ga", "Ada", 1)
		}(i)
	}
	wg.Wait()

	var won, lost int
	for _, err := range errs {
		switch {
		case err == nil:
			won++
		case errors.Is(err, ErrInsufficientInventory):
			lost++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if won != 1 || lost != 1 {
		t.Fatalf("won=%d lost=%d, want exactly one winner", won, lost)
	}
	tier := tierState(t, eng, "ga")
	if tier.HeldCount != 1 || tier.Available() != 0 {
		t.Fatalf("tier state after race: %+v", tier)
	}
}

func TestReleaseRestoresAvailability(t *testing.T) {
	eng, _ := newTestEngine(t, Params{HoldTTL: time.Minute, MaxTicketsPerOrder: 8})
	defineTier(t, eng, "ga", 85, 10)

	before := tierState(t, eng, "ga").Available()
	hold, err := eng.CreateHold("event-1", "ga", "Ada", 4)
	if err != nil {
		t.Fatalf("create hold: %v", err)
	}
	released, err := eng.ReleaseHold(hold.ID)
	if err != nil {
		t.Fatalf("release: %v", err)
	}
	if released.Status != model.HoldReleased {
		t.Fatalf("status = %s, want RELEASED", released.Status)
	}
	if after := tierState(t, eng, "ga").Available(); after != before {
		t.Fatalf("available = %d, want %d restored exactly", after, before)
	}
}

func TestHoldTransitionsAreOneShot(t *testing.T) {
	eng, clock := newTestEngine(t, Params{HoldTTL: time.Minute, MaxTicketsPerOrder: 8})
	defineTier(t, eng, "ga", 85, 10)

	// Released holds cannot be released or converted again.
	hold, _ := eng.CreateHold("event-1", "ga", "Ada", 2)
	if _, err := eng.ReleaseHold(hold.ID); err != nil {
		t.Fatalf("first release: %v", err)
	}
	if _, err := eng.ReleaseHold(hold.ID); !errors.Is(err, ErrHoldNotActive) {
		t.Fatalf("second release err = %v, want ErrHoldNotActive", err)
	}
	if _, err := eng.CreateOrder("event-1", "ga", "Ada", 2, hold.ID); !errors.Is(err, ErrHoldNotActive) {
		t.Fatalf("convert released err = %v, want ErrHoldNotActive", err)
	}
	if got := tierState(t, eng, "ga").Available(); got != 10 {
		t.Fatalf("failed transitions changed state: available=%d", got)
	}

	// Expired holds read the same way; the sweep beats the release.
	hold2, _ := eng.CreateHold("event-1", "ga", "Bob", 2)
	clock.Advance(2 * time.Minute)
	if _, err := eng.ReleaseHold(hold2.ID); !errors.Is(err, ErrHoldNotActive) {
		t.Fatalf("release of expired err = %v, want ErrHoldNotActive", err)
	}
	if got := tierState(t, eng, "ga").Available(); got != 10 {
		t.Fatalf("expired hold released twice: available=%d", got)
	}

	// Converted holds are terminal too.
	hold3, _ := eng.CreateHold("event-1", "ga", "Cid", 2)
	if _, err := eng.CreateOrder("event-1", "ga", "Cid", 2, hold3.ID); err != nil {
		t.Fatalf("convert: %v", err)
	}
	if _, err := eng.ReleaseHold(hold3.ID); !errors.Is(err, ErrHoldNotActive) {
		t.Fatalf("release of converted err = %v, want ErrHoldNotActive", err)
	}
}

func TestOrderHoldMismatch(t *testing.T) {
	eng, _ := newTestEngine(t, Params{HoldTTL: time.Minute, MaxTicketsPerOrder: 8})
	defineTier(t, eng, "ga", 85, 10)
	defineTier(t, eng, "vip", 220, 10)

	hold, _ := eng.CreateHold("event-1", "ga", "Ada", 3)

	if _, err := eng.CreateOrder("event-1", "vip", "Ada", 3, hold.ID); !errors.Is(err, ErrHoldMismatch) {
		t.Fatalf("tier mismatch err = %v, want ErrHoldMismatch", err)
	}
	if _, err := eng.CreateOrder("event-1", "ga", "Ada", 2, hold.ID); !errors.Is(err, ErrHoldMismatch) {
		t.Fatalf("quantity mismatch err = %v, want ErrHoldMismatch", err)
	}
	// Nothing changed: the hold is still active and convertible.
	if _, err := eng.CreateOrder("event-1", "ga", "Ada", 3, hold.ID); err != nil {
		t.Fatalf("exact conversion failed after mismatches: %v", err)
	}
}

func TestUnknownEntities(t *testing.T) {
	eng, _ := newTestEngine(t, Params{HoldTTL: time.Minute, MaxTicketsPerOrder: 8})
	defineTier(t, eng, "ga", 85, 10)

	if _, err := eng.CreateHold("nope", "ga", "Ada", 1); !errors.Is(err, ErrUnknownEvent) {
		t.Fatalf("err = %v, want ErrUnknownEvent", err)
	}
	if _, err := eng.CreateHold("event-1", "nope", "Ada", 1); !errors.Is(err, ErrUnknownTier) {
		t.Fatalf("err = %v, want ErrUnknownTier", err)
	}
	if _, err := eng.ReleaseHold("hold-nope"); !errors.Is(err, ErrUnknownHold) {
		t.Fatalf("err = %v, want ErrUnknownHold", err)
	}
	if _, err := eng.CreateOrder("event-1", "ga", "Ada", 1, "hold-nope"); !errors.Is(err, ErrUnknownHold) {
		t.Fatalf("err = %v, want ErrUnknownHold", err)
	}
	if _, err := eng.EventSummary("nope"); !errors.Is(err, ErrUnknownEvent) {
		t.Fatalf("summary err = %v, want ErrUnknownEvent", err)
	}
}

func TestValidationErrors(t *testing.T) {
	eng, _ := newTestEngine(t, Params{HoldTTL: time.Minute, MaxTicketsPerOrder: 4})
	defineTier(t, eng, "ga", 85, 10)

	cases := []struct {
		name string
		call func() error
	}{
		{"zero quantity", func() error { _, err := eng.CreateHold("event-1", "ga", "Ada", 0); return err }},
		{"over cap", func() error { _, err := eng.CreateHold("event-1", "ga", "Ada", 5); return err }},
		{"empty customer", func() error { _, err := eng.CreateHold("event-1", "ga", "   ", 1); return err }},
		{"bad event id", func() error { _, err := eng.CreateHold("bad id!", "ga", "Ada", 1); return err }},
		{"bad hold id", func() error { _, err := eng.ReleaseHold("bad id!"); return err }},
		{"zero price tier", func() error { _, err := eng.DefineTier("event-1", "t2", "T2", 0, 5); return err }},
		{"zero capacity tier", func() error { _, err := eng.DefineTier("event-1", "t2", "T2", 10, 0); return err }},
		{"empty tier name", func() error { _, err := eng.DefineTier("event-1", "t2", " ", 10, 5); return err }},
	}
	for _, tc := range cases {
		if err := tc.call(); !errors.Is(err, ErrValidation) {
			t.Errorf("%s: err = %v, want ErrValidation", tc.name, err)
		}
	}
}

func TestDuplicateTier(t *testing.T) {
	eng, _ := newTestEngine(t, Params{HoldTTL: time.Minute, MaxTicketsPerOrder: 8})
	defineTier(t, eng, "ga", 85, 10)
	if _, err := eng.DefineTier("event-1", "ga", "GA again", 90, 5); !errors.Is(err, ErrDuplicateTier) {
		t.Fatalf("err = %v, want ErrDuplicateTier", err)
	}
}

func TestEventSummaryAggregates(t *testing.T) {
	eng, _ := newTestEngine(t, Params{HoldTTL: time.Minute, MaxTicketsPerOrder: 8})
	defineTier(t, eng, "ga", 85, 10)
	defineTier(t, eng, "vip", 220, 4)

	if _, err := eng.CreateHold("event-1", "ga", "Ada", 3); err != nil {
		t.Fatalf("hold: %v", err)
	}
	if _, err := eng.CreateOrder("event-1", "vip", "Bob", 2, ""); err != nil {
		t.Fatalf("order: %v", err)
	}

	s, err := eng.EventSummary("event-1")
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	want := EventSummary{EventID: "event-1", TierCount: 2, Capacity: 14, Sold: 2, Held: 3, Available: 9, MinPrice: 85, MaxPrice: 220}
	if s != want {
		t.Fatalf("summary = %+v, want %+v", s, want)
	}
	if s.Capacity != s.Sold+s.Held+s.Available {
		t.Fatalf("summary partition broken: %+v", s)
	}
}

func TestStats(t *testing.T) {
	eng, _ := newTestEngine(t, Params{HoldTTL: time.Minute, MaxTicketsPerOrder: 8, ServiceFeePercent: 0.12, FlatFee: 2.50})
	defineTier(t, eng, "ga", 85, 10)

	if _, err := eng.CreateHold("event-1", "ga", "Ada", 2); err != nil {
		t.Fatalf("hold: %v", err)
	}
	order, err := eng.CreateOrder("event-1", "ga", "Bob", 2, "")
	if err != nil {
		t.Fatalf("order: %v", err)
	}

	s := eng.Stats()
	if s.TotalEvents != 1 || s.UpcomingEvents != 1 || s.TotalVenues != 1 || s.TotalTiers != 1 {
		t.Fatalf("catalog counts wrong: %+v", s)
	}
	if s.ActiveHolds != 1 || s.TotalOrders != 1 || s.TicketsSold != 2 {
		t.Fatalf("inventory counts wrong: %+v", s)
	}
	if s.Revenue != order.Total {
		t.Fatalf("revenue = %v, want %v", s.Revenue, order.Total)
	}
}

func TestDemoSeed(t *testing.T) {
	dir := directory.New()
	if err := dir.Seed(); err != nil {
		t.Fatalf("seed directory: %v", err)
	}
	eng := NewEngine(dir, Params{HoldTTL: 12 * time.Minute, MaxTicketsPerOrder: 8, ServiceFeePercent: 0.12, FlatFee: 2.50})
	if err := eng.LoadDemoData(); err != nil {
		t.Fatalf("seed inventory: %v", err)
	}
	s, err := eng.EventSummary("event-echoes")
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if s.Capacity != 6800 || s.Sold != 1520 || s.Held != 2 {
		t.Fatalf("seeded summary: %+v", s)
	}
	if s.Capacity != s.Sold+s.Held+s.Available {
		t.Fatalf("seeded partition broken: %+v", s)
	}
	stats := eng.Stats()
	if stats.TotalEvents != 3 || stats.TotalVenues != 3 || stats.TotalTiers != 6 || stats.ActiveHolds != 1 || stats.TotalOrders != 1 {
		t.Fatalf("seeded stats: %+v", stats)
	}
}
