package inventory

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/iliyamo/ticket-reservation/internal/model"
)

// Directory resolves events and venues for the engine.  The engine does
// not own the catalog; it only needs lookups and, for catalog-wide stats,
// listings.  internal/directory provides the production implementation.
type Directory interface {
	GetEvent(id string) (model.Event, bool)
	GetVenue(id string) (model.Venue, bool)
	ListEvents() []model.Event
	ListVenues() []model.Venue
}

// Params carries the engine configuration.  Values are fixed at
// construction and never change while the process runs.
type Params struct {
	HoldTTL            time.Duration
	MaxTicketsPerOrder int
	ServiceFeePercent  float64
	FlatFee            float64
}

// EventSummary aggregates inventory across all tiers of one event.
type EventSummary struct {
	EventID   string  `json:"event_id"`
	TierCount int     `json:"tier_count"`
	Capacity  int     `json:"capacity"`
	Sold      int     `json:"sold"`
	Held      int     `json:"held"`
	Available int     `json:"available"`
	MinPrice  float64 `json:"min_price"`
	MaxPrice  float64 `json:"max_price"`
}

// Stats aggregates across the whole catalog.
type Stats struct {
	TotalEvents    int     `json:"total_events"`
	UpcomingEvents int     `json:"upcoming_events"`
	TotalVenues    int     `json:"total_venues"`
	TotalTiers     int     `json:"total_tiers"`
	ActiveHolds    int     `json:"active_holds"`
	TotalOrders    int     `json:"total_orders"`
	TicketsSold    int     `json:"tickets_sold"`
	Revenue        float64 `json:"revenue"`
}

// Engine is the reservation orchestrator.  It exclusively owns the tier,
// hold and order maps; the ledger and registry are only ever touched
// through its methods.  One mutex guards the whole aggregate: sweep and
// conversion touch a hold and its tier together, and capacity checks must
// be read-modify-write atomic against any other mutation of the same
// tier, so a single critical section keeps every operation linearizable.
type Engine struct {
	mu     sync.Mutex
	ledger *TierLedger
	holds  *HoldRegistry
	orders map[string]model.Order
	dir    Directory
	params Params
	now    func() time.Time
}

// NewEngine constructs an engine over the given directory.  Out-of-range
// params are clamped to sane values the same way the config defaults are.
func NewEngine(dir Directory, p Params) *Engine {
	if p.HoldTTL <= 0 {
		p.HoldTTL = 12 * time.Minute
	}
	if p.MaxTicketsPerOrder < 1 {
		p.MaxTicketsPerOrder = 1
	}
	if p.ServiceFeePercent < 0 {
		p.ServiceFeePercent = 0
	}
	if p.FlatFee < 0 {
		p.FlatFee = 0
	}
	return &Engine{
		ledger: NewTierLedger(),
		holds:  NewHoldRegistry(),
		orders: make(map[string]model.Order),
		dir:    dir,
		params: p,
		now:    time.Now,
	}
}

// MaxTicketsPerOrder exposes the per-order cap for the API layer.
func (e *Engine) MaxTicketsPerOrder() int { return e.params.MaxTicketsPerOrder }

// HoldTTL exposes the configured hold lifetime.
func (e *Engine) HoldTTL() time.Duration { return e.params.HoldTTL }

// DefineTier registers a new priced tier for an event.  Tier capacity is
// fixed after creation; there is no resize or delete.
func (e *Engine) DefineTier(eventID, tierID, name string, unitPrice float64, capacity int) (model.Tier, error) {
	eventID, err := normalizeID("event", eventID)
	if err != nil {
		return model.Tier{}, err
	}
	tierID, err = normalizeID("tier", tierID)
	if err != nil {
		return model.Tier{}, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Tier{}, fmt.Errorf("%w: tier name cannot be empty", ErrValidation)
	}
	if unitPrice <= 0 {
		return model.Tier{}, fmt.Errorf("%w: unit price must be positive", ErrValidation)
	}
	if capacity < 1 {
		return model.Tier{}, fmt.Errorf("%w: capacity must be at least 1", ErrValidation)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	now := e.now()
	e.holds.SweepExpired(now, e.ledger)

	if _, ok := e.dir.GetEvent(eventID); !ok {
		return model.Tier{}, fmt.Errorf("%w: %s", ErrUnknownEvent, eventID)
	}
	tier := model.Tier{
		ID:        tierID,
		EventID:   eventID,
		Name:      name,
		UnitPrice: model.Round2(unitPrice),
		Capacity:  capacity,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := e.ledger.Define(tier); err != nil {
		return model.Tier{}, err
	}
	return tier, nil
}

// CreateHold places a time-boxed claim on qty tickets of a tier.  The hold
// expires HoldTTL after creation; expiry is enforced lazily by the sweep,
// not by a timer.
func (e *Engine) CreateHold(eventID, tierID, customer string, qty int) (model.Hold, error) {
	eventID, tierID, customer, err := e.validateRequest(eventID, tierID, customer, qty)
	if err != nil {
		return model.Hold{}, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	now := e.now()
	e.holds.SweepExpired(now, e.ledger)

	if _, err := e.resolveTier(eventID, tierID); err != nil {
		return model.Hold{}, err
	}
	if err := e.ledger.Reserve(tierID, qty, now); err != nil {
		return model.Hold{}, err
	}
	hold := model.Hold{
		ID:        "hold-" + uuid.NewString(),
		EventID:   eventID,
		TierID:    tierID,
		Customer:  customer,
		Quantity:  qty,
		Status:    model.HoldActive,
		CreatedAt: now,
		ExpiresAt: now.Add(e.params.HoldTTL),
		UpdatedAt: now,
	}
	e.holds.Put(hold)
	return hold, nil
}

// ReleaseHold voluntarily gives a hold back.  The held quantity returns to
// available and the hold transitions to RELEASED.  A hold that already
// reached a terminal state fails with ErrHoldNotActive and nothing
// changes; the sweep runs first, so a nominally expired hold is observed
// as EXPIRED here, never released twice.
func (e *Engine) ReleaseHold(holdID string) (model.Hold, error) {
	holdID, err := normalizeID("hold", holdID)
	if err != nil {
		return model.Hold{}, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	now := e.now()
	e.holds.SweepExpired(now, e.ledger)

	hold, ok := e.holds.Get(holdID)
	if !ok {
		return model.Hold{}, fmt.Errorf("%w: %s", ErrUnknownHold, holdID)
	}
	if hold.Status != model.HoldActive {
		return model.Hold{}, fmt.Errorf("%w: status is %s", ErrHoldNotActive, hold.Status)
	}
	e.ledger.Release(hold.TierID, hold.Quantity, now)
	released := hold.WithStatus(model.HoldReleased, now)
	e.holds.Put(released)
	return released, nil
}

// CreateOrder confirms a sale, either by converting an active hold (the
// quantity must match the hold exactly; partial conversion is not
// supported) or as a direct purchase against available capacity.  Fees are
// qty*unitPrice*feePercent + flatFee, rounded half-up to cents.
func (e *Engine) CreateOrder(eventID, tierID, customer string, qty int, holdID string) (model.Order, error) {
	eventID, tierID, customer, err := e.validateRequest(eventID, tierID, customer, qty)
	if err != nil {
		return model.Order{}, err
	}
	fromHold := strings.TrimSpace(holdID) != ""
	if fromHold {
		if holdID, err = normalizeID("hold", holdID); err != nil {
			return model.Order{}, err
		}
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	now := e.now()
	e.holds.SweepExpired(now, e.ledger)

	tier, err := e.resolveTier(eventID, tierID)
	if err != nil {
		return model.Order{}, err
	}

	if fromHold {
		hold, ok := e.holds.Get(holdID)
		if !ok {
			return model.Order{}, fmt.Errorf("%w: %s", ErrUnknownHold, holdID)
		}
		if hold.Status != model.HoldActive {
			return model.Order{}, fmt.Errorf("%w: status is %s", ErrHoldNotActive, hold.Status)
		}
		if hold.EventID != eventID || hold.TierID != tierID {
			return model.Order{}, fmt.Errorf("%w: hold is for event %s tier %s", ErrHoldMismatch, hold.EventID, hold.TierID)
		}
		if qty != hold.Quantity {
			return model.Order{}, fmt.Errorf("%w: quantity must match hold quantity %d", ErrHoldMismatch, hold.Quantity)
		}
		e.ledger.SellFromHeld(tierID, qty, now)
		e.holds.Put(hold.WithStatus(model.HoldConverted, now))
	} else {
		if err := e.ledger.Sell(tierID, qty, now); err != nil {
			return model.Order{}, err
		}
	}

	subtotal := float64(qty) * tier.UnitPrice
	fees := model.Round2(subtotal*e.params.ServiceFeePercent + e.params.FlatFee)
	order := model.Order{
		ID:        "order-" + uuid.NewString(),
		EventID:   eventID,
		TierID:    tierID,
		Customer:  customer,
		Quantity:  qty,
		UnitPrice: tier.UnitPrice,
		Fees:      fees,
		Total:     model.Round2(subtotal + fees),
		Status:    model.OrderConfirmed,
		CreatedAt: now,
	}
	e.orders[order.ID] = order
	return order, nil
}

// EventSummary aggregates capacity, sold, held, available and the price
// range across an event's tiers.  Like every entry point it sweeps first,
// so the numbers reflect expired holds.
func (e *Engine) EventSummary(eventID string) (EventSummary, error) {
	eventID, err := normalizeID("event", eventID)
	if err != nil {
		return EventSummary{}, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.holds.SweepExpired(e.now(), e.ledger)

	if _, ok := e.dir.GetEvent(eventID); !ok {
		return EventSummary{}, fmt.Errorf("%w: %s", ErrUnknownEvent, eventID)
	}
	return e.summarizeLocked(eventID), nil
}

// summarizeLocked computes the per-event aggregate.  Caller holds the lock.
func (e *Engine) summarizeLocked(eventID string) EventSummary {
	s := EventSummary{EventID: eventID}
	for _, t := range e.ledger.ListByEvent(eventID) {
		s.TierCount++
		s.Capacity += t.Capacity
		s.Sold += t.SoldCount
		s.Held += t.HeldCount
		s.Available += t.Available()
		if s.TierCount == 1 || t.UnitPrice < s.MinPrice {
			s.MinPrice = t.UnitPrice
		}
		if t.UnitPrice > s.MaxPrice {
			s.MaxPrice = t.UnitPrice
		}
	}
	return s
}

// ListTiers returns an event's tiers sorted by price.
func (e *Engine) ListTiers(eventID string) ([]model.Tier, error) {
	eventID, err := normalizeID("event", eventID)
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.holds.SweepExpired(e.now(), e.ledger)

	if _, ok := e.dir.GetEvent(eventID); !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownEvent, eventID)
	}
	return e.ledger.ListByEvent(eventID), nil
}

// ListHolds returns an event's holds, newest first, including terminal
// ones kept as audit records.
func (e *Engine) ListHolds(eventID string) ([]model.Hold, error) {
	eventID, err := normalizeID("event", eventID)
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.holds.SweepExpired(e.now(), e.ledger)

	if _, ok := e.dir.GetEvent(eventID); !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownEvent, eventID)
	}
	return e.holds.ListByEvent(eventID), nil
}

// ListOrders returns an event's orders, newest first.
func (e *Engine) ListOrders(eventID string) ([]model.Order, error) {
	eventID, err := normalizeID("event", eventID)
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.holds.SweepExpired(e.now(), e.ledger)

	if _, ok := e.dir.GetEvent(eventID); !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownEvent, eventID)
	}
	out := make([]model.Order, 0, 8)
	for _, o := range e.orders {
		if o.EventID == eventID {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// Stats aggregates across the whole catalog: events, venues, tiers,
// active holds, orders, tickets sold and confirmed revenue.
func (e *Engine) Stats() Stats {
	e.mu.Lock()
	defer e.mu.Unlock()
	now := e.now()
	e.holds.SweepExpired(now, e.ledger)

	s := Stats{
		TotalVenues: len(e.dir.ListVenues()),
		TotalTiers:  e.ledger.Count(),
		ActiveHolds: e.holds.ActiveCount(),
		TotalOrders: len(e.orders),
	}
	for _, ev := range e.dir.ListEvents() {
		s.TotalEvents++
		if ev.StartsAt.After(now) {
			s.UpcomingEvents++
		}
		for _, t := range e.ledger.ListByEvent(ev.ID) {
			s.TicketsSold += t.SoldCount
		}
	}
	revenue := 0.0
	for _, o := range e.orders {
		revenue += o.Total
	}
	s.Revenue = model.Round2(revenue)
	return s
}

// validateRequest checks the inputs shared by CreateHold and CreateOrder.
func (e *Engine) validateRequest(eventID, tierID, customer string, qty int) (string, string, string, error) {
	eventID, err := normalizeID("event", eventID)
	if err != nil {
		return "", "", "", err
	}
	tierID, err = normalizeID("tier", tierID)
	if err != nil {
		return "", "", "", err
	}
	customer = strings.TrimSpace(customer)
	if customer == "" {
		return "", "", "", fmt.Errorf("%w: customer cannot be empty", ErrValidation)
	}
	if qty < 1 {
		return "", "", "", fmt.Errorf("%w: quantity must be at least 1", ErrValidation)
	}
	if qty > e.params.MaxTicketsPerOrder {
		return "", "", "", fmt.Errorf("%w: max tickets per order is %d", ErrValidation, e.params.MaxTicketsPerOrder)
	}
	return eventID, tierID, customer, nil
}

// resolveTier verifies the event exists and the tier belongs to it.
// Caller holds the lock.
func (e *Engine) resolveTier(eventID, tierID string) (model.Tier, error) {
	if _, ok := e.dir.GetEvent(eventID); !ok {
		return model.Tier{}, fmt.Errorf("%w: %s", ErrUnknownEvent, eventID)
	}
	tier, ok := e.ledger.Get(tierID)
	if !ok || tier.EventID != eventID {
		return model.Tier{}, fmt.Errorf("%w: %s", ErrUnknownTier, tierID)
	}
	return tier, nil
}

// normalizeID trims and validates an identifier.
func normalizeID(field, id string) (string, error) {
	normalized, ok := model.NormalizeID(id)
	if !ok {
		return "", fmt.Errorf("%w: %s id must use letters, numbers, '.', '-', '_' or ':'", ErrValidation, field)
	}
	return normalized, nil
}
