// Package inventory implements the ticket reservation core: per-tier
// capacity counters, time-boxed holds with lazy expiry, and the conversion
// of holds into confirmed orders.  All state lives in memory behind a
// single critical section owned by the Engine.
package inventory

import "errors"

// Sentinel errors returned by the engine.  Callers distinguish failure
// classes with errors.Is; the engine wraps these with detail via fmt.Errorf
// and %w.  The HTTP layer translates them into 400/404/409 responses.
var (
	// ErrValidation indicates malformed or out-of-range input such as a
	// bad id pattern, an empty customer or a quantity outside bounds.
	ErrValidation = errors.New("invalid input")

	// ErrUnknownEvent is returned when the referenced event does not exist.
	ErrUnknownEvent = errors.New("unknown event")

	// ErrUnknownTier is returned when the tier does not exist or does not
	// belong to the referenced event.
	ErrUnknownTier = errors.New("unknown ticket tier")

	// ErrUnknownHold is returned when the hold id cannot be found.
	ErrUnknownHold = errors.New("unknown hold")

	// ErrDuplicateTier is returned when defining a tier with an id that is
	// already taken.
	ErrDuplicateTier = errors.New("tier id already exists")

	// ErrInsufficientInventory is returned when the requested quantity
	// exceeds the tier's currently available capacity.
	ErrInsufficientInventory = errors.New("not enough tickets available")

	// ErrHoldNotActive is returned when operating on a hold that already
	// expired, was released, or was converted.
	ErrHoldNotActive = errors.New("hold is no longer active")

	// ErrHoldMismatch is returned when a hold's event, tier or quantity
	// does not match the order request.
	ErrHoldMismatch = errors.New("hold does not match order")
)
