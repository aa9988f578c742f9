package order

import (
	"fmt"

	"orderflow/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
// It implements a state machine with an explicit transition whitelist shared
// by all four actor surfaces, so a driver app cannot mark an order picked up
// before the restaurant marked it ready, and a restaurant cannot "un-ready"
// an order.
//
// State transitions:
//
//	pending ──> preparing ──> ready ──> picked_up ──> delivered
//	   │            │           │
//	   └────────────┴───────────┴──> cancelled
//
// cancelled is reachable from pending, preparing and ready only. Once an order
// is picked up, money moves back through the refund workflow instead of a
// cancellation. delivered and cancelled are terminal.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status assigned at checkout completion.
	// The order waits for the restaurant to accept or reject it.
	Pending

	// Preparing indicates the restaurant accepted the order and is cooking.
	Preparing

	// Ready indicates the order is packed and waiting for driver pick-up.
	Ready

	// PickedUp indicates a driver collected the order and is delivering it.
	// The order can no longer be cancelled from here.
	PickedUp

	// Delivered is the happy-path terminal state.
	Delivered

	// Cancelled is the terminal state for orders cancelled before pick-up.
	Cancelled
)

// happyPath is the non-cancelled sequence of states from creation to delivery,
// in canonical order. Tracking projection and NextHappyState derive from it.
var happyPath = [...]Status{Pending, Preparing, Ready, PickedUp, Delivered}

// transitions is the allowed-transition whitelist. Any (from, to) pair not
// listed here is rejected, including self-transitions and skipped states.
var transitions = map[Status][]Status{
	Pending:   {Preparing, Cancelled},
	Preparing: {Ready, Cancelled},
	Ready:     {PickedUp, Cancelled},
	PickedUp:  {Delivered},
}

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "unknown",
		Pending:   "pending",
		Preparing: "preparing",
		Ready:     "ready",
		PickedUp:  "picked_up",
		Delivered: "delivered",
		Cancelled: "cancelled",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:   "pending",
		Preparing: "preparing",
		Ready:     "ready",
		PickedUp:  "picked_up",
		Delivered: "delivered",
		Cancelled: "cancelled",
	}
}

// StatusFromString parses the wire representation used by the remote authority
// and by persistence. Returns an error for unrecognized values.
func StatusFromString(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status",
		fmt.Errorf("%q is not a valid status", s))
}

// Validate checks if the Status value is valid.
// Unknown (0) and out-of-range values are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire name of the status, or "unknown" for invalid values.
// Implements fmt.Stringer and is safe on any Status value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// CanTransition reports whether the (from, to) edge is whitelisted.
// Everything not explicitly listed is rejected; there is no default-allow.
func CanTransition(from, to Status) bool {
	for _, allowed := range transitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// NextHappyState returns the state following s on the happy path, and false
// when s is terminal, cancelled or invalid.
func (s Status) NextHappyState() (Status, bool) {
	for i, state := range happyPath {
		if state == s && i+1 < len(happyPath) {
			return happyPath[i+1], true
		}
	}
	return Unknown, false
}

// IsTerminal reports whether the status admits no further transitions.
// Terminal orders are immutable history; only the rating-submitted flag may
// change afterward.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// IsCancellable reports whether an order in this status may be cancelled.
// True exactly for pending, preparing and ready.
func (s Status) IsCancellable() bool {
	return CanTransition(s, Cancelled)
}

// Transition validates the (s, to) edge against the whitelist and returns the
// new status. Rejections surface an InvalidTransitionError locally, before any
// remote call is made.
func (s Status) Transition(to Status) (Status, error) {
	if !CanTransition(s, to) {
		return Unknown, errs.NewInvalidTransitionError(s.String(), to.String())
	}
	return to, nil
}

// HappyPath returns the canonical non-cancelled state sequence from creation
// to delivery. The returned slice is a copy.
func HappyPath() []Status {
	path := make([]Status, len(happyPath))
	copy(path, happyPath[:])
	return path
}

// AllStatuses returns every valid status. Used for exhaustive sweeps in
// validation and tests.
func AllStatuses() []Status {
	return []Status{Pending, Preparing, Ready, PickedUp, Delivered, Cancelled}
}
