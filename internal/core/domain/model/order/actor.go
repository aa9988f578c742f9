package order

import (
	"fmt"

	"orderflow/internal/pkg/errs"
)

// Actor identifies which party of the platform is requesting an order status
// change. The same transition table serves all four surfaces; what differs per
// actor is the subset of edges it may trigger, expressed as an explicit
// capability table rather than branches on actor identity.
type Actor int

const (
	// ActorUnknown represents an invalid or undefined actor.
	ActorUnknown Actor = iota

	// ActorCustomer is the storefront customer who placed the order.
	ActorCustomer

	// ActorRestaurant is the back-office of the order's origin restaurant.
	ActorRestaurant

	// ActorDriver is the delivery driver assigned to the order.
	ActorDriver

	// ActorAdmin is the platform super-admin console.
	ActorAdmin
)

// capability is one granted edge of the transition table.
type capability struct {
	actor Actor
	from  Status
	to    Status
}

// capabilities grants each actor its slice of the transition table:
//   - the restaurant accepts, readies and rejects orders
//   - the driver picks up and delivers
//   - the customer may cancel until cooking finishes
//   - the admin console holds every whitelisted edge
var capabilities = []capability{
	{ActorRestaurant, Pending, Preparing},
	{ActorRestaurant, Preparing, Ready},
	{ActorRestaurant, Pending, Cancelled},

	{ActorDriver, Ready, PickedUp},
	{ActorDriver, PickedUp, Delivered},

	{ActorCustomer, Pending, Cancelled},
	{ActorCustomer, Preparing, Cancelled},

	{ActorAdmin, Pending, Preparing},
	{ActorAdmin, Preparing, Ready},
	{ActorAdmin, Ready, PickedUp},
	{ActorAdmin, PickedUp, Delivered},
	{ActorAdmin, Pending, Cancelled},
	{ActorAdmin, Preparing, Cancelled},
	{ActorAdmin, Ready, Cancelled},
}

// capabilityIndex supports O(1) capability checks.
var capabilityIndex = func() map[capability]bool {
	index := make(map[capability]bool, len(capabilities))
	for _, c := range capabilities {
		index[c] = true
	}
	return index
}()

func getActorStrings() map[Actor]string {
	return map[Actor]string{
		ActorUnknown:    "unknown",
		ActorCustomer:   "customer",
		ActorRestaurant: "restaurant",
		ActorDriver:     "driver",
		ActorAdmin:      "admin",
	}
}

// ActorFromString parses the wire representation of an actor.
func ActorFromString(s string) (Actor, error) {
	for actor, str := range getActorStrings() {
		if actor != ActorUnknown && str == s {
			return actor, nil
		}
	}
	return ActorUnknown, errs.NewValueIsInvalidErrorWithCause("actor",
		fmt.Errorf("%q is not a valid actor", s))
}

// Validate checks if the Actor value is valid.
func (a Actor) Validate() error {
	if a < ActorCustomer || a > ActorAdmin {
		return errs.NewValueIsInvalidErrorWithCause("actor",
			fmt.Errorf("%d is not a valid actor", a))
	}
	return nil
}

// String returns the wire name of the actor, or "unknown" for invalid values.
func (a Actor) String() string {
	if str, ok := getActorStrings()[a]; ok {
		return str
	}
	return "unknown"
}

// CanTransition reports whether this actor may trigger the (from, to) edge.
// The edge must be whitelisted in the transition table AND granted to the
// actor; either check failing rejects the request locally.
func (a Actor) CanTransition(from, to Status) bool {
	return CanTransition(from, to) && capabilityIndex[capability{actor: a, from: from, to: to}]
}

// AllowedTransitions returns the target states this actor may move an order to
// from the given state, in transition-table order. Surfaces use it to decide
// which action buttons to render.
func (a Actor) AllowedTransitions(from Status) []Status {
	targets := make([]Status, 0)
	for _, to := range transitions[from] {
		if capabilityIndex[capability{actor: a, from: from, to: to}] {
			targets = append(targets, to)
		}
	}
	return targets
}
