package ports

import (
	"context"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
)

// OrderFilter narrows order listings. Zero values mean no filtering and the
// gateway's default page size.
type OrderFilter struct {
	Status order.Status
	Page   int
	Limit  int
}

// OrderGateway is the remote boundary for orders. The authority's response is
// always authoritative: created and mutated orders come back with
// server-computed fees and timestamps, and callers replace their local copy
// with the returned aggregate rather than merging.
type OrderGateway interface {
	// CreateOrder submits a checkout draft and returns the authoritative order.
	CreateOrder(ctx context.Context, draft *order.Order) (*order.Order, error)

	// ListOrders fetches a page of the caller's orders.
	ListOrders(ctx context.Context, customerID kernel.UUID, filter OrderFilter) (Page[*order.Order], error)

	// GetOrder fetches one order by id.
	GetOrder(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// AdvanceOrder requests a status change on behalf of an actor.
	AdvanceOrder(ctx context.Context, id kernel.UUID, actor order.Actor, to order.Status) (*order.Order, error)

	// CancelOrder cancels an order with a reason on behalf of an actor.
	CancelOrder(ctx context.Context, id kernel.UUID, actor order.Actor, reason string) (*order.Order, error)

	// AssignDriver assigns a driver to an order.
	AssignDriver(ctx context.Context, id, driverID kernel.UUID) (*order.Order, error)
}
