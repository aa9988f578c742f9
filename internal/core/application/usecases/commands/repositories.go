// Package commands contains the write-side operations of the engine.
// Remote-authority commands pair a local optimistic update with the
// authoritative call through the optimistic controller; admin console
// commands persist directly through a unit of work.
package commands

import (
	"context"

	"orderflow/internal/core/domain/model/cart"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// PayoutRepoFactory provides access to the payout repository within a transaction.
	PayoutRepoFactory interface {
		PayoutRepository() ports.PayoutRepository
	}

	// OrderUoW manages transactions for order-only operations.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// PayoutUoW manages transactions for payout-only operations.
	PayoutUoW interface {
		TxManager
		PayoutRepoFactory
	}

	// PayoutUoWFactory creates new payout unit of work instances.
	PayoutUoWFactory interface {
		Create() PayoutUoW
	}
)

// Stores are the surface-owned in-memory views that optimistic mutations
// update and reconcile. A store implementation is typically the render state
// of one screen; reconciliation always replaces wholesale, never merges.
type (
	// CartStore holds the current cart grouping.
	CartStore interface {
		Groups() []cart.Group
		Replace(groups []cart.Group)
		ReportFailure(err error)
	}

	// OrderStore holds the orders currently on screen, keyed by id.
	OrderStore interface {
		Get(id kernel.UUID) (*order.Order, bool)
		Replace(o *order.Order)
		ReportFailure(id kernel.UUID, err error)
	}

	// AvailabilityStore holds menu item availability flags.
	AvailabilityStore interface {
		Get(itemID kernel.UUID) (available bool, known bool)
		Set(itemID kernel.UUID, available bool)
		ReportFailure(itemID kernel.UUID, err error)
	}
)
