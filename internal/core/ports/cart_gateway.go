package ports

import (
	"context"

	"orderflow/internal/core/domain/model/cart"
	"orderflow/internal/core/domain/model/kernel"
)

// CartGateway is the remote boundary for the customer's cart. Every call
// returns the authoritative flat line-item list; callers aggregate it into
// groups locally.
type CartGateway interface {
	// ReadCart fetches the customer's current line items.
	ReadCart(ctx context.Context, customerID kernel.UUID) ([]cart.LineItem, error)

	// UpdateQuantity sets a line item's absolute quantity and returns the
	// authoritative cart.
	UpdateQuantity(ctx context.Context, customerID, itemID kernel.UUID, quantity int) ([]cart.LineItem, error)

	// RemoveItem removes a line item and returns the authoritative cart.
	RemoveItem(ctx context.Context, customerID, itemID kernel.UUID) ([]cart.LineItem, error)

	// Clear empties the cart. Called after a successful checkout.
	Clear(ctx context.Context, customerID kernel.UUID) error
}
