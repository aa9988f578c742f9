package queries

import (
	"context"

	"orderflow/internal/core/domain/model/cart"
	"orderflow/internal/core/ports"
)

// GetCartQueryHandler reads the authoritative flat cart and aggregates it
// into restaurant groups for display.
type GetCartQueryHandler struct {
	carts ports.CartGateway
}

// NewGetCartQueryHandler creates a handler for cart retrieval queries.
func NewGetCartQueryHandler(carts ports.CartGateway) GetCartQueryHandler {
	return GetCartQueryHandler{carts: carts}
}

// Handle executes the query and returns the grouped cart.
func (h GetCartQueryHandler) Handle(ctx context.Context, query GetCartQuery) (GetCartQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetCartQueryResponse{}, err
	}

	items, err := h.carts.ReadCart(ctx, query.CustomerID())
	if err != nil {
		return GetCartQueryResponse{}, err
	}

	groups := cart.Aggregate(items)

	count := 0
	for _, item := range items {
		count += item.Quantity()
	}

	return GetCartQueryResponse{
		Groups:     groups,
		GrandTotal: cart.GrandTotal(groups),
		ItemCount:  count,
	}, nil
}
