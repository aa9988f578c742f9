package queries

import (
	"context"

	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/ports"
)

// GetOrderQueryHandler fetches one order from the remote authority. The
// aggregate itself is the detail read model; the gateway already
// re-validated every invariant while restoring it.
type GetOrderQueryHandler struct {
	orders ports.OrderGateway
}

// NewGetOrderQueryHandler creates a handler for order detail queries.
func NewGetOrderQueryHandler(orders ports.OrderGateway) GetOrderQueryHandler {
	return GetOrderQueryHandler{orders: orders}
}

// Handle executes the query.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (*order.Order, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	return h.orders.GetOrder(ctx, query.OrderID())
}
