package queries

import (
	"context"

	"orderflow/internal/core/ports"
)

// ListOrdersQueryHandler retrieves the order history read model from the
// remote authority.
type ListOrdersQueryHandler struct {
	orders ports.OrderGateway
}

// NewListOrdersQueryHandler creates a handler for order listing queries.
func NewListOrdersQueryHandler(orders ports.OrderGateway) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{orders: orders}
}

// Handle executes the query and maps each order to its summary row.
func (h ListOrdersQueryHandler) Handle(
	ctx context.Context,
	query ListOrdersQuery,
) (ports.Page[OrderSummary], error) {
	if err := query.Validate(); err != nil {
		return ports.Page[OrderSummary]{}, err
	}

	page, err := h.orders.ListOrders(ctx, query.CustomerID(), ports.OrderFilter{
		Status: query.Status(),
		Page:   query.Page(),
		Limit:  query.Limit(),
	})
	if err != nil {
		return ports.Page[OrderSummary]{}, err
	}

	summaries := make([]OrderSummary, 0, len(page.Items))
	for _, o := range page.Items {
		count := 0
		for _, item := range o.Items() {
			count += item.Quantity()
		}
		summaries = append(summaries, OrderSummary{
			ID:        o.ID(),
			OriginID:  o.OriginID(),
			Status:    o.Status(),
			Total:     o.Charges().Total(),
			ItemCount: count,
			CreatedAt: o.CreatedAt(),
		})
	}

	return ports.Page[OrderSummary]{
		Items:      summaries,
		Total:      page.Total,
		Page:       page.Page,
		Limit:      page.Limit,
		TotalPages: page.TotalPages,
	}, nil
}
