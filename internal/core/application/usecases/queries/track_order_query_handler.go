package queries

import (
	"context"

	"orderflow/internal/core/domain/services"
	"orderflow/internal/core/ports"
)

// TrackOrderQueryHandler fetches an order and projects its tracking steps.
type TrackOrderQueryHandler struct {
	orders    ports.OrderGateway
	projector services.TrackingProjector
}

// NewTrackOrderQueryHandler creates a handler for tracking queries.
func NewTrackOrderQueryHandler(orders ports.OrderGateway) TrackOrderQueryHandler {
	return TrackOrderQueryHandler{
		orders:    orders,
		projector: services.NewTrackingProjector(),
	}
}

// Handle executes the query.
func (h TrackOrderQueryHandler) Handle(
	ctx context.Context,
	query TrackOrderQuery,
) (TrackOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return TrackOrderQueryResponse{}, err
	}

	o, err := h.orders.GetOrder(ctx, query.OrderID())
	if err != nil {
		return TrackOrderQueryResponse{}, err
	}

	steps, err := h.projector.Project(o)
	if err != nil {
		return TrackOrderQueryResponse{}, err
	}

	return TrackOrderQueryResponse{
		OrderID: o.ID(),
		Status:  o.Status(),
		Steps:   steps,
	}, nil
}
