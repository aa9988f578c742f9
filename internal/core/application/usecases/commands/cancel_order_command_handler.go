package commands

import (
	"context"
	"time"

	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/ports"
	"orderflow/internal/pkg/errs"
	"orderflow/internal/pkg/optimistic"
)

// CancelOrderCommandHandler cancels an order optimistically and reconciles
// against the order authority. Cancellation of a non-cancellable status is
// rejected locally.
type CancelOrderCommandHandler struct {
	store      OrderStore
	gateway    ports.OrderGateway
	controller *optimistic.Controller[*order.Order]
	now        func() time.Time
}

// NewCancelOrderCommandHandler creates a handler for order cancellation.
func NewCancelOrderCommandHandler(
	store OrderStore,
	gateway ports.OrderGateway,
	controller *optimistic.Controller[*order.Order],
) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		store:      store,
		gateway:    gateway,
		controller: controller,
		now:        time.Now,
	}
}

// Handle validates the cancellation locally, then enqueues the optimistic
// change keyed by order id.
func (h *CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	current, ok := h.store.Get(cmd.OrderID())
	if !ok {
		return errs.NewObjectNotFoundError("orderID", cmd.OrderID())
	}
	if err := current.Clone().Cancel(cmd.Actor(), cmd.Reason(), h.now()); err != nil {
		return err
	}

	var prior *order.Order
	return h.controller.Enqueue(ctx, optimistic.Mutation[*order.Order]{
		EntityID: cmd.OrderID().String(),
		Apply: func() *order.Order {
			// Snapshot and speculate against the state the predecessor
			// mutation left, not the state Handle saw.
			prior = latestOrder(h.store, cmd.OrderID(), current)
			speculative := prior.Clone()
			if err := speculative.Cancel(cmd.Actor(), cmd.Reason(), h.now()); err != nil {
				return prior
			}
			h.store.Replace(speculative)
			return speculative
		},
		Remote: func(ctx context.Context) (*order.Order, error) {
			return h.gateway.CancelOrder(ctx, cmd.OrderID(), cmd.Actor(), cmd.Reason())
		},
		Commit: func(authoritative *order.Order) {
			h.store.Replace(authoritative)
		},
		Revert: func(failure error) {
			h.store.Replace(prior)
			h.store.ReportFailure(cmd.OrderID(), failure)
		},
	})
}
