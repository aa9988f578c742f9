package commands

import (
	"context"
	"time"

	"orderflow/internal/core/domain/model/cart"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/ports"
	"orderflow/internal/pkg/errs"
	"orderflow/internal/pkg/optimistic"
)

// SubmitCheckoutCommandHandler performs the one remote call of the checkout
// wizard. The session's re-entrancy guard runs synchronously before anything
// is enqueued, so a rapid double submit fires exactly one order-creation
// call. On success the session completes and the cart is cleared; on failure
// the session returns to confirmation with an inline error.
type SubmitCheckoutCommandHandler struct {
	orders     ports.OrderGateway
	carts      ports.CartGateway
	controller *optimistic.Controller[*order.Order]
	now        func() time.Time
}

// NewSubmitCheckoutCommandHandler creates a handler for checkout submission.
func NewSubmitCheckoutCommandHandler(
	orders ports.OrderGateway,
	carts ports.CartGateway,
	controller *optimistic.Controller[*order.Order],
) SubmitCheckoutCommandHandler {
	return SubmitCheckoutCommandHandler{
		orders:     orders,
		carts:      carts,
		controller: controller,
		now:        time.Now,
	}
}

// Handle submits the wizard. A false from the session's re-entrancy guard
// means a submission is already in flight and this call is a no-op.
func (h *SubmitCheckoutCommandHandler) Handle(ctx context.Context, cmd SubmitCheckoutCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	session := cmd.Session()
	fire, err := session.BeginSubmit()
	if err != nil {
		return err
	}
	if !fire {
		return nil
	}

	draft, err := h.buildDraft(cmd)
	if err != nil {
		_ = session.FailSubmit(err)
		return err
	}

	return h.controller.Enqueue(ctx, optimistic.Mutation[*order.Order]{
		EntityID: draft.ID().String(),
		Remote: func(ctx context.Context) (*order.Order, error) {
			return h.orders.CreateOrder(ctx, draft)
		},
		Commit: func(_ *order.Order) {
			_ = session.CompleteSubmit()
			// The order exists by now whatever happened to the caller's
			// context; the cart clear must not be lost to its cancellation.
			_ = h.carts.Clear(context.WithoutCancel(ctx), cmd.CustomerID())
		},
		Revert: func(failure error) {
			_ = session.FailSubmit(failure)
		},
	})
}

// buildDraft freezes the origin's cart group into order item snapshots and
// combines them with the session's address and the local fee quote.
func (h *SubmitCheckoutCommandHandler) buildDraft(cmd SubmitCheckoutCommand) (*order.Order, error) {
	var group cart.Group
	found := false
	for _, g := range cmd.Groups() {
		if g.Origin().ID().IsEqual(cmd.OriginID()) {
			group = g
			found = true
			break
		}
	}
	if !found {
		return nil, errs.NewObjectNotFoundError("originID", cmd.OriginID())
	}

	items := make([]order.ItemSnapshot, 0, len(group.Items()))
	for _, item := range group.Items() {
		snapshot, err := order.NewItemSnapshot(item.ID(), item.Name(), item.UnitPrice(), item.Quantity())
		if err != nil {
			return nil, err
		}
		items = append(items, snapshot)
	}

	charges, err := order.NewCharges(group.Subtotal(), cmd.DeliveryFee(), cmd.ServiceFee())
	if err != nil {
		return nil, err
	}

	address, ok := cmd.Session().Address()
	if !ok {
		return nil, errs.NewValueIsRequiredError("delivery address")
	}

	return order.NewOrder(
		cmd.OrderID(), cmd.OriginID(), cmd.CustomerID(),
		items, charges, address, h.now(),
	)
}
