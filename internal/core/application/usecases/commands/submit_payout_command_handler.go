package commands

import (
	"context"
	"time"

	"orderflow/internal/core/domain/model/payout"
	"orderflow/internal/core/ports"
	"orderflow/internal/pkg/errs"
	"orderflow/internal/pkg/optimistic"
)

// SubmitPayoutCommandHandler performs the terminal remote call of the
// withdrawal/refund wizard. Double submits are absorbed by the session's
// in-flight flag; failures keep the session on confirmation with an inline
// error, never resetting entered form state.
type SubmitPayoutCommandHandler struct {
	payouts    ports.PayoutGateway
	controller *optimistic.Controller[*payout.Request]
	now        func() time.Time
}

// NewSubmitPayoutCommandHandler creates a handler for money-out submission.
func NewSubmitPayoutCommandHandler(
	payouts ports.PayoutGateway,
	controller *optimistic.Controller[*payout.Request],
) SubmitPayoutCommandHandler {
	return SubmitPayoutCommandHandler{
		payouts:    payouts,
		controller: controller,
		now:        time.Now,
	}
}

// Handle submits the wizard. A false from the in-flight guard means this
// call is a duplicate and a no-op.
func (h *SubmitPayoutCommandHandler) Handle(ctx context.Context, cmd SubmitPayoutCommand) error {
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

	account, ok := session.BankAccount()
	if !ok {
		err := errs.NewValueIsRequiredError("bank account")
		_ = session.FailSubmit(err)
		return err
	}

	request, err := payout.NewRequest(
		cmd.RequestID(), cmd.RequesterID(),
		session.Kind(), session.Amount(), account, session.OrderID(),
		h.now(),
	)
	if err != nil {
		_ = session.FailSubmit(err)
		return err
	}

	return h.controller.Enqueue(ctx, optimistic.Mutation[*payout.Request]{
		EntityID: request.ID().String(),
		Remote: func(ctx context.Context) (*payout.Request, error) {
			return h.payouts.CreateRequest(ctx, request)
		},
		Commit: func(_ *payout.Request) {
			_ = session.CompleteSubmit()
		},
		Revert: func(failure error) {
			_ = session.FailSubmit(failure)
		},
	})
}
