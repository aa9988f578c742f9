package commands

import (
	"context"
	"time"

	"orderflow/internal/core/domain/model/payout"
)

// ReviewPayoutCommandHandler applies an admin review decision inside a
// transaction. The per-kind status machine picks the resulting status;
// terminal requests reject any further decision.
type ReviewPayoutCommandHandler struct {
	uowFactory PayoutUoWFactory
	now        func() time.Time
}

// NewReviewPayoutCommandHandler creates a handler for payout review.
func NewReviewPayoutCommandHandler(uowFactory PayoutUoWFactory) ReviewPayoutCommandHandler {
	return ReviewPayoutCommandHandler{
		uowFactory: uowFactory,
		now:        time.Now,
	}
}

// Handle processes the review command.
func (h *ReviewPayoutCommandHandler) Handle(ctx context.Context, cmd ReviewPayoutCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	payoutRepo := uow.PayoutRepository()
	request, err := payoutRepo.Get(ctx, cmd.RequestID())
	if err != nil {
		return err
	}

	if err = h.decide(request, cmd.Approve()); err != nil {
		return err
	}

	if err = payoutRepo.Update(ctx, request); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

func (h *ReviewPayoutCommandHandler) decide(request *payout.Request, approve bool) error {
	at := h.now()

	switch {
	case request.Kind() == payout.KindRefund && approve:
		return request.Approve(at)
	case request.Kind() == payout.KindRefund:
		return request.Reject(at)
	case approve:
		return request.MarkProcessing(at)
	default:
		return request.MarkFailed(at)
	}
}
