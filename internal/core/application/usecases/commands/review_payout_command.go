package commands

import (
	"errors"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/guard"
)

var ErrReviewPayoutCommandIsNotConstructed = errors.New(
	"ReviewPayoutCommand must be created via NewReviewPayoutCommand constructor",
)

// ReviewPayoutCommand is the admin decision on a pending request: approval
// moves a refund to approved and a withdrawal into settlement; denial moves
// a refund to rejected and a withdrawal to failed.
type ReviewPayoutCommand struct { //nolint:recvcheck //using for validation
	requestID kernel.UUID
	approve   bool

	guard guard.ConstructorGuard
}

// NewReviewPayoutCommand creates a command to review a pending request.
func NewReviewPayoutCommand(requestID kernel.UUID, approve bool) (ReviewPayoutCommand, error) {
	cmd := ReviewPayoutCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setRequestID(requestID); err != nil {
		return ReviewPayoutCommand{}, err
	}
	cmd.approve = approve

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ReviewPayoutCommand) Validate() error {
	return c.guard.Validate(ErrReviewPayoutCommandIsNotConstructed)
}

// RequestID returns the request under review.
func (c ReviewPayoutCommand) RequestID() kernel.UUID {
	return c.requestID
}

// Approve returns the admin's decision.
func (c ReviewPayoutCommand) Approve() bool {
	return c.approve
}

func (c *ReviewPayoutCommand) setRequestID(requestID kernel.UUID) error {
	if err := requestID.Validate(); err != nil {
		return err
	}

	c.requestID = requestID
	return nil
}
