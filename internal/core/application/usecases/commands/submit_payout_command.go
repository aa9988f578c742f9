package commands

import (
	"errors"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/withdrawal"
	"orderflow/internal/pkg/guard"
)

var ErrSubmitPayoutCommandIsNotConstructed = errors.New(
	"SubmitPayoutCommand must be created via NewSubmitPayoutCommand constructor",
)

// SubmitPayoutCommand turns a money-out wizard session into a request
// creation call. The same command serves withdrawals and refunds; the
// session's kind decides.
type SubmitPayoutCommand struct { //nolint:recvcheck //using for validation
	requestID   kernel.UUID
	requesterID kernel.UUID
	session     *withdrawal.Session

	guard guard.ConstructorGuard
}

// NewSubmitPayoutCommand creates a command to submit a money-out wizard.
func NewSubmitPayoutCommand(
	requestID, requesterID kernel.UUID,
	session *withdrawal.Session,
) (SubmitPayoutCommand, error) {
	cmd := SubmitPayoutCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setRequestID(requestID),
		cmd.setRequesterID(requesterID),
		cmd.setSession(session),
	); err != nil {
		return SubmitPayoutCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c SubmitPayoutCommand) Validate() error {
	return c.guard.Validate(ErrSubmitPayoutCommandIsNotConstructed)
}

// RequestID returns the id the new request will carry.
func (c SubmitPayoutCommand) RequestID() kernel.UUID {
	return c.requestID
}

// RequesterID returns the driver or customer filing the request.
func (c SubmitPayoutCommand) RequesterID() kernel.UUID {
	return c.requesterID
}

// Session returns the wizard session being submitted.
func (c SubmitPayoutCommand) Session() *withdrawal.Session {
	return c.session
}

func (c *SubmitPayoutCommand) setRequestID(requestID kernel.UUID) error {
	if err := requestID.Validate(); err != nil {
		return err
	}

	c.requestID = requestID
	return nil
}

func (c *SubmitPayoutCommand) setRequesterID(requesterID kernel.UUID) error {
	if err := requesterID.Validate(); err != nil {
		return err
	}

	c.requesterID = requesterID
	return nil
}

func (c *SubmitPayoutCommand) setSession(session *withdrawal.Session) error {
	if session == nil {
		return ErrSessionIsRequired
	}
	if err := session.Validate(); err != nil {
		return err
	}

	c.session = session
	return nil
}
