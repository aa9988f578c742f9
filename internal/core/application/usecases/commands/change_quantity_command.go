package commands

import (
	"errors"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/guard"
)

var (
	ErrChangeQuantityCommandIsNotConstructed = errors.New(
		"ChangeQuantityCommand must be created via NewChangeQuantityCommand constructor",
	)
	ErrDeltaIsZero = errors.New("delta must not be zero")
)

// ChangeQuantityCommand adjusts a cart line item's quantity by a signed delta.
// The resulting quantity is floored at one; removal is a separate, explicit
// command.
type ChangeQuantityCommand struct { //nolint:recvcheck //using for validation
	customerID kernel.UUID
	itemID     kernel.UUID
	delta      int

	guard guard.ConstructorGuard
}

// NewChangeQuantityCommand creates a command to adjust a line item quantity.
func NewChangeQuantityCommand(customerID, itemID kernel.UUID, delta int) (ChangeQuantityCommand, error) {
	cmd := ChangeQuantityCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setCustomerID(customerID),
		cmd.setItemID(itemID),
		cmd.setDelta(delta),
	); err != nil {
		return ChangeQuantityCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ChangeQuantityCommand) Validate() error {
	return c.guard.Validate(ErrChangeQuantityCommandIsNotConstructed)
}

// CustomerID returns the cart owner.
func (c ChangeQuantityCommand) CustomerID() kernel.UUID {
	return c.customerID
}

// ItemID returns the line item being adjusted.
func (c ChangeQuantityCommand) ItemID() kernel.UUID {
	return c.itemID
}

// Delta returns the signed quantity adjustment.
func (c ChangeQuantityCommand) Delta() int {
	return c.delta
}

func (c *ChangeQuantityCommand) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}

	c.customerID = customerID
	return nil
}

func (c *ChangeQuantityCommand) setItemID(itemID kernel.UUID) error {
	if err := itemID.Validate(); err != nil {
		return err
	}

	c.itemID = itemID
	return nil
}

func (c *ChangeQuantityCommand) setDelta(delta int) error {
	if delta == 0 {
		return ErrDeltaIsZero
	}

	c.delta = delta
	return nil
}
