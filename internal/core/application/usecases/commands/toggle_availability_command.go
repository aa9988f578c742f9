package commands

import (
	"errors"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/guard"
)

var ErrToggleAvailabilityCommandIsNotConstructed = errors.New(
	"ToggleAvailabilityCommand must be created via NewToggleAvailabilityCommand constructor",
)

// ToggleAvailabilityCommand marks a menu item available or sold out.
type ToggleAvailabilityCommand struct { //nolint:recvcheck //using for validation
	itemID    kernel.UUID
	available bool

	guard guard.ConstructorGuard
}

// NewToggleAvailabilityCommand creates a command to flip a menu item's
// availability.
func NewToggleAvailabilityCommand(itemID kernel.UUID, available bool) (ToggleAvailabilityCommand, error) {
	cmd := ToggleAvailabilityCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setItemID(itemID); err != nil {
		return ToggleAvailabilityCommand{}, err
	}
	cmd.available = available

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ToggleAvailabilityCommand) Validate() error {
	return c.guard.Validate(ErrToggleAvailabilityCommandIsNotConstructed)
}

// ItemID returns the menu item being toggled.
func (c ToggleAvailabilityCommand) ItemID() kernel.UUID {
	return c.itemID
}

// Available returns the requested availability flag.
func (c ToggleAvailabilityCommand) Available() bool {
	return c.available
}

func (c *ToggleAvailabilityCommand) setItemID(itemID kernel.UUID) error {
	if err := itemID.Validate(); err != nil {
		return err
	}

	c.itemID = itemID
	return nil
}
