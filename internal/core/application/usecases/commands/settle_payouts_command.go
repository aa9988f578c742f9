package commands

import (
	"errors"

	"orderflow/internal/pkg/guard"
)

var ErrSettlePayoutsCommandIsNotConstructed = errors.New(
	"SettlePayoutsCommand must be created via NewSettlePayoutsCommand constructor",
)

// SettlePayoutsCommand moves every pending withdrawal into settlement.
// Issued periodically by the settlement job.
type SettlePayoutsCommand struct {
	guard guard.ConstructorGuard
}

// NewSettlePayoutsCommand creates a parameterless settlement sweep command.
func NewSettlePayoutsCommand() SettlePayoutsCommand {
	return SettlePayoutsCommand{guard: guard.NewConstructorGuard()}
}

// Validate ensures the command was created through the constructor.
func (c SettlePayoutsCommand) Validate() error {
	return c.guard.Validate(ErrSettlePayoutsCommandIsNotConstructed)
}
