package ports

import (
	"context"

	"orderflow/internal/core/domain/model/kernel"
)

// MenuGateway is the remote boundary for the restaurant's menu. Only
// availability is mutated through this engine; menu content is owned
// elsewhere.
type MenuGateway interface {
	// SetAvailability marks a menu item available or sold out and returns
	// the authoritative flag.
	SetAvailability(ctx context.Context, itemID kernel.UUID, available bool) (bool, error)
}
