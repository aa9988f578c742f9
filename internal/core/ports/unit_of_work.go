package ports

import (
	"context"
)

// UnitOfWorkFactory hands out a fresh UnitOfWork per business operation so
// concurrent admin actions never share a transaction.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is the transaction boundary of the admin console write path.
// Callers drive the lifecycle explicitly: Begin, repository work, then
// Commit or Rollback.
type UnitOfWork interface {
	// Begin opens the database transaction.
	Begin(ctx context.Context) error

	// Commit finalizes the transaction. Fails when none is open.
	Commit(ctx context.Context) error

	// Rollback discards the transaction. Fails when none is open.
	Rollback(ctx context.Context) error

	// OrderRepository returns an order repository bound to the transaction.
	OrderRepository() OrderRepository

	// PayoutRepository returns a payout repository bound to the transaction.
	PayoutRepository() PayoutRepository
}
