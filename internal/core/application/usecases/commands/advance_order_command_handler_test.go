package commands_test

import (
	"sync"
	"testing"
	"time"

	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/errs"
	"orderflow/internal/pkg/optimistic"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type fakeOrderStore struct {
	mu       sync.Mutex
	orders   map[string]*order.Order
	failures map[string]error
}

func newFakeOrderStore(orders ...*order.Order) *fakeOrderStore {
	store := &fakeOrderStore{
		orders:   make(map[string]*order.Order),
		failures: make(map[string]error),
	}
	for _, o := range orders {
		store.orders[o.ID().String()] = o
	}
	return store
}

func (s *fakeOrderStore) Get(id kernel.UUID) (*order.Order, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[id.String()]
	return o, ok
}

func (s *fakeOrderStore) Replace(o *order.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders[o.ID().String()] = o
}

func (s *fakeOrderStore) ReportFailure(id kernel.UUID, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[id.String()] = err
}

func (s *fakeOrderStore) statusOf(id kernel.UUID) order.Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.orders[id.String()].Status()
}

func (s *fakeOrderStore) failureOf(id kernel.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.failures[id.String()]
}

func storedOrder(t *testing.T) *order.Order {
	t.Helper()
	item, err := order.NewItemSnapshot(kernel.NewUUID(), "Nasi Goreng", 35000, 1)
	require.NoError(t, err)
	charges, err := order.NewCharges(35000, 10000, 2000)
	require.NoError(t, err)
	address, err := order.NewAddress("Jl. Sudirman 12", "", "")
	require.NoError(t, err)

	o, err := order.NewOrder(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		[]order.ItemSnapshot{item}, charges, address, time.Now(),
	)
	require.NoError(t, err)
	return o
}

func TestAdvanceOrderCommandHandler_Handle(t *testing.T) {
	t.Run("should show the new status immediately and commit the authoritative order", func(t *testing.T) {
		ctx := t.Context()
		current := storedOrder(t)
		store := newFakeOrderStore(current)

		authoritative := current.Clone()
		require.NoError(t, authoritative.Advance(order.ActorRestaurant, order.Preparing, time.Now()))

		gateway := new(MockOrderGateway)
		gateway.On("AdvanceOrder", mock.Anything, current.ID(), order.ActorRestaurant, order.Preparing).
			Return(authoritative, nil).Once()

		handler := commands.NewAdvanceOrderCommandHandler(store, gateway, optimistic.NewController[*order.Order]())
		cmd, err := commands.NewAdvanceOrderCommand(current.ID(), order.ActorRestaurant, order.Preparing)
		require.NoError(t, err)

		require.NoError(t, handler.Handle(ctx, cmd))
		assert.Equal(t, order.Preparing, store.statusOf(current.ID()))

		require.Eventually(t, func() bool {
			stored, _ := store.Get(current.ID())
			return stored == authoritative
		}, time.Second, time.Millisecond)
		gateway.AssertExpectations(t)
	})

	t.Run("should restore the pre-update order on remote failure", func(t *testing.T) {
		ctx := t.Context()
		current := storedOrder(t)
		store := newFakeOrderStore(current)

		gateway := new(MockOrderGateway)
		gateway.On("AdvanceOrder", mock.Anything, current.ID(), order.ActorRestaurant, order.Preparing).
			Return(nil, errs.NewRemoteFailureError("advanceOrder", "order was already cancelled")).Once()

		handler := commands.NewAdvanceOrderCommandHandler(store, gateway, optimistic.NewController[*order.Order]())
		cmd, err := commands.NewAdvanceOrderCommand(current.ID(), order.ActorRestaurant, order.Preparing)
		require.NoError(t, err)

		require.NoError(t, handler.Handle(ctx, cmd))

		require.Eventually(t, func() bool {
			return store.failureOf(current.ID()) != nil
		}, time.Second, time.Millisecond)

		restored, _ := store.Get(current.ID())
		assert.Same(t, current, restored)
		assert.Equal(t, order.Pending, restored.Status())
	})

	t.Run("skipped states are rejected before any remote call", func(t *testing.T) {
		current := storedOrder(t)
		store := newFakeOrderStore(current)
		gateway := new(MockOrderGateway)

		handler := commands.NewAdvanceOrderCommandHandler(store, gateway, optimistic.NewController[*order.Order]())
		cmd, err := commands.NewAdvanceOrderCommand(current.ID(), order.ActorDriver, order.PickedUp)
		require.NoError(t, err)

		require.ErrorIs(t, handler.Handle(t.Context(), cmd), errs.ErrInvalidTransition)
		assert.Equal(t, order.Pending, store.statusOf(current.ID()))
		gateway.AssertNotCalled(t, "AdvanceOrder")
	})

	t.Run("edges outside the actor's capabilities are rejected locally", func(t *testing.T) {
		current := storedOrder(t)
		store := newFakeOrderStore(current)

		handler := commands.NewAdvanceOrderCommandHandler(
			store, new(MockOrderGateway), optimistic.NewController[*order.Order]())
		cmd, err := commands.NewAdvanceOrderCommand(current.ID(), order.ActorCustomer, order.Preparing)
		require.NoError(t, err)

		err = handler.Handle(t.Context(), cmd)
		require.ErrorIs(t, err, errs.ErrInvalidTransition)
		assert.Contains(t, err.Error(), "customer")
	})

	t.Run("unknown order is rejected", func(t *testing.T) {
		handler := commands.NewAdvanceOrderCommandHandler(
			newFakeOrderStore(), new(MockOrderGateway), optimistic.NewController[*order.Order]())
		cmd, err := commands.NewAdvanceOrderCommand(kernel.NewUUID(), order.ActorRestaurant, order.Preparing)
		require.NoError(t, err)

		require.ErrorIs(t, handler.Handle(t.Context(), cmd), errs.ErrObjectNotFound)
	})

	t.Run("queued advances both failing roll the store back to the original state", func(t *testing.T) {
		ctx := t.Context()
		current := storedOrder(t)
		store := newFakeOrderStore(current)
		controller := optimistic.NewController[*order.Order]()

		release := make(chan struct{})
		gateway := new(MockOrderGateway)
		gateway.On("AdvanceOrder", mock.Anything, current.ID(), order.ActorRestaurant, order.Preparing).
			Run(func(mock.Arguments) { <-release }).
			Return(nil, errs.NewRemoteFailureError("advanceOrder", "kitchen is offline")).Once()
		gateway.On("AdvanceOrder", mock.Anything, current.ID(), order.ActorRestaurant, order.Ready).
			Return(nil, errs.NewRemoteFailureError("advanceOrder", "kitchen is offline")).Once()

		handler := commands.NewAdvanceOrderCommandHandler(store, gateway, controller)

		first, err := commands.NewAdvanceOrderCommand(current.ID(), order.ActorRestaurant, order.Preparing)
		require.NoError(t, err)
		require.NoError(t, handler.Handle(ctx, first))
		require.Equal(t, order.Preparing, store.statusOf(current.ID()))

		second, err := commands.NewAdvanceOrderCommand(current.ID(), order.ActorRestaurant, order.Ready)
		require.NoError(t, err)
		require.NoError(t, handler.Handle(ctx, second))
		close(release)

		require.Eventually(t, func() bool {
			return !controller.InFlight(current.ID().String())
		}, time.Second, time.Millisecond)

		// The second revert must restore the state its predecessor left,
		// never the speculative state the first mutation rolled back.
		assert.Equal(t, order.Pending, store.statusOf(current.ID()))
		gateway.AssertExpectations(t)
	})
}

func TestCancelOrderCommandHandler_Handle(t *testing.T) {
	t.Run("customer cancellation is optimistic with rollback", func(t *testing.T) {
		ctx := t.Context()
		current := storedOrder(t)
		store := newFakeOrderStore(current)

		gateway := new(MockOrderGateway)
		gateway.On("CancelOrder", mock.Anything, current.ID(), order.ActorCustomer, "ordered by mistake").
			Return(nil, errs.NewRemoteFailureError("cancelOrder", "too late to cancel")).Once()

		handler := commands.NewCancelOrderCommandHandler(store, gateway, optimistic.NewController[*order.Order]())
		cmd, err := commands.NewCancelOrderCommand(current.ID(), order.ActorCustomer, "ordered by mistake")
		require.NoError(t, err)

		require.NoError(t, handler.Handle(ctx, cmd))
		assert.Equal(t, order.Cancelled, store.statusOf(current.ID()))

		require.Eventually(t, func() bool {
			return store.statusOf(current.ID()) == order.Pending
		}, time.Second, time.Millisecond)
		gateway.AssertExpectations(t)
	})

	t.Run("cancelling a picked up order is rejected locally", func(t *testing.T) {
		current := storedOrder(t)
		require.NoError(t, current.Advance(order.ActorRestaurant, order.Preparing, time.Now()))
		require.NoError(t, current.Advance(order.ActorRestaurant, order.Ready, time.Now()))
		require.NoError(t, current.Advance(order.ActorDriver, order.PickedUp, time.Now()))
		store := newFakeOrderStore(current)

		handler := commands.NewCancelOrderCommandHandler(
			store, new(MockOrderGateway), optimistic.NewController[*order.Order]())
		cmd, err := commands.NewCancelOrderCommand(current.ID(), order.ActorAdmin, "customer complaint")
		require.NoError(t, err)

		require.ErrorIs(t, handler.Handle(t.Context(), cmd), errs.ErrInvalidTransition)
	})

	t.Run("empty reason never constructs", func(t *testing.T) {
		_, err := commands.NewCancelOrderCommand(kernel.NewUUID(), order.ActorCustomer, "")
		require.ErrorIs(t, err, commands.ErrReasonIsRequired)
	})

	t.Run("cancel queued behind a failed advance reverts to the reconciled state", func(t *testing.T) {
		ctx := t.Context()
		current := storedOrder(t)
		store := newFakeOrderStore(current)
		controller := optimistic.NewController[*order.Order]()

		release := make(chan struct{})
		gateway := new(MockOrderGateway)
		gateway.On("AdvanceOrder", mock.Anything, current.ID(), order.ActorRestaurant, order.Preparing).
			Run(func(mock.Arguments) { <-release }).
			Return(nil, errs.NewRemoteFailureError("advanceOrder", "kitchen is offline")).Once()
		gateway.On("CancelOrder", mock.Anything, current.ID(), order.ActorCustomer, "changed my mind").
			Return(nil, errs.NewRemoteFailureError("cancelOrder", "too late to cancel")).Once()

		advanceHandler := commands.NewAdvanceOrderCommandHandler(store, gateway, controller)
		cancelHandler := commands.NewCancelOrderCommandHandler(store, gateway, controller)

		advance, err := commands.NewAdvanceOrderCommand(current.ID(), order.ActorRestaurant, order.Preparing)
		require.NoError(t, err)
		require.NoError(t, advanceHandler.Handle(ctx, advance))

		cancel, err := commands.NewCancelOrderCommand(current.ID(), order.ActorCustomer, "changed my mind")
		require.NoError(t, err)
		require.NoError(t, cancelHandler.Handle(ctx, cancel))
		close(release)

		require.Eventually(t, func() bool {
			return !controller.InFlight(current.ID().String())
		}, time.Second, time.Millisecond)

		assert.Equal(t, order.Pending, store.statusOf(current.ID()))
		gateway.AssertExpectations(t)
	})
}
