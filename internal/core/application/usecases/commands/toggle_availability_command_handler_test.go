package commands_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"
	"orderflow/internal/pkg/optimistic"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockMenuGateway struct{ mock.Mock }

func (m *MockMenuGateway) SetAvailability(
	ctx context.Context, itemID kernel.UUID, available bool,
) (bool, error) {
	args := m.Called(ctx, itemID, available)
	return args.Bool(0), args.Error(1)
}

type fakeAvailabilityStore struct {
	mu       sync.Mutex
	flags    map[string]bool
	failures map[string]error
}

func newFakeAvailabilityStore() *fakeAvailabilityStore {
	return &fakeAvailabilityStore{
		flags:    make(map[string]bool),
		failures: make(map[string]error),
	}
}

func (s *fakeAvailabilityStore) Get(itemID kernel.UUID) (bool, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	available, known := s.flags[itemID.String()]
	return available, known
}

func (s *fakeAvailabilityStore) Set(itemID kernel.UUID, available bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.flags[itemID.String()] = available
}

func (s *fakeAvailabilityStore) ReportFailure(itemID kernel.UUID, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[itemID.String()] = err
}

func (s *fakeAvailabilityStore) failureOf(itemID kernel.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.failures[itemID.String()]
}

func TestToggleAvailabilityCommandHandler_Handle(t *testing.T) {
	t.Run("should flip immediately and keep the authoritative flag", func(t *testing.T) {
		ctx := t.Context()
		itemID := kernel.NewUUID()
		store := newFakeAvailabilityStore()
		store.Set(itemID, true)

		gateway := new(MockMenuGateway)
		gateway.On("SetAvailability", mock.Anything, itemID, false).
			Return(false, nil).Once()

		handler := commands.NewToggleAvailabilityCommandHandler(store, gateway, optimistic.NewController[bool]())
		cmd, err := commands.NewToggleAvailabilityCommand(itemID, false)
		require.NoError(t, err)

		require.NoError(t, handler.Handle(ctx, cmd))
		available, _ := store.Get(itemID)
		assert.False(t, available)

		require.Eventually(t, func() bool {
			available, known := store.Get(itemID)
			return known && !available
		}, time.Second, time.Millisecond)
		gateway.AssertExpectations(t)
	})

	t.Run("should restore the pre-toggle flag on remote failure", func(t *testing.T) {
		ctx := t.Context()
		itemID := kernel.NewUUID()
		store := newFakeAvailabilityStore()
		store.Set(itemID, true)

		gateway := new(MockMenuGateway)
		gateway.On("SetAvailability", mock.Anything, itemID, false).
			Return(false, errs.NewRemoteFailureError("setAvailability", "menu service is down")).Once()

		handler := commands.NewToggleAvailabilityCommandHandler(store, gateway, optimistic.NewController[bool]())
		cmd, err := commands.NewToggleAvailabilityCommand(itemID, false)
		require.NoError(t, err)

		require.NoError(t, handler.Handle(ctx, cmd))

		require.Eventually(t, func() bool {
			return store.failureOf(itemID) != nil
		}, time.Second, time.Millisecond)

		available, _ := store.Get(itemID)
		assert.True(t, available)
	})

	t.Run("a store already at the commanded value stays put on failure", func(t *testing.T) {
		ctx := t.Context()
		itemID := kernel.NewUUID()
		store := newFakeAvailabilityStore()
		store.Set(itemID, true)

		gateway := new(MockMenuGateway)
		gateway.On("SetAvailability", mock.Anything, itemID, true).
			Return(false, errs.NewRemoteFailureError("setAvailability", "menu service is down")).Once()

		handler := commands.NewToggleAvailabilityCommandHandler(store, gateway, optimistic.NewController[bool]())
		cmd, err := commands.NewToggleAvailabilityCommand(itemID, true)
		require.NoError(t, err)

		require.NoError(t, handler.Handle(ctx, cmd))

		require.Eventually(t, func() bool {
			return store.failureOf(itemID) != nil
		}, time.Second, time.Millisecond)

		// The rollback must restore what the store held, not negate the
		// command.
		available, _ := store.Get(itemID)
		assert.True(t, available)
	})

	t.Run("an item the store never saw rolls back to the opposite flag", func(t *testing.T) {
		ctx := t.Context()
		itemID := kernel.NewUUID()
		store := newFakeAvailabilityStore()

		gateway := new(MockMenuGateway)
		gateway.On("SetAvailability", mock.Anything, itemID, false).
			Return(false, errs.NewRemoteFailureError("setAvailability", "menu service is down")).Once()

		handler := commands.NewToggleAvailabilityCommandHandler(store, gateway, optimistic.NewController[bool]())
		cmd, err := commands.NewToggleAvailabilityCommand(itemID, false)
		require.NoError(t, err)

		require.NoError(t, handler.Handle(ctx, cmd))

		require.Eventually(t, func() bool {
			return store.failureOf(itemID) != nil
		}, time.Second, time.Millisecond)

		available, known := store.Get(itemID)
		assert.True(t, known)
		assert.True(t, available)
	})

	t.Run("zero-value command is rejected", func(t *testing.T) {
		handler := commands.NewToggleAvailabilityCommandHandler(
			newFakeAvailabilityStore(), new(MockMenuGateway), optimistic.NewController[bool]())

		err := handler.Handle(t.Context(), commands.ToggleAvailabilityCommand{})
		require.ErrorIs(t, err, commands.ErrToggleAvailabilityCommandIsNotConstructed)
	})
}
