package commands_test

import (
	"context"
	"testing"
	"time"

	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/domain/model/cart"
	"orderflow/internal/core/domain/model/checkout"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/ports"
	"orderflow/internal/pkg/errs"
	"orderflow/internal/pkg/optimistic"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderGateway struct{ mock.Mock }

func (m *MockOrderGateway) CreateOrder(ctx context.Context, draft *order.Order) (*order.Order, error) {
	args := m.Called(ctx, draft)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderGateway) ListOrders(
	ctx context.Context,
	customerID kernel.UUID,
	filter ports.OrderFilter,
) (ports.Page[*order.Order], error) {
	args := m.Called(ctx, customerID, filter)
	return args.Get(0).(ports.Page[*order.Order]), args.Error(1)
}

func (m *MockOrderGateway) GetOrder(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderGateway) AdvanceOrder(
	ctx context.Context,
	id kernel.UUID,
	actor order.Actor,
	to order.Status,
) (*order.Order, error) {
	args := m.Called(ctx, id, actor, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderGateway) CancelOrder(
	ctx context.Context,
	id kernel.UUID,
	actor order.Actor,
	reason string,
) (*order.Order, error) {
	args := m.Called(ctx, id, actor, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderGateway) AssignDriver(ctx context.Context, id, driverID kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id, driverID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func confirmedCheckoutSession(t *testing.T) *checkout.Session {
	t.Helper()
	session := checkout.NewSession(true)
	require.NoError(t, session.ConfirmAddress("Jl. Sudirman 12", "3", "3B"))
	require.NoError(t, session.ConfirmPayment("cash"))
	return session
}

func checkoutCommand(
	t *testing.T,
	session *checkout.Session,
	groups []cart.Group,
) commands.SubmitCheckoutCommand {
	t.Helper()
	cmd, err := commands.NewSubmitCheckoutCommand(
		kernel.NewUUID(), kernel.NewUUID(), groups[0].Origin().ID(),
		10000, 2000, groups, session,
	)
	require.NoError(t, err)
	return cmd
}

func TestSubmitCheckoutCommandHandler_Handle(t *testing.T) {
	t.Run("double submit fires exactly one order creation call", func(t *testing.T) {
		ctx := t.Context()
		groups := cart.Aggregate(testCartItems(t))
		session := confirmedCheckoutSession(t)
		cmd := checkoutCommand(t, session, groups)

		gate := make(chan struct{})
		created := 0
		orders := new(MockOrderGateway)
		orders.On("CreateOrder", mock.Anything, mock.AnythingOfType("*order.Order")).
			Run(func(args mock.Arguments) {
				created++
				<-gate
			}).
			Return(nil, errs.NewRemoteFailureError("createOrder", "restaurant is closed"))

		carts := new(MockCartGateway)
		handler := commands.NewSubmitCheckoutCommandHandler(orders, carts, optimistic.NewController[*order.Order]())

		require.NoError(t, handler.Handle(ctx, cmd))
		require.NoError(t, handler.Handle(ctx, cmd))
		close(gate)

		require.Eventually(t, func() bool {
			return session.Step() == checkout.StepConfirmation
		}, time.Second, time.Millisecond)
		assert.Equal(t, 1, created)
		assert.Equal(t, "restaurant is closed", session.InlineError())
	})

	t.Run("success completes the session and clears the cart", func(t *testing.T) {
		ctx := t.Context()
		groups := cart.Aggregate(testCartItems(t))
		session := confirmedCheckoutSession(t)
		cmd := checkoutCommand(t, session, groups)

		orders := new(MockOrderGateway)
		orders.On("CreateOrder", mock.Anything, mock.AnythingOfType("*order.Order")).
			Return(authoritativeOrder(t, cmd), nil).Once()

		carts := new(MockCartGateway)
		carts.On("Clear", mock.Anything, cmd.CustomerID()).Return(nil).Once()

		handler := commands.NewSubmitCheckoutCommandHandler(orders, carts, optimistic.NewController[*order.Order]())
		require.NoError(t, handler.Handle(ctx, cmd))

		require.Eventually(t, func() bool {
			return session.Step() == checkout.StepSuccess
		}, time.Second, time.Millisecond)
		orders.AssertExpectations(t)
		carts.AssertExpectations(t)
	})

	t.Run("draft is built from the origin's cart group", func(t *testing.T) {
		ctx := t.Context()
		items := testCartItems(t)
		groups := cart.Aggregate(items)
		session := confirmedCheckoutSession(t)
		cmd := checkoutCommand(t, session, groups)

		orders := new(MockOrderGateway)
		orders.On("CreateOrder", mock.Anything, mock.MatchedBy(func(draft *order.Order) bool {
			return draft.Charges().Subtotal() == groups[0].Subtotal() &&
				draft.Charges().Total() == groups[0].Subtotal()+12000 &&
				len(draft.Items()) == 1 &&
				draft.Status() == order.Pending
		})).Return(authoritativeOrder(t, cmd), nil).Once()

		carts := new(MockCartGateway)
		carts.On("Clear", mock.Anything, cmd.CustomerID()).Return(nil).Once()

		handler := commands.NewSubmitCheckoutCommandHandler(orders, carts, optimistic.NewController[*order.Order]())
		require.NoError(t, handler.Handle(ctx, cmd))

		require.Eventually(t, func() bool {
			return session.Step() == checkout.StepSuccess
		}, time.Second, time.Millisecond)
		orders.AssertExpectations(t)
	})

	t.Run("cart clear survives cancellation of the caller's context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		groups := cart.Aggregate(testCartItems(t))
		session := confirmedCheckoutSession(t)
		cmd := checkoutCommand(t, session, groups)

		orders := new(MockOrderGateway)
		orders.On("CreateOrder", mock.Anything, mock.AnythingOfType("*order.Order")).
			Run(func(mock.Arguments) { cancel() }).
			Return(authoritativeOrder(t, cmd), nil).Once()

		carts := new(MockCartGateway)
		carts.On("Clear", mock.MatchedBy(func(ctx context.Context) bool {
			return ctx.Err() == nil
		}), cmd.CustomerID()).Return(nil).Once()

		handler := commands.NewSubmitCheckoutCommandHandler(orders, carts, optimistic.NewController[*order.Order]())
		require.NoError(t, handler.Handle(ctx, cmd))

		require.Eventually(t, func() bool {
			return session.Step() == checkout.StepSuccess
		}, time.Second, time.Millisecond)
		carts.AssertExpectations(t)
	})

	t.Run("submitting before confirmation is rejected", func(t *testing.T) {
		groups := cart.Aggregate(testCartItems(t))
		session := checkout.NewSession(true)
		cmd := checkoutCommand(t, session, groups)

		handler := commands.NewSubmitCheckoutCommandHandler(
			new(MockOrderGateway), new(MockCartGateway), optimistic.NewController[*order.Order]())

		require.ErrorIs(t, handler.Handle(t.Context(), cmd), errs.ErrValueIsInvalid)
	})
}

func authoritativeOrder(t *testing.T, cmd commands.SubmitCheckoutCommand) *order.Order {
	t.Helper()
	item, err := order.NewItemSnapshot(kernel.NewUUID(), "Nasi Goreng", 35000, 2)
	require.NoError(t, err)
	charges, err := order.NewCharges(70000, 10000, 2000)
	require.NoError(t, err)
	address, err := order.NewAddress("Jl. Sudirman 12", "3", "3B")
	require.NoError(t, err)

	o, err := order.NewOrder(
		cmd.OrderID(), cmd.OriginID(), cmd.CustomerID(),
		[]order.ItemSnapshot{item}, charges, address, time.Now(),
	)
	require.NoError(t, err)
	return o
}
