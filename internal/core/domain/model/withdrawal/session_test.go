package withdrawal_test

import (
	"errors"
	"testing"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/payout"
	"orderflow/internal/core/domain/model/withdrawal"
	"orderflow/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withdrawalAtConfirmation(t *testing.T) *withdrawal.Session {
	t.Helper()
	s := withdrawal.NewWithdrawalSession(100000)
	require.NoError(t, s.EnterAmount("50,000"))
	require.NoError(t, s.ConfirmBankDetails("bca", "1234567890", "Budi Santoso"))
	return s
}

func TestSession_EnterAmount(t *testing.T) {
	t.Run("amount above balance blocks advancement", func(t *testing.T) {
		s := withdrawal.NewWithdrawalSession(100000)

		err := s.EnterAmount("150,000")

		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
		assert.Equal(t, withdrawal.StepAmountEntry, s.Step())
	})

	t.Run("amount within bounds advances", func(t *testing.T) {
		s := withdrawal.NewWithdrawalSession(100000)

		require.NoError(t, s.EnterAmount("50,000"))

		assert.Equal(t, withdrawal.StepBankDetails, s.Step())
		assert.Equal(t, kernel.Money(50000), s.Amount())
	})

	t.Run("amount below the minimum blocks advancement", func(t *testing.T) {
		s := withdrawal.NewWithdrawalSession(100000)
		require.ErrorIs(t, s.EnterAmount("5,000"), errs.ErrValueIsOutOfRange)
	})

	t.Run("malformed input blocks advancement", func(t *testing.T) {
		s := withdrawal.NewWithdrawalSession(100000)
		require.ErrorIs(t, s.EnterAmount("fifty"), errs.ErrValueIsInvalid)
	})
}

func TestSession_RefundFlow(t *testing.T) {
	t.Run("refund skips amount entry via context confirmation", func(t *testing.T) {
		s, err := withdrawal.NewRefundSession(kernel.NewUUID(), 67000)
		require.NoError(t, err)

		assert.Equal(t, payout.KindRefund, s.Kind())
		assert.Equal(t, kernel.Money(67000), s.Amount())
		require.NotNil(t, s.OrderID())

		require.ErrorIs(t, s.EnterAmount("50,000"), errs.ErrValueIsInvalid)

		require.NoError(t, s.ConfirmContext())
		assert.Equal(t, withdrawal.StepBankDetails, s.Step())
	})

	t.Run("refund amount is not gated by the withdrawal minimum", func(t *testing.T) {
		s, err := withdrawal.NewRefundSession(kernel.NewUUID(), 5000)
		require.NoError(t, err)
		require.NoError(t, s.ConfirmContext())
	})

	t.Run("withdrawal cannot confirm context", func(t *testing.T) {
		s := withdrawal.NewWithdrawalSession(100000)
		require.ErrorIs(t, s.ConfirmContext(), errs.ErrValueIsRequired)
	})
}

func TestSession_ConfirmBankDetails(t *testing.T) {
	t.Run("should store normalized account and advance", func(t *testing.T) {
		s := withdrawal.NewWithdrawalSession(100000)
		require.NoError(t, s.EnterAmount("50,000"))

		require.NoError(t, s.ConfirmBankDetails("bca", "12-3456-7890", "Budi Santoso"))

		assert.Equal(t, withdrawal.StepConfirmation, s.Step())
		account, ok := s.BankAccount()
		require.True(t, ok)
		assert.Equal(t, "1234567890", account.AccountNumber())
	})

	t.Run("invalid details keep the session on bank details", func(t *testing.T) {
		s := withdrawal.NewWithdrawalSession(100000)
		require.NoError(t, s.EnterAmount("50,000"))

		require.ErrorIs(t, s.ConfirmBankDetails("", "1234567890", "Budi"), errs.ErrValueIsRequired)
		assert.Equal(t, withdrawal.StepBankDetails, s.Step())
	})
}

func TestSession_Submit(t *testing.T) {
	t.Run("double submit fires exactly one remote call", func(t *testing.T) {
		s := withdrawalAtConfirmation(t)
		remoteCalls := 0

		for range 2 {
			fire, err := s.BeginSubmit()
			require.NoError(t, err)
			if fire {
				remoteCalls++
			}
		}

		assert.Equal(t, 1, remoteCalls)
		assert.True(t, s.InFlight())
		assert.Equal(t, withdrawal.StepConfirmation, s.Step())
	})

	t.Run("failure stays on confirmation with an inline error", func(t *testing.T) {
		s := withdrawalAtConfirmation(t)
		_, err := s.BeginSubmit()
		require.NoError(t, err)

		require.NoError(t, s.FailSubmit(errs.NewRemoteFailureError("createRequest", "insufficient balance")))

		assert.Equal(t, withdrawal.StepConfirmation, s.Step())
		assert.Equal(t, "insufficient balance", s.InlineError())
		assert.False(t, s.InFlight())

		account, ok := s.BankAccount()
		require.True(t, ok)
		assert.Equal(t, "Budi Santoso", account.HolderName())
	})

	t.Run("success shows the masked account", func(t *testing.T) {
		s := withdrawalAtConfirmation(t)
		_, err := s.BeginSubmit()
		require.NoError(t, err)

		require.NoError(t, s.CompleteSubmit())

		assert.Equal(t, withdrawal.StepSuccess, s.Step())
		assert.Equal(t, "12********", s.MaskedAccount())
	})

	t.Run("transport failure falls back to the generic message", func(t *testing.T) {
		s := withdrawalAtConfirmation(t)
		_, err := s.BeginSubmit()
		require.NoError(t, err)

		require.NoError(t, s.FailSubmit(errors.New("dial tcp: timeout")))
		assert.Equal(t, errs.GenericRemoteFailureMessage, s.InlineError())
	})
}

func TestSession_Back(t *testing.T) {
	t.Run("should walk backward through form steps", func(t *testing.T) {
		s := withdrawalAtConfirmation(t)

		require.NoError(t, s.Back())
		assert.Equal(t, withdrawal.StepBankDetails, s.Step())

		require.NoError(t, s.Back())
		assert.Equal(t, withdrawal.StepAmountEntry, s.Step())

		require.ErrorIs(t, s.Back(), withdrawal.ErrNavigationIsLocked)
	})

	t.Run("should lock while in flight", func(t *testing.T) {
		s := withdrawalAtConfirmation(t)
		_, err := s.BeginSubmit()
		require.NoError(t, err)

		require.ErrorIs(t, s.Back(), withdrawal.ErrNavigationIsLocked)
	})
}

func TestSession_Reset(t *testing.T) {
	t.Run("withdrawal reset drops amount and account", func(t *testing.T) {
		s := withdrawalAtConfirmation(t)

		s.Reset()

		assert.Equal(t, withdrawal.StepAmountEntry, s.Step())
		assert.Equal(t, kernel.Money(0), s.Amount())
		_, ok := s.BankAccount()
		assert.False(t, ok)
		assert.Empty(t, s.MaskedAccount())
	})

	t.Run("refund reset keeps the order context", func(t *testing.T) {
		orderID := kernel.NewUUID()
		s, err := withdrawal.NewRefundSession(orderID, 67000)
		require.NoError(t, err)
		require.NoError(t, s.ConfirmContext())

		s.Reset()

		assert.Equal(t, withdrawal.StepAmountEntry, s.Step())
		assert.Equal(t, kernel.Money(67000), s.Amount())
		require.NotNil(t, s.OrderID())
		assert.True(t, s.OrderID().IsEqual(orderID))
	})
}
