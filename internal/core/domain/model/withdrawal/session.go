package withdrawal

import (
	"errors"
	"fmt"
	"sync"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/payout"
	"orderflow/internal/pkg/errs"
)

// MinWithdrawalAmount is the smallest withdrawal a driver may request,
// in minor currency units. Refunds are not subject to it since their amount
// comes from the refunded order, not from user input.
const MinWithdrawalAmount kernel.Money = 10000

var (
	// ErrSessionIsNotConstructed is returned when a Session was not created
	// through one of the constructors.
	ErrSessionIsNotConstructed = errors.New("Session must be created via NewWithdrawalSession or NewRefundSession")

	// ErrNavigationIsLocked is returned when back-navigation is requested
	// while the submission is in flight or after the flow completed.
	ErrNavigationIsLocked = errors.New("navigation is locked during and after submission")
)

// Step is a stage of the money-out flow. Processing has no step of its own:
// submission keeps the session on confirmation with the in-flight flag set,
// which is what disables the submit control.
type Step int

const (
	// StepUnknown represents an invalid or undefined step.
	StepUnknown Step = iota

	// StepAmountEntry collects the amount (withdrawals) or shows the order
	// context (refunds).
	StepAmountEntry

	// StepBankDetails collects the destination bank account.
	StepBankDetails

	// StepConfirmation recaps amount and destination before the remote call.
	StepConfirmation

	// StepSuccess is the terminal happy step, showing the masked account.
	StepSuccess
)

func getStepStrings() map[Step]string {
	return map[Step]string{
		StepUnknown:      "unknown",
		StepAmountEntry:  "amount_entry",
		StepBankDetails:  "bank_details",
		StepConfirmation: "confirmation",
		StepSuccess:      "success",
	}
}

// String returns the wire name of the step.
func (s Step) String() string {
	if str, ok := getStepStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// Session is the ephemeral state of one withdrawal or refund flow. The two
// flows share the shape; they differ only in how the amount step is passed.
// Never persisted, no remote calls of its own. The submission outcome arrives
// from the remote reconciliation goroutine, so all state is guarded by a
// mutex.
type Session struct {
	mu sync.Mutex

	step             Step
	kind             payout.Kind
	availableBalance kernel.Money
	amount           kernel.Money
	orderID          *kernel.UUID
	account          payout.BankAccount
	hasAccount       bool
	inlineError      string
	inFlight         bool

	isConstructed bool
}

// NewWithdrawalSession opens a driver payout flow against the given available
// balance. The balance is captured at open time; the remote authority
// re-checks it on submission.
func NewWithdrawalSession(availableBalance kernel.Money) *Session {
	return &Session{
		step:             StepAmountEntry,
		kind:             payout.KindWithdrawal,
		availableBalance: availableBalance,
		isConstructed:    true,
	}
}

// NewRefundSession opens a customer refund flow for an order. The amount is
// fixed by the order's charges, so the first step only presents context.
func NewRefundSession(orderID kernel.UUID, amount kernel.Money) (*Session, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}
	if !amount.IsPositive() {
		return nil, errs.NewValueIsInvalidErrorWithCause("amount",
			fmt.Errorf("%d is not positive", amount))
	}
	return &Session{
		step:          StepAmountEntry,
		kind:          payout.KindRefund,
		amount:        amount,
		orderID:       &orderID,
		isConstructed: true,
	}, nil
}

// Validate ensures the Session instance was properly constructed.
func (s *Session) Validate() error {
	if s == nil || !s.isConstructed {
		return ErrSessionIsNotConstructed
	}
	return nil
}

// Step returns the current step.
func (s *Session) Step() Step {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.step
}

// Kind returns whether this flow files a withdrawal or a refund.
func (s *Session) Kind() payout.Kind { return s.kind }

// Amount returns the amount accumulated so far.
func (s *Session) Amount() kernel.Money {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.amount
}

// OrderID returns the refunded order's id, or nil for withdrawals.
func (s *Session) OrderID() *kernel.UUID { return s.orderID }

// BankAccount returns the entered destination and whether one was entered.
func (s *Session) BankAccount() (payout.BankAccount, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.account, s.hasAccount
}

// InlineError returns the message to render next to the submit control.
func (s *Session) InlineError() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inlineError
}

// InFlight reports whether the remote call is currently running.
func (s *Session) InFlight() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inFlight
}

// MaskedAccount returns the masked destination account number for the
// success step, or empty before bank details were entered.
func (s *Session) MaskedAccount() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.hasAccount {
		return ""
	}
	return s.account.Masked()
}

func (s *Session) requireStep(want Step) error {
	if s.step != want {
		return errs.NewValueIsInvalidErrorWithCause("step",
			fmt.Errorf("expected %s, session is at %s", want, s.step))
	}
	return nil
}

// EnterAmount parses and validates a withdrawal amount from raw input.
// Display formatting with thousands separators is stripped before parsing.
// Amounts below the minimum or above the available balance block advancement
// with a field-level error; no remote call is involved.
func (s *Session) EnterAmount(raw string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireStep(StepAmountEntry); err != nil {
		return err
	}
	if s.kind != payout.KindWithdrawal {
		return errs.NewValueIsInvalidErrorWithCause("amount",
			errors.New("refund amounts are fixed by the order and cannot be entered"))
	}

	amount, err := kernel.ParseMoney(raw)
	if err != nil {
		return err
	}
	if amount < MinWithdrawalAmount || amount > s.availableBalance {
		return errs.NewValueIsOutOfRangeError("amount",
			int64(amount), int64(MinWithdrawalAmount), int64(s.availableBalance))
	}

	s.amount = amount
	s.step = StepBankDetails
	return nil
}

// ConfirmContext acknowledges the refund context and advances to bank
// details. Withdrawals enter an amount instead.
func (s *Session) ConfirmContext() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireStep(StepAmountEntry); err != nil {
		return err
	}
	if s.kind != payout.KindRefund {
		return errs.NewValueIsRequiredError("amount")
	}
	s.step = StepBankDetails
	return nil
}

// ConfirmBankDetails validates and stores the destination account, then
// advances to confirmation. Validation failures keep the session on the bank
// details step.
func (s *Session) ConfirmBankDetails(bankID, accountNumber, holderName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireStep(StepBankDetails); err != nil {
		return err
	}

	account, err := payout.NewBankAccount(bankID, accountNumber, holderName)
	if err != nil {
		return err
	}

	s.account = account
	s.hasAccount = true
	s.step = StepConfirmation
	return nil
}

// Back moves one step backward. Refused while the submission is in flight
// and after success.
func (s *Session) Back() error {
	if err := s.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inFlight {
		return ErrNavigationIsLocked
	}

	switch s.step {
	case StepBankDetails:
		s.step = StepAmountEntry
	case StepConfirmation:
		s.step = StepBankDetails
	default:
		return ErrNavigationIsLocked
	}
	s.inlineError = ""
	return nil
}

// BeginSubmit flips the in-flight flag and reports whether the caller should
// fire the remote call. A second submit while in flight is a no-op returning
// false.
func (s *Session) BeginSubmit() (bool, error) {
	if err := s.Validate(); err != nil {
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inFlight {
		return false, nil
	}
	if err := s.requireStep(StepConfirmation); err != nil {
		return false, err
	}

	s.inlineError = ""
	s.inFlight = true
	return true, nil
}

// CompleteSubmit advances to success after the remote call succeeded.
func (s *Session) CompleteSubmit() error {
	if err := s.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.inFlight {
		return errs.NewValueIsInvalidErrorWithCause("step",
			errors.New("no submission is in flight"))
	}
	s.inFlight = false
	s.step = StepSuccess
	return nil
}

// FailSubmit keeps the session on confirmation with an inline error after
// the remote call failed. Form state is kept for retry; nothing resets.
func (s *Session) FailSubmit(cause error) error {
	if err := s.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.inFlight {
		return errs.NewValueIsInvalidErrorWithCause("step",
			errors.New("no submission is in flight"))
	}
	s.inFlight = false
	s.inlineError = errs.UserMessage(cause)
	return nil
}

// Reset clears the whole session back to a fresh first step, keeping only
// what came from outside the form: the kind, the available balance and the
// refund context. Called when the wizard closes; no draft survives.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.step = StepAmountEntry
	s.account = payout.BankAccount{}
	s.hasAccount = false
	s.inlineError = ""
	s.inFlight = false
	if s.kind != payout.KindRefund {
		s.amount = 0
	}
}
