package checkout

import (
	"errors"
	"fmt"
	"sync"

	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/errs"
)

var (
	// ErrSessionIsNotConstructed is returned when a Session was not created
	// through the NewSession constructor.
	ErrSessionIsNotConstructed = errors.New("Session must be created via NewSession constructor")

	// ErrNavigationIsLocked is returned when back-navigation is requested
	// while a submission is in flight or after the flow completed.
	ErrNavigationIsLocked = errors.New("navigation is locked during and after submission")
)

// Step is a stage of the checkout flow. Steps are strictly ordered; the
// session never skips forward past a failed gate and never moves backward
// past a completed remote call.
type Step int

const (
	// StepUnknown represents an invalid or undefined step.
	StepUnknown Step = iota

	// StepAddressEntry collects the delivery address.
	StepAddressEntry

	// StepPaymentSelection collects the payment or receipt method.
	StepPaymentSelection

	// StepConfirmation recaps the order before the one remote call.
	StepConfirmation

	// StepProcessing covers the in-flight order-creation call.
	StepProcessing

	// StepSuccess is the terminal happy step. The cart is cleared on entry.
	StepSuccess
)

func getStepStrings() map[Step]string {
	return map[Step]string{
		StepUnknown:          "unknown",
		StepAddressEntry:     "address_entry",
		StepPaymentSelection: "payment_selection",
		StepConfirmation:     "confirmation",
		StepProcessing:       "processing",
		StepSuccess:          "success",
	}
}

// String returns the wire name of the step.
func (s Step) String() string {
	if str, ok := getStepStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// Session is the ephemeral state of one checkout flow. It lives only while
// the flow is open, is never persisted, and performs no remote calls itself.
// The only side-effecting step is confirmation -> processing, which the
// caller pairs with the order-creation call; every earlier transition is a
// purely local form-state change.
//
// The submission outcome arrives from the remote reconciliation goroutine,
// so all state is guarded by a mutex.
type Session struct {
	mu sync.Mutex

	step            Step
	address         order.Address
	hasAddress      bool
	paymentMethod   string
	paymentRequired bool
	inlineError     string

	isConstructed bool
}

// NewSession opens a checkout flow at the address step. paymentRequired
// controls whether the payment step may be passed without a selected method;
// some deployments collect payment on delivery and keep the step optional.
func NewSession(paymentRequired bool) *Session {
	return &Session{
		step:            StepAddressEntry,
		paymentRequired: paymentRequired,
		isConstructed:   true,
	}
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

// InlineError returns the message to render next to the submit control,
// or empty when there is none.
func (s *Session) InlineError() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inlineError
}

// Address returns the accumulated delivery address and whether one was
// entered yet.
func (s *Session) Address() (order.Address, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.address, s.hasAddress
}

// PaymentMethod returns the selected payment method, or empty.
func (s *Session) PaymentMethod() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.paymentMethod
}

// InFlight reports whether the terminal remote call is currently running.
func (s *Session) InFlight() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.step == StepProcessing
}

func (s *Session) requireStep(want Step) error {
	if s.step != want {
		return errs.NewValueIsInvalidErrorWithCause("step",
			fmt.Errorf("expected %s, session is at %s", want, s.step))
	}
	return nil
}

// ConfirmAddress validates and stores the delivery address, then advances to
// payment selection. Floor and door are optional; a validation failure keeps
// the session on the address step.
func (s *Session) ConfirmAddress(street, floor, door string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireStep(StepAddressEntry); err != nil {
		return err
	}

	address, err := order.NewAddress(street, floor, door)
	if err != nil {
		return err
	}

	s.address = address
	s.hasAddress = true
	s.step = StepPaymentSelection
	return nil
}

// ConfirmPayment stores the chosen payment method and advances to
// confirmation. An empty method passes only when the session was opened with
// payment optional.
func (s *Session) ConfirmPayment(method string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireStep(StepPaymentSelection); err != nil {
		return err
	}
	if method == "" && s.paymentRequired {
		return errs.NewValueIsRequiredError("payment method")
	}

	s.paymentMethod = method
	s.step = StepConfirmation
	return nil
}

// Back moves one step backward. It is refused while processing and after
// success, since at that point the remote call already started or finished.
func (s *Session) Back() error {
	if err := s.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.step {
	case StepPaymentSelection:
		s.step = StepAddressEntry
	case StepConfirmation:
		s.step = StepPaymentSelection
	default:
		return ErrNavigationIsLocked
	}
	s.inlineError = ""
	return nil
}

// BeginSubmit moves confirmation -> processing and reports whether the caller
// should fire the remote order-creation call. A second submit while already
// processing is a no-op returning false, so rapid double-clicks produce
// exactly one remote call.
func (s *Session) BeginSubmit() (bool, error) {
	if err := s.Validate(); err != nil {
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.step == StepProcessing {
		return false, nil
	}
	if err := s.requireStep(StepConfirmation); err != nil {
		return false, err
	}

	s.inlineError = ""
	s.step = StepProcessing
	return true, nil
}

// CompleteSubmit moves processing -> success after the remote call succeeded.
// Clearing the cart is the caller's pairing action.
func (s *Session) CompleteSubmit() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireStep(StepProcessing); err != nil {
		return err
	}
	s.step = StepSuccess
	return nil
}

// FailSubmit returns the session to confirmation with an inline error after
// the remote call failed. The accumulated form state is kept so the user can
// retry without re-entering anything.
func (s *Session) FailSubmit(cause error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireStep(StepProcessing); err != nil {
		return err
	}
	s.inlineError = errs.UserMessage(cause)
	s.step = StepConfirmation
	return nil
}

// Reset clears the whole session back to a fresh address step. Used when the
// flow is closed before submission; nothing is kept as a draft.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.step = StepAddressEntry
	s.address = order.Address{}
	s.hasAddress = false
	s.paymentMethod = ""
	s.inlineError = ""
}
