package payout

import (
	"errors"
	"fmt"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"
)

var (
	// ErrRequestIsNotConstructed is returned when a Request was not created
	// through NewRequest or RestoreRequest.
	ErrRequestIsNotConstructed = errors.New("Request must be created via NewRequest or RestoreRequest")

	// ErrRequestIsTerminal is returned when mutating a request that already
	// reached a terminal status. Terminal requests are immutable.
	ErrRequestIsTerminal = errors.New("request is in a terminal status")
)

// Kind distinguishes the two money-out flows sharing this aggregate.
type Kind int

const (
	// KindUnknown represents an invalid or undefined kind.
	KindUnknown Kind = iota

	// KindWithdrawal is a driver payout of accumulated earnings.
	KindWithdrawal

	// KindRefund is a customer refund-to-bank for a delivered or picked-up
	// order that could no longer be cancelled.
	KindRefund
)

func getKindStrings() map[Kind]string {
	return map[Kind]string{
		KindUnknown:    "unknown",
		KindWithdrawal: "withdrawal",
		KindRefund:     "refund",
	}
}

// KindFromString parses the wire representation of a kind.
func KindFromString(s string) (Kind, error) {
	for kind, str := range getKindStrings() {
		if kind != KindUnknown && str == s {
			return kind, nil
		}
	}
	return KindUnknown, errs.NewValueIsInvalidErrorWithCause("kind",
		fmt.Errorf("%q is not a valid request kind", s))
}

// Validate checks if the Kind value is valid.
func (k Kind) Validate() error {
	if k != KindWithdrawal && k != KindRefund {
		return errs.NewValueIsInvalidErrorWithCause("kind",
			fmt.Errorf("%d is not a valid request kind", k))
	}
	return nil
}

// String returns the wire name of the kind.
func (k Kind) String() string {
	if str, ok := getKindStrings()[k]; ok {
		return str
	}
	return "unknown"
}

// Status is the lifecycle state of a payout/refund request. Withdrawals move
// pending -> processing -> completed (or failed); refunds move pending ->
// approved or rejected. Which statuses are valid depends on the kind.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	StatusUnknown Status = iota

	// StatusPending is the initial status of every request.
	StatusPending

	// StatusProcessing indicates an approved withdrawal being settled.
	StatusProcessing

	// StatusCompleted is the withdrawal happy-path terminal status.
	StatusCompleted

	// StatusFailed is the withdrawal terminal status for settlement failures.
	StatusFailed

	// StatusApproved is the refund happy-path terminal status.
	StatusApproved

	// StatusRejected is the refund terminal status for denied requests.
	StatusRejected
)

// statusesByKind lists the valid statuses per kind.
var statusesByKind = map[Kind][]Status{
	KindWithdrawal: {StatusPending, StatusProcessing, StatusCompleted, StatusFailed},
	KindRefund:     {StatusPending, StatusApproved, StatusRejected},
}

// requestTransitions is the allowed-transition whitelist per kind.
var requestTransitions = map[Kind]map[Status][]Status{
	KindWithdrawal: {
		StatusPending:    {StatusProcessing, StatusFailed},
		StatusProcessing: {StatusCompleted, StatusFailed},
	},
	KindRefund: {
		StatusPending: {StatusApproved, StatusRejected},
	},
}

func getRequestStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:    "unknown",
		StatusPending:    "pending",
		StatusProcessing: "processing",
		StatusCompleted:  "completed",
		StatusFailed:     "failed",
		StatusApproved:   "approved",
		StatusRejected:   "rejected",
	}
}

// RequestStatusFromString parses the wire representation of a request status.
func RequestStatusFromString(s string) (Status, error) {
	for status, str := range getRequestStatusStrings() {
		if status != StatusUnknown && str == s {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause("status",
		fmt.Errorf("%q is not a valid request status", s))
}

// String returns the wire name of the status.
func (s Status) String() string {
	if str, ok := getRequestStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// ValidateForKind checks that the status belongs to the kind's vocabulary.
func (s Status) ValidateForKind(kind Kind) error {
	for _, valid := range statusesByKind[kind] {
		if valid == s {
			return nil
		}
	}
	return errs.NewValueIsInvalidErrorWithCause("status",
		fmt.Errorf("%s is not a valid status for a %s request", s, kind))
}

// IsTerminal reports whether the status admits no further transitions.
func (s Status) IsTerminal() bool {
	switch s {
	case StatusCompleted, StatusFailed, StatusApproved, StatusRejected:
		return true
	default:
		return false
	}
}

// Request is a money-out request created by a wizard submission. Its status is
// mutated only by the remote authority or explicit admin action, and never
// after reaching a terminal status.
type Request struct {
	id          kernel.UUID
	requesterID kernel.UUID
	kind        Kind
	amount      kernel.Money
	bankAccount BankAccount
	status      Status
	orderID     *kernel.UUID
	requestedAt time.Time
	completedAt *time.Time

	isConstructed bool
}

// NewRequest creates a pending request. The amount must be positive; checking
// it against the requester's available balance is the submitting wizard's
// responsibility, since only the wizard holds the balance at submission time.
// For refunds, orderID references the order being refunded.
func NewRequest(
	id, requesterID kernel.UUID,
	kind Kind,
	amount kernel.Money,
	bankAccount BankAccount,
	orderID *kernel.UUID,
	requestedAt time.Time,
) (*Request, error) {
	r := &Request{
		status:        StatusPending,
		isConstructed: true,
	}

	if err := errors.Join(
		r.setID(id),
		r.setRequesterID(requesterID),
		r.setKind(kind),
		r.setAmount(amount),
		r.setBankAccount(bankAccount),
	); err != nil {
		return nil, err
	}

	if kind == KindRefund {
		if orderID == nil {
			return nil, errs.NewValueIsRequiredError("orderID")
		}
		if err := orderID.Validate(); err != nil {
			return nil, err
		}
	}

	r.orderID = orderID
	r.requestedAt = requestedAt
	return r, nil
}

// RestoreRequestParams carries the full persisted state of a request.
type RestoreRequestParams struct {
	ID          kernel.UUID
	RequesterID kernel.UUID
	Kind        Kind
	Amount      kernel.Money
	BankAccount BankAccount
	Status      Status
	OrderID     *kernel.UUID
	RequestedAt time.Time
	CompletedAt *time.Time
}

// RestoreRequest reconstructs a request from persistence or a remote response.
func RestoreRequest(p RestoreRequestParams) (*Request, error) {
	r := &Request{isConstructed: true}

	if err := errors.Join(
		r.setID(p.ID),
		r.setRequesterID(p.RequesterID),
		r.setKind(p.Kind),
		r.setAmount(p.Amount),
		r.setBankAccount(p.BankAccount),
		p.Status.ValidateForKind(p.Kind),
	); err != nil {
		return nil, err
	}

	r.status = p.Status
	r.orderID = p.OrderID
	r.requestedAt = p.RequestedAt
	r.completedAt = p.CompletedAt
	return r, nil
}

// Validate ensures the Request instance was properly constructed.
func (r *Request) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrRequestIsNotConstructed
	}
	return nil
}

// ID returns the request's unique identifier.
func (r *Request) ID() kernel.UUID { return r.id }

// RequesterID returns the driver or customer who filed the request.
func (r *Request) RequesterID() kernel.UUID { return r.requesterID }

// Kind returns whether this is a withdrawal or a refund.
func (r *Request) Kind() Kind { return r.kind }

// Amount returns the requested amount in minor currency units.
func (r *Request) Amount() kernel.Money { return r.amount }

// BankAccount returns the destination account.
func (r *Request) BankAccount() BankAccount { return r.bankAccount }

// Status returns the current lifecycle status.
func (r *Request) Status() Status { return r.status }

// OrderID returns the refunded order's id, or nil for withdrawals.
func (r *Request) OrderID() *kernel.UUID { return r.orderID }

// RequestedAt returns the submission time.
func (r *Request) RequestedAt() time.Time { return r.requestedAt }

// CompletedAt returns when the request reached its happy terminal status,
// or nil before that.
func (r *Request) CompletedAt() *time.Time { return r.completedAt }

// transition validates and applies a status change for the request's kind.
func (r *Request) transition(to Status, at time.Time) error {
	if r.status.IsTerminal() {
		return ErrRequestIsTerminal
	}
	for _, allowed := range requestTransitions[r.kind][r.status] {
		if allowed == to {
			r.status = to
			if to == StatusCompleted || to == StatusApproved {
				completedAt := at
				r.completedAt = &completedAt
			}
			return nil
		}
	}
	return errs.NewInvalidTransitionError(r.status.String(), to.String())
}

// MarkProcessing moves a pending withdrawal into settlement.
func (r *Request) MarkProcessing(at time.Time) error {
	return r.transition(StatusProcessing, at)
}

// MarkCompleted finishes a processing withdrawal, recording completion time.
func (r *Request) MarkCompleted(at time.Time) error {
	return r.transition(StatusCompleted, at)
}

// MarkFailed fails a pending or processing withdrawal.
func (r *Request) MarkFailed(at time.Time) error {
	return r.transition(StatusFailed, at)
}

// Approve approves a pending refund, recording completion time.
func (r *Request) Approve(at time.Time) error {
	return r.transition(StatusApproved, at)
}

// Reject rejects a pending refund.
func (r *Request) Reject(at time.Time) error {
	return r.transition(StatusRejected, at)
}

func (r *Request) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	r.id = id
	return nil
}

func (r *Request) setRequesterID(requesterID kernel.UUID) error {
	if err := requesterID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("requesterID", err)
	}
	r.requesterID = requesterID
	return nil
}

func (r *Request) setKind(kind Kind) error {
	if err := kind.Validate(); err != nil {
		return err
	}
	r.kind = kind
	return nil
}

func (r *Request) setAmount(amount kernel.Money) error {
	if !amount.IsPositive() {
		return errs.NewValueIsInvalidErrorWithCause("amount",
			fmt.Errorf("%d is not positive", amount))
	}
	r.amount = amount
	return nil
}

func (r *Request) setBankAccount(account BankAccount) error {
	if err := account.Validate(); err != nil {
		return err
	}
	r.bankAccount = account
	return nil
}
