package errs

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors used as the unwrap target of every typed error in this
// package. Callers classify errors with errors.Is against these values.
var (
	ErrObjectNotFound    = errors.New("object not found")
	ErrValueIsInvalid    = errors.New("value is invalid")
	ErrValueIsOutOfRange = errors.New("value is out of range")
	ErrValueIsRequired   = errors.New("value is required")

	ErrInvalidTransition = errors.New("invalid transition")
	ErrRemoteFailure     = errors.New("remote call failed")
)

// GenericRemoteFailureMessage is shown to the user when the remote authority
// fails without an explicit error message.
const GenericRemoteFailureMessage = "something went wrong, please try again"

// sanitize collapses newlines so multi-line values cannot break log lines
// or user-facing messages.
func sanitize(s string) string {
	return strings.ReplaceAll(strings.ReplaceAll(s, "\r", " "), "\n", " ")
}

// ObjectNotFoundError indicates that an object could not be found by its identifier.
type ObjectNotFoundError struct {
	ParamName string
	ID        any
	Cause     error
}

// NewObjectNotFoundError creates an ObjectNotFoundError without an underlying cause.
func NewObjectNotFoundError(paramName string, id any) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id}
}

// NewObjectNotFoundErrorWithCause creates an ObjectNotFoundError wrapping an underlying cause.
func NewObjectNotFoundErrorWithCause(paramName string, id any, cause error) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id, Cause: cause}
}

// Error formats the error message. The short form is used when no cause is
// attached; the long form names the parameter and wraps the cause.
func (e *ObjectNotFoundError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: param is: %s, ID is: %s (cause: %v)",
			ErrObjectNotFound, e.ParamName, e.ID, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %s", ErrObjectNotFound, e.ID))
}

// Unwrap returns the sentinel so errors.Is(err, ErrObjectNotFound) holds.
func (e *ObjectNotFoundError) Unwrap() error {
	return ErrObjectNotFound
}

// ValueIsInvalidError indicates that a provided value failed validation.
type ValueIsInvalidError struct {
	ParamName string
	Cause     error
}

// NewValueIsInvalidError creates a ValueIsInvalidError without an underlying cause.
func NewValueIsInvalidError(paramName string) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName}
}

// NewValueIsInvalidErrorWithCause creates a ValueIsInvalidError wrapping an underlying cause.
func NewValueIsInvalidErrorWithCause(paramName string, cause error) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName, Cause: cause}
}

// Error formats the error message, appending the cause when present.
func (e *ValueIsInvalidError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: %s (cause: %v)", ErrValueIsInvalid, e.ParamName, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %s", ErrValueIsInvalid, e.ParamName))
}

// Unwrap returns the sentinel so errors.Is(err, ErrValueIsInvalid) holds.
func (e *ValueIsInvalidError) Unwrap() error {
	return ErrValueIsInvalid
}

// ValueIsOutOfRangeError indicates that a value falls outside its allowed range.
type ValueIsOutOfRangeError struct {
	ParamName string
	Value     any
	Min       any
	Max       any
	Cause     error
}

// NewValueIsOutOfRangeError creates a ValueIsOutOfRangeError without an underlying cause.
func NewValueIsOutOfRangeError(paramName string, value, minValue, maxValue any) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue}
}

// NewValueIsOutOfRangeErrorWithCause creates a ValueIsOutOfRangeError wrapping an underlying cause.
func NewValueIsOutOfRangeErrorWithCause(
	paramName string,
	value, minValue, maxValue any,
	cause error,
) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue, Cause: cause}
}

// Error formats the error message with the offending value and its bounds.
func (e *ValueIsOutOfRangeError) Error() string {
	msg := fmt.Sprintf("%s: %v is %s, min value is %v, max value is %v",
		ErrValueIsInvalid, e.Value, e.ParamName, e.Min, e.Max)
	if e.Cause != nil {
		msg += fmt.Sprintf(" (cause: %v)", e.Cause)
	}
	return sanitize(msg)
}

// Unwrap returns the sentinel so errors.Is(err, ErrValueIsOutOfRange) holds.
func (e *ValueIsOutOfRangeError) Unwrap() error {
	return ErrValueIsOutOfRange
}

// ValueIsRequiredError indicates that a required value was not provided.
type ValueIsRequiredError struct {
	ParamName string
	Cause     error
}

// NewValueIsRequiredError creates a ValueIsRequiredError without an underlying cause.
func NewValueIsRequiredError(paramName string) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName}
}

// NewValueIsRequiredErrorWithCause creates a ValueIsRequiredError wrapping an underlying cause.
func NewValueIsRequiredErrorWithCause(paramName string, cause error) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName, Cause: cause}
}

// Error formats the error message, appending the cause when present.
func (e *ValueIsRequiredError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: %s (cause: %v)", ErrValueIsRequired, e.ParamName, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %s", ErrValueIsRequired, e.ParamName))
}

// Unwrap returns the sentinel so errors.Is(err, ErrValueIsRequired) holds.
func (e *ValueIsRequiredError) Unwrap() error {
	return ErrValueIsRequired
}

// InvalidTransitionError indicates that a requested order status change is not
// permitted by the transition table. It is raised locally, before any remote
// call is made, so the remote authority never sees a request it would reject.
type InvalidTransitionError struct {
	From  string
	To    string
	Actor string
	Cause error
}

// NewInvalidTransitionError creates an InvalidTransitionError for a rejected edge.
func NewInvalidTransitionError(from, to string) *InvalidTransitionError {
	return &InvalidTransitionError{From: from, To: to}
}

// NewInvalidTransitionErrorForActor creates an InvalidTransitionError for an edge
// that exists in the transition table but is not granted to the acting party.
func NewInvalidTransitionErrorForActor(actor, from, to string) *InvalidTransitionError {
	return &InvalidTransitionError{From: from, To: to, Actor: actor}
}

// Error formats the error message, naming the actor when the rejection is
// capability-based rather than table-based.
func (e *InvalidTransitionError) Error() string {
	if e.Actor != "" {
		return sanitize(fmt.Sprintf("%s: %s -> %s is not allowed for actor %s",
			ErrInvalidTransition, e.From, e.To, e.Actor))
	}
	return sanitize(fmt.Sprintf("%s: %s -> %s", ErrInvalidTransition, e.From, e.To))
}

// Unwrap returns the sentinel so errors.Is(err, ErrInvalidTransition) holds.
func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// RemoteFailureError indicates that a call to the remote authority failed,
// either on the wire or with an explicit unsuccessful response. The Message
// field carries the remote error text verbatim when one was provided.
type RemoteFailureError struct {
	Operation string
	Message   string
	Cause     error
}

// NewRemoteFailureError creates a RemoteFailureError carrying the remote error message.
func NewRemoteFailureError(operation, message string) *RemoteFailureError {
	return &RemoteFailureError{Operation: operation, Message: message}
}

// NewRemoteFailureErrorWithCause creates a RemoteFailureError wrapping a transport error.
func NewRemoteFailureErrorWithCause(operation string, cause error) *RemoteFailureError {
	return &RemoteFailureError{Operation: operation, Cause: cause}
}

// UserMessage returns the text suitable for inline display: the remote message
// verbatim when available, the generic fallback otherwise.
func (e *RemoteFailureError) UserMessage() string {
	if e.Message != "" {
		return e.Message
	}
	return GenericRemoteFailureMessage
}

// UserMessage extracts the inline display text from any error: the remote
// message when err wraps a RemoteFailureError, the generic fallback otherwise.
func UserMessage(err error) string {
	var remote *RemoteFailureError
	if errors.As(err, &remote) {
		return remote.UserMessage()
	}
	return GenericRemoteFailureMessage
}

// Error formats the error message with operation, remote message and cause.
func (e *RemoteFailureError) Error() string {
	msg := fmt.Sprintf("%s: %s", ErrRemoteFailure, e.Operation)
	if e.Message != "" {
		msg += fmt.Sprintf(": %s", e.Message)
	}
	if e.Cause != nil {
		msg += fmt.Sprintf(" (cause: %v)", e.Cause)
	}
	return sanitize(msg)
}

// Unwrap returns the sentinel so errors.Is(err, ErrRemoteFailure) holds.
func (e *RemoteFailureError) Unwrap() error {
	return ErrRemoteFailure
}
