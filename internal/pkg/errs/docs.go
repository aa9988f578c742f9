// Package errs provides standardized error types for the order lifecycle engine.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package includes several error types for common error scenarios:
//   - ValueIsRequiredError: For when a required value is missing
//   - ValueIsInvalidError: For when a value is invalid
//   - ValueIsOutOfRangeError: For when a value falls outside an allowed range
//   - ObjectNotFoundError: For when an object cannot be found
//   - InvalidTransitionError: For order status changes the transition table rejects
//   - RemoteFailureError: For failed calls to the remote authority
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method for error wrapping/unwrapping support
//
// The first four types make up the local validation taxonomy: they are resolved
// inside the engine before any remote call is made. InvalidTransitionError is
// likewise local, raised by the status transition table. RemoteFailureError is
// the only type that crosses the remote boundary; it carries the remote error
// message verbatim when one is available and a generic fallback otherwise.
package errs
