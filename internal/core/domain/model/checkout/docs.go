// Package checkout models the linear order-placement flow as an explicit
// step machine: address entry, payment selection, confirmation, processing,
// success. Each step's validation gate lives next to the step it guards, and
// only the confirmation step triggers the one remote order-creation call.
package checkout
