// Package order implements the Order aggregate and the canonical status
// vocabulary shared by the customer storefront, the restaurant back-office,
// the driver app and the admin console.
//
// The package centers on three pieces:
//   - Status: the finite-state machine with an explicit transition whitelist
//   - Actor: the capability table mapping each party to the edges it may trigger
//   - Order: the aggregate created at checkout and mutated only through
//     validated transitions until it reaches a terminal state
//
// All four surfaces consume the single transition table, so disagreements
// about which action is legal in which state cannot arise per screen. Any
// transition the table rejects is refused locally, before a remote call.
package order
