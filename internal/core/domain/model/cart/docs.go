// Package cart implements the customer cart: line items grouped per origin
// (the restaurant a line item belongs to) with integer minor-unit totals.
//
// The aggregation functions are pure. They never call the remote authority and
// always return new slices; callers pair structural changes with an optimistic
// mutation so the remote cart converges to the same state. Two invariants are
// enforced here rather than remotely: a line item quantity never drops below
// one, and a group never mixes line items from different origins.
package cart
