// Package payout implements the money-out side of the platform: driver
// withdrawal requests and customer refund-to-bank requests. Both share one
// Request aggregate with a per-kind status machine, mirroring how the two
// wizards share one shape.
//
// Bank account details are a validated value object; account numbers are
// digit-normalized on input and masked on display.
package payout
