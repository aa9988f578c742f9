// Package withdrawal models the money-out wizard shared by driver payouts
// and customer refunds: amount or order context, bank details, confirmation,
// success. Processing is an in-flight flag on the confirmation step rather
// than a step of its own.
package withdrawal
