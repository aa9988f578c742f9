package payout

import (
	"errors"
	"fmt"
	"strings"

	"orderflow/internal/pkg/errs"
)

const (
	// MinAccountNumberDigits is the minimum account number length after
	// normalization.
	MinAccountNumberDigits = 8

	// MaxAccountNumberDigits is the maximum account number length after
	// normalization.
	MaxAccountNumberDigits = 16

	// MinHolderNameLength is the minimum holder name length after trimming.
	MinHolderNameLength = 2

	// maskRune replaces every account number character after the visible
	// prefix in masked display.
	maskRune = '*'

	// maskedVisiblePrefix is how many leading characters remain visible in
	// masked display.
	maskedVisiblePrefix = 2
)

// ErrBankAccountIsNotConstructed is returned when a BankAccount was not
// created through the NewBankAccount constructor.
var ErrBankAccountIsNotConstructed = errors.New("BankAccount must be created via NewBankAccount constructor")

// BankAccount is the validated destination of a withdrawal or refund:
// a bank, an account number of 8-16 digits, and the account holder's name.
type BankAccount struct {
	bankID        string
	accountNumber string
	holderName    string

	isConstructed bool
}

// NormalizeAccountNumber strips every non-digit character from raw input.
// Account number fields apply this on every keystroke, so pasted values with
// spaces or dashes still validate.
func NormalizeAccountNumber(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// NewBankAccount creates a validated bank account destination.
// The account number is normalized before validation; the holder name is
// trimmed. Violations surface field-level validation errors and never reach
// the network.
func NewBankAccount(bankID, accountNumber, holderName string) (BankAccount, error) {
	if bankID == "" {
		return BankAccount{}, errs.NewValueIsRequiredError("bank")
	}

	normalized := NormalizeAccountNumber(accountNumber)
	if len(normalized) < MinAccountNumberDigits || len(normalized) > MaxAccountNumberDigits {
		return BankAccount{}, errs.NewValueIsOutOfRangeError("account number digits",
			len(normalized), MinAccountNumberDigits, MaxAccountNumberDigits)
	}

	holder := strings.TrimSpace(holderName)
	if len(holder) < MinHolderNameLength {
		return BankAccount{}, errs.NewValueIsInvalidErrorWithCause("account holder name",
			fmt.Errorf("%q is shorter than %d characters", holder, MinHolderNameLength))
	}

	return BankAccount{
		bankID:        bankID,
		accountNumber: normalized,
		holderName:    holder,
		isConstructed: true,
	}, nil
}

// Validate ensures the account was created through NewBankAccount.
func (a BankAccount) Validate() error {
	if !a.isConstructed {
		return ErrBankAccountIsNotConstructed
	}
	return nil
}

// BankID returns the destination bank identifier.
func (a BankAccount) BankID() string { return a.bankID }

// AccountNumber returns the normalized, digits-only account number.
func (a BankAccount) AccountNumber() string { return a.accountNumber }

// HolderName returns the trimmed account holder name.
func (a BankAccount) HolderName() string { return a.holderName }

// Masked returns the display form of the account number: the first two
// characters kept, every remaining character replaced one-for-one with the
// mask character. "1234567890" masks to "12********".
func (a BankAccount) Masked() string {
	number := a.accountNumber
	if len(number) <= maskedVisiblePrefix {
		return number
	}
	return number[:maskedVisiblePrefix] + strings.Repeat(string(maskRune), len(number)-maskedVisiblePrefix)
}
