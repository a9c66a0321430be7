package atm

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument is the umbrella error for caller mistakes: unknown
	// identities, duplicate registrations and non-positive amounts. The more
	// specific sentinels below wrap it, so callers can match either the exact
	// cause or the whole class with errors.Is.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrAccountNotFound is returned when no account exists for the given
	// card number and PIN.
	ErrAccountNotFound = fmt.Errorf("%w: account not found", ErrInvalidArgument)

	// ErrAccountExists is returned when registering an identity that already
	// has an account.
	ErrAccountExists = fmt.Errorf("%w: account already registered", ErrInvalidArgument)

	// ErrAmountNotPositive is returned when a withdrawal or deposit amount is
	// zero or negative.
	ErrAmountNotPositive = fmt.Errorf("%w: amount must be positive", ErrInvalidArgument)

	// ErrInsufficientFunds is returned when a withdrawal exceeds the current
	// balance. It is deliberately not an ErrInvalidArgument: callers need to
	// tell a business-rule violation apart from a malformed request.
	ErrInsufficientFunds = errors.New("insufficient funds")
)
