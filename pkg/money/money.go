// Package money provides the fixed-point monetary value object used by the
// teller engine.
//
// Invariants:
//   - The amount is always stored as an integer number of cents.
//   - Construction from float64 rounds to the nearest cent.
//   - String() renders the amount as currency with a dollar sign and exactly
//     two decimal places, which is the format the transaction ledger depends on.
package money

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrInvalidAmount is returned when an amount is NaN or infinite.
	ErrInvalidAmount = errors.New("invalid amount float")

	// ErrAmountExceedsMaxSafeInt is returned when an amount cannot be
	// represented as int64 cents without overflow.
	ErrAmountExceedsMaxSafeInt = errors.New("amount exceeds maximum safe integer value")
)

// Money represents a monetary value as an integer number of cents.
// The zero value is $0.00 and ready to use.
type Money struct {
	cents int64
}

// New creates a Money value from a float64 amount in dollars.
// The amount is rounded to the nearest cent.
//
// Returns an error if the amount is NaN, infinite, or too large to represent.
func New(amount float64) (Money, error) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return Money{}, ErrInvalidAmount
	}
	scaled := math.Round(amount * 100)
	if scaled > float64(math.MaxInt64) || scaled < float64(math.MinInt64) {
		return Money{}, ErrAmountExceedsMaxSafeInt
	}
	return Money{cents: int64(scaled)}, nil
}

// Must creates a Money value from the given amount and panics on error.
// Intended for constants and test setup.
func Must(amount float64) Money {
	m, err := New(amount)
	if err != nil {
		panic(fmt.Sprintf("money.Must(%v): %v", amount, err))
	}
	return m
}

// FromCents creates a Money value directly from an integer number of cents.
func FromCents(cents int64) Money {
	return Money{cents: cents}
}

// Cents returns the amount in cents.
func (m Money) Cents() int64 {
	return m.cents
}

// Float returns the amount as a float64 in dollars.
func (m Money) Float() float64 {
	return float64(m.cents) / 100
}

// Add returns the sum of m and other.
func (m Money) Add(other Money) Money {
	return Money{cents: m.cents + other.cents}
}

// Sub returns the difference of m and other. The result may be negative.
func (m Money) Sub(other Money) Money {
	return Money{cents: m.cents - other.cents}
}

// GreaterThan reports whether m is strictly greater than other.
func (m Money) GreaterThan(other Money) bool {
	return m.cents > other.cents
}

// IsPositive reports whether the amount is greater than zero.
func (m Money) IsPositive() bool {
	return m.cents > 0
}

// IsNegative reports whether the amount is less than zero.
func (m Money) IsNegative() bool {
	return m.cents < 0
}

// IsZero reports whether the amount is zero.
func (m Money) IsZero() bool {
	return m.cents == 0
}

// String renders the amount as currency with exactly two decimal places,
// e.g. "$40.50" or "-$0.25".
func (m Money) String() string {
	cents := m.cents
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s$%d.%02d", sign, cents/100, cents%100)
}
