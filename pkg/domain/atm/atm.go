// Package atm implements the automated-teller account engine: registration,
// credential-keyed lookups, cash movements and the per-account transaction
// ledger.
//
// Invariants:
//   - An account, its identity key and its transaction log are created
//     together and never exist independently of each other.
//   - A balance is never negative after a successful withdrawal or deposit.
//   - The transaction log is append-only and records one line per successful
//     cash movement, in insertion order.
package atm

import (
	"fmt"
	"io"
	"sync"

	"github.com/amirasaad/atm/pkg/money"
)

// ledgerSeparator is the fixed header/transactions divider of the ledger
// export: exactly 28 hyphens.
const ledgerSeparator = "----------------------------"

// Identity is the (card number, PIN) pair that uniquely identifies an
// account. Two identities are equal iff both fields match.
type Identity struct {
	Card uint64
	PIN  uint64
}

// Account holds the owner's name and the current balance.
type Account struct {
	Name    string
	Balance money.Money
}

// record bundles an account with its transaction log so the two can never
// diverge: they share one map entry and one lifecycle.
type record struct {
	account      Account
	transactions []string
}

// Atm is the in-memory account engine. All state is owned exclusively by the
// engine; accessors hand out copies only.
//
// A single RWMutex serializes mutations and lets reads run concurrently, so
// the engine can be shared by the HTTP handler pool. Every mutation happens
// wholly inside one critical section; no caller ever observes a half-applied
// withdrawal or deposit.
type Atm struct {
	mu      sync.RWMutex
	records map[Identity]*record
}

// New creates an empty engine.
func New() *Atm {
	return &Atm{records: make(map[Identity]*record)}
}

// RegisterAccount creates an account and an empty transaction log under the
// given identity, atomically.
//
// The opening balance is not validated; a negative opening balance is
// accepted. Returns ErrAccountExists if the identity is already registered,
// or a money construction error wrapped in ErrInvalidArgument if the opening
// balance is not a finite number.
func (a *Atm) RegisterAccount(card, pin uint64, name string, openingBalance float64) error {
	balance, err := money.New(openingBalance)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	id := Identity{Card: card, PIN: pin}
	if _, ok := a.records[id]; ok {
		return ErrAccountExists
	}
	a.records[id] = &record{
		account:      Account{Name: name, Balance: balance},
		transactions: []string{},
	}
	return nil
}

// CheckBalance returns the current balance with no side effects.
// Returns ErrAccountNotFound if the identity is unknown.
func (a *Atm) CheckBalance(card, pin uint64) (money.Money, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	rec, ok := a.records[Identity{Card: card, PIN: pin}]
	if !ok {
		return money.Money{}, ErrAccountNotFound
	}
	return rec.account.Balance, nil
}

// WithdrawCash debits the account and appends a transaction line with the
// withdrawal amount and the updated balance.
//
// Fails with ErrAccountNotFound for an unknown identity, ErrAmountNotPositive
// for amounts <= 0, and ErrInsufficientFunds when the amount exceeds the
// balance. On any failure the balance and the log are left untouched.
func (a *Atm) WithdrawCash(card, pin uint64, amount float64) error {
	cash, err := money.New(amount)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	rec, ok := a.records[Identity{Card: card, PIN: pin}]
	if !ok {
		return ErrAccountNotFound
	}
	if !cash.IsPositive() {
		return ErrAmountNotPositive
	}
	if cash.GreaterThan(rec.account.Balance) {
		return ErrInsufficientFunds
	}

	rec.account.Balance = rec.account.Balance.Sub(cash)
	rec.transactions = append(rec.transactions,
		fmt.Sprintf("Withdrawal - Amount: %s, Updated Balance: %s", cash, rec.account.Balance))
	return nil
}

// DepositCash credits the account and appends a transaction line with the
// deposit amount and the updated balance.
//
// Fails with ErrAccountNotFound for an unknown identity and
// ErrAmountNotPositive for amounts <= 0; on failure nothing changes.
func (a *Atm) DepositCash(card, pin uint64, amount float64) error {
	cash, err := money.New(amount)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	rec, ok := a.records[Identity{Card: card, PIN: pin}]
	if !ok {
		return ErrAccountNotFound
	}
	if !cash.IsPositive() {
		return ErrAmountNotPositive
	}

	rec.account.Balance = rec.account.Balance.Add(cash)
	rec.transactions = append(rec.transactions,
		fmt.Sprintf("Deposit - Amount: %s, Updated Balance: %s", cash, rec.account.Balance))
	return nil
}

// PrintLedger writes the account's ledger export to w: a three-line header
// (name, card number, PIN), a 28-hyphen separator, then every transaction
// line verbatim in insertion order, each newline-terminated.
//
// Returns ErrAccountNotFound if the identity is unknown. Write errors are
// surfaced to the caller unmodified.
func (a *Atm) PrintLedger(w io.Writer, card, pin uint64) error {
	a.mu.RLock()
	defer a.mu.RUnlock()

	rec, ok := a.records[Identity{Card: card, PIN: pin}]
	if !ok {
		return ErrAccountNotFound
	}

	if _, err := fmt.Fprintf(w, "Name: %s\nCard Number: %d\nPIN: %d\n%s\n",
		rec.account.Name, card, pin, ledgerSeparator); err != nil {
		return err
	}
	for _, line := range rec.transactions {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// Accounts returns a copy of the full account mapping keyed by identity.
// The copy is for inspection only; mutating it does not affect the engine.
func (a *Atm) Accounts() map[Identity]Account {
	a.mu.RLock()
	defer a.mu.RUnlock()

	out := make(map[Identity]Account, len(a.records))
	for id, rec := range a.records {
		out[id] = rec.account
	}
	return out
}

// Transactions returns a copy of the full transaction-log mapping keyed by
// identity. Log slices are copied, so callers cannot append past validation.
func (a *Atm) Transactions() map[Identity][]string {
	a.mu.RLock()
	defer a.mu.RUnlock()

	out := make(map[Identity][]string, len(a.records))
	for id, rec := range a.records {
		lines := make([]string, len(rec.transactions))
		copy(lines, rec.transactions)
		out[id] = lines
	}
	return out
}
