// Package atm provides the application service around the teller engine.
// It delegates every operation to the domain engine, adds structured logging,
// and owns the one piece of I/O framing the engine does not: exporting a
// ledger to a file on disk.
package atm

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	domain "github.com/amirasaad/atm/pkg/domain/atm"
	"github.com/amirasaad/atm/pkg/money"
)

// Service exposes teller operations backed by the in-memory engine.
type Service struct {
	engine *domain.Atm
	logger *slog.Logger
}

// New creates a Service. A nil logger falls back to slog.Default().
func New(engine *domain.Atm, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{engine: engine, logger: logger}
}

// Register creates a new account under the given card number and PIN.
func (s *Service) Register(card, pin uint64, name string, openingBalance float64) error {
	if err := s.engine.RegisterAccount(card, pin, name, openingBalance); err != nil {
		s.logger.Warn("account registration failed", "card", card, "error", err)
		return err
	}
	s.logger.Info("account registered", "card", card, "name", name)
	return nil
}

// Balance returns the account's current balance.
func (s *Service) Balance(card, pin uint64) (money.Money, error) {
	balance, err := s.engine.CheckBalance(card, pin)
	if err != nil {
		s.logger.Warn("balance check failed", "card", card, "error", err)
		return money.Money{}, err
	}
	return balance, nil
}

// Withdraw debits the account by the given amount.
func (s *Service) Withdraw(card, pin uint64, amount float64) error {
	if err := s.engine.WithdrawCash(card, pin, amount); err != nil {
		s.logger.Warn("withdrawal failed", "card", card, "error", err)
		return err
	}
	s.logger.Info("cash withdrawn", "card", card, "amount", amount)
	return nil
}

// Deposit credits the account by the given amount.
func (s *Service) Deposit(card, pin uint64, amount float64) error {
	if err := s.engine.DepositCash(card, pin, amount); err != nil {
		s.logger.Warn("deposit failed", "card", card, "error", err)
		return err
	}
	s.logger.Info("cash deposited", "card", card, "amount", amount)
	return nil
}

// Ledger streams the account's ledger export to w.
func (s *Service) Ledger(w io.Writer, card, pin uint64) error {
	return s.engine.PrintLedger(w, card, pin)
}

// ExportLedger writes the account's ledger export to the file at path,
// creating or truncating it. Destination I/O failures are returned to the
// caller unmodified, wrapped only with the path for context.
func (s *Service) ExportLedger(path string, card, pin uint64) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create ledger file %s: %w", path, err)
	}
	if err := s.engine.PrintLedger(f, card, pin); err != nil {
		f.Close() //nolint: errcheck
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close ledger file %s: %w", path, err)
	}
	s.logger.Info("ledger exported", "card", card, "path", path)
	return nil
}
