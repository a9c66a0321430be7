// Command atm is the interactive teller console. It drives the account
// engine through a prompt loop: register, check balance, withdraw, deposit,
// export a ledger.
package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/amirasaad/atm/pkg/config"
	domain "github.com/amirasaad/atm/pkg/domain/atm"
	atmservice "github.com/amirasaad/atm/pkg/service/atm"
	"github.com/charmbracelet/log"
	"github.com/fatih/color"
	"golang.org/x/term"
)

var (
	success = color.New(color.FgGreen).PrintfFunc()
	fail    = color.New(color.FgRed).PrintfFunc()
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load(slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		return fmt.Errorf("failed to load application configuration: %w", err)
	}

	// Operation logging belongs to the server; keep the console clean.
	quiet := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := atmservice.New(domain.New(), quiet)

	console := &console{svc: svc, in: bufio.NewReader(os.Stdin), ledgerDir: cfg.Ledger.Dir}
	return console.loop()
}

type console struct {
	svc       *atmservice.Service
	in        *bufio.Reader
	ledgerDir string
}

func (c *console) loop() error {
	for {
		fmt.Println()
		fmt.Println("1) Register account")
		fmt.Println("2) Check balance")
		fmt.Println("3) Withdraw cash")
		fmt.Println("4) Deposit cash")
		fmt.Println("5) Print ledger")
		fmt.Println("q) Quit")

		choice, err := c.readLine("> ")
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		switch choice {
		case "1":
			err = c.register()
		case "2":
			err = c.balance()
		case "3":
			err = c.withdraw()
		case "4":
			err = c.deposit()
		case "5":
			err = c.ledger()
		case "q", "quit", "exit":
			fmt.Println("Goodbye.")
			return nil
		default:
			fail("Unknown choice: %s\n", choice)
			continue
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			fail("%v\n", err)
		}
	}
}

func (c *console) register() error {
	card, pin, err := c.readIdentity()
	if err != nil {
		return err
	}
	name, err := c.readLine("Account holder name: ")
	if err != nil {
		return err
	}
	balance, err := c.readFloat("Opening balance: ")
	if err != nil {
		return err
	}
	if err := c.svc.Register(card, pin, name, balance); err != nil {
		return err
	}
	success("Account registered for %s.\n", name)
	return nil
}

func (c *console) balance() error {
	card, pin, err := c.readIdentity()
	if err != nil {
		return err
	}
	balance, err := c.svc.Balance(card, pin)
	if err != nil {
		return err
	}
	success("Current balance: %s\n", balance)
	return nil
}

func (c *console) withdraw() error {
	card, pin, err := c.readIdentity()
	if err != nil {
		return err
	}
	amount, err := c.readFloat("Amount to withdraw: ")
	if err != nil {
		return err
	}
	if err := c.svc.Withdraw(card, pin, amount); err != nil {
		return err
	}
	balance, err := c.svc.Balance(card, pin)
	if err != nil {
		return err
	}
	success("Dispensed. Updated balance: %s\n", balance)
	return nil
}

func (c *console) deposit() error {
	card, pin, err := c.readIdentity()
	if err != nil {
		return err
	}
	amount, err := c.readFloat("Amount to deposit: ")
	if err != nil {
		return err
	}
	if err := c.svc.Deposit(card, pin, amount); err != nil {
		return err
	}
	balance, err := c.svc.Balance(card, pin)
	if err != nil {
		return err
	}
	success("Accepted. Updated balance: %s\n", balance)
	return nil
}

func (c *console) ledger() error {
	card, pin, err := c.readIdentity()
	if err != nil {
		return err
	}
	path := filepath.Join(c.ledgerDir, fmt.Sprintf("%d_ledger.txt", card))
	if err := c.svc.ExportLedger(path, card, pin); err != nil {
		return err
	}
	success("Ledger written to %s\n", path)
	return nil
}

func (c *console) readIdentity() (card, pin uint64, err error) {
	card, err = c.readUint("Card number: ")
	if err != nil {
		return 0, 0, err
	}
	pin, err = c.readPIN()
	if err != nil {
		return 0, 0, err
	}
	return card, pin, nil
}

func (c *console) readLine(prompt string) (string, error) {
	fmt.Print(prompt)
	line, err := c.in.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (c *console) readUint(prompt string) (uint64, error) {
	line, err := c.readLine(prompt)
	if err != nil {
		return 0, err
	}
	n, err := strconv.ParseUint(line, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("not a valid number: %q", line)
	}
	return n, nil
}

func (c *console) readFloat(prompt string) (float64, error) {
	line, err := c.readLine(prompt)
	if err != nil {
		return 0, err
	}
	f, err := strconv.ParseFloat(line, 64)
	if err != nil {
		return 0, fmt.Errorf("not a valid amount: %q", line)
	}
	return f, nil
}

// readPIN masks the PIN when stdin is a terminal and falls back to a plain
// line read when it is not (pipes, tests).
func (c *console) readPIN() (uint64, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return c.readUint("PIN: ")
	}
	fmt.Print("PIN: ")
	raw, err := term.ReadPassword(fd)
	fmt.Println()
	if err != nil {
		return 0, err
	}
	pin, err := strconv.ParseUint(strings.TrimSpace(string(raw)), 10, 64)
	if err != nil {
		return 0, errors.New("PIN must be numeric")
	}
	return pin, nil
}
