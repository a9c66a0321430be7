// Account endpoints for the teller API.
//
// The identity pair (card number, PIN) travels in the request body on every
// route so the PIN never appears in a URL or the request log.
//
// Routes:
//   - POST /accounts          : Register a new account.
//   - POST /accounts/balance  : Retrieve the current balance.
//   - POST /accounts/withdraw : Withdraw cash.
//   - POST /accounts/deposit  : Deposit cash.
//   - POST /accounts/ledger   : Export the account ledger as plain text.
package webapi

import (
	"bytes"

	atmservice "github.com/amirasaad/atm/pkg/service/atm"
	"github.com/gofiber/fiber/v2"
)

// IdentityRequest carries the credential pair identifying an account.
type IdentityRequest struct {
	Card uint64 `json:"card" validate:"required"`
	PIN  uint64 `json:"pin" validate:"required"`
}

// RegisterRequest is the payload for creating an account.
type RegisterRequest struct {
	Card    uint64  `json:"card" validate:"required"`
	PIN     uint64  `json:"pin" validate:"required"`
	Name    string  `json:"name" validate:"required"`
	Balance float64 `json:"balance"`
}

// AmountRequest is the payload for withdrawals and deposits.
type AmountRequest struct {
	Card   uint64  `json:"card" validate:"required"`
	PIN    uint64  `json:"pin" validate:"required"`
	Amount float64 `json:"amount" validate:"required,gt=0"`
}

// BalanceResponse is the API representation of an account balance.
type BalanceResponse struct {
	Card    uint64  `json:"card"`
	Balance float64 `json:"balance"`
}

// AccountRoutes registers the teller endpoints on app.
func AccountRoutes(app *fiber.App, svc *atmservice.Service) {
	app.Post("/accounts", Register(svc))
	app.Post("/accounts/balance", Balance(svc))
	app.Post("/accounts/withdraw", Withdraw(svc))
	app.Post("/accounts/deposit", Deposit(svc))
	app.Post("/accounts/ledger", Ledger(svc))
}

// Register returns a handler that creates a new account from the request
// payload. Responds 201 with the opening balance, 409 if the identity is
// already registered.
func Register(svc *atmservice.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := BindAndValidate[RegisterRequest](c)
		if err != nil {
			return nil
		}
		if err := svc.Register(input.Card, input.PIN, input.Name, input.Balance); err != nil {
			return ErrorResponseJSON(c, ErrorToStatusCode(err), "Failed to register account", err.Error())
		}
		balance, err := svc.Balance(input.Card, input.PIN)
		if err != nil {
			return ErrorResponseJSON(c, ErrorToStatusCode(err), "Failed to register account", err.Error())
		}
		return c.Status(fiber.StatusCreated).JSON(Response{
			Status:  fiber.StatusCreated,
			Message: "Account registered",
			Data:    BalanceResponse{Card: input.Card, Balance: balance.Float()},
		})
	}
}

// Balance returns a handler that reports the account's current balance.
func Balance(svc *atmservice.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := BindAndValidate[IdentityRequest](c)
		if err != nil {
			return nil
		}
		balance, err := svc.Balance(input.Card, input.PIN)
		if err != nil {
			return ErrorResponseJSON(c, ErrorToStatusCode(err), "Failed to check balance", err.Error())
		}
		return c.JSON(Response{
			Status:  fiber.StatusOK,
			Message: "Balance retrieved",
			Data:    BalanceResponse{Card: input.Card, Balance: balance.Float()},
		})
	}
}

// Withdraw returns a handler that debits the account and reports the updated
// balance. Overdrafts respond 422.
func Withdraw(svc *atmservice.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := BindAndValidate[AmountRequest](c)
		if err != nil {
			return nil
		}
		if err := svc.Withdraw(input.Card, input.PIN, input.Amount); err != nil {
			return ErrorResponseJSON(c, ErrorToStatusCode(err), "Failed to withdraw", err.Error())
		}
		balance, err := svc.Balance(input.Card, input.PIN)
		if err != nil {
			return ErrorResponseJSON(c, ErrorToStatusCode(err), "Failed to withdraw", err.Error())
		}
		return c.JSON(Response{
			Status:  fiber.StatusOK,
			Message: "Cash withdrawn",
			Data:    BalanceResponse{Card: input.Card, Balance: balance.Float()},
		})
	}
}

// Deposit returns a handler that credits the account and reports the updated
// balance.
func Deposit(svc *atmservice.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := BindAndValidate[AmountRequest](c)
		if err != nil {
			return nil
		}
		if err := svc.Deposit(input.Card, input.PIN, input.Amount); err != nil {
			return ErrorResponseJSON(c, ErrorToStatusCode(err), "Failed to deposit", err.Error())
		}
		balance, err := svc.Balance(input.Card, input.PIN)
		if err != nil {
			return ErrorResponseJSON(c, ErrorToStatusCode(err), "Failed to deposit", err.Error())
		}
		return c.JSON(Response{
			Status:  fiber.StatusOK,
			Message: "Cash deposited",
			Data:    BalanceResponse{Card: input.Card, Balance: balance.Float()},
		})
	}
}

// Ledger returns a handler that streams the account's ledger export as
// text/plain, byte-for-byte identical to the engine's file export.
func Ledger(svc *atmservice.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := BindAndValidate[IdentityRequest](c)
		if err != nil {
			return nil
		}
		var buf bytes.Buffer
		if err := svc.Ledger(&buf, input.Card, input.PIN); err != nil {
			return ErrorResponseJSON(c, ErrorToStatusCode(err), "Failed to export ledger", err.Error())
		}
		c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
		return c.SendString(buf.String())
	}
}
