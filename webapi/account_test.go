package webapi_test

import (
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/amirasaad/atm/webapi"
	"github.com/amirasaad/atm/webapi/testutils"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/suite"
)

type AccountTestSuite struct {
	suite.Suite
	app *fiber.App
}

func (s *AccountTestSuite) SetupTest() {
	s.app = testutils.NewTestApp(s.T())
}

func TestAccountTestSuite(t *testing.T) {
	suite.Run(t, new(AccountTestSuite))
}

func (s *AccountTestSuite) register(body string) *http.Response {
	return testutils.MakeRequest(s.T(), s.app, "POST", "/accounts", body)
}

func (s *AccountTestSuite) decodeBalance(resp *http.Response) float64 {
	var envelope struct {
		Data struct {
			Balance float64 `json:"balance"`
		} `json:"data"`
	}
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&envelope))
	return envelope.Data.Balance
}

func (s *AccountTestSuite) TestRegister() {
	s.Run("register successfully", func() {
		resp := s.register(`{"card":12345678,"pin":1234,"name":"Sam Sepiol","balance":300.30}`)
		defer resp.Body.Close() //nolint: errcheck
		s.Assert().Equal(fiber.StatusCreated, resp.StatusCode)
		s.Assert().InDelta(300.30, s.decodeBalance(resp), 1e-2)
	})

	s.Run("duplicate identity conflicts", func() {
		resp := s.register(`{"card":12345678,"pin":1234,"name":"Sam-again","balance":50}`)
		defer resp.Body.Close() //nolint: errcheck
		s.Assert().Equal(fiber.StatusConflict, resp.StatusCode)
	})

	s.Run("missing name fails validation", func() {
		resp := s.register(`{"card":1,"pin":2}`)
		defer resp.Body.Close() //nolint: errcheck
		s.Assert().Equal(fiber.StatusBadRequest, resp.StatusCode)
	})

	s.Run("malformed body", func() {
		resp := s.register(`{"card":`)
		defer resp.Body.Close() //nolint: errcheck
		s.Assert().Equal(fiber.StatusBadRequest, resp.StatusCode)
	})
}

func (s *AccountTestSuite) TestBalance() {
	resp := s.register(`{"card":12345678,"pin":1234,"name":"Sam Sepiol","balance":300.30}`)
	resp.Body.Close() //nolint: errcheck

	s.Run("balance retrieved", func() {
		resp := testutils.MakeRequest(s.T(), s.app, "POST", "/accounts/balance",
			`{"card":12345678,"pin":1234}`)
		defer resp.Body.Close() //nolint: errcheck
		s.Assert().Equal(fiber.StatusOK, resp.StatusCode)
		s.Assert().InDelta(300.30, s.decodeBalance(resp), 1e-2)
	})

	s.Run("unknown identity is not found", func() {
		resp := testutils.MakeRequest(s.T(), s.app, "POST", "/accounts/balance",
			`{"card":12345678,"pin":9999}`)
		defer resp.Body.Close() //nolint: errcheck
		s.Assert().Equal(fiber.StatusNotFound, resp.StatusCode)
	})
}

func (s *AccountTestSuite) TestWithdraw() {
	resp := s.register(`{"card":12345678,"pin":1234,"name":"Sam Sepiol","balance":300.30}`)
	resp.Body.Close() //nolint: errcheck

	s.Run("withdraw successfully", func() {
		resp := testutils.MakeRequest(s.T(), s.app, "POST", "/accounts/withdraw",
			`{"card":12345678,"pin":1234,"amount":40.50}`)
		defer resp.Body.Close() //nolint: errcheck
		s.Assert().Equal(fiber.StatusOK, resp.StatusCode)
		s.Assert().InDelta(259.80, s.decodeBalance(resp), 1e-2)
	})

	s.Run("overdraft is unprocessable", func() {
		resp := testutils.MakeRequest(s.T(), s.app, "POST", "/accounts/withdraw",
			`{"card":12345678,"pin":1234,"amount":100000}`)
		defer resp.Body.Close() //nolint: errcheck
		s.Assert().Equal(fiber.StatusUnprocessableEntity, resp.StatusCode)
	})

	s.Run("non-positive amount fails validation", func() {
		resp := testutils.MakeRequest(s.T(), s.app, "POST", "/accounts/withdraw",
			`{"card":12345678,"pin":1234,"amount":-5}`)
		defer resp.Body.Close() //nolint: errcheck
		s.Assert().Equal(fiber.StatusBadRequest, resp.StatusCode)
	})
}

func (s *AccountTestSuite) TestDeposit() {
	resp := s.register(`{"card":12345678,"pin":1234,"name":"Sam Sepiol","balance":300.30}`)
	resp.Body.Close() //nolint: errcheck

	s.Run("deposit successfully", func() {
		resp := testutils.MakeRequest(s.T(), s.app, "POST", "/accounts/deposit",
			`{"card":12345678,"pin":1234,"amount":123.45}`)
		defer resp.Body.Close() //nolint: errcheck
		s.Assert().Equal(fiber.StatusOK, resp.StatusCode)
		s.Assert().InDelta(423.75, s.decodeBalance(resp), 1e-2)
	})

	s.Run("unknown identity is not found", func() {
		resp := testutils.MakeRequest(s.T(), s.app, "POST", "/accounts/deposit",
			`{"card":1,"pin":1,"amount":10}`)
		defer resp.Body.Close() //nolint: errcheck
		s.Assert().Equal(fiber.StatusNotFound, resp.StatusCode)
	})
}

func (s *AccountTestSuite) TestLedger() {
	resp := s.register(`{"card":12345678,"pin":1234,"name":"Sam Sepiol","balance":300.30}`)
	resp.Body.Close() //nolint: errcheck
	resp = testutils.MakeRequest(s.T(), s.app, "POST", "/accounts/withdraw",
		`{"card":12345678,"pin":1234,"amount":40.50}`)
	resp.Body.Close() //nolint: errcheck
	resp = testutils.MakeRequest(s.T(), s.app, "POST", "/accounts/deposit",
		`{"card":12345678,"pin":1234,"amount":123.45}`)
	resp.Body.Close() //nolint: errcheck

	s.Run("ledger export matches the documented format", func() {
		resp := testutils.MakeRequest(s.T(), s.app, "POST", "/accounts/ledger",
			`{"card":12345678,"pin":1234}`)
		defer resp.Body.Close() //nolint: errcheck
		s.Require().Equal(fiber.StatusOK, resp.StatusCode)

		body, err := io.ReadAll(resp.Body)
		s.Require().NoError(err)

		want := "Name: Sam Sepiol\n" +
			"Card Number: 12345678\n" +
			"PIN: 1234\n" +
			"----------------------------\n" +
			"Withdrawal - Amount: $40.50, Updated Balance: $259.80\n" +
			"Deposit - Amount: $123.45, Updated Balance: $383.25\n"
		s.Assert().Equal(want, string(body))
	})

	s.Run("unknown identity is not found", func() {
		resp := testutils.MakeRequest(s.T(), s.app, "POST", "/accounts/ledger",
			`{"card":2,"pin":2}`)
		defer resp.Body.Close() //nolint: errcheck
		s.Assert().Equal(fiber.StatusNotFound, resp.StatusCode)
	})
}

func (s *AccountTestSuite) TestLiveness() {
	resp := testutils.MakeRequest(s.T(), s.app, "GET", "/", "")
	defer resp.Body.Close() //nolint: errcheck
	s.Assert().Equal(fiber.StatusOK, resp.StatusCode)
}

func (s *AccountTestSuite) TestProblemDetailsShape() {
	resp := testutils.MakeRequest(s.T(), s.app, "POST", "/accounts/balance",
		`{"card":42,"pin":42}`)
	defer resp.Body.Close() //nolint: errcheck
	s.Require().Equal(fiber.StatusNotFound, resp.StatusCode)

	var pd webapi.ProblemDetails
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&pd))
	s.Assert().Equal(fiber.StatusNotFound, pd.Status)
	s.Assert().Equal("/accounts/balance", pd.Instance)
	s.Assert().Contains(pd.Detail, "account not found")
}
