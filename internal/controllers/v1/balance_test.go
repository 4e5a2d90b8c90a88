package v1_test

import (
	"fmt"
	"net/http"
	"testing"

	v1 "github.com/moneybox-io/backend/internal/controllers/v1"
	"github.com/moneybox-io/backend/internal/httputil"
	"github.com/moneybox-io/backend/internal/models"
	"github.com/moneybox-io/backend/test"
	"github.com/stretchr/testify/assert"
)

func balanceURL(id uint, operation string) string {
	return fmt.Sprintf("http://example.com/v1/moneyboxes/%d/balance/%s", id, operation)
}

func (suite *TestSuiteStandard) TestBalanceAdd() {
	m := suite.createTestMoneybox(v1.MoneyboxEditable{})

	r := test.Request(suite.T(), http.MethodPost, balanceURL(m.ID, "add"), v1.BalanceChange{Amount: 1500, Description: "Birthday present"})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.MoneyboxResponse
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().Equal(int64(1500), response.Data.Balance)
	suite.Assert().Equal(m.ID, response.Data.ID)
}

func (suite *TestSuiteStandard) TestBalanceSub() {
	m := suite.createTestMoneybox(v1.MoneyboxEditable{})
	suite.fund(m.ID, 1000)

	r := test.Request(suite.T(), http.MethodPost, balanceURL(m.ID, "sub"), v1.BalanceChange{Amount: 400})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.MoneyboxResponse
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().Equal(int64(600), response.Data.Balance)

	r = test.Request(suite.T(), http.MethodPost, balanceURL(m.ID, "sub"), v1.BalanceChange{Amount: 601})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusMethodNotAllowed)
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().Contains(*response.Error, models.ErrInsufficientFunds.Error())
	suite.Assert().Equal(int64(600), suite.getMoneybox(m.ID).Balance)
}

func (suite *TestSuiteStandard) TestBalanceChangeFails() {
	m := suite.createTestMoneybox(v1.MoneyboxEditable{})

	tests := []struct {
		name   string
		url    string
		body   any
		status int
		err    error
	}{
		{"Zero amount", balanceURL(m.ID, "add"), v1.BalanceChange{Amount: 0}, http.StatusUnprocessableEntity, httputil.ErrValidation},
		{"Negative amount", balanceURL(m.ID, "sub"), v1.BalanceChange{Amount: -10}, http.StatusUnprocessableEntity, httputil.ErrValidation},
		{"Empty body", balanceURL(m.ID, "add"), "", http.StatusBadRequest, httputil.ErrRequestBodyEmpty},
		{"Unknown moneybox", balanceURL(m.ID+1, "add"), v1.BalanceChange{Amount: 10}, http.StatusNotFound, models.ErrMoneyboxNotFound},
		{"Invalid ID", "http://example.com/v1/moneyboxes/0/balance/add", v1.BalanceChange{Amount: 10}, http.StatusUnprocessableEntity, httputil.ErrInvalidID},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodPost, tt.url, tt.body)
			test.AssertHTTPStatus(t, &r, tt.status)

			var response v1.MoneyboxResponse
			test.DecodeResponse(t, &r, &response)
			assert.Contains(t, *response.Error, tt.err.Error())
		})
	}

	suite.Assert().Equal(int64(0), suite.getMoneybox(m.ID).Balance)
}

func (suite *TestSuiteStandard) TestBalanceTransfer() {
	source := suite.createTestMoneybox(v1.MoneyboxEditable{Name: "Holiday"})
	target := suite.createTestMoneybox(v1.MoneyboxEditable{Name: "Bike"})
	suite.fund(source.ID, 1000)

	r := test.Request(suite.T(), http.MethodPost, balanceURL(source.ID, "transfer"), v1.Transfer{
		ToMoneyboxID: target.ID,
		Amount:       300,
		Description:  "Rebalancing",
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.MoneyboxListResponse
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Require().Len(response.Data, 2)
	suite.Assert().Equal(source.ID, response.Data[0].ID)
	suite.Assert().Equal(int64(700), response.Data[0].Balance)
	suite.Assert().Equal(target.ID, response.Data[1].ID)
	suite.Assert().Equal(int64(300), response.Data[1].Balance)
}

func (suite *TestSuiteStandard) TestBalanceTransferFails() {
	source := suite.createTestMoneybox(v1.MoneyboxEditable{})
	target := suite.createTestMoneybox(v1.MoneyboxEditable{})
	suite.fund(source.ID, 100)

	tests := []struct {
		name   string
		body   any
		status int
		err    error
	}{
		{"Same moneybox", v1.Transfer{ToMoneyboxID: source.ID, Amount: 10}, http.StatusUnprocessableEntity, models.ErrSourceEqualsTarget},
		{"Insufficient funds", v1.Transfer{ToMoneyboxID: target.ID, Amount: 101}, http.StatusMethodNotAllowed, models.ErrInsufficientFunds},
		{"Unknown target", v1.Transfer{ToMoneyboxID: target.ID + 1, Amount: 10}, http.StatusNotFound, models.ErrMoneyboxNotFound},
		{"Target missing", map[string]any{"amount": 10}, http.StatusUnprocessableEntity, httputil.ErrValidation},
		{"Zero amount", v1.Transfer{ToMoneyboxID: target.ID}, http.StatusUnprocessableEntity, httputil.ErrValidation},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodPost, balanceURL(source.ID, "transfer"), tt.body)
			test.AssertHTTPStatus(t, &r, tt.status)

			var response v1.MoneyboxListResponse
			test.DecodeResponse(t, &r, &response)
			assert.Contains(t, *response.Error, tt.err.Error())
		})
	}

	suite.Assert().Equal(int64(100), suite.getMoneybox(source.ID).Balance)
	suite.Assert().Equal(int64(0), suite.getMoneybox(target.ID).Balance)
}

func (suite *TestSuiteStandard) TestBalanceDBClosed() {
	m := suite.createTestMoneybox(v1.MoneyboxEditable{})
	suite.CloseDB()

	for _, operation := range []string{"add", "sub"} {
		suite.T().Run(operation, func(t *testing.T) {
			r := test.Request(t, http.MethodPost, balanceURL(m.ID, operation), v1.BalanceChange{Amount: 10})
			test.AssertHTTPStatus(t, &r, http.StatusServiceUnavailable)
		})
	}
}
