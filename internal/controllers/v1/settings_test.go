package v1_test

import (
	"net/http"
	"testing"

	v1 "github.com/moneybox-io/backend/internal/controllers/v1"
	"github.com/moneybox-io/backend/internal/models"
	"github.com/moneybox-io/backend/test"
	"github.com/stretchr/testify/assert"
)

const settingsURL = "http://example.com/v1/settings"

func (suite *TestSuiteStandard) createTestSettings(s v1.SettingsEditable, expectedStatus ...int) v1.SettingsResponse {
	if len(expectedStatus) == 0 {
		expectedStatus = append(expectedStatus, http.StatusCreated)
	}

	r := test.Request(suite.T(), http.MethodPost, settingsURL, s)
	test.AssertHTTPStatus(suite.T(), &r, expectedStatus...)

	var response v1.SettingsResponse
	test.DecodeResponse(suite.T(), &r, &response)
	return response
}

func (suite *TestSuiteStandard) TestSettingsMissing() {
	r := test.Request(suite.T(), http.MethodGet, settingsURL, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)

	var response v1.SettingsResponse
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().Contains(*response.Error, models.ErrSettingsMissing.Error())

	r = test.Request(suite.T(), http.MethodPatch, settingsURL, v1.SettingsPatch{SavingsAmount: ptr(int64(10))})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestSettingsCreate() {
	created := suite.createTestSettings(v1.SettingsEditable{
		SavingsAmount: ptr(int64(10000)),
		SavingsCycle:  "monthly",
		SavingsMode:   "add-up",
	})
	suite.Assert().Equal(int64(10000), created.Data.SavingsAmount)
	suite.Assert().Equal(models.SavingsCycleMonthly, created.Data.SavingsCycle)
	suite.Assert().Equal(models.SavingsModeAddUp, created.Data.SavingsMode)

	r := test.Request(suite.T(), http.MethodGet, settingsURL, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.SettingsResponse
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().Equal(int64(10000), response.Data.SavingsAmount)

	again := suite.createTestSettings(v1.SettingsEditable{
		SavingsAmount: ptr(int64(5)),
		SavingsCycle:  "daily",
		SavingsMode:   "collect",
	}, http.StatusConflict)
	suite.Assert().Contains(*again.Error, models.ErrSettingsExist.Error())
}

func (suite *TestSuiteStandard) TestSettingsCreateZeroAmount() {
	created := suite.createTestSettings(v1.SettingsEditable{
		SavingsAmount: ptr(int64(0)),
		SavingsCycle:  "weekly",
		SavingsMode:   "collect",
	})
	suite.Assert().Equal(int64(0), created.Data.SavingsAmount)
}

func (suite *TestSuiteStandard) TestSettingsCreateInvalid() {
	tests := []struct {
		name string
		body any
	}{
		{"Amount missing", map[string]any{"savings_cycle": "daily", "savings_mode": "collect"}},
		{"Negative amount", map[string]any{"savings_amount": -1, "savings_cycle": "daily", "savings_mode": "collect"}},
		{"Unknown cycle", map[string]any{"savings_amount": 1, "savings_cycle": "hourly", "savings_mode": "collect"}},
		{"Unknown mode", map[string]any{"savings_amount": 1, "savings_cycle": "daily", "savings_mode": "spend"}},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodPost, settingsURL, tt.body)
			test.AssertHTTPStatus(t, &r, http.StatusUnprocessableEntity)
		})
	}
}

func (suite *TestSuiteStandard) TestSettingsUpdate() {
	suite.createTestSettings(v1.SettingsEditable{
		SavingsAmount: ptr(int64(10000)),
		SavingsCycle:  "monthly",
		SavingsMode:   "add-up",
	})

	r := test.Request(suite.T(), http.MethodPatch, settingsURL, v1.SettingsPatch{SavingsMode: ptr("fill-envelopes")})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.SettingsResponse
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().Equal(models.SavingsModeFillEnvelopes, response.Data.SavingsMode)
	suite.Assert().Equal(int64(10000), response.Data.SavingsAmount)
	suite.Assert().Equal(models.SavingsCycleMonthly, response.Data.SavingsCycle)

	tests := []struct {
		name  string
		patch map[string]any
	}{
		{"Negative amount", map[string]any{"savings_amount": -100}},
		{"Unknown cycle", map[string]any{"savings_cycle": "never"}},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodPatch, settingsURL, tt.patch)
			assert.Equal(t, http.StatusUnprocessableEntity, r.Code)
		})
	}
}
