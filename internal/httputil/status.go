package httputil

import (
	"errors"
	"net/http"

	"github.com/moneybox-io/backend/internal/models"
)

// statuses maps errors to their HTTP status. The first match wins.
var statuses = []struct {
	err    error
	status int
}{
	{models.ErrMoneyboxNotFound, http.StatusNotFound},
	{models.ErrSettingsMissing, http.StatusNotFound},
	{models.ErrResourceNotFound, http.StatusNotFound},
	{models.ErrInsufficientFunds, http.StatusMethodNotAllowed},
	{models.ErrMoneyboxNameNotUnique, http.StatusMethodNotAllowed},
	{models.ErrBalanceNotZero, http.StatusMethodNotAllowed},
	{models.ErrOverflowNotDeletable, http.StatusForbidden},
	{models.ErrOverflowNotUnique, http.StatusConflict},
	{models.ErrOverflowMissing, http.StatusConflict},
	{models.ErrSettingsExist, http.StatusConflict},
	{models.ErrPriorityNotUnique, http.StatusConflict},
	{models.ErrInvalidAmount, http.StatusUnprocessableEntity},
	{models.ErrSourceEqualsTarget, http.StatusUnprocessableEntity},
	{models.ErrMoneyboxNameEmpty, http.StatusUnprocessableEntity},
	{models.ErrInvalidSavingsMode, http.StatusUnprocessableEntity},
	{models.ErrInvalidSavingsCycle, http.StatusUnprocessableEntity},
	{models.ErrPriorityNotPositive, http.StatusUnprocessableEntity},
	{models.ErrOverflowNotPrioritized, http.StatusUnprocessableEntity},
	{ErrValidation, http.StatusUnprocessableEntity},
	{ErrInvalidID, http.StatusUnprocessableEntity},
	{ErrRequestBodyEmpty, http.StatusBadRequest},
	{ErrInvalidBody, http.StatusBadRequest},
	{models.ErrStorageUnavailable, http.StatusServiceUnavailable},
	{models.ErrAborted, http.StatusServiceUnavailable},
}

// Status returns the HTTP status for an error returned by the ledger.
func Status(err error) int {
	for _, s := range statuses {
		if errors.Is(err, s.err) {
			return s.status
		}
	}

	return http.StatusInternalServerError
}
