package models

import (
	"errors"
)

var (
	ErrGeneral          = errors.New("an error occurred on the server during your request")
	ErrResourceNotFound = errors.New("there is no")

	// ErrStorageUnavailable is returned when the database cannot be reached.
	// Operations failing with it can be retried.
	ErrStorageUnavailable = errors.New("the database is currently not available")

	// ErrAborted is returned when an atomic operation was rolled back by the
	// database, e.g. because of a failed commit. Operations failing with it
	// can be retried.
	ErrAborted = errors.New("the operation was aborted, no changes have been made")

	ErrInvalidAmount      = errors.New("the amount is not valid for this operation")
	ErrInsufficientFunds  = errors.New("the balance of the moneybox is not sufficient for this operation")
	ErrSourceEqualsTarget = errors.New("source and target moneybox must be different")
)

// IsRetryable reports whether an operation that failed with err can be
// attempted again without changes.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrStorageUnavailable) || errors.Is(err, ErrAborted)
}

// domainErrors are the expected outcomes of operations that were
// rejected because of the state of the ledger or the input.
var domainErrors = []error{
	ErrInvalidAmount,
	ErrInsufficientFunds,
	ErrSourceEqualsTarget,
	ErrMoneyboxNotFound,
	ErrMoneyboxNameEmpty,
	ErrMoneyboxNameNotUnique,
	ErrOverflowNotUnique,
	ErrOverflowMissing,
	ErrOverflowNotDeletable,
	ErrBalanceNotZero,
	ErrPriorityNotUnique,
	ErrPriorityNotPositive,
	ErrOverflowNotPrioritized,
	ErrSettingsMissing,
	ErrSettingsExist,
	ErrInvalidSavingsCycle,
	ErrInvalidSavingsMode,
	ErrTransactionImmutable,
}

// IsDomainError reports whether err is one of the rejections defined
// by this package.
func IsDomainError(err error) bool {
	for _, e := range domainErrors {
		if errors.Is(err, e) {
			return true
		}
	}

	return false
}
