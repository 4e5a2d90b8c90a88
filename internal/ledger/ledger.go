// Package ledger implements the moneybox repository, the transaction log
// and the transfer engine on top of the database.
//
// Every balance change is written together with its transaction log entry
// in one database transaction. A Ledger obtained inside Atomic shares that
// database transaction, so that callers can combine several changes into
// one all-or-nothing unit.
package ledger

import (
	"context"
	"errors"
	"fmt"

	"github.com/moneybox-io/backend/internal/models"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// Origin describes what caused a balance change. It is recorded
// on every transaction log entry.
type Origin struct {
	Type    models.TransactionType
	Trigger models.TransactionTrigger
}

var (
	// Manual is the origin of changes requested directly by a user.
	Manual = Origin{Type: models.TransactionTypeDirect, Trigger: models.TransactionTriggerManually}

	// Automatic is the origin of changes made by a savings distribution.
	Automatic = Origin{Type: models.TransactionTypeDistribution, Trigger: models.TransactionTriggerAutomatically}
)

type Ledger struct {
	db      *gorm.DB
	origin  Origin
	inScope bool
}

// New returns a Ledger recording manual changes.
func New(db *gorm.DB) *Ledger {
	return &Ledger{db: db, origin: Manual}
}

// WithOrigin returns a copy of the Ledger that records the given origin.
func (l *Ledger) WithOrigin(origin Origin) *Ledger {
	c := *l
	c.origin = origin
	return &c
}

// Atomic runs fn in a single database transaction.
//
// If fn returns an error, all changes made through the Ledger passed to fn
// are rolled back and the error is returned unchanged. Calling Atomic on a
// Ledger that already is in an atomic scope joins that scope.
func (l *Ledger) Atomic(ctx context.Context, fn func(tx *Ledger) error) (err error) {
	if l.inScope {
		return fn(l)
	}

	tx := l.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return storageError(tx.Error)
	}

	scoped := &Ledger{db: tx, origin: l.origin, inScope: true}

	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	err = fn(scoped)
	if err != nil {
		if rbErr := tx.Rollback().Error; rbErr != nil {
			log.Error().Err(rbErr).Msg("rollback failed")
		}
		return err
	}

	err = tx.Commit().Error
	if err != nil {
		return fmt.Errorf("%w: %w", models.ErrAborted, err)
	}

	return nil
}

// storageError classifies errors that happen while opening a scope.
func storageError(err error) error {
	if errors.Is(err, models.ErrStorageUnavailable) || errors.Is(err, models.ErrAborted) {
		return err
	}

	if models.Unavailable(err) {
		return fmt.Errorf("%w: %w", models.ErrStorageUnavailable, err)
	}

	return fmt.Errorf("%w: %w", models.ErrAborted, err)
}
