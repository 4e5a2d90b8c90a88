package ledger

import (
	"context"
	"fmt"
	"math"

	"github.com/moneybox-io/backend/internal/models"
	"github.com/rs/zerolog/log"
)

// Add credits amount to the moneybox and returns the log entry.
func (l *Ledger) Add(ctx context.Context, id uint, amount int64, description string) (transaction models.Transaction, err error) {
	if amount <= 0 {
		return models.Transaction{}, fmt.Errorf("%w: %d", models.ErrInvalidAmount, amount)
	}

	err = l.Atomic(ctx, func(tx *Ledger) error {
		moneybox, err := tx.lockMoneybox(ctx, id)
		if err != nil {
			return err
		}

		transaction, err = tx.apply(ctx, moneybox, amount, description, nil)
		return err
	})

	return
}

// Sub debits amount from the moneybox and returns the log entry.
func (l *Ledger) Sub(ctx context.Context, id uint, amount int64, description string) (transaction models.Transaction, err error) {
	if amount <= 0 {
		return models.Transaction{}, fmt.Errorf("%w: %d", models.ErrInvalidAmount, amount)
	}

	err = l.Atomic(ctx, func(tx *Ledger) error {
		moneybox, err := tx.lockMoneybox(ctx, id)
		if err != nil {
			return err
		}

		transaction, err = tx.apply(ctx, moneybox, -amount, description, nil)
		return err
	})

	return
}

// Move transfers amount from the source to the target moneybox.
//
// Both log entries reference the other moneybox as counterparty. The debit
// entry is written before the credit entry.
func (l *Ledger) Move(ctx context.Context, sourceID, targetID uint, amount int64, description string) (debit, credit models.Transaction, err error) {
	if amount <= 0 {
		return models.Transaction{}, models.Transaction{}, fmt.Errorf("%w: %d", models.ErrInvalidAmount, amount)
	}

	if sourceID == targetID {
		return models.Transaction{}, models.Transaction{}, models.ErrSourceEqualsTarget
	}

	err = l.Atomic(ctx, func(tx *Ledger) error {
		// Lock in ascending id order so that concurrent moves in
		// opposite directions can not deadlock
		first, second := sourceID, targetID
		if first > second {
			first, second = second, first
		}

		a, err := tx.lockMoneybox(ctx, first)
		if err != nil {
			return err
		}

		b, err := tx.lockMoneybox(ctx, second)
		if err != nil {
			return err
		}

		source, target := a, b
		if first != sourceID {
			source, target = b, a
		}

		debit, err = tx.apply(ctx, source, -amount, description, &target)
		if err != nil {
			return err
		}

		credit, err = tx.apply(ctx, target, amount, description, &source)
		return err
	})

	return
}

// apply changes the balance of a locked moneybox by delta and appends the
// log entry for it.
func (l *Ledger) apply(ctx context.Context, moneybox models.Moneybox, delta int64, description string, counterparty *models.Moneybox) (models.Transaction, error) {
	if delta > 0 && moneybox.Balance > math.MaxInt64-delta {
		return models.Transaction{}, fmt.Errorf("%w: balance %d can not hold another %d", models.ErrInvalidAmount, moneybox.Balance, delta)
	}

	balance := moneybox.Balance + delta
	if balance < 0 {
		return models.Transaction{}, fmt.Errorf("%w: balance is %d, requested %d", models.ErrInsufficientFunds, moneybox.Balance, -delta)
	}

	err := l.db.WithContext(ctx).Model(&moneybox).Updates(map[string]any{"balance": balance}).Error
	if err != nil {
		return models.Transaction{}, err
	}
	moneybox.Balance = balance

	transaction, err := l.appendEntry(ctx, moneybox, delta, description, counterparty)
	if err != nil {
		return models.Transaction{}, err
	}

	log.Debug().
		Uint("moneybox", moneybox.ID).
		Int64("amount", delta).
		Int64("balance", balance).
		Str("type", string(l.origin.Type)).
		Msg("balance changed")

	return transaction, nil
}
