package ledger

import (
	"context"

	"github.com/moneybox-io/backend/internal/models"
	"gorm.io/gorm/clause"
)

// appendEntry writes the log entry for a change of amount that resulted in
// the current balance of moneybox.
func (l *Ledger) appendEntry(ctx context.Context, moneybox models.Moneybox, amount int64, description string, counterparty *models.Moneybox) (models.Transaction, error) {
	transaction := models.Transaction{
		MoneyboxID:         moneybox.ID,
		Amount:             amount,
		Balance:            moneybox.Balance,
		TransactionType:    l.origin.Type,
		TransactionTrigger: l.origin.Trigger,
		Description:        description,
		IsActive:           true,
	}

	if counterparty != nil {
		id, name, isOverflow := counterparty.ID, counterparty.Name, counterparty.IsOverflow
		transaction.CounterpartyMoneyboxID = &id
		transaction.CounterpartyMoneyboxName = &name
		transaction.CounterpartyMoneyboxIsOverflow = &isOverflow
	}

	err := l.db.WithContext(ctx).Omit(clause.Associations).Create(&transaction).Error
	if err != nil {
		return models.Transaction{}, err
	}

	return transaction, nil
}

// Transactions returns the log entries of an active moneybox in the order
// they were written.
func (l *Ledger) Transactions(ctx context.Context, moneyboxID uint) ([]models.Transaction, error) {
	var transactions []models.Transaction
	err := l.Atomic(ctx, func(tx *Ledger) error {
		_, err := tx.Moneybox(ctx, moneyboxID)
		if err != nil {
			return err
		}

		return tx.db.WithContext(ctx).
			Where("moneybox_id = ? AND is_active = ?", moneyboxID, true).
			Order("id ASC").
			Find(&transactions).Error
	})
	if err != nil {
		return nil, err
	}

	return transactions, nil
}
