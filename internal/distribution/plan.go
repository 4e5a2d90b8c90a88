package distribution

import (
	"context"

	"github.com/moneybox-io/backend/internal/ledger"
	"github.com/moneybox-io/backend/internal/models"
)

// plan is the state of a running distribution.
//
// The balances of moneyboxes and overflow are kept in sync with the
// ledger after every change.
type plan struct {
	ctx          context.Context
	ledger       *ledger.Ledger
	savings      int64
	moneyboxes   []models.Moneybox
	overflow     models.Moneybox
	description  string
	transactions []models.Transaction
}

// credit adds amount from the savings to the moneybox.
func (p *plan) credit(moneybox *models.Moneybox, amount int64) error {
	transaction, err := p.ledger.Add(p.ctx, moneybox.ID, amount, p.description)
	if err != nil {
		return err
	}

	moneybox.Balance = transaction.Balance
	p.transactions = append(p.transactions, transaction)
	return nil
}

// fromOverflow moves amount from the overflow moneybox to the moneybox.
func (p *plan) fromOverflow(moneybox *models.Moneybox, amount int64) error {
	debit, credit, err := p.ledger.Move(p.ctx, p.overflow.ID, moneybox.ID, amount, p.description)
	if err != nil {
		return err
	}

	p.overflow.Balance = debit.Balance
	moneybox.Balance = credit.Balance
	p.transactions = append(p.transactions, debit, credit)
	return nil
}

// allocation returns how much a moneybox takes when available is left to
// distribute. It is capped by the increment and, for limited moneyboxes,
// by the remaining room to the goal.
func allocation(moneybox models.Moneybox, available int64) int64 {
	amount := min(moneybox.Increment, available)
	if !moneybox.NoLimit && moneybox.Balance+amount > moneybox.Goal {
		amount = max(0, moneybox.Goal-moneybox.Balance)
	}

	return amount
}
