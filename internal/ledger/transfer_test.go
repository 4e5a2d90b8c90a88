package ledger_test

import (
	"errors"
	"math"
	"time"

	"github.com/moneybox-io/backend/internal/ledger"
	"github.com/moneybox-io/backend/internal/models"
)

func (suite *TestSuiteStandard) TestAdd() {
	moneybox := suite.createTestMoneybox(ledger.MoneyboxCreate{Name: "Holiday"})

	transaction, err := suite.ledger.Add(suite.ctx, moneybox.ID, 1500, "Birthday present")
	suite.Require().Nil(err)

	suite.Assert().Equal(int64(1500), transaction.Amount)
	suite.Assert().Equal(int64(1500), transaction.Balance)
	suite.Assert().Equal(models.TransactionTypeDirect, transaction.TransactionType)
	suite.Assert().Equal(models.TransactionTriggerManually, transaction.TransactionTrigger)
	suite.Assert().Equal("Birthday present", transaction.Description)
	suite.Assert().Nil(transaction.CounterpartyMoneyboxID)
	suite.Assert().Equal(int64(1500), suite.balance(moneybox.ID))
}

func (suite *TestSuiteStandard) TestSub() {
	moneybox := suite.createFundedMoneybox(ledger.MoneyboxCreate{Name: "Holiday"}, 1000)

	transaction, err := suite.ledger.Sub(suite.ctx, moneybox.ID, 1000, "")
	suite.Require().Nil(err)

	suite.Assert().Equal(int64(-1000), transaction.Amount)
	suite.Assert().Equal(int64(0), transaction.Balance)
	suite.Assert().Equal(int64(0), suite.balance(moneybox.ID))
}

func (suite *TestSuiteStandard) TestSubInsufficientFunds() {
	moneybox := suite.createFundedMoneybox(ledger.MoneyboxCreate{Name: "Holiday"}, 100)

	_, err := suite.ledger.Sub(suite.ctx, moneybox.ID, 101, "")
	suite.Assert().ErrorIs(err, models.ErrInsufficientFunds)

	suite.Assert().Equal(int64(100), suite.balance(moneybox.ID))
	suite.Assert().Len(suite.transactions(moneybox.ID), 1)
}

func (suite *TestSuiteStandard) TestInvalidAmount() {
	a := suite.createFundedMoneybox(ledger.MoneyboxCreate{Name: "A"}, 100)
	b := suite.createTestMoneybox(ledger.MoneyboxCreate{Name: "B"})

	for _, amount := range []int64{0, -1} {
		_, err := suite.ledger.Add(suite.ctx, a.ID, amount, "")
		suite.Assert().ErrorIs(err, models.ErrInvalidAmount)

		_, err = suite.ledger.Sub(suite.ctx, a.ID, amount, "")
		suite.Assert().ErrorIs(err, models.ErrInvalidAmount)

		_, _, err = suite.ledger.Move(suite.ctx, a.ID, b.ID, amount, "")
		suite.Assert().ErrorIs(err, models.ErrInvalidAmount)
	}

	suite.Assert().Equal(int64(100), suite.balance(a.ID))
	suite.Assert().Equal(int64(0), suite.balance(b.ID))
}

func (suite *TestSuiteStandard) TestMoneyboxNotFound() {
	_, err := suite.ledger.Add(suite.ctx, 42, 100, "")
	suite.Assert().ErrorIs(err, models.ErrMoneyboxNotFound)

	_, err = suite.ledger.Sub(suite.ctx, 42, 100, "")
	suite.Assert().ErrorIs(err, models.ErrMoneyboxNotFound)

	moneybox := suite.createFundedMoneybox(ledger.MoneyboxCreate{Name: "A"}, 100)
	_, _, err = suite.ledger.Move(suite.ctx, moneybox.ID, 42, 100, "")
	suite.Assert().ErrorIs(err, models.ErrMoneyboxNotFound)
	suite.Assert().Equal(int64(100), suite.balance(moneybox.ID))
}

func (suite *TestSuiteStandard) TestMove() {
	source := suite.createFundedMoneybox(ledger.MoneyboxCreate{Name: "Source"}, 500)
	target := suite.createFundedMoneybox(ledger.MoneyboxCreate{Name: "Target"}, 100)

	debit, credit, err := suite.ledger.Move(suite.ctx, source.ID, target.ID, 200, "Rebalance")
	suite.Require().Nil(err)

	suite.Assert().Equal(int64(300), suite.balance(source.ID))
	suite.Assert().Equal(int64(300), suite.balance(target.ID))

	suite.Assert().Equal(int64(-200), debit.Amount)
	suite.Assert().Equal(int64(300), debit.Balance)
	suite.Assert().Equal(target.ID, *debit.CounterpartyMoneyboxID)
	suite.Assert().Equal("Target", *debit.CounterpartyMoneyboxName)
	suite.Assert().False(*debit.CounterpartyMoneyboxIsOverflow)

	suite.Assert().Equal(int64(200), credit.Amount)
	suite.Assert().Equal(int64(300), credit.Balance)
	suite.Assert().Equal(source.ID, *credit.CounterpartyMoneyboxID)
	suite.Assert().Equal("Source", *credit.CounterpartyMoneyboxName)

	suite.Assert().Less(debit.ID, credit.ID, "debit must be written before credit")
}

func (suite *TestSuiteStandard) TestMoveDescendingIDs() {
	target := suite.createTestMoneybox(ledger.MoneyboxCreate{Name: "Target"})
	source := suite.createFundedMoneybox(ledger.MoneyboxCreate{Name: "Source"}, 50)

	_, _, err := suite.ledger.Move(suite.ctx, source.ID, target.ID, 50, "")
	suite.Require().Nil(err)

	suite.Assert().Equal(int64(0), suite.balance(source.ID))
	suite.Assert().Equal(int64(50), suite.balance(target.ID))
}

func (suite *TestSuiteStandard) TestMoveSameMoneybox() {
	moneybox := suite.createFundedMoneybox(ledger.MoneyboxCreate{Name: "Holiday"}, 100)

	_, _, err := suite.ledger.Move(suite.ctx, moneybox.ID, moneybox.ID, 50, "")
	suite.Assert().ErrorIs(err, models.ErrSourceEqualsTarget)
	suite.Assert().Len(suite.transactions(moneybox.ID), 1)
}

func (suite *TestSuiteStandard) TestMoveInsufficientFunds() {
	source := suite.createFundedMoneybox(ledger.MoneyboxCreate{Name: "Source"}, 100)
	target := suite.createTestMoneybox(ledger.MoneyboxCreate{Name: "Target"})

	_, _, err := suite.ledger.Move(suite.ctx, source.ID, target.ID, 150, "")
	suite.Assert().ErrorIs(err, models.ErrInsufficientFunds)

	suite.Assert().Equal(int64(100), suite.balance(source.ID))
	suite.Assert().Equal(int64(0), suite.balance(target.ID))
	suite.Assert().Len(suite.transactions(target.ID), 0)
}

func (suite *TestSuiteStandard) TestMoveConservesTotal() {
	boxes := []models.Moneybox{
		suite.createFundedMoneybox(ledger.MoneyboxCreate{Name: "A"}, 300),
		suite.createFundedMoneybox(ledger.MoneyboxCreate{Name: "B"}, 200),
		suite.createFundedMoneybox(ledger.MoneyboxCreate{Name: "C"}, 0),
	}

	moves := []struct{ source, target, amount int }{
		{0, 1, 100}, {1, 2, 250}, {2, 0, 10}, {0, 2, 500},
	}
	for _, m := range moves {
		_, _, _ = suite.ledger.Move(suite.ctx, boxes[m.source].ID, boxes[m.target].ID, int64(m.amount), "")
	}

	var total int64
	for _, b := range boxes {
		total += suite.balance(b.ID)
	}
	suite.Assert().Equal(int64(500), total)
}

func (suite *TestSuiteStandard) TestMoveCreditFailureRollsBack() {
	source := suite.createFundedMoneybox(ledger.MoneyboxCreate{Name: "Source"}, 100)
	target := suite.createTestMoneybox(ledger.MoneyboxCreate{Name: "Target"})

	// The debit entry is written, the credit entry fails
	suite.failTransactionWrites(1)

	_, _, err := suite.ledger.Move(suite.ctx, source.ID, target.ID, 60, "")
	suite.Assert().NotNil(err)

	suite.Assert().Equal(int64(100), suite.balance(source.ID))
	suite.Assert().Equal(int64(0), suite.balance(target.ID))
	suite.Assert().Len(suite.transactions(source.ID), 1)
	suite.Assert().Len(suite.transactions(target.ID), 0)
}

func (suite *TestSuiteStandard) TestAtomicRollback() {
	moneybox := suite.createFundedMoneybox(ledger.MoneyboxCreate{Name: "Holiday"}, 100)
	errStop := errors.New("stop")

	err := suite.ledger.Atomic(suite.ctx, func(tx *ledger.Ledger) error {
		_, err := tx.Add(suite.ctx, moneybox.ID, 50, "")
		suite.Require().Nil(err)

		// Nested scopes join the outer one
		err = tx.Atomic(suite.ctx, func(inner *ledger.Ledger) error {
			_, err := inner.Sub(suite.ctx, moneybox.ID, 20, "")
			return err
		})
		suite.Require().Nil(err)

		return errStop
	})
	suite.Assert().ErrorIs(err, errStop)

	suite.Assert().Equal(int64(100), suite.balance(moneybox.ID))
	suite.Assert().Len(suite.transactions(moneybox.ID), 1)
}

func (suite *TestSuiteStandard) TestAtomicCommit() {
	moneybox := suite.createTestMoneybox(ledger.MoneyboxCreate{Name: "Holiday"})

	err := suite.ledger.WithOrigin(ledger.Automatic).Atomic(suite.ctx, func(tx *ledger.Ledger) error {
		_, err := tx.Add(suite.ctx, moneybox.ID, 50, "")
		if err != nil {
			return err
		}

		_, err = tx.Add(suite.ctx, moneybox.ID, 25, "")
		return err
	})
	suite.Require().Nil(err)

	transactions := suite.transactions(moneybox.ID)
	suite.Require().Len(transactions, 2)
	suite.Assert().Equal(int64(75), transactions[1].Balance)
	suite.Assert().Equal(models.TransactionTypeDistribution, transactions[0].TransactionType)
	suite.Assert().Equal(models.TransactionTriggerAutomatically, transactions[1].TransactionTrigger)
}

func (suite *TestSuiteStandard) TestStorageUnavailable() {
	moneybox := suite.createTestMoneybox(ledger.MoneyboxCreate{Name: "Holiday"})
	suite.CloseDB()

	_, err := suite.ledger.Add(suite.ctx, moneybox.ID, 50, "")
	suite.Assert().ErrorIs(err, models.ErrStorageUnavailable)
	suite.Assert().True(models.IsRetryable(err))
}

func (suite *TestSuiteStandard) TestAddBalanceLimit() {
	a := suite.createFundedMoneybox(ledger.MoneyboxCreate{Name: "A"}, 10)
	b := suite.createFundedMoneybox(ledger.MoneyboxCreate{Name: "B"}, math.MaxInt64-5)

	_, err := suite.ledger.Add(suite.ctx, a.ID, math.MaxInt64, "")
	suite.Assert().ErrorIs(err, models.ErrInvalidAmount)
	suite.Assert().NotErrorIs(err, models.ErrInsufficientFunds)

	_, _, err = suite.ledger.Move(suite.ctx, a.ID, b.ID, 6, "")
	suite.Assert().ErrorIs(err, models.ErrInvalidAmount)

	suite.Assert().Equal(int64(10), suite.balance(a.ID))
	suite.Assert().Equal(int64(math.MaxInt64-5), suite.balance(b.ID))
	suite.Assert().Len(suite.transactions(a.ID), 1)

	_, err = suite.ledger.Add(suite.ctx, b.ID, 5, "")
	suite.Require().Nil(err)
	suite.Assert().Equal(int64(math.MaxInt64), suite.balance(b.ID))
}

func (suite *TestSuiteStandard) TestModifiedAtRefreshed() {
	a := suite.createFundedMoneybox(ledger.MoneyboxCreate{Name: "A"}, 100)
	b := suite.createTestMoneybox(ledger.MoneyboxCreate{Name: "B"})

	modifiedAt := func(id uint) time.Time {
		moneybox, err := suite.ledger.Moneybox(suite.ctx, id)
		suite.Require().Nil(err)
		return moneybox.ModifiedAt
	}

	tests := []struct {
		name    string
		touched []uint
		run     func() error
	}{
		{"Add", []uint{a.ID}, func() error {
			_, err := suite.ledger.Add(suite.ctx, a.ID, 10, "")
			return err
		}},
		{"Sub", []uint{a.ID}, func() error {
			_, err := suite.ledger.Sub(suite.ctx, a.ID, 10, "")
			return err
		}},
		{"Move", []uint{a.ID, b.ID}, func() error {
			_, _, err := suite.ledger.Move(suite.ctx, a.ID, b.ID, 10, "")
			return err
		}},
	}

	for _, tt := range tests {
		before := map[uint]time.Time{}
		for _, id := range tt.touched {
			before[id] = modifiedAt(id)
		}

		time.Sleep(10 * time.Millisecond)
		suite.Require().Nil(tt.run(), tt.name)

		for _, id := range tt.touched {
			suite.Assert().True(modifiedAt(id).After(before[id]), "%s: modified_at of moneybox %d was not refreshed", tt.name, id)
		}
	}
}
