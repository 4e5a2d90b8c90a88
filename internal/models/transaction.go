package models

import (
	"errors"

	"gorm.io/gorm"
)

type TransactionType string

const (
	TransactionTypeDirect       TransactionType = "direct"
	TransactionTypeDistribution TransactionType = "distribution"
)

type TransactionTrigger string

const (
	TransactionTriggerManually      TransactionTrigger = "manually"
	TransactionTriggerAutomatically TransactionTrigger = "automatically"
)

// Transaction is an entry in the append-only log of balance changes.
//
// Balance is the balance of the moneybox directly after the change.
// The counterparty fields are only set for transfers and are a snapshot
// of the other moneybox at the time of the transfer.
type Transaction struct {
	DefaultModel
	MoneyboxID                     uint               `json:"moneybox_id" gorm:"not null;index" example:"3"`
	Moneybox                       Moneybox           `json:"-"`
	Amount                         int64              `json:"amount" gorm:"not null" example:"-500"`
	Balance                        int64              `json:"balance" gorm:"not null" example:"1500"`
	TransactionType                TransactionType    `json:"transaction_type" gorm:"not null" example:"direct"`
	TransactionTrigger             TransactionTrigger `json:"transaction_trigger" gorm:"not null" example:"manually"`
	CounterpartyMoneyboxID         *uint              `json:"counterparty_moneybox_id" example:"4"`
	CounterpartyMoneyboxName       *string            `json:"counterparty_moneybox_name" example:"Holiday"`
	CounterpartyMoneyboxIsOverflow *bool              `json:"counterparty_moneybox_is_overflow" example:"false"`
	Description                    string             `json:"description" example:"Birthday present"`
	IsActive                       bool               `json:"is_active" gorm:"not null;default:true" example:"true"`
}

var ErrTransactionImmutable = errors.New("transactions can not be changed once they are written")

func (t *Transaction) BeforeUpdate(_ *gorm.DB) error {
	return ErrTransactionImmutable
}

func (t *Transaction) BeforeDelete(_ *gorm.DB) error {
	return ErrTransactionImmutable
}
