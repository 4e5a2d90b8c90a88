package models

import (
	"errors"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"gorm.io/gorm"
)

// Moneybox is a named savings bucket holding a non-negative balance.
type Moneybox struct {
	DefaultModel
	ModifiedAt time.Time `json:"modified_at" gorm:"autoUpdateTime" example:"2024-04-02T19:28:44.491514Z"`
	Name       string    `json:"name" gorm:"not null" example:"Holiday"`
	NameKey    string    `json:"-" gorm:"not null"`
	Balance    int64     `json:"balance" gorm:"not null;default:0;check:balance_non_negative,balance >= 0" example:"12000"`
	Priority   int64     `json:"priority" gorm:"not null" example:"1"`
	IsOverflow bool      `json:"is_overflow" gorm:"not null;default:false" example:"false"`
	Goal       int64     `json:"goal" gorm:"not null;default:0;check:goal_non_negative,goal >= 0" example:"50000"`
	Increment  int64     `json:"increment" gorm:"not null;default:0;check:increment_non_negative,increment >= 0" example:"2500"`
	NoLimit    bool      `json:"no_limit" gorm:"not null;default:false" example:"false"`
	IsActive   bool      `json:"is_active" gorm:"not null;default:true" example:"true"`
}

var (
	ErrMoneyboxNotFound       = errors.New("there is no active moneybox with this ID")
	ErrMoneyboxNameEmpty      = errors.New("the name of a moneybox must not be empty")
	ErrMoneyboxNameNotUnique  = errors.New("the name of the moneybox is already in use")
	ErrOverflowNotUnique      = errors.New("there can only be one overflow moneybox")
	ErrOverflowMissing        = errors.New("there is no overflow moneybox")
	ErrOverflowNotDeletable   = errors.New("the overflow moneybox can not be deleted")
	ErrBalanceNotZero         = errors.New("a moneybox can only be deleted when its balance is zero")
	ErrPriorityNotUnique      = errors.New("the priority is already used by another moneybox")
	ErrPriorityNotPositive    = errors.New("the priority must be greater than zero")
	ErrOverflowNotPrioritized = errors.New("the overflow moneybox does not have a priority")
)

// NameKey returns the case-insensitive comparison key for a moneybox name.
func NameKey(name string) string {
	return cases.Fold().String(strings.TrimSpace(name))
}

func (m *Moneybox) BeforeCreate(_ *gorm.DB) error {
	m.Name = strings.TrimSpace(m.Name)
	if m.Name == "" {
		return ErrMoneyboxNameEmpty
	}
	m.NameKey = NameKey(m.Name)

	return nil
}

func (m *Moneybox) AfterFind(tx *gorm.DB) error {
	m.ModifiedAt = m.ModifiedAt.In(time.UTC)
	return m.DefaultModel.AfterFind(tx)
}
