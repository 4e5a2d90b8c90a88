package models

import (
	"errors"
	"time"

	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

// SettingsID is the primary key of the only settings row.
const SettingsID = "globalSettings"

type SavingsCycle string

const (
	SavingsCycleDaily   SavingsCycle = "daily"
	SavingsCycleWeekly  SavingsCycle = "weekly"
	SavingsCycleMonthly SavingsCycle = "monthly"
	SavingsCycleYearly  SavingsCycle = "yearly"
)

func (c SavingsCycle) Valid() bool {
	return slices.Contains([]SavingsCycle{SavingsCycleDaily, SavingsCycleWeekly, SavingsCycleMonthly, SavingsCycleYearly}, c)
}

type SavingsMode string

const (
	SavingsModeAddUp         SavingsMode = "add-up"
	SavingsModeFillEnvelopes SavingsMode = "fill-envelopes"
	SavingsModeCollect       SavingsMode = "collect"
)

func (m SavingsMode) Valid() bool {
	return slices.Contains([]SavingsMode{SavingsModeAddUp, SavingsModeFillEnvelopes, SavingsModeCollect}, m)
}

// Settings configure the distribution of savings.
type Settings struct {
	ID            string       `json:"-" gorm:"primaryKey"`
	CreatedAt     time.Time    `json:"created_at" example:"2024-04-02T19:28:44.491514Z"`
	UpdatedAt     time.Time    `json:"updated_at" example:"2024-04-02T19:28:44.491514Z"`
	SavingsAmount int64        `json:"savings_amount" gorm:"not null;check:savings_amount_non_negative,savings_amount >= 0" example:"10000"`
	SavingsCycle  SavingsCycle `json:"savings_cycle" gorm:"not null" example:"monthly"`
	SavingsMode   SavingsMode  `json:"savings_mode" gorm:"not null" example:"add-up"`
}

var (
	ErrSettingsMissing     = errors.New("there are no settings")
	ErrSettingsExist       = errors.New("settings have already been created")
	ErrInvalidSavingsCycle = errors.New("the savings cycle must be one of daily, weekly, monthly, yearly")
	ErrInvalidSavingsMode  = errors.New("the savings mode must be one of add-up, fill-envelopes, collect")
)

func (Settings) TableName() string {
	return "settings"
}

func (s *Settings) BeforeCreate(_ *gorm.DB) error {
	s.ID = SettingsID
	return s.Validate()
}

// Validate checks that all enumerated fields hold known values.
func (s Settings) Validate() error {
	if s.SavingsAmount < 0 {
		return ErrInvalidAmount
	}

	if !s.SavingsCycle.Valid() {
		return ErrInvalidSavingsCycle
	}

	if !s.SavingsMode.Valid() {
		return ErrInvalidSavingsMode
	}

	return nil
}

func (s *Settings) AfterFind(_ *gorm.DB) error {
	s.CreatedAt = s.CreatedAt.In(time.UTC)
	s.UpdatedAt = s.UpdatedAt.In(time.UTC)
	return nil
}
