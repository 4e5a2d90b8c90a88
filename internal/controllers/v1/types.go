package v1

import (
	"github.com/moneybox-io/backend/internal/distribution"
	"github.com/moneybox-io/backend/internal/ledger"
	"github.com/moneybox-io/backend/internal/models"
)

type httpError struct {
	Error string `json:"error" example:"there is no active moneybox with this ID: 12"`
}

type URIID struct {
	ID uint `uri:"id" binding:"required,min=1"` // ID of the moneybox
}

type MoneyboxQueryFilter struct {
	Name string `form:"name"` // Glob pattern the name must match, e.g. "Hol*"
}

// MoneyboxEditable are the fields of a moneybox that can be set on creation.
type MoneyboxEditable struct {
	Name       string `json:"name" binding:"required" example:"Holiday"`
	IsOverflow bool   `json:"is_overflow" example:"false"`
	Goal       int64  `json:"goal" binding:"min=0" example:"50000"`
	Increment  int64  `json:"increment" binding:"min=0" example:"2500"`
	NoLimit    bool   `json:"no_limit" example:"false"`
}

func (e MoneyboxEditable) model() ledger.MoneyboxCreate {
	return ledger.MoneyboxCreate{
		Name:       e.Name,
		IsOverflow: e.IsOverflow,
		Goal:       e.Goal,
		Increment:  e.Increment,
		NoLimit:    e.NoLimit,
	}
}

// MoneyboxPatch are the fields of a moneybox that can be updated. Fields
// that are not sent are not changed.
type MoneyboxPatch struct {
	Name      *string `json:"name" example:"Vacation"`
	Priority  *int64  `json:"priority" binding:"omitempty,min=1" example:"2"`
	Goal      *int64  `json:"goal" binding:"omitempty,min=0" example:"50000"`
	Increment *int64  `json:"increment" binding:"omitempty,min=0" example:"2500"`
	NoLimit   *bool   `json:"no_limit" example:"true"`
}

func (p MoneyboxPatch) model() ledger.MoneyboxUpdate {
	return ledger.MoneyboxUpdate{
		Name:      p.Name,
		Priority:  p.Priority,
		Goal:      p.Goal,
		Increment: p.Increment,
		NoLimit:   p.NoLimit,
	}
}

type MoneyboxPriority struct {
	ID       uint  `json:"id" binding:"required,min=1" example:"3"`
	Priority int64 `json:"priority" binding:"required,min=1" example:"1"`
}

type BalanceChange struct {
	Amount      int64  `json:"amount" binding:"required,min=1" example:"1500"`
	Description string `json:"description" example:"Birthday present"`
}

type Transfer struct {
	ToMoneyboxID uint   `json:"to_moneybox_id" binding:"required,min=1" example:"4"`
	Amount       int64  `json:"amount" binding:"required,min=1" example:"1500"`
	Description  string `json:"description" example:"Rebalancing"`
}

type SettingsEditable struct {
	SavingsAmount *int64 `json:"savings_amount" binding:"required,min=0" example:"10000"`
	SavingsCycle  string `json:"savings_cycle" binding:"required,oneof=daily weekly monthly yearly" example:"monthly"`
	SavingsMode   string `json:"savings_mode" binding:"required,oneof=add-up fill-envelopes collect" example:"add-up"`
}

func (e SettingsEditable) model() models.Settings {
	return models.Settings{
		SavingsAmount: *e.SavingsAmount,
		SavingsCycle:  models.SavingsCycle(e.SavingsCycle),
		SavingsMode:   models.SavingsMode(e.SavingsMode),
	}
}

type SettingsPatch struct {
	SavingsAmount *int64  `json:"savings_amount" binding:"omitempty,min=0" example:"10000"`
	SavingsCycle  *string `json:"savings_cycle" binding:"omitempty,oneof=daily weekly monthly yearly" example:"weekly"`
	SavingsMode   *string `json:"savings_mode" binding:"omitempty,oneof=add-up fill-envelopes collect" example:"collect"`
}

func (p SettingsPatch) model() ledger.SettingsUpdate {
	update := ledger.SettingsUpdate{SavingsAmount: p.SavingsAmount}

	if p.SavingsCycle != nil {
		cycle := models.SavingsCycle(*p.SavingsCycle)
		update.SavingsCycle = &cycle
	}

	if p.SavingsMode != nil {
		mode := models.SavingsMode(*p.SavingsMode)
		update.SavingsMode = &mode
	}

	return update
}

type DistributionRequest struct {
	Mode string `json:"mode" binding:"omitempty,oneof=add-up fill-envelopes collect" example:"fill-envelopes"` // Savings mode to use instead of the configured one
}

type MoneyboxResponse struct {
	Data  *models.Moneybox `json:"data"`                                                        // Data for the moneybox
	Error *string          `json:"error" example:"there is no active moneybox with this ID: 12"` // The error, if any occurred
}

type MoneyboxListResponse struct {
	Data  []models.Moneybox `json:"data"`                                                    // List of moneyboxes
	Error *string           `json:"error" example:"the database is currently not available"` // The error, if any occurred
	Total int               `json:"total" example:"4"`                                       // Number of moneyboxes in the list
}

type TransactionListResponse struct {
	Data  []models.Transaction `json:"data"`                                                        // List of transactions, oldest first
	Error *string              `json:"error" example:"there is no active moneybox with this ID: 12"` // The error, if any occurred
	Total int                  `json:"total" example:"27"`                                          // Number of transactions in the list
}

type SettingsResponse struct {
	Data  *models.Settings `json:"data"`                                  // The distribution settings
	Error *string          `json:"error" example:"there are no settings"` // The error, if any occurred
}

type DistributionResponse struct {
	Data  *distribution.Run `json:"data"`                                          // The finished distribution run
	Error *string           `json:"error" example:"there is no overflow moneybox"` // The error, if any occurred
}
