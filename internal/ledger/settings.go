package ledger

import (
	"context"
	"errors"

	"github.com/moneybox-io/backend/internal/models"
)

// SettingsUpdate holds the settings to change. Nil fields are left unchanged.
type SettingsUpdate struct {
	SavingsAmount *int64
	SavingsCycle  *models.SavingsCycle
	SavingsMode   *models.SavingsMode
}

// Settings returns the distribution settings.
func (l *Ledger) Settings(ctx context.Context) (models.Settings, error) {
	var settings models.Settings
	err := l.db.WithContext(ctx).Where("id = ?", models.SettingsID).First(&settings).Error
	if errors.Is(err, models.ErrResourceNotFound) {
		return models.Settings{}, models.ErrSettingsMissing
	} else if err != nil {
		return models.Settings{}, err
	}

	return settings, nil
}

// CreateSettings stores the settings. They can only be created once.
func (l *Ledger) CreateSettings(ctx context.Context, settings models.Settings) (models.Settings, error) {
	err := settings.Validate()
	if err != nil {
		return models.Settings{}, err
	}

	err = l.db.WithContext(ctx).Create(&settings).Error
	if err != nil {
		return models.Settings{}, err
	}

	return settings, nil
}

// UpdateSettings changes the existing settings.
func (l *Ledger) UpdateSettings(ctx context.Context, update SettingsUpdate) (settings models.Settings, err error) {
	err = l.Atomic(ctx, func(tx *Ledger) error {
		settings, err = tx.Settings(ctx)
		if err != nil {
			return err
		}

		if update.SavingsAmount != nil {
			settings.SavingsAmount = *update.SavingsAmount
		}

		if update.SavingsCycle != nil {
			settings.SavingsCycle = *update.SavingsCycle
		}

		if update.SavingsMode != nil {
			settings.SavingsMode = *update.SavingsMode
		}

		err = settings.Validate()
		if err != nil {
			return err
		}

		err = tx.db.WithContext(ctx).Model(&settings).Updates(map[string]any{
			"savings_amount": settings.SavingsAmount,
			"savings_cycle":  settings.SavingsCycle,
			"savings_mode":   settings.SavingsMode,
		}).Error
		if err != nil {
			return err
		}

		settings, err = tx.Settings(ctx)
		return err
	})

	return
}
