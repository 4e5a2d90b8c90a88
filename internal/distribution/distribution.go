// Package distribution spreads the configured savings amount over the
// moneyboxes.
//
// A run reads the settings, the prioritized moneyboxes and the overflow
// moneybox, then applies one of the savings modes. All balance changes of
// a run happen in one atomic scope of the ledger.
package distribution

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/moneybox-io/backend/internal/ledger"
	"github.com/moneybox-io/backend/internal/models"
	"github.com/rs/zerolog/log"
)

// strategies maps each savings mode to its implementation.
var strategies = map[models.SavingsMode]func(*plan) error{
	models.SavingsModeAddUp:         addUp,
	models.SavingsModeFillEnvelopes: fillEnvelopes,
	models.SavingsModeCollect:       collect,
}

type Engine struct {
	ledger *ledger.Ledger
}

// Run is the result of a distribution.
type Run struct {
	ID           uuid.UUID            `json:"id" example:"65392deb-5e92-4268-b114-297faad6cdce"`
	Mode         models.SavingsMode   `json:"mode" example:"add-up"`
	Transactions []models.Transaction `json:"transactions"`
}

// New returns an Engine that books all changes on l as automatic
// distributions.
func New(l *ledger.Ledger) *Engine {
	return &Engine{ledger: l.WithOrigin(ledger.Automatic)}
}

// Run distributes the savings amount with the given mode. If mode is empty,
// the savings mode from the settings is used.
//
// On error, no balance has been changed.
func (e *Engine) Run(ctx context.Context, mode models.SavingsMode) (Run, error) {
	run := Run{ID: uuid.New(), Mode: mode}

	if mode != "" && !mode.Valid() {
		runsTotal.WithLabelValues(string(mode), "rejected").Inc()
		return run, fmt.Errorf("%w: %s", models.ErrInvalidSavingsMode, mode)
	}

	var transactions []models.Transaction
	err := e.ledger.Atomic(ctx, func(tx *ledger.Ledger) error {
		settings, err := tx.Settings(ctx)
		if err != nil {
			return err
		}

		if run.Mode == "" {
			run.Mode = settings.SavingsMode
		}

		strategy, ok := strategies[run.Mode]
		if !ok {
			return fmt.Errorf("%w: %s", models.ErrInvalidSavingsMode, run.Mode)
		}

		// Balances must not change between the allocation and the credit
		moneyboxes, overflow, err := tx.LockDistributionTargets(ctx)
		if err != nil {
			return err
		}

		p := &plan{
			ctx:         ctx,
			ledger:      tx,
			savings:     settings.SavingsAmount,
			moneyboxes:  moneyboxes,
			overflow:    overflow,
			description: fmt.Sprintf("Distribution (%s)", run.Mode),
		}

		err = strategy(p)
		if err != nil {
			return err
		}

		transactions = p.transactions
		return nil
	})

	logger := log.With().Str("run", run.ID.String()).Str("mode", string(run.Mode)).Logger()
	if err != nil {
		runsTotal.WithLabelValues(string(run.Mode), "failed").Inc()
		logger.Error().Err(err).Msg("distribution failed")
		return run, err
	}

	var credited int64
	for _, t := range transactions {
		if t.Amount > 0 {
			credited += t.Amount
		}
	}

	runsTotal.WithLabelValues(string(run.Mode), "succeeded").Inc()
	creditedTotal.WithLabelValues(string(run.Mode)).Add(float64(credited))
	logger.Info().Int("transactions", len(transactions)).Int64("credited", credited).Msg("distribution finished")

	run.Transactions = transactions
	return run, nil
}
