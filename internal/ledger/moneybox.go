package ledger

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/moneybox-io/backend/internal/models"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MoneyboxCreate holds the values for a new moneybox.
type MoneyboxCreate struct {
	Name       string
	IsOverflow bool
	Goal       int64
	Increment  int64
	NoLimit    bool
}

// MoneyboxUpdate holds the values to change on a moneybox. Nil fields are
// left unchanged.
type MoneyboxUpdate struct {
	Name      *string
	Priority  *int64
	Goal      *int64
	Increment *int64
	NoLimit   *bool
}

// notFound translates a missing record into ErrMoneyboxNotFound.
func notFound(err error, id uint) error {
	if errors.Is(err, models.ErrResourceNotFound) || errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: %d", models.ErrMoneyboxNotFound, id)
	}

	return err
}

func (l *Ledger) active(ctx context.Context) *gorm.DB {
	return l.db.WithContext(ctx).Where("is_active = ?", true)
}

// Moneybox returns the active moneybox with the given id.
func (l *Ledger) Moneybox(ctx context.Context, id uint) (models.Moneybox, error) {
	var moneybox models.Moneybox
	err := l.active(ctx).Where("id = ?", id).First(&moneybox).Error
	if err != nil {
		return models.Moneybox{}, notFound(err, id)
	}

	return moneybox, nil
}

// lockMoneybox reads the active moneybox with the given id and locks its
// row until the end of the database transaction.
func (l *Ledger) lockMoneybox(ctx context.Context, id uint) (models.Moneybox, error) {
	var moneybox models.Moneybox
	err := l.active(ctx).Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", id).First(&moneybox).Error
	if err != nil {
		return models.Moneybox{}, notFound(err, id)
	}

	return moneybox, nil
}

// Moneyboxes returns all active moneyboxes ordered by priority. The
// overflow moneybox has priority 0 and is therefore listed first.
func (l *Ledger) Moneyboxes(ctx context.Context) ([]models.Moneybox, error) {
	var moneyboxes []models.Moneybox
	err := l.active(ctx).Order("priority ASC, id ASC").Find(&moneyboxes).Error
	if err != nil {
		return nil, err
	}

	return moneyboxes, nil
}

// PrioritizedMoneyboxes returns all active moneyboxes except the overflow
// moneybox, ordered by ascending priority.
func (l *Ledger) PrioritizedMoneyboxes(ctx context.Context) ([]models.Moneybox, error) {
	var moneyboxes []models.Moneybox
	err := l.active(ctx).Where("is_overflow = ?", false).Order("priority ASC").Find(&moneyboxes).Error
	if err != nil {
		return nil, err
	}

	return moneyboxes, nil
}

// OverflowMoneybox returns the active overflow moneybox.
func (l *Ledger) OverflowMoneybox(ctx context.Context) (models.Moneybox, error) {
	var moneybox models.Moneybox
	err := l.active(ctx).Where("is_overflow = ?", true).First(&moneybox).Error
	if errors.Is(err, models.ErrResourceNotFound) {
		return models.Moneybox{}, models.ErrOverflowMissing
	} else if err != nil {
		return models.Moneybox{}, err
	}

	return moneybox, nil
}

// LockDistributionTargets returns the active moneyboxes ordered by ascending
// priority and the overflow moneybox. All of their rows are locked, in
// ascending id order, until the end of the atomic scope.
func (l *Ledger) LockDistributionTargets(ctx context.Context) (prioritized []models.Moneybox, overflow models.Moneybox, err error) {
	var moneyboxes []models.Moneybox
	err = l.active(ctx).Clauses(clause.Locking{Strength: "UPDATE"}).Order("id ASC").Find(&moneyboxes).Error
	if err != nil {
		return nil, models.Moneybox{}, err
	}

	var found bool
	prioritized = make([]models.Moneybox, 0, len(moneyboxes))
	for _, moneybox := range moneyboxes {
		if moneybox.IsOverflow {
			overflow, found = moneybox, true
			continue
		}
		prioritized = append(prioritized, moneybox)
	}

	if !found {
		return nil, models.Moneybox{}, models.ErrOverflowMissing
	}

	slices.SortFunc(prioritized, func(a, b models.Moneybox) int {
		return cmp.Compare(a.Priority, b.Priority)
	})

	return prioritized, overflow, nil
}

// CreateMoneybox creates a new moneybox with a zero balance.
//
// Regular moneyboxes are appended to the end of the priority list.
// The overflow moneybox always has priority 0.
func (l *Ledger) CreateMoneybox(ctx context.Context, create MoneyboxCreate) (models.Moneybox, error) {
	if create.Goal < 0 || create.Increment < 0 {
		return models.Moneybox{}, models.ErrInvalidAmount
	}

	moneybox := models.Moneybox{
		Name:       create.Name,
		IsOverflow: create.IsOverflow,
		Goal:       create.Goal,
		Increment:  create.Increment,
		NoLimit:    create.NoLimit,
		IsActive:   true,
	}

	err := l.Atomic(ctx, func(tx *Ledger) error {
		if !moneybox.IsOverflow {
			var highest int64
			err := tx.active(ctx).
				Model(&models.Moneybox{}).
				Where("is_overflow = ?", false).
				Select("COALESCE(MAX(priority), 0)").
				Scan(&highest).Error
			if err != nil {
				return err
			}
			moneybox.Priority = highest + 1
		}

		return tx.db.WithContext(ctx).Create(&moneybox).Error
	})
	if err != nil {
		return models.Moneybox{}, err
	}

	return moneybox, nil
}

// UpdateMoneybox changes the attributes of an active moneybox. The balance
// can only be changed with Add, Sub and Move.
func (l *Ledger) UpdateMoneybox(ctx context.Context, id uint, update MoneyboxUpdate) (moneybox models.Moneybox, err error) {
	changes := map[string]any{}

	if update.Name != nil {
		name := strings.TrimSpace(*update.Name)
		if name == "" {
			return models.Moneybox{}, models.ErrMoneyboxNameEmpty
		}
		changes["name"] = name
		changes["name_key"] = models.NameKey(name)
	}

	if update.Goal != nil {
		if *update.Goal < 0 {
			return models.Moneybox{}, models.ErrInvalidAmount
		}
		changes["goal"] = *update.Goal
	}

	if update.Increment != nil {
		if *update.Increment < 0 {
			return models.Moneybox{}, models.ErrInvalidAmount
		}
		changes["increment"] = *update.Increment
	}

	if update.NoLimit != nil {
		changes["no_limit"] = *update.NoLimit
	}

	if update.Priority != nil {
		if *update.Priority < 1 {
			return models.Moneybox{}, models.ErrPriorityNotPositive
		}
		changes["priority"] = *update.Priority
	}

	err = l.Atomic(ctx, func(tx *Ledger) error {
		moneybox, err = tx.lockMoneybox(ctx, id)
		if err != nil {
			return err
		}

		if moneybox.IsOverflow && update.Priority != nil {
			return models.ErrOverflowNotPrioritized
		}

		if len(changes) > 0 {
			err = tx.db.WithContext(ctx).Model(&moneybox).Updates(changes).Error
			if err != nil {
				return err
			}
		}

		moneybox, err = tx.Moneybox(ctx, id)
		return err
	})

	return
}

// UpdatePriorities assigns new priorities to several moneyboxes at once.
//
// Priorities can be swapped between moneyboxes. If the result would contain
// the same priority twice, nothing is changed.
func (l *Ledger) UpdatePriorities(ctx context.Context, priorities map[uint]int64) ([]models.Moneybox, error) {
	for _, priority := range priorities {
		if priority < 1 {
			return nil, models.ErrPriorityNotPositive
		}
	}

	// Rows are locked in ascending id order
	ids := make([]uint, 0, len(priorities))
	for id := range priorities {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	var moneyboxes []models.Moneybox
	err := l.Atomic(ctx, func(tx *Ledger) error {
		for _, id := range ids {
			moneybox, err := tx.lockMoneybox(ctx, id)
			if err != nil {
				return err
			}

			if moneybox.IsOverflow {
				return models.ErrOverflowNotPrioritized
			}

			// Move out of the way so that priorities can be swapped
			err = tx.setPriority(ctx, id, -int64(id))
			if err != nil {
				return err
			}
		}

		for _, id := range ids {
			err := tx.setPriority(ctx, id, priorities[id])
			if err != nil {
				return err
			}
		}

		var err error
		moneyboxes, err = tx.Moneyboxes(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}

	return moneyboxes, nil
}

func (l *Ledger) setPriority(ctx context.Context, id uint, priority int64) error {
	return l.db.WithContext(ctx).Model(&models.Moneybox{}).Where("id = ?", id).Update("priority", priority).Error
}

// DeactivateMoneybox removes a moneybox from the active set. Its
// transaction log is kept.
func (l *Ledger) DeactivateMoneybox(ctx context.Context, id uint) error {
	return l.Atomic(ctx, func(tx *Ledger) error {
		moneybox, err := tx.lockMoneybox(ctx, id)
		if err != nil {
			return err
		}

		if moneybox.IsOverflow {
			return models.ErrOverflowNotDeletable
		}

		if moneybox.Balance > 0 {
			return models.ErrBalanceNotZero
		}

		return tx.db.WithContext(ctx).Model(&moneybox).Updates(map[string]any{"is_active": false}).Error
	})
}
