package distribution

import (
	"fmt"
	"math"

	"github.com/moneybox-io/backend/internal/models"
)

// addUp gives every moneybox its increment in priority order. The increment
// is paid from the savings first and from the overflow moneybox once the
// savings are used up. Savings left at the end go to the overflow moneybox.
func addUp(p *plan) error {
	savings := p.savings
	if savings > math.MaxInt64-p.overflow.Balance {
		return fmt.Errorf("%w: savings of %d exceed what the overflow moneybox can hold", models.ErrInvalidAmount, savings)
	}

	pool := savings + p.overflow.Balance
	if pool <= 0 {
		return nil
	}

	for i := range p.moneyboxes {
		moneybox := &p.moneyboxes[i]

		amount := allocation(*moneybox, pool)
		if amount > 0 {
			fromSavings := min(amount, savings)
			if fromSavings > 0 {
				err := p.credit(moneybox, fromSavings)
				if err != nil {
					return err
				}
				savings -= fromSavings
			}

			if fromOverflow := amount - fromSavings; fromOverflow > 0 {
				err := p.fromOverflow(moneybox, fromOverflow)
				if err != nil {
					return err
				}
			}

			pool -= amount
		}

		if pool <= 0 {
			break
		}
	}

	if savings > 0 {
		return p.credit(&p.overflow, savings)
	}

	return nil
}

// fillEnvelopes first gives every moneybox its increment from the savings
// and puts the rest into the overflow moneybox. Then it fills limited
// moneyboxes up to their goal from the overflow moneybox.
func fillEnvelopes(p *plan) error {
	if p.savings > 0 {
		remaining := p.savings
		for i := range p.moneyboxes {
			moneybox := &p.moneyboxes[i]

			if amount := allocation(*moneybox, remaining); amount > 0 {
				err := p.credit(moneybox, amount)
				if err != nil {
					return err
				}
				remaining -= amount
			}

			if remaining <= 0 {
				break
			}
		}

		if remaining > 0 {
			err := p.credit(&p.overflow, remaining)
			if err != nil {
				return err
			}
		}
	}

	if p.overflow.Balance <= 0 {
		return nil
	}

	for i := range p.moneyboxes {
		moneybox := &p.moneyboxes[i]
		if moneybox.NoLimit {
			continue
		}

		if amount := min(p.overflow.Balance, moneybox.Goal-moneybox.Balance); amount > 0 {
			err := p.fromOverflow(moneybox, amount)
			if err != nil {
				return err
			}
		}

		if p.overflow.Balance <= 0 {
			break
		}
	}

	return nil
}

// collect puts all savings into the overflow moneybox.
func collect(p *plan) error {
	if p.savings > 0 {
		return p.credit(&p.overflow, p.savings)
	}

	return nil
}
