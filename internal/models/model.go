package models

import (
	"time"

	"gorm.io/gorm"
)

// DefaultModel is the base model for moneyboxes and transactions.
type DefaultModel struct {
	ID        uint      `json:"id" gorm:"primaryKey" example:"12"`
	CreatedAt time.Time `json:"created_at" example:"2024-04-02T19:28:44.491514Z"`
}

// AfterFind updates the timestamps to use UTC as
// timezone, not +0000. Yes, this is different.
//
// We already store them in UTC, but somehow reading
// them from the database returns them as +0000.
func (m *DefaultModel) AfterFind(_ *gorm.DB) error {
	m.CreatedAt = m.CreatedAt.In(time.UTC)
	return nil
}
