package models

import (
	"strings"

	"github.com/expansepro/backend/internal/types"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Recurrence is the interval at which a RecurringTemplate repeats.
type Recurrence string

const (
	RecurrenceWeekly  Recurrence = "weekly"
	RecurrenceMonthly Recurrence = "monthly"
)

// RecurringTemplate describes a transaction that repeats on a fixed
// schedule between StartDate and EndDate. LastGeneratedDate is the
// materialization cursor: the latest date up to which instances have
// been generated. It never moves backwards and never precedes
// StartDate.
type RecurringTemplate struct {
	DefaultModel
	Description       string          `json:"description" example:"Rent"`
	Amount            decimal.Decimal `json:"amount" example:"-850" gorm:"type:DECIMAL(20,8)"`
	Category          string          `json:"category" example:"Rent"`
	Recurrence        Recurrence      `json:"recurrence" example:"monthly"`
	StartDate         types.Day       `json:"startDate" example:"2024-01-31"`
	EndDate           types.Day       `json:"endDate" example:"2024-12-31"`
	LastGeneratedDate types.Day       `json:"lastGeneratedDate" example:"2024-04-15"`
}

func (t *RecurringTemplate) BeforeSave(_ *gorm.DB) error {
	t.Description = strings.TrimSpace(t.Description)
	t.Category = strings.TrimSpace(t.Category)

	if t.Description == "" {
		return ErrTransactionNoDescription
	}

	if t.Category == "" {
		return ErrTransactionNoCategory
	}

	if t.Amount.IsZero() {
		return ErrTransactionAmountZero
	}

	if t.StartDate.IsZero() || t.EndDate.IsZero() {
		return ErrTransactionNoDate
	}

	if t.Recurrence != RecurrenceWeekly && t.Recurrence != RecurrenceMonthly {
		return ErrTemplateNoRecurrence
	}

	if t.EndDate.Before(t.StartDate) {
		return ErrTemplateEndBeforeStart
	}

	// The cursor starts at the first occurrence and never precedes it.
	if t.LastGeneratedDate.Before(t.StartDate) {
		t.LastGeneratedDate = t.StartDate
	}

	return nil
}

// AfterDelete removes all transactions that were materialized from
// this template. Deleting a template always cascades.
func (t *RecurringTemplate) AfterDelete(tx *gorm.DB) error {
	return tx.Where("recurring_template_id = ?", t.ID).Delete(&Transaction{}).Error
}
