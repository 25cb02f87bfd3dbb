package models

import (
	"strings"

	"github.com/expansepro/backend/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Transaction is a single dated income or expense entry. Positive
// amounts are income, negative amounts are expenses. Instances that
// were materialized from a RecurringTemplate reference it through
// RecurringTemplateID.
type Transaction struct {
	DefaultModel
	Description         string          `json:"description" example:"Lunch"`
	Amount              decimal.Decimal `json:"amount" example:"-14.03" gorm:"type:DECIMAL(20,8)"`
	Date                types.Day       `json:"date" example:"2024-03-10"`
	Category            string          `json:"category" example:"Food"` // Category label, referenced by value
	RecurringTemplateID *uuid.UUID      `json:"recurringTemplateId"`     // Set for materialized recurring instances
}

func (t *Transaction) BeforeSave(_ *gorm.DB) error {
	t.Description = strings.TrimSpace(t.Description)
	t.Category = strings.TrimSpace(t.Category)

	if t.Description == "" {
		return ErrTransactionNoDescription
	}

	if t.Date.IsZero() {
		return ErrTransactionNoDate
	}

	if t.Category == "" {
		return ErrTransactionNoCategory
	}

	if t.Amount.IsZero() {
		return ErrTransactionAmountZero
	}

	return nil
}
