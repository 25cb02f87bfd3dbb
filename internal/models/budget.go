package models

import (
	"strings"

	"github.com/expansepro/backend/internal/types"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Budget is a monthly spending limit for one category. There is at
// most one budget per (category, month) pair.
type Budget struct {
	DefaultModel
	Category string          `json:"category" example:"Food" gorm:"uniqueIndex:budget_category_month"`
	Month    types.Month     `json:"month" example:"2024-03" gorm:"uniqueIndex:budget_category_month"`
	Limit    decimal.Decimal `json:"limit" example:"150" gorm:"type:DECIMAL(20,8)"`
}

func (b *Budget) BeforeSave(_ *gorm.DB) error {
	b.Category = strings.TrimSpace(b.Category)

	if b.Category == "" {
		return ErrTransactionNoCategory
	}

	if b.Month.IsZero() {
		return ErrTransactionNoDate
	}

	// Checked before any percentage is ever computed, so spent/limit
	// can never divide by zero further down.
	if !b.Limit.IsPositive() {
		return ErrBudgetLimitNotPositive
	}

	return nil
}
