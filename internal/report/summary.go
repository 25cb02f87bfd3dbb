// Package report computes read-only summaries over transaction sets:
// period aggregates, rolling expense trends and budget progress.
package report

import (
	"github.com/expansepro/backend/internal/models"
	"github.com/shopspring/decimal"
)

// NoTopCategory is returned as the top category when the set contains
// no expenses.
const NoTopCategory = "N/A"

// Summary aggregates a transaction set. All amounts are unrounded;
// rounding to two places happens at the API boundary only.
type Summary struct {
	TotalIncome      decimal.Decimal            `json:"totalIncome" example:"500"`
	TotalExpenses    decimal.Decimal            `json:"totalExpenses" example:"200"` // Sum of expense magnitudes, always >= 0
	NetBalance       decimal.Decimal            `json:"netBalance" example:"300"`    // TotalIncome - TotalExpenses
	CategoryExpenses map[string]decimal.Decimal `json:"categoryExpenses"`            // Expense magnitude per category
	TopCategory      string                     `json:"topCategory" example:"Food"`  // Category with the highest expenses, "N/A" if none
	DailyIncome      map[string]decimal.Decimal `json:"dailyIncome"`                 // Income per day, keyed YYYY-MM-DD
	DailyExpenses    map[string]decimal.Decimal `json:"dailyExpenses"`               // Expenses per day, keyed YYYY-MM-DD
	MonthlyIncome    map[string]decimal.Decimal `json:"monthlyIncome"`               // Income per month, keyed YYYY-MM
	MonthlyExpenses  map[string]decimal.Decimal `json:"monthlyExpenses"`             // Expenses per month, keyed YYYY-MM
}

// Summarize aggregates the transactions it is given. Callers filter
// the set to the period they are interested in beforehand.
//
// Ties for the top category go to the category encountered first in
// transaction order.
func Summarize(transactions []models.Transaction) Summary {
	summary := Summary{
		CategoryExpenses: make(map[string]decimal.Decimal),
		DailyIncome:      make(map[string]decimal.Decimal),
		DailyExpenses:    make(map[string]decimal.Decimal),
		MonthlyIncome:    make(map[string]decimal.Decimal),
		MonthlyExpenses:  make(map[string]decimal.Decimal),
	}

	// Map iteration order is randomized, so the first-encountered
	// order needed for tie-breaking is tracked explicitly.
	var categoryOrder []string

	for _, t := range transactions {
		amount := t.Amount.Abs()
		category := t.Category
		if category == "" {
			category = "Other"
		}

		day := t.Date.String()
		month := t.Date.Month().String()

		if t.Amount.IsPositive() {
			summary.TotalIncome = summary.TotalIncome.Add(amount)
			summary.DailyIncome[day] = summary.DailyIncome[day].Add(amount)
			summary.MonthlyIncome[month] = summary.MonthlyIncome[month].Add(amount)
			continue
		}

		summary.TotalExpenses = summary.TotalExpenses.Add(amount)
		summary.DailyExpenses[day] = summary.DailyExpenses[day].Add(amount)
		summary.MonthlyExpenses[month] = summary.MonthlyExpenses[month].Add(amount)

		if _, ok := summary.CategoryExpenses[category]; !ok {
			categoryOrder = append(categoryOrder, category)
		}
		summary.CategoryExpenses[category] = summary.CategoryExpenses[category].Add(amount)
	}

	summary.NetBalance = summary.TotalIncome.Sub(summary.TotalExpenses)

	summary.TopCategory = NoTopCategory
	max := decimal.Zero
	for _, category := range categoryOrder {
		if summary.CategoryExpenses[category].GreaterThan(max) {
			max = summary.CategoryExpenses[category]
			summary.TopCategory = category
		}
	}

	return summary
}
