package report

import (
	"github.com/expansepro/backend/internal/models"
	"github.com/shopspring/decimal"
)

// Tier classifies how much of a budget is used up.
type Tier string

const (
	TierGreen  Tier = "green"  // below 75 %
	TierYellow Tier = "yellow" // 75 % up to but excluding 100 %
	TierRed    Tier = "red"    // 100 % and above
)

var (
	tierYellowThreshold = decimal.NewFromInt(75)
	tierRedThreshold    = decimal.NewFromInt(100)
	oneHundred          = decimal.NewFromInt(100)
)

// BudgetProgress is the evaluation of one budget against a
// transaction set.
type BudgetProgress struct {
	Spent      decimal.Decimal `json:"spent" example:"200"`           // Expense magnitude in the budget's category and month
	Remaining  decimal.Decimal `json:"remaining" example:"-50"`       // Limit - Spent, negative when overspent
	Percentage decimal.Decimal `json:"percentage" example:"133.33"`   // Uncapped ratio of Spent to Limit in percent
	Tier       Tier            `json:"tier" example:"red" enums:"green,yellow,red"`
}

// Progress evaluates a budget against the transactions it is given.
// Budgets with a non-positive limit are rejected before any ratio is
// computed.
func Progress(budget models.Budget, transactions []models.Transaction) (BudgetProgress, error) {
	if !budget.Limit.IsPositive() {
		return BudgetProgress{}, models.ErrBudgetLimitNotPositive
	}

	spent := decimal.Zero
	for _, t := range transactions {
		if t.Amount.IsNegative() && t.Category == budget.Category && budget.Month.Contains(t.Date) {
			spent = spent.Add(t.Amount.Abs())
		}
	}

	percentage := spent.Div(budget.Limit).Mul(oneHundred)

	tier := TierGreen
	switch {
	case percentage.GreaterThanOrEqual(tierRedThreshold):
		tier = TierRed
	case percentage.GreaterThanOrEqual(tierYellowThreshold):
		tier = TierYellow
	}

	return BudgetProgress{
		Spent:      spent,
		Remaining:  budget.Limit.Sub(spent),
		Percentage: percentage,
		Tier:       tier,
	}, nil
}

// CappedPercentage returns the percentage clamped to 100 for display,
// e.g. for progress bars. The uncapped value stays available in
// Percentage.
func (p BudgetProgress) CappedPercentage() decimal.Decimal {
	if p.Percentage.GreaterThan(oneHundred) {
		return oneHundred
	}
	return p.Percentage
}
