package report

import (
	"errors"

	"github.com/expansepro/backend/internal/models"
	"github.com/expansepro/backend/internal/types"
	"github.com/shopspring/decimal"
)

// Period is a rolling chart range anchored at today.
type Period string

const (
	PeriodLast6Months  Period = "last6months"
	PeriodLast12Months Period = "last12months"
	PeriodAllTime      Period = "alltime"
)

var ErrUnknownPeriod = errors.New("the period must be one of last6months, last12months or alltime")

// Trend is the expense series for a rolling range: one bucket per
// month between the range start and today, plus category totals over
// the whole range.
type Trend struct {
	Months           []string                   `json:"months"`           // All month keys in the range, oldest first
	MonthlyExpenses  map[string]decimal.Decimal `json:"monthlyExpenses"`  // Expense magnitude per month, keyed YYYY-MM
	CategoryExpenses map[string]decimal.Decimal `json:"categoryExpenses"` // Expense magnitude per category over the range
}

// ExpenseTrend computes the expense trend over the given period.
// Unlike the period summaries this uses real calendar range
// comparison: a transaction is included iff its date falls within
// [range start, today].
func ExpenseTrend(transactions []models.Transaction, period Period, today types.Day) (Trend, error) {
	var start types.Day

	switch period {
	case PeriodLast6Months:
		start = today.Month().AddDate(0, -5).First()
	case PeriodLast12Months:
		start = today.Month().AddDate(-1, 1).First()
	case PeriodAllTime:
		start = today.Month().First()
		for _, t := range transactions {
			if t.Date.Before(start) {
				start = t.Date.Month().First()
			}
		}
	default:
		return Trend{}, ErrUnknownPeriod
	}

	trend := Trend{
		MonthlyExpenses:  make(map[string]decimal.Decimal),
		CategoryExpenses: make(map[string]decimal.Decimal),
	}

	for _, t := range transactions {
		if !t.Amount.IsNegative() || t.Date.Before(start) || t.Date.After(today) {
			continue
		}

		amount := t.Amount.Abs()
		month := t.Date.Month().String()

		trend.MonthlyExpenses[month] = trend.MonthlyExpenses[month].Add(amount)

		category := t.Category
		if category == "" {
			category = "Other"
		}
		trend.CategoryExpenses[category] = trend.CategoryExpenses[category].Add(amount)
	}

	last := today.Month()
	for month := start.Month(); !month.After(last); month = month.AddDate(0, 1) {
		trend.Months = append(trend.Months, month.String())
	}

	return trend, nil
}
