package v1

import (
	"net/http"
	"strconv"
	"time"

	"github.com/expansepro/backend/internal/httputil"
	"github.com/expansepro/backend/internal/models"
	"github.com/expansepro/backend/internal/report"
	"github.com/expansepro/backend/internal/types"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// RegisterAnalyticsRoutes registers the read-only reporting routes
// with the RouterGroup that is passed.
func RegisterAnalyticsRoutes(r *gin.RouterGroup) {
	r.OPTIONS("/day", httputil.OptionsGet)
	r.GET("/day", GetDaySummary)

	r.OPTIONS("/month", httputil.OptionsGet)
	r.GET("/month", GetMonthSummary)

	r.OPTIONS("/year", httputil.OptionsGet)
	r.GET("/year", GetYearSummary)

	r.OPTIONS("/trends", httputil.OptionsGet)
	r.GET("/trends", GetTrends)
}

// @Summary		Daily summary
// @Description	Aggregates all transactions of one day
// @Tags			Analytics
// @Produce		json
// @Success		200		{object}	report.Summary
// @Failure		400		{object}	httpError
// @Failure		500		{object}	httpError
// @Param			date	query		string	false	"Day in YYYY-MM-DD format, defaults to today"
// @Router			/v1/analytics/day [get]
func GetDaySummary(c *gin.Context) {
	day := types.DayOf(time.Now())

	if raw, ok := c.GetQuery("date"); ok {
		var err error
		day, err = types.ParseDay(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, httpError{Error: httputil.ErrInvalidDate.Error()})
			return
		}
	}

	transactions, err := models.TransactionsForDay(models.DB, day)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, roundSummary(report.Summarize(transactions)))
}

// @Summary		Monthly summary
// @Description	Aggregates all transactions of one month
// @Tags			Analytics
// @Produce		json
// @Success		200		{object}	report.Summary
// @Failure		400		{object}	httpError
// @Failure		500		{object}	httpError
// @Param			month	query		string	false	"Month in YYYY-MM format, defaults to the current month"
// @Router			/v1/analytics/month [get]
func GetMonthSummary(c *gin.Context) {
	month := types.MonthOf(time.Now())

	if raw, ok := c.GetQuery("month"); ok {
		var err error
		month, err = types.ParseMonth(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, httpError{Error: httputil.ErrInvalidMonth.Error()})
			return
		}
	}

	transactions, err := models.TransactionsForMonth(models.DB, month)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, roundSummary(report.Summarize(transactions)))
}

// @Summary		Yearly summary
// @Description	Aggregates all transactions of one year
// @Tags			Analytics
// @Produce		json
// @Success		200		{object}	report.Summary
// @Failure		400		{object}	httpError
// @Failure		500		{object}	httpError
// @Param			year	query		int	false	"Year, defaults to the current year"
// @Router			/v1/analytics/year [get]
func GetYearSummary(c *gin.Context) {
	year := time.Now().Year()

	if raw, ok := c.GetQuery("year"); ok {
		var err error
		year, err = strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, httpError{Error: "the year needs to be a number"})
			return
		}
	}

	transactions, err := models.TransactionsForYear(models.DB, year)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, roundSummary(report.Summarize(transactions)))
}

// @Summary		Expense trends
// @Description	Returns the expense series for a rolling range of months
// @Tags			Analytics
// @Produce		json
// @Success		200		{object}	report.Trend
// @Failure		400		{object}	httpError
// @Failure		500		{object}	httpError
// @Param			period	query		string	false	"One of last6months, last12months, alltime. Defaults to last6months."
// @Router			/v1/analytics/trends [get]
func GetTrends(c *gin.Context) {
	period := report.PeriodLast6Months
	if raw, ok := c.GetQuery("period"); ok {
		period = report.Period(raw)
	}

	transactions, err := models.AllTransactions(models.DB)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	trend, err := report.ExpenseTrend(transactions, period, types.DayOf(time.Now()))
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	trend.MonthlyExpenses = roundMap(trend.MonthlyExpenses)
	trend.CategoryExpenses = roundMap(trend.CategoryExpenses)

	c.JSON(http.StatusOK, trend)
}

// roundSummary rounds all amounts to two places for the API. The
// aggregation itself works on unrounded values.
func roundSummary(summary report.Summary) report.Summary {
	summary.TotalIncome = summary.TotalIncome.Round(2)
	summary.TotalExpenses = summary.TotalExpenses.Round(2)
	summary.NetBalance = summary.NetBalance.Round(2)
	summary.CategoryExpenses = roundMap(summary.CategoryExpenses)
	summary.DailyIncome = roundMap(summary.DailyIncome)
	summary.DailyExpenses = roundMap(summary.DailyExpenses)
	summary.MonthlyIncome = roundMap(summary.MonthlyIncome)
	summary.MonthlyExpenses = roundMap(summary.MonthlyExpenses)
	return summary
}

func roundMap(amounts map[string]decimal.Decimal) map[string]decimal.Decimal {
	rounded := make(map[string]decimal.Decimal, len(amounts))
	for key, amount := range amounts {
		rounded[key] = amount.Round(2)
	}
	return rounded
}
