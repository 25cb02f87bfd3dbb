package v1_test

import (
	"net/http"
	"time"

	v1 "github.com/expansepro/backend/internal/controllers/v1"
	"github.com/expansepro/backend/internal/report"
	"github.com/expansepro/backend/internal/types"
	"github.com/expansepro/backend/test"
	"github.com/shopspring/decimal"
)

func (suite *TestSuiteStandard) TestAnalyticsMonth() {
	suite.createTestTransaction(v1.TransactionEditable{Description: "Salary", Amount: decimal.NewFromInt(500), Date: day("2024-03-05"), Category: "Salary"})
	suite.createTestTransaction(v1.TransactionEditable{Description: "Groceries", Amount: decimal.NewFromInt(-200), Date: day("2024-03-10"), Category: "Food"})
	suite.createTestTransaction(v1.TransactionEditable{Description: "Groceries", Amount: decimal.NewFromInt(-50), Date: day("2024-02-28"), Category: "Food"})

	r := test.Request(suite.T(), suite.router, http.MethodGet, "http://example.com/v1/analytics/month?month=2024-03", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var summary report.Summary
	test.DecodeResponse(suite.T(), &r, &summary)

	suite.Assert().True(summary.TotalIncome.Equal(decimal.NewFromInt(500)), "income is %s", summary.TotalIncome)
	suite.Assert().True(summary.TotalExpenses.Equal(decimal.NewFromInt(200)), "expenses are %s", summary.TotalExpenses)
	suite.Assert().True(summary.NetBalance.Equal(decimal.NewFromInt(300)), "net balance is %s", summary.NetBalance)
	suite.Assert().Equal("Food", summary.TopCategory)
}

func (suite *TestSuiteStandard) TestAnalyticsDay() {
	suite.createTestTransaction(v1.TransactionEditable{Description: "Lunch", Amount: decimal.NewFromFloat(-14.555), Date: day("2024-03-10"), Category: "Food"})
	suite.createTestTransaction(v1.TransactionEditable{Description: "Lunch", Amount: decimal.NewFromInt(-10), Date: day("2024-03-11"), Category: "Food"})

	r := test.Request(suite.T(), suite.router, http.MethodGet, "http://example.com/v1/analytics/day?date=2024-03-10", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var summary report.Summary
	test.DecodeResponse(suite.T(), &r, &summary)

	// Only the transactions of the requested day, rounded to 2 places
	suite.Assert().Equal("14.56", summary.TotalExpenses.String())
}

func (suite *TestSuiteStandard) TestAnalyticsYear() {
	suite.createTestTransaction(v1.TransactionEditable{Description: "Groceries", Amount: decimal.NewFromInt(-200), Date: day("2024-03-10"), Category: "Food"})
	suite.createTestTransaction(v1.TransactionEditable{Description: "Groceries", Amount: decimal.NewFromInt(-100), Date: day("2023-12-31"), Category: "Food"})

	r := test.Request(suite.T(), suite.router, http.MethodGet, "http://example.com/v1/analytics/year?year=2024", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var summary report.Summary
	test.DecodeResponse(suite.T(), &r, &summary)
	suite.Assert().True(summary.TotalExpenses.Equal(decimal.NewFromInt(200)), "expenses are %s", summary.TotalExpenses)

	r = test.Request(suite.T(), suite.router, http.MethodGet, "http://example.com/v1/analytics/year?year=twentytwentyfour", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestAnalyticsTrends() {
	today := types.DayOf(time.Now())
	suite.createTestTransaction(v1.TransactionEditable{Description: "Groceries", Amount: decimal.NewFromInt(-80), Date: today, Category: "Food"})

	r := test.Request(suite.T(), suite.router, http.MethodGet, "http://example.com/v1/analytics/trends?period=alltime", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var trend report.Trend
	test.DecodeResponse(suite.T(), &r, &trend)

	month := today.Month().String()
	suite.Assert().Contains(trend.Months, month)
	suite.Assert().True(trend.MonthlyExpenses[month].Equal(decimal.NewFromInt(80)), "expenses are %s", trend.MonthlyExpenses[month])
	suite.Assert().True(trend.CategoryExpenses["Food"].Equal(decimal.NewFromInt(80)))
}

func (suite *TestSuiteStandard) TestAnalyticsTrendsUnknownPeriod() {
	r := test.Request(suite.T(), suite.router, http.MethodGet, "http://example.com/v1/analytics/trends?period=lastcentury", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}
