package models_test

import (
	"github.com/expansepro/backend/internal/models"
	"github.com/expansepro/backend/internal/types"
	"github.com/shopspring/decimal"
)

func testBudget() models.Budget {
	return models.Budget{
		Category: "Food",
		Month:    types.NewMonth(2024, 3),
		Limit:    decimal.NewFromInt(150),
	}
}

func (suite *TestSuiteStandard) TestBudgetUnique() {
	budget := testBudget()
	suite.Require().NoError(models.DB.Create(&budget).Error)

	duplicate := testBudget()
	err := models.DB.Create(&duplicate).Error
	suite.Assert().ErrorIs(err, models.ErrBudgetNotUnique)

	// Another month for the same category is fine
	other := testBudget()
	other.Month = types.NewMonth(2024, 4)
	suite.Assert().NoError(models.DB.Create(&other).Error)
}

func (suite *TestSuiteStandard) TestBudgetValidation() {
	tests := []struct {
		name   string
		modify func(*models.Budget)
		err    error
	}{
		{"no category", func(b *models.Budget) { b.Category = "" }, models.ErrTransactionNoCategory},
		{"no month", func(b *models.Budget) { b.Month = types.Month{} }, models.ErrTransactionNoDate},
		{"zero limit", func(b *models.Budget) { b.Limit = decimal.Zero }, models.ErrBudgetLimitNotPositive},
		{"negative limit", func(b *models.Budget) { b.Limit = decimal.NewFromInt(-10) }, models.ErrBudgetLimitNotPositive},
	}

	for _, tt := range tests {
		budget := testBudget()
		tt.modify(&budget)

		err := models.DB.Create(&budget).Error
		suite.Assert().ErrorIs(err, tt.err, tt.name)
	}
}
