package models_test

import (
	"github.com/expansepro/backend/internal/models"
	"github.com/expansepro/backend/internal/types"
	"github.com/shopspring/decimal"
)

func testTemplate() models.RecurringTemplate {
	return models.RecurringTemplate{
		Description: "Rent",
		Amount:      decimal.NewFromInt(-800),
		Category:    "Rent",
		Recurrence:  models.RecurrenceMonthly,
		StartDate:   types.NewDay(2024, 1, 31),
		EndDate:     types.NewDay(2024, 12, 31),
	}
}

func (suite *TestSuiteStandard) TestTemplateCursorClampedToStart() {
	template := testTemplate()
	suite.Require().NoError(models.DB.Create(&template).Error)

	// A fresh template's cursor starts at the first occurrence
	suite.Assert().True(template.LastGeneratedDate.Equal(template.StartDate))

	// It cannot be pushed before the start date
	template.LastGeneratedDate = types.NewDay(2023, 1, 1)
	suite.Require().NoError(models.DB.Save(&template).Error)
	suite.Assert().True(template.LastGeneratedDate.Equal(template.StartDate))
}

func (suite *TestSuiteStandard) TestTemplateValidation() {
	tests := []struct {
		name   string
		modify func(*models.RecurringTemplate)
		err    error
	}{
		{"no recurrence", func(t *models.RecurringTemplate) { t.Recurrence = "" }, models.ErrTemplateNoRecurrence},
		{"unknown recurrence", func(t *models.RecurringTemplate) { t.Recurrence = "daily" }, models.ErrTemplateNoRecurrence},
		{"end before start", func(t *models.RecurringTemplate) { t.EndDate = types.NewDay(2023, 12, 31) }, models.ErrTemplateEndBeforeStart},
		{"no start", func(t *models.RecurringTemplate) { t.StartDate = types.Day{} }, models.ErrTransactionNoDate},
	}

	for _, tt := range tests {
		template := testTemplate()
		tt.modify(&template)

		err := models.DB.Create(&template).Error
		suite.Assert().ErrorIs(err, tt.err, tt.name)
	}
}

func (suite *TestSuiteStandard) TestTemplateDeleteCascades() {
	template := testTemplate()
	suite.Require().NoError(models.DB.Create(&template).Error)

	instance := testTransaction()
	instance.RecurringTemplateID = &template.ID
	suite.Require().NoError(models.DB.Create(&instance).Error)

	unrelated := testTransaction()
	suite.Require().NoError(models.DB.Create(&unrelated).Error)

	suite.Require().NoError(models.DB.Delete(&template).Error)

	var count int64
	suite.Require().NoError(models.DB.Model(&models.Transaction{}).Count(&count).Error)
	suite.Assert().EqualValues(1, count)

	err := models.DB.First(&models.Transaction{}, instance.ID).Error
	suite.Assert().ErrorIs(err, models.ErrResourceNotFound)
}
