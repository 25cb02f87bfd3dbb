package v1_test

import (
	"net/http"
	"testing"
	"time"

	v1 "github.com/expansepro/backend/internal/controllers/v1"
	"github.com/expansepro/backend/internal/models"
	"github.com/expansepro/backend/internal/types"
	"github.com/expansepro/backend/test"
	"github.com/shopspring/decimal"
)

func (suite *TestSuiteStandard) createTestTemplate(editable v1.TemplateEditable, expectedStatus ...int) v1.Template {
	if len(expectedStatus) == 0 {
		expectedStatus = append(expectedStatus, http.StatusCreated)
	}

	r := test.Request(suite.T(), suite.router, http.MethodPost, "http://example.com/v1/templates", editable)
	test.AssertHTTPStatus(suite.T(), &r, expectedStatus...)

	var template v1.Template
	if r.Code == http.StatusCreated {
		test.DecodeResponse(suite.T(), &r, &template)
	}

	return template
}

func (suite *TestSuiteStandard) TestTemplateCreateMaterializes() {
	start := types.DayOf(time.Now()).AddDays(-15)

	template := suite.createTestTemplate(v1.TemplateEditable{
		Description: "Weekly groceries",
		Amount:      decimal.NewFromInt(50),
		Category:    "Food",
		Recurrence:  models.RecurrenceWeekly,
		StartDate:   start,
		EndDate:     start.AddDays(365),
		Direction:   "expense",
	})

	// Occurrences on day 0, 7 and 14 are already due
	var instances []models.Transaction
	err := models.DB.Where("recurring_template_id = ?", template.ID).Find(&instances).Error
	suite.Require().NoError(err)
	suite.Assert().Len(instances, 3)

	for _, instance := range instances {
		suite.Assert().True(instance.Amount.Equal(decimal.NewFromInt(-50)), "amount is %s", instance.Amount)
		suite.Assert().Equal("Food", instance.Category)
	}

	// The cursor in the response reflects the materialization
	suite.Assert().True(template.LastGeneratedDate.Equal(types.DayOf(time.Now())), "cursor is %s", template.LastGeneratedDate)
}

func (suite *TestSuiteStandard) TestTemplateCreateInvalid() {
	start := day("2024-01-01")

	tests := []struct {
		name string
		body any
	}{
		{"no body", nil},
		{"no recurrence", v1.TemplateEditable{Description: "Rent", Amount: decimal.NewFromInt(800), Category: "Rent", StartDate: start, EndDate: day("2024-12-31")}},
		{"unknown recurrence", v1.TemplateEditable{Description: "Rent", Amount: decimal.NewFromInt(800), Category: "Rent", Recurrence: "daily", StartDate: start, EndDate: day("2024-12-31")}},
		{"end before start", v1.TemplateEditable{Description: "Rent", Amount: decimal.NewFromInt(800), Category: "Rent", Recurrence: models.RecurrenceMonthly, StartDate: start, EndDate: day("2023-12-31")}},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, suite.router, http.MethodPost, "http://example.com/v1/templates", tt.body)
			test.AssertHTTPStatus(t, &r, http.StatusBadRequest)
		})
	}
}

func (suite *TestSuiteStandard) TestTemplateUpdateDoesNotRetrofit() {
	start := types.DayOf(time.Now()).AddDays(-7)

	template := suite.createTestTemplate(v1.TemplateEditable{
		Description: "Subscription",
		Amount:      decimal.NewFromInt(-10),
		Category:    "Entertainment",
		Recurrence:  models.RecurrenceWeekly,
		StartDate:   start,
		EndDate:     start.AddDays(365),
	})

	r := test.Request(suite.T(), suite.router, http.MethodPatch, template.Links.Self, `{"amount": -12}`)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	// Already materialized instances keep the old amount
	var instances []models.Transaction
	err := models.DB.Where("recurring_template_id = ?", template.ID).Find(&instances).Error
	suite.Require().NoError(err)
	suite.Require().NotEmpty(instances)

	for _, instance := range instances {
		suite.Assert().True(instance.Amount.Equal(decimal.NewFromInt(-10)), "amount is %s", instance.Amount)
	}
}

func (suite *TestSuiteStandard) TestTemplateDeleteCascades() {
	start := types.DayOf(time.Now()).AddDays(-7)

	template := suite.createTestTemplate(v1.TemplateEditable{
		Description: "Subscription",
		Amount:      decimal.NewFromInt(-10),
		Category:    "Entertainment",
		Recurrence:  models.RecurrenceWeekly,
		StartDate:   start,
		EndDate:     start.AddDays(365),
	})

	// An unrelated transaction survives the cascade
	unrelated := suite.createTestTransaction(v1.TransactionEditable{
		Description: "Cinema",
		Amount:      decimal.NewFromInt(-15),
		Date:        types.DayOf(time.Now()),
		Category:    "Entertainment",
	})

	r := test.Request(suite.T(), suite.router, http.MethodDelete, template.Links.Self, nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	var count int64
	err := models.DB.Model(&models.Transaction{}).Where("recurring_template_id = ?", template.ID).Count(&count).Error
	suite.Require().NoError(err)
	suite.Assert().Zero(count)

	r = test.Request(suite.T(), suite.router, http.MethodGet, unrelated.Links.Self, nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
}

func (suite *TestSuiteStandard) TestTemplateList() {
	start := types.DayOf(time.Now())

	suite.createTestTemplate(v1.TemplateEditable{
		Description: "Rent",
		Amount:      decimal.NewFromInt(-800),
		Category:    "Rent",
		Recurrence:  models.RecurrenceMonthly,
		StartDate:   start,
		EndDate:     start.AddDays(365),
	})

	r := test.Request(suite.T(), suite.router, http.MethodGet, "http://example.com/v1/templates", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var templates []v1.Template
	test.DecodeResponse(suite.T(), &r, &templates)
	suite.Assert().Len(templates, 1)
}
