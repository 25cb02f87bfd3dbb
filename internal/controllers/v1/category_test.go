package v1_test

import (
	"net/http"
	"testing"

	v1 "github.com/expansepro/backend/internal/controllers/v1"
	"github.com/expansepro/backend/internal/models"
	"github.com/expansepro/backend/test"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestCategoryListContainsDefaults() {
	r := test.Request(suite.T(), suite.router, http.MethodGet, "http://example.com/v1/categories", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var names []string
	test.DecodeResponse(suite.T(), &r, &names)

	suite.Assert().Len(names, len(models.DefaultCategories))
	for _, name := range models.DefaultCategories {
		suite.Assert().Contains(names, name)
	}

	// Sorted alphabetically
	suite.Assert().Equal("Education", names[0])
}

func (suite *TestSuiteStandard) TestCategoryCreate() {
	r := test.Request(suite.T(), suite.router, http.MethodPost, "http://example.com/v1/categories", v1.CategoryEditable{Name: "Books"})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusCreated)

	var category models.Category
	test.DecodeResponse(suite.T(), &r, &category)
	suite.Assert().False(category.Protected)

	// Duplicate names are rejected
	r = test.Request(suite.T(), suite.router, http.MethodPost, "http://example.com/v1/categories", v1.CategoryEditable{Name: "Books"})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	// So are empty ones
	r = test.Request(suite.T(), suite.router, http.MethodPost, "http://example.com/v1/categories", v1.CategoryEditable{Name: "  "})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestCategoryDelete() {
	r := test.Request(suite.T(), suite.router, http.MethodPost, "http://example.com/v1/categories", v1.CategoryEditable{Name: "Books"})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusCreated)

	r = test.Request(suite.T(), suite.router, http.MethodDelete, "http://example.com/v1/categories/Books", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = test.Request(suite.T(), suite.router, http.MethodDelete, "http://example.com/v1/categories/Books", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestCategoryDeleteProtected() {
	r := test.Request(suite.T(), suite.router, http.MethodDelete, "http://example.com/v1/categories/Food", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	// The category is still there
	names, err := models.CategoryNames(models.DB)
	suite.Require().NoError(err)
	suite.Assert().Contains(names, "Food")
}

func (suite *TestSuiteStandard) TestCategorySuggest() {
	tests := []struct {
		description string
		category    string
	}{
		{"Coffee with Ana", "Food"},
		{"UBER home", "Transport"},
		{"Monthly rent", "Rent"},
		{"Netflix subscription", "Entertainment"},
		{"Something else entirely", "Other"},
	}

	for _, tt := range tests {
		suite.T().Run(tt.description, func(t *testing.T) {
			r := test.Request(t, suite.router, http.MethodGet, "http://example.com/v1/categories/suggest?description="+tt.description, nil)
			test.AssertHTTPStatus(t, &r, http.StatusOK)

			var suggestion v1.SuggestionResponse
			test.DecodeResponse(t, &r, &suggestion)
			assert.Equal(t, tt.category, suggestion.Category)
		})
	}
}

func (suite *TestSuiteStandard) TestCategorySuggestNoDescription() {
	r := test.Request(suite.T(), suite.router, http.MethodGet, "http://example.com/v1/categories/suggest", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}
