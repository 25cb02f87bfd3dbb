package v1_test

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"strings"

	v1 "github.com/expansepro/backend/internal/controllers/v1"
	"github.com/expansepro/backend/internal/models"
	"github.com/expansepro/backend/test"
	"github.com/shopspring/decimal"
)

// multipartFile builds a multipart body with a single form file named
// "file" and returns the body and content type.
func (suite *TestSuiteStandard) multipartFile(name, content string) (string, string) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", name)
	suite.Require().NoError(err)

	_, err = part.Write([]byte(content))
	suite.Require().NoError(err)
	suite.Require().NoError(writer.Close())

	return body.String(), writer.FormDataContentType()
}

func (suite *TestSuiteStandard) TestExport() {
	suite.createTestTransaction(v1.TransactionEditable{Description: "Coffee, black", Amount: decimal.NewFromFloat(-3.5), Date: day("2024-03-10"), Category: "Food"})

	r := test.Request(suite.T(), suite.router, http.MethodGet, "http://example.com/v1/export", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	suite.Assert().Contains(r.Header().Get("Content-Disposition"), "expansepro-export.csv")

	lines := strings.Split(strings.TrimRight(r.Body.String(), "\n"), "\n")
	suite.Require().Len(lines, 2)
	suite.Assert().Equal("Date,Description,Amount,Category,RecurrenceType,RecurrenceEndDate,IsRecurringInstance", lines[0])
	suite.Assert().Equal(`2024-03-10,"Coffee, black",-3.50,Food,,,No`, lines[1])
}

func (suite *TestSuiteStandard) TestImport() {
	csv := strings.Join([]string{
		"Date,Description,Amount,Category,RecurrenceType,RecurrenceEndDate,IsRecurringInstance",
		"2024-03-10,Groceries,-20.00,Food,,,No",
		"2024-03-11,Comic books,-12.00,Comics,,,No",
		"2024-03-12,,-5.00,Food,,,No",
	}, "\n")

	body, contentType := suite.multipartFile("backup.csv", csv)

	r := test.Request(suite.T(), suite.router, http.MethodPost, "http://example.com/v1/import", body, map[string]string{"Content-Type": contentType})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusCreated)

	var response v1.ImportResponse
	test.DecodeResponse(suite.T(), &r, &response)

	suite.Assert().Equal(2, response.Transactions)
	suite.Assert().Zero(response.Templates)
	suite.Assert().Len(response.Warnings, 1)

	// The unknown category from the file now exists
	names, err := models.CategoryNames(models.DB)
	suite.Require().NoError(err)
	suite.Assert().Contains(names, "Comics")

	var count int64
	suite.Require().NoError(models.DB.Model(&models.Transaction{}).Count(&count).Error)
	suite.Assert().EqualValues(2, count)
}

func (suite *TestSuiteStandard) TestImportTemplate() {
	csv := strings.Join([]string{
		"Date,Description,Amount,Category,RecurrenceType,RecurrenceEndDate,IsRecurringInstance",
		"2024-01-01,Rent,-800.00,Rent,monthly,2024-02-01,Template",
	}, "\n")

	body, contentType := suite.multipartFile("backup.csv", csv)

	r := test.Request(suite.T(), suite.router, http.MethodPost, "http://example.com/v1/import", body, map[string]string{"Content-Type": contentType})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusCreated)

	var response v1.ImportResponse
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().Equal(1, response.Templates)

	// The template's schedule ended in the past, so both occurrences
	// were materialized right away
	var count int64
	suite.Require().NoError(models.DB.Model(&models.Transaction{}).Where("recurring_template_id IS NOT NULL").Count(&count).Error)
	suite.Assert().EqualValues(2, count)
}

func (suite *TestSuiteStandard) TestImportRejectsBadUploads() {
	// Not a CSV file
	body, contentType := suite.multipartFile("backup.pdf", "not a csv")
	r := test.Request(suite.T(), suite.router, http.MethodPost, "http://example.com/v1/import", body, map[string]string{"Content-Type": contentType})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	// No file at all
	r = test.Request(suite.T(), suite.router, http.MethodPost, "http://example.com/v1/import", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	// Wrong header
	body, contentType = suite.multipartFile("backup.csv", "Datum,Betrag\n")
	r = test.Request(suite.T(), suite.router, http.MethodPost, "http://example.com/v1/import", body, map[string]string{"Content-Type": contentType})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}
