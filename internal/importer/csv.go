// Package importer reads and writes the CSV interchange format for
// transactions and recurring templates.
//
// The layout is one row per transaction or template with the columns
// Date, Description, Amount, Category, RecurrenceType,
// RecurrenceEndDate and IsRecurringInstance. Templates carry
// "Template" in the last column, materialized instances "Yes" and
// plain transactions "No". Quoting follows RFC 4180 (fields containing
// commas or quotes are quoted, inner quotes doubled).
package importer

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/expansepro/backend/internal/models"
	"github.com/expansepro/backend/internal/types"
	"github.com/shopspring/decimal"
)

var header = []string{"Date", "Description", "Amount", "Category", "RecurrenceType", "RecurrenceEndDate", "IsRecurringInstance"}

const (
	markerTemplate = "Template"
	markerInstance = "Yes"
	markerPlain    = "No"
)

// Export writes all transactions and templates as CSV.
func Export(w io.Writer, transactions []models.Transaction, templates []models.RecurringTemplate) error {
	writer := csv.NewWriter(w)

	err := writer.Write(header)
	if err != nil {
		return err
	}

	for _, t := range transactions {
		marker := markerPlain
		if t.RecurringTemplateID != nil {
			marker = markerInstance
		}

		err = writer.Write([]string{t.Date.String(), t.Description, t.Amount.StringFixed(2), t.Category, "", "", marker})
		if err != nil {
			return err
		}
	}

	for _, t := range templates {
		err = writer.Write([]string{t.StartDate.String(), t.Description, t.Amount.StringFixed(2), t.Category, string(t.Recurrence), t.EndDate.String(), markerTemplate})
		if err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

// Parsed is the outcome of reading an interchange file. Rows that
// could not be understood are skipped and reported as warnings, the
// rest of the file is still imported.
type Parsed struct {
	Transactions []models.Transaction
	Templates    []models.RecurringTemplate
	Categories   []string // category names seen in the file, in file order
	Warnings     []string
}

// Parse reads the interchange format. Links between instances and
// their templates are not preserved across an import since all ids
// are regenerated; instance rows import as plain transactions.
func Parse(r io.Reader) (Parsed, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return Parsed{}, fmt.Errorf("invalid CSV: %w", err)
	}

	if len(records) < 1 || len(records[0]) != len(header) {
		return Parsed{}, ErrMissingHeader
	}
	for i, column := range header {
		if records[0][i] != column {
			return Parsed{}, ErrMissingHeader
		}
	}

	var parsed Parsed
	seenCategories := make(map[string]struct{})

	for line, record := range records[1:] {
		warn := func(reason string) {
			parsed.Warnings = append(parsed.Warnings, fmt.Sprintf("skipping row %d: %s", line+2, reason))
		}

		if len(record) != len(header) {
			warn("wrong number of columns")
			continue
		}

		date, description, rawAmount, category := record[0], record[1], record[2], record[3]
		if date == "" || description == "" || rawAmount == "" || category == "" {
			warn("missing date, description, amount or category")
			continue
		}

		day, err := types.ParseDay(date)
		if err != nil {
			warn("invalid date " + date)
			continue
		}

		amount, err := decimal.NewFromString(rawAmount)
		if err != nil {
			warn("invalid amount " + rawAmount)
			continue
		}

		if _, ok := seenCategories[category]; !ok {
			seenCategories[category] = struct{}{}
			parsed.Categories = append(parsed.Categories, category)
		}

		if record[6] == markerTemplate {
			recurrence := models.Recurrence(record[4])
			if recurrence == "" {
				recurrence = models.RecurrenceMonthly
			}

			endDate := day
			if record[5] != "" {
				endDate, err = types.ParseDay(record[5])
				if err != nil {
					warn("invalid recurrence end date " + record[5])
					continue
				}
			}

			parsed.Templates = append(parsed.Templates, models.RecurringTemplate{
				Description:       description,
				Amount:            amount,
				Category:          category,
				Recurrence:        recurrence,
				StartDate:         day,
				EndDate:           endDate,
				LastGeneratedDate: day,
			})
			continue
		}

		parsed.Transactions = append(parsed.Transactions, models.Transaction{
			Description: description,
			Amount:      amount,
			Date:        day,
			Category:    category,
		})
	}

	return parsed, nil
}
