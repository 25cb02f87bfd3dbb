// Package recurrence materializes recurring transaction templates
// into concrete, dated transaction instances.
package recurrence

import (
	"github.com/expansepro/backend/internal/models"
	"github.com/expansepro/backend/internal/types"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Result holds the outcome of a materialization run: the instances
// that have to be created and the new cursor value per template.
type Result struct {
	Instances []models.Transaction
	Cursors   map[uuid.UUID]types.Day
}

// Materialize computes the transaction instances that are due for the
// given templates up to today. It is a pure function over its inputs
// and idempotent: instances that already exist for a (template, date)
// pair are never produced again, and the cursor never moves backwards.
//
// Occurrence dates are anchored at the template's start date: weekly
// templates repeat every seven days, monthly templates repeat on the
// start date's day of the month, clamped to shorter months (the 31st
// becomes the 29th in a leap February and the 31st again in March).
// Dates before the cursor are never revisited, so instances a user
// deleted stay deleted.
func Materialize(templates []models.RecurringTemplate, existing []models.Transaction, today types.Day) Result {
	seen := make(map[occurrenceKey]struct{}, len(existing))
	for _, t := range existing {
		if t.RecurringTemplateID == nil {
			continue
		}
		seen[occurrenceKey{*t.RecurringTemplateID, t.Date.String()}] = struct{}{}
	}

	result := Result{
		Cursors: make(map[uuid.UUID]types.Day, len(templates)),
	}

	for _, template := range templates {
		end := types.Min(today, template.EndDate)

		cursor := template.LastGeneratedDate
		if cursor.Before(template.StartDate) {
			cursor = template.StartDate
		}

		for n := 0; ; n++ {
			date, ok := occurrence(template, n)
			if !ok || date.After(end) {
				break
			}

			if date.Before(cursor) {
				continue
			}

			if _, exists := seen[occurrenceKey{template.ID, date.String()}]; exists {
				continue
			}

			id := template.ID
			result.Instances = append(result.Instances, models.Transaction{
				Description:         template.Description,
				Amount:              template.Amount,
				Date:                date,
				Category:            template.Category,
				RecurringTemplateID: &id,
			})
		}

		// The cursor only ever advances. A template that starts in the
		// future or ends before it starts keeps its current cursor.
		if end.After(cursor) {
			cursor = end
		}
		result.Cursors[template.ID] = cursor
	}

	return result
}

// Run loads all templates and their existing instances, materializes
// everything that is due and applies the outcome in one transaction.
// It returns the number of instances created.
func Run(db *gorm.DB, today types.Day) (int, error) {
	created := 0

	err := db.Transaction(func(tx *gorm.DB) error {
		var templates []models.RecurringTemplate
		err := tx.Find(&templates).Error
		if err != nil {
			return err
		}

		var existing []models.Transaction
		err = tx.Where("recurring_template_id IS NOT NULL").Find(&existing).Error
		if err != nil {
			return err
		}

		result := Materialize(templates, existing, today)

		for i := range result.Instances {
			err = tx.Create(&result.Instances[i]).Error
			if err != nil {
				return err
			}
		}

		for i := range templates {
			cursor := result.Cursors[templates[i].ID]
			if cursor.Equal(templates[i].LastGeneratedDate) {
				continue
			}

			err = tx.Model(&templates[i]).Update("last_generated_date", cursor).Error
			if err != nil {
				return err
			}
		}

		created = len(result.Instances)
		return nil
	})

	return created, err
}

type occurrenceKey struct {
	templateID uuid.UUID
	date       string
}

// occurrence returns the n-th occurrence date of a template. For
// recurrence values the engine does not know, no date is returned and
// the template is skipped without an error.
func occurrence(template models.RecurringTemplate, n int) (types.Day, bool) {
	switch template.Recurrence {
	case models.RecurrenceWeekly:
		return template.StartDate.AddDays(7 * n), true
	case models.RecurrenceMonthly:
		return template.StartDate.AddMonths(n), true
	default:
		return types.Day{}, false
	}
}
