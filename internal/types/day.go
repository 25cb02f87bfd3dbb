package types

import (
	"database/sql"
	"database/sql/driver"
	"fmt"
	"strings"
	"time"
)

// Day is a calendar date with day precision.
type Day time.Time

// NewDay returns a new Day.
func NewDay(year int, month time.Month, day int) Day {
	return Day(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// DayOf returns the Day on which a time occurs.
func DayOf(t time.Time) Day {
	year, month, day := t.Date()
	return NewDay(year, month, day)
}

// ParseDay parses a string in RFC 3339 full-date format ("2006-01-02").
func ParseDay(s string) (Day, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Day{}, err
	}

	return DayOf(t), nil
}

// String returns the date formatted as YYYY-MM-DD.
func (d Day) String() string {
	year, month, day := time.Time(d).Date()
	return fmt.Sprintf("%04d-%02d-%02d", year, month, day)
}

// MarshalJSON implements the json.Marshaler interface.
// The output is the YYYY-MM-DD representation.
func (d Day) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

// UnmarshalJSON implements the json.Unmarshaler interface.
// The day is expected to be a string in YYYY-MM-DD format or an
// RFC 3339 timestamp, of which only the date part is kept.
func (d *Day) UnmarshalJSON(data []byte) error {
	value := strings.Trim(string(data), `"`)
	if value == "" || value == "null" {
		return nil
	}

	pattern := "2006-01-02"
	if strings.Contains(value, "T") {
		pattern = time.RFC3339
	}

	t, err := time.Parse(pattern, value)
	if err != nil {
		return err
	}

	*d = DayOf(t)
	return nil
}

// Scan writes the value from the database.
func (d *Day) Scan(value interface{}) (err error) {
	nullTime := &sql.NullTime{}
	err = nullTime.Scan(value)
	*d = DayOf(nullTime.Time)
	return err
}

// Value returns the value for the SQL driver to write to the database.
func (d Day) Value() (driver.Value, error) {
	year, month, day := time.Time(d).Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC), nil
}

// GormDataType defines the data type used by gorm for the type.
func (Day) GormDataType() string {
	return "date"
}

// IsZero reports if the day is the zero value.
func (d Day) IsZero() bool {
	return time.Time(d).IsZero()
}

// Year returns the year the day is in.
func (d Day) Year() int {
	return time.Time(d).Year()
}

// Month returns the Month the day is in.
func (d Day) Month() Month {
	return MonthOf(time.Time(d))
}

// Before reports whether the day d is before e.
func (d Day) Before(e Day) bool {
	return time.Time(d).Before(time.Time(e))
}

// After reports whether the day d is after e.
func (d Day) After(e Day) bool {
	return time.Time(d).After(time.Time(e))
}

// Equal reports whether d and e represent the same day.
func (d Day) Equal(e Day) bool {
	return time.Time(d).Equal(time.Time(e))
}

// AddDays adds the specified number of days.
func (d Day) AddDays(days int) Day {
	return Day(time.Time(d).AddDate(0, 0, days))
}

// AddMonths adds the specified number of calendar months, keeping the
// day of the month of d. If the target month is shorter, the result is
// clamped to its last day, so the 31st stepped into a 30-day month
// yields the 30th, not the 1st of the following month.
func (d Day) AddMonths(months int) Day {
	year, month, day := time.Time(d).Date()

	first := time.Date(year, month+time.Month(months), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1).Day()
	if day > last {
		day = last
	}

	return NewDay(first.Year(), first.Month(), day)
}

// Min returns the earlier of d and e.
func Min(d, e Day) Day {
	if e.Before(d) {
		return e
	}
	return d
}
