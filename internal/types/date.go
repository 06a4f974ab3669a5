// Package types implements special types for fintrack.
package types

import (
	"errors"
	"regexp"
	"strings"
	"time"
)

var dateOnly = regexp.MustCompile("^[0-9]{4}-[0-9]{2}-[0-9]{2}$")

var ErrDateInvalid = errors.New("dates must be formatted as YYYY-MM-DD or RFC3339")

// Date is a point in time accepted either as a full-date or as an RFC3339 timestamp.
type Date time.Time

// ParseDate parses a "YYYY-MM-DD" or RFC3339 string. Full-dates are midnight UTC.
func ParseDate(s string) (Date, error) {
	pattern := time.RFC3339
	if dateOnly.MatchString(s) {
		pattern = time.DateOnly
	}

	t, err := time.Parse(pattern, s)
	if err != nil {
		return Date{}, ErrDateInvalid
	}

	return Date(t.In(time.UTC)), nil
}

// Time returns the date as time.Time.
func (d Date) Time() time.Time {
	return time.Time(d)
}

// IsZero reports if the date is the zero value.
func (d Date) IsZero() bool {
	return time.Time(d).IsZero()
}

// String returns the date formatted as YYYY-MM-DD.
func (d Date) String() string {
	return time.Time(d).Format(time.DateOnly)
}

// MarshalJSON implements the json.Marshaler interface.
//
// Dates at midnight UTC are written as YYYY-MM-DD, all others as RFC3339.
func (d Date) MarshalJSON() ([]byte, error) {
	t := time.Time(d).In(time.UTC)
	if t.Equal(StartOfDay(t)) {
		return []byte(`"` + t.Format(time.DateOnly) + `"`), nil
	}

	return t.MarshalJSON()
}

// UnmarshalJSON implements the json.Unmarshaler interface.
// Empty strings and null leave the date unset.
func (d *Date) UnmarshalJSON(data []byte) error {
	value := strings.Trim(string(data), `"`)
	if value == "" || value == "null" {
		return nil
	}

	date, err := ParseDate(value)
	if err != nil {
		return err
	}

	*d = date
	return nil
}

// UnmarshalParam implements gin's binding.BindUnmarshaler for query parameters.
func (d *Date) UnmarshalParam(param string) error {
	if param == "" {
		return nil
	}

	date, err := ParseDate(param)
	if err != nil {
		return err
	}

	*d = date
	return nil
}

// StartOfDay returns midnight UTC of the day t occurs on.
func StartOfDay(t time.Time) time.Time {
	year, month, day := t.In(time.UTC).Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// EndOfDayExclusive returns midnight UTC of the day after t.
//
// Ranges ending on a date include every instant of that day,
// use this as an exclusive upper bound.
func EndOfDayExclusive(t time.Time) time.Time {
	return StartOfDay(t).AddDate(0, 0, 1)
}
