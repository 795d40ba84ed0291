package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// DateLayout is the on-disk and command-line form of a deadline
const DateLayout = "2006-01-02"

// Date is a calendar day without time of day
type Date struct {
	time.Time
}

// NewDate returns the date for year, month and day in UTC
func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a YYYY-MM-DD date
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD): %w", s, err)
	}
	return Date{t}, nil
}

// String formats the date as YYYY-MM-DD
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(DateLayout)
}

// Before reports whether d is an earlier day than other
func (d Date) Before(other Date) bool {
	return d.Time.Before(other.Time)
}

// Today returns the current calendar day of now
func Today(now time.Time) Date {
	return NewDate(now.Year(), now.Month(), now.Day())
}

// MarshalJSON writes the date as "YYYY-MM-DD"
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON reads "YYYY-MM-DD". Full RFC 3339 timestamps are accepted
// and truncated to their day.
func (d *Date) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*d = Date{}
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("invalid date %s: %w", data, err)
	}
	if s == "" {
		*d = Date{}
		return nil
	}

	if t, err := time.Parse(time.RFC3339, s); err == nil {
		*d = NewDate(t.Year(), t.Month(), t.Day())
		return nil
	}

	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
