package calendar

import (
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// Date is a calendar date with no time-of-day or timezone component.
// All arithmetic is anchored at UTC midnight so results never depend on the
// host timezone.
type Date struct {
	t time.Time
}

type ValidationError struct {
	Code    string
	Message string
}

func (e ValidationError) Error() string {
	if e.Code == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

const (
	CodeInvalidDate  = "INVALID_DATE"
	CodeInvalidRange = "INVALID_RANGE"
)

func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses an ISO date (YYYY-MM-DD). Nonsensical calendar dates
// (e.g. 2025-02-30) are rejected, not normalized.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, ValidationError{Code: CodeInvalidDate, Message: fmt.Sprintf("invalid date %q", s)}
	}
	return Date{t: t.UTC()}, nil
}

func (d Date) AddDays(n int) Date {
	return Date{t: d.t.AddDate(0, 0, n)}
}

func (d Date) Weekday() time.Weekday { return d.t.Weekday() }

func (d Date) Before(other Date) bool { return d.t.Before(other.t) }

func (d Date) After(other Date) bool { return d.t.After(other.t) }

func (d Date) Equal(other Date) bool { return d.t.Equal(other.t) }

func (d Date) IsZero() bool { return d.t.IsZero() }

// DaysUntil returns the whole number of days from d to other (negative when
// other is earlier).
func (d Date) DaysUntil(other Date) int {
	return int(other.t.Sub(d.t) / (24 * time.Hour))
}

// MonthKey returns the YYYY-MM bucket the date falls in, used for monthly
// usage accounting.
func (d Date) MonthKey() string { return d.t.Format("2006-01") }

func (d Date) String() string { return d.t.Format(dateLayout) }

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	s := string(b)
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return ValidationError{Code: CodeInvalidDate, Message: "date must be a JSON string"}
	}
	parsed, err := ParseDate(s[1 : len(s)-1])
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
