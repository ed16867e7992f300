package reservation

import (
	"fmt"
	"time"
)

const (
	// DateLayout is the only date format accepted and rendered at the boundary.
	DateLayout = "01/02/2006"

	// parseLayout also accepts single-digit month and day ("1/5/2024").
	parseLayout = "1/2/2006"
)

// Date is a calendar day with no time or zone component.
// Dates compare with == and can be used as map keys.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// NewDate normalizes the given parts, so NewDate(2024, 1, 32) is 02/01/2024.
func NewDate(year int, month time.Month, day int) Date {
	return DateOf(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// DateOf returns the calendar day of t in t's own location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// ParseDate parses an MM/DD/YYYY string into a Date.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(parseLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("%w: date %q must be a valid MM/DD/YYYY calendar date", ErrInvalidInput, s)
	}
	return DateOf(t), nil
}

// Time returns midnight UTC of the day.
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// AddDays returns the date n calendar days later (earlier for negative n).
func (d Date) AddDays(n int) Date {
	return DateOf(d.Time().AddDate(0, 0, n))
}

func (d Date) Before(other Date) bool {
	return d.Time().Before(other.Time())
}

func (d Date) String() string {
	return d.Time().Format(DateLayout)
}

func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Date) UnmarshalText(b []byte) error {
	parsed, err := ParseDate(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// DateRange returns n consecutive dates starting at start.
func DateRange(start Date, n int) []Date {
	if n <= 0 {
		return []Date{}
	}
	dates := make([]Date, n)
	for i := range dates {
		dates[i] = start.AddDays(i)
	}
	return dates
}

// FormatDates renders dates as MM/DD/YYYY strings, keeping their order.
func FormatDates(dates []Date) []string {
	out := make([]string, len(dates))
	for i, d := range dates {
		out[i] = d.String()
	}
	return out
}
