package domain

import "fmt"

// MonthDate identifies a month boundary in simulated time. The engine has
// no finer time resolution than a month.
type MonthDate struct {
	Year  int `yaml:"year" json:"year"`
	Month int `yaml:"month" json:"month"` // 1-12
}

// NewMonthDate validates and creates a month date.
func NewMonthDate(year, month int) (MonthDate, error) {
	if month < 1 || month > 12 {
		return MonthDate{}, &ValidationError{Field: "month", Reason: fmt.Sprintf("must be 1-12, got %d", month)}
	}
	if year < 1900 || year > 3000 {
		return MonthDate{}, &ValidationError{Field: "year", Reason: fmt.Sprintf("out of range: %d", year)}
	}
	return MonthDate{Year: year, Month: month}, nil
}

// Next returns the following month.
func (d MonthDate) Next() MonthDate {
	if d.Month == 12 {
		return MonthDate{Year: d.Year + 1, Month: 1}
	}
	return MonthDate{Year: d.Year, Month: d.Month + 1}
}

// AddMonths returns the date n months later (n may be negative).
func (d MonthDate) AddMonths(n int) MonthDate {
	total := d.Year*12 + (d.Month - 1) + n
	return MonthDate{Year: total / 12, Month: total%12 + 1}
}

// MonthsSince returns the number of whole months elapsed since o.
// Negative when d is before o.
func (d MonthDate) MonthsSince(o MonthDate) int {
	return (d.Year-o.Year)*12 + (d.Month - o.Month)
}

// IsJanuary reports whether this is the first month of a calendar year.
// Annual contribution counters reset exactly here, never at a game-start
// anniversary.
func (d MonthDate) IsJanuary() bool { return d.Month == 1 }

// Before reports whether d precedes o.
func (d MonthDate) Before(o MonthDate) bool {
	return d.Year < o.Year || (d.Year == o.Year && d.Month < o.Month)
}

// String renders as "2024-01".
func (d MonthDate) String() string {
	return fmt.Sprintf("%04d-%02d", d.Year, d.Month)
}
