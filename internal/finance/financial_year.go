package finance

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// AllYears is the period selection that matches every record.
const AllYears = "all"

// DefaultYearWindow is how many financial years AvailableYears lists by default.
const DefaultYearWindow = 5

// Financial years run November 1 to October 31.
const (
	fyStartMonth = time.November
	fyEndMonth   = time.October
	fyEndDay     = 31
)

const dateLayout = "2006-01-02"

// FinancialYear is a reporting cycle with inclusive start and end dates.
type FinancialYear struct {
	Label     string    `json:"label"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
}

// NewFinancialYear validates admin-submitted boundaries and derives the label:
// "2024" when both dates fall in the same calendar year, "2024-2025" otherwise.
func NewFinancialYear(start, end time.Time) (FinancialYear, error) {
	start, end = dateOnly(start), dateOnly(end)
	if start.IsZero() || end.IsZero() || !end.After(start) {
		return FinancialYear{}, ErrInvalidFinancialYear
	}

	label := strconv.Itoa(start.Year())
	if start.Year() != end.Year() {
		label = fmt.Sprintf("%d-%d", start.Year(), end.Year())
	}

	return FinancialYear{Label: label, StartDate: start, EndDate: end}, nil
}

// Contains reports whether t falls on or between the year's start and end dates.
func (fy FinancialYear) Contains(t time.Time) bool {
	if t.IsZero() {
		return false
	}
	d := dateOnly(t)
	return !d.Before(fy.StartDate) && !d.After(fy.EndDate)
}

// StartDateString and EndDateString return the boundaries as YYYY-MM-DD.
func (fy FinancialYear) StartDateString() string { return fy.StartDate.Format(dateLayout) }

func (fy FinancialYear) EndDateString() string { return fy.EndDate.Format(dateLayout) }

// DefaultFinancialYear returns the Nov 1 - Oct 31 cycle starting in startYear.
func DefaultFinancialYear(startYear int) FinancialYear {
	return FinancialYear{
		Label:     yearLabel(startYear),
		StartDate: time.Date(startYear, fyStartMonth, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(startYear+1, fyEndMonth, fyEndDay, 0, 0, 0, 0, time.UTC),
	}
}

// ResolveCurrentYear returns the default financial year containing today.
func ResolveCurrentYear(today time.Time) FinancialYear {
	return DefaultFinancialYear(currentStartYear(today))
}

// AvailableYears lists the selectable periods: "all" followed by the count most
// recent financial years, newest first.
func AvailableYears(today time.Time, count int) []string {
	if count <= 0 {
		count = DefaultYearWindow
	}
	start := currentStartYear(today)

	years := make([]string, 0, count+1)
	years = append(years, AllYears)
	for i := 0; i < count; i++ {
		years = append(years, yearLabel(start-i))
	}
	return years
}

// ParseYearLabel derives default Nov-Oct boundaries from a label such as "2023-2024".
// Only the leading start year is significant.
func ParseYearLabel(label string) (FinancialYear, bool) {
	head, _, _ := strings.Cut(strings.TrimSpace(label), "-")
	startYear, err := strconv.Atoi(head)
	if err != nil || startYear <= 0 {
		return FinancialYear{}, false
	}
	fy := DefaultFinancialYear(startYear)
	fy.Label = label
	return fy, true
}

func currentStartYear(today time.Time) int {
	if today.Month() >= fyStartMonth {
		return today.Year()
	}
	return today.Year() - 1
}

func yearLabel(startYear int) string {
	return fmt.Sprintf("%d-%d", startYear, startYear+1)
}

// dateOnly drops the clock so comparisons are by calendar day in the value's own zone.
func dateOnly(t time.Time) time.Time {
	if t.IsZero() {
		return time.Time{}
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate accepts YYYY-MM-DD or RFC3339 (with or without zone).
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{dateLayout, time.RFC3339, "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", s)
}
