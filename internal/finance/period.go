package finance

import "time"

// Period is a resolved period selection: either "all" or a financial-year label,
// together with the configured current year whose stored boundaries win when the
// label matches it.
type Period struct {
	Selection string
	Current   *FinancialYear
}

// NewPeriod builds a Period for selection. An empty selection means "all".
func NewPeriod(selection string, current *FinancialYear) Period {
	if selection == "" {
		selection = AllYears
	}
	return Period{Selection: selection, Current: current}
}

// Contains reports whether a record dated t belongs to the period.
func (p Period) Contains(t time.Time) bool {
	return InPeriod(t, p.Selection, p.Current)
}

// Bounds returns the effective start/end dates. ok is false for "all" and for
// malformed labels.
func (p Period) Bounds() (fy FinancialYear, ok bool) {
	if p.Selection == AllYears || p.Selection == "" {
		return FinancialYear{}, false
	}
	if p.Current != nil && p.Selection == p.Current.Label {
		return *p.Current, true
	}
	return ParseYearLabel(p.Selection)
}

// InPeriod classifies a record date against a period selection. "all" always
// matches. The configured current year's exact dates are used when its label is
// selected; any other label is read as Nov 1 startYear to Oct 31 startYear+1.
// Malformed labels and undated records never match a specific year.
func InPeriod(recordDate time.Time, selection string, current *FinancialYear) bool {
	if selection == AllYears {
		return true
	}
	fy, ok := Period{Selection: selection, Current: current}.Bounds()
	if !ok {
		return false
	}
	return fy.Contains(recordDate)
}
