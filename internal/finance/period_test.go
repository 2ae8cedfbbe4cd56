package finance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestInPeriod(t *testing.T) {
	configured := FinancialYear{
		Label:     "2024-2025",
		StartDate: date(2024, time.October, 15),
		EndDate:   date(2025, time.September, 30),
	}

	tests := []struct {
		name      string
		record    time.Time
		selection string
		current   *FinancialYear
		want      bool
	}{
		{"all matches anything", date(1999, time.January, 1), AllYears, nil, true},
		{"all matches undated", time.Time{}, AllYears, nil, true},
		{"first day inclusive", date(2024, time.November, 1), "2024-2025", nil, true},
		{"last day late evening inclusive", time.Date(2025, time.October, 31, 23, 59, 59, 0, time.UTC), "2024-2025", nil, true},
		{"day before start", date(2024, time.October, 31), "2024-2025", nil, false},
		{"day after end", date(2025, time.November, 1), "2024-2025", nil, false},
		{"configured boundaries win", date(2024, time.October, 20), "2024-2025", &configured, true},
		{"configured end honoured", date(2025, time.October, 15), "2024-2025", &configured, false},
		{"other labels use default rule", date(2023, time.November, 1), "2023-2024", &configured, true},
		{"malformed label", date(2024, time.November, 1), "abc-2025", nil, false},
		{"empty label", date(2024, time.November, 1), "", nil, false},
		{"undated record", time.Time{}, "2024-2025", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, InPeriod(tt.record, tt.selection, tt.current))
		})
	}
}

func TestPeriodBounds(t *testing.T) {
	_, ok := NewPeriod("", nil).Bounds()
	assert.False(t, ok)

	fy, ok := NewPeriod("2021-2022", nil).Bounds()
	assert.True(t, ok)
	assert.True(t, date(2021, time.November, 1).Equal(fy.StartDate))
}
