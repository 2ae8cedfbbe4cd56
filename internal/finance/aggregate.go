package finance

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sjperalta/dpa-api/internal/models"
)

// MonthlyTotal is one point of a chart series.
type MonthlyTotal struct {
	PeriodLabel string          `json:"period_label"`
	Total       decimal.Decimal `json:"total"`
}

// MemberSummary aggregates one member's records.
type MemberSummary struct {
	UserID           uint            `json:"user_id"`
	TotalAmount      decimal.Decimal `json:"total_amount"`
	TransactionCount int             `json:"transaction_count"`
	LastRecordDate   time.Time       `json:"last_record_date"`
}

// StatusCount is the number of loans in one status.
type StatusCount struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

// MonthlySeries groups records by the short month name of their date ("Nov") and
// sums their amounts. Groups appear in first-seen order, not calendar order.
// Undated records are left out.
func MonthlySeries[T any](records []T, date func(T) time.Time, amount func(T) decimal.Decimal) []MonthlyTotal {
	return GroupSeries(records, func(r T) string {
		d := date(r)
		if d.IsZero() {
			return ""
		}
		return d.Format("Jan")
	}, amount)
}

// GroupSeries sums amounts per key in first-seen key order. Records with an empty
// key are skipped.
func GroupSeries[T any](records []T, key func(T) string, amount func(T) decimal.Decimal) []MonthlyTotal {
	series := make([]MonthlyTotal, 0)
	index := make(map[string]int)

	for _, r := range records {
		k := key(r)
		if k == "" {
			continue
		}
		i, ok := index[k]
		if !ok {
			i = len(series)
			index[k] = i
			series = append(series, MonthlyTotal{PeriodLabel: k, Total: decimal.Zero})
		}
		series[i].Total = series[i].Total.Add(amount(r))
	}
	return series
}

// PaymentMonthLabel buckets a savings record by its recorded payment month,
// abbreviated to three letters. Records without one fall under "Unknown".
func PaymentMonthLabel(s models.SavingsRecord) string {
	month := strings.TrimSpace(s.PaymentMonth)
	if month == "" {
		return "Unknown"
	}
	if r := []rune(month); len(r) > 3 {
		return string(r[:3])
	}
	return month
}

// MemberSummaries produces one entry per distinct user, sorted by total amount
// descending. Members with equal totals keep the order in which they were first seen.
func MemberSummaries[T any](records []T, user func(T) uint, date func(T) time.Time, amount func(T) decimal.Decimal) []MemberSummary {
	summaries := make([]MemberSummary, 0)
	index := make(map[uint]int)

	for _, r := range records {
		uid := user(r)
		i, ok := index[uid]
		if !ok {
			i = len(summaries)
			index[uid] = i
			summaries = append(summaries, MemberSummary{UserID: uid, TotalAmount: decimal.Zero})
		}

		s := &summaries[i]
		s.TotalAmount = s.TotalAmount.Add(amount(r))
		s.TransactionCount++
		if d := date(r); d.After(s.LastRecordDate) {
			s.LastRecordDate = d
		}
	}

	sort.SliceStable(summaries, func(a, b int) bool {
		return summaries[a].TotalAmount.GreaterThan(summaries[b].TotalAmount)
	})
	return summaries
}

// DistributionByStatus counts loans per status in first-seen order. A blank status
// counts as pending.
func DistributionByStatus(loans []models.Loan) []StatusCount {
	dist := make([]StatusCount, 0)
	index := make(map[string]int)

	for _, l := range loans {
		status := strings.TrimSpace(l.Status)
		if status == "" {
			status = models.LoanStatusPending
		}
		i, ok := index[status]
		if !ok {
			i = len(dist)
			index[status] = i
			dist = append(dist, StatusCount{Status: status})
		}
		dist[i].Count++
	}
	return dist
}
