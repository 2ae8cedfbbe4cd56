package repository

import "strings"

// ListQuery represents common query parameters
type ListQuery struct {
	Page    int
	PerPage int
	Search  string
	SortBy  string
	SortDir string
	Filters map[string]string
}

// NewListQuery creates a ListQuery with defaults
func NewListQuery() *ListQuery {
	return &ListQuery{
		Page:    1,
		PerPage: 20,
		Filters: make(map[string]string),
	}
}

// Offset returns the row offset for the current page
func (q *ListQuery) Offset() int {
	if q.Page < 1 {
		return 0
	}
	return (q.Page - 1) * q.PerPage
}

// order builds an ORDER BY clause from SortBy, accepting only the given columns.
func (q *ListQuery) order(allowed map[string]bool, fallback string) string {
	if q.SortBy == "" || !allowed[q.SortBy] {
		return fallback
	}
	if strings.EqualFold(q.SortDir, "desc") {
		return q.SortBy + " DESC"
	}
	return q.SortBy + " ASC"
}

// LedgerQuery narrows a ledger fetch. Period filtering happens in the finance
// engine, not in SQL, so a fetch always returns every matching record.
type LedgerQuery struct {
	UserID *uint
	Search string
}

func likePattern(s string) string {
	return "%" + strings.ToLower(strings.TrimSpace(s)) + "%"
}
