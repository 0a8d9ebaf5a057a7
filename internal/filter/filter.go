// Package filter restricts table rows to a user-chosen subset of a category
// column's values.
package filter

import (
	"github.com/chrissnell/citibike-dashboard/internal/types"
)

// All is the sentinel option that selects every row.
const All = "All"

// Selection is an immutable set of chosen category values. It keeps the order
// values were chosen in so the UI can echo them back.
type Selection struct {
	values []string
	set    map[string]struct{}
}

// NewSelection builds a selection, dropping duplicates.
func NewSelection(values ...string) Selection {
	sel := Selection{set: make(map[string]struct{}, len(values))}
	for _, v := range values {
		if _, dup := sel.set[v]; dup {
			continue
		}
		sel.set[v] = struct{}{}
		sel.values = append(sel.values, v)
	}
	return sel
}

// SelectAll is the default selection.
func SelectAll() Selection {
	return NewSelection(All)
}

// Values returns the chosen values in selection order.
func (s Selection) Values() []string {
	out := make([]string, len(s.values))
	copy(out, s.values)
	return out
}

// Has reports whether v was chosen.
func (s Selection) Has(v string) bool {
	_, ok := s.set[v]
	return ok
}

// Len returns the number of distinct chosen values.
func (s Selection) Len() int {
	return len(s.values)
}

// IsEmpty is true when nothing was chosen.
func (s Selection) IsEmpty() bool {
	return len(s.values) == 0
}

// CoversAll reports whether the selection means "every row": either the All
// sentinel was chosen or the chosen set equals the full domain.
func (s Selection) CoversAll(domain []string) bool {
	if s.Has(All) {
		return true
	}
	if len(domain) == 0 {
		return false
	}
	for _, d := range domain {
		if !s.Has(d) {
			return false
		}
	}
	// every domain value is selected; extra values not in the domain match nothing
	return true
}

// ByCategory returns the rows whose category is in sel, preserving order.
// When sel covers the whole domain the input slice is returned unchanged. An
// empty selection yields an empty, non-nil slice.
func ByCategory[T any](rows []T, category func(T) string, sel Selection, domain []string) []T {
	if sel.CoversAll(domain) {
		return rows
	}

	out := make([]T, 0, len(rows))
	if sel.IsEmpty() {
		return out
	}
	for _, r := range rows {
		if sel.Has(category(r)) {
			out = append(out, r)
		}
	}
	return out
}

// Domain returns the distinct category values in first-appearance order.
func Domain[T any](rows []T, category func(T) string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, r := range rows {
		c := category(r)
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}

// Options returns the multi-select options for a domain: All first, then the
// domain values.
func Options(domain []string) []string {
	return append([]string{All}, domain...)
}

// FilterBySeason applies sel to daily records, using the records themselves
// as the season domain.
func FilterBySeason(rows []types.DailyRecord, sel Selection) []types.DailyRecord {
	return ByCategory(rows, types.DailyRecord.Category, sel, Domain(rows, types.DailyRecord.Category))
}
