package catalog

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/roach88/circles/internal/circle"
)

// DeriveView returns the records a consumer should render, before pagination:
// the search match, then every present filter, then a stable sort.
//
// The input slice is never modified; the result is a fresh slice.
func DeriveView(records []circle.Record, search string, filters Filters, sort SortConfig) []circle.Record {
	match := newSearchMatcher(search)

	out := make([]circle.Record, 0, len(records))
	for _, r := range records {
		if !match(r) {
			continue
		}
		if !filters.Match(r) {
			continue
		}
		out = append(out, r)
	}

	sortRecords(out, sort)
	return out
}

// newSearchMatcher returns a predicate testing whether a record's address,
// creator, name or description contains search, compared under Unicode case
// folding. An empty search matches everything.
func newSearchMatcher(search string) func(circle.Record) bool {
	if search == "" {
		return func(circle.Record) bool { return true }
	}

	// A Caser carries state, so each matcher gets its own.
	fold := cases.Fold()
	needle := fold.String(search)

	return func(r circle.Record) bool {
		for _, field := range [...]string{r.Address, r.Creator, r.Name, r.Description} {
			if field == "" {
				continue
			}
			if strings.Contains(fold.String(field), needle) {
				return true
			}
		}
		return false
	}
}

// TotalPages returns ceil(n/pageSize). A non-positive pageSize yields 0.
func TotalPages(n, pageSize int) int {
	if pageSize <= 0 || n <= 0 {
		return 0
	}
	return (n + pageSize - 1) / pageSize
}

// Paginate returns the 1-indexed page of records: the half-open range
// [(page-1)*pageSize, page*pageSize). Out-of-range pages yield an empty,
// non-nil slice. The result aliases records.
func Paginate(records []circle.Record, page, pageSize int) []circle.Record {
	if page < 1 || pageSize <= 0 {
		return []circle.Record{}
	}
	start := (page - 1) * pageSize
	if start >= len(records) {
		return []circle.Record{}
	}
	end := start + pageSize
	if end > len(records) {
		end = len(records)
	}
	return records[start:end]
}
