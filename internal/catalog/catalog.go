package catalog

import (
	"slices"

	"github.com/roach88/circles/internal/circle"
)

// DefaultPageSize is used when Options.PageSize is not positive.
const DefaultPageSize = 12

// Options configures a new Catalog.
type Options struct {
	PageSize int
}

// Catalog owns the circle record set and the view configuration applied to
// it. The zero value is not usable; construct with New.
//
// Catalog is not safe for concurrent use.
type Catalog struct {
	records []circle.Record

	search   string
	filters  Filters
	sort     SortConfig
	page     int
	pageSize int

	defaultPageSize int
}

// New creates an empty catalog with default configuration.
func New(opts Options) *Catalog {
	size := opts.PageSize
	if size <= 0 {
		size = DefaultPageSize
	}
	c := &Catalog{defaultPageSize: size}
	c.Reset()
	return c
}

// Reset drops every record and restores the initial configuration.
func (c *Catalog) Reset() {
	c.records = nil
	c.search = ""
	c.filters = Filters{}
	c.sort = DefaultSort
	c.page = 1
	c.pageSize = c.defaultPageSize
}

// Replace swaps in a full record set. The previous set is discarded without
// merging. Member counts above maxMembers are clamped.
func (c *Catalog) Replace(records []circle.Record) {
	c.records = make([]circle.Record, len(records))
	for i, r := range records {
		c.records[i] = r.Clamp()
	}
	c.clampPage()
}

// Records returns a copy of the full record set in load order.
func (c *Catalog) Records() []circle.Record {
	return slices.Clone(c.records)
}

// Lookup returns the record with the given address.
func (c *Catalog) Lookup(address string) (circle.Record, bool) {
	i := c.index(address)
	if i < 0 {
		return circle.Record{}, false
	}
	return c.records[i], true
}

// UpdateMembers applies a membership event. The count is clamped to
// maxMembers. Inactive records are terminal and are left unchanged.
// Reports whether a record was updated.
func (c *Catalog) UpdateMembers(address string, count uint32) bool {
	i := c.index(address)
	if i < 0 || !c.records[i].IsActive {
		return false
	}
	r := c.records[i]
	r.MemberCount = count
	c.records[i] = r.Clamp()
	return true
}

// Deactivate marks a circle completed or cancelled. Reports whether the
// record transitioned.
func (c *Catalog) Deactivate(address string) bool {
	i := c.index(address)
	if i < 0 || !c.records[i].IsActive {
		return false
	}
	c.records[i].IsActive = false
	return true
}

// Prune removes a record from the catalog.
func (c *Catalog) Prune(address string) bool {
	i := c.index(address)
	if i < 0 {
		return false
	}
	c.records = slices.Delete(c.records, i, i+1)
	c.clampPage()
	return true
}

func (c *Catalog) index(address string) int {
	return slices.IndexFunc(c.records, func(r circle.Record) bool { return r.Address == address })
}

// SetSearch replaces the search text and returns to page 1.
func (c *Catalog) SetSearch(text string) {
	c.search = text
	c.page = 1
}

// SetFilters merges patch over the current filters and returns to page 1.
func (c *Catalog) SetFilters(patch Filters) {
	c.filters = c.filters.Merge(patch)
	c.page = 1
}

// ClearFilters removes every filter constraint and returns to page 1.
func (c *Catalog) ClearFilters() {
	c.filters = Filters{}
	c.page = 1
}

// ToggleSort applies a sort-header click. Changing to a different key
// returns to page 1; flipping the direction of the current key keeps the page.
func (c *Catalog) ToggleSort(key SortKey) {
	next := c.sort.Toggle(key)
	if next.Key != c.sort.Key {
		c.page = 1
	}
	c.sort = next
}

// SetPageSize changes the page size and returns to page 1. Non-positive
// sizes are ignored.
func (c *Catalog) SetPageSize(size int) {
	if size <= 0 {
		return
	}
	c.pageSize = size
	c.page = 1
}

// SetPage moves to page n, clamped to [1, TotalPages()].
func (c *Catalog) SetPage(n int) {
	c.page = n
	c.clampPage()
}

// NextPage advances one page, stopping at the last page.
func (c *Catalog) NextPage() {
	c.SetPage(c.page + 1)
}

// PrevPage goes back one page, stopping at page 1.
func (c *Catalog) PrevPage() {
	c.SetPage(c.page - 1)
}

func (c *Catalog) clampPage() {
	last := max(c.TotalPages(), 1)
	c.page = min(max(c.page, 1), last)
}

// Search returns the current search text.
func (c *Catalog) Search() string { return c.search }

// Filters returns a copy of the current filters.
func (c *Catalog) Filters() Filters { return Filters{}.Merge(c.filters) }

// Sort returns the current sort configuration.
func (c *Catalog) Sort() SortConfig { return c.sort }

// Page returns the current 1-indexed page.
func (c *Catalog) Page() int { return c.page }

// PageSize returns the current page size.
func (c *Catalog) PageSize() int { return c.pageSize }

// Derived returns the searched, filtered and sorted records without
// pagination.
func (c *Catalog) Derived() []circle.Record {
	return DeriveView(c.records, c.search, c.filters, c.sort)
}

// View returns the current page of the derived records.
func (c *Catalog) View() []circle.Record {
	return Paginate(c.Derived(), c.page, c.pageSize)
}

// TotalCount returns the number of derived records across all pages.
func (c *Catalog) TotalCount() int {
	return len(c.Derived())
}

// TotalPages returns the page count of the derived records.
func (c *Catalog) TotalPages() int {
	return TotalPages(c.TotalCount(), c.pageSize)
}

// PublicCircles returns public records, ignoring view configuration.
func (c *Catalog) PublicCircles() []circle.Record { return PublicCircles(c.records) }

// ActiveCircles returns active records, ignoring view configuration.
func (c *Catalog) ActiveCircles() []circle.Record { return ActiveCircles(c.records) }

// CompletedCircles returns inactive records, ignoring view configuration.
func (c *Catalog) CompletedCircles() []circle.Record { return CompletedCircles(c.records) }

// Stats summarizes the full record set.
func (c *Catalog) Stats() Stats { return Summarize(c.records) }
