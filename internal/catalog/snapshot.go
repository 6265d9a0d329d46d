package catalog

// Snapshot is the subset of catalog state that survives a reload: the view
// preferences, never the records themselves.
type Snapshot struct {
	Search   string     `json:"search,omitempty"`
	Filters  Filters    `json:"filters"`
	Sort     SortConfig `json:"sort"`
	PageSize int        `json:"pageSize,omitempty"`
}

// Snapshot captures the current view preferences.
func (c *Catalog) Snapshot() Snapshot {
	return Snapshot{
		Search:   c.search,
		Filters:  c.Filters(),
		Sort:     c.sort,
		PageSize: c.pageSize,
	}
}

// Restore applies previously captured preferences and returns to page 1.
// Records are untouched. Missing sort or page size fall back to defaults.
func (c *Catalog) Restore(s Snapshot) {
	c.search = s.Search
	c.filters = Filters{}.Merge(s.Filters)
	c.sort = s.Sort
	if c.sort.Key == "" {
		c.sort = DefaultSort
	}
	if c.sort.Direction != Asc && c.sort.Direction != Desc {
		c.sort.Direction = Desc
	}
	c.pageSize = s.PageSize
	if c.pageSize <= 0 {
		c.pageSize = c.defaultPageSize
	}
	c.page = 1
}
