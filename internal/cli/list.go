package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/roach88/circles/internal/catalog"
	"github.com/roach88/circles/internal/circle"
	"github.com/roach88/circles/internal/notify"
	"github.com/roach88/circles/internal/store"
)

// ListOptions holds flags for the list command.
type ListOptions struct {
	*RootOptions

	Search      string
	Status      string
	Payout      string
	MinAmount   string
	MaxAmount   string
	MinDuration uint64
	MaxDuration uint64
	MaxTier     uint8
	Public      bool
	Private     bool
	Sort        string
	Direction   string
	Page        int
	PageSize    int
	Stats       bool

	Prefs    bool   // restore and save view preferences
	Database string // overrides config databasePath
	Profile  string // prefs key, defaults to the fixture profile
}

// ListResult is the page of circles a list invocation produced.
type ListResult struct {
	Page       int                `json:"page"`
	TotalPages int                `json:"totalPages"`
	Total      int                `json:"total"`
	PageSize   int                `json:"pageSize"`
	Search     string             `json:"search,omitempty"`
	Filters    catalog.Filters    `json:"filters"`
	Sort       catalog.SortConfig `json:"sort"`
	Circles    []circle.Record    `json:"circles"`
	Eligible   []string           `json:"eligible,omitempty"`
	Stats      *catalog.Stats     `json:"stats,omitempty"`
}

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ListOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "list <fixture>",
		Short: "Browse the circle catalog",
		Long: `Load a fixture into the catalog and print one page of circles.

Search matches address, creator, name and description case-insensitively.
Filters combine with AND. --max-tier keeps circles whose minimum trust tier
is at most the given level.

With --prefs, the last search, filters, sort and page size for the profile
are restored from the database first, flags are applied on top, and the
result is saved back.

Examples:
  circles list circles.yaml
  circles list circles.yaml --search weekly --status forming
  circles list circles.yaml --sort amount --direction asc --page 2
  circles list circles.yaml --prefs --profile 0xC0FFEE --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(opts, args[0], cmd)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.Search, "search", "s", "", "search text")
	f.StringVar(&opts.Status, "status", "", "status filter (all|forming|active|completed)")
	f.StringVar(&opts.Payout, "payout", "", "payout method filter")
	f.StringVar(&opts.MinAmount, "min-amount", "", "minimum contribution amount")
	f.StringVar(&opts.MaxAmount, "max-amount", "", "maximum contribution amount")
	f.Uint64Var(&opts.MinDuration, "min-duration", 0, "minimum cycle duration in seconds")
	f.Uint64Var(&opts.MaxDuration, "max-duration", 0, "maximum cycle duration in seconds")
	f.Uint8Var(&opts.MaxTier, "max-tier", 0, "keep circles requiring at most this trust tier")
	f.BoolVar(&opts.Public, "public", false, "only public circles")
	f.BoolVar(&opts.Private, "private", false, "only private circles")
	f.StringVar(&opts.Sort, "sort", "", "sort key (newest|oldest|amount|duration|members)")
	f.StringVar(&opts.Direction, "direction", "", "sort direction (asc|desc)")
	f.IntVar(&opts.Page, "page", 1, "page number")
	f.IntVar(&opts.PageSize, "page-size", 0, "page size (default from config)")
	f.BoolVar(&opts.Stats, "stats", false, "include catalog statistics")
	f.BoolVar(&opts.Prefs, "prefs", false, "restore and save view preferences")
	f.StringVar(&opts.Database, "db", "", "preferences database (default from config)")
	f.StringVar(&opts.Profile, "profile", "", "preferences profile key")
	cmd.MarkFlagsMutuallyExclusive("public", "private")

	return cmd
}

func runList(opts *ListOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)
	s := newSession(opts.RootOptions)
	ctx := commandContext(cmd)

	if err := s.load(path); err != nil {
		s.flushToasts(formatter)
		return fixtureFailure(formatter, err)
	}

	var st *store.Store
	key := s.profileKey(opts.Profile)
	if opts.Prefs {
		var err error
		if st, err = openStore(opts.RootOptions, opts.Database); err != nil {
			return storeFailure(formatter, err)
		}
		defer closeStore(st)

		if err := restorePrefs(ctx, s, st, key); err != nil {
			return storeFailure(formatter, err)
		}
	}

	if err := applyListFlags(s.catalog, opts, cmd); err != nil {
		return flagFailure(formatter, err)
	}

	if st != nil {
		if err := st.SaveCatalog(ctx, key, s.catalog.Snapshot()); err != nil {
			return storeFailure(formatter, err)
		}
		s.notify.PushToast(notify.ToastInfo, fmt.Sprintf("saved view preferences for %s", key))
	}

	s.flushToasts(formatter)

	result := buildListResult(s, opts.Stats)
	if opts.Format == "json" {
		return formatter.Success(result)
	}
	return writeListText(formatter.Writer, result)
}

// restorePrefs applies stored preferences for key. A missing entry is not
// an error.
func restorePrefs(ctx context.Context, s *session, st *store.Store, key string) error {
	s.notify.SetLoading(statusPrefs, true)
	snap, err := st.LoadCatalog(ctx, key)
	if errors.Is(err, store.ErrNotFound) {
		s.notify.SetSuccess(statusPrefs, "no stored preferences")
		return nil
	}
	if err != nil {
		s.notify.SetError(statusPrefs, err.Error())
		return err
	}
	s.catalog.Restore(snap)
	s.notify.SetSuccess(statusPrefs, "restored")
	s.notify.PushToast(notify.ToastInfo, fmt.Sprintf("restored view preferences for %s", key))
	return nil
}

// applyListFlags lays explicitly set flags over the catalog configuration
// in the order the client applies them: search, filters, sort, page size,
// then page.
func applyListFlags(c *catalog.Catalog, opts *ListOptions, cmd *cobra.Command) error {
	flags := cmd.Flags()

	if flags.Changed("search") {
		c.SetSearch(opts.Search)
	}

	patch, err := filtersFromFlags(opts, cmd)
	if err != nil {
		return err
	}
	if !patch.IsZero() || flags.Changed("status") {
		c.SetFilters(patch)
	}

	if flags.Changed("sort") || flags.Changed("direction") {
		key := c.Sort().Key
		if flags.Changed("sort") {
			if key, err = catalog.ParseSortKey(opts.Sort); err != nil {
				return err
			}
		}
		dir := catalog.Desc
		if flags.Changed("direction") {
			if dir, err = catalog.ParseDirection(opts.Direction); err != nil {
				return err
			}
		}
		applySort(c, catalog.SortConfig{Key: key, Direction: dir})
	}

	if flags.Changed("page-size") {
		if opts.PageSize < 1 {
			return fmt.Errorf("invalid page size %d: must be at least 1", opts.PageSize)
		}
		c.SetPageSize(opts.PageSize)
	}

	if flags.Changed("page") {
		c.SetPage(opts.Page)
	}
	return nil
}

// applySort reaches target through header toggles: a new key starts
// descending, a second toggle flips to ascending.
func applySort(c *catalog.Catalog, target catalog.SortConfig) {
	if c.Sort().Key != target.Key {
		c.ToggleSort(target.Key)
	}
	if c.Sort().Direction != target.Direction {
		c.ToggleSort(target.Key)
	}
}

// filtersFromFlags builds a filter patch from the explicitly set flags.
func filtersFromFlags(opts *ListOptions, cmd *cobra.Command) (catalog.Filters, error) {
	flags := cmd.Flags()
	var f catalog.Filters

	if flags.Changed("status") {
		st, err := catalog.ParseStatus(opts.Status)
		if err != nil {
			return f, err
		}
		f.Status = st
	}
	if flags.Changed("payout") {
		m, err := circle.ParsePayoutMethod(opts.Payout)
		if err != nil {
			return f, err
		}
		f.PayoutMethod = &m
	}
	if flags.Changed("min-amount") {
		a, err := circle.ParseAmount(opts.MinAmount)
		if err != nil {
			return f, fmt.Errorf("--min-amount: %w", err)
		}
		f.MinAmount = &a
	}
	if flags.Changed("max-amount") {
		a, err := circle.ParseAmount(opts.MaxAmount)
		if err != nil {
			return f, fmt.Errorf("--max-amount: %w", err)
		}
		f.MaxAmount = &a
	}
	if flags.Changed("min-duration") {
		f.MinDuration = &opts.MinDuration
	}
	if flags.Changed("max-duration") {
		f.MaxDuration = &opts.MaxDuration
	}
	if flags.Changed("max-tier") {
		if opts.MaxTier > circle.MaxTrustTier {
			return f, fmt.Errorf("--max-tier %d: must be at most %d", opts.MaxTier, circle.MaxTrustTier)
		}
		f.MinTrustTier = &opts.MaxTier
	}
	switch {
	case flags.Changed("public"):
		public := opts.Public
		f.IsPublic = &public
	case flags.Changed("private"):
		public := !opts.Private
		f.IsPublic = &public
	}
	return f, nil
}

func buildListResult(s *session, withStats bool) ListResult {
	c := s.catalog
	view := c.View()
	result := ListResult{
		Page:       c.Page(),
		TotalPages: c.TotalPages(),
		Total:      c.TotalCount(),
		PageSize:   c.PageSize(),
		Search:     c.Search(),
		Filters:    c.Filters(),
		Sort:       c.Sort(),
		Circles:    view,
	}
	if s.hasTrust() {
		eligible := catalog.Eligible(view, s.trust.Tier().Level(), s.trust.Score())
		result.Eligible = make([]string, len(eligible))
		for i, r := range eligible {
			result.Eligible[i] = r.Address
		}
	}
	if withStats {
		stats := c.Stats()
		result.Stats = &stats
	}
	return result
}

// circleStatus names the phase a record is in, matching the status filter.
func circleStatus(r circle.Record) string {
	switch {
	case !r.IsActive:
		return string(catalog.StatusCompleted)
	case r.IsFull():
		return string(catalog.StatusActive)
	default:
		return string(catalog.StatusForming)
	}
}

func writeListText(w io.Writer, r ListResult) error {
	if len(r.Circles) == 0 {
		fmt.Fprintln(w, "No circles match.")
	} else {
		eligible := make(map[string]bool, len(r.Eligible))
		for _, a := range r.Eligible {
			eligible[a] = true
		}

		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "ADDRESS\tNAME\tAMOUNT\tMEMBERS\tCYCLE\tTIER\tPAYOUT\tSTATUS\t")
		for _, c := range r.Circles {
			mark := ""
			if eligible[c.Address] {
				mark = "*"
			}
			fmt.Fprintf(tw, "%s%s\t%s\t%s\t%d/%d\t%ds\t%d\t%s\t%s\t\n",
				c.Address, mark, c.Name, c.Params.ContributionAmount,
				c.MemberCount, c.Params.MaxMembers, c.Params.CycleDuration,
				c.Params.MinTrustTier, c.Params.PayoutMethod, circleStatus(c))
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}

	fmt.Fprintf(w, "\nPage %d of %d (%d %s, sorted by %s %s)\n",
		r.Page, max(r.TotalPages, 1), r.Total, plural(r.Total, "circle"), r.Sort.Key, r.Sort.Direction)
	if len(r.Eligible) > 0 {
		fmt.Fprintf(w, "* eligible to join: %s\n", strings.Join(r.Eligible, ", "))
	}
	if r.Stats != nil {
		fmt.Fprintf(w, "Stats: %d total, %d public, %d forming, %d active, %d completed\n",
			r.Stats.Total, r.Stats.Public, r.Stats.Forming, r.Stats.Active, r.Stats.Completed)
	}
	return nil
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
