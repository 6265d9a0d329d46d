package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/circles/internal/catalog"
	"github.com/roach88/circles/internal/store"
)

// PrefsOptions holds flags shared by the prefs subcommands.
type PrefsOptions struct {
	*RootOptions
	Database string
}

// PrefsEntry is one stored preference set.
type PrefsEntry struct {
	Profile  string           `json:"profile"`
	Snapshot catalog.Snapshot `json:"snapshot"`
}

// NewPrefsCommand creates the prefs command group.
func NewPrefsCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &PrefsOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "prefs",
		Short: "Inspect stored catalog view preferences",
		Long: `Show or clear the catalog view preferences saved by "circles list --prefs".

Examples:
  circles prefs show
  circles prefs show 0xC0FFEE --format json
  circles prefs clear 0xC0FFEE`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.Database, "db", "", "database path (default from config)")

	cmd.AddCommand(newPrefsShowCommand(opts))
	cmd.AddCommand(newPrefsClearCommand(opts))
	return cmd
}

func newPrefsShowCommand(opts *PrefsOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "show [profile]",
		Short:         "Show stored preferences for one or all profiles",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPrefsShow(opts, args, cmd)
		},
	}
}

func newPrefsClearCommand(opts *PrefsOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "clear <profile>",
		Short:         "Delete stored preferences for a profile",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPrefsClear(opts, args[0], cmd)
		},
	}
}

func runPrefsShow(opts *PrefsOptions, args []string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)
	ctx := commandContext(cmd)

	st, err := openStore(opts.RootOptions, opts.Database)
	if err != nil {
		return storeFailure(formatter, err)
	}
	defer closeStore(st)

	profiles := args
	if len(profiles) == 0 {
		if profiles, err = st.Profiles(ctx); err != nil {
			return storeFailure(formatter, err)
		}
	}

	entries := make([]PrefsEntry, 0, len(profiles))
	for _, p := range profiles {
		snap, err := st.LoadCatalog(ctx, p)
		if errors.Is(err, store.ErrNotFound) {
			if outErr := formatter.Error(ErrCodeNotFound, fmt.Sprintf("no stored preferences for %s", p), nil); outErr != nil {
				return outErr
			}
			return NewExitError(ExitFailure, fmt.Sprintf("no stored preferences for %s", p))
		}
		if err != nil {
			return storeFailure(formatter, err)
		}
		entries = append(entries, PrefsEntry{Profile: p, Snapshot: snap})
	}

	if opts.Format == "json" {
		return formatter.Success(entries)
	}
	return writePrefsText(formatter.Writer, entries)
}

func runPrefsClear(opts *PrefsOptions, profile string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	st, err := openStore(opts.RootOptions, opts.Database)
	if err != nil {
		return storeFailure(formatter, err)
	}
	defer closeStore(st)

	deleted, err := st.DeleteCatalog(commandContext(cmd), profile)
	if err != nil {
		return storeFailure(formatter, err)
	}

	if opts.Format == "json" {
		return formatter.Success(map[string]any{"profile": profile, "deleted": deleted})
	}
	if deleted {
		fmt.Fprintf(formatter.Writer, "Cleared preferences for %s\n", profile)
	} else {
		fmt.Fprintf(formatter.Writer, "No stored preferences for %s\n", profile)
	}
	return nil
}

func writePrefsText(w io.Writer, entries []PrefsEntry) error {
	if len(entries) == 0 {
		fmt.Fprintln(w, "No stored preferences.")
		return nil
	}
	for i, e := range entries {
		if i > 0 {
			fmt.Fprintln(w)
		}
		s := e.Snapshot
		fmt.Fprintf(w, "%s\n", e.Profile)
		fmt.Fprintf(w, "  search:    %q\n", s.Search)
		fmt.Fprintf(w, "  sort:      %s %s\n", s.Sort.Key, s.Sort.Direction)
		fmt.Fprintf(w, "  page size: %d\n", s.PageSize)
		if !s.Filters.IsZero() {
			fmt.Fprintf(w, "  filters:   %s\n", describeFilters(s.Filters))
		}
	}
	return nil
}

// describeFilters renders the set filter fields on one line.
func describeFilters(f catalog.Filters) string {
	var parts []string
	if f.Status != "" && f.Status != catalog.StatusAll {
		parts = append(parts, "status="+string(f.Status))
	}
	if f.PayoutMethod != nil {
		parts = append(parts, "payout="+string(*f.PayoutMethod))
	}
	if f.MinAmount != nil {
		parts = append(parts, "minAmount="+f.MinAmount.String())
	}
	if f.MaxAmount != nil {
		parts = append(parts, "maxAmount="+f.MaxAmount.String())
	}
	if f.MinDuration != nil {
		parts = append(parts, fmt.Sprintf("minDuration=%d", *f.MinDuration))
	}
	if f.MaxDuration != nil {
		parts = append(parts, fmt.Sprintf("maxDuration=%d", *f.MaxDuration))
	}
	if f.MinTrustTier != nil {
		parts = append(parts, fmt.Sprintf("maxTier=%d", *f.MinTrustTier))
	}
	if f.IsPublic != nil {
		parts = append(parts, fmt.Sprintf("public=%t", *f.IsPublic))
	}
	return strings.Join(parts, " ")
}

// commandContext returns the command's context, or a background context
// when it runs outside Execute.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
