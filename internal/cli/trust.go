package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/circles/internal/notify"
	"github.com/roach88/circles/internal/store"
	"github.com/roach88/circles/internal/trust"
)

// TrustOptions holds flags for the trust command.
type TrustOptions struct {
	*RootOptions

	Score    uint64
	Reason   string
	Persist  bool
	Database string
	Profile  string
}

// TrustReport is the derived view of one trust record.
type TrustReport struct {
	Profile          string               `json:"profile"`
	Score            uint64               `json:"score"`
	Tier             trust.Tier           `json:"tier"`
	NextTier         *trust.Tier          `json:"nextTier,omitempty"`
	PointsToNextTier uint64               `json:"pointsToNextTier"`
	OverallProgress  float64              `json:"overallProgress"`
	TierProgress     float64              `json:"tierProgress"`
	Trend            trust.Trend          `json:"trend"`
	ScoreChange      int64                `json:"scoreChange"`
	Components       trust.Components     `json:"components"`
	Distribution     trust.Distribution   `json:"distribution"`
	Recommendations  []string             `json:"recommendations"`
	History          []trust.HistoryEntry `json:"history"`
}

// NewTrustCommand creates the trust command.
func NewTrustCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TrustOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "trust <fixture>",
		Short: "Show trust tier progress and recommendations",
		Long: `Load the trust record from a fixture and report its tier, progress
toward the next tier, recent trend and improvement recommendations.

--score records a new score sample before reporting. With --persist the
record is read from the database first (when present) and written back
afterwards.

Examples:
  circles trust circles.yaml
  circles trust circles.yaml --score 760 --reason "circle completed"
  circles trust circles.yaml --score 760 --persist --db circles.db`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTrust(opts, args[0], cmd)
		},
	}

	cmd.Flags().Uint64Var(&opts.Score, "score", 0, "record a new score sample")
	cmd.Flags().StringVar(&opts.Reason, "reason", "", "reason stored with the new score")
	cmd.Flags().BoolVar(&opts.Persist, "persist", false, "load and save the record in the database")
	cmd.Flags().StringVar(&opts.Database, "db", "", "database path (default from config)")
	cmd.Flags().StringVar(&opts.Profile, "profile", "", "profile key (default from fixture)")

	return cmd
}

func runTrust(opts *TrustOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)
	s := newSession(opts.RootOptions)
	ctx := commandContext(cmd)

	scoreSet := cmd.Flags().Changed("score")

	if err := s.load(path); err != nil {
		s.flushToasts(formatter)
		return fixtureFailure(formatter, err)
	}

	key := s.profileKey(opts.Profile)
	var st *store.Store
	if opts.Persist {
		var err error
		if st, err = openStore(opts.RootOptions, opts.Database); err != nil {
			return storeFailure(formatter, err)
		}
		defer closeStore(st)

		snap, err := st.LoadTrust(ctx, key)
		switch {
		case errors.Is(err, store.ErrNotFound):
		case err != nil:
			return storeFailure(formatter, err)
		default:
			s.trust.Restore(snap)
			s.notify.PushToast(notify.ToastInfo, fmt.Sprintf("restored trust record for %s", key))
		}
	}

	if scoreSet {
		before := s.trust.Tier()
		entry := s.trust.Update(opts.Score, s.trust.Components(), opts.Reason)
		s.profile.SetTier(entry.Tier)
		if entry.Tier > before {
			s.notify.PushToast(notify.ToastSuccess, fmt.Sprintf("promoted to %s", entry.Tier))
		} else if entry.Tier < before {
			s.notify.PushToast(notify.ToastWarning, fmt.Sprintf("demoted to %s", entry.Tier))
		}
	}

	if st != nil {
		if err := st.SaveTrust(ctx, key, s.trust.Snapshot()); err != nil {
			return storeFailure(formatter, err)
		}
	}

	s.flushToasts(formatter)

	report := buildTrustReport(s.trust, key)
	if opts.Format == "json" {
		return formatter.Success(report)
	}
	return writeTrustText(formatter.Writer, report)
}

func buildTrustReport(p *trust.Progression, profile string) TrustReport {
	r := TrustReport{
		Profile:          profile,
		Score:            p.Score(),
		Tier:             p.Tier(),
		PointsToNextTier: p.PointsToNextTier(),
		OverallProgress:  p.OverallProgress(),
		TierProgress:     p.TierProgress(),
		Trend:            p.Trend(),
		ScoreChange:      p.ScoreChange(),
		Components:       p.Components(),
		Distribution:     p.Distribution(),
		Recommendations:  p.Recommendations(),
		History:          p.History(),
	}
	if next, ok := p.NextTier(); ok {
		r.NextTier = &next
	}
	if r.History == nil {
		r.History = []trust.HistoryEntry{}
	}
	return r
}

func writeTrustText(w io.Writer, r TrustReport) error {
	fmt.Fprintf(w, "Profile: %s\n", r.Profile)
	fmt.Fprintf(w, "Score:   %d (%s)\n", r.Score, r.Tier)
	if r.NextTier != nil {
		fmt.Fprintf(w, "Next:    %s in %d points (%.0f%% through tier)\n", *r.NextTier, r.PointsToNextTier, r.TierProgress)
	} else {
		fmt.Fprintf(w, "Next:    top tier reached\n")
	}
	fmt.Fprintf(w, "Overall: %.0f%%\n", r.OverallProgress)

	sign := ""
	if r.ScoreChange > 0 {
		sign = "+"
	}
	fmt.Fprintf(w, "Trend:   %s (%s%d)\n", r.Trend, sign, r.ScoreChange)
	fmt.Fprintf(w, "Mix:     payment %.0f%%, completion %.0f%%, defi %.0f%%, social %.0f%%\n",
		r.Distribution.Payment, r.Distribution.Completion, r.Distribution.DeFi, r.Distribution.Social)

	if len(r.Recommendations) > 0 {
		fmt.Fprintf(w, "\nRecommendations:\n")
		for _, rec := range r.Recommendations {
			fmt.Fprintf(w, "  - %s\n", rec)
		}
	}
	if len(r.History) > 0 {
		fmt.Fprintf(w, "\nHistory (%d, newest first):\n", len(r.History))
		for _, h := range r.History {
			line := fmt.Sprintf("  %d  %4d  %s", h.Timestamp, h.Score, h.Tier)
			if h.Reason != "" {
				line += "  " + h.Reason
			}
			fmt.Fprintln(w, strings.TrimRight(line, " "))
		}
	}
	return nil
}
