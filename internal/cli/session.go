package cli

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/roach88/circles/internal/catalog"
	"github.com/roach88/circles/internal/fixture"
	"github.com/roach88/circles/internal/notify"
	"github.com/roach88/circles/internal/profile"
	"github.com/roach88/circles/internal/store"
	"github.com/roach88/circles/internal/trust"
)

// Status keys tracked in the notification registry.
const (
	statusFixture = "fixture"
	statusPrefs   = "prefs"
)

// defaultProfileKey is used for stored state when neither --profile nor the
// fixture names a profile.
const defaultProfileKey = "default"

// session owns the state objects one command invocation works with.
type session struct {
	opts    *RootOptions
	catalog *catalog.Catalog
	trust   *trust.Progression
	profile *profile.Ledger
	notify  *notify.Registry
	fixture *fixture.Fixture
}

func newSession(opts *RootOptions) *session {
	return &session{
		opts:    opts,
		catalog: catalog.New(catalog.Options{PageSize: opts.Config.PageSize}),
		trust:   trust.New(trust.Options{HistoryCap: opts.Config.HistoryCap}),
		profile: profile.New(),
		notify:  notify.New(notify.Options{}),
	}
}

// load reads a fixture and replaces all session state with it.
func (s *session) load(path string) error {
	s.notify.SetLoading(statusFixture, true)

	f, err := fixture.Load(path)
	if err != nil {
		s.notify.SetError(statusFixture, err.Error())
		s.notify.PushToast(notify.ToastError, err.Error())
		return err
	}

	f.Populate(s.catalog, s.trust, s.profile)
	s.fixture = f

	msg := fmt.Sprintf("loaded %d circles from %s", len(f.Circles), path)
	s.notify.SetSuccess(statusFixture, msg)
	s.notify.PushToast(notify.ToastSuccess, msg)
	slog.Debug("session loaded", "path", path, "circles", len(f.Circles))
	return nil
}

// hasTrust reports whether the loaded fixture carried a trust record.
func (s *session) hasTrust() bool {
	return s.fixture != nil && s.fixture.Trust != nil
}

// profileKey picks the key stored state is filed under.
func (s *session) profileKey(override string) string {
	switch {
	case override != "":
		return override
	case s.profile.Address() != "":
		return s.profile.Address()
	case s.opts.Config.Profile != "":
		return s.opts.Config.Profile
	default:
		return defaultProfileKey
	}
}

// flushToasts writes queued toasts to the verbose log and dismisses them.
func (s *session) flushToasts(formatter *OutputFormatter) {
	for _, t := range s.notify.Toasts() {
		formatter.VerboseLog("[%s] %s", t.Kind, t.Message)
		s.notify.DismissToast(t.ID)
	}
}

// openStore opens the preferences database, preferring path over the
// configured location.
func openStore(opts *RootOptions, path string) (*store.Store, error) {
	if path == "" {
		path = opts.Config.DatabasePath
	}
	slog.Debug("opening database", "path", path)
	st, err := store.Open(path)
	if err != nil {
		return nil, err
	}
	return st, nil
}

func closeStore(st *store.Store) {
	if err := st.Close(); err != nil {
		slog.Error("error closing database", "error", err)
	}
}

// newFormatter builds the formatter every command writes through.
func newFormatter(opts *RootOptions, cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}
}

// fixtureFailure reports a fixture load error and returns the matching exit
// error.
func fixtureFailure(formatter *OutputFormatter, err error) error {
	var loadErr *fixture.LoadError
	if errors.As(err, &loadErr) {
		var details any
		if loadErr.Pos.IsValid() {
			details = map[string]int{"line": loadErr.Pos.Line(), "column": loadErr.Pos.Column()}
		}
		if outErr := formatter.Error(loadErr.Code, loadErr.Message, details); outErr != nil {
			return outErr
		}
		return WrapExitError(ExitCommandError, "failed to load fixture", err)
	}
	if outErr := formatter.Error(ErrCodeGeneric, err.Error(), nil); outErr != nil {
		return outErr
	}
	return WrapExitError(ExitCommandError, "failed to load fixture", err)
}

// flagFailure reports an invalid flag value.
func flagFailure(formatter *OutputFormatter, err error) error {
	if outErr := formatter.Error(ErrCodeFlag, err.Error(), nil); outErr != nil {
		return outErr
	}
	return WrapExitError(ExitCommandError, "invalid flag", err)
}

// storeFailure reports a database error.
func storeFailure(formatter *OutputFormatter, err error) error {
	if outErr := formatter.Error(ErrCodeStore, err.Error(), nil); outErr != nil {
		return outErr
	}
	return WrapExitError(ExitCommandError, "database error", err)
}
