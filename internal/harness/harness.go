package harness

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/roach88/circles/internal/catalog"
	"github.com/roach88/circles/internal/fixture"
	"github.com/roach88/circles/internal/profile"
	"github.com/roach88/circles/internal/store"
	"github.com/roach88/circles/internal/testutil"
	"github.com/roach88/circles/internal/trust"
)

// ClockStart is the unix second of the first trust history timestamp a
// scenario produces. Each later read advances by ClockStep.
const (
	ClockStart int64 = 1700200000
	ClockStep        = time.Hour
)

// defaultPrefsKey is used for the prefs table when the fixture has no
// profile address.
const defaultPrefsKey = "default"

// Harness is the test execution engine.
// It runs scenarios with a deterministic clock and sequence numbers.
type Harness struct {
	catalog *catalog.Catalog
	trust   *trust.Progression
	profile *profile.Ledger
	store   *store.Store
	clock   *testutil.DeterministicClock
	seq     int64
	logger  *slog.Logger
}

// Run executes a test scenario and returns the result.
//
// Each scenario runs against fresh state and a fresh in-memory database.
//
// Execution flow:
// 1. Load the fixture, if any
// 2. Execute setup steps
// 3. Execute flow steps with expect validation
// 4. Persist and reload prefs and trust through the store
// 5. Evaluate assertions
func Run(scenario *Scenario) (*Result, error) {
	return RunWithLogger(scenario, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// RunWithLogger is Run with step logging sent to logger.
func RunWithLogger(scenario *Scenario, logger *slog.Logger) (*Result, error) {
	st, err := store.Open(":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory store: %w", err)
	}
	defer st.Close()

	clock := testutil.NewDeterministicClock(ClockStart, ClockStep)
	h := &Harness{
		catalog: catalog.New(catalog.Options{PageSize: scenario.PageSize}),
		trust:   trust.New(trust.Options{HistoryCap: scenario.HistoryCap, Clock: clock}),
		profile: profile.New(),
		store:   st,
		clock:   clock,
		logger:  logger,
	}

	if scenario.Fixture != "" {
		f, err := fixture.Load(scenario.Fixture)
		if err != nil {
			return nil, fmt.Errorf("failed to load fixture: %w", err)
		}
		f.Populate(h.catalog, h.trust, h.profile)
		h.logger.Info("fixture loaded",
			"path", scenario.Fixture,
			"circles", len(f.Circles),
		)
	}

	ctx := context.Background()
	result := NewResult()

	h.executeSetup(scenario.Setup, result)
	h.executeFlow(scenario.Flow, result)

	if err := h.collectState(ctx, result); err != nil {
		return nil, fmt.Errorf("failed to collect final state: %w", err)
	}

	for _, errMsg := range EvaluateAssertions(result, scenario.Assertions) {
		result.AddError(errMsg)
	}

	return result, nil
}

func (h *Harness) nextSeq() int64 {
	h.seq++
	return h.seq
}

// invoke runs one action and records its invocation and completion.
func (h *Harness) invoke(action string, args map[string]any, result *Result) (string, map[string]any) {
	result.AddInvocationTrace(action, args, h.nextSeq())

	outputCase := CaseSuccess
	var out map[string]any
	var err error
	if fn, ok := actions[action]; ok {
		out, err = fn(h, args)
	} else {
		err = fmt.Errorf("unknown action %q", action)
	}
	if err != nil {
		outputCase = CaseError
		out = map[string]any{"error": err.Error()}
	}

	result.AddCompletionTrace(outputCase, out, h.nextSeq())
	return outputCase, out
}

// executeSetup runs all setup steps. Their outcomes are traced but not
// checked.
func (h *Harness) executeSetup(setup []ActionStep, result *Result) {
	for i, step := range setup {
		outputCase, _ := h.invoke(step.Action, step.Args, result)
		h.logger.Info("setup step completed",
			"step", i,
			"action", step.Action,
			"output_case", outputCase,
		)
	}
}

// executeFlow runs all flow steps and validates expect clauses.
func (h *Harness) executeFlow(flow []FlowStep, result *Result) {
	for i, step := range flow {
		outputCase, out := h.invoke(step.Invoke, step.Args, result)

		if step.Expect != nil {
			if outputCase != step.Expect.Case {
				result.AddError(fmt.Sprintf("flow[%d] %s: expected case %s, got %s (%v)",
					i, step.Invoke, step.Expect.Case, outputCase, out))
			} else if mismatch := subsetMismatch(step.Expect.Result, out); mismatch != "" {
				result.AddError(fmt.Sprintf("flow[%d] %s: %s", i, step.Invoke, mismatch))
			}
		}

		h.logger.Info("flow step completed",
			"step", i,
			"action", step.Invoke,
			"output_case", outputCase,
		)
	}
}

// collectState fills result.State. The prefs and trust tables are read
// back through the store.
func (h *Harness) collectState(ctx context.Context, result *Result) error {
	key := h.profile.Address()
	if key == "" {
		key = defaultPrefsKey
	}

	if err := h.store.SaveCatalog(ctx, key, h.catalog.Snapshot()); err != nil {
		return err
	}
	prefs, err := h.store.LoadCatalog(ctx, key)
	if err != nil {
		return err
	}

	if err := h.store.SaveTrust(ctx, key, h.trust.Snapshot()); err != nil {
		return err
	}
	snap, err := h.store.LoadTrust(ctx, key)
	if err != nil {
		return err
	}
	restored := trust.New(trust.Options{HistoryCap: h.trust.HistoryCap()})
	restored.Restore(snap)

	cat := viewState(h.catalog)
	cat["search"] = h.catalog.Search()
	cat["sort"] = string(h.catalog.Sort().Key)
	cat["direction"] = string(h.catalog.Sort().Direction)
	cat["pageSize"] = h.catalog.PageSize()
	cat["records"] = len(h.catalog.Records())

	tr := trustState(restored)
	tr["history"] = len(restored.History())

	result.State[TableCatalog] = cat
	result.State[TableTrust] = tr
	result.State[TableProfile] = profileState(h)
	result.State[TablePrefs] = map[string]any{
		"profile":   key,
		"search":    prefs.Search,
		"sort":      string(prefs.Sort.Key),
		"direction": string(prefs.Sort.Direction),
		"pageSize":  prefs.PageSize,
	}
	return nil
}
