package harness

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixturePath = "../fixture/testdata/circles.yaml"

func step(invoke string, args map[string]any, expectCase string, result map[string]any) FlowStep {
	s := FlowStep{Invoke: invoke, Args: args}
	if expectCase != "" {
		s.Expect = &ExpectClause{Case: expectCase, Result: result}
	}
	return s
}

func TestRun_EmptyCatalog(t *testing.T) {
	scenario := &Scenario{
		Name:        "empty",
		Description: "no fixture",
		Flow: []FlowStep{
			step("Catalog.nextPage", nil, CaseSuccess, map[string]any{
				"page": 1, "totalPages": 0, "total": 0, "view": []any{},
			}),
		},
		Assertions: []Assertion{
			{Type: AssertTraceContains, Action: "Catalog.nextPage"},
			{Type: AssertFinalState, Table: TablePrefs, Expect: map[string]any{"profile": "default", "sort": "newest", "direction": "desc"}},
			{Type: AssertFinalState, Table: TableTrust, Expect: map[string]any{"score": 0, "tier": "NEWCOMER", "trend": "stable", "history": 0}},
		},
	}

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)

	require.Len(t, result.Trace, 2)
	assert.Equal(t, "invocation", result.Trace[0].Type)
	assert.Equal(t, int64(1), result.Trace[0].Seq)
	assert.Equal(t, "completion", result.Trace[1].Type)
	assert.Equal(t, int64(2), result.Trace[1].Seq)
}

func TestRun_MutationsAndPaging(t *testing.T) {
	scenario := &Scenario{
		Name:        "mutations",
		Description: "membership events, paging and trust",
		Fixture:     fixturePath,
		Flow: []FlowStep{
			step("Catalog.setFilters", map[string]any{"payoutMethod": "auction"}, CaseSuccess,
				map[string]any{"view": []any{"0xF6", "0xB2"}}),
			step("Catalog.updateMembers", map[string]any{"address": "0xA1", "count": 9}, CaseSuccess,
				map[string]any{"applied": true}),
			step("Catalog.deactivate", map[string]any{"address": "0xF6"}, CaseSuccess,
				map[string]any{"applied": true, "view": []any{"0xF6", "0xB2"}}),
			step("Catalog.updateMembers", map[string]any{"address": "0xF6", "count": 1}, CaseSuccess,
				map[string]any{"applied": false}),
			step("Catalog.prune", map[string]any{"address": "0xB2"}, CaseSuccess,
				map[string]any{"applied": true, "view": []any{"0xF6"}}),
			step("Catalog.prune", map[string]any{"address": "0xZZ"}, CaseSuccess,
				map[string]any{"applied": false}),
			step("Catalog.clearFilters", nil, CaseSuccess, map[string]any{"total": 5}),
			step("Catalog.setFilters", map[string]any{"status": "bogus"}, CaseError, nil),
			step("Catalog.setFilters", map[string]any{"colour": "red"}, CaseError, nil),
			step("Catalog.setPageSize", map[string]any{"size": 2}, CaseSuccess,
				map[string]any{"page": 1, "totalPages": 3}),
			step("Catalog.setPage", map[string]any{"page": 99}, CaseSuccess, map[string]any{"page": 3}),
			step("Catalog.prevPage", nil, CaseSuccess, map[string]any{"page": 2}),
			step("Trust.update", map[string]any{
				"score":      400,
				"components": map[string]any{"payment": 100, "completion": 100, "defi": 100, "social": 100},
			}, CaseSuccess, map[string]any{
				"tier": "SILVER", "trend": "down", "scoreChange": -220, "pointsToNext": 100,
			}),
			step("Profile.join", map[string]any{"contribution": "250"}, CaseSuccess,
				map[string]any{"circlesJoined": 1, "contributed": "250", "onboarding": 50}),
			step("Profile.complete", nil, CaseSuccess, map[string]any{"circlesCompleted": 1}),
		},
		Assertions: []Assertion{
			{Type: AssertFinalState, Table: TableCatalog, Expect: map[string]any{"records": 5, "page": 2, "pageSize": 2}},
			{Type: AssertFinalState, Table: TableProfile, Expect: map[string]any{"address": "0xC0FFEE", "tier": "SILVER"}},
			{Type: AssertFinalState, Table: TableTrust, Expect: map[string]any{"score": 400, "history": 3}},
			{Type: AssertFinalState, Table: TablePrefs, Expect: map[string]any{"profile": "0xC0FFEE", "pageSize": 2}},
		},
	}

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
	assert.Len(t, result.Trace, 2*len(scenario.Flow))
}

func TestRun_ExpectMismatch(t *testing.T) {
	scenario := &Scenario{
		Name:        "mismatch",
		Description: "wrong expectations",
		Fixture:     fixturePath,
		Flow: []FlowStep{
			step("Catalog.setSearch", map[string]any{"search": "whale"}, CaseSuccess,
				map[string]any{"view": []any{"0xA1"}}),
			step("Catalog.toggleSort", map[string]any{"key": "height"}, CaseSuccess, nil),
			step("Catalog.setPage", map[string]any{}, CaseError, nil),
		},
	}

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 2)
	assert.Contains(t, result.Errors[0], `flow[0] Catalog.setSearch: field "view"`)
	assert.Contains(t, result.Errors[1], "flow[1] Catalog.toggleSort: expected case Success, got Error")
}

func TestRun_SetupOutcomesNotChecked(t *testing.T) {
	scenario := &Scenario{
		Name:        "setup",
		Description: "setup errors are traced only",
		Fixture:     fixturePath,
		Setup: []ActionStep{
			{Action: "Catalog.toggleSort", Args: map[string]any{"key": "nope"}},
			{Action: "Catalog.setSearch", Args: map[string]any{"search": "fund"}},
		},
		Flow: []FlowStep{
			step("Catalog.nextPage", nil, CaseSuccess, map[string]any{"view": []any{"0xC3"}}),
		},
	}

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
	require.Len(t, result.Trace, 6)
	assert.Equal(t, CaseError, result.Trace[1].OutputCase)
}

func TestRun_HistoryCap(t *testing.T) {
	scenario := &Scenario{
		Name:        "cap",
		Description: "history is truncated",
		Fixture:     fixturePath,
		HistoryCap:  2,
		Flow: []FlowStep{
			step("Trust.update", map[string]any{"score": 700, "reason": "repaid"}, CaseSuccess, nil),
			step("Trust.update", map[string]any{"score": 710}, CaseSuccess, map[string]any{"scoreChange": 10}),
		},
		Assertions: []Assertion{
			{Type: AssertFinalState, Table: TableTrust, Expect: map[string]any{"history": 2, "score": 710}},
		},
	}

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
}

func TestRun_MissingFixture(t *testing.T) {
	_, err := Run(&Scenario{
		Name:        "missing",
		Description: "fixture vanished",
		Fixture:     "testdata/nope.yaml",
		Flow:        []FlowStep{step("Catalog.nextPage", nil, "", nil)},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load fixture")
}

func TestArgInt(t *testing.T) {
	args := map[string]any{
		"i": 3, "i64": int64(4), "u": uint64(5), "f": 6.0, "frac": 6.5, "s": "7",
		"uhuge": uint64(math.MaxUint64), "fhuge": 1e300, "fneg": -1e300,
	}

	for key, want := range map[string]int{"i": 3, "i64": 4, "u": 5, "f": 6} {
		got, err := argInt(args, key)
		require.NoError(t, err, key)
		assert.Equal(t, want, got, key)
	}

	for _, key := range []string{"frac", "s", "missing", "uhuge", "fhuge", "fneg"} {
		_, err := argInt(args, key)
		assert.Error(t, err, key)
	}
}

func TestRun_UnknownActionFromParsedScenario(t *testing.T) {
	scenario, err := ParseScenario([]byte(`name: unknown
description: unregistered action in an unvalidated scenario
flow:
  - invoke: Catalog.nope
    expect:
      case: Error
  - invoke: Catalog.nextPage
    expect:
      case: Success
`))
	require.NoError(t, err)

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
	require.Len(t, result.Trace, 4)
	assert.Equal(t, CaseError, result.Trace[1].OutputCase)
	assert.Equal(t, `unknown action "Catalog.nope"`, result.Trace[1].Result["error"])
	assert.Equal(t, CaseSuccess, result.Trace[3].OutputCase)
}

func TestRun_OutOfRangePage(t *testing.T) {
	scenario, err := ParseScenario([]byte(`name: huge-page
description: page beyond int range is rejected
fixture: ` + fixturePath + `
flow:
  - invoke: Catalog.setPage
    args: { page: 18446744073709551615 }
    expect:
      case: Error
  - invoke: Catalog.updateMembers
    args: { address: "0xA1", count: 4294967296 }
    expect:
      case: Error
`))
	require.NoError(t, err)

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
}
