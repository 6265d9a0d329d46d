package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeScenario(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadScenario_Testdata(t *testing.T) {
	s, err := LoadScenario("testdata/scenarios/browse_catalog.yaml")
	require.NoError(t, err)

	assert.Equal(t, "browse_catalog", s.Name)
	assert.Equal(t, 2, s.PageSize)
	assert.Equal(t, filepath.Join("testdata", "scenarios", "../../../fixture/testdata/circles.yaml"), s.Fixture)
	require.Len(t, s.Flow, 8)
	assert.Equal(t, "Catalog.setSearch", s.Flow[0].Invoke)
	assert.Equal(t, "0xc0ffee", s.Flow[0].Args["search"])
	require.NotNil(t, s.Flow[6].Expect)
	assert.Equal(t, CaseError, s.Flow[6].Expect.Case)
	assert.Len(t, s.Assertions, 6)
}

func TestLoadScenario_FixtureRelativeToFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "circles.yaml"), []byte("circles: []\n"), 0644))

	path := writeScenario(t, dir, `
name: relative
description: fixture next to the scenario
fixture: circles.yaml
flow:
  - invoke: Catalog.nextPage
`)

	s, err := LoadScenario(path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "circles.yaml"), s.Fixture)
}

func TestLoadScenario_MissingFile(t *testing.T) {
	_, err := LoadScenario(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read scenario file")
}

func TestLoadScenario_UnknownField(t *testing.T) {
	path := writeScenario(t, t.TempDir(), `
name: typo
description: misspelled key
flows:
  - invoke: Catalog.nextPage
`)

	_, err := LoadScenario(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestValidateScenario(t *testing.T) {
	valid := func() *Scenario {
		return &Scenario{
			Name:        "s",
			Description: "d",
			Flow:        []FlowStep{{Invoke: "Catalog.nextPage"}},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Scenario)
		wantErr string
	}{
		{"valid", func(*Scenario) {}, ""},
		{"missing name", func(s *Scenario) { s.Name = "" }, "name is required"},
		{"missing description", func(s *Scenario) { s.Description = "" }, "description is required"},
		{"empty flow", func(s *Scenario) { s.Flow = nil }, "flow list is required"},
		{"negative page size", func(s *Scenario) { s.PageSize = -1 }, "page_size"},
		{"negative history cap", func(s *Scenario) { s.HistoryCap = -1 }, "history_cap"},
		{"missing fixture", func(s *Scenario) { s.Fixture = "/does/not/exist.yaml" }, "fixture file not found"},
		{"unknown flow action", func(s *Scenario) { s.Flow[0].Invoke = "Catalog.explode" }, `flow[0]: unknown action "Catalog.explode"`},
		{"empty invoke", func(s *Scenario) { s.Flow[0].Invoke = "" }, "flow[0]: invoke is required"},
		{"bad expect case", func(s *Scenario) {
			s.Flow[0].Expect = &ExpectClause{Case: "Maybe"}
		}, "flow[0].expect: case must be"},
		{"unknown setup action", func(s *Scenario) {
			s.Setup = []ActionStep{{Action: "Trust.explode"}}
		}, "setup[0]: unknown action"},
		{"empty setup action", func(s *Scenario) {
			s.Setup = []ActionStep{{}}
		}, "setup[0]: action is required"},
		{"assertion without type", func(s *Scenario) {
			s.Assertions = []Assertion{{}}
		}, "assertions[0]: type is required"},
		{"unknown assertion", func(s *Scenario) {
			s.Assertions = []Assertion{{Type: "trace_absent"}}
		}, `unknown assertion type "trace_absent"`},
		{"trace_contains without action", func(s *Scenario) {
			s.Assertions = []Assertion{{Type: AssertTraceContains}}
		}, "action is required for trace_contains"},
		{"trace_order without actions", func(s *Scenario) {
			s.Assertions = []Assertion{{Type: AssertTraceOrder}}
		}, "actions list is required"},
		{"trace_count negative", func(s *Scenario) {
			s.Assertions = []Assertion{{Type: AssertTraceCount, Action: "Catalog.nextPage", Count: -1}}
		}, "count must be non-negative"},
		{"final_state unknown table", func(s *Scenario) {
			s.Assertions = []Assertion{{Type: AssertFinalState, Table: "invocations", Expect: map[string]any{"a": 1}}}
		}, "table must be catalog"},
		{"final_state without expect", func(s *Scenario) {
			s.Assertions = []Assertion{{Type: AssertFinalState, Table: TableCatalog}}
		}, "expect is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := valid()
			tt.mutate(s)
			err := validateScenario(s)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
