// Package harness runs catalog and trust scenarios as executable contract
// tests.
//
// A scenario loads a fixture, drives the catalog and trust progression
// through a list of actions, and asserts on the resulting trace and final
// state.
//
// # Scenario Format
//
// Scenarios are defined in YAML files with the following structure:
//
//	name: scenario_name
//	description: "What this scenario validates"
//	fixture: path/to/circles.yaml
//	page_size: 2
//	setup:
//	  - action: Catalog.setSearch
//	    args: { search: "weekly" }
//	flow:
//	  - invoke: Catalog.toggleSort
//	    args: { key: amount }
//	    expect:
//	      case: Success
//	      result: { page: 1, view: ["0xD4", "0xA1"] }
//	assertions:
//	  - type: trace_contains
//	    action: Catalog.toggleSort
//	    args: { key: amount }
//	  - type: final_state
//	    table: catalog
//	    expect: { sort: amount, direction: desc }
//
// Fixture paths are resolved relative to the scenario file.
//
// # Actions
//
//   - Catalog.setSearch { search }
//   - Catalog.setFilters { minAmount, maxAmount, minDuration, maxDuration,
//     minTrustTier, status, payoutMethod, isPublic }
//   - Catalog.clearFilters, Catalog.nextPage, Catalog.prevPage
//   - Catalog.toggleSort { key }
//   - Catalog.setPage { page }, Catalog.setPageSize { size }
//   - Catalog.updateMembers { address, count }
//   - Catalog.deactivate { address }, Catalog.prune { address }
//   - Trust.update { score, components?, reason? }
//   - Profile.join { contribution? }, Profile.complete
//
// A step whose action fails completes with case "Error" and the message in
// result.error. Every other step completes with case "Success".
//
// # Assertion Types
//
//   - trace_contains: Verifies an action appears in the trace with matching args
//   - trace_order: Verifies actions appear in specified order
//   - trace_count: Verifies an action appears exactly N times
//   - final_state: Compares a state table (catalog, trust, profile, prefs)
//     against expected values
//
// # Deterministic Testing
//
// Trust history timestamps come from testutil.DeterministicClock and trace
// sequence numbers are assigned in execution order, so identical scenarios
// produce identical traces for golden file comparison.
//
// The prefs and trust tables are read back from an in-memory store after the
// flow, so final_state assertions also cover persistence.
package harness
