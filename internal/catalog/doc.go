// Package catalog implements the circle catalog: the full set of known circle
// records plus the search, filter, sort and pagination configuration a
// consumer applies to it.
//
// The derivation pipeline is a pure function:
//
//	records → search → filters (AND) → stable sort → paginate
//
// DeriveView covers the first three stages; Paginate is applied afterwards so
// page counts are computed over the full derived sequence.
//
// Catalog is the owned state object. It is single-threaded: every mutator and
// getter is expected to run on the caller's event-handling goroutine, and
// every getter recomputes from current state. Nothing is memoized, so a
// mutation is always visible on the next read.
//
// No operation in this package returns an error. Contradictory filters
// (minAmount > maxAmount) yield an empty view.
package catalog
