// Package notify is a keyed registry of transient UI state: per-operation
// loading, error and success flags, a bounded toast queue, and a modal stack.
//
// The circle catalog and trust progression do not read from it. Command
// handlers set flags around collaborator calls so the presentation layer can
// render progress and failures.
package notify
