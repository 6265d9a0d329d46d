// Package circle defines the canonical lending-circle record shared by the
// catalog and its collaborators.
//
// This package contains type definitions and value helpers only. It imports
// nothing internal, so every other package may depend on it.
//
// Key constraints:
//   - contributionAmount is an unsigned 256-bit integer in the smallest
//     currency unit (Amount), never a float
//   - memberCount never exceeds params.maxMembers (Clamp enforces it)
//   - a record with isActive=false is terminal
//   - JSON and YAML tags use camelCase to match the data-source payloads
package circle
