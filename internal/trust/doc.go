// Package trust tracks a user's trust score and derives everything the UI
// shows about it: tier, progress toward the next tier, short-horizon trend,
// and rule-based recommendations.
//
// Tier thresholds are inclusive lower bounds:
//
//	NEWCOMER  0
//	SILVER    250
//	GOLD      500
//	PLATINUM  750
//
// 1000 is a display ceiling only (OverallProgress, and the top of the
// PLATINUM band in TierProgress). Scores above it are valid.
//
// All derivations are total functions. Out-of-range inputs clamp; nothing
// returns an error. Progression holds the owned record and caps history so
// memory stays bounded.
package trust
