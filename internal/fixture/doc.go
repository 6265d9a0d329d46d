// Package fixture loads catalog and trust data from YAML documents. It stands
// in for the data-fetch collaborator when the core runs outside a browser:
// the CLI, the scenario harness, and tests.
//
// Every document is checked against the embedded CUE schema (schema.cue)
// before it is decoded, so structural errors are reported with positions
// instead of surfacing as zero values.
//
// Document shape:
//
//	circles:
//	  - address: "0xA1"
//	    creator: "0xC0FFEE"
//	    params:
//	      contributionAmount: "100000000"
//	      maxMembers: 4
//	      cycleDuration: 604800
//	      minTrustTier: 1
//	      minTrustScore: 300
//	      payoutMethod: FIXED_ROTATION
//	      isPublic: true
//	    memberCount: 2
//	    isActive: true
//	    createdAt: 1700000000
//	trust:
//	  score: 620
//	  components: { payment: 820, completion: 540, defi: 300, social: 150 }
//	  history:
//	    - { timestamp: 1700100000, score: 620, tier: GOLD, reason: "on-time payment" }
//	profile:
//	  address: "0xC0FFEE"
package fixture
