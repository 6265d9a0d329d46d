package catalog

import "github.com/roach88/circles/internal/circle"

func rec(address string, amount uint64, members, maxMembers uint32, active bool, created int64) circle.Record {
	return circle.Record{
		Address: address,
		Creator: "0xcreator-" + address,
		Params: circle.Params{
			ContributionAmount: circle.NewAmount(amount),
			MaxMembers:         maxMembers,
			CycleDuration:      86400,
			PayoutMethod:       circle.PayoutFixedRotation,
			IsPublic:           true,
		},
		MemberCount: members,
		IsActive:    active,
		CreatedAt:   created,
	}
}

// scenarioRecords returns the three-circle catalog used across tests:
// A forming, B full and active, C completed.
func scenarioRecords() []circle.Record {
	return []circle.Record{
		rec("A", 100, 2, 4, true, 100),
		rec("B", 50, 4, 4, true, 200),
		rec("C", 75, 3, 3, false, 50),
	}
}

func addresses(records []circle.Record) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.Address
	}
	return out
}
