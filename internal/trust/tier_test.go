package trust

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTierOf_Boundaries(t *testing.T) {
	tests := []struct {
		score uint64
		want  Tier
	}{
		{0, Newcomer},
		{249, Newcomer},
		{250, Silver},
		{499, Silver},
		{500, Gold},
		{749, Gold},
		{750, Platinum},
		{1000, Platinum},
		{5000, Platinum},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, TierOf(tt.score), "score=%d", tt.score)
	}
}

func TestTier_StringAndLevel(t *testing.T) {
	assert.Equal(t, "NEWCOMER", Newcomer.String())
	assert.Equal(t, "PLATINUM", Platinum.String())
	assert.Equal(t, "Tier(9)", Tier(9).String())

	assert.Equal(t, uint8(0), Newcomer.Level())
	assert.Equal(t, uint8(3), Platinum.Level())
	assert.Equal(t, uint8(0), Tier(-1).Level())
}

func TestParseTier(t *testing.T) {
	got, err := ParseTier(" gold ")
	require.NoError(t, err)
	assert.Equal(t, Gold, got)

	_, err = ParseTier("diamond")
	assert.Error(t, err)
}

func TestTier_JSON(t *testing.T) {
	data, err := json.Marshal(HistoryEntry{Score: 600, Tier: Gold})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"tier":"GOLD"`)

	var e HistoryEntry
	require.NoError(t, json.Unmarshal([]byte(`{"score":300,"tier":"SILVER"}`), &e))
	assert.Equal(t, Silver, e.Tier)

	_, err = json.Marshal(HistoryEntry{Tier: Tier(7)})
	assert.Error(t, err)
}

func TestNextTier(t *testing.T) {
	next, ok := NextTier(Silver)
	assert.True(t, ok)
	assert.Equal(t, Gold, next)

	_, ok = NextTier(Platinum)
	assert.False(t, ok)
}

func TestPointsToNextTier(t *testing.T) {
	assert.Equal(t, uint64(250), PointsToNextTier(0))
	assert.Equal(t, uint64(1), PointsToNextTier(249))
	assert.Equal(t, uint64(250), PointsToNextTier(250))
	assert.Equal(t, uint64(10), PointsToNextTier(740))
	assert.Equal(t, uint64(0), PointsToNextTier(750))
}

func TestThreshold(t *testing.T) {
	assert.Equal(t, uint64(0), Threshold(Newcomer))
	assert.Equal(t, uint64(250), Threshold(Silver))
	assert.Equal(t, uint64(500), Threshold(Gold))
	assert.Equal(t, uint64(750), Threshold(Platinum))
}
