package cli

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/circles/internal/trust"
)

func trustJSON(t *testing.T, args ...string) TrustReport {
	t.Helper()
	stdout, _, err := execute(t, append([]string{"--format", "json", "trust", fixturePath}, args...)...)
	require.NoError(t, err)

	var report TrustReport
	resp := decodeJSON(t, stdout, &report)
	require.Equal(t, "ok", resp.Status)
	return report
}

func TestTrust_FixtureReport(t *testing.T) {
	r := trustJSON(t)

	assert.Equal(t, "0xC0FFEE", r.Profile)
	assert.Equal(t, uint64(620), r.Score)
	assert.Equal(t, trust.Gold, r.Tier)
	require.NotNil(t, r.NextTier)
	assert.Equal(t, trust.Platinum, *r.NextTier)
	assert.Equal(t, uint64(130), r.PointsToNextTier)
	assert.InDelta(t, 62.0, r.OverallProgress, 0.001)
	assert.InDelta(t, 48.0, r.TierProgress, 0.001)
	assert.Equal(t, trust.TrendUp, r.Trend)
	assert.Equal(t, int64(40), r.ScoreChange)
	assert.Equal(t, []string{trust.RecCompleteCircles, trust.RecLinkDeFi, trust.RecAddSocial}, r.Recommendations)
	assert.Len(t, r.History, 2)
}

func TestTrust_RecordScore(t *testing.T) {
	r := trustJSON(t, "--score", "760", "--reason", "circle completed")

	assert.Equal(t, uint64(760), r.Score)
	assert.Equal(t, trust.Platinum, r.Tier)
	assert.Nil(t, r.NextTier)
	assert.Equal(t, uint64(0), r.PointsToNextTier)
	assert.Equal(t, int64(140), r.ScoreChange)
	require.Len(t, r.History, 3)
	assert.Equal(t, "circle completed", r.History[0].Reason)
	assert.Equal(t, trust.Platinum, r.History[0].Tier)
}

func TestTrust_PersistRoundTrip(t *testing.T) {
	db := filepath.Join(t.TempDir(), "trust.db")

	trustJSON(t, "--persist", "--db", db, "--score", "400", "--reason", "missed payment")

	r := trustJSON(t, "--persist", "--db", db)
	assert.Equal(t, uint64(400), r.Score)
	assert.Equal(t, trust.Silver, r.Tier)
	assert.Equal(t, trust.TrendDown, r.Trend)
	assert.Equal(t, int64(-220), r.ScoreChange)
	assert.Len(t, r.History, 3)

	// Without --persist the fixture record is used.
	r = trustJSON(t)
	assert.Equal(t, uint64(620), r.Score)
}

func TestTrust_TextOutput(t *testing.T) {
	stdout, stderr, err := execute(t, "-v", "trust", fixturePath, "--score", "800")
	require.NoError(t, err)

	assert.Contains(t, stdout, "Score:   800 (PLATINUM)")
	assert.Contains(t, stdout, "top tier reached")
	assert.Contains(t, stdout, "Trend:   up (+180)")
	assert.Contains(t, stdout, "Recommendations:")
	assert.Contains(t, stdout, "History (3, newest first):")
	assert.Contains(t, stderr, "[success] promoted to PLATINUM")
}

func TestTrust_FixtureWithoutTrust(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bare.yaml")
	writeFile(t, path, "circles: []\n")

	stdout, _, err := execute(t, "--format", "json", "trust", path)
	require.NoError(t, err)

	var r TrustReport
	decodeJSON(t, stdout, &r)
	assert.Equal(t, "default", r.Profile)
	assert.Equal(t, uint64(0), r.Score)
	assert.Equal(t, trust.Newcomer, r.Tier)
	assert.Equal(t, trust.TrendStable, r.Trend)
	assert.NotNil(t, r.History)
	assert.Empty(t, r.History)
}

func TestTrust_ConfiguredProfileFallback(t *testing.T) {
	t.Setenv("CIRCLES_PROFILE", "carol")
	path := filepath.Join(t.TempDir(), "bare.yaml")
	writeFile(t, path, "circles: []\n")

	stdout, _, err := execute(t, "--format", "json", "trust", path)
	require.NoError(t, err)

	var r TrustReport
	decodeJSON(t, stdout, &r)
	assert.Equal(t, "carol", r.Profile)
}

func TestTrust_InvalidScore(t *testing.T) {
	_, _, err := execute(t, "trust", fixturePath, "--score", "-5")
	require.Error(t, err)
}
