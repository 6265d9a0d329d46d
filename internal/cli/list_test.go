package cli

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/circles/internal/catalog"
	"github.com/roach88/circles/internal/circle"
)

func addresses(records []circle.Record) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.Address
	}
	return out
}

func listJSON(t *testing.T, args ...string) ListResult {
	t.Helper()
	stdout, _, err := execute(t, append([]string{"--format", "json", "list", fixturePath}, args...)...)
	require.NoError(t, err)

	var result ListResult
	resp := decodeJSON(t, stdout, &result)
	require.Equal(t, "ok", resp.Status)
	return result
}

func TestList_DefaultView(t *testing.T) {
	result := listJSON(t)

	assert.Equal(t, 1, result.Page)
	assert.Equal(t, 1, result.TotalPages)
	assert.Equal(t, 6, result.Total)
	assert.Equal(t, catalog.DefaultSort, result.Sort)
	assert.Equal(t, []string{"0xF6", "0xD4", "0xE5", "0xB2", "0xA1", "0xC3"}, addresses(result.Circles))
	assert.Equal(t, []string{"0xE5", "0xA1"}, result.Eligible)
	assert.Nil(t, result.Stats)
}

func TestList_Search(t *testing.T) {
	result := listJSON(t, "--search", "WEEKLY")

	assert.Equal(t, 1, result.Total)
	assert.Equal(t, []string{"0xA1"}, addresses(result.Circles))
	assert.Equal(t, "WEEKLY", result.Search)
}

func TestList_StatusFilter(t *testing.T) {
	result := listJSON(t, "--status", "forming")

	assert.Equal(t, []string{"0xD4", "0xE5", "0xA1"}, addresses(result.Circles))
	assert.Equal(t, catalog.StatusForming, result.Filters.Status)
}

func TestList_CombinedFilters(t *testing.T) {
	result := listJSON(t, "--payout", "AUCTION", "--max-amount", "100")
	assert.Equal(t, []string{"0xB2"}, addresses(result.Circles))

	result = listJSON(t, "--private")
	assert.Equal(t, []string{"0xC3"}, addresses(result.Circles))

	result = listJSON(t, "--max-tier", "0")
	assert.Equal(t, []string{"0xE5", "0xB2"}, addresses(result.Circles))

	result = listJSON(t, "--min-duration", "1209600")
	assert.Equal(t, []string{"0xF6", "0xD4", "0xC3"}, addresses(result.Circles))
}

func TestList_SortAscending(t *testing.T) {
	result := listJSON(t, "--sort", "amount", "--direction", "asc")

	assert.Equal(t, catalog.SortConfig{Key: catalog.SortAmount, Direction: catalog.Asc}, result.Sort)
	assert.Equal(t, []string{"0xE5", "0xB2", "0xC3", "0xA1", "0xF6", "0xD4"}, addresses(result.Circles))
}

func TestList_DirectionOnly(t *testing.T) {
	result := listJSON(t, "--direction", "asc")

	assert.Equal(t, catalog.SortConfig{Key: catalog.SortNewest, Direction: catalog.Asc}, result.Sort)
	assert.Equal(t, "0xC3", result.Circles[0].Address)
}

func TestList_Pagination(t *testing.T) {
	result := listJSON(t, "--page-size", "2", "--page", "2")

	assert.Equal(t, 2, result.Page)
	assert.Equal(t, 3, result.TotalPages)
	assert.Equal(t, 6, result.Total)
	assert.Equal(t, []string{"0xE5", "0xB2"}, addresses(result.Circles))
}

func TestList_PageClamped(t *testing.T) {
	result := listJSON(t, "--page-size", "2", "--page", "99")
	assert.Equal(t, 3, result.Page)
	assert.Equal(t, []string{"0xA1", "0xC3"}, addresses(result.Circles))

	result = listJSON(t, "--page", "0")
	assert.Equal(t, 1, result.Page)
}

func TestList_NoMatches(t *testing.T) {
	result := listJSON(t, "--search", "nothing matches this")

	assert.Equal(t, 1, result.Page)
	assert.Equal(t, 0, result.TotalPages)
	assert.Equal(t, 0, result.Total)
	assert.Empty(t, result.Circles)

	stdout, _, err := execute(t, "list", fixturePath, "--search", "nothing matches this")
	require.NoError(t, err)
	assert.Contains(t, stdout, "No circles match.")
	assert.Contains(t, stdout, "Page 1 of 1 (0 circles")
}

func TestList_Stats(t *testing.T) {
	result := listJSON(t, "--stats")

	require.NotNil(t, result.Stats)
	assert.Equal(t, catalog.Stats{Total: 6, Public: 5, Forming: 3, Active: 2, Completed: 1}, *result.Stats)
}

func TestList_TextOutput(t *testing.T) {
	stdout, _, err := execute(t, "list", fixturePath, "--sort", "members")
	require.NoError(t, err)

	assert.Contains(t, stdout, "ADDRESS")
	assert.Contains(t, stdout, "Weekly Savers")
	assert.Contains(t, stdout, "0xE5*")
	assert.Contains(t, stdout, "completed")
	assert.Contains(t, stdout, "sorted by members desc")
	assert.Contains(t, stdout, "eligible to join: 0xA1, 0xE5")
}

func TestList_InvalidFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"sort key", []string{"--sort", "rating"}},
		{"direction", []string{"--direction", "sideways"}},
		{"status", []string{"--status", "paused"}},
		{"payout", []string{"--payout", "LOTTERY"}},
		{"amount", []string{"--min-amount", "ten"}},
		{"tier", []string{"--max-tier", "9"}},
		{"page size", []string{"--page-size", "0"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, _, err := execute(t, append([]string{"--format", "json", "list", fixturePath}, tt.args...)...)
			require.Error(t, err)
			assert.Equal(t, ExitCommandError, GetExitCode(err))

			resp := decodeJSON(t, stdout, nil)
			assert.Equal(t, "error", resp.Status)
			require.NotNil(t, resp.Error)
			assert.Equal(t, ErrCodeFlag, resp.Error.Code)
		})
	}
}

func TestList_PublicPrivateExclusive(t *testing.T) {
	_, _, err := execute(t, "list", fixturePath, "--public", "--private")
	require.Error(t, err)
}

func TestList_NegatedVisibilityFlags(t *testing.T) {
	result := listJSON(t, "--public=false")
	assert.Equal(t, []string{"0xC3"}, addresses(result.Circles))

	result = listJSON(t, "--private=false")
	assert.Equal(t, []string{"0xF6", "0xD4", "0xE5", "0xB2", "0xA1"}, addresses(result.Circles))
	require.NotNil(t, result.Filters.IsPublic)
	assert.True(t, *result.Filters.IsPublic)
}

func TestList_MissingFixture(t *testing.T) {
	stdout, _, err := execute(t, "--format", "json", "list", filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))

	resp := decodeJSON(t, stdout, nil)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "E_NOT_FOUND", resp.Error.Code)
}

func TestList_PrefsRoundTrip(t *testing.T) {
	db := filepath.Join(t.TempDir(), "prefs.db")

	first := listJSON(t, "--prefs", "--db", db, "--search", "weekly", "--page-size", "2", "--sort", "amount")
	assert.Equal(t, 1, first.Total)

	second := listJSON(t, "--prefs", "--db", db)
	assert.Equal(t, "weekly", second.Search)
	assert.Equal(t, 2, second.PageSize)
	assert.Equal(t, catalog.SortConfig{Key: catalog.SortAmount, Direction: catalog.Desc}, second.Sort)
	assert.Equal(t, []string{"0xA1"}, addresses(second.Circles))

	// Flags layer over restored preferences.
	third := listJSON(t, "--prefs", "--db", db, "--search", "")
	assert.Equal(t, 6, third.Total)
	assert.Equal(t, 3, third.TotalPages)
}

func TestList_PrefsProfileOverride(t *testing.T) {
	db := filepath.Join(t.TempDir(), "prefs.db")

	listJSON(t, "--prefs", "--db", db, "--profile", "alice", "--status", "completed")

	other := listJSON(t, "--prefs", "--db", db)
	assert.Equal(t, 6, other.Total)

	alice := listJSON(t, "--prefs", "--db", db, "--profile", "alice")
	assert.Equal(t, []string{"0xC3"}, addresses(alice.Circles))
}

func TestList_VerboseToasts(t *testing.T) {
	_, stderr, err := execute(t, "-v", "--format", "json", "list", fixturePath)
	require.NoError(t, err)
	assert.Contains(t, stderr, "[success] loaded 6 circles")
}
