package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/circles/internal/catalog"
	"github.com/roach88/circles/internal/circle"
)

func TestCatalogPrefs_RoundTrip(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	tier := uint8(2)
	method := circle.PayoutAuction
	minAmount := circle.MustAmount("250000000000000000000")
	snap := catalog.Snapshot{
		Search: "weekly",
		Filters: catalog.Filters{
			MinAmount:    &minAmount,
			MinTrustTier: &tier,
			PayoutMethod: &method,
			Status:       catalog.StatusForming,
		},
		Sort:     catalog.SortConfig{Key: catalog.SortAmount, Direction: catalog.Asc},
		PageSize: 24,
	}

	require.NoError(t, s.SaveCatalog(ctx, "0xC0FFEE", snap))

	got, err := s.LoadCatalog(ctx, "0xC0FFEE")
	require.NoError(t, err)
	assert.Equal(t, snap, got)
}

func TestCatalogPrefs_Overwrite(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SaveCatalog(ctx, "p", catalog.Snapshot{Search: "one", Sort: catalog.DefaultSort}))
	require.NoError(t, s.SaveCatalog(ctx, "p", catalog.Snapshot{Search: "two", Sort: catalog.DefaultSort}))

	got, err := s.LoadCatalog(ctx, "p")
	require.NoError(t, err)
	assert.Equal(t, "two", got.Search)

	profiles, err := s.Profiles(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"p"}, profiles)
}

func TestCatalogPrefs_NotFound(t *testing.T) {
	s := createTestStore(t)

	_, err := s.LoadCatalog(context.Background(), "nobody")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestCatalogPrefs_Delete(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SaveCatalog(ctx, "b", catalog.Snapshot{Sort: catalog.DefaultSort}))
	require.NoError(t, s.SaveCatalog(ctx, "a", catalog.Snapshot{Sort: catalog.DefaultSort}))

	profiles, err := s.Profiles(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, profiles)

	deleted, err := s.DeleteCatalog(ctx, "a")
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = s.DeleteCatalog(ctx, "a")
	require.NoError(t, err)
	assert.False(t, deleted)

	_, err = s.LoadCatalog(ctx, "a")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestCatalogPrefs_RestoreIntoCatalog(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	src := catalog.New(catalog.Options{})
	src.SetSearch("fund")
	src.ToggleSort(catalog.SortMembers)
	src.SetPageSize(6)
	require.NoError(t, s.SaveCatalog(ctx, "p", src.Snapshot()))

	snap, err := s.LoadCatalog(ctx, "p")
	require.NoError(t, err)

	dst := catalog.New(catalog.Options{})
	dst.Restore(snap)
	assert.Equal(t, "fund", dst.Search())
	assert.Equal(t, catalog.SortConfig{Key: catalog.SortMembers, Direction: catalog.Desc}, dst.Sort())
	assert.Equal(t, 6, dst.PageSize())
	assert.Equal(t, 1, dst.Page())
}
