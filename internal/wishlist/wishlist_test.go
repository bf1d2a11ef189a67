package wishlist

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/mashop/storefront/internal/catalog"
	"github.com/mashop/storefront/internal/models"
)

const sessionID = "test-session"

func InitTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect to in-memory db: %v", err)
	}

	if err := db.AutoMigrate(&models.WishlistEntry{}); err != nil {
		t.Fatalf("failed to migrate tables: %v", err)
	}

	return db
}

func TestAddIsIdempotent(t *testing.T) {
	store := &Store{DB: InitTestDB(t)}
	ctx := context.Background()

	p := catalog.Product{ID: 7, Title: "Wireless Mouse", Price: 25.50, Rating: 4.2, Stock: 5}
	first, err := store.Add(ctx, sessionID, p)
	require.NoError(t, err)
	second, err := store.Add(ctx, sessionID, p)
	require.NoError(t, err)
	require.Equal(t, first.ID, second.ID)

	entries, err := store.List(ctx, sessionID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "Wireless Mouse", entries[0].Title)
}

func TestRemoveThenContains(t *testing.T) {
	store := &Store{DB: InitTestDB(t)}
	ctx := context.Background()

	_, err := store.Add(ctx, sessionID, catalog.Product{ID: 7, Title: "Wireless Mouse"})
	require.NoError(t, err)

	in, err := store.Contains(ctx, sessionID, 7)
	require.NoError(t, err)
	require.True(t, in)

	require.NoError(t, store.Remove(ctx, sessionID, 7))

	in, err = store.Contains(ctx, sessionID, 7)
	require.NoError(t, err)
	require.False(t, in)
}

func TestRemoveIsNoopWhenAbsent(t *testing.T) {
	store := &Store{DB: InitTestDB(t)}

	require.NoError(t, store.Remove(context.Background(), sessionID, 42))
}

func TestListKeepsInsertionOrderPerSession(t *testing.T) {
	store := &Store{DB: InitTestDB(t)}
	ctx := context.Background()

	for _, p := range []catalog.Product{
		{ID: 3, Title: "Band Tee"},
		{ID: 1, Title: "Zen Garden Kit"},
		{ID: 2, Title: "Amber Candle"},
	} {
		_, err := store.Add(ctx, sessionID, p)
		require.NoError(t, err)
	}
	_, err := store.Add(ctx, "other-session", catalog.Product{ID: 9, Title: "Desk Lamp"})
	require.NoError(t, err)

	entries, err := store.List(ctx, sessionID)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	require.Equal(t, []int{3, 1, 2}, []int{entries[0].ProductID, entries[1].ProductID, entries[2].ProductID})
}
