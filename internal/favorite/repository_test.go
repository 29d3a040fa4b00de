package favorite

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupFavoriteRepoTestDB opens an in-memory database with hand-rolled
// schema. The production DDL is postgres-specific (uuid defaults), so the
// tables are created directly with the shapes the repository relies on.
func setupFavoriteRepoTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared&mode=memory"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	ddl := []string{
		`CREATE TABLE listings (id TEXT PRIMARY KEY, title TEXT, status TEXT)`,
		`CREATE TABLE favorites (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			listing_id TEXT NOT NULL,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE UNIQUE INDEX idx_user_listing ON favorites(user_id, listing_id)`,
	}
	for _, stmt := range ddl {
		require.NoError(t, db.Exec(stmt).Error)
	}

	t.Cleanup(func() {
		sqlDB, err := db.DB()
		if err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func insertListing(t *testing.T, db *gorm.DB, id uuid.UUID) {
	t.Helper()
	require.NoError(t, db.Exec(
		`INSERT INTO listings (id, title, status) VALUES (?, ?, ?)`,
		id, "Handmade ceramic mug", "active",
	).Error)
}

func countFavorites(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var count int64
	require.NoError(t, db.Table("favorites").Count(&count).Error)
	return count
}

func TestGORMRepository_Add_DuplicateCollapses(t *testing.T) {
	db := setupFavoriteRepoTestDB(t)
	repo := NewGORMRepository(db)
	ctx := context.Background()

	userID := uuid.New()
	listingID := uuid.New()
	insertListing(t, db, listingID)

	assert.NoError(t, repo.Add(ctx, userID, listingID))
	assert.NoError(t, repo.Add(ctx, userID, listingID))

	assert.Equal(t, int64(1), countFavorites(t, db))
}

func TestGORMRepository_Add_DistinctPairsCoexist(t *testing.T) {
	db := setupFavoriteRepoTestDB(t)
	repo := NewGORMRepository(db)
	ctx := context.Background()

	userID := uuid.New()
	otherUserID := uuid.New()
	listingID := uuid.New()
	insertListing(t, db, listingID)

	assert.NoError(t, repo.Add(ctx, userID, listingID))
	assert.NoError(t, repo.Add(ctx, otherUserID, listingID))

	assert.Equal(t, int64(2), countFavorites(t, db))
}

func TestGORMRepository_Remove_AbsentPairSucceeds(t *testing.T) {
	db := setupFavoriteRepoTestDB(t)
	repo := NewGORMRepository(db)
	ctx := context.Background()

	assert.NoError(t, repo.Remove(ctx, uuid.New(), uuid.New()))
}

func TestGORMRepository_Remove_DeletesOnlyThePair(t *testing.T) {
	db := setupFavoriteRepoTestDB(t)
	repo := NewGORMRepository(db)
	ctx := context.Background()

	userID := uuid.New()
	keepListingID := uuid.New()
	dropListingID := uuid.New()
	insertListing(t, db, keepListingID)
	insertListing(t, db, dropListingID)

	require.NoError(t, repo.Add(ctx, userID, keepListingID))
	require.NoError(t, repo.Add(ctx, userID, dropListingID))

	assert.NoError(t, repo.Remove(ctx, userID, dropListingID))
	assert.Equal(t, int64(1), countFavorites(t, db))
}

func TestGORMRepository_ListListings_DropsOrphans(t *testing.T) {
	db := setupFavoriteRepoTestDB(t)
	repo := NewGORMRepository(db)
	ctx := context.Background()

	userID := uuid.New()
	liveListingID := uuid.New()
	insertListing(t, db, liveListingID)

	require.NoError(t, repo.Add(ctx, userID, liveListingID))
	// A favorite whose listing is gone must not surface in the list.
	require.NoError(t, repo.Add(ctx, userID, uuid.New()))

	listings, pagination, err := repo.ListListings(ctx, userID, 1, 20)

	assert.NoError(t, err)
	assert.Len(t, listings, 1)
	assert.Equal(t, liveListingID, listings[0].ID)
	assert.Equal(t, int64(1), pagination.TotalItems)
}

func TestGORMRepository_ListListings_ScopedToUser(t *testing.T) {
	db := setupFavoriteRepoTestDB(t)
	repo := NewGORMRepository(db)
	ctx := context.Background()

	userID := uuid.New()
	otherUserID := uuid.New()
	listingID := uuid.New()
	insertListing(t, db, listingID)

	require.NoError(t, repo.Add(ctx, otherUserID, listingID))

	listings, pagination, err := repo.ListListings(ctx, userID, 1, 20)

	assert.NoError(t, err)
	assert.Len(t, listings, 0)
	assert.Equal(t, int64(0), pagination.TotalItems)
}

func TestGORMRepository_DeleteOrphans(t *testing.T) {
	db := setupFavoriteRepoTestDB(t)
	repo := NewGORMRepository(db)
	ctx := context.Background()

	userID := uuid.New()
	liveListingID := uuid.New()
	insertListing(t, db, liveListingID)

	require.NoError(t, repo.Add(ctx, userID, liveListingID))
	require.NoError(t, repo.Add(ctx, userID, uuid.New()))
	require.NoError(t, repo.Add(ctx, uuid.New(), uuid.New()))

	swept, err := repo.DeleteOrphans(ctx)

	assert.NoError(t, err)
	assert.Equal(t, int64(2), swept)
	assert.Equal(t, int64(1), countFavorites(t, db))
}
