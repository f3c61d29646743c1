package repository

import (
	"context"
	"testing"

	"cloudzz/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupLinkTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Link{}))
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := &models.User{Username: username, Email: username + "@example.com", Password: "pw"}
	require.NoError(t, db.Create(user).Error)
	return user
}

func TestLinkRepository_ListByUser_SortedByPosition(t *testing.T) {
	db := setupLinkTestDB(t)
	repo := NewLinkRepository(db)
	ctx := context.Background()
	user := createTestUser(t, db, "alice")

	// Insert out of order on purpose.
	for _, pos := range []int{2, 0, 1} {
		require.NoError(t, repo.Create(ctx, &models.Link{
			UserID:   user.ID,
			Title:    "link",
			URL:      "https://example.com",
			Position: pos,
		}))
	}

	links, err := repo.ListByUser(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, links, 3)
	for i, l := range links {
		assert.Equal(t, i, l.Position)
	}
}

func TestLinkRepository_ListByUser_OnlyOwnLinks(t *testing.T) {
	db := setupLinkTestDB(t)
	repo := NewLinkRepository(db)
	ctx := context.Background()
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	require.NoError(t, repo.Create(ctx, &models.Link{UserID: alice.ID, Title: "a", URL: "https://a.example"}))
	require.NoError(t, repo.Create(ctx, &models.Link{UserID: bob.ID, Title: "b", URL: "https://b.example"}))

	links, err := repo.ListByUser(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, links, 1)
	assert.Equal(t, alice.ID, links[0].UserID)

	count, err := repo.CountByUser(ctx, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	ids, err := repo.IDsByUser(ctx, bob.ID)
	require.NoError(t, err)
	require.Len(t, ids, 1)
}

func TestLinkRepository_GetByID_NotFound(t *testing.T) {
	db := setupLinkTestDB(t)
	repo := NewLinkRepository(db)

	link, err := repo.GetByID(context.Background(), 42)
	assert.Nil(t, link)
	require.Error(t, err)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.ErrCodeNotFound, appErr.Code)
}

func TestLinkRepository_Delete(t *testing.T) {
	db := setupLinkTestDB(t)
	repo := NewLinkRepository(db)
	ctx := context.Background()
	user := createTestUser(t, db, "alice")

	link := &models.Link{UserID: user.ID, Title: "t", URL: "https://example.com"}
	require.NoError(t, repo.Create(ctx, link))

	require.NoError(t, repo.Delete(ctx, link.ID))

	// Second delete reports NotFound, not silent success.
	err := repo.Delete(ctx, link.ID)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.ErrCodeNotFound, appErr.Code)
}

func TestLinkRepository_Reorder(t *testing.T) {
	db := setupLinkTestDB(t)
	repo := NewLinkRepository(db)
	ctx := context.Background()
	user := createTestUser(t, db, "alice")

	var ids []uint
	for pos := 0; pos < 3; pos++ {
		l := &models.Link{UserID: user.ID, Title: "t", URL: "https://example.com", Position: pos}
		require.NoError(t, repo.Create(ctx, l))
		ids = append(ids, l.ID)
	}

	// Reverse the order.
	err := repo.Reorder(ctx, []LinkOrder{
		{ID: ids[0], Position: 2},
		{ID: ids[1], Position: 1},
		{ID: ids[2], Position: 0},
	})
	require.NoError(t, err)

	links, err := repo.ListByUser(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, links, 3)
	assert.Equal(t, ids[2], links[0].ID)
	assert.Equal(t, ids[1], links[1].ID)
	assert.Equal(t, ids[0], links[2].ID)
}
