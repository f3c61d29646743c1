package service

import (
	"context"
	"testing"

	"cloudzz/internal/models"
	"cloudzz/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserService_UpdateProfile_PartialPatch(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := NewUserService(repository.NewUserRepository(db))
	ctx := context.Background()
	user := createServiceTestUser(t, db, "alice")

	bio := "link collector"
	theme := models.ThemeOcean
	updated, err := svc.UpdateProfile(ctx, UpdateProfileInput{
		UserID: user.ID,
		Bio:    &bio,
		Theme:  &theme,
	})
	require.NoError(t, err)
	assert.Equal(t, "link collector", updated.Bio)
	assert.Equal(t, models.ThemeOcean, updated.Theme)
	// Absent fields stay as they were.
	assert.Equal(t, "alice", updated.Username)
}

func TestUserService_UpdateProfile_UsernameTaken(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := NewUserService(repository.NewUserRepository(db))
	ctx := context.Background()
	createServiceTestUser(t, db, "alice")
	bob := createServiceTestUser(t, db, "bob")

	taken := "alice"
	_, err := svc.UpdateProfile(ctx, UpdateProfileInput{UserID: bob.ID, Username: &taken})
	assertErrorCode(t, err, models.ErrCodeConflict)
	assert.Equal(t, "Username taken", err.(*models.AppError).Message)

	// Setting your own current username is not a conflict.
	own := "bob"
	_, err = svc.UpdateProfile(ctx, UpdateProfileInput{UserID: bob.ID, Username: &own})
	assert.NoError(t, err)
}

func TestUserService_UpdateProfile_Validation(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := NewUserService(repository.NewUserRepository(db))
	ctx := context.Background()
	user := createServiceTestUser(t, db, "alice")

	short := "ab"
	_, err := svc.UpdateProfile(ctx, UpdateProfileInput{UserID: user.ID, Username: &short})
	assertErrorCode(t, err, models.ErrCodeValidation)

	badTheme := models.Theme("vaporwave")
	_, err = svc.UpdateProfile(ctx, UpdateProfileInput{UserID: user.ID, Theme: &badTheme})
	assertErrorCode(t, err, models.ErrCodeValidation)
}

func TestUserService_GetPublicProfile(t *testing.T) {
	db := setupServiceTestDB(t)
	userRepo := repository.NewUserRepository(db)
	linkRepo := repository.NewLinkRepository(db)
	svc := NewUserService(userRepo)
	ctx := context.Background()
	user := createServiceTestUser(t, db, "alice")

	for pos := 0; pos < 2; pos++ {
		require.NoError(t, linkRepo.Create(ctx, &models.Link{
			UserID:   user.ID,
			Title:    "t",
			URL:      "https://example.com",
			Position: pos,
		}))
	}

	profile, err := svc.GetPublicProfile(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "alice", profile.Username)
	require.Len(t, profile.Links, 2)
	assert.Equal(t, 0, profile.Links[0].Position)

	_, err = svc.GetPublicProfile(ctx, "nobody")
	assertErrorCode(t, err, models.ErrCodeNotFound)
}
