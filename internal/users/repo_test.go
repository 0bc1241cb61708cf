package users

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/mvaldez/beautyshelf-backend/pkg/db/models"
)

func setupUsersTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:users_%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&models.User{}))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, username, email string) *models.User {
	t.Helper()

	user := &models.User{
		Email:        email,
		Username:     username,
		ImageURL:     models.DefaultUserImageURL,
		PasswordHash: "hash",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func TestRepositoryCreateAppliesDefaultImage(t *testing.T) {
	db := setupUsersTestDB(t)
	repo := NewRepository(db)

	user, err := repo.Create(context.Background(), CreateUserDTO{
		Email:        "alice@example.com",
		Username:     "alice",
		PasswordHash: "hash",
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, user.ID)
	assert.Equal(t, models.DefaultUserImageURL, user.ImageURL)
}

func TestRepositoryFindByUsername(t *testing.T) {
	db := setupUsersTestDB(t)
	repo := NewRepository(db)
	seeded := seedUser(t, db, "alice", "alice@example.com")

	found, err := repo.FindByUsername(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, seeded.ID, found.ID)

	_, err = repo.FindByUsername(context.Background(), "nobody")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepositorySearch(t *testing.T) {
	db := setupUsersTestDB(t)
	repo := NewRepository(db)
	seedUser(t, db, "alice", "alice@example.com")
	seedUser(t, db, "alina", "alina@example.com")
	seedUser(t, db, "bob", "bob@example.com")

	matches, err := repo.Search(context.Background(), "ali")
	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Equal(t, "alice", matches[0].Username)
	assert.Equal(t, "alina", matches[1].Username)

	all, err := repo.Search(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestRepositoryUpdateProfile(t *testing.T) {
	db := setupUsersTestDB(t)
	repo := NewRepository(db)
	seeded := seedUser(t, db, "alice", "alice@example.com")

	err := repo.UpdateProfile(context.Background(), seeded.ID, UpdateProfileDTO{
		Email:    "new@example.com",
		Username: "alice2",
		ImageURL: "/static/images/custom.png",
	})
	require.NoError(t, err)

	updated, err := repo.FindByID(context.Background(), seeded.ID)
	require.NoError(t, err)
	assert.Equal(t, "new@example.com", updated.Email)
	assert.Equal(t, "alice2", updated.Username)
	assert.Equal(t, "/static/images/custom.png", updated.ImageURL)
}

func TestRepositoryDelete(t *testing.T) {
	db := setupUsersTestDB(t)
	repo := NewRepository(db)
	seeded := seedUser(t, db, "alice", "alice@example.com")

	require.NoError(t, repo.Delete(context.Background(), seeded.ID))

	_, err := repo.FindByID(context.Background(), seeded.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	err = repo.Delete(context.Background(), uuid.New())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
