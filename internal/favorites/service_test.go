package favorites

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/mvaldez/beautyshelf-backend/internal/products"
	"github.com/mvaldez/beautyshelf-backend/pkg/db/models"
	pkgerrors "github.com/mvaldez/beautyshelf-backend/pkg/errors"
)

func setupFavoritesTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:favorites_%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Tag{},
		&models.Product{},
		&models.Favorite{},
	))
	return db
}

func newFavoritesTestService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()

	db := setupFavoritesTestDB(t)
	svc, err := NewService(NewRepository(db), products.NewRepository(db))
	require.NoError(t, err)
	return svc, db
}

func seedFavoriteUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()

	user := &models.User{
		Email:        username + "@example.com",
		Username:     username,
		ImageURL:     models.DefaultUserImageURL,
		PasswordHash: "hash",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedFavoriteProduct(t *testing.T, db *gorm.DB, catalogID int64, name string) *models.Product {
	t.Helper()

	product := &models.Product{CatalogID: catalogID, Brand: "glossier", Name: name}
	require.NoError(t, db.Create(product).Error)
	return product
}

func TestToggleFlipsState(t *testing.T) {
	svc, db := newFavoritesTestService(t)
	user := seedFavoriteUser(t, db, "alice")
	product := seedFavoriteProduct(t, db, 100, "Lip Gloss")

	favorited, err := svc.Toggle(context.Background(), user.ID, product.ID)
	require.NoError(t, err)
	assert.True(t, favorited)

	favorited, err = svc.Toggle(context.Background(), user.ID, product.ID)
	require.NoError(t, err)
	assert.False(t, favorited)

	var count int64
	require.NoError(t, db.Model(&models.Favorite{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestToggleAllowsTwoUsersOnSameProduct(t *testing.T) {
	svc, db := newFavoritesTestService(t)
	alice := seedFavoriteUser(t, db, "alice")
	bob := seedFavoriteUser(t, db, "bob")
	product := seedFavoriteProduct(t, db, 100, "Lip Gloss")

	favorited, err := svc.Toggle(context.Background(), alice.ID, product.ID)
	require.NoError(t, err)
	assert.True(t, favorited)

	favorited, err = svc.Toggle(context.Background(), bob.ID, product.ID)
	require.NoError(t, err)
	assert.True(t, favorited)

	var count int64
	require.NoError(t, db.Model(&models.Favorite{}).Count(&count).Error)
	assert.EqualValues(t, 2, count)
}

func TestToggleRejectsUnknownProductAndAnonymous(t *testing.T) {
	svc, db := newFavoritesTestService(t)
	user := seedFavoriteUser(t, db, "alice")

	var coded *pkgerrors.Error

	_, err := svc.Toggle(context.Background(), user.ID, uuid.New())
	require.ErrorAs(t, err, &coded)
	assert.Equal(t, pkgerrors.CodeNotFound, coded.Code())

	_, err = svc.Toggle(context.Background(), uuid.Nil, uuid.New())
	require.ErrorAs(t, err, &coded)
	assert.Equal(t, pkgerrors.CodeUnauthorized, coded.Code())
}

func TestListForUserReturnsOwnFavoritesOnly(t *testing.T) {
	svc, db := newFavoritesTestService(t)
	alice := seedFavoriteUser(t, db, "alice")
	bob := seedFavoriteUser(t, db, "bob")
	gloss := seedFavoriteProduct(t, db, 100, "Lip Gloss")
	brow := seedFavoriteProduct(t, db, 101, "Boy Brow")

	_, err := svc.Toggle(context.Background(), alice.ID, gloss.ID)
	require.NoError(t, err)
	_, err = svc.Toggle(context.Background(), bob.ID, brow.ID)
	require.NoError(t, err)

	mine, err := svc.ListForUser(context.Background(), alice.ID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "Lip Gloss", mine[0].Name)
}
