package reviews

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/mvaldez/beautyshelf-backend/pkg/db/models"
	pkgerrors "github.com/mvaldez/beautyshelf-backend/pkg/errors"
)

func setupReviewsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:reviews_%s?mode=memory&cache=shared&_foreign_keys=on", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Tag{},
		&models.Product{},
		&models.Review{},
	))
	return db
}

func seedReviewUser(t *testing.T, db *gorm.DB, username string) *models.User {
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

func seedReviewProduct(t *testing.T, db *gorm.DB, catalogID int64) *models.Product {
	t.Helper()

	product := &models.Product{
		CatalogID: catalogID,
		Brand:     "glossier",
		Name:      "Lip Gloss",
	}
	require.NoError(t, db.Create(product).Error)
	return product
}

func TestCreateBindsActingUser(t *testing.T) {
	db := setupReviewsTestDB(t)
	svc, err := NewService(NewRepository(db))
	require.NoError(t, err)

	user := seedReviewUser(t, db, "alice")
	product := seedReviewProduct(t, db, 100)

	review, err := svc.Create(context.Background(), user.ID, product.ID, "  lovely texture  ")
	require.NoError(t, err)
	assert.Equal(t, user.ID, review.UserID)
	assert.Equal(t, "lovely texture", review.Text)
}

func TestCreateRejectsInvalidText(t *testing.T) {
	db := setupReviewsTestDB(t)
	svc, err := NewService(NewRepository(db))
	require.NoError(t, err)

	user := seedReviewUser(t, db, "alice")
	product := seedReviewProduct(t, db, 100)

	var coded *pkgerrors.Error

	_, err = svc.Create(context.Background(), user.ID, product.ID, "   ")
	require.ErrorAs(t, err, &coded)
	assert.Equal(t, pkgerrors.CodeValidation, coded.Code())

	_, err = svc.Create(context.Background(), user.ID, product.ID, strings.Repeat("x", models.MaxReviewLength+1))
	require.ErrorAs(t, err, &coded)
	assert.Equal(t, pkgerrors.CodeValidation, coded.Code())

	_, err = svc.Create(context.Background(), uuid.Nil, product.ID, "fine")
	require.ErrorAs(t, err, &coded)
	assert.Equal(t, pkgerrors.CodeUnauthorized, coded.Code())
}

func TestListForProductNewestFirstCapped(t *testing.T) {
	db := setupReviewsTestDB(t)
	svc, err := NewService(NewRepository(db))
	require.NoError(t, err)

	user := seedReviewUser(t, db, "alice")
	product := seedReviewProduct(t, db, 100)

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 105; i++ {
		review := &models.Review{
			Text:      fmt.Sprintf("review %d", i),
			UserID:    user.ID,
			ProductID: product.ID,
			CreatedAt: base.Add(time.Duration(i) * time.Second),
		}
		require.NoError(t, db.Create(review).Error)
	}

	rows, err := svc.ListForProduct(context.Background(), product.ID)
	require.NoError(t, err)
	require.Len(t, rows, 100)
	assert.Equal(t, "review 104", rows[0].Text)
	assert.Equal(t, "alice", rows[0].Username)
	for i := 1; i < len(rows); i++ {
		assert.False(t, rows[i].CreatedAt.After(rows[i-1].CreatedAt))
	}
}

func TestDeleteRequiresOwnership(t *testing.T) {
	db := setupReviewsTestDB(t)
	svc, err := NewService(NewRepository(db))
	require.NoError(t, err)

	alice := seedReviewUser(t, db, "alice")
	bob := seedReviewUser(t, db, "bob")
	product := seedReviewProduct(t, db, 100)

	review, err := svc.Create(context.Background(), alice.ID, product.ID, "mine")
	require.NoError(t, err)

	err = svc.Delete(context.Background(), bob.ID, review.ID)
	var coded *pkgerrors.Error
	require.ErrorAs(t, err, &coded)
	assert.Equal(t, pkgerrors.CodeForbidden, coded.Code())

	var count int64
	require.NoError(t, db.Model(&models.Review{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	require.NoError(t, svc.Delete(context.Background(), alice.ID, review.ID))

	err = svc.Delete(context.Background(), alice.ID, review.ID)
	require.ErrorAs(t, err, &coded)
	assert.Equal(t, pkgerrors.CodeNotFound, coded.Code())
}

func TestDeletingUserCascadesOwnReviewsOnly(t *testing.T) {
	db := setupReviewsTestDB(t)
	svc, err := NewService(NewRepository(db))
	require.NoError(t, err)

	alice := seedReviewUser(t, db, "alice")
	bob := seedReviewUser(t, db, "bob")
	product := seedReviewProduct(t, db, 100)

	_, err = svc.Create(context.Background(), alice.ID, product.ID, "from alice")
	require.NoError(t, err)
	kept, err := svc.Create(context.Background(), bob.ID, product.ID, "from bob")
	require.NoError(t, err)

	require.NoError(t, db.Delete(&models.User{}, "id = ?", alice.ID).Error)

	rows, err := svc.ListForProduct(context.Background(), product.ID)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, kept.ID, rows[0].ID)
}
