package products

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/mvaldez/beautyshelf-backend/pkg/catalog"
	"github.com/mvaldez/beautyshelf-backend/pkg/db/models"
)

func setupProductsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:products_%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.Category{},
		&models.Tag{},
		&models.Brand{},
		&models.Product{},
	))
	return db
}

func sampleRecord(id int64) catalog.Product {
	return catalog.Product{
		ID:          id,
		Brand:       "glossier",
		Name:        "Lip Gloss",
		ImageLink:   "https://example.com/gloss.png",
		ProductType: "lip_gloss",
		TagList:     []string{"Vegan", "cruelty free"},
	}
}

func TestRepositoryUpsertCreatesLookupRows(t *testing.T) {
	db := setupProductsTestDB(t)
	repo := NewRepository(db)

	saved, err := repo.Upsert(context.Background(), sampleRecord(100))
	require.NoError(t, err)
	assert.EqualValues(t, 100, saved.CatalogID)
	assert.Equal(t, "Vegan,cruelty free", saved.TagList)
	require.NotNil(t, saved.CategoryID)
	require.NotNil(t, saved.TagID)

	var category models.Category
	require.NoError(t, db.First(&category, "id = ?", saved.CategoryID).Error)
	assert.Equal(t, "lip_gloss", category.ProductType)

	var brandCount int64
	require.NoError(t, db.Model(&models.Brand{}).Where("name = ?", "glossier").Count(&brandCount).Error)
	assert.EqualValues(t, 1, brandCount)
}

func TestRepositoryUpsertRefreshesExistingRow(t *testing.T) {
	db := setupProductsTestDB(t)
	repo := NewRepository(db)

	first, err := repo.Upsert(context.Background(), sampleRecord(100))
	require.NoError(t, err)

	updated := sampleRecord(100)
	updated.Name = "Lip Gloss Ultra"
	second, err := repo.Upsert(context.Background(), updated)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "Lip Gloss Ultra", second.Name)

	var count int64
	require.NoError(t, db.Model(&models.Product{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestRepositoryListByProductType(t *testing.T) {
	db := setupProductsTestDB(t)
	repo := NewRepository(db)

	_, err := repo.Upsert(context.Background(), sampleRecord(100))
	require.NoError(t, err)

	other := sampleRecord(101)
	other.ProductType = "mascara"
	other.Name = "Boy Brow"
	_, err = repo.Upsert(context.Background(), other)
	require.NoError(t, err)

	rows, err := repo.ListByProductType(context.Background(), "lip_gloss")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Lip Gloss", rows[0].Name)
}

func TestRepositoryListByTag(t *testing.T) {
	db := setupProductsTestDB(t)
	repo := NewRepository(db)

	_, err := repo.Upsert(context.Background(), sampleRecord(100))
	require.NoError(t, err)

	rows, err := repo.ListByTag(context.Background(), "Vegan")
	require.NoError(t, err)
	assert.Len(t, rows, 1)

	rows, err = repo.ListByTag(context.Background(), "Gluten Free")
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestRepositoryNames(t *testing.T) {
	db := setupProductsTestDB(t)
	repo := NewRepository(db)

	_, err := repo.Upsert(context.Background(), sampleRecord(100))
	require.NoError(t, err)

	other := sampleRecord(101)
	other.Name = "Boy Brow"
	_, err = repo.Upsert(context.Background(), other)
	require.NoError(t, err)

	names, err := repo.Names(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Boy Brow", "Lip Gloss"}, names)
}
