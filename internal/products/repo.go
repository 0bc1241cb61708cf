package products

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mvaldez/beautyshelf-backend/pkg/catalog"
	"github.com/mvaldez/beautyshelf-backend/pkg/db/models"
)

// Repository persists local snapshots of catalog products together with their
// category, tag, and brand lookup rows.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindByID loads a local product row by its UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// FindByCatalogID loads a local product row by the external catalog number.
func (r *Repository) FindByCatalogID(ctx context.Context, catalogID int64) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).Where("catalog_id = ?", catalogID).First(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// Upsert stores a catalog record locally, creating or refreshing the row keyed
// on catalog_id. Category, tag, and brand lookup rows are ensured alongside.
func (r *Repository) Upsert(ctx context.Context, record catalog.Product) (*models.Product, error) {
	var saved *models.Product
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		categoryID, err := ensureCategory(tx, record.ProductType)
		if err != nil {
			return err
		}
		tagID, err := ensureTag(tx, firstTag(record.TagList))
		if err != nil {
			return err
		}
		if err := ensureBrand(tx, record.Brand); err != nil {
			return err
		}

		product := models.Product{
			CatalogID:  record.ID,
			Brand:      record.Brand,
			Name:       record.Name,
			ImageURL:   record.ImageLink,
			TagList:    joinTagList(record.TagList),
			CategoryID: categoryID,
			TagID:      tagID,
		}
		if err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "catalog_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"brand", "name", "image_url", "tag_list", "category_id", "tag_id", "updated_at",
			}),
		}).Create(&product).Error; err != nil {
			return err
		}

		var persisted models.Product
		if err := tx.Where("catalog_id = ?", record.ID).First(&persisted).Error; err != nil {
			return err
		}
		saved = &persisted
		return nil
	})
	if err != nil {
		return nil, err
	}
	return saved, nil
}

// List returns every local product row, newest first.
func (r *Repository) List(ctx context.Context) ([]models.Product, error) {
	var rows []models.Product
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// ListByProductType returns local products whose category matches the type.
func (r *Repository) ListByProductType(ctx context.Context, productType string) ([]models.Product, error) {
	var rows []models.Product
	err := r.db.WithContext(ctx).
		Joins("JOIN categories ON categories.id = products.category_id").
		Where("categories.product_type = ?", productType).
		Order("products.created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// ListByBrand returns local products for one brand name.
func (r *Repository) ListByBrand(ctx context.Context, brand string) ([]models.Product, error) {
	var rows []models.Product
	err := r.db.WithContext(ctx).
		Where("brand = ?", brand).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// ListByTag returns local products whose tag list mentions the tag.
func (r *Repository) ListByTag(ctx context.Context, tag string) ([]models.Product, error) {
	var rows []models.Product
	err := r.db.WithContext(ctx).
		Where("tag_list LIKE ?", "%"+tag+"%").
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// Names returns the distinct product names stored locally, for autocomplete.
func (r *Repository) Names(ctx context.Context) ([]string, error) {
	var names []string
	err := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Distinct("name").
		Order("name ASC").
		Pluck("name", &names).Error
	if err != nil {
		return nil, err
	}
	return names, nil
}

// ListCategories returns all category rows ordered by product type.
func (r *Repository) ListCategories(ctx context.Context) ([]models.Category, error) {
	var rows []models.Category
	if err := r.db.WithContext(ctx).Order("product_type ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// ListBrands returns all brand rows ordered by name.
func (r *Repository) ListBrands(ctx context.Context) ([]models.Brand, error) {
	var rows []models.Brand
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// ListTags returns all tag rows ordered by name.
func (r *Repository) ListTags(ctx context.Context) ([]models.Tag, error) {
	var rows []models.Tag
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func ensureCategory(tx *gorm.DB, productType string) (*uuid.UUID, error) {
	if productType == "" {
		return nil, nil
	}
	category := models.Category{ProductType: productType}
	if err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "product_type"}},
		DoNothing: true,
	}).Create(&category).Error; err != nil {
		return nil, err
	}
	var persisted models.Category
	if err := tx.Where("product_type = ?", productType).First(&persisted).Error; err != nil {
		return nil, err
	}
	return &persisted.ID, nil
}

func ensureTag(tx *gorm.DB, name string) (*uuid.UUID, error) {
	if name == "" {
		return nil, nil
	}
	var persisted models.Tag
	err := tx.Where("name = ?", name).First(&persisted).Error
	if err == nil {
		return &persisted.ID, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	tag := models.Tag{Name: name}
	if err := tx.Create(&tag).Error; err != nil {
		return nil, err
	}
	return &tag.ID, nil
}

func ensureBrand(tx *gorm.DB, name string) error {
	if name == "" {
		return nil
	}
	brand := models.Brand{Name: name}
	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoNothing: true,
	}).Create(&brand).Error
}

func firstTag(tags []string) string {
	if len(tags) == 0 {
		return ""
	}
	return tags[0]
}
