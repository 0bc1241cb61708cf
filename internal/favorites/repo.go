package favorites

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mvaldez/beautyshelf-backend/pkg/db/models"
)

// Repository persists the user/product favorite pairs.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Toggle flips the favorite state for one (user, product) pair and reports
// the resulting state. The insert races through the unique pair index so two
// concurrent toggles cannot produce duplicate rows.
func (r *Repository) Toggle(ctx context.Context, userID, productID uuid.UUID) (bool, error) {
	favorite := models.Favorite{UserID: userID, ProductID: productID}

	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "product_id"}},
		DoNothing: true,
	}).Create(&favorite)
	if result.Error != nil {
		return false, result.Error
	}
	if result.RowsAffected > 0 {
		return true, nil
	}

	err := r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&models.Favorite{}).Error
	if err != nil {
		return false, err
	}
	return false, nil
}

// IsFavorited reports whether the pair exists.
func (r *Repository) IsFavorited(ctx context.Context, userID, productID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Favorite{}).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListProductsForUser returns the products a user has favorited, most
// recently favorited first.
func (r *Repository) ListProductsForUser(ctx context.Context, userID uuid.UUID) ([]models.Product, error) {
	var rows []models.Product
	err := r.db.WithContext(ctx).
		Joins("JOIN favorites ON favorites.product_id = products.id").
		Where("favorites.user_id = ?", userID).
		Order("favorites.created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
