package reviews

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mvaldez/beautyshelf-backend/pkg/db/models"
)

// listCap bounds how many reviews a single listing returns.
const listCap = 100

// Repository persists reviews.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a review row.
func (r *Repository) Create(ctx context.Context, dto CreateReviewDTO) (*models.Review, error) {
	review := &models.Review{
		Text:      dto.Text,
		UserID:    dto.UserID,
		ProductID: dto.ProductID,
	}
	if err := r.db.WithContext(ctx).Create(review).Error; err != nil {
		return nil, err
	}
	return review, nil
}

// FindByID loads one review.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Review, error) {
	var review models.Review
	if err := r.db.WithContext(ctx).First(&review, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &review, nil
}

// ListForProduct returns a product's reviews newest first, capped.
func (r *Repository) ListForProduct(ctx context.Context, productID uuid.UUID) ([]models.Review, error) {
	var rows []models.Review
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("product_id = ?", productID).
		Order("created_at DESC").
		Limit(listCap).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// ListForUser returns a user's reviews newest first, capped.
func (r *Repository) ListForUser(ctx context.Context, userID uuid.UUID) ([]models.Review, error) {
	var rows []models.Review
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(listCap).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// Delete removes a review row.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.Review{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
