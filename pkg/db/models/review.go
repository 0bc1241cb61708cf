package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MaxReviewLength bounds the review body, matching the column width.
const MaxReviewLength = 140

// Review is a user's write-up for a product.
type Review struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Text      string    `gorm:"type:varchar(140);not null"`
	UserID    uuid.UUID `gorm:"column:user_id;type:uuid;not null;index:idx_reviews_user_id"`
	ProductID uuid.UUID `gorm:"column:product_id;type:uuid;not null;index:idx_reviews_product_id"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`

	User    *User    `gorm:"constraint:OnDelete:CASCADE"`
	Product *Product `gorm:"constraint:OnDelete:CASCADE"`
}

func (r *Review) BeforeCreate(*gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
