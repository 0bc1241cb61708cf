package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Product is a locally persisted snapshot of a catalog entry.
type Product struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey"`
	CatalogID  int64      `gorm:"column:catalog_id;not null;uniqueIndex:idx_products_catalog_id"`
	Brand      string     `gorm:"type:text"`
	Name       string     `gorm:"type:text"`
	ImageURL   string     `gorm:"column:image_url"`
	TagList    string     `gorm:"column:tag_list"`
	CategoryID *uuid.UUID `gorm:"column:category_id;type:uuid"`
	TagID      *uuid.UUID `gorm:"column:tag_id;type:uuid"`
	CreatedAt  time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time  `gorm:"column:updated_at;autoUpdateTime"`

	Category *Category `gorm:"constraint:OnDelete:SET NULL"`
	Tag      *Tag      `gorm:"constraint:OnDelete:SET NULL"`
	Reviews  []Review  `gorm:"constraint:OnDelete:CASCADE"`
}

func (p *Product) BeforeCreate(*gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// Category groups products by the catalog's product_type field.
type Category struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	ProductType string    `gorm:"column:product_type;type:text;not null;uniqueIndex:idx_categories_product_type"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (c *Category) BeforeCreate(*gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// Tag is a catalog product tag such as "Vegan" or "cruelty free".
type Tag struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (t *Tag) BeforeCreate(*gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// Brand is a catalog brand name.
type Brand struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"type:text;not null;uniqueIndex:idx_brands_name"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (b *Brand) BeforeCreate(*gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}
