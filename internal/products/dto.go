package products

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mvaldez/beautyshelf-backend/pkg/catalog"
	"github.com/mvaldez/beautyshelf-backend/pkg/db/models"
)

// ProductDTO is the locally persisted view of a catalog product.
type ProductDTO struct {
	ID        uuid.UUID `json:"id"`
	CatalogID int64     `json:"catalog_id"`
	Brand     string    `json:"brand"`
	Name      string    `json:"name"`
	ImageURL  string    `json:"image_url"`
	Tags      []string  `json:"tags"`
	CreatedAt time.Time `json:"created_at"`
}

// Listing is what a browse view renders. Catalog holds the live records from
// the external API; Degraded is set when the catalog was unreachable and the
// view fell back to local rows only.
type Listing struct {
	Catalog  []catalog.Product
	Local    []ProductDTO
	Degraded bool
}

// Detail is a single product page. Catalog is nil when the record only exists
// locally, for example because the external API is down.
type Detail struct {
	Catalog  *catalog.Product
	Local    *ProductDTO
	Degraded bool
}

// CategoryDTO mirrors a catalog product type persisted locally.
type CategoryDTO struct {
	ID          uuid.UUID `json:"id"`
	ProductType string    `json:"product_type"`
}

// BrandDTO mirrors a catalog brand persisted locally.
type BrandDTO struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// TagDTO mirrors a catalog product tag persisted locally.
type TagDTO struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// FromModel converts a stored product row.
func FromModel(p *models.Product) ProductDTO {
	return ProductDTO{
		ID:        p.ID,
		CatalogID: p.CatalogID,
		Brand:     p.Brand,
		Name:      p.Name,
		ImageURL:  p.ImageURL,
		Tags:      splitTagList(p.TagList),
		CreatedAt: p.CreatedAt,
	}
}

func splitTagList(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	tags := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			tags = append(tags, trimmed)
		}
	}
	return tags
}

func joinTagList(tags []string) string {
	return strings.Join(tags, ",")
}
