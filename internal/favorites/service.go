package favorites

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mvaldez/beautyshelf-backend/internal/products"
	pkgerrors "github.com/mvaldez/beautyshelf-backend/pkg/errors"
)

// Service enforces that favorites always reference an existing product and a
// logged-in user.
type Service struct {
	repo     *Repository
	products *products.Repository
}

func NewService(repo *Repository, productsRepo *products.Repository) (*Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "favorites: repository is required")
	}
	if productsRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "favorites: products repository is required")
	}
	return &Service{repo: repo, products: productsRepo}, nil
}

// Toggle flips the favorite state and reports whether the product is now
// favorited by the user.
func (s *Service) Toggle(ctx context.Context, userID, productID uuid.UUID) (bool, error) {
	if userID == uuid.Nil {
		return false, pkgerrors.New(pkgerrors.CodeUnauthorized, "login required")
	}

	if _, err := s.products.FindByID(ctx, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return false, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "favorites: product lookup failed")
	}

	favorited, err := s.repo.Toggle(ctx, userID, productID)
	if err != nil {
		return false, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "favorites: toggle failed")
	}
	return favorited, nil
}

// IsFavorited reports whether the user currently favorites the product.
func (s *Service) IsFavorited(ctx context.Context, userID, productID uuid.UUID) (bool, error) {
	if userID == uuid.Nil {
		return false, nil
	}
	favorited, err := s.repo.IsFavorited(ctx, userID, productID)
	if err != nil {
		return false, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "favorites: lookup failed")
	}
	return favorited, nil
}

// ListForUser returns the user's favorited products, newest favorite first.
func (s *Service) ListForUser(ctx context.Context, userID uuid.UUID) ([]products.ProductDTO, error) {
	rows, err := s.repo.ListProductsForUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "favorites: listing failed")
	}
	dtos := make([]products.ProductDTO, 0, len(rows))
	for i := range rows {
		dtos = append(dtos, products.FromModel(&rows[i]))
	}
	return dtos, nil
}
