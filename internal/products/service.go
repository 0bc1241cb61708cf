package products

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/mvaldez/beautyshelf-backend/pkg/catalog"
	"github.com/mvaldez/beautyshelf-backend/pkg/db/models"
	pkgerrors "github.com/mvaldez/beautyshelf-backend/pkg/errors"
	"github.com/mvaldez/beautyshelf-backend/pkg/logger"
)

// CatalogClient is the slice of the external catalog the service depends on.
type CatalogClient interface {
	ListProducts(ctx context.Context, filter catalog.Filter) ([]catalog.Product, error)
	GetProduct(ctx context.Context, catalogID int64) (*catalog.Product, error)
}

// Service joins live catalog lookups with the locally persisted snapshots.
// Catalog outages degrade a view to local rows instead of failing the page.
type Service struct {
	repo    *Repository
	catalog CatalogClient
	log     *logger.Logger
}

func NewService(repo *Repository, catalogClient CatalogClient, log *logger.Logger) (*Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "products: repository is required")
	}
	if catalogClient == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "products: catalog client is required")
	}
	if log == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "products: logger is required")
	}
	return &Service{repo: repo, catalog: catalogClient, log: log}, nil
}

// Browse lists products from the live catalog, narrowed by the filter, next
// to whatever matching rows exist locally. When the catalog is unreachable
// the listing carries local rows only and is marked degraded.
func (s *Service) Browse(ctx context.Context, filter catalog.Filter) (*Listing, error) {
	listing := &Listing{}

	records, err := s.catalog.ListProducts(ctx, filter)
	if err != nil {
		s.log.Error(ctx, "catalog listing unavailable, serving local rows", err)
		listing.Degraded = true
	} else {
		listing.Catalog = records
	}

	local, err := s.localRows(ctx, filter)
	if err != nil {
		if listing.Degraded {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "products: local listing failed")
		}
		s.log.Error(ctx, "local product listing failed", err)
	} else {
		listing.Local = local
	}

	return listing, nil
}

// GetDetail resolves one product page. The live catalog record is preferred;
// a catalog outage or a delisted id falls back to the local snapshot when one
// exists. Not found only when both sources miss.
func (s *Service) GetDetail(ctx context.Context, catalogID int64) (*Detail, error) {
	detail := &Detail{}

	record, err := s.catalog.GetProduct(ctx, catalogID)
	switch {
	case err == nil:
		detail.Catalog = record
	case pkgerrors.As(err) != nil && pkgerrors.As(err).Code() == pkgerrors.CodeNotFound:
		// delisted upstream; a local snapshot still serves the page
	default:
		s.log.Error(ctx, "catalog product lookup unavailable, trying local snapshot", err)
		detail.Degraded = true
	}

	localRow, err := s.repo.FindByCatalogID(ctx, catalogID)
	switch {
	case err == nil:
		dto := FromModel(localRow)
		detail.Local = &dto
	case errors.Is(err, gorm.ErrRecordNotFound):
		if detail.Catalog == nil {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
	default:
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "products: local lookup failed")
	}

	return detail, nil
}

// EnsureLocal guarantees a local row exists for the catalog product and
// returns it. Reviews and favorites hang off this row.
func (s *Service) EnsureLocal(ctx context.Context, catalogID int64) (*ProductDTO, error) {
	if row, err := s.repo.FindByCatalogID(ctx, catalogID); err == nil {
		dto := FromModel(row)
		return &dto, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "products: local lookup failed")
	}

	record, err := s.catalog.GetProduct(ctx, catalogID)
	if err != nil {
		if typed := pkgerrors.As(err); typed != nil {
			return nil, typed
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "products: catalog lookup failed")
	}

	row, err := s.repo.Upsert(ctx, *record)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "products: persist failed")
	}
	dto := FromModel(row)
	return &dto, nil
}

// AutocompleteNames lists the distinct product names known locally.
func (s *Service) AutocompleteNames(ctx context.Context) ([]string, error) {
	names, err := s.repo.Names(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "products: name listing failed")
	}
	return names, nil
}

// Categories lists the locally known product types.
func (s *Service) Categories(ctx context.Context) ([]CategoryDTO, error) {
	rows, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "products: category listing failed")
	}
	dtos := make([]CategoryDTO, 0, len(rows))
	for _, row := range rows {
		dtos = append(dtos, CategoryDTO{ID: row.ID, ProductType: row.ProductType})
	}
	return dtos, nil
}

// Brands lists the locally known brands.
func (s *Service) Brands(ctx context.Context) ([]BrandDTO, error) {
	rows, err := s.repo.ListBrands(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "products: brand listing failed")
	}
	dtos := make([]BrandDTO, 0, len(rows))
	for _, row := range rows {
		dtos = append(dtos, BrandDTO{ID: row.ID, Name: row.Name})
	}
	return dtos, nil
}

// Tags lists the locally known product tags.
func (s *Service) Tags(ctx context.Context) ([]TagDTO, error) {
	rows, err := s.repo.ListTags(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "products: tag listing failed")
	}
	dtos := make([]TagDTO, 0, len(rows))
	for _, row := range rows {
		dtos = append(dtos, TagDTO{ID: row.ID, Name: row.Name})
	}
	return dtos, nil
}

func (s *Service) localRows(ctx context.Context, filter catalog.Filter) ([]ProductDTO, error) {
	switch {
	case filter.ProductType != "":
		found, err := s.repo.ListByProductType(ctx, filter.ProductType)
		if err != nil {
			return nil, err
		}
		return toDTOs(found), nil
	case filter.Brand != "":
		found, err := s.repo.ListByBrand(ctx, filter.Brand)
		if err != nil {
			return nil, err
		}
		return toDTOs(found), nil
	case filter.Tag != "":
		found, err := s.repo.ListByTag(ctx, filter.Tag)
		if err != nil {
			return nil, err
		}
		return toDTOs(found), nil
	default:
		found, err := s.repo.List(ctx)
		if err != nil {
			return nil, err
		}
		return toDTOs(found), nil
	}
}

func toDTOs(rows []models.Product) []ProductDTO {
	dtos := make([]ProductDTO, 0, len(rows))
	for i := range rows {
		dtos = append(dtos, FromModel(&rows[i]))
	}
	return dtos
}
