package products

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvaldez/beautyshelf-backend/pkg/catalog"
	pkgerrors "github.com/mvaldez/beautyshelf-backend/pkg/errors"
	"github.com/mvaldez/beautyshelf-backend/pkg/logger"
)

type stubCatalog struct {
	products []catalog.Product
	byID     map[int64]*catalog.Product
	err      error
}

func (s *stubCatalog) ListProducts(context.Context, catalog.Filter) ([]catalog.Product, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.products, nil
}

func (s *stubCatalog) GetProduct(_ context.Context, catalogID int64) (*catalog.Product, error) {
	if s.err != nil {
		return nil, s.err
	}
	if record, ok := s.byID[catalogID]; ok {
		return record, nil
	}
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "catalog product not found")
}

func newProductsTestService(t *testing.T, stub *stubCatalog) (*Service, *Repository) {
	t.Helper()

	repo := NewRepository(setupProductsTestDB(t))
	svc, err := NewService(repo, stub, logger.New(logger.Options{ServiceName: "test", Output: io.Discard}))
	require.NoError(t, err)
	return svc, repo
}

func TestBrowseReturnsCatalogAndLocalRows(t *testing.T) {
	record := sampleRecord(100)
	svc, repo := newProductsTestService(t, &stubCatalog{products: []catalog.Product{record}})

	_, err := repo.Upsert(context.Background(), record)
	require.NoError(t, err)

	listing, err := svc.Browse(context.Background(), catalog.Filter{})
	require.NoError(t, err)
	assert.False(t, listing.Degraded)
	assert.Len(t, listing.Catalog, 1)
	assert.Len(t, listing.Local, 1)
}

func TestBrowseDegradesToLocalRowsOnCatalogFailure(t *testing.T) {
	stub := &stubCatalog{err: pkgerrors.New(pkgerrors.CodeDependency, "catalog request failed")}
	svc, repo := newProductsTestService(t, stub)

	_, err := repo.Upsert(context.Background(), sampleRecord(100))
	require.NoError(t, err)

	listing, err := svc.Browse(context.Background(), catalog.Filter{})
	require.NoError(t, err)
	assert.True(t, listing.Degraded)
	assert.Empty(t, listing.Catalog)
	require.Len(t, listing.Local, 1)
	assert.EqualValues(t, 100, listing.Local[0].CatalogID)
}

func TestGetDetailNotFound(t *testing.T) {
	svc, _ := newProductsTestService(t, &stubCatalog{byID: map[int64]*catalog.Product{}})

	_, err := svc.GetDetail(context.Background(), 999)
	var coded *pkgerrors.Error
	require.ErrorAs(t, err, &coded)
	assert.Equal(t, pkgerrors.CodeNotFound, coded.Code())
}

func TestGetDetailFallsBackToLocalSnapshot(t *testing.T) {
	stub := &stubCatalog{err: pkgerrors.New(pkgerrors.CodeDependency, "catalog request failed")}
	svc, repo := newProductsTestService(t, stub)

	_, err := repo.Upsert(context.Background(), sampleRecord(100))
	require.NoError(t, err)

	detail, err := svc.GetDetail(context.Background(), 100)
	require.NoError(t, err)
	assert.True(t, detail.Degraded)
	assert.Nil(t, detail.Catalog)
	require.NotNil(t, detail.Local)
	assert.Equal(t, "Lip Gloss", detail.Local.Name)
}

func TestGetDetailServesLocalRowForDelistedProduct(t *testing.T) {
	// the catalog answers, but no longer knows the id
	svc, repo := newProductsTestService(t, &stubCatalog{byID: map[int64]*catalog.Product{}})

	_, err := repo.Upsert(context.Background(), sampleRecord(100))
	require.NoError(t, err)

	detail, err := svc.GetDetail(context.Background(), 100)
	require.NoError(t, err)
	assert.False(t, detail.Degraded)
	assert.Nil(t, detail.Catalog)
	require.NotNil(t, detail.Local)
	assert.EqualValues(t, 100, detail.Local.CatalogID)
}

func TestEnsureLocalPersistsCatalogRecord(t *testing.T) {
	record := sampleRecord(100)
	stub := &stubCatalog{byID: map[int64]*catalog.Product{100: &record}}
	svc, repo := newProductsTestService(t, stub)

	dto, err := svc.EnsureLocal(context.Background(), 100)
	require.NoError(t, err)
	assert.EqualValues(t, 100, dto.CatalogID)

	row, err := repo.FindByCatalogID(context.Background(), 100)
	require.NoError(t, err)
	assert.Equal(t, "Lip Gloss", row.Name)

	again, err := svc.EnsureLocal(context.Background(), 100)
	require.NoError(t, err)
	assert.Equal(t, dto.ID, again.ID)
}
