package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/mvaldez/beautyshelf-backend/pkg/config"
	pkgerrors "github.com/mvaldez/beautyshelf-backend/pkg/errors"
)

func testClient(baseURL string, maxRetries int) *Client {
	return New(config.CatalogConfig{
		BaseURL:    baseURL,
		Timeout:    2 * time.Second,
		MaxRetries: maxRetries,
		RetryDelay: time.Millisecond,
	})
}

func TestListProductsAppliesFilter(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id":1,"brand":"colourpop","name":"Blush","product_type":"blush","tag_list":["Vegan"]}]`))
	}))
	defer srv.Close()

	products, err := testClient(srv.URL, 0).ListProducts(context.Background(), Filter{ProductType: "blush"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if gotQuery != "product_type=blush" {
		t.Fatalf("unexpected query %q", gotQuery)
	}
	if len(products) != 1 || products[0].Brand != "colourpop" {
		t.Fatalf("unexpected products %+v", products)
	}
}

func TestListProductsRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	if _, err := testClient(srv.URL, 2).ListProducts(context.Background(), Filter{}); err != nil {
		t.Fatalf("expected retry to recover, got %v", err)
	}
	if calls.Load() != 2 {
		t.Fatalf("expected 2 calls, got %d", calls.Load())
	}
}

func TestListProductsReturnsDependencyErrorAfterExhaustion(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := testClient(srv.URL, 1).ListProducts(context.Background(), Filter{})
	if err == nil {
		t.Fatal("expected error")
	}
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency error, got %v", err)
	}
}

func TestGetProductNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := testClient(srv.URL, 2).GetProduct(context.Background(), 99)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not-found error, got %v", err)
	}
}

func TestGetProductMalformedBodyIsNotRetried(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Write([]byte(`{not json`))
	}))
	defer srv.Close()

	if _, err := testClient(srv.URL, 3).GetProduct(context.Background(), 1); err == nil {
		t.Fatal("expected decode error")
	}
	if calls.Load() != 1 {
		t.Fatalf("malformed body should not retry, got %d calls", calls.Load())
	}
}
