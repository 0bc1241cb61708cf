package controllers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/mvaldez/beautyshelf-backend/api/forms"
	"github.com/mvaldez/beautyshelf-backend/api/render"
	"github.com/mvaldez/beautyshelf-backend/internal/favorites"
	"github.com/mvaldez/beautyshelf-backend/internal/products"
	"github.com/mvaldez/beautyshelf-backend/internal/reviews"
	"github.com/mvaldez/beautyshelf-backend/internal/users"
	"github.com/mvaldez/beautyshelf-backend/pkg/catalog"
	pkgerrors "github.com/mvaldez/beautyshelf-backend/pkg/errors"
)

type homeData struct {
	Listing *products.Listing
	Tags    []products.TagDTO
}

// Home renders the landing page with the catalog listing and a tag search.
func Home(productsSvc *products.Service, usersSvc *users.Service, renderer *render.Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		me := currentUser(ctx, usersSvc)

		listing, err := productsSvc.Browse(ctx, catalog.Filter{})
		if err != nil {
			renderer.Error(w, r, me, err, "/")
			return
		}

		// a failed tag listing leaves the search select empty
		tags, _ := productsSvc.Tags(ctx)

		renderer.HTML(w, r, http.StatusOK, "home.html", render.PageData{
			Title:       "Home",
			CurrentUser: me,
			Data:        homeData{Listing: listing, Tags: tags},
		})
	}
}

type productsIndexData struct {
	Heading string
	Listing *products.Listing
}

// ProductsIndex lists catalog products, optionally filtered by query params.
func ProductsIndex(productsSvc *products.Service, usersSvc *users.Service, renderer *render.Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		me := currentUser(ctx, usersSvc)

		form, err := forms.ParseSearch(r)
		if err != nil {
			renderer.Error(w, r, me, err, "/products")
			return
		}

		listing, err := productsSvc.Browse(ctx, catalog.Filter{
			Brand:       form.Brand,
			ProductType: form.ProductType,
			Tag:         form.Tag,
		})
		if err != nil {
			renderer.Error(w, r, me, err, "/")
			return
		}

		renderer.HTML(w, r, http.StatusOK, "products_index.html", render.PageData{
			Title:       "Products",
			CurrentUser: me,
			Data:        productsIndexData{Heading: "Products", Listing: listing},
		})
	}
}

type productShowData struct {
	Catalog   *catalog.Product
	Local     *products.ProductDTO
	Degraded  bool
	CatalogID int64
	Favorited bool
	Reviews   []reviews.ReviewDTO
}

// ProductShow renders one product with its reviews and favorite state.
func ProductShow(
	productsSvc *products.Service,
	reviewsSvc *reviews.Service,
	favoritesSvc *favorites.Service,
	usersSvc *users.Service,
	renderer *render.Renderer,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		me := currentUser(ctx, usersSvc)

		catalogID, err := parseCatalogID(r)
		if err != nil {
			renderer.NotFound(w, r, me)
			return
		}

		detail, err := productsSvc.GetDetail(ctx, catalogID)
		if err != nil {
			renderer.Error(w, r, me, err, "/products")
			return
		}

		data := productShowData{
			Catalog:   detail.Catalog,
			Local:     detail.Local,
			Degraded:  detail.Degraded,
			CatalogID: catalogID,
		}

		if detail.Local != nil {
			data.Reviews, err = reviewsSvc.ListForProduct(ctx, detail.Local.ID)
			if err != nil {
				renderer.Error(w, r, me, err, "/products")
				return
			}
			if me != nil {
				data.Favorited, err = favoritesSvc.IsFavorited(ctx, me.ID, detail.Local.ID)
				if err != nil {
					renderer.Error(w, r, me, err, "/products")
					return
				}
			}
		}

		title := "Product"
		if detail.Catalog != nil {
			title = detail.Catalog.Name
		} else if detail.Local != nil {
			title = detail.Local.Name
		}

		renderer.HTML(w, r, http.StatusOK, "product_show.html", render.PageData{
			Title:       title,
			CurrentUser: me,
			Data:        data,
		})
	}
}

type resultsData struct {
	Choices  []string
	Selected string
	Brand    string
	Listing  *products.Listing
}

// Results renders the fixed-choice catalog search page.
func Results(productsSvc *products.Service, usersSvc *users.Service, renderer *render.Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		me := currentUser(ctx, usersSvc)

		form, err := forms.ParseSearch(r)
		if err != nil {
			renderer.Error(w, r, me, err, "/results")
			return
		}

		data := resultsData{
			Choices:  forms.ProductTypeChoices,
			Selected: form.ProductType,
			Brand:    form.Brand,
		}

		if form.ProductType != "" || form.Brand != "" || form.Tag != "" {
			listing, err := productsSvc.Browse(ctx, catalog.Filter{
				Brand:       form.Brand,
				ProductType: form.ProductType,
				Tag:         form.Tag,
			})
			if err != nil {
				renderer.Error(w, r, me, err, "/results")
				return
			}
			data.Listing = listing
		}

		renderer.HTML(w, r, http.StatusOK, "results.html", render.PageData{
			Title:       "Search",
			CurrentUser: me,
			Data:        data,
		})
	}
}

// Autocomplete returns the known product names as a JSON word list.
func Autocomplete(productsSvc *products.Service, renderer *render.Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		names, err := productsSvc.AutocompleteNames(r.Context())
		if err != nil {
			renderer.JSON(w, r, http.StatusInternalServerError, map[string]string{"error": "unavailable"})
			return
		}
		renderer.JSON(w, r, http.StatusOK, map[string][]string{"words": names})
	}
}

func parseCatalogID(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "catalogID")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	return id, nil
}
