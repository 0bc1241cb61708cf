package controllers

import (
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/mvaldez/beautyshelf-backend/api/render"
	"github.com/mvaldez/beautyshelf-backend/internal/products"
	"github.com/mvaldez/beautyshelf-backend/internal/users"
	"github.com/mvaldez/beautyshelf-backend/pkg/catalog"
)

type taxonomyItem struct {
	Name string
	URL  string
}

type taxonomyIndexData struct {
	Heading string
	Items   []taxonomyItem
}

// CategoriesIndex lists the known product types.
func CategoriesIndex(productsSvc *products.Service, usersSvc *users.Service, renderer *render.Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		me := currentUser(ctx, usersSvc)

		categories, err := productsSvc.Categories(ctx)
		if err != nil {
			renderer.Error(w, r, me, err, "/")
			return
		}

		items := make([]taxonomyItem, 0, len(categories))
		for _, category := range categories {
			items = append(items, taxonomyItem{
				Name: category.ProductType,
				URL:  "/categories/" + url.PathEscape(category.ProductType),
			})
		}

		renderer.HTML(w, r, http.StatusOK, "taxonomy_index.html", render.PageData{
			Title:       "Categories",
			CurrentUser: me,
			Data:        taxonomyIndexData{Heading: "Categories", Items: items},
		})
	}
}

// CategoryShow lists products of one product type.
func CategoryShow(productsSvc *products.Service, usersSvc *users.Service, renderer *render.Renderer) http.HandlerFunc {
	return taxonomyShow(productsSvc, usersSvc, renderer, "productType", func(name string) catalog.Filter {
		return catalog.Filter{ProductType: name}
	})
}

// BrandsIndex lists the known brands.
func BrandsIndex(productsSvc *products.Service, usersSvc *users.Service, renderer *render.Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		me := currentUser(ctx, usersSvc)

		brands, err := productsSvc.Brands(ctx)
		if err != nil {
			renderer.Error(w, r, me, err, "/")
			return
		}

		items := make([]taxonomyItem, 0, len(brands))
		for _, brand := range brands {
			items = append(items, taxonomyItem{
				Name: brand.Name,
				URL:  "/brands/" + url.PathEscape(brand.Name),
			})
		}

		renderer.HTML(w, r, http.StatusOK, "taxonomy_index.html", render.PageData{
			Title:       "Brands",
			CurrentUser: me,
			Data:        taxonomyIndexData{Heading: "Brands", Items: items},
		})
	}
}

// BrandShow lists products of one brand.
func BrandShow(productsSvc *products.Service, usersSvc *users.Service, renderer *render.Renderer) http.HandlerFunc {
	return taxonomyShow(productsSvc, usersSvc, renderer, "name", func(name string) catalog.Filter {
		return catalog.Filter{Brand: name}
	})
}

// TagsIndex lists the known product tags.
func TagsIndex(productsSvc *products.Service, usersSvc *users.Service, renderer *render.Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		me := currentUser(ctx, usersSvc)

		tags, err := productsSvc.Tags(ctx)
		if err != nil {
			renderer.Error(w, r, me, err, "/")
			return
		}

		items := make([]taxonomyItem, 0, len(tags))
		for _, tag := range tags {
			items = append(items, taxonomyItem{
				Name: tag.Name,
				URL:  "/tags/" + url.PathEscape(tag.Name),
			})
		}

		renderer.HTML(w, r, http.StatusOK, "taxonomy_index.html", render.PageData{
			Title:       "Tags",
			CurrentUser: me,
			Data:        taxonomyIndexData{Heading: "Tags", Items: items},
		})
	}
}

// TagShow lists products carrying one tag.
func TagShow(productsSvc *products.Service, usersSvc *users.Service, renderer *render.Renderer) http.HandlerFunc {
	return taxonomyShow(productsSvc, usersSvc, renderer, "name", func(name string) catalog.Filter {
		return catalog.Filter{Tag: name}
	})
}

func taxonomyShow(
	productsSvc *products.Service,
	usersSvc *users.Service,
	renderer *render.Renderer,
	param string,
	filterFor func(string) catalog.Filter,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		me := currentUser(ctx, usersSvc)

		name, err := url.PathUnescape(chi.URLParam(r, param))
		if err != nil || name == "" {
			renderer.NotFound(w, r, me)
			return
		}

		listing, err := productsSvc.Browse(ctx, filterFor(name))
		if err != nil {
			renderer.Error(w, r, me, err, "/")
			return
		}

		renderer.HTML(w, r, http.StatusOK, "products_index.html", render.PageData{
			Title:       name,
			CurrentUser: me,
			Data:        productsIndexData{Heading: name, Listing: listing},
		})
	}
}
