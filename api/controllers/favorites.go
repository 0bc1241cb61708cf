package controllers

import (
	"net/http"
	"strconv"

	"github.com/mvaldez/beautyshelf-backend/api/render"
	"github.com/mvaldez/beautyshelf-backend/internal/favorites"
	"github.com/mvaldez/beautyshelf-backend/internal/products"
	"github.com/mvaldez/beautyshelf-backend/internal/users"
)

// FavoritesIndex lists the acting user's favorited products.
func FavoritesIndex(favoritesSvc *favorites.Service, usersSvc *users.Service, renderer *render.Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		userID, ok := requireUser(w, r)
		if !ok {
			return
		}
		me := currentUser(ctx, usersSvc)

		mine, err := favoritesSvc.ListForUser(ctx, userID)
		if err != nil {
			renderer.Error(w, r, me, err, "/")
			return
		}

		renderer.HTML(w, r, http.StatusOK, "favorites.html", render.PageData{
			Title:       "Favorites",
			CurrentUser: me,
			Data:        mine,
		})
	}
}

// FavoriteToggle flips the favorite state for the product and returns to its
// page. The product is persisted locally first so the favorite has a row to
// reference.
func FavoriteToggle(favoritesSvc *favorites.Service, productsSvc *products.Service, usersSvc *users.Service, renderer *render.Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		userID, ok := requireUser(w, r)
		if !ok {
			return
		}
		me := currentUser(ctx, usersSvc)

		catalogID, err := parseCatalogID(r)
		if err != nil {
			renderer.NotFound(w, r, me)
			return
		}
		productPath := "/products/" + strconv.FormatInt(catalogID, 10)

		local, err := productsSvc.EnsureLocal(ctx, catalogID)
		if err != nil {
			renderer.Error(w, r, me, err, "/products")
			return
		}

		favorited, err := favoritesSvc.Toggle(ctx, userID, local.ID)
		if err != nil {
			renderer.Error(w, r, me, err, productPath)
			return
		}

		if favorited {
			render.RedirectWithFlash(w, r, productPath, render.FlashSuccess, "added to your favorites")
			return
		}
		render.RedirectWithFlash(w, r, productPath, render.FlashInfo, "removed from your favorites")
	}
}
