package controllers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/mvaldez/beautyshelf-backend/api/forms"
	"github.com/mvaldez/beautyshelf-backend/api/render"
	"github.com/mvaldez/beautyshelf-backend/internal/products"
	"github.com/mvaldez/beautyshelf-backend/internal/reviews"
	"github.com/mvaldez/beautyshelf-backend/internal/users"
)

// ReviewCreate posts a review for the product, bound to the acting user. The
// product is persisted locally first so the review has a row to reference.
func ReviewCreate(reviewsSvc *reviews.Service, productsSvc *products.Service, usersSvc *users.Service, renderer *render.Renderer) http.HandlerFunc {
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

		form, err := forms.ParseReview(r)
		if err != nil {
			renderer.Error(w, r, me, err, productPath)
			return
		}

		local, err := productsSvc.EnsureLocal(ctx, catalogID)
		if err != nil {
			renderer.Error(w, r, me, err, "/products")
			return
		}

		if _, err := reviewsSvc.Create(ctx, userID, local.ID, form.Text); err != nil {
			renderer.Error(w, r, me, err, productPath)
			return
		}

		render.RedirectWithFlash(w, r, productPath, render.FlashSuccess, "review posted")
	}
}

// ReviewDelete removes a review when the acting user wrote it. The redirect
// returns to the product page when known, otherwise home.
func ReviewDelete(reviewsSvc *reviews.Service, usersSvc *users.Service, renderer *render.Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		userID, ok := requireUser(w, r)
		if !ok {
			return
		}
		me := currentUser(ctx, usersSvc)

		reviewID, err := uuid.Parse(chi.URLParam(r, "reviewID"))
		if err != nil {
			renderer.NotFound(w, r, me)
			return
		}

		if err := reviewsSvc.Delete(ctx, userID, reviewID); err != nil {
			renderer.Error(w, r, me, err, "/")
			return
		}

		render.RedirectWithFlash(w, r, sameSitePath(r, "/"), render.FlashInfo, "review deleted")
	}
}
