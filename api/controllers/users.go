package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/mvaldez/beautyshelf-backend/api/forms"
	"github.com/mvaldez/beautyshelf-backend/api/render"
	"github.com/mvaldez/beautyshelf-backend/internal/reviews"
	"github.com/mvaldez/beautyshelf-backend/internal/users"
)

type usersIndexData struct {
	Users []users.UserDTO
	Query string
}

// UsersIndex lists users, optionally narrowed by a username substring.
func UsersIndex(usersSvc *users.Service, renderer *render.Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		me := currentUser(ctx, usersSvc)

		query := strings.TrimSpace(r.URL.Query().Get("q"))
		found, err := usersSvc.Search(ctx, query)
		if err != nil {
			renderer.Error(w, r, me, err, "/")
			return
		}

		renderer.HTML(w, r, http.StatusOK, "users_index.html", render.PageData{
			Title:       "People",
			CurrentUser: me,
			Data:        usersIndexData{Users: found, Query: query},
		})
	}
}

type userShowData struct {
	User    users.UserDTO
	Reviews []reviews.ReviewDTO
}

// UserShow renders one user's profile and their reviews.
func UserShow(usersSvc *users.Service, reviewsSvc *reviews.Service, renderer *render.Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		me := currentUser(ctx, usersSvc)

		username := chi.URLParam(r, "username")
		user, err := usersSvc.GetByUsername(ctx, username)
		if err != nil {
			renderer.Error(w, r, me, err, "/users")
			return
		}

		written, err := reviewsSvc.ListForUser(ctx, user.ID)
		if err != nil {
			renderer.Error(w, r, me, err, "/users")
			return
		}

		renderer.HTML(w, r, http.StatusOK, "users_show.html", render.PageData{
			Title:       user.Username,
			CurrentUser: me,
			Data:        userShowData{User: *user, Reviews: written},
		})
	}
}

// ProfileEditPage renders the profile form pre-filled with current values.
func ProfileEditPage(usersSvc *users.Service, renderer *render.Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		userID, ok := requireUser(w, r)
		if !ok {
			return
		}

		me, err := usersSvc.GetByID(ctx, userID)
		if err != nil {
			renderer.Error(w, r, nil, err, "/")
			return
		}

		renderer.HTML(w, r, http.StatusOK, "profile_edit.html", render.PageData{
			Title:       "Edit profile",
			CurrentUser: me,
			Data: forms.ProfileForm{
				Username: me.Username,
				Email:    me.Email,
				ImageURL: me.ImageURL,
			},
		})
	}
}

// ProfileUpdate applies the profile edit after password confirmation.
func ProfileUpdate(usersSvc *users.Service, renderer *render.Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		userID, ok := requireUser(w, r)
		if !ok {
			return
		}
		me := currentUser(ctx, usersSvc)

		form, err := forms.ParseProfile(r)
		if err != nil {
			renderer.Error(w, r, me, err, "/profile")
			return
		}

		updated, err := usersSvc.UpdateProfile(ctx, userID, users.UpdateProfileDTO{
			Email:    form.Email,
			Username: form.Username,
			ImageURL: form.ImageURL,
		}, form.CurrentPassword)
		if err != nil {
			renderer.Error(w, r, me, err, "/profile")
			return
		}

		render.RedirectWithFlash(w, r, "/users/"+updated.Username, render.FlashSuccess, "profile updated")
	}
}

// ProfileDelete removes the account, its reviews, and its favorites, then
// ends the session.
func ProfileDelete(usersSvc *users.Service, sessions SessionManager, renderer *render.Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		userID, ok := requireUser(w, r)
		if !ok {
			return
		}
		me := currentUser(ctx, usersSvc)

		if err := r.ParseForm(); err != nil {
			renderer.Error(w, r, me, err, "/profile")
			return
		}

		if err := usersSvc.DeleteAccount(ctx, userID, r.PostForm.Get("current_password")); err != nil {
			renderer.Error(w, r, me, err, "/profile")
			return
		}

		if cookie, err := r.Cookie(sessions.CookieName()); err == nil && cookie.Value != "" {
			if expired, err := sessions.Revoke(ctx, cookie.Value); err == nil {
				http.SetCookie(w, expired)
			}
		}

		render.RedirectWithFlash(w, r, "/", render.FlashInfo, "your account has been deleted")
	}
}
