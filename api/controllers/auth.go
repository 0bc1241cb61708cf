package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/mvaldez/beautyshelf-backend/api/forms"
	"github.com/mvaldez/beautyshelf-backend/api/middleware"
	"github.com/mvaldez/beautyshelf-backend/api/render"
	"github.com/mvaldez/beautyshelf-backend/internal/auth"
	"github.com/mvaldez/beautyshelf-backend/internal/users"
	pkgerrors "github.com/mvaldez/beautyshelf-backend/pkg/errors"
	"github.com/mvaldez/beautyshelf-backend/pkg/logger"
)

// SignupPage renders the signup form. Logged-in users are sent home.
func SignupPage(usersSvc *users.Service, renderer *render.Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if user := currentUser(r.Context(), usersSvc); user != nil {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		renderer.HTML(w, r, http.StatusOK, "signup.html", render.PageData{
			Title: "Sign up",
			Data:  forms.SignupForm{},
		})
	}
}

// SignupSubmit creates the account, establishes a session, and redirects
// home. Validation and conflict errors re-render the form with the submitted
// values and a flash message.
func SignupSubmit(authSvc *auth.Service, sessions SessionManager, renderer *render.Renderer, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		form, err := forms.ParseSignup(r)
		if err != nil {
			renderSignupError(w, r, renderer, form, err)
			return
		}

		user, err := authSvc.Signup(ctx, auth.SignupDTO{
			Email:    form.Email,
			Username: form.Username,
			Password: form.Password,
			ImageURL: form.ImageURL,
		})
		if err != nil {
			renderSignupError(w, r, renderer, form, err)
			return
		}

		cookie, err := sessions.Issue(ctx, user.ID)
		if err != nil {
			if logg != nil {
				logg.Error(ctx, "auth.signup.session_issue_failed", err)
			}
			render.RedirectWithFlash(w, r, "/login", render.FlashInfo, "account created, please log in")
			return
		}

		http.SetCookie(w, cookie)
		render.RedirectWithFlash(w, r, "/", render.FlashSuccess, "welcome to BeautyShelf, "+user.Username)
	}
}

func renderSignupError(w http.ResponseWriter, r *http.Request, renderer *render.Renderer, form forms.SignupForm, err error) {
	message := "signup failed"
	if typed := pkgerrors.As(err); typed != nil && typed.Message() != "" {
		message = typed.Message()
	}
	form.Password = ""
	renderer.HTML(w, r, http.StatusOK, "signup.html", render.PageData{
		Title:   "Sign up",
		Flashes: []render.Flash{{Level: render.FlashError, Message: message}},
		Data:    form,
	})
}

// LoginPage renders the login form. Logged-in users are sent home.
func LoginPage(usersSvc *users.Service, renderer *render.Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if user := currentUser(r.Context(), usersSvc); user != nil {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		renderer.HTML(w, r, http.StatusOK, "login.html", render.PageData{
			Title: "Log in",
			Data:  forms.LoginForm{},
		})
	}
}

// LoginSubmit verifies the credentials and establishes a session.
func LoginSubmit(authSvc *auth.Service, sessions SessionManager, renderer *render.Renderer, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		form, err := forms.ParseLogin(r)
		if err != nil {
			renderLoginError(w, r, renderer, form, err)
			return
		}

		user, err := authSvc.Login(ctx, auth.LoginDTO{
			Username: form.Username,
			Password: form.Password,
		})
		if err != nil {
			renderLoginError(w, r, renderer, form, err)
			return
		}

		cookie, err := sessions.Issue(ctx, user.ID)
		if err != nil {
			if logg != nil {
				logg.Error(ctx, "auth.login.session_issue_failed", err)
			}
			renderLoginError(w, r, renderer, form, err)
			return
		}

		http.SetCookie(w, cookie)
		render.RedirectWithFlash(w, r, "/", render.FlashSuccess, "welcome back, "+user.Username)
	}
}

func renderLoginError(w http.ResponseWriter, r *http.Request, renderer *render.Renderer, form forms.LoginForm, err error) {
	message := "login failed"
	if typed := pkgerrors.As(err); typed != nil && typed.Message() != "" {
		message = typed.Message()
	}
	form.Password = ""
	renderer.HTML(w, r, http.StatusOK, "login.html", render.PageData{
		Title:   "Log in",
		Flashes: []render.Flash{{Level: render.FlashError, Message: message}},
		Data:    form,
	})
}

// Logout revokes the session and clears the cookie. Logging out while logged
// out is a no-op redirect.
func Logout(sessions SessionManager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		cookie, err := r.Cookie(sessions.CookieName())
		if err == nil && cookie.Value != "" {
			expired, err := sessions.Revoke(ctx, cookie.Value)
			if err != nil {
				if logg != nil {
					logg.Error(ctx, "auth.logout.revoke_failed", err)
				}
			} else {
				http.SetCookie(w, expired)
			}
		}

		if middleware.UserIDFromContext(ctx) != uuid.Nil {
			render.RedirectWithFlash(w, r, "/", render.FlashInfo, "logged out")
			return
		}
		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}
