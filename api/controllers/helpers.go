package controllers

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"

	"github.com/mvaldez/beautyshelf-backend/api/middleware"
	"github.com/mvaldez/beautyshelf-backend/api/render"
	"github.com/mvaldez/beautyshelf-backend/internal/users"
)

// SessionManager issues and revokes the session cookie.
type SessionManager interface {
	Issue(ctx context.Context, userID uuid.UUID) (*http.Cookie, error)
	Revoke(ctx context.Context, cookieValue string) (*http.Cookie, error)
	CookieName() string
}

// currentUser loads the acting user's profile for the nav, or nil for
// anonymous visitors. A stale session (deleted account) renders as anonymous.
func currentUser(ctx context.Context, usersSvc *users.Service) *users.UserDTO {
	id := middleware.UserIDFromContext(ctx)
	if id == uuid.Nil {
		return nil
	}
	dto, err := usersSvc.GetByID(ctx, id)
	if err != nil {
		return nil
	}
	return dto
}

// requireUser resolves the acting user id or redirects to the login page with
// a flash. The boolean reports whether the request may proceed.
func requireUser(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id := middleware.UserIDFromContext(r.Context())
	if id == uuid.Nil {
		render.RedirectWithFlash(w, r, "/login", render.FlashError, "please log in first")
		return uuid.Nil, false
	}
	return id, true
}

// sameSitePath reduces the request's Referer to a local path. Cross-site and
// malformed referers yield the fallback so redirects never leave the app.
func sameSitePath(r *http.Request, fallback string) string {
	back, err := url.Parse(r.Header.Get("Referer"))
	if err != nil || (back.Host != "" && back.Host != r.Host) || !strings.HasPrefix(back.Path, "/") {
		return fallback
	}
	target := back.Path
	if back.RawQuery != "" {
		target += "?" + back.RawQuery
	}
	return target
}
