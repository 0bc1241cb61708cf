package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/mvaldez/beautyshelf-backend/pkg/logger"
)

// SessionResolver maps a session cookie value to a user id. Failures of any
// kind resolve to anonymous.
type SessionResolver interface {
	Resolve(ctx context.Context, cookieValue string) (uuid.UUID, error)
	CookieName() string
}

// CurrentUser resolves the session cookie into a request-scoped user id. The
// request always proceeds; handlers decide what anonymous visitors may do.
func CurrentUser(sessions SessionResolver, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			cookie, err := r.Cookie(sessions.CookieName())
			if err != nil || cookie.Value == "" {
				next.ServeHTTP(w, r)
				return
			}

			userID, err := sessions.Resolve(ctx, cookie.Value)
			if err != nil || userID == uuid.Nil {
				next.ServeHTTP(w, r)
				return
			}

			ctx = WithUserID(ctx, userID)
			if logg != nil {
				ctx = logg.WithUserID(ctx, userID.String())
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
