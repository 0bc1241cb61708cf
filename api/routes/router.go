package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mvaldez/beautyshelf-backend/api/controllers"
	"github.com/mvaldez/beautyshelf-backend/api/middleware"
	"github.com/mvaldez/beautyshelf-backend/api/render"
	"github.com/mvaldez/beautyshelf-backend/api/static"
	"github.com/mvaldez/beautyshelf-backend/internal/auth"
	"github.com/mvaldez/beautyshelf-backend/internal/favorites"
	"github.com/mvaldez/beautyshelf-backend/internal/products"
	"github.com/mvaldez/beautyshelf-backend/internal/reviews"
	"github.com/mvaldez/beautyshelf-backend/internal/users"
	"github.com/mvaldez/beautyshelf-backend/pkg/config"
	"github.com/mvaldez/beautyshelf-backend/pkg/logger"
	redisclient "github.com/mvaldez/beautyshelf-backend/pkg/redis"
)

type sessionManager interface {
	middleware.SessionResolver
	controllers.SessionManager
}

// NewRouter assembles the full HTTP surface.
func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	database controllers.Pinger,
	redisClient *redisclient.Client,
	sessions sessionManager,
	renderer *render.Renderer,
	authSvc *auth.Service,
	usersSvc *users.Service,
	productsSvc *products.Service,
	reviewsSvc *reviews.Service,
	favoritesSvc *favorites.Service,
) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics,
		middleware.CurrentUser(sessions, logg),
	)

	loginLimit := func(next http.Handler) http.Handler { return next }
	signupLimit := loginLimit
	if redisClient != nil {
		loginLimit = middleware.AuthRateLimit(middleware.NewAuthRateLimitPolicy(
			"login",
			cfg.AuthRateLimit.LoginWindow,
			cfg.AuthRateLimit.LoginIPLimit,
			cfg.AuthRateLimit.LoginUserLimit,
		), redisClient, logg)
		signupLimit = middleware.AuthRateLimit(middleware.NewAuthRateLimitPolicy(
			"signup",
			cfg.AuthRateLimit.SignupWindow,
			cfg.AuthRateLimit.SignupIPLimit,
			cfg.AuthRateLimit.SignupUserLimit,
		), redisClient, logg)
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		var cache controllers.Pinger
		if redisClient != nil {
			cache = redisClient
		}
		r.Get("/ready", controllers.HealthReady(cfg, logg, database, cache))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(static.FS))))

	// Every HTML page is served uncached so one browser never shows
	// another user's session state.
	r.Group(func(r chi.Router) {
		r.Use(middleware.NoCache)

		r.Get("/", controllers.Home(productsSvc, usersSvc, renderer))

		r.Get("/signup", controllers.SignupPage(usersSvc, renderer))
		r.With(signupLimit).
			Post("/signup", controllers.SignupSubmit(authSvc, sessions, renderer, logg))
		r.Get("/login", controllers.LoginPage(usersSvc, renderer))
		r.With(loginLimit).
			Post("/login", controllers.LoginSubmit(authSvc, sessions, renderer, logg))
		r.Get("/logout", controllers.Logout(sessions, logg))

		r.Get("/users", controllers.UsersIndex(usersSvc, renderer))
		r.Get("/users/{username}", controllers.UserShow(usersSvc, reviewsSvc, renderer))
		r.Get("/profile", controllers.ProfileEditPage(usersSvc, renderer))
		r.Post("/profile", controllers.ProfileUpdate(usersSvc, renderer))
		r.Post("/profile/delete", controllers.ProfileDelete(usersSvc, sessions, renderer))

		r.Get("/favorites", controllers.FavoritesIndex(favoritesSvc, usersSvc, renderer))

		r.Get("/products", controllers.ProductsIndex(productsSvc, usersSvc, renderer))
		r.Get("/products/{catalogID}", controllers.ProductShow(productsSvc, reviewsSvc, favoritesSvc, usersSvc, renderer))
		r.Post("/products/{catalogID}/favorite", controllers.FavoriteToggle(favoritesSvc, productsSvc, usersSvc, renderer))
		r.Post("/products/{catalogID}/reviews", controllers.ReviewCreate(reviewsSvc, productsSvc, usersSvc, renderer))
		r.Post("/reviews/{reviewID}/delete", controllers.ReviewDelete(reviewsSvc, usersSvc, renderer))

		r.Get("/categories", controllers.CategoriesIndex(productsSvc, usersSvc, renderer))
		r.Get("/categories/{productType}", controllers.CategoryShow(productsSvc, usersSvc, renderer))
		r.Get("/brands", controllers.BrandsIndex(productsSvc, usersSvc, renderer))
		r.Get("/brands/{name}", controllers.BrandShow(productsSvc, usersSvc, renderer))
		r.Get("/tags", controllers.TagsIndex(productsSvc, usersSvc, renderer))
		r.Get("/tags/{name}", controllers.TagShow(productsSvc, usersSvc, renderer))

		r.Get("/results", controllers.Results(productsSvc, usersSvc, renderer))
		r.Get("/_autocomplete", controllers.Autocomplete(productsSvc, renderer))

		r.NotFound(func(w http.ResponseWriter, req *http.Request) {
			renderer.NotFound(w, req, nil)
		})
	})

	return r
}
