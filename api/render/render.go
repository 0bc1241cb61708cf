package render

import (
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"

	"github.com/mvaldez/beautyshelf-backend/internal/users"
	pkgerrors "github.com/mvaldez/beautyshelf-backend/pkg/errors"
	"github.com/mvaldez/beautyshelf-backend/pkg/logger"
)

//go:embed templates/*.html
var templateFS embed.FS

// pages lists every page template. Each one is parsed together with the
// layout so it can fill the layout's content block.
var pages = []string{
	"home.html",
	"signup.html",
	"login.html",
	"users_index.html",
	"users_show.html",
	"profile_edit.html",
	"favorites.html",
	"products_index.html",
	"product_show.html",
	"taxonomy_index.html",
	"results.html",
	"not_found.html",
	"error.html",
}

// PageData is the payload every template receives.
type PageData struct {
	Title       string
	CurrentUser *users.UserDTO
	Flashes     []Flash
	Data        any
}

// Renderer executes the embedded HTML templates.
type Renderer struct {
	templates map[string]*template.Template
	log       *logger.Logger
}

// New parses the embedded templates. A missing or broken template is a
// programming error and fails startup.
func New(logg *logger.Logger) (*Renderer, error) {
	templates := make(map[string]*template.Template, len(pages))
	for _, page := range pages {
		tmpl, err := template.ParseFS(templateFS, "templates/layout.html", "templates/"+page)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", page, err)
		}
		templates[page] = tmpl
	}
	return &Renderer{templates: templates, log: logg}, nil
}

// HTML renders one page inside the layout.
func (r *Renderer) HTML(w http.ResponseWriter, req *http.Request, status int, page string, data PageData) {
	tmpl, ok := r.templates[page]
	if !ok {
		r.logError(req, fmt.Errorf("unknown template %q", page))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	if data.Flashes == nil {
		data.Flashes = PopFlashes(w, req)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := tmpl.ExecuteTemplate(w, "layout.html", data); err != nil {
		r.logError(req, err)
	}
}

// JSON writes a JSON payload, used by the autocomplete endpoint.
func (r *Renderer) JSON(w http.ResponseWriter, req *http.Request, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		r.logError(req, err)
	}
}

// NotFound renders the dedicated not-found page.
func (r *Renderer) NotFound(w http.ResponseWriter, req *http.Request, currentUser *users.UserDTO) {
	r.HTML(w, req, http.StatusNotFound, "not_found.html", PageData{
		Title:       "Not Found",
		CurrentUser: currentUser,
	})
}

// Error converts a failure into the right user-facing surface: not-found gets
// the not-found page, expected rejections become a flash plus redirect, and
// everything else renders the generic error page.
func (r *Renderer) Error(w http.ResponseWriter, req *http.Request, currentUser *users.UserDTO, err error, redirectTo string) {
	r.logError(req, err)

	typed := pkgerrors.As(err)
	if typed == nil {
		r.HTML(w, req, http.StatusInternalServerError, "error.html", PageData{
			Title:       "Something went wrong",
			CurrentUser: currentUser,
		})
		return
	}

	switch typed.Code() {
	case pkgerrors.CodeNotFound:
		r.NotFound(w, req, currentUser)
	case pkgerrors.CodeValidation,
		pkgerrors.CodeUnauthorized,
		pkgerrors.CodeForbidden,
		pkgerrors.CodeConflict,
		pkgerrors.CodeRateLimit:
		AddFlash(w, FlashError, typed.Message())
		http.Redirect(w, req, redirectTo, http.StatusSeeOther)
	default:
		r.HTML(w, req, pkgerrors.MetadataFor(typed.Code()).HTTPStatus, "error.html", PageData{
			Title:       "Something went wrong",
			CurrentUser: currentUser,
		})
	}
}

func (r *Renderer) logError(req *http.Request, err error) {
	if r.log == nil || err == nil {
		return
	}
	r.log.Error(req.Context(), "render.error", err)
}
