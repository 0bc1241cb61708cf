package forms

import (
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	pkgerrors "github.com/mvaldez/beautyshelf-backend/pkg/errors"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		tag := strings.SplitN(f.Tag.Get("form"), ",", 2)[0]
		if tag == "" {
			return f.Name
		}
		return tag
	})
	return v
}

// SignupForm carries the signup fields.
type SignupForm struct {
	Username string `form:"username" validate:"required,min=2,max=64"`
	Email    string `form:"email"    validate:"required,email"`
	Password string `form:"password" validate:"required,min=6"`
	ImageURL string `form:"image_url" validate:"omitempty,url"`
}

// LoginForm carries the login credentials.
type LoginForm struct {
	Username string `form:"username" validate:"required"`
	Password string `form:"password" validate:"required"`
}

// ProfileForm carries the profile edit fields. The current password is always
// required to confirm the change.
type ProfileForm struct {
	Username        string `form:"username" validate:"required,min=2,max=64"`
	Email           string `form:"email"    validate:"required,email"`
	ImageURL        string `form:"image_url" validate:"omitempty,url"`
	CurrentPassword string `form:"current_password" validate:"required"`
}

// ReviewForm carries the review text.
type ReviewForm struct {
	Text string `form:"text" validate:"required,max=140"`
}

// SearchForm carries the catalog search selectors. The product type must be
// one of the catalog's fixed choices.
type SearchForm struct {
	ProductType string `form:"product_type" validate:"omitempty,oneof=blush bronzer eyebrow eyeliner eyeshadow foundation lip_liner lipstick mascara nail_polish"`
	Brand       string `form:"brand" validate:"omitempty,max=64"`
	Tag         string `form:"tag" validate:"omitempty,max=64"`
}

// ProductTypeChoices lists the catalog's fixed product types, for rendering
// the search selector.
var ProductTypeChoices = []string{
	"blush", "bronzer", "eyebrow", "eyeliner", "eyeshadow",
	"foundation", "lip_liner", "lipstick", "mascara", "nail_polish",
}

// ParseSignup decodes and validates the signup form.
func ParseSignup(r *http.Request) (SignupForm, error) {
	form := SignupForm{}
	if err := r.ParseForm(); err != nil {
		return form, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid form submission")
	}
	form.Username = strings.TrimSpace(r.PostForm.Get("username"))
	form.Email = strings.TrimSpace(r.PostForm.Get("email"))
	form.Password = r.PostForm.Get("password")
	form.ImageURL = strings.TrimSpace(r.PostForm.Get("image_url"))
	return form, check(form)
}

// ParseLogin decodes and validates the login form.
func ParseLogin(r *http.Request) (LoginForm, error) {
	form := LoginForm{}
	if err := r.ParseForm(); err != nil {
		return form, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid form submission")
	}
	form.Username = strings.TrimSpace(r.PostForm.Get("username"))
	form.Password = r.PostForm.Get("password")
	return form, check(form)
}

// ParseProfile decodes and validates the profile edit form.
func ParseProfile(r *http.Request) (ProfileForm, error) {
	form := ProfileForm{}
	if err := r.ParseForm(); err != nil {
		return form, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid form submission")
	}
	form.Username = strings.TrimSpace(r.PostForm.Get("username"))
	form.Email = strings.TrimSpace(r.PostForm.Get("email"))
	form.ImageURL = strings.TrimSpace(r.PostForm.Get("image_url"))
	form.CurrentPassword = r.PostForm.Get("current_password")
	return form, check(form)
}

// ParseReview decodes and validates the review form.
func ParseReview(r *http.Request) (ReviewForm, error) {
	form := ReviewForm{}
	if err := r.ParseForm(); err != nil {
		return form, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid form submission")
	}
	form.Text = strings.TrimSpace(r.PostForm.Get("text"))
	return form, check(form)
}

// ParseSearch decodes and validates the search selectors from the query.
func ParseSearch(r *http.Request) (SearchForm, error) {
	form := SearchForm{
		ProductType: strings.TrimSpace(r.URL.Query().Get("product_type")),
		Brand:       strings.TrimSpace(r.URL.Query().Get("brand")),
		Tag:         strings.TrimSpace(r.URL.Query().Get("tag")),
	}
	return form, check(form)
}

func check(form any) error {
	if err := validate.Struct(form); err != nil {
		return formatValidationErrors(err)
	}
	return nil
}

func formatValidationErrors(err error) *pkgerrors.Error {
	if errs, ok := err.(validator.ValidationErrors); ok {
		messages := make([]string, 0, len(errs))
		for _, fieldErr := range errs {
			messages = append(messages, fmt.Sprintf("%s %s", fieldErr.Field(), validationMessage(fieldErr)))
		}
		return pkgerrors.New(pkgerrors.CodeValidation, strings.Join(messages, "; "))
	}
	return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "validation failed")
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "email":
		return "must be a valid email"
	case "url":
		return "must be a valid URL"
	case "oneof":
		return "is not a recognized choice"
	}
	return "is invalid"
}
