package forms

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/mvaldez/beautyshelf-backend/pkg/errors"
)

func formRequest(t *testing.T, path string, values url.Values) *http.Request {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestParseSignupValid(t *testing.T) {
	req := formRequest(t, "/signup", url.Values{
		"username": {" alice "},
		"email":    {"alice@example.com"},
		"password": {"secret1"},
	})

	form, err := ParseSignup(req)
	require.NoError(t, err)
	assert.Equal(t, "alice", form.Username)
	assert.Equal(t, "alice@example.com", form.Email)
	assert.Empty(t, form.ImageURL)
}

func TestParseSignupRejectsShortPassword(t *testing.T) {
	req := formRequest(t, "/signup", url.Values{
		"username": {"alice"},
		"email":    {"alice@example.com"},
		"password": {"abc"},
	})

	_, err := ParseSignup(req)
	var coded *pkgerrors.Error
	require.ErrorAs(t, err, &coded)
	assert.Equal(t, pkgerrors.CodeValidation, coded.Code())
	assert.Contains(t, coded.Message(), "password")
}

func TestParseSignupRejectsBadEmail(t *testing.T) {
	req := formRequest(t, "/signup", url.Values{
		"username": {"alice"},
		"email":    {"not-an-email"},
		"password": {"secret1"},
	})

	_, err := ParseSignup(req)
	var coded *pkgerrors.Error
	require.ErrorAs(t, err, &coded)
	assert.Contains(t, coded.Message(), "email")
}

func TestParseReviewRejectsOverlongText(t *testing.T) {
	req := formRequest(t, "/products/1/reviews", url.Values{
		"text": {strings.Repeat("a", 141)},
	})

	_, err := ParseReview(req)
	var coded *pkgerrors.Error
	require.ErrorAs(t, err, &coded)
	assert.Equal(t, pkgerrors.CodeValidation, coded.Code())
}

func TestParseSearchFixedChoices(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/results?product_type=lipstick&brand=glossier", nil)
	form, err := ParseSearch(req)
	require.NoError(t, err)
	assert.Equal(t, "lipstick", form.ProductType)
	assert.Equal(t, "glossier", form.Brand)

	req = httptest.NewRequest(http.MethodGet, "/results?product_type=rocketship", nil)
	_, err = ParseSearch(req)
	var coded *pkgerrors.Error
	require.ErrorAs(t, err, &coded)
	assert.Equal(t, pkgerrors.CodeValidation, coded.Code())
}
