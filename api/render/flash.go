package render

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
)

const flashCookieName = "bs_flash"

// FlashLevel classifies a flash message for styling.
type FlashLevel string

const (
	FlashInfo    FlashLevel = "info"
	FlashSuccess FlashLevel = "success"
	FlashError   FlashLevel = "error"
)

// Flash is a one-shot message carried across a redirect.
type Flash struct {
	Level   FlashLevel `json:"level"`
	Message string     `json:"message"`
}

// AddFlash queues a flash message for the next rendered page.
func AddFlash(w http.ResponseWriter, level FlashLevel, message string) {
	flashes := []Flash{{Level: level, Message: message}}
	payload, err := json.Marshal(flashes)
	if err != nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    base64.RawURLEncoding.EncodeToString(payload),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   300,
	})
}

// PopFlashes reads the pending flash messages and clears the cookie.
func PopFlashes(w http.ResponseWriter, r *http.Request) []Flash {
	cookie, err := r.Cookie(flashCookieName)
	if err != nil || cookie.Value == "" {
		return nil
	}

	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})

	payload, err := base64.RawURLEncoding.DecodeString(cookie.Value)
	if err != nil {
		return nil
	}
	var flashes []Flash
	if err := json.Unmarshal(payload, &flashes); err != nil {
		return nil
	}
	return flashes
}

// RedirectWithFlash queues a flash and redirects in one step.
func RedirectWithFlash(w http.ResponseWriter, r *http.Request, target string, level FlashLevel, message string) {
	AddFlash(w, level, message)
	http.Redirect(w, r, target, http.StatusSeeOther)
}
