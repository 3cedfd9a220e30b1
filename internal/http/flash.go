package httpx

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
)

// flashCookieName carries a one-shot notice across the redirect that follows
// a mutation, so the confirmation is still readable on the page the user
// lands on instead of dying with the page that set it.
const flashCookieName = "flash"

const (
	flashSuccess = "success"
	flashError   = "error"
)

// flashNotice is the decoded one-shot notice rendered as a toast by the next
// full page.
type flashNotice struct {
	Message string `json:"m"`
	Kind    string `json:"k"`
}

// setFlash stores a notice for the next rendered page. Call it before the
// redirect that follows a mutation.
func setFlash(w http.ResponseWriter, message, kind string) {
	b, err := json.Marshal(flashNotice{Message: message, Kind: kind})
	if err != nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    base64.RawURLEncoding.EncodeToString(b),
		Path:     "/",
		HttpOnly: true,
		MaxAge:   60,
		SameSite: http.SameSiteLaxMode,
	})
}

// popFlash reads and clears the pending notice, if any. Junk cookie values
// are cleared and dropped.
func popFlash(w http.ResponseWriter, r *http.Request) (flashNotice, bool) {
	cookie, err := r.Cookie(flashCookieName)
	if err != nil || cookie.Value == "" {
		return flashNotice{}, false
	}

	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
		SameSite: http.SameSiteLaxMode,
	})

	b, err := base64.RawURLEncoding.DecodeString(cookie.Value)
	if err != nil {
		return flashNotice{}, false
	}
	var notice flashNotice
	if err := json.Unmarshal(b, &notice); err != nil || notice.Message == "" {
		return flashNotice{}, false
	}
	return notice, true
}
