package console

import (
	"net/http"
	"net/url"
	"strings"
	"time"
)

const flashCookie = "console_flash"

// maxFlashValue bounds the escaped cookie value; browsers drop cookies over 4096 bytes
const maxFlashValue = 3800

const (
	flashSuccess = "success"
	flashError   = "error"
)

// flash is a one-shot message shown on the page after a redirect
type flash struct {
	Kind    string
	Message string
}

func setFlash(w http.ResponseWriter, kind, message string) {
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookie,
		Value:    flashValue(kind, message),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// flashValue escapes kind and message for the cookie. A message that does not
// fit is cut on a rune boundary and marked with "...".
func flashValue(kind, message string) string {
	value := url.QueryEscape(kind + "|" + message)
	if len(value) <= maxFlashValue {
		return value
	}

	budget := maxFlashValue - len(url.QueryEscape(kind+"|..."))
	var kept strings.Builder
	for _, r := range message {
		escaped := len(url.QueryEscape(string(r)))
		if escaped > budget {
			break
		}
		budget -= escaped
		kept.WriteRune(r)
	}
	return url.QueryEscape(kind + "|" + kept.String() + "...")
}

// takeFlash reads the pending message, if any, and clears it
func takeFlash(w http.ResponseWriter, r *http.Request) *flash {
	c, err := r.Cookie(flashCookie)
	if err != nil || c.Value == "" {
		return nil
	}
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookie,
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	raw, err := url.QueryUnescape(c.Value)
	if err != nil {
		return nil
	}
	kind, message, ok := strings.Cut(raw, "|")
	if !ok || message == "" {
		return nil
	}
	if kind != flashSuccess {
		kind = flashError
	}
	return &flash{Kind: kind, Message: message}
}
