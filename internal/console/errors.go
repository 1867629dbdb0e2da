package console

import (
	"encoding/json"
	"net/http"
	"strings"

	apperrors "github.com/league-panel/internal/errors"
	"github.com/league-panel/internal/logging"
)

// respondJSON sends a JSON response.
func respondJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// logFailure logs err with its category; the operator sees only UserMessage
func logFailure(r *http.Request, err error, message string) {
	catErr := apperrors.Categorize(err)
	logger := logging.FromContext(r.Context()).WithError(err).WithFields(map[string]interface{}{
		"category": string(catErr.Category),
		"code":     catErr.Code,
	})
	if apperrors.IsUserError(err) {
		logger.Info(message)
		return
	}
	logger.Warn(message)
}

// renderFetchError replaces a screen whose data could not be loaded with a page-level error
func (s *Server) renderFetchError(w http.ResponseWriter, r *http.Request, err error, backURL, backLabel string) {
	logFailure(r, err, "screen data could not be loaded")
	s.render(w, r, apperrors.GetHTTPStatusCode(err), "Something went wrong", errorPage(errorView{
		Message:   apperrors.UserMessage(err),
		BackURL:   backURL,
		BackLabel: backLabel,
	}))
}

// actionFailed reports a failed POST action through the flash and returns to next
func (s *Server) actionFailed(w http.ResponseWriter, r *http.Request, err error, next string) {
	logFailure(r, err, "operator action failed")
	setFlash(w, flashError, apperrors.UserMessage(err))
	http.Redirect(w, r, next, http.StatusSeeOther)
}

// actionDone reports a successful POST action through the flash and returns to next
func (s *Server) actionDone(w http.ResponseWriter, r *http.Request, message, next string) {
	setFlash(w, flashSuccess, message)
	http.Redirect(w, r, next, http.StatusSeeOther)
}

// safeNext returns the posted return path when it stays on this site, else fallback
func safeNext(r *http.Request, fallback string) string {
	next := r.PostFormValue("next")
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return fallback
	}
	return next
}
