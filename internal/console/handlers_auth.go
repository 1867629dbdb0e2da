package console

import (
	"net/http"
	"strings"

	apperrors "github.com/league-panel/internal/errors"
	"github.com/league-panel/internal/logging"
	"github.com/league-panel/internal/models"
)

// handleLoginPage shows the sign-in form, or skips it for a signed-in operator
func (s *Server) handleLoginPage(w http.ResponseWriter, r *http.Request) {
	if ctrl := controllerFrom(r); ctrl != nil && ctrl.IsAuthenticated(r.Context()) {
		http.Redirect(w, r, "/tokens", http.StatusSeeOther)
		return
	}
	s.render(w, r, http.StatusOK, "Sign in", loginPage(loginView{Username: controllerFrom(r).Username(r.Context())}))
}

// handleLoginSubmit signs in. A rejected sign-in shows the backend's message under the form.
func (s *Server) handleLoginSubmit(w http.ResponseWriter, r *http.Request) {
	req := models.SignInRequest{
		Username: strings.TrimSpace(r.PostFormValue("username")),
		Password: r.PostFormValue("password"),
	}
	if err := validateInput(req); err != nil {
		s.renderLogin(w, r, http.StatusBadRequest, req.Username, err)
		return
	}

	if err := controllerFrom(r).Login(r.Context(), req.Username, req.Password); err != nil {
		s.renderLogin(w, r, http.StatusUnauthorized, req.Username, err)
		return
	}
	http.Redirect(w, r, "/tokens", http.StatusSeeOther)
}

// handleLoginThrottled answers sign-in attempts over the per-IP limit
func (s *Server) handleLoginThrottled(w http.ResponseWriter, r *http.Request, err *apperrors.CategorizedError) {
	logging.FromContext(r.Context()).WithField("remote_addr", r.RemoteAddr).Warn("sign-in throttled")
	s.renderLogin(w, r, err.StatusCode, r.PostFormValue("username"), err)
}

func (s *Server) renderLogin(w http.ResponseWriter, r *http.Request, status int, username string, err error) {
	s.render(w, r, status, "Sign in", loginPage(loginView{
		Username: username,
		Error:    apperrors.UserMessage(err),
	}))
}

// handleLogout forgets the credentials; the backend is not contacted
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if err := controllerFrom(r).Logout(r.Context()); err != nil {
		logging.FromContext(r.Context()).WithError(err).Warn("logout could not clear every credential")
	}
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
