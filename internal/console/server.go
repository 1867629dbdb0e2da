// Package console provides the operator web console: a server-rendered UI over the panel API.
package console

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/league-panel/internal/adapter"
	"github.com/league-panel/internal/credentials"
	"github.com/league-panel/internal/logging"
	"github.com/league-panel/internal/models"
	"github.com/league-panel/internal/session"
)

// AuditRecorder persists audit entries of mutating console requests
type AuditRecorder interface {
	Record(ctx context.Context, entry *models.AuditEntry) error
}

// Server represents the console HTTP server.
type Server struct {
	router     *mux.Router
	httpServer *http.Server
	client     *adapter.Client
	sessions   *session.Manager
	factory    credentials.Factory
	audit      AuditRecorder
	limiter    *LoginLimiter
	logger     *logging.Logger
	config     *ServerConfig
}

// ServerConfig holds server configuration.
type ServerConfig struct {
	Host               string
	Port               string
	PageSize           int
	CookieSecure       bool
	ReadTimeout        time.Duration
	WriteTimeout       time.Duration
	IdleTimeout        time.Duration
	ShutdownTimeout    time.Duration
	LoginRatePerMinute int
	LoginBurst         int
}

// NewServer creates a new console server instance. audit may be nil, in which
// case audit entries are only logged.
func NewServer(
	config *ServerConfig,
	client *adapter.Client,
	sessions *session.Manager,
	factory credentials.Factory,
	audit AuditRecorder,
) *Server {
	if config.PageSize <= 0 {
		config.PageSize = 20
	}

	s := &Server{
		router:   mux.NewRouter(),
		client:   client,
		sessions: sessions,
		factory:  factory,
		audit:    audit,
		limiter:  NewLoginLimiter(config.LoginRatePerMinute, config.LoginBurst),
		logger:   logging.GetGlobalLogger().Component("console"),
		config:   config,
	}

	s.setupRouter()

	return s
}

// setupRouter configures the router with middleware and routes
func (s *Server) setupRouter() {
	// Order matters: the request logger must exist before the session is read.
	s.router.Use(s.loggingMiddleware)
	s.router.Use(s.recoveryMiddleware)
	s.router.Use(s.sessionMiddleware)

	s.setupRoutes()

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%s", s.config.Host, s.config.Port),
		Handler:      s.router,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
		IdleTimeout:  s.config.IdleTimeout,
	}
}

// idPattern matches a record id or the create sentinel
const idPattern = "{id:new|[0-9]+}"

// setupRoutes configures all console routes.
func (s *Server) setupRoutes() {
	s.router.HandleFunc("/healthz", s.handleHealth).Methods("GET")
	s.router.PathPrefix("/static/").Handler(staticHandler()).Methods("GET")

	s.router.HandleFunc("/login", s.handleLoginPage).Methods("GET")
	s.router.Handle("/login", s.limiter.Middleware(http.HandlerFunc(s.handleLoginSubmit), s.handleLoginThrottled)).Methods("POST")

	// Everything below requires a signed-in operator.
	p := s.router.NewRoute().Subrouter()
	p.Use(s.requireSession)
	p.Use(s.auditMiddleware)

	p.HandleFunc("/", s.handleHome).Methods("GET")
	p.HandleFunc("/logout", s.handleLogout).Methods("POST")

	p.HandleFunc("/tokens", s.handleTokenList).Methods("GET")
	p.HandleFunc("/tokens/scheduler/trigger", s.handleSchedulerTrigger).Methods("POST")
	p.HandleFunc("/tokens/{id:[0-9]+}/prices", s.handleTokenPrices).Methods("GET")
	p.HandleFunc("/tokens/"+idPattern, s.handleTokenForm).Methods("GET")
	p.HandleFunc("/tokens/"+idPattern, s.handleTokenSave).Methods("POST")
	p.HandleFunc("/tokens/{id:[0-9]+}/delete", s.handleTokenDelete).Methods("POST")

	p.HandleFunc("/cards", s.handleCardList).Methods("GET")
	p.HandleFunc("/cards/"+idPattern, s.handleCardForm).Methods("GET")
	p.HandleFunc("/cards/"+idPattern, s.handleCardSave).Methods("POST")
	p.HandleFunc("/cards/{id:[0-9]+}/activate", s.handleCardActivate).Methods("POST")
	p.HandleFunc("/cards/{id:[0-9]+}/delete", s.handleCardDelete).Methods("POST")

	p.HandleFunc("/rarities", s.handleRarityList).Methods("GET")
	p.HandleFunc("/rarities/"+idPattern, s.handleRarityForm).Methods("GET")
	p.HandleFunc("/rarities/"+idPattern, s.handleRaritySave).Methods("POST")
	p.HandleFunc("/rarities/{id:[0-9]+}/delete", s.handleRarityDelete).Methods("POST")

	p.HandleFunc("/pack-types", s.handlePackTypeList).Methods("GET")
	p.HandleFunc("/pack-types/"+idPattern, s.handlePackTypeForm).Methods("GET")
	p.HandleFunc("/pack-types/"+idPattern, s.handlePackTypeSave).Methods("POST")
	p.HandleFunc("/pack-types/{id:[0-9]+}/delete", s.handlePackTypeDelete).Methods("POST")

	p.HandleFunc("/reward-types", s.handleRewardTypeList).Methods("GET")
	p.HandleFunc("/reward-types/"+idPattern, s.handleRewardTypeForm).Methods("GET")
	p.HandleFunc("/reward-types/"+idPattern, s.handleRewardTypeSave).Methods("POST")
	p.HandleFunc("/reward-types/{id:[0-9]+}/delete", s.handleRewardTypeDelete).Methods("POST")

	p.HandleFunc("/tournaments", s.handleTournamentList).Methods("GET")
	p.HandleFunc("/tournaments/{id:[0-9]+}/details", s.handleTournamentDetails).Methods("GET")
	p.HandleFunc("/tournaments/"+idPattern, s.handleTournamentForm).Methods("GET")
	p.HandleFunc("/tournaments/"+idPattern, s.handleTournamentSave).Methods("POST")
	p.HandleFunc("/tournaments/{id:[0-9]+}/delete", s.handleTournamentDelete).Methods("POST")

	p.HandleFunc("/prizes", s.handlePrizeList).Methods("GET")
	p.HandleFunc("/prizes/"+idPattern, s.handlePrizeForm).Methods("GET")
	p.HandleFunc("/prizes/"+idPattern, s.handlePrizeSave).Methods("POST")
	p.HandleFunc("/prizes/{id:[0-9]+}/delete", s.handlePrizeDelete).Methods("POST")

	p.HandleFunc("/users", s.handleUserList).Methods("GET")
	p.HandleFunc("/users/duplicates", s.handleUserDuplicates).Methods("POST")
	p.HandleFunc("/users/{id:[0-9]+}", s.handleUserForm).Methods("GET")
	p.HandleFunc("/users/{id:[0-9]+}", s.handleUserSave).Methods("POST")

	s.router.NotFoundHandler = http.HandlerFunc(s.handleUnknown)
	s.router.MethodNotAllowedHandler = http.HandlerFunc(s.handleUnknown)
}

// Handler returns the root handler, for tests and embedding
func (s *Server) Handler() http.Handler {
	return s.router
}

// handleHealth handles health check requests.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "league-panel-console",
	})
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/tokens", http.StatusSeeOther)
}

// handleUnknown sends every unmatched path back to the start page
func (s *Server) handleUnknown(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	s.logger.WithField("addr", s.httpServer.Addr).Info("starting console server")
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down console server")
	return s.httpServer.Shutdown(ctx)
}
