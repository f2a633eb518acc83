package api

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
	"github.com/susu3304/pokerbot/internal/config"
	"github.com/susu3304/pokerbot/internal/poker"
)

const (
	PlatformSlack   = "slack"
	PlatformDiscord = "discord"
)

type API struct {
	router      *mux.Router
	config      *config.Config
	controllers map[string]*poker.Controller
	jwtSecret   []byte
	log         logrus.FieldLogger
	server      *http.Server
}

// New wires the HTTP surface. Slack routes are only registered when a
// controller for Slack is present; every controller shows up in the
// operator session listing.
func New(cfg *config.Config, log logrus.FieldLogger, controllers map[string]*poker.Controller) *API {
	api := &API{
		router:      mux.NewRouter(),
		config:      cfg,
		controllers: controllers,
		jwtSecret:   []byte(cfg.JWTSecret),
		log:         log,
	}

	api.setupRoutes()
	return api
}

func (a *API) setupRoutes() {
	a.router.HandleFunc("/healthz", a.handleHealth).Methods("GET")

	// Slack slash command and interactive message callbacks
	if ctrl := a.controllers[PlatformSlack]; ctrl != nil {
		a.router.HandleFunc("/slack/commands", a.handleSlackCommand(ctrl)).Methods("POST")
		a.router.HandleFunc("/slack/actions", a.handleSlackAction(ctrl)).Methods("POST")
	}

	// Protected endpoints
	protected := a.router.PathPrefix("/api").Subrouter()
	protected.Use(a.authMiddleware)

	protected.HandleFunc("/sessions", a.handleListSessions).Methods("GET")
}

func (a *API) Handler() http.Handler {
	corsOptions := cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: false,
	}
	return cors.New(corsOptions).Handler(a.router)
}

func (a *API) Start() error {
	a.server = &http.Server{Addr: a.config.WebBind, Handler: a.Handler()}
	a.log.Infof("API server listening on http://%s", a.config.WebBind)
	if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (a *API) Shutdown(ctx context.Context) error {
	if a.server == nil {
		return nil
	}
	return a.server.Shutdown(ctx)
}
