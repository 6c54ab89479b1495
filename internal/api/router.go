package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/avlin/browsercraft-go/internal/api/handler"
	"github.com/avlin/browsercraft-go/internal/api/middleware"
	"github.com/avlin/browsercraft-go/internal/services/account"
	"github.com/avlin/browsercraft-go/internal/services/lobby"
	"github.com/avlin/browsercraft-go/internal/services/session"
	"github.com/avlin/browsercraft-go/internal/ws"
)

// RouterConfig holds configuration for the router
type RouterConfig struct {
	Logger         *slog.Logger
	AccountService *account.Service
	SessionStore   *session.Store
	Coordinator    *lobby.Coordinator
	WSHandler      *ws.Handler
}

// NewRouter creates the HTTP router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	authHandler := handler.NewAuthHandler(cfg.AccountService, cfg.SessionStore)
	lobbyHandler := handler.NewLobbyHandler(cfg.Coordinator)

	authMiddleware := middleware.Auth(cfg.SessionStore)

	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.Logging(cfg.Logger))

	r.HandleFunc("/health", handler.Health).Methods(http.MethodGet)
	r.HandleFunc("/register", authHandler.Register).Methods(http.MethodPost)
	r.HandleFunc("/login", authHandler.Login).Methods(http.MethodPost)

	// Protected routes
	protected := r.NewRoute().Subrouter()
	protected.Use(authMiddleware)
	protected.HandleFunc("/logout", authHandler.Logout).Methods(http.MethodPost)
	protected.HandleFunc("/lobby", lobbyHandler.Get).Methods(http.MethodGet)

	// Websocket upgrade; name claims happen over the socket
	if cfg.WSHandler != nil {
		r.Handle("/ws", cfg.WSHandler).Methods(http.MethodGet)
	}

	return r
}
