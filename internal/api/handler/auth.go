package handler

import (
	"encoding/json"
	"net/http"

	"github.com/avlin/browsercraft-go/internal/api/apierr"
	"github.com/avlin/browsercraft-go/internal/api/middleware"
	"github.com/avlin/browsercraft-go/internal/services/account"
	"github.com/avlin/browsercraft-go/internal/services/session"
)

// AuthHandler serves account registration, login, and logout
type AuthHandler struct {
	accounts *account.Service
	sessions *session.Store
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(accounts *account.Service, sessions *session.Store) *AuthHandler {
	return &AuthHandler{
		accounts: accounts,
		sessions: sessions,
	}
}

// credentialsRequest is the request body for register and login
type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// sessionResponse carries a freshly issued session token
type sessionResponse struct {
	Username string `json:"username"`
	Token    string `json:"token"`
}

// Register creates a new account and issues a session
// POST /register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewBadRequestError("invalid request body"))
		return
	}

	acct, err := h.accounts.Register(r.Context(), req.Username, req.Password)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	token := h.sessions.Issue(acct.Username)
	writeJSON(w, http.StatusCreated, sessionResponse{
		Username: acct.Username,
		Token:    string(token),
	})
}

// Login authenticates an existing account and issues a session
// POST /login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewBadRequestError("invalid request body"))
		return
	}

	if err := h.accounts.Authenticate(r.Context(), req.Username, req.Password); err != nil {
		apierr.WriteError(w, err)
		return
	}

	token := h.sessions.Issue(req.Username)
	writeJSON(w, http.StatusOK, sessionResponse{
		Username: req.Username,
		Token:    string(token),
	})
}

// Logout revokes the current session
// POST /logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if token, ok := middleware.TokenFromContext(r.Context()); ok {
		h.sessions.Revoke(token)
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
