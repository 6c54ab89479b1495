package handler

import (
	"net/http"

	"github.com/avlin/browsercraft-go/internal/services/lobby"
)

// LobbyHandler serves the lobby snapshot
type LobbyHandler struct {
	coordinator *lobby.Coordinator
}

// NewLobbyHandler creates a new LobbyHandler
func NewLobbyHandler(coordinator *lobby.Coordinator) *LobbyHandler {
	return &LobbyHandler{coordinator: coordinator}
}

// Get returns the current lobby state
// GET /lobby
func (h *LobbyHandler) Get(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.coordinator.Snapshot())
}
