package ws

import "github.com/avlin/browsercraft-go/internal/model"

// Client event types
const (
	EventClaimName  = "claim-name"
	EventCreateRoom = "create-room"
	EventJoinRoom   = "join-room"
	EventLeaveRoom  = "leave-room"
	EventSetReady   = "set-ready"
)

// Server message types
const (
	MessageResult     = "result"
	MessageLobbyState = "lobby-state"
)

// ClientMessage is an inbound event from a connected client
type ClientMessage struct {
	Type     string `json:"type"`
	Username string `json:"username,omitempty"`
	Room     string `json:"room,omitempty"`
	Ready    bool   `json:"ready,omitempty"`
}

// ResultMessage is the per-connection outcome of a client event
type ResultMessage struct {
	Type    string `json:"type"`
	Event   string `json:"event"`
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// StateMessage carries a lobby snapshot to every connected client
type StateMessage struct {
	Type  string               `json:"type"`
	State *model.LobbySnapshot `json:"state"`
}
