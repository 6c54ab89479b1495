package ws

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/avlin/browsercraft-go/internal/model"
	"github.com/avlin/browsercraft-go/internal/services/lobby"
)

// Handler upgrades HTTP requests to websocket connections and dispatches
// client events into the lobby coordinator.
type Handler struct {
	coordinator *lobby.Coordinator
	hub         *Hub
	logger      *slog.Logger
	upgrader    websocket.Upgrader
}

// NewHandler creates a new websocket handler
func NewHandler(coordinator *lobby.Coordinator, hub *Hub, logger *slog.Logger) *Handler {
	return &Handler{
		coordinator: coordinator,
		hub:         hub,
		logger:      logger.With(slog.String("component", "ws-handler")),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// The HTML surface lives elsewhere; origin policy is its concern
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// ServeHTTP handles the websocket upgrade and runs the connection
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("ws upgrade failed", slog.Any("error", err))
		return
	}

	client := NewClient(model.ConnectionID(uuid.NewString()), conn)
	h.hub.Register(client)

	go client.writePump()
	h.readPump(client)
}

// readPump reads client events until the connection drops, then performs
// disconnect cleanup. Runs on the request goroutine.
func (h *Handler) readPump(client *Client) {
	defer func() {
		h.hub.Unregister(client)
		// Disconnect always wins: whatever the connection was doing, its
		// registration and any membership are removed here.
		snapshot := h.coordinator.Disconnect(client.id)
		h.hub.BroadcastState(snapshot)
		_ = client.conn.Close()
	}()

	client.conn.SetReadLimit(maxMessageSize)
	_ = client.conn.SetReadDeadline(time.Now().Add(pongWait))
	client.conn.SetPongHandler(func(string) error {
		return client.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := client.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Warn("ws read error",
					slog.String("connection_id", string(client.id)),
					slog.Any("error", err))
			}
			return
		}

		var msg ClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			h.sendResult(client, "", errors.New("malformed message"))
			continue
		}

		h.dispatch(client, msg)
	}
}

// dispatch applies one client event and fans out the updated snapshot on success
func (h *Handler) dispatch(client *Client, msg ClientMessage) {
	var (
		snapshot *model.LobbySnapshot
		err      error
	)

	switch msg.Type {
	case EventClaimName:
		_, snapshot, err = h.coordinator.Connect(client.id, msg.Username)
	case EventCreateRoom:
		snapshot, err = h.coordinator.CreateRoom(client.id, model.RoomName(msg.Room))
	case EventJoinRoom:
		snapshot, err = h.coordinator.JoinRoom(client.id, model.RoomName(msg.Room))
	case EventLeaveRoom:
		snapshot, err = h.coordinator.LeaveRoom(client.id, model.RoomName(msg.Room))
	case EventSetReady:
		snapshot, err = h.coordinator.SetReady(client.id, model.RoomName(msg.Room), msg.Ready)
	default:
		err = errors.New("unknown event type")
	}

	h.sendResult(client, msg.Type, err)

	if err == nil && snapshot != nil {
		h.hub.BroadcastState(snapshot)
	}
}

// sendResult reports an event outcome back to the originating client only
func (h *Handler) sendResult(client *Client, event string, err error) {
	result := ResultMessage{
		Type:    MessageResult,
		Event:   event,
		Success: err == nil,
	}
	if err != nil {
		result.Error = err.Error()
	}

	data, marshalErr := json.Marshal(result)
	if marshalErr != nil {
		h.logger.Error("ws failed to marshal result", slog.Any("error", marshalErr))
		return
	}
	client.Send(data)
}
