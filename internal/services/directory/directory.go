// Package directory is the single source of truth for which players are
// connected, their usernames, and their lobby status.
package directory

import (
	"log/slog"

	"github.com/avlin/browsercraft-go/internal/dependencies/clock"
	"github.com/avlin/browsercraft-go/internal/model"
)

// Directory tracks connected players. It is not internally synchronized;
// all access goes through the lobby coordinator's exclusive section.
type Directory struct {
	clock  clock.Clock
	logger *slog.Logger

	players map[model.ConnectionID]*model.Player
}

// New creates a new Directory
func New(clk clock.Clock, logger *slog.Logger) *Directory {
	return &Directory{
		clock:   clk,
		logger:  logger.With(slog.String("component", "directory")),
		players: make(map[model.ConnectionID]*model.Player),
	}
}

// Register adds a player for the given connection, claiming the username.
// The uniqueness check and the insert are a single step; no other caller
// can observe a state between them.
func (d *Directory) Register(id model.ConnectionID, username string) (*model.Player, error) {
	if !model.ValidUsername(username) {
		return nil, model.ErrInvalidUsername
	}
	for _, p := range d.players {
		if p.Username == username {
			return nil, model.ErrDuplicateUsername
		}
	}

	player := &model.Player{
		ID:          id,
		Username:    username,
		Status:      model.StatusInLobby,
		ConnectedAt: d.clock.Now(),
	}
	d.players[id] = player

	d.logger.Info("player registered",
		slog.String("connection_id", string(id)),
		slog.String("username", username))

	return player, nil
}

// Unregister removes and returns the player for the given connection,
// or nil if none is registered. Idempotent.
func (d *Directory) Unregister(id model.ConnectionID) *model.Player {
	player, ok := d.players[id]
	if !ok {
		return nil
	}
	delete(d.players, id)

	d.logger.Info("player unregistered",
		slog.String("connection_id", string(id)),
		slog.String("username", player.Username))

	return player
}

// Lookup returns the player for the given connection
func (d *Directory) Lookup(id model.ConnectionID) (*model.Player, error) {
	player, ok := d.players[id]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	return player, nil
}

// SetStatus updates a player's status
func (d *Directory) SetStatus(id model.ConnectionID, status model.PlayerStatus) error {
	player, ok := d.players[id]
	if !ok {
		return model.ErrPlayerNotFound
	}
	player.Status = status
	return nil
}

// Players returns all registered players in unspecified order
func (d *Directory) Players() []*model.Player {
	players := make([]*model.Player, 0, len(d.players))
	for _, p := range d.players {
		players = append(players, p)
	}
	return players
}

// Len returns the number of registered players
func (d *Directory) Len() int {
	return len(d.players)
}
