// Package lobby provides the coordinator that serializes every
// lobby-mutating event and produces the broadcastable snapshot.
package lobby

import (
	"log/slog"
	"sort"
	"sync"

	"github.com/avlin/browsercraft-go/internal/model"
	"github.com/avlin/browsercraft-go/internal/services/directory"
	"github.com/avlin/browsercraft-go/internal/services/registry"
)

// Coordinator is the facade over the player directory and room registry.
// A single mutex guards both, so at most one mutation is in flight at a
// time and the order of observed mutations matches arrival order.
// Snapshots are built inside the same critical section and never observe
// a partially applied mutation.
type Coordinator struct {
	logger *slog.Logger

	mu        sync.Mutex
	directory *directory.Directory
	registry  *registry.Registry
}

// New creates a new Coordinator over the given directory and registry
func New(dir *directory.Directory, reg *registry.Registry, logger *slog.Logger) *Coordinator {
	return &Coordinator{
		logger:    logger.With(slog.String("component", "lobby")),
		directory: dir,
		registry:  reg,
	}
}

// Connect registers a connection under the claimed username
func (c *Coordinator) Connect(id model.ConnectionID, username string) (*model.Player, *model.LobbySnapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	player, err := c.directory.Register(id, username)
	if err != nil {
		return nil, nil, err
	}
	return player, c.snapshotLocked(), nil
}

// Disconnect removes the player and any room membership they held as one
// atomic unit, so a dropped connection never leaves a dangling
// membership. Idempotent; always returns the resulting snapshot.
func (c *Coordinator) Disconnect(id model.ConnectionID) *model.LobbySnapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.registry.Disconnect(id)
	c.directory.Unregister(id)
	return c.snapshotLocked()
}

// CreateRoom creates a room owned by the given connection
func (c *Coordinator) CreateRoom(id model.ConnectionID, name model.RoomName) (*model.LobbySnapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, err := c.registry.CreateRoom(name, id); err != nil {
		return nil, err
	}
	return c.snapshotLocked(), nil
}

// JoinRoom adds the given connection to a room
func (c *Coordinator) JoinRoom(id model.ConnectionID, name model.RoomName) (*model.LobbySnapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, err := c.registry.JoinRoom(name, id); err != nil {
		return nil, err
	}
	return c.snapshotLocked(), nil
}

// LeaveRoom removes the given connection from a room
func (c *Coordinator) LeaveRoom(id model.ConnectionID, name model.RoomName) (*model.LobbySnapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.registry.LeaveRoom(name, id); err != nil {
		return nil, err
	}
	return c.snapshotLocked(), nil
}

// SetReady flips the ready flag for the given connection's membership
func (c *Coordinator) SetReady(id model.ConnectionID, name model.RoomName, ready bool) (*model.LobbySnapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.registry.SetReady(name, id, ready); err != nil {
		return nil, err
	}
	return c.snapshotLocked(), nil
}

// Snapshot returns the current lobby state without mutating it
func (c *Coordinator) Snapshot() *model.LobbySnapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// snapshotLocked builds an immutable snapshot. A membership whose player
// is missing from the directory signals a missed disconnect-cleanup
// path: it is logged loudly and healed by removing the membership.
func (c *Coordinator) snapshotLocked() *model.LobbySnapshot {
	players := make([]model.PlayerInfo, 0, c.directory.Len())
	for _, p := range c.directory.Players() {
		players = append(players, model.PlayerInfo{
			ID:       p.ID,
			Username: p.Username,
			Status:   p.Status,
		})
	}
	sort.Slice(players, func(i, j int) bool {
		return players[i].Username < players[j].Username
	})

	var dangling []model.ConnectionID
	rooms := make([]model.RoomInfo, 0, len(c.registry.Rooms()))
	for _, room := range c.registry.Rooms() {
		info := model.RoomInfo{
			Name:    room.Name,
			Members: make([]model.MemberInfo, 0, len(room.Members)),
		}
		for _, m := range room.Members {
			player, err := c.directory.Lookup(m.PlayerID)
			if err != nil {
				c.logger.Error("dangling membership: member has no directory entry",
					slog.String("room", string(room.Name)),
					slog.String("connection_id", string(m.PlayerID)))
				dangling = append(dangling, m.PlayerID)
				continue
			}
			info.Members = append(info.Members, model.MemberInfo{
				ID:       m.PlayerID,
				Username: player.Username,
				Ready:    m.Ready,
				IsOwner:  m.IsOwner,
			})
		}
		rooms = append(rooms, info)
	}
	sort.Slice(rooms, func(i, j int) bool {
		return rooms[i].Name < rooms[j].Name
	})

	if len(dangling) > 0 {
		for _, id := range dangling {
			c.registry.Disconnect(id)
		}
		// Rebuild against the healed state
		return c.snapshotLocked()
	}

	return &model.LobbySnapshot{
		Players: players,
		Rooms:   rooms,
	}
}
