// Package registry owns room and membership lifecycle: creation, joining,
// leaving, ready state, and the cleanup that follows a disconnect.
package registry

import (
	"log/slog"

	"github.com/avlin/browsercraft-go/internal/dependencies/clock"
	"github.com/avlin/browsercraft-go/internal/model"
	"github.com/avlin/browsercraft-go/internal/services/directory"
)

// Registry tracks active rooms. It references players only by connection
// id, validated against the directory; it never holds player records.
// Like the directory, it relies on the coordinator for serialization.
type Registry struct {
	directory *directory.Directory
	clock     clock.Clock
	logger    *slog.Logger

	rooms map[model.RoomName]*model.Room
	// memberOf maps a player to the one room they belong to, if any
	memberOf map[model.ConnectionID]model.RoomName
}

// New creates a new Registry backed by the given directory
func New(dir *directory.Directory, clk clock.Clock, logger *slog.Logger) *Registry {
	return &Registry{
		directory: dir,
		clock:     clk,
		logger:    logger.With(slog.String("component", "registry")),
		rooms:     make(map[model.RoomName]*model.Room),
		memberOf:  make(map[model.ConnectionID]model.RoomName),
	}
}

// CreateRoom creates a room with the creator as its sole, owning member.
// All preconditions are checked before any state is touched, so a
// rejection leaves the registry unchanged.
func (r *Registry) CreateRoom(name model.RoomName, creatorID model.ConnectionID) (*model.Room, error) {
	if name == "" {
		return nil, model.ErrInvalidRoomName
	}
	if _, ok := r.rooms[name]; ok {
		return nil, model.ErrRoomNameTaken
	}
	if _, err := r.directory.Lookup(creatorID); err != nil {
		return nil, model.ErrPlayerNotFound
	}
	if _, ok := r.memberOf[creatorID]; ok {
		return nil, model.ErrAlreadyInRoom
	}

	now := r.clock.Now()
	room := &model.Room{
		Name: name,
		Members: []model.Membership{
			{
				PlayerID: creatorID,
				Ready:    false,
				IsOwner:  true,
				JoinedAt: now,
			},
		},
		CreatedAt: now,
	}
	r.rooms[name] = room
	r.memberOf[creatorID] = name
	_ = r.directory.SetStatus(creatorID, model.StatusInRoom)

	r.logger.Info("room created",
		slog.String("room", string(name)),
		slog.String("owner", string(creatorID)))

	return room, nil
}

// JoinRoom adds a player as a non-owner member
func (r *Registry) JoinRoom(name model.RoomName, joinerID model.ConnectionID) (*model.Room, error) {
	room, ok := r.rooms[name]
	if !ok {
		return nil, model.ErrRoomNotFound
	}
	if _, err := r.directory.Lookup(joinerID); err != nil {
		return nil, model.ErrPlayerNotFound
	}
	if _, ok := r.memberOf[joinerID]; ok {
		return nil, model.ErrAlreadyInRoom
	}

	room.Members = append(room.Members, model.Membership{
		PlayerID: joinerID,
		Ready:    false,
		IsOwner:  false,
		JoinedAt: r.clock.Now(),
	})
	r.memberOf[joinerID] = name
	_ = r.directory.SetStatus(joinerID, model.StatusInRoom)

	r.logger.Info("player joined room",
		slog.String("room", string(name)),
		slog.String("connection_id", string(joinerID)))

	return room, nil
}

// LeaveRoom removes a player's membership. The room is deleted when its
// last member leaves; if the owner leaves and members remain, the
// earliest-joined remaining member is promoted to owner.
func (r *Registry) LeaveRoom(name model.RoomName, leaverID model.ConnectionID) error {
	room, ok := r.rooms[name]
	if !ok {
		return model.ErrRoomNotFound
	}
	member := room.GetMember(leaverID)
	if member == nil {
		return model.ErrNotInRoom
	}

	r.removeMember(room, leaverID, member.IsOwner)
	return nil
}

// SetReady sets a member's ready flag
func (r *Registry) SetReady(name model.RoomName, memberID model.ConnectionID, ready bool) error {
	room, ok := r.rooms[name]
	if !ok {
		return model.ErrRoomNotFound
	}
	member := room.GetMember(memberID)
	if member == nil {
		return model.ErrNotInRoom
	}
	member.Ready = ready
	return nil
}

// Disconnect removes any membership held by the given player. Safe to
// call for players with no room; always succeeds.
func (r *Registry) Disconnect(id model.ConnectionID) {
	name, ok := r.memberOf[id]
	if !ok {
		return
	}
	room, ok := r.rooms[name]
	if !ok {
		// memberOf pointing at a deleted room means a missed cleanup path
		r.logger.Error("membership index references missing room",
			slog.String("room", string(name)),
			slog.String("connection_id", string(id)))
		delete(r.memberOf, id)
		return
	}
	member := room.GetMember(id)
	if member == nil {
		r.logger.Error("membership index references room without membership",
			slog.String("room", string(name)),
			slog.String("connection_id", string(id)))
		delete(r.memberOf, id)
		return
	}
	r.removeMember(room, id, member.IsOwner)
}

// RoomOf returns the room the player belongs to, or nil
func (r *Registry) RoomOf(id model.ConnectionID) *model.Room {
	name, ok := r.memberOf[id]
	if !ok {
		return nil
	}
	return r.rooms[name]
}

// GetRoom returns the room with the given name
func (r *Registry) GetRoom(name model.RoomName) (*model.Room, error) {
	room, ok := r.rooms[name]
	if !ok {
		return nil, model.ErrRoomNotFound
	}
	return room, nil
}

// Rooms returns all active rooms in unspecified order
func (r *Registry) Rooms() []*model.Room {
	rooms := make([]*model.Room, 0, len(r.rooms))
	for _, room := range r.rooms {
		rooms = append(rooms, room)
	}
	return rooms
}

// removeMember drops the membership and applies the room lifecycle rules
func (r *Registry) removeMember(room *model.Room, id model.ConnectionID, wasOwner bool) {
	for i := range room.Members {
		if room.Members[i].PlayerID == id {
			room.Members = append(room.Members[:i], room.Members[i+1:]...)
			break
		}
	}
	delete(r.memberOf, id)
	_ = r.directory.SetStatus(id, model.StatusInLobby)

	if len(room.Members) == 0 {
		delete(r.rooms, room.Name)
		r.logger.Info("room deleted", slog.String("room", string(room.Name)))
		return
	}

	// Members are join-ordered, so index 0 is the earliest joined
	if wasOwner {
		room.Members[0].IsOwner = true
		r.logger.Info("room ownership transferred",
			slog.String("room", string(room.Name)),
			slog.String("new_owner", string(room.Members[0].PlayerID)))
	}
}
