package model

import "time"

// RoomName is the user-chosen identifier for a room, unique among active rooms
type RoomName string

// Membership relates one player to one room. A player holds at most one
// membership across all rooms at any time.
type Membership struct {
	PlayerID ConnectionID
	Ready    bool
	IsOwner  bool
	JoinedAt time.Time
}

// Room represents an active room. A room always has at least one member;
// it is deleted the moment its last member leaves.
type Room struct {
	Name      RoomName
	Members   []Membership // ordered by join time
	CreatedAt time.Time
}

// GetMember returns the membership for the given player, or nil if not a member
func (r *Room) GetMember(id ConnectionID) *Membership {
	for i := range r.Members {
		if r.Members[i].PlayerID == id {
			return &r.Members[i]
		}
	}
	return nil
}

// GetOwner returns the owning membership, or nil if none
func (r *Room) GetOwner() *Membership {
	for i := range r.Members {
		if r.Members[i].IsOwner {
			return &r.Members[i]
		}
	}
	return nil
}
