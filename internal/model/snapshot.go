package model

// PlayerInfo is the broadcastable view of a connected player
type PlayerInfo struct {
	ID       ConnectionID `json:"id"`
	Username string       `json:"username"`
	Status   PlayerStatus `json:"status"`
}

// MemberInfo is the broadcastable view of a room member
type MemberInfo struct {
	ID       ConnectionID `json:"id"`
	Username string       `json:"username"`
	Ready    bool         `json:"ready"`
	IsOwner  bool         `json:"is_owner"`
}

// RoomInfo is the broadcastable view of a room
type RoomInfo struct {
	Name    RoomName     `json:"name"`
	Members []MemberInfo `json:"members"`
}

// LobbySnapshot is an immutable point-in-time copy of the lobby state,
// sent to every connected client after each mutation. Players are sorted
// by username and rooms by name so successive snapshots are comparable.
type LobbySnapshot struct {
	Players []PlayerInfo `json:"players"`
	Rooms   []RoomInfo   `json:"rooms"`
}
