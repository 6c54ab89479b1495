package model

import (
	"regexp"
	"time"
)

// ConnectionID uniquely identifies a live client connection
type ConnectionID string

// PlayerStatus represents where a connected player currently is
type PlayerStatus string

const (
	StatusInLobby PlayerStatus = "in_lobby" // Connected, not in any room
	StatusInRoom  PlayerStatus = "in_room"  // Member of a room, waiting
	StatusInGame  PlayerStatus = "in_game"  // Room has launched into a game
)

// MaxUsernameLength is the maximum number of characters in a username
const MaxUsernameLength = 23

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9]{1,23}$`)

// ValidUsername reports whether a username is 1-23 alphanumeric characters
func ValidUsername(username string) bool {
	return usernamePattern.MatchString(username)
}

// Player represents a connected client that has claimed a username.
// Player records are owned by the directory; other components hold only
// the ConnectionID.
type Player struct {
	ID          ConnectionID
	Username    string
	Status      PlayerStatus
	ConnectedAt time.Time
}
