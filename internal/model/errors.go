package model

import "errors"

// Common errors used across the application
var (
	// Player errors
	ErrInvalidUsername   = errors.New("username must be 1-23 alphanumeric characters")
	ErrDuplicateUsername = errors.New("username is already in use")
	ErrPlayerNotFound    = errors.New("player not found")

	// Room errors
	ErrInvalidRoomName = errors.New("room name must not be empty")
	ErrRoomNameTaken   = errors.New("a room with that name already exists")
	ErrRoomNotFound    = errors.New("room not found")
	ErrAlreadyInRoom   = errors.New("player is already in a room")
	ErrNotInRoom       = errors.New("player is not a member of the room")

	// Session errors
	ErrInvalidSession = errors.New("invalid or expired session")

	// Account errors
	ErrUsernameTaken      = errors.New("username is already registered")
	ErrInvalidPassword    = errors.New("password is too short")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountNotFound    = errors.New("account not found")
)
