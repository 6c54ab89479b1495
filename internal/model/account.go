package model

import "time"

// Account is a registered user account. Accounts are the only state that
// persists across restarts.
type Account struct {
	Username     string    `json:"username"`
	PasswordHash string    `json:"password_hash"` // bcrypt hash
	CreatedAt    time.Time `json:"created_at"`
}
