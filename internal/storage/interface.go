package storage

import (
	"context"

	"github.com/avlin/browsercraft-go/internal/model"
)

// Storage defines the interface for persistent account records. Lobby,
// room, and session state is deliberately kept in memory only and never
// passes through this interface.
type Storage interface {
	// CreateAccount stores a new account. It fails with
	// model.ErrUsernameTaken if an account with the same username
	// already exists; the existence check and insert are atomic.
	CreateAccount(ctx context.Context, account *model.Account) error

	// GetAccount retrieves an account by username, or
	// model.ErrAccountNotFound if absent.
	GetAccount(ctx context.Context, username string) (*model.Account, error)

	// DeleteAccount removes an account. Deleting an absent account is a no-op.
	DeleteAccount(ctx context.Context, username string) error
}
