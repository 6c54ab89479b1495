// Package account handles registration and authentication of persistent
// user accounts.
package account

import (
	"context"
	"errors"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/avlin/browsercraft-go/internal/dependencies/clock"
	"github.com/avlin/browsercraft-go/internal/model"
	"github.com/avlin/browsercraft-go/internal/storage"
)

// MinPasswordLength is the minimum accepted password length
const MinPasswordLength = 4

// Service manages account records in persistent storage
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	logger  *slog.Logger
}

// New creates a new account service
func New(store storage.Storage, clk clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		storage: store,
		clock:   clk,
		logger:  logger.With(slog.String("component", "accounts")),
	}
}

// Register creates a new account with a bcrypt-hashed password
func (s *Service) Register(ctx context.Context, username, password string) (*model.Account, error) {
	if !model.ValidUsername(username) {
		return nil, model.ErrInvalidUsername
	}
	if len(password) < MinPasswordLength {
		return nil, model.ErrInvalidPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	account := &model.Account{
		Username:     username,
		PasswordHash: string(hash),
		CreatedAt:    s.clock.Now(),
	}

	// Storage rejects duplicates atomically
	if err := s.storage.CreateAccount(ctx, account); err != nil {
		return nil, err
	}

	s.logger.Info("account registered", slog.String("username", username))
	return account, nil
}

// Authenticate verifies a username/password pair. Unknown users and
// wrong passwords are indistinguishable to the caller.
func (s *Service) Authenticate(ctx context.Context, username, password string) error {
	account, err := s.storage.GetAccount(ctx, username)
	if err != nil {
		if errors.Is(err, model.ErrAccountNotFound) {
			return model.ErrInvalidCredentials
		}
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return model.ErrInvalidCredentials
	}
	return nil
}
