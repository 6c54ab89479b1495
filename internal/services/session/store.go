// Package session issues, validates, refreshes, and expires opaque
// session tokens for authenticated users.
package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/avlin/browsercraft-go/internal/dependencies/clock"
	"github.com/avlin/browsercraft-go/internal/dependencies/random"
	"github.com/avlin/browsercraft-go/internal/model"
)

const (
	// TokenLength is the length of generated session tokens
	TokenLength = 64
	// TokenAlphabet is the characters used in session tokens
	TokenAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// Config holds configuration for the session store
type Config struct {
	// TTL is how long a token stays valid without a refresh
	TTL time.Duration
	// SweepInterval is how often the background sweep runs
	SweepInterval time.Duration
}

// DefaultConfig returns default session configuration
func DefaultConfig() Config {
	return Config{
		TTL:           60 * time.Second,
		SweepInterval: 30 * time.Second,
	}
}

// Store holds live session tokens. It is an independently lockable
// resource with no ordering dependency on the lobby coordinator.
type Store struct {
	clock  clock.Clock
	random random.Random
	logger *slog.Logger
	cfg    Config

	mu       sync.Mutex
	sessions map[model.SessionToken]*model.Session
}

// New creates a new session store
func New(clk clock.Clock, rnd random.Random, cfg Config, logger *slog.Logger) *Store {
	if cfg.TTL == 0 {
		cfg.TTL = DefaultConfig().TTL
	}
	if cfg.SweepInterval == 0 {
		cfg.SweepInterval = DefaultConfig().SweepInterval
	}
	return &Store{
		clock:    clk,
		random:   rnd,
		logger:   logger.With(slog.String("component", "sessions")),
		cfg:      cfg,
		sessions: make(map[model.SessionToken]*model.Session),
	}
}

// Issue creates a session for the given username and returns its token.
// A colliding token is regenerated rather than overwritten.
func (s *Store) Issue(username string) model.SessionToken {
	s.mu.Lock()
	defer s.mu.Unlock()

	var token model.SessionToken
	for {
		token = model.SessionToken(s.random.String(TokenLength, TokenAlphabet))
		if _, exists := s.sessions[token]; !exists {
			break
		}
	}

	now := s.clock.Now()
	s.sessions[token] = &model.Session{
		Token:     token,
		Username:  username,
		CreatedAt: now,
		ExpiresAt: now.Add(s.cfg.TTL),
	}
	s.sweepLocked(now)

	s.logger.Info("session issued", slog.String("username", username))
	return token
}

// Validate returns the username for a live token. Expired entries
// encountered are removed, and every access also sweeps the rest of the
// store so staleness never outlives the next lookup.
func (s *Store) Validate(token model.SessionToken) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	defer s.sweepLocked(now)

	session, ok := s.sessions[token]
	if !ok {
		return "", model.ErrInvalidSession
	}
	if session.Expired(now) {
		delete(s.sessions, token)
		return "", model.ErrInvalidSession
	}
	return session.Username, nil
}

// Refresh resets the expiry of a live token; no-op if the token is absent
func (s *Store) Refresh(token model.SessionToken) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[token]
	if !ok {
		return
	}
	session.ExpiresAt = s.clock.Now().Add(s.cfg.TTL)
}

// Revoke removes a token unconditionally. Idempotent.
func (s *Store) Revoke(token model.SessionToken) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
}

// Sweep removes all expired sessions and returns how many were removed
func (s *Store) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sweepLocked(s.clock.Now())
}

// Len returns the number of physically stored sessions, expired or not
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Run sweeps the store periodically until the context is cancelled, so
// tokens nobody queries still get reclaimed.
func (s *Store) Run(ctx context.Context) {
	ticker := time.NewTicker(s.cfg.SweepInterval)
	defer ticker.Stop()

	s.logger.Info("session sweeper started",
		slog.Duration("interval", s.cfg.SweepInterval))

	for {
		select {
		case <-ticker.C:
			if removed := s.Sweep(); removed > 0 {
				s.logger.Info("expired sessions swept", slog.Int("removed", removed))
			}
		case <-ctx.Done():
			s.logger.Info("session sweeper stopped")
			return
		}
	}
}

func (s *Store) sweepLocked(now time.Time) int {
	removed := 0
	for token, session := range s.sessions {
		if session.Expired(now) {
			delete(s.sessions, token)
			removed++
		}
	}
	return removed
}
