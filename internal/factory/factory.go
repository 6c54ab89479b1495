// Package factory wires the application together
package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/avlin/browsercraft-go/internal/dependencies/clock"
	"github.com/avlin/browsercraft-go/internal/dependencies/random"
	"github.com/avlin/browsercraft-go/internal/services/account"
	"github.com/avlin/browsercraft-go/internal/services/directory"
	"github.com/avlin/browsercraft-go/internal/services/lobby"
	"github.com/avlin/browsercraft-go/internal/services/registry"
	"github.com/avlin/browsercraft-go/internal/services/session"
	"github.com/avlin/browsercraft-go/internal/storage"
	"github.com/avlin/browsercraft-go/internal/storage/memory"
	redisstorage "github.com/avlin/browsercraft-go/internal/storage/redis"
	"github.com/avlin/browsercraft-go/internal/ws"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	Storage storage.Storage

	Clock  clock.Clock
	Random random.Random

	Directory      *directory.Directory
	Registry       *registry.Registry
	Coordinator    *lobby.Coordinator
	SessionStore   *session.Store
	AccountService *account.Service
	Hub            *ws.Hub
	WSHandler      *ws.Handler
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional; no-op if nil)
	Logger *slog.Logger
	// StorageType selects the account storage backend ("memory" or "redis").
	// Defaults to "memory".
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// SessionConfig configures token TTL and sweep interval (zero value for defaults)
	SessionConfig session.Config
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	return newWithDependencies(store, clock.New(), random.New(), cfg.SessionConfig, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, rnd random.Random, sessionCfg session.Config, logger *slog.Logger) *App {
	dir := directory.New(clk, logger)
	reg := registry.New(dir, clk, logger)
	coordinator := lobby.New(dir, reg, logger)
	sessions := session.New(clk, rnd, sessionCfg, logger)
	accounts := account.New(store, clk, logger)
	hub := ws.NewHub(logger)
	wsHandler := ws.NewHandler(coordinator, hub, logger)

	return &App{
		Storage:        store,
		Clock:          clk,
		Random:         rnd,
		Directory:      dir,
		Registry:       reg,
		Coordinator:    coordinator,
		SessionStore:   sessions,
		AccountService: accounts,
		Hub:            hub,
		WSHandler:      wsHandler,
	}
}
