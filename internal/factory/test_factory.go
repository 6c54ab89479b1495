package factory

import (
	"log/slog"

	"github.com/avlin/browsercraft-go/internal/dependencies/clock"
	"github.com/avlin/browsercraft-go/internal/dependencies/random"
	"github.com/avlin/browsercraft-go/internal/services/session"
	"github.com/avlin/browsercraft-go/internal/storage"
)

// NewForTest creates an App with injected dependencies, bypassing storage
// backend selection. Intended for integration tests.
func NewForTest(store storage.Storage, clk clock.Clock, rnd random.Random, sessionCfg session.Config, logger *slog.Logger) *App {
	return newWithDependencies(store, clk, rnd, sessionCfg, logger)
}
