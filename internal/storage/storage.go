// Package storage persists the application state as a single JSON
// document under a versioned key.
package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/Veraticus/finance-pro/internal/common"
	"github.com/Veraticus/finance-pro/internal/model"
)

// Backend stores opaque documents by key. Get reports a missing key with
// an error wrapping common.ErrNotFound.
type Backend interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, payload []byte) error
	Delete(ctx context.Context, key string) error
	Keys(ctx context.Context, prefix string) ([]string, error)
	Close() error
}

// Backend names accepted by New.
const (
	BackendSQLite = "sqlite"
	BackendFile   = "file"
	BackendMemory = "memory"
)

// Config selects and configures a backend.
type Config struct {
	Logger  *slog.Logger
	Backend string
	Path    string
}

// New opens the configured backend and wraps it in a Gateway.
func New(ctx context.Context, cfg Config) (*Gateway, error) {
	var backend Backend

	switch cfg.Backend {
	case BackendSQLite, "":
		s, err := NewSQLiteStorage(cfg.Path)
		if err != nil {
			return nil, err
		}
		if err := s.Migrate(ctx); err != nil {
			_ = s.Close()
			return nil, fmt.Errorf("failed to migrate database: %w", err)
		}
		backend = s
	case BackendFile:
		f, err := NewFileStorage(cfg.Path)
		if err != nil {
			return nil, err
		}
		backend = f
	case BackendMemory:
		backend = NewMemoryStorage()
	default:
		return nil, fmt.Errorf("%w: unknown storage backend %q", common.ErrInvalidConfig, cfg.Backend)
	}

	return NewGateway(backend, cfg.Logger), nil
}

// UnreadablePrefix keys copies of state documents that failed to decode.
const UnreadablePrefix = "unreadable."

// Gateway loads and saves the application state through a Backend.
//
// A stored document is never overwritten without a copy unless it was
// read and decoded first: an undecodable payload is copied under
// UnreadablePrefix when it is loaded, and after a failed read the next
// save checkpoints whatever is stored before replacing it.
type Gateway struct {
	backend Backend
	logger  *slog.Logger
	now     func() time.Time

	mu         sync.Mutex
	unverified bool
}

// NewGateway wraps backend. A nil logger uses slog.Default.
func NewGateway(backend Backend, logger *slog.Logger) *Gateway {
	if logger == nil {
		logger = slog.Default()
	}
	return &Gateway{backend: backend, logger: logger, now: time.Now}
}

// LoadState returns the stored state. Missing, unreadable and
// unparseable payloads all report false so the caller can seed.
func (g *Gateway) LoadState(ctx context.Context) (*model.AppState, bool) {
	if err := validateContext(ctx); err != nil {
		g.logger.Warn("Cannot load state", "error", err)
		return nil, false
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	payload, err := g.backend.Get(ctx, StateKey)
	if errors.Is(err, common.ErrNotFound) {
		g.logger.Debug("No stored state", "key", StateKey)
		g.unverified = false
		return nil, false
	}
	if err != nil {
		g.logger.Warn("Failed to read stored state", "key", StateKey, "error", err)
		g.unverified = true
		return nil, false
	}
	g.unverified = false

	state, err := DecodeState(payload)
	if err != nil {
		g.logger.Warn("Stored state is unreadable, ignoring it", "key", StateKey, "error", err)
		if err := g.keepUnreadable(ctx, payload); err != nil {
			g.logger.Error("Failed to keep a copy of the unreadable state", "error", err)
			g.unverified = true
		}
		return nil, false
	}

	return state, true
}

// keepUnreadable stores payload under a fresh UnreadablePrefix key.
func (g *Gateway) keepUnreadable(ctx context.Context, payload []byte) error {
	key := UnreadablePrefix + StateKey + "-" + g.now().UTC().Format("20060102-150405.000000000")
	if err := g.backend.Put(ctx, key, payload); err != nil {
		return err
	}
	g.logger.Warn("Kept a copy of the unreadable state", "key", key)
	return nil
}

// secureStoredLocked copies the stored document aside before a save
// that follows a failed read. It fails when the document still cannot
// be read.
func (g *Gateway) secureStoredLocked(ctx context.Context) error {
	payload, err := g.backend.Get(ctx, StateKey)
	if errors.Is(err, common.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("stored state could not be read, not overwriting it: %w", err)
	}

	if _, err := DecodeState(payload); err != nil {
		return g.keepUnreadable(ctx, payload)
	}
	_, err = g.Checkpoints().AutoCheckpoint(ctx, "overwrite")
	return err
}

// SaveState overwrites the stored state.
func (g *Gateway) SaveState(ctx context.Context, state model.AppState) error {
	if err := validateContext(ctx); err != nil {
		return common.NewStorageError("save", err)
	}

	payload, err := EncodeState(state)
	if err != nil {
		return common.NewStorageError("encode", err)
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if g.unverified {
		if err := g.secureStoredLocked(ctx); err != nil {
			return common.NewStorageError("save", err)
		}
		g.unverified = false
	}

	if err := g.backend.Put(ctx, StateKey, payload); err != nil {
		return common.NewStorageError("save", err)
	}

	g.logger.Debug("Saved state",
		"transactions", len(state.Transactions),
		"bytes", len(payload))
	return nil
}

// Checkpoints returns a checkpoint manager sharing the gateway's backend.
func (g *Gateway) Checkpoints() *CheckpointManager {
	return NewCheckpointManager(g.backend, g.logger)
}

// Close releases the backend.
func (g *Gateway) Close() error {
	return g.backend.Close()
}
