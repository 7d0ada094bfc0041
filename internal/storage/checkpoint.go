package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/Veraticus/finance-pro/internal/common"
)

// checkpointPrefix namespaces checkpoint documents next to the state.
const checkpointPrefix = "checkpoint."

// maxAutoCheckpoints is how many automatic checkpoints are retained.
const maxAutoCheckpoints = 5

// Checkpoint errors.
var (
	ErrCheckpointNotFound  = errors.New("checkpoint not found")
	ErrCheckpointExists    = errors.New("checkpoint already exists")
	ErrCheckpointCorrupted = errors.New("checkpoint integrity check failed")
	ErrNothingToCheckpoint = errors.New("no stored state to checkpoint")
)

// CheckpointInfo describes a saved copy of the state document.
type CheckpointInfo struct {
	CreatedAt    time.Time `json:"created_at"`
	ID           string    `json:"id"`
	Description  string    `json:"description"`
	Transactions int       `json:"transactions"`
	Size         int       `json:"size"`
	IsAuto       bool      `json:"is_auto"`
}

type checkpointDocument struct {
	State json.RawMessage `json:"state"`
	CheckpointInfo
}

// CheckpointManager copies the stored state aside and restores it later.
type CheckpointManager struct {
	backend Backend
	logger  *slog.Logger
	now     func() time.Time
}

// NewCheckpointManager creates a checkpoint manager over backend.
func NewCheckpointManager(backend Backend, logger *slog.Logger) *CheckpointManager {
	if logger == nil {
		logger = slog.Default()
	}
	return &CheckpointManager{backend: backend, logger: logger, now: time.Now}
}

// Create copies the current state document under tag.
// An empty tag generates one from the current time.
func (cm *CheckpointManager) Create(ctx context.Context, tag, description string) (*CheckpointInfo, error) {
	return cm.create(ctx, tag, description, false)
}

func (cm *CheckpointManager) create(ctx context.Context, tag, description string, auto bool) (*CheckpointInfo, error) {
	if tag == "" {
		tag = fmt.Sprintf("checkpoint-%s", cm.now().Format("2006-01-02-150405"))
	}
	if err := validateKey(tag); err != nil {
		return nil, fmt.Errorf("invalid checkpoint tag: %w", err)
	}

	key := checkpointPrefix + tag
	if _, err := cm.backend.Get(ctx, key); err == nil {
		return nil, fmt.Errorf("%w: %s", ErrCheckpointExists, tag)
	}

	payload, err := cm.backend.Get(ctx, StateKey)
	if errors.Is(err, common.ErrNotFound) {
		return nil, ErrNothingToCheckpoint
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read state: %w", err)
	}

	state, err := DecodeState(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCheckpointCorrupted, err)
	}

	doc := checkpointDocument{
		CheckpointInfo: CheckpointInfo{
			ID:           tag,
			CreatedAt:    cm.now().UTC(),
			Description:  description,
			Transactions: len(state.Transactions),
			Size:         len(payload),
			IsAuto:       auto,
		},
		State: payload,
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to encode checkpoint: %w", err)
	}
	if err := cm.backend.Put(ctx, key, data); err != nil {
		return nil, fmt.Errorf("failed to save checkpoint: %w", err)
	}

	cm.logger.Info("Created checkpoint", "id", tag, "transactions", doc.Transactions)
	info := doc.CheckpointInfo
	return &info, nil
}

// List returns all checkpoints, newest first.
func (cm *CheckpointManager) List(ctx context.Context) ([]CheckpointInfo, error) {
	keys, err := cm.backend.Keys(ctx, checkpointPrefix)
	if err != nil {
		return nil, fmt.Errorf("failed to list checkpoints: %w", err)
	}

	infos := make([]CheckpointInfo, 0, len(keys))
	for _, key := range keys {
		doc, err := cm.load(ctx, strings.TrimPrefix(key, checkpointPrefix))
		if err != nil {
			cm.logger.Warn("Skipping unreadable checkpoint", "key", key, "error", err)
			continue
		}
		infos = append(infos, doc.CheckpointInfo)
	}

	sort.SliceStable(infos, func(i, j int) bool {
		return infos[i].CreatedAt.After(infos[j].CreatedAt)
	})
	return infos, nil
}

// Restore makes the checkpointed state the current state.
func (cm *CheckpointManager) Restore(ctx context.Context, id string) error {
	doc, err := cm.load(ctx, id)
	if err != nil {
		return err
	}

	if _, err := DecodeState(doc.State); err != nil {
		return fmt.Errorf("%w: %w", ErrCheckpointCorrupted, err)
	}

	if err := cm.backend.Put(ctx, StateKey, doc.State); err != nil {
		return common.NewStorageError("restore", err)
	}

	cm.logger.Info("Restored checkpoint", "id", id)
	return nil
}

// Delete removes a checkpoint.
func (cm *CheckpointManager) Delete(ctx context.Context, id string) error {
	if _, err := cm.load(ctx, id); err != nil {
		return err
	}
	if err := cm.backend.Delete(ctx, checkpointPrefix+id); err != nil {
		return fmt.Errorf("failed to delete checkpoint: %w", err)
	}
	return nil
}

// AutoCheckpoint saves the current state before a destructive operation
// and prunes older automatic checkpoints. It is a no-op when nothing is
// stored yet.
func (cm *CheckpointManager) AutoCheckpoint(ctx context.Context, prefix string) (*CheckpointInfo, error) {
	tag := fmt.Sprintf("auto-%s-%s", prefix, cm.now().Format("2006-01-02-150405"))
	description := fmt.Sprintf("Automatic checkpoint before %s", prefix)

	info, err := cm.create(ctx, tag, description, true)
	if errors.Is(err, ErrNothingToCheckpoint) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create auto-checkpoint: %w", err)
	}

	if err := cm.cleanupOldAutoCheckpoints(ctx); err != nil {
		cm.logger.Warn("Failed to clean up old auto-checkpoints", "error", err)
	}

	return info, nil
}

func (cm *CheckpointManager) load(ctx context.Context, id string) (*checkpointDocument, error) {
	if err := validateKey(id); err != nil {
		return nil, err
	}

	data, err := cm.backend.Get(ctx, checkpointPrefix+id)
	if errors.Is(err, common.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrCheckpointNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read checkpoint: %w", err)
	}

	var doc checkpointDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCheckpointCorrupted, err)
	}
	return &doc, nil
}

func (cm *CheckpointManager) cleanupOldAutoCheckpoints(ctx context.Context) error {
	checkpoints, err := cm.List(ctx)
	if err != nil {
		return err
	}

	autoCount := 0
	for _, cp := range checkpoints {
		if !cp.IsAuto {
			continue
		}
		autoCount++
		if autoCount > maxAutoCheckpoints {
			if err := cm.Delete(ctx, cp.ID); err != nil {
				cm.logger.Debug("Failed to delete old auto-checkpoint", "error", err, "checkpoint", cp.ID)
			}
		}
	}

	return nil
}
