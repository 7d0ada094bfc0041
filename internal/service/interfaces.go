// Package service defines the interfaces for all application services.
package service

import (
	"context"
	"time"

	"github.com/Veraticus/finance-pro/internal/model"
)

// StateStore is the persistence gateway for the application state.
type StateStore interface {
	// LoadState returns the persisted state, or false when nothing usable
	// is stored. It never reports parse errors.
	LoadState(ctx context.Context) (*model.AppState, bool)
	// SaveState overwrites the stored state. Failures are *common.StorageError.
	SaveState(ctx context.Context, state model.AppState) error
	Close() error
}

// Advisor produces natural-language commentary about transactions.
type Advisor interface {
	// Summarize fails with *common.ServiceError.
	Summarize(ctx context.Context, transactions []model.Transaction) (string, error)
}

// HapticIntensity is the strength of a host vibration.
type HapticIntensity string

// Haptic intensities understood by hosts.
const (
	HapticLight   HapticIntensity = "light"
	HapticMedium  HapticIntensity = "medium"
	HapticHeavy   HapticIntensity = "heavy"
	HapticSuccess HapticIntensity = "success"
	HapticError   HapticIntensity = "error"
)

// Confirmer asks the user a yes/no question.
type Confirmer interface {
	Confirm(message string) bool
}

// Vibrator triggers haptic feedback.
type Vibrator interface {
	Vibrate(intensity HapticIntensity)
}

// RetryOptions configures retry behavior for operations.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}
