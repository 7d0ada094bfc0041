package storage

import (
	"encoding/json"
	"fmt"

	"github.com/Veraticus/finance-pro/internal/model"
)

// StateKey is the versioned key of the state document. An incompatible
// schema change picks a new key instead of migrating.
const StateKey = "byn_finance_state_v2"

// EncodeState serializes state. Empty collections are written as [].
func EncodeState(state model.AppState) ([]byte, error) {
	normalized := state.Clone()
	if !normalized.ActiveTab.IsValid() {
		normalized.ActiveTab = model.TabDashboard
	}

	payload, err := json.Marshal(normalized)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal state: %w", err)
	}
	return payload, nil
}

// DecodeState parses a state document and rejects content that the
// rest of the application cannot represent.
func DecodeState(payload []byte) (*model.AppState, error) {
	if len(payload) == 0 {
		return nil, fmt.Errorf("%w: empty payload", ErrCorruptState)
	}

	var state model.AppState
	if err := json.Unmarshal(payload, &state); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptState, err)
	}

	if err := validateState(&state); err != nil {
		return nil, err
	}

	normalized := state.Clone()
	return &normalized, nil
}
