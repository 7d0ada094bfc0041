package tui

import (
	"sync"

	"github.com/Veraticus/finance-pro/internal/service"
)

// Host adapts the controller's confirm and haptic callbacks to the
// terminal UI. Confirmation happens in a dialog before the controller is
// called, so Confirm only reports whether the dialog was accepted.
// Vibrations are recorded and turned into a status flash.
type Host struct {
	last     service.HapticIntensity
	mu       sync.Mutex
	approved bool
}

var (
	_ service.Confirmer = (*Host)(nil)
	_ service.Vibrator  = (*Host)(nil)
)

// NewHost creates a host with nothing approved.
func NewHost() *Host {
	return &Host{}
}

// Approve lets the next Confirm call succeed.
func (h *Host) Approve() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.approved = true
}

// Revoke drops an approval that no Confirm call consumed.
func (h *Host) Revoke() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.approved = false
}

// Confirm consumes a pending approval.
func (h *Host) Confirm(string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	ok := h.approved
	h.approved = false
	return ok
}

// Vibrate records the intensity for the next status flash.
func (h *Host) Vibrate(intensity service.HapticIntensity) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.last = intensity
}

// TakeVibration returns and clears the last recorded intensity.
func (h *Host) TakeVibration() (service.HapticIntensity, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	last := h.last
	h.last = ""
	return last, last != ""
}
