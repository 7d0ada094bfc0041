package app

import "github.com/Veraticus/finance-pro/internal/service"

// NopHost confirms everything and ignores haptics. It is used when the
// controller runs without an interactive host.
type NopHost struct{}

// Confirm always agrees.
func (NopHost) Confirm(string) bool { return true }

// Vibrate does nothing.
func (NopHost) Vibrate(service.HapticIntensity) {}
