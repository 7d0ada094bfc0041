package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Recorder captures every message and rendered frame for debugging.
type Recorder struct {
	logFile  *os.File
	frameDir string
	frameNum int
	enabled  bool
}

// NewRecorder creates a recorder writing under dir. An empty dir uses a
// fresh directory in the system temp dir. A disabled recorder does nothing.
func NewRecorder(enabled bool, dir string) *Recorder {
	if !enabled {
		return &Recorder{enabled: false}
	}

	if dir == "" {
		dir = filepath.Join(os.TempDir(), fmt.Sprintf("finpro-tui-%d", time.Now().Unix()))
	}
	if err := os.MkdirAll(dir, 0750); err != nil {
		return &Recorder{enabled: false}
	}

	logPath := filepath.Join(dir, "tui.log")
	logFile, err := os.Create(filepath.Clean(logPath)) // #nosec G304 -- safe constructed path
	if err != nil {
		return &Recorder{enabled: false}
	}

	r := &Recorder{
		enabled:  true,
		logFile:  logFile,
		frameDir: dir,
	}

	r.Log("TUI Recorder started at %s", dir)
	return r
}

// Dir returns the recording directory, or "" when disabled.
func (r *Recorder) Dir() string {
	if !r.enabled {
		return ""
	}
	return r.frameDir
}

// RecordState captures the model after it handled msg.
func (r *Recorder) RecordState(m Model, msg tea.Msg) {
	if !r.enabled {
		return
	}

	r.frameNum++

	r.Log("\n=== Frame %d ===", r.frameNum)
	r.Log("Time: %s", time.Now().Format("15:04:05.000"))
	r.Log("Message Type: %T", msg)
	r.Log("Tab: %s", m.ctrl.ActiveTab())
	r.Log("Adding: %v", m.form != nil)
	r.Log("Pending delete: %q", m.pendingID)
	r.Log("Transactions: %d", len(m.ctrl.Transactions()))

	view := m.View()
	framePath := filepath.Join(r.frameDir, fmt.Sprintf("frame-%04d.txt", r.frameNum))
	if err := os.WriteFile(framePath, []byte(view), 0600); err != nil {
		r.Log("Error saving frame: %v", err)
	}
}

// Log writes to the log file.
func (r *Recorder) Log(format string, args ...any) {
	if !r.enabled || r.logFile == nil {
		return
	}

	if _, err := fmt.Fprintf(r.logFile, format+"\n", args...); err != nil {
		return
	}
	_ = r.logFile.Sync()
}

// Write appends p to the log file so the recorder can back a slog handler.
// A disabled recorder discards everything.
func (r *Recorder) Write(p []byte) (int, error) {
	if !r.enabled || r.logFile == nil {
		return len(p), nil
	}
	return r.logFile.Write(p)
}

// Frames returns the number of recorded frames.
func (r *Recorder) Frames() int {
	return r.frameNum
}

// Close closes the recorder.
func (r *Recorder) Close() {
	if r.logFile != nil {
		r.Log("Recording complete. %d frames captured.", r.frameNum)
		_ = r.logFile.Close()
	}
}

// recordingModel wraps a Model and records each update.
type recordingModel struct {
	recorder *Recorder
	model    Model
}

func (r recordingModel) Init() tea.Cmd {
	return r.model.Init()
}

func (r recordingModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := r.model.Update(msg)
	if m, ok := next.(Model); ok {
		r.model = m
		r.recorder.RecordState(m, msg)
	}
	return r, cmd
}

func (r recordingModel) View() string {
	return r.model.View()
}
