package tui

import (
	"log/slog"

	"github.com/Veraticus/finance-pro/internal/cli"
	"github.com/Veraticus/finance-pro/internal/locale"
)

// Config holds TUI configuration.
type Config struct {
	Renderer *cli.Renderer
	Host     *Host
	Logger   *slog.Logger
	Width    int
	Height   int
	ShowHelp bool
}

// Option is a functional option for configuring the TUI.
type Option func(*Config)

// defaultConfig returns the default configuration.
func defaultConfig() Config {
	return Config{
		Width:    80,
		Height:   24,
		ShowHelp: true,
		Logger:   slog.Default(),
	}
}

// WithRenderer sets the renderer used for amounts, dates and labels.
func WithRenderer(r *cli.Renderer) Option {
	return func(c *Config) {
		c.Renderer = r
	}
}

// WithLocale creates a renderer for the locale and currency suffix.
func WithLocale(l locale.Locale, currency string) Option {
	return func(c *Config) {
		c.Renderer = cli.NewRenderer(l, currency)
	}
}

// WithHost sets the host that the controller was created with.
func WithHost(h *Host) Option {
	return func(c *Config) {
		c.Host = h
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Config) {
		c.Logger = l
	}
}

// WithSize sets the initial terminal size.
func WithSize(width, height int) Option {
	return func(c *Config) {
		c.Width = width
		c.Height = height
	}
}

// WithHelp toggles the key help footer.
func WithHelp(show bool) Option {
	return func(c *Config) {
		c.ShowHelp = show
	}
}
