package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/viper"

	"github.com/Veraticus/finance-pro/internal/app"
	"github.com/Veraticus/finance-pro/internal/cli"
	"github.com/Veraticus/finance-pro/internal/common"
	"github.com/Veraticus/finance-pro/internal/config"
	"github.com/Veraticus/finance-pro/internal/llm"
	"github.com/Veraticus/finance-pro/internal/model"
	"github.com/Veraticus/finance-pro/internal/storage"
)

// dateLayout is the layout of --date flags.
const dateLayout = "2006-01-02"

// session bundles everything a command needs to work with the state.
type session struct {
	cfg      *config.Config
	gateway  *storage.Gateway
	advisor  *llm.Advisor
	ctrl     *app.Controller
	renderer *cli.Renderer
	logger   *slog.Logger
}

// loadConfig resolves the configuration from viper. --ephemeral forces
// the memory backend.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return nil, common.NewUserError("Invalid configuration", err)
	}
	if viper.GetBool("ephemeral") {
		cfg.Storage.Backend = storage.BackendMemory
	}
	return cfg, nil
}

// openGateway opens the configured storage without loading the state.
func openGateway(ctx context.Context, logger *slog.Logger) (*storage.Gateway, *config.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	cfg.Storage.Logger = logger

	gateway, err := storage.New(ctx, cfg.Storage)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open storage: %w", err)
	}
	return gateway, cfg, nil
}

// openSession opens storage, builds the advisor and loads the controller.
// A nil logger uses the default logger. opts are applied after the
// defaults so callers can swap the host capabilities.
func openSession(ctx context.Context, logger *slog.Logger, opts ...app.Option) (*session, error) {
	if logger == nil {
		logger = slog.Default()
	}

	gateway, cfg, err := openGateway(ctx, logger)
	if err != nil {
		return nil, err
	}

	advisor, err := llm.NewAdvisor(cfg.LLM, logger)
	if err != nil {
		_ = gateway.Close()
		return nil, common.NewUserError("Advice service is misconfigured", err)
	}

	base := []app.Option{
		app.WithAdvisor(advisor),
		app.WithLogger(logger),
		app.WithLocale(cfg.Locale),
	}
	ctrl := app.New(gateway, append(base, opts...)...)
	if ctrl.Load(ctx) {
		common.LogInfo("No saved data found, starting with the example entries", common.Fields{
			"backend": cfg.Storage.Backend,
			"path":    cfg.Storage.Path,
		})
	}

	return &session{
		cfg:      cfg,
		gateway:  gateway,
		advisor:  advisor,
		ctrl:     ctrl,
		renderer: cli.NewRenderer(cfg.Locale, cfg.Currency),
		logger:   logger,
	}, nil
}

// Close releases the advisor and the storage.
func (s *session) Close() {
	s.advisor.Close()
	if err := s.gateway.Close(); err != nil {
		common.LogError(err, "Failed to close storage", nil)
	}
}

// saveWarning turns a failed save into a user error. The in-memory change
// already happened, so commands report it instead of pretending success.
func (s *session) saveWarning() error {
	if warning := s.ctrl.Warning(); warning != nil {
		return common.NewUserError("Changes could not be saved", warning)
	}
	return nil
}

// parseDate parses a --date value in the local time zone. An empty value
// returns the zero time.
func parseDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	t, err := time.ParseInLocation(dateLayout, value, time.Local)
	if err != nil {
		return time.Time{}, common.NewUserError(fmt.Sprintf("Invalid date %q, expected YYYY-MM-DD", value), err)
	}
	return t, nil
}

// transactionType maps the --income flag to a transaction type.
func transactionType(income bool) model.TransactionType {
	if income {
		return model.TypeIncome
	}
	return model.TypeExpense
}
