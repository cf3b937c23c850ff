package cli

import (
	"fmt"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/pdxmph/todos-tui/internal/config"
	"github.com/pdxmph/todos-tui/internal/logging"
	"github.com/pdxmph/todos-tui/internal/storage"
	"github.com/pdxmph/todos-tui/internal/todo"
)

// session bundles everything a command needs to work on the task list
type session struct {
	cfg     *config.Config
	logger  *slog.Logger
	backend storage.Backend
	store   *todo.Store

	closeLog func() error
}

// loadConfig reads the config file and applies command-line overrides
func loadConfig(cmd *cli.Command) (*config.Config, error) {
	cfg, err := config.LoadFrom(cmd.String("config"))
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if b := cmd.String("backend"); b != "" {
		cfg.Storage.Backend = b
	}
	if p := cmd.String("path"); p != "" {
		cfg.Storage.Path = p
	}
	return cfg, nil
}

// openSession loads config, sets up logging and restores the task store
func openSession(cmd *cli.Command) (*session, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	logger, closeLog, err := logging.New(cfg.Log, cmd.Bool("debug"))
	if err != nil {
		return nil, fmt.Errorf("setup logging: %w", err)
	}

	backend, err := storage.Open(cfg.Storage.Backend, cfg.Storage.Path)
	if err != nil {
		closeLog()
		return nil, err
	}
	logger.Debug("storage opened", "backend", backend.Name(), "path", cfg.Storage.Path)

	return &session{
		cfg:      cfg,
		logger:   logger,
		backend:  backend,
		store:    todo.New(backend, todo.WithLogger(logger)),
		closeLog: closeLog,
	}, nil
}

// Close releases the backend and the log file
func (s *session) Close() error {
	if err := s.backend.Close(); err != nil {
		s.logger.Warn("closing storage", "error", err)
	}
	return s.closeLog()
}
