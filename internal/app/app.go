package app

import (
	"io"
	"log/slog"

	"github.com/specialistvlad/hpcgrid/internal/config"
	"github.com/specialistvlad/hpcgrid/internal/taskdata"
)

// App encapsulates the application's dependencies and configuration.
type App struct {
	outW   io.Writer
	logger *slog.Logger
	cfg    *Config
	jobs   config.Loader
	tasks  taskdata.Loader
}

// NewApp builds an App that prints results to outW and logs to logW. jobs
// reads job definition files and tasks reads task payloads.
func NewApp(outW, logW io.Writer, cfg *Config, jobs config.Loader, tasks taskdata.Loader) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	logger.Debug("Logger configured successfully.", "command", cfg.Command)

	return &App{
		outW:   outW,
		logger: logger,
		cfg:    cfg,
		jobs:   jobs,
		tasks:  tasks,
	}
}
