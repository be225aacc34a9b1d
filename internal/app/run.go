package app

import (
	"context"
	"fmt"

	"github.com/specialistvlad/hpcgrid/internal/ctxlog"
)

// Run executes the configured command.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.", "command", a.cfg.Command)

	var err error
	switch a.cfg.Command {
	case CommandGenerate:
		err = a.generate(ctx)
	case CommandExtract:
		err = a.extract(ctx)
	case CommandPlotGrid:
		err = a.plotGrid(ctx)
	case CommandPlotAggregate:
		err = a.plotAggregate(ctx)
	case CommandHistory:
		err = a.history(ctx)
	default:
		err = fmt.Errorf("unknown command %q", a.cfg.Command)
	}
	if err != nil {
		return fmt.Errorf("%s failed: %w", a.cfg.Command, err)
	}

	a.logger.Debug("App.Run method finished.")
	return nil
}
