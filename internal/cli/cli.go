package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/specialistvlad/hpcgrid/internal/app"
	"github.com/specialistvlad/hpcgrid/internal/paramgrid"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

const usage = `
hpcgrid - grid-search array jobs for SGE clusters, and plots of their results.

Usage:
  hpcgrid [global options] <command> [options]

Commands:
  generate        Write parameter tables and submission scripts from job files.
  extract         Print one parameter table row as JSON.
  plot-grid       Draw every task of an experiment into its own cell.
  plot-aggregate  Overlay every task of an experiment in one plot.
  history         List jobs recorded in a ledger.

Run 'hpcgrid <command> -h' for the options of a command.

Global options:
`

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	global := flag.NewFlagSet("hpcgrid", flag.ContinueOnError)
	global.SetOutput(output)
	global.Usage = func() {
		fmt.Fprint(output, usage)
		global.PrintDefaults()
	}

	logFormatFlag := global.String("log-format", "json", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := global.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := global.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	if global.NArg() == 0 {
		slog.Debug("No command provided, printing usage and exiting.")
		global.Usage()
		return nil, true, nil
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}
	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}

	cfg := app.Config{
		Command:   global.Arg(0),
		LogFormat: logFormat,
		LogLevel:  logLevel,
	}
	cmd, err := commandFlags(&cfg, output)
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	if err := cmd.parse(global.Args()[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.", "command", cfg.Command)

	config, err := app.NewConfig(cfg)
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}

// subcommand is a flag set plus whatever has to happen after it parsed.
type subcommand struct {
	fs    *flag.FlagSet
	after func() error
}

func (s subcommand) parse(args []string) error {
	if err := s.fs.Parse(args); err != nil {
		return err
	}
	if s.fs.NArg() > 0 {
		return fmt.Errorf("%s: unexpected arguments: %s", s.fs.Name(), strings.Join(s.fs.Args(), " "))
	}
	if s.after != nil {
		return s.after()
	}
	return nil
}

// commandFlags binds the flags of cfg.Command to cfg.
func commandFlags(cfg *app.Config, output io.Writer) (subcommand, error) {
	fs := flag.NewFlagSet(cfg.Command, flag.ContinueOnError)
	fs.SetOutput(output)
	cmd := subcommand{fs: fs}

	switch cfg.Command {
	case app.CommandGenerate:
		fs.StringVar(&cfg.ConfigPath, "config", "", "Path to a job .hcl file or a directory of them.")
		fs.StringVar(&cfg.LedgerPath, "ledger", "", "Optional sqlite ledger to record generated jobs in.")
	case app.CommandExtract:
		fs.StringVar(&cfg.CSVPath, "csv", "", "Path to the parameter table.")
		fs.IntVar(&cfg.Line, "line", 0, "1-based data row to print, usually $SGE_TASK_ID.")
		sep := fs.String("sep", `\t`, "Column separator of the table.")
		cmd.after = func() error {
			r, err := paramgrid.ParseSeparator(*sep)
			if err != nil {
				return err
			}
			cfg.Separator = r
			return nil
		}
	case app.CommandPlotGrid, app.CommandPlotAggregate:
		fs.StringVar(&cfg.Root, "root", "", "Experiment directory holding the task directories.")
		fs.StringVar(&cfg.Out, "out", "", "Output image; the format follows the extension (png, svg, pdf, ...).")
		fs.StringVar(&cfg.Key, "key", "", "Payload key holding the series. Empty means the payload is the series.")
		fs.StringVar(&cfg.Title, "title", "", "Figure title.")
		if cfg.Command == app.CommandPlotGrid {
			fs.IntVar(&cfg.Rows, "rows", 0, "Grid rows. 0 derives it.")
			fs.IntVar(&cfg.Cols, "cols", 0, "Grid columns. 0 derives it.")
			fs.BoolVar(&cfg.Strict, "strict", false, "Require rows*cols to equal the task count.")
		}
	case app.CommandHistory:
		fs.StringVar(&cfg.LedgerPath, "ledger", "", "Path to the sqlite ledger.")
	default:
		return subcommand{}, fmt.Errorf("unknown command %q", cfg.Command)
	}
	return cmd, nil
}
