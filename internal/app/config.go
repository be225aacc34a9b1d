package app

import (
	"errors"
	"fmt"
)

// Commands understood by Run.
const (
	CommandGenerate      = "generate"
	CommandExtract       = "extract"
	CommandPlotGrid      = "plot-grid"
	CommandPlotAggregate = "plot-aggregate"
	CommandHistory       = "history"
)

// Config holds everything an App needs for one invocation. Only the fields of
// the selected Command are read.
type Config struct {
	Command   string
	LogFormat string
	LogLevel  string

	// generate, history
	ConfigPath string
	LedgerPath string

	// extract
	CSVPath   string
	Line      int
	Separator rune

	// plot-grid, plot-aggregate
	Root   string
	Out    string
	Key    string
	Title  string
	Rows   int
	Cols   int
	Strict bool
}

// NewConfig validates cfg for its command.
func NewConfig(cfg Config) (*Config, error) {
	switch cfg.Command {
	case CommandGenerate:
		if cfg.ConfigPath == "" {
			return nil, errors.New("generate requires -config")
		}
	case CommandExtract:
		if cfg.CSVPath == "" {
			return nil, errors.New("extract requires -csv")
		}
		if cfg.Line < 1 {
			return nil, fmt.Errorf("extract requires -line >= 1, got %d", cfg.Line)
		}
	case CommandPlotGrid, CommandPlotAggregate:
		if cfg.Root == "" || cfg.Out == "" {
			return nil, fmt.Errorf("%s requires -root and -out", cfg.Command)
		}
		if cfg.Rows < 0 || cfg.Cols < 0 {
			return nil, errors.New("-rows and -cols must not be negative")
		}
	case CommandHistory:
		if cfg.LedgerPath == "" {
			return nil, errors.New("history requires -ledger")
		}
	case "":
		return nil, errors.New("no command given")
	default:
		return nil, fmt.Errorf("unknown command %q", cfg.Command)
	}
	return &cfg, nil
}
