package config

import (
	"context"

	"github.com/zclconf/go-cty/cty"
)

// Loader is the interface for a format-specific job definition loader.
type Loader interface {
	// Load reads every job definition found under the given paths. A path
	// may be a single file or a directory that is searched recursively.
	Load(ctx context.Context, paths ...string) ([]*Job, error)
}

// Job is one grid-search array job.
type Job struct {
	Name       string
	SourceFile string // file the job was defined in, for error messages

	WorkingDir    string
	SourcePath    string // optional environment file sourced by the script
	ScriptPath    string
	SubmissionDir string
	OutputDir     string
	Program       string
	Separator     rune

	Resources Resources
	Email     Email

	// Parameters maps each parameter name to its candidate values.
	Parameters map[string][]cty.Value
}

// Resources are the scheduler resource requests of every task.
type Resources struct {
	TMem  int // GB reserved
	HVMem int // GB virtual memory limit, unused when GPU is set
	HRT   int // seconds of wall-clock time
	GPU   bool
}

// Email configures scheduler notifications. Empty fields are left out of the
// submission script.
type Email struct {
	Flags   string
	Address string
}
