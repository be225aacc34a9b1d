// Package arrayjob writes everything a grid-search array job needs before it
// is submitted: the flat parameter table, the parameter metadata and the
// submission script.
package arrayjob

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/specialistvlad/hpcgrid/internal/config"
	"github.com/specialistvlad/hpcgrid/internal/ctxlog"
	"github.com/specialistvlad/hpcgrid/internal/jobscript"
	"github.com/specialistvlad/hpcgrid/internal/paramgrid"
)

// File names written into the job's output directory.
const (
	TableFile    = "parameters_flat.csv"
	MetadataFile = "parameters.json"
)

// Result lists what Generate wrote.
type Result struct {
	JobName        string
	ScriptName     string
	TaskCount      int
	JobDir         string // <output_dir>/<script_name>, parent of the task directories
	TablePath      string
	MetadataPath   string
	SubmissionPath string
}

// Generate expands the job's parameter grid and writes the table, the
// metadata and the submission script, in that order.
func Generate(ctx context.Context, job *config.Job) (*Result, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Generating array job.")

	scriptPath, err := filepath.Abs(job.ScriptPath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve script path %s: %w", job.ScriptPath, err)
	}
	scriptName := strings.TrimSuffix(filepath.Base(scriptPath), filepath.Ext(scriptPath))
	if scriptName == "" {
		return nil, fmt.Errorf("cannot derive a script name from %s", scriptPath)
	}

	outputDir, err := filepath.Abs(job.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve output dir %s: %w", job.OutputDir, err)
	}
	submissionDir, err := filepath.Abs(job.SubmissionDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve submission dir %s: %w", job.SubmissionDir, err)
	}

	grid, err := paramgrid.Expand(job.Parameters)
	if err != nil {
		return nil, fmt.Errorf("job %q: %w", job.Name, err)
	}
	logger.Debug("Parameter grid expanded.", "columns", grid.Columns, "rows", grid.Len())

	res := &Result{
		JobName:        job.Name,
		ScriptName:     scriptName,
		TaskCount:      grid.Len(),
		JobDir:         filepath.Join(outputDir, scriptName),
		SubmissionPath: filepath.Join(submissionDir, scriptName+".sh"),
	}
	res.TablePath = filepath.Join(res.JobDir, TableFile)
	res.MetadataPath = filepath.Join(res.JobDir, MetadataFile)

	sep := job.Separator
	if sep == 0 {
		sep = paramgrid.DefaultSeparator
	}

	script, err := jobscript.Render(jobscript.Spec{
		TMem:         job.Resources.TMem,
		HRT:          job.Resources.HRT,
		JobName:      scriptName,
		TaskCount:    res.TaskCount,
		WorkingDir:   job.WorkingDir,
		JobOutputDir: outputDir,
		ScriptName:   scriptName,
		SourcePath:   job.SourcePath,
		Program:      job.Program,
		ScriptPath:   scriptPath,
		TablePath:    res.TablePath,
		GPU:          job.Resources.GPU,
		HVMem:        job.Resources.HVMem,
		EmailFlags:   job.Email.Flags,
		EmailAddress: job.Email.Address,
	})
	if err != nil {
		return nil, fmt.Errorf("job %q: %w", job.Name, err)
	}

	for _, dir := range []string{res.JobDir, submissionDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	if err := paramgrid.WriteFile(res.TablePath, grid, sep); err != nil {
		return nil, err
	}
	logger.Info("Parameter table written.", "path", res.TablePath, "tasks", res.TaskCount)

	if err := paramgrid.WriteMetadata(res.MetadataPath, job.Parameters); err != nil {
		return nil, err
	}
	logger.Info("Parameter metadata written.", "path", res.MetadataPath)

	if err := os.WriteFile(res.SubmissionPath, []byte(script), 0755); err != nil {
		return nil, fmt.Errorf("failed to write submission script %s: %w", res.SubmissionPath, err)
	}
	logger.Info("Submission script written.", "path", res.SubmissionPath)

	return res, nil
}
