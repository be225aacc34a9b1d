// Package jobscript renders the Grid Engine submission script for a
// grid-search array job.
//
// The following fields are available to the template:
//
//	TMem          memory to reserve, in GB
//	HRT           wall-clock limit, in seconds
//	JobName       scheduler job name
//	TaskCount     number of array tasks (rows in the parameter table)
//	WorkingDir    directory the job runs from
//	JobOutputDir  root of all job outputs
//	ScriptName    stem of the task program, names the per-job output dir
//	SourcePath    environment file sourced before the run, optional
//	Program       interpreter or program used to run ScriptPath
//	ScriptPath    task program
//	TablePath     parameter table read by each task
//	GPU           reserve a GPU; replaces the h_vmem limit
//	HVMem         virtual memory limit in GB, only without GPU
//	EmailFlags    -m flags, omitted when empty
//	EmailAddress  -M address, omitted when empty
package jobscript

import (
	"errors"
	"fmt"
	"strings"
	"text/template"

	"github.com/specialistvlad/hpcgrid/internal/discovery"
)

// Spec holds the values the template is filled with.
type Spec struct {
	TMem         int
	HRT          int
	JobName      string
	TaskCount    int
	WorkingDir   string
	JobOutputDir string
	ScriptName   string
	SourcePath   string
	Program      string
	ScriptPath   string
	TablePath    string
	GPU          bool
	HVMem        int
	EmailFlags   string
	EmailAddress string
}

const arrayJobTemplate = `#!/bin/bash
# This is an autogenerated submission script from hpcgrid.
# Please check the flags below before submitting.
#$ -l tmem={{.TMem}}G
#$ -l h_rt={{.HRT}}
{{- if .GPU}}
#$ -l gpu=true
{{- else}}
#$ -l h_vmem={{.HVMem}}G
{{- end}}
#$ -j y
#$ -S /bin/bash
#$ -N {{.JobName}}
#$ -t 1-{{.TaskCount}}
#$ -wd {{.WorkingDir}}
{{- if .EmailFlags}}
#$ -m {{.EmailFlags}}
{{- end}}
{{- if .EmailAddress}}
#$ -M {{.EmailAddress}}
{{- end}}

CURRENT_JOB_OUTPUT_DIR={{.JobOutputDir}}/{{.ScriptName}}
RUN_OUTPUT_DIR=${CURRENT_JOB_OUTPUT_DIR}/{{.TaskDirMarker}}${SGE_TASK_ID}
mkdir -p ${RUN_OUTPUT_DIR}
{{- if .SourcePath}}

# Please export necessary libraries
source {{.SourcePath}}
{{- end}}

hostname
date
{{.Program}} {{.ScriptPath}} --csv_path {{.TablePath}} --extract_line ${SGE_TASK_ID} --output_dir ${RUN_OUTPUT_DIR}
date
`

var tmpl = template.Must(template.New("array-job").Option("missingkey=error").Parse(arrayJobTemplate))

// TaskDirMarker is the prefix of the per-task output directories the script
// creates; it matches what discovery looks for when reading results back.
func (s Spec) TaskDirMarker() string {
	return discovery.Marker
}

// Validate checks the fields the scheduler would otherwise reject at submit
// time.
func (s Spec) Validate() error {
	var errs []error
	if s.TaskCount < 1 {
		errs = append(errs, fmt.Errorf("task count must be at least 1, got %d", s.TaskCount))
	}
	if s.TMem < 1 {
		errs = append(errs, fmt.Errorf("tmem must be at least 1 GB, got %d", s.TMem))
	}
	if s.HRT < 1 {
		errs = append(errs, fmt.Errorf("h_rt must be at least 1 second, got %d", s.HRT))
	}
	if !s.GPU && s.HVMem < 1 {
		errs = append(errs, fmt.Errorf("h_vmem must be at least 1 GB when no GPU is requested, got %d", s.HVMem))
	}
	for name, v := range map[string]string{
		"job name":    s.JobName,
		"working dir": s.WorkingDir,
		"output dir":  s.JobOutputDir,
		"script name": s.ScriptName,
		"program":     s.Program,
		"script path": s.ScriptPath,
		"table path":  s.TablePath,
	} {
		if strings.TrimSpace(v) == "" {
			errs = append(errs, fmt.Errorf("%s must not be empty", name))
		}
	}
	return errors.Join(errs...)
}

// Render validates s and fills the template.
func Render(s Spec) (string, error) {
	if err := s.Validate(); err != nil {
		return "", fmt.Errorf("invalid job script spec: %w", err)
	}
	var b strings.Builder
	if err := tmpl.Execute(&b, s); err != nil {
		return "", fmt.Errorf("failed to render job script: %w", err)
	}
	return b.String(), nil
}
