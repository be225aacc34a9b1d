package hcl

import (
	"context"
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/specialistvlad/hpcgrid/internal/config"
	"github.com/specialistvlad/hpcgrid/internal/ctxlog"
	"github.com/specialistvlad/hpcgrid/internal/fsutil"
)

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new HCL configuration loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load parses every .hcl file under paths and translates each job block into
// a config.Job. Job names must be unique across all files.
func (l *Loader) Load(ctx context.Context, paths ...string) ([]*config.Job, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path_count", len(paths))

	files, err := l.findAllHCLFiles(paths)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no .hcl job files found in %v", paths)
	}
	logger.Debug("Discovered HCL files.", "count", len(files))

	parser := hclparse.NewParser()
	var jobs []*config.Job
	seen := make(map[string]string)

	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", file, diags)
		}

		var root fileRoot
		diags = gohcl.DecodeBody(hclFile.Body, nil, &root)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode HCL file %s: %w", file, diags)
		}

		for _, block := range root.Jobs {
			if prev, dup := seen[block.Name]; dup {
				return nil, fmt.Errorf("job %q in %s is already defined in %s", block.Name, file, prev)
			}
			seen[block.Name] = file

			job, err := l.translateJob(block, file)
			if err != nil {
				return nil, err
			}
			jobs = append(jobs, job)
		}
	}

	if len(jobs) == 0 {
		return nil, fmt.Errorf("no job blocks found in %v", paths)
	}
	logger.Debug("HCL loading complete.", "jobs", len(jobs))
	return jobs, nil
}

// findAllHCLFiles expands every path into the .hcl files it names or contains.
func (l *Loader) findAllHCLFiles(paths []string) ([]string, error) {
	var allFiles []string
	seen := make(map[string]struct{})

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("error accessing path %s: %w", path, err)
		}

		var found []string
		if info.IsDir() {
			found, err = fsutil.FindFilesByExtension(path, ".hcl")
			if err != nil {
				return nil, fmt.Errorf("failed to search %s for .hcl files: %w", path, err)
			}
		} else {
			found = []string{path}
		}

		for _, f := range found {
			if _, ok := seen[f]; !ok {
				seen[f] = struct{}{}
				allFiles = append(allFiles, f)
			}
		}
	}
	return allFiles, nil
}
