package hcl

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/hpcgrid/internal/config"
	"github.com/specialistvlad/hpcgrid/internal/paramgrid"
	"github.com/zclconf/go-cty/cty"
)

// translateJob converts the HCL-specific job schema into the agnostic model.
// Relative paths are resolved against the directory of the defining file.
func (l *Loader) translateJob(b *jobBlock, file string) (*config.Job, error) {
	base := filepath.Dir(file)

	sep, err := paramgrid.ParseSeparator(b.Separator)
	if err != nil {
		return nil, fmt.Errorf("job %q in %s: %w", b.Name, file, err)
	}

	params, err := l.evalParameters(b.Parameters.Body)
	if err != nil {
		return nil, fmt.Errorf("job %q in %s: %w", b.Name, file, err)
	}

	job := &config.Job{
		Name:          b.Name,
		SourceFile:    file,
		WorkingDir:    resolve(base, b.WorkingDir),
		SourcePath:    resolve(base, b.SourcePath),
		ScriptPath:    resolve(base, b.ScriptPath),
		SubmissionDir: resolve(base, b.SubmissionDir),
		OutputDir:     resolve(base, b.OutputDir),
		Program:       b.Program,
		Separator:     sep,
		Resources: config.Resources{
			TMem:  b.Resources.TMem,
			HVMem: b.Resources.HVMem,
			HRT:   b.Resources.HRT,
			GPU:   b.Resources.GPU,
		},
		Parameters: params,
	}
	if b.Email != nil {
		job.Email = config.Email{Flags: b.Email.Flags, Address: b.Email.Address}
	}
	return job, nil
}

// evalParameters evaluates every attribute of the parameters block into its
// list of candidate values.
func (l *Loader) evalParameters(body hcl.Body) (map[string][]cty.Value, error) {
	attrs, diags := body.JustAttributes()
	if diags.HasErrors() {
		return nil, fmt.Errorf("invalid parameters block: %w", diags)
	}
	if len(attrs) == 0 {
		return nil, fmt.Errorf("parameters block must define at least one parameter")
	}

	names := make([]string, 0, len(attrs))
	for name := range attrs {
		names = append(names, name)
	}
	sort.Strings(names)

	ectx := evalContext()
	params := make(map[string][]cty.Value, len(attrs))
	for _, name := range names {
		attr := attrs[name]
		val, diags := attr.Expr.Value(ectx)
		if diags.HasErrors() {
			return nil, fmt.Errorf("parameter %q: %w", name, diags)
		}
		values, err := candidateValues(val)
		if err != nil {
			return nil, fmt.Errorf("parameter %q at %s: %w", name, attr.Range, err)
		}
		params[name] = values
	}
	return params, nil
}

// candidateValues flattens a list, tuple or set of primitive values.
func candidateValues(val cty.Value) ([]cty.Value, error) {
	ty := val.Type()
	if val.IsNull() || !(ty.IsListType() || ty.IsTupleType() || ty.IsSetType()) {
		return nil, fmt.Errorf("must be a list of values, got %s", ty.FriendlyName())
	}
	if val.LengthInt() == 0 {
		return nil, fmt.Errorf("must have at least one value")
	}

	values := make([]cty.Value, 0, val.LengthInt())
	for it := val.ElementIterator(); it.Next(); {
		_, ev := it.Element()
		if ev.IsNull() || !ev.Type().IsPrimitiveType() {
			return nil, fmt.Errorf("values must be numbers, bools or strings, got %s", ev.Type().FriendlyName())
		}
		values = append(values, ev)
	}
	return values, nil
}

func resolve(base, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(base, p)
}
