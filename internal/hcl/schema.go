package hcl

import (
	"github.com/hashicorp/hcl/v2"
)

// fileRoot is the top-level structure of a job definition file.
type fileRoot struct {
	Jobs   []*jobBlock `hcl:"job,block"`
	Remain hcl.Body    `hcl:",remain"`
}

// jobBlock represents a `job "<name>" { ... }` block.
type jobBlock struct {
	Name          string          `hcl:"name,label"`
	WorkingDir    string          `hcl:"working_dir"`
	SourcePath    string          `hcl:"source_path,optional"`
	ScriptPath    string          `hcl:"script_path"`
	SubmissionDir string          `hcl:"submission_dir"`
	OutputDir     string          `hcl:"output_dir"`
	Program       string          `hcl:"program"`
	Separator     string          `hcl:"separator,optional"`
	Resources     resourcesBlock  `hcl:"resources,block"`
	Email         *emailBlock     `hcl:"email,block"`
	Parameters    parametersBlock `hcl:"parameters,block"`
}

// resourcesBlock holds the scheduler resource requests.
type resourcesBlock struct {
	TMem  int  `hcl:"tmem"`
	HVMem int  `hcl:"h_vmem,optional"`
	HRT   int  `hcl:"h_rt"`
	GPU   bool `hcl:"gpu,optional"`
}

// emailBlock holds the optional notification settings.
type emailBlock struct {
	Flags   string `hcl:"flags,optional"`
	Address string `hcl:"address,optional"`
}

// parametersBlock is kept as a raw body: its attribute names are the
// parameter names, so they cannot be known ahead of decoding.
type parametersBlock struct {
	Body hcl.Body `hcl:",remain"`
}
