package hcl

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
)

// evalContext returns the context parameter expressions are evaluated in.
func evalContext() *hcl.EvalContext {
	return &hcl.EvalContext{
		Functions: map[string]function.Function{
			"concat": stdlib.ConcatFunc,
			"format": stdlib.FormatFunc,
			"log":    stdlib.LogFunc,
			"pow":    stdlib.PowFunc,
			"range":  stdlib.RangeFunc,
			"sort":   stdlib.SortFunc,
		},
	}
}
