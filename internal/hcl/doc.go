// Package hcl provides the concrete HCL implementation of the config.Loader
// interface. It is responsible for file discovery, parsing, decoding job
// blocks and evaluating the parameter expressions into cty values.
//
// Parameter expressions are evaluated with a small function library so grids
// can be written compactly:
//
//	parameters {
//	  lr     = [for e in range(-4, 0) : pow(10, e)]
//	  layers = range(1, 4)
//	  name   = [format("run-%d", 1)]
//	}
package hcl
