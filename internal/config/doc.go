// Package config defines the format-agnostic description of a grid-search
// array job, along with the Loader interface for reading such descriptions
// from files.
//
// The `config.Job` is the single source of truth for the `arrayjob` package.
// Concrete implementations of the Loader interface, such as for HCL, are
// provided in separate packages.
package config
