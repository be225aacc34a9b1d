// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package discovery finds the per-task output directories of a finished array
// job.
//
// The generated submission script makes every task write into
// `<experiment>/n<SGE_TASK_ID>`, so an experiment root looks like:
//
//	results/train/
//	├── n1/
//	├── n2/
//	├── ...
//	└── n10/
//
// Discover lists only the immediate children of the root, keeps the ones whose
// name is exactly the marker followed by a positive integer without a leading
// zero, and orders them numerically (n2 before n10). Anything else in the root,
// such as the flat parameter table or metadata file, is ignored.
//
// An experiment root with no task directories is reported as an
// *EmptyDiscoveryError: presenting nothing is always a caller mistake.
package discovery
