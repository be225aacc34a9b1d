// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package discovery

import (
	"context"
	"fmt"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"

	"github.com/specialistvlad/hpcgrid/internal/ctxlog"
	"github.com/specialistvlad/hpcgrid/internal/fsutil"
)

// Marker is the character that prefixes every task directory name.
const Marker = "n"

// taskDirPattern is anchored on both ends so names like "n1-old" or "run_n2"
// never qualify.
var taskDirPattern = regexp.MustCompile(`^` + Marker + `([1-9][0-9]*)$`)

// TaskDirectory is one task's output directory and the task index parsed from
// its name.
type TaskDirectory struct {
	Path  string
	Index int
}

// EmptyDiscoveryError is returned when an experiment root holds no task
// directories.
type EmptyDiscoveryError struct {
	Root string
}

// Error implements the error interface for EmptyDiscoveryError.
func (e *EmptyDiscoveryError) Error() string {
	return fmt.Sprintf("no task directories matching %s<k> found in %s", Marker, e.Root)
}

// ParseIndex returns the task index encoded in a directory name and whether
// the name is a task directory name at all.
func ParseIndex(name string) (int, bool) {
	m := taskDirPattern.FindStringSubmatch(name)
	if m == nil {
		return 0, false
	}
	idx, err := strconv.Atoi(m[1])
	if err != nil {
		// Only possible on overflow.
		return 0, false
	}
	return idx, true
}

// DirName is the inverse of ParseIndex.
func DirName(index int) string {
	return Marker + strconv.Itoa(index)
}

// Discover returns the task directories directly under root sorted by task
// index ascending.
func Discover(ctx context.Context, root string) ([]TaskDirectory, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Discovering task directories.", "root", root)

	names, err := fsutil.ChildDirs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to list experiment directory %s: %w", root, err)
	}

	dirs := make([]TaskDirectory, 0, len(names))
	for _, name := range names {
		idx, ok := ParseIndex(name)
		if !ok {
			logger.Debug("Skipping non-task directory.", "name", name)
			continue
		}
		dirs = append(dirs, TaskDirectory{Path: filepath.Join(root, name), Index: idx})
	}

	if len(dirs) == 0 {
		return nil, &EmptyDiscoveryError{Root: root}
	}

	sort.Slice(dirs, func(i, j int) bool { return dirs[i].Index < dirs[j].Index })

	logger.Debug("Task directories discovered.", "count", len(dirs), "first", dirs[0].Index, "last", dirs[len(dirs)-1].Index)
	return dirs, nil
}
