// Package fsutil lists the files and directories hpcgrid reads: job
// definition files and task directories.
package fsutil

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// FindFilesByExtension walks root and returns every file whose name ends in
// extension, in lexical order. Hidden directories (".git", ".cache") are not
// entered, so job trees kept under version control load cleanly.
func FindFilesByExtension(root, extension string) ([]string, error) {
	if extension == "" {
		panic("fsutil: empty extension")
	}

	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasSuffix(d.Name(), extension) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

// ChildDirs returns the names of the immediate subdirectories of root,
// including symlinks that resolve to a directory. It does not descend further
// and ignores regular files and dangling links. Names are sorted lexically;
// callers that need another order sort again.
func ChildDirs(root string) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, e := range entries {
		isDir := e.IsDir()
		if e.Type()&fs.ModeSymlink != 0 {
			if info, err := os.Stat(filepath.Join(root, e.Name())); err == nil {
				isDir = info.IsDir()
			}
		}
		if isDir {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}
