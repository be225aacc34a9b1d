// Package taskdata reads and writes the two payload files every array-job task
// leaves in its output directory: the experiment data and the parameters the
// task ran with. Both are stored as MessagePack.
package taskdata

//go:generate mockgen -destination=mocks/loader.go -package=mocks github.com/specialistvlad/hpcgrid/internal/taskdata Loader

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/specialistvlad/hpcgrid/internal/ctxlog"
	"github.com/specialistvlad/hpcgrid/internal/discovery"
	"github.com/vmihailenco/msgpack/v5"
)

// File names inside a task directory.
const (
	DataFile   = "experiment_data.msgpack"
	ParamsFile = "parameters.msgpack"
)

// Params is the parameter mapping a task ran with.
type Params map[string]any

// Record is the raw content of one task directory.
type Record struct {
	Data   any
	Params Params
}

// Loader loads the Record of a task directory.
type Loader interface {
	Load(ctx context.Context, dir discovery.TaskDirectory) (Record, error)
}

// MsgpackLoader is the Loader for directories written by Save.
type MsgpackLoader struct{}

// NewMsgpackLoader creates a new MsgpackLoader.
func NewMsgpackLoader() *MsgpackLoader {
	return &MsgpackLoader{}
}

// Load decodes both payload files of dir.
func (l *MsgpackLoader) Load(ctx context.Context, dir discovery.TaskDirectory) (Record, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Loading task payloads.", "task", dir.Index, "path", dir.Path)

	var rec Record
	if err := decodeFile(filepath.Join(dir.Path, DataFile), &rec.Data); err != nil {
		return Record{}, err
	}
	if err := decodeFile(filepath.Join(dir.Path, ParamsFile), &rec.Params); err != nil {
		return Record{}, err
	}
	return rec, nil
}

func decodeFile(path string, v any) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open task payload %s: %w", path, err)
	}
	defer f.Close()

	dec := msgpack.NewDecoder(bufio.NewReader(f))
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("failed to decode task payload %s: %w", path, err)
	}
	return nil
}

// Save writes data and params into dir, creating it if needed. Task programs
// written in Go call this at the end of a run.
func Save(dir string, data any, params Params) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create task directory %s: %w", dir, err)
	}
	if err := encodeFile(filepath.Join(dir, DataFile), data); err != nil {
		return err
	}
	return encodeFile(filepath.Join(dir, ParamsFile), params)
}

func encodeFile(path string, v any) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create task payload %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close task payload %s: %w", path, cerr)
		}
	}()

	w := bufio.NewWriter(f)
	enc := msgpack.NewEncoder(w)
	enc.SetSortMapKeys(true)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode task payload %s: %w", path, err)
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to write task payload %s: %w", path, err)
	}
	return nil
}
