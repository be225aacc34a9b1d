package app

import (
	"context"
	"fmt"

	"github.com/specialistvlad/hpcgrid/internal/ctxlog"
	"github.com/specialistvlad/hpcgrid/internal/paramgrid"
)

// extract prints one row of a parameter table as JSON. Task programs call
// this with their array task id.
func (a *App) extract(ctx context.Context) error {
	sep := a.cfg.Separator
	if sep == 0 {
		sep = paramgrid.DefaultSeparator
	}

	row, err := paramgrid.ExtractRow(a.cfg.CSVPath, a.cfg.Line, sep)
	if err != nil {
		return err
	}
	raw, err := paramgrid.RowJSON(row)
	if err != nil {
		return err
	}
	ctxlog.FromContext(ctx).Debug("Parameter row extracted.", "path", a.cfg.CSVPath, "line", a.cfg.Line)

	_, err = fmt.Fprintln(a.outW, string(raw))
	return err
}
