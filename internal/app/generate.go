package app

import (
	"context"
	"fmt"

	"github.com/gookit/color"
	"github.com/specialistvlad/hpcgrid/internal/arrayjob"
	"github.com/specialistvlad/hpcgrid/internal/ctxlog"
	"github.com/specialistvlad/hpcgrid/internal/ledger"
)

// generate writes the array job files for every job in the config path and,
// when a ledger is configured, records each one.
func (a *App) generate(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)

	jobs, err := a.jobs.Load(ctx, a.cfg.ConfigPath)
	if err != nil {
		return fmt.Errorf("failed to load job definitions: %w", err)
	}
	logger.Debug("Job definitions loaded.", "count", len(jobs))

	var book *ledger.Ledger
	if a.cfg.LedgerPath != "" {
		book, err = ledger.Open(ctx, a.cfg.LedgerPath)
		if err != nil {
			return err
		}
		defer book.Close()
	}

	for _, job := range jobs {
		jobCtx, jobLogger := ctxlog.With(ctx, "job", job.Name)
		res, err := arrayjob.Generate(jobCtx, job)
		if err != nil {
			return err
		}
		fmt.Fprintf(a.outW, "%s %s: %d tasks\n", color.Green.Sprint("generated"), res.JobName, res.TaskCount)
		fmt.Fprintf(a.outW, "  submit:     %s\n", res.SubmissionPath)
		fmt.Fprintf(a.outW, "  parameters: %s\n", res.TablePath)
		fmt.Fprintf(a.outW, "  metadata:   %s\n", res.MetadataPath)

		if book == nil {
			continue
		}
		id, err := book.Record(jobCtx, ledger.Entry{
			Name:           res.JobName,
			ScriptPath:     job.ScriptPath,
			SubmissionPath: res.SubmissionPath,
			TablePath:      res.TablePath,
			TaskCount:      res.TaskCount,
		})
		if err != nil {
			return err
		}
		jobLogger.Info("Job recorded in ledger.", "id", id)
	}
	return nil
}

// history prints the ledger, newest first.
func (a *App) history(ctx context.Context) error {
	book, err := ledger.Open(ctx, a.cfg.LedgerPath)
	if err != nil {
		return err
	}
	defer book.Close()

	entries, err := book.List(ctx)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Fprintln(a.outW, color.Yellow.Sprint("no jobs recorded"))
		return nil
	}

	fmt.Fprintln(a.outW, color.Bold.Sprintf("%-5s %-20s %-6s %-20s %s", "ID", "NAME", "TASKS", "CREATED_AT", "SUBMISSION"))
	for _, e := range entries {
		fmt.Fprintf(a.outW, "%-5d %-20s %-6d %-20s %s\n",
			e.ID, e.Name, e.TaskCount, e.CreatedAt.Format("2006-01-02T15:04:05Z"), e.SubmissionPath)
	}
	return nil
}
