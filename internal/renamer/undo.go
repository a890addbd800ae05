package renamer

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mydehq/vidstamp/internal/config"
	"github.com/mydehq/vidstamp/internal/journal"
	"github.com/mydehq/vidstamp/internal/types"
)

// ErrNothingToUndo is returned when the journal holds no runs
var ErrNothingToUndo = errors.New("nothing to undo")

// Undo reverts the most recent journaled run in dir, newest rename first.
// Entries whose renamed file is gone are skipped. The run is dropped from
// the journal only when every entry was reverted or skipped.
func Undo(ctx context.Context, dir string, opts Options) ([]types.RenameOperation, error) {
	j, err := journal.Open(filepath.Join(dir, config.GetDefaults().JournalFile))
	if err != nil {
		return nil, err
	}
	run, ok := j.Last()
	if !ok {
		return nil, ErrNothingToUndo
	}

	var ops []types.RenameOperation
	var errs []error
	for i := len(run.Entries) - 1; i >= 0; i-- {
		if err := ctx.Err(); err != nil {
			return ops, err
		}
		e := run.Entries[i]
		op := types.RenameOperation{
			SourcePath: filepath.Join(dir, e.Target),
			TargetPath: filepath.Join(dir, e.Source),
			Status:     types.StatusPending,
		}

		if _, err := os.Lstat(op.SourcePath); errors.Is(err, os.ErrNotExist) {
			op.Status = types.StatusSkipped
			opts.Events.Emit(types.EventWarning, fmt.Sprintf("Skipped: %s (no longer present)", e.Target))
			ops = append(ops, op)
			continue
		}
		if opts.DryRun {
			ops = append(ops, op)
			continue
		}

		if err := renameNoClobber(op.SourcePath, op.TargetPath); err != nil {
			op.Status = types.StatusFailed
			op.Err = err
			errs = append(errs, err)
			opts.Events.Emit(types.EventError, fmt.Sprintf("Failed: %s: %v", e.Target, err))
		} else {
			op.Status = types.StatusSuccess
			opts.Events.Emit(types.EventSuccess, fmt.Sprintf("Restored: %s → %s", e.Target, e.Source))
		}
		ops = append(ops, op)
	}

	if opts.DryRun {
		return ops, nil
	}
	if len(errs) > 0 {
		return ops, errors.Join(errs...)
	}
	return ops, j.DropLast()
}
