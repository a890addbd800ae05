package renamer

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/mydehq/vidstamp/internal/scanner"
	"github.com/mydehq/vidstamp/internal/types"
)

// NormalizeExtensions renames every description file in dir to the sidecar
// extension. A missing or unreadable directory is reported and yields no
// operations.
// The first failing rename stops the pass; earlier renames are kept.
func (r *Renamer) NormalizeExtensions(ctx context.Context, dir string) ([]types.RenameOperation, error) {
	ext := r.cfg.Ext
	names, err := scanner.ListFiles(dir)
	if err != nil {
		var nf types.ErrDirNotFound
		if errors.As(err, &nf) {
			logger.Warn("Directory does not exist", "path", dir)
			r.opts.Events.Emit(types.EventWarning, fmt.Sprintf("Missing: %s", dir))
			return nil, nil
		}
		logger.Warn("Failed to list directory", "path", dir, "err", err)
		r.opts.Events.Emit(types.EventWarning, fmt.Sprintf("Unreadable: %s (%v)", dir, err))
		return nil, nil
	}

	var ops []types.RenameOperation
	for _, name := range names {
		if !scanner.HasExt(name, ext.Description) {
			continue
		}
		if err := ctx.Err(); err != nil {
			return ops, err
		}

		op := types.RenameOperation{
			Kind:       types.KindSidecar,
			SourcePath: filepath.Join(dir, name),
			TargetPath: filepath.Join(dir, scanner.TrimExt(name, ext.Description)+ext.Sidecar),
			Status:     types.StatusPending,
		}
		if r.opts.DryRun {
			ops = append(ops, op)
			continue
		}

		r.applyMember(&op)
		ops = append(ops, op)
		if op.Err != nil {
			r.opts.Events.Emit(types.EventError, fmt.Sprintf("Failed: %s: %v", name, op.Err))
			return ops, op.Err
		}
	}
	return ops, nil
}
