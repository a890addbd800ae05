package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mydehq/vidstamp"
	"github.com/spf13/cobra"
)

var flagUndoDryRun bool

var undoCmd = &cobra.Command{
	Use:   "undo <dir>",
	Short: "Revert the last rename run in a directory",
	Long:  "Replays the most recent run recorded in the directory journal in reverse, restoring the original names.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		absPath := resolveDir(args[0])

		opts := []vidstamp.Option{vidstamp.WithEvents(logEvent)}
		if flagUndoDryRun {
			dryRunBanner()
			opts = append(opts, vidstamp.WithDryRun())
		}

		ops, err := vidstamp.Undo(cmd.Context(), absPath, opts...)
		if errors.Is(err, vidstamp.ErrNothingToUndo) {
			logger.Info(StyleDim.Render("Nothing to undo"))
			return
		}
		if flagUndoDryRun {
			for _, op := range ops {
				if op.Status == vidstamp.StatusPending {
					logEvent(vidstamp.Event{Type: vidstamp.EventInfo, Message: fmt.Sprintf("Would restore: %s → %s", baseName(op.SourcePath), baseName(op.TargetPath))})
				}
			}
		}
		if err != nil {
			logger.Error(fmt.Sprintf("Undo failed: %v", err))
			os.Exit(1)
		}
	},
}

func init() {
	undoCmd.Flags().BoolVarP(&flagUndoDryRun, "dry-run", "n", false, "Show what would be restored")
	RootCmd.AddCommand(undoCmd)
}

func baseName(p string) string {
	return filepath.Base(p)
}
