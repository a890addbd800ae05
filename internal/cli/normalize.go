package cli

import (
	"fmt"
	"os"

	"github.com/mydehq/vidstamp"
	"github.com/spf13/cobra"
)

var flagNormalizeDryRun bool

var normalizeCmd = &cobra.Command{
	Use:   "normalize <dir>",
	Short: "Rename .description files to .txt",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		absPath := resolveDir(args[0])
		cfg := loadConfig(cmd, absPath)

		opts := []vidstamp.Option{vidstamp.WithConfig(cfg), vidstamp.WithEvents(logEvent)}
		if flagNormalizeDryRun {
			dryRunBanner()
			opts = append(opts, vidstamp.WithDryRun())
		}

		ops, err := vidstamp.Normalize(cmd.Context(), absPath, opts...)
		if err != nil {
			logger.Error(fmt.Sprintf("Normalize failed: %v", err))
			os.Exit(1)
		}
		if flagNormalizeDryRun {
			for _, op := range ops {
				logEvent(vidstamp.Event{Type: vidstamp.EventInfo, Message: fmt.Sprintf("Would rename: %s → %s", baseName(op.SourcePath), baseName(op.TargetPath))})
			}
		}
		if len(ops) == 0 {
			logger.Info(StyleDim.Render("Nothing to normalize"))
		}
	},
}

func init() {
	normalizeCmd.Flags().BoolVarP(&flagNormalizeDryRun, "dry-run", "n", false, "Show the renames without applying them")
	RootCmd.AddCommand(normalizeCmd)
}
