// Package cli implements the vidstamp command line.
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/mydehq/vidstamp"
	"github.com/mydehq/vidstamp/internal/config"
	"github.com/mydehq/vidstamp/internal/renamer"
	"github.com/mydehq/vidstamp/internal/scanner"
	"github.com/mydehq/vidstamp/internal/types"
	"github.com/mydehq/vidstamp/internal/ui"
	"github.com/spf13/cobra"
)

var logger = log.Default()

var (
	flagVerbose   bool
	flagPrefix    string
	flagOutput    string
	flagPairing   string
	flagWordDates bool
)

// RootCmd renames the file groups of one directory
var RootCmd = &cobra.Command{
	Use:   "vidstamp <dir>",
	Short: "Stamp recording dates into downloaded game video filenames",
	Long: `vidstamp renames .description sidecars to .txt, reads the recording date
from each sidecar, and renames the .mp4/.txt/.jpg group of every video whose
name starts with the configured prefix.

  2022-2023 - Kentucky Basketball - Georgia.mp4  →  UKMB 2023-01-05 - Georgia.mp4`,
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupLogger()
	},
	Run: func(cmd *cobra.Command, args []string) {
		runRename(cmd, args[0])
	},
}

func init() {
	pf := RootCmd.PersistentFlags()
	pf.BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")
	pf.StringVar(&flagPrefix, "prefix", "", "Regexp matched at the start of filenames (overrides config)")
	pf.StringVar(&flagOutput, "output", "", "Replacement for the prefix; {{DATE}} is the extracted date")
	pf.StringVar(&flagPairing, "pairing", "", "Date pairing: keyed or positional")
	pf.BoolVar(&flagWordDates, "word-dates", false, "Also accept dates like \"January 5, 2023\"")

	f := RootCmd.Flags()
	f.BoolVarP(&flagDryRun, "dry-run", "n", false, "Show the planned renames without applying them")
	f.BoolVarP(&flagYes, "yes", "y", false, "Apply without asking for confirmation")
	f.BoolVar(&flagKeepGoing, "keep-going", false, "Continue with later groups after a failed rename")
}

// Execute runs the root command
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		setupLogger()
		logger.Error(err.Error())
		os.Exit(1)
	}
}

func setupLogger() {
	logger = ui.NewLogger(os.Stderr, flagVerbose)
	scanner.SetLogger(logger)
	renamer.SetLogger(logger)
}

// resolveDir returns the absolute path of dir.
func resolveDir(dir string) string {
	absPath, err := filepath.Abs(dir)
	if err != nil {
		logger.Error(fmt.Sprintf("Failed to resolve path: %v", err))
		os.Exit(1)
	}
	return absPath
}

// loadConfig merges the config files of dir with the persistent flags.
func loadConfig(cmd *cobra.Command, dir string) *types.Config {
	cfg, err := config.Load(dir)
	if err != nil {
		logger.Error(fmt.Sprintf("Failed to load config: %v", err))
		os.Exit(1)
	}

	flags := cmd.Flags()
	if flags.Changed("prefix") {
		cfg.Prefix = flagPrefix
	}
	if flags.Changed("output") {
		cfg.Output = flagOutput
	}
	if flags.Changed("pairing") {
		mode, err := types.ParsePairingMode(flagPairing)
		if err != nil {
			logger.Error(err.Error())
			os.Exit(1)
		}
		cfg.Pairing = mode
	}
	if flagWordDates {
		cfg.WordDates = true
	}
	if err := config.Validate(cfg); err != nil {
		logger.Error(fmt.Sprintf("Invalid config: %v", err))
		os.Exit(1)
	}
	return cfg
}

// logEvent prints a library event through the logger.
func logEvent(e vidstamp.Event) {
	msg := colorizeEvent(e.Message)
	switch e.Type {
	case vidstamp.EventError:
		logger.Error(msg)
	case vidstamp.EventWarning:
		logger.Warn(msg)
	default:
		logger.Info(msg)
	}
}
