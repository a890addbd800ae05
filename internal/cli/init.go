package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/mydehq/vidstamp"
	"github.com/spf13/cobra"
)

var flagInitForce bool

var initCmd = &cobra.Command{
	Use:   "init <dir>",
	Short: "Write a _vidstamp.yml map file with the effective settings",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		absPath := resolveDir(args[0])
		cfg := loadConfig(cmd, absPath)

		opts := []vidstamp.Option{vidstamp.WithConfig(cfg)}
		if flagInitForce {
			opts = append(opts, vidstamp.WithForce())
		}

		path, err := vidstamp.Init(cmd.Context(), absPath, opts...)
		if err != nil {
			if errors.Is(err, vidstamp.ErrMapExists) {
				logger.Error(fmt.Sprintf("%s already exists; use --force to overwrite", StylePath.Render(path)))
			} else {
				logger.Error(fmt.Sprintf("Failed to save config: %v", err))
			}
			os.Exit(1)
		}
		logger.Info(fmt.Sprintf("%s: %s", StyleHeader.Render("Created config"), StylePath.Render(path)))
	},
}

func init() {
	initCmd.Flags().BoolVarP(&flagInitForce, "force", "f", false, "Overwrite an existing map file")
	RootCmd.AddCommand(initCmd)
}
