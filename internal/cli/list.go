package cli

import (
	"fmt"
	"os"

	"github.com/mydehq/vidstamp"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list <dir>",
	Short: "List videos, sidecars and thumbnails in a directory",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runList(cmd, args[0])
	},
}

func init() {
	RootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, path string) {
	absPath := resolveDir(path)
	cfg := loadConfig(cmd, absPath)

	l, err := vidstamp.List(absPath, vidstamp.WithConfig(cfg))
	if err != nil {
		logger.Error(fmt.Sprintf("Failed to list directory: %v", err))
		os.Exit(1)
	}
	if l.TotalFiles == 0 {
		fmt.Printf("No files found in: %s\n", StylePath.Render(absPath))
		return
	}

	section := func(title string, names []string) {
		fmt.Printf("%s (%d)\n", StyleHeader.Render(title), len(names))
		for _, n := range names {
			fmt.Printf(" %s %s\n", StyleDim.Render("-"), n)
		}
	}
	fmt.Printf("%s: %s\n\n", StyleCommand.Render("Directory"), StylePath.Render(absPath))
	section("Videos", l.Videos)
	section("Sidecars", l.Sidecars)
	section("Thumbnails", l.Thumbnails)
	fmt.Printf("\n%s\n", StyleDim.Render(fmt.Sprintf("%d files total", l.TotalFiles)))
}
