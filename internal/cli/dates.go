package cli

import (
	"fmt"
	"os"

	"github.com/mydehq/vidstamp"
	"github.com/spf13/cobra"
)

var datesCmd = &cobra.Command{
	Use:   "dates <dir>",
	Short: "Print the date found in every description",
	Long:  "Reads each .txt and .description file in the directory and prints the first date it contains, without renaming anything.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runDates(cmd, args[0])
	},
}

func init() {
	RootCmd.AddCommand(datesCmd)
}

func runDates(cmd *cobra.Command, path string) {
	absPath := resolveDir(path)
	cfg := loadConfig(cmd, absPath)

	reports, err := vidstamp.Dates(cmd.Context(), absPath, vidstamp.WithConfig(cfg))
	if err != nil {
		logger.Error(fmt.Sprintf("Failed to read dates: %v", err))
		os.Exit(1)
	}

	if len(reports) == 0 {
		fmt.Printf("No descriptions found in: %s\n", StylePath.Render(absPath))
		return
	}

	fmt.Printf("%s in: %s\n", StyleHeader.Render("Dates"), StylePath.Render(absPath))
	for _, r := range reports {
		switch {
		case r.Err != nil:
			fmt.Printf(" %s %s %s\n", StyleDim.Render("-"), r.File, StyleError.Render(r.Err.Error()))
		case r.Found:
			fmt.Printf(" %s %s %s\n", StyleDim.Render("-"), StylePattern.Render(r.Date), r.File)
		default:
			fmt.Printf(" %s %s %s\n", StyleDim.Render("-"), StyleDim.Render("----------"), StyleDim.Render(r.File))
		}
	}
}
