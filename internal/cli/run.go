package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mydehq/vidstamp"
	"github.com/mydehq/vidstamp/internal/ui"
	"github.com/spf13/cobra"
)

var (
	flagDryRun    bool
	flagYes       bool
	flagKeepGoing bool
)

// runRename previews the plan for dir, asks for confirmation and applies it.
func runRename(cmd *cobra.Command, path string) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	absPath := resolveDir(path)
	cfg := loadConfig(cmd, absPath)

	if _, err := os.Stat(absPath); err != nil {
		logger.Warn("Directory does not exist", "path", absPath)
		fmt.Printf("No files found in: %s\n", StylePath.Render(absPath))
		return
	}

	// Remember plan warnings so the apply pass does not repeat them
	seen := map[string]bool{}
	plan, err := vidstamp.Plan(ctx, absPath,
		vidstamp.WithConfig(cfg),
		vidstamp.WithEvents(func(e vidstamp.Event) {
			seen[e.Message] = true
			logEvent(e)
		}),
	)
	if err != nil {
		logger.Error(fmt.Sprintf("Failed to plan renames: %v", err))
		os.Exit(1)
	}

	if flagDryRun {
		dryRunBanner()
	}
	pending := printPlan(absPath, plan)
	if pending == 0 {
		logger.Info(StyleDim.Render("Nothing to rename"))
		return
	}
	if flagDryRun {
		return
	}

	if !flagYes {
		ok, err := ui.ConfirmRename(absPath, pending)
		if err != nil {
			logger.Error(err.Error())
			os.Exit(1)
		}
		if !ok {
			logger.Info(StyleDim.Render("No files renamed"))
			return
		}
	}

	opts := []vidstamp.Option{
		vidstamp.WithConfig(cfg),
		vidstamp.WithEvents(func(e vidstamp.Event) {
			if !seen[e.Message] {
				logEvent(e)
			}
		}),
	}
	if flagKeepGoing {
		opts = append(opts, vidstamp.WithKeepGoing())
	}

	res, err := vidstamp.Rename(ctx, absPath, opts...)
	if res != nil {
		printSummary(res)
	}
	if err != nil {
		if errors.Is(err, vidstamp.ErrHalted) {
			logger.Error("Stopped after a failed rename; rerun with --keep-going to continue past failures")
		}
		logger.Error(fmt.Sprintf("Rename failed: %v", err))
		os.Exit(1)
	}
}

// printPlan lists the planned renames and returns how many are pending.
func printPlan(dir string, res *vidstamp.Result) int {
	pending := 0
	fmt.Printf("%s in: %s\n", StyleHeader.Render("Planned renames"), StylePath.Render(dir))

	for _, op := range res.Normalized {
		if op.Status == vidstamp.StatusPending {
			pending++
		}
		fmt.Printf(" %s %s %s %s\n",
			StyleDim.Render("-"),
			StyleDim.Render(filepath.Base(op.SourcePath)),
			StyleDim.Render("→"),
			StylePattern.Render(filepath.Base(op.TargetPath)))
	}

	for _, g := range res.Groups {
		if g.Reason != "" {
			fmt.Printf(" %s %s %s\n", StyleDim.Render("-"), StyleDim.Render(g.Base), StyleDim.Render("("+g.Reason+")"))
			continue
		}
		for _, op := range g.Members() {
			if op.Status != vidstamp.StatusPending {
				continue
			}
			pending++
			fmt.Printf(" %s %s %s %s\n",
				StyleDim.Render("-"),
				StyleDim.Render(filepath.Base(op.SourcePath)),
				StyleDim.Render("→"),
				StyleCommand.Render(filepath.Base(op.TargetPath)))
		}
	}
	fmt.Println()
	return pending
}

func printSummary(res *vidstamp.Result) {
	var renamed, failed, skipped int
	count := func(s vidstamp.Status) {
		switch s {
		case vidstamp.StatusSuccess:
			renamed++
		case vidstamp.StatusFailed:
			failed++
		case vidstamp.StatusSkipped:
			skipped++
		}
	}
	for _, op := range res.Normalized {
		count(op.Status)
	}
	for _, g := range res.Groups {
		if len(g.Members()) == 0 {
			skipped++
			continue
		}
		for _, op := range g.Members() {
			count(op.Status)
		}
	}
	logger.Info(StyleHeader.Render("Done"), "renamed", renamed, "skipped", skipped, "failed", failed)
}
