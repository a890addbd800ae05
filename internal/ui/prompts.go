// Package ui holds the logger setup and interactive prompts shared by the CLI.
package ui

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/mattn/go-isatty"
)

// ErrNotInteractive is returned when a prompt needs a terminal and stdin is not one
var ErrNotInteractive = errors.New("stdin is not a terminal; pass --yes to skip confirmation")

// Interactive reports whether stdin and stdout are terminals.
func Interactive() bool {
	in, out := os.Stdin.Fd(), os.Stdout.Fd()
	return (isatty.IsTerminal(in) || isatty.IsCygwinTerminal(in)) &&
		(isatty.IsTerminal(out) || isatty.IsCygwinTerminal(out))
}

// ConfirmRename asks before applying count renames in dir.
// Aborting the form (esc or ctrl+c) counts as a "no".
func ConfirmRename(dir string, count int) (bool, error) {
	if !Interactive() {
		return false, ErrNotInteractive
	}

	confirmed := false
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Apply %d renames?", count)).
				Description(fmt.Sprintf("\nIn %s", dir)).
				Affirmative("Rename").
				Negative("Cancel").
				Value(&confirmed),
		),
	).WithTheme(huh.ThemeCatppuccin()).Run()

	if err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			if logger != nil {
				logger.Info("Cancelled")
			}
			return false, nil
		}
		return false, err
	}
	return confirmed, nil
}
