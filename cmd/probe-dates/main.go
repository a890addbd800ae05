package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mydehq/vidstamp/internal/config"
	"github.com/mydehq/vidstamp/internal/matcher"
	"github.com/mydehq/vidstamp/internal/scanner"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "usage: %s <root>\n", os.Args[0])
		os.Exit(2)
	}
	root := os.Args[1]

	cfg, err := config.Load(root)
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}
	rw, err := matcher.NewRewriter(cfg.Prefix, cfg.Output)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	opts := matcher.ExtractOptions{WordDates: cfg.WordDates}

	err = filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}

		name := filepath.Base(path)
		if !scanner.HasExt(name, cfg.Ext.Sidecar) && !scanner.HasExt(name, cfg.Ext.Description) {
			return nil
		}

		d, ok, err := matcher.ExtractDateFile(path, opts)
		switch {
		case err != nil:
			fmt.Printf("File: %s\nERROR: %v\n\n", name, err)
		case !ok:
			fmt.Printf("File: %s\nDATE: none\n\n", name)
		default:
			fmt.Printf("File: %s\nDATE: %s\nNAME: %s\n\n", name, d, rw.Rewrite(d.String(), name))
		}
		return nil
	})

	if err != nil {
		fmt.Printf("Error walking path: %v\n", err)
	}
}
