// Package scanner lists a directory and sorts its files into file group members.
package scanner

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/mydehq/vidstamp/internal/types"
)

var logger = log.Default()

// SetLogger injects the application logger.
func SetLogger(l *log.Logger) {
	if l != nil {
		logger = l
	}
}

// Classified holds filenames partitioned by extension, in listing order
type Classified struct {
	Videos     []string
	Sidecars   []string
	Thumbnails []string
}

// ScanResult holds the results of directory scanning
type ScanResult struct {
	Classified
	Files      []string
	TotalFiles int
}

// ListFiles returns the names of the regular files in dir, sorted by name.
// Subdirectories are excluded. A missing directory yields types.ErrDirNotFound.
func ListFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, types.ErrDirNotFound{Path: dir}
		}
		return nil, fmt.Errorf("failed to list %s: %w", dir, err)
	}

	var names []string
	for _, e := range entries {
		if !e.Type().IsRegular() {
			// Follow symlinks so a linked file still counts
			if e.Type()&fs.ModeSymlink == 0 {
				continue
			}
			st, err := os.Stat(filepath.Join(dir, e.Name()))
			if err != nil || !st.Mode().IsRegular() {
				continue
			}
		}
		names = append(names, e.Name())
	}
	return names, nil
}

// HasExt reports whether name ends with ext, ignoring case.
func HasExt(name, ext string) bool {
	return len(name) >= len(ext) && strings.EqualFold(name[len(name)-len(ext):], ext)
}

// TrimExt removes ext from the end of name when present, ignoring case.
func TrimExt(name, ext string) string {
	if HasExt(name, ext) {
		return name[:len(name)-len(ext)]
	}
	return name
}

// Classify partitions names into videos, sidecars and thumbnails by
// case-insensitive suffix. Names matching none of them are dropped.
func Classify(names []string, ext types.ExtensionConfig) Classified {
	var c Classified
	for _, n := range names {
		switch {
		case HasExt(n, ext.Video):
			c.Videos = append(c.Videos, n)
		case HasExt(n, ext.Sidecar):
			c.Sidecars = append(c.Sidecars, n)
		case HasExt(n, ext.Thumbnail):
			c.Thumbnails = append(c.Thumbnails, n)
		}
	}
	return c
}

// Scan lists and classifies dir. Listing failures are logged and reported
// as an empty result so callers see "no files" rather than an error.
func Scan(dir string, ext types.ExtensionConfig) *ScanResult {
	names, err := ListFiles(dir)
	if err != nil {
		var nf types.ErrDirNotFound
		if errors.As(err, &nf) {
			logger.Warn("Directory does not exist", "path", dir)
		} else {
			logger.Error("Failed to list directory", "path", dir, "error", err)
		}
		return &ScanResult{}
	}

	return &ScanResult{
		Classified: Classify(names, ext),
		Files:      names,
		TotalFiles: len(names),
	}
}
