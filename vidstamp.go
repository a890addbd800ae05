// Package vidstamp renames downloaded game videos so the recording date
// found in their description sidecar becomes part of the filename.
//
// A file group is one video (.mp4), its description sidecar (.txt, or
// .description before normalization) and an optional thumbnail (.jpg)
// sharing a base name:
//
//	2022-2023 - Kentucky Basketball - Georgia.mp4
//	2022-2023 - Kentucky Basketball - Georgia.description   (contains 01/05/2023)
//	2022-2023 - Kentucky Basketball - Georgia.jpg
//
// becomes
//
//	UKMB 2023-01-05 - Georgia.mp4
//	UKMB 2023-01-05 - Georgia.txt
//	UKMB 2023-01-05 - Georgia.jpg
package vidstamp

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mydehq/vidstamp/internal/config"
	"github.com/mydehq/vidstamp/internal/matcher"
	"github.com/mydehq/vidstamp/internal/renamer"
	"github.com/mydehq/vidstamp/internal/scanner"
	"github.com/mydehq/vidstamp/internal/types"
)

type (
	Config          = types.Config
	Event           = types.Event
	EventType       = types.EventType
	EventHandler    = types.EventHandler
	RenameOperation = types.RenameOperation
	GroupOperation  = types.GroupOperation
	Status          = types.Status
	PairingMode     = types.PairingMode
	Result          = renamer.Result
)

const (
	EventInfo    = types.EventInfo
	EventSuccess = types.EventSuccess
	EventWarning = types.EventWarning
	EventError   = types.EventError

	StatusPending = types.StatusPending
	StatusSuccess = types.StatusSuccess
	StatusSkipped = types.StatusSkipped
	StatusFailed  = types.StatusFailed

	PairingKeyed      = types.PairingKeyed
	PairingPositional = types.PairingPositional
)

var (
	ErrHalted        = renamer.ErrHalted
	ErrNothingToUndo = renamer.ErrNothingToUndo
)

type options struct {
	dryRun    bool
	keepGoing bool
	force     bool
	events    EventHandler
	cfg       *Config
	pairing   PairingMode
	wordDates bool
}

// Option configures a run
type Option func(*options)

// WithDryRun plans every rename without touching the directory
func WithDryRun() Option {
	return func(o *options) { o.dryRun = true }
}

// WithEvents streams progress events to h
func WithEvents(h EventHandler) Option {
	return func(o *options) { o.events = h }
}

// WithConfig replaces the configuration loaded from disk
func WithConfig(cfg *Config) Option {
	return func(o *options) { o.cfg = cfg }
}

// WithPairing overrides the configured pairing mode
func WithPairing(m PairingMode) Option {
	return func(o *options) { o.pairing = m }
}

// WithKeepGoing continues with later groups after a failed rename
func WithKeepGoing() Option {
	return func(o *options) { o.keepGoing = true }
}

// WithWordDates enables month-name date parsing as a fallback
func WithWordDates() Option {
	return func(o *options) { o.wordDates = true }
}

// WithForce lets Init overwrite an existing map file
func WithForce() Option {
	return func(o *options) { o.force = true }
}

func resolve(dir string, opts []Option) (string, *options, error) {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	absPath, err := filepath.Abs(dir)
	if err != nil {
		return "", nil, fmt.Errorf("failed to resolve path: %w", err)
	}

	if o.cfg == nil {
		cfg, err := config.Load(absPath)
		if err != nil {
			return "", nil, err
		}
		o.cfg = cfg
	} else {
		o.cfg = o.cfg.Clone()
	}
	if o.pairing != "" {
		o.cfg.Pairing = o.pairing
	}
	if o.wordDates {
		o.cfg.WordDates = true
	}
	return absPath, o, nil
}

func newRenamer(o *options) (*renamer.Renamer, error) {
	return renamer.New(o.cfg, renamer.Options{
		DryRun:    o.dryRun,
		KeepGoing: o.keepGoing,
		Events:    o.events,
	})
}

// Rename normalizes description sidecars in dir and renames every file
// group whose names carry the configured prefix.
func Rename(ctx context.Context, dir string, opts ...Option) (*Result, error) {
	absPath, o, err := resolve(dir, opts)
	if err != nil {
		return nil, err
	}
	r, err := newRenamer(o)
	if err != nil {
		return nil, err
	}
	return r.Run(ctx, absPath)
}

// Plan is Rename in dry-run mode
func Plan(ctx context.Context, dir string, opts ...Option) (*Result, error) {
	return Rename(ctx, dir, append(opts, WithDryRun())...)
}

// Normalize only renames description files to the sidecar extension
func Normalize(ctx context.Context, dir string, opts ...Option) ([]RenameOperation, error) {
	absPath, o, err := resolve(dir, opts)
	if err != nil {
		return nil, err
	}
	r, err := newRenamer(o)
	if err != nil {
		return nil, err
	}
	return r.NormalizeExtensions(ctx, absPath)
}

// Undo reverts the most recent run recorded in dir's journal
func Undo(ctx context.Context, dir string, opts ...Option) ([]RenameOperation, error) {
	absPath, o, err := resolve(dir, opts)
	if err != nil {
		return nil, err
	}
	return renamer.Undo(ctx, absPath, renamer.Options{DryRun: o.dryRun, Events: o.events})
}

// Listing is the classified content of a directory
type Listing = scanner.ScanResult

// List returns the regular files of dir sorted into videos, sidecars and
// thumbnails. A missing directory yields an empty listing.
func List(dir string, opts ...Option) (*Listing, error) {
	absPath, o, err := resolve(dir, opts)
	if err != nil {
		return nil, err
	}
	return scanner.Scan(absPath, o.cfg.Ext), nil
}

// DateReport is the date found in one sidecar
type DateReport struct {
	File  string
	Date  string // Empty when no date was found
	Err   error
	Found bool
}

// Dates extracts the date of every sidecar and description file in dir,
// in listing order.
func Dates(ctx context.Context, dir string, opts ...Option) ([]DateReport, error) {
	absPath, o, err := resolve(dir, opts)
	if err != nil {
		return nil, err
	}
	ext := o.cfg.Ext
	res := scanner.Scan(absPath, ext)
	eo := matcher.ExtractOptions{WordDates: o.cfg.WordDates}

	var reports []DateReport
	for _, name := range res.Files {
		if !scanner.HasExt(name, ext.Sidecar) && !scanner.HasExt(name, ext.Description) {
			continue
		}
		if err := ctx.Err(); err != nil {
			return reports, err
		}
		d, ok, err := matcher.ExtractDateFile(filepath.Join(absPath, name), eo)
		rep := DateReport{File: name, Found: ok, Err: err}
		if ok {
			rep.Date = d.String()
		}
		reports = append(reports, rep)
	}
	return reports, nil
}

// ErrMapExists is returned by Init when dir already has a map file
var ErrMapExists = errors.New("map file already exists")

// Init writes the effective configuration as dir's map file
func Init(ctx context.Context, dir string, opts ...Option) (string, error) {
	absPath, o, err := resolve(dir, opts)
	if err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := config.Validate(o.cfg); err != nil {
		return "", err
	}

	path := filepath.Join(absPath, config.GetDefaults().MapFile)
	if _, err := os.Stat(path); err == nil && !o.force {
		return path, fmt.Errorf("%w: %s", ErrMapExists, path)
	}
	if o.dryRun {
		return path, nil
	}
	return path, config.SaveToDir(absPath, o.cfg)
}
