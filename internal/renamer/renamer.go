// Package renamer normalizes description sidecars and renames file groups
// so the recording date is embedded in their names.
package renamer

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/mydehq/vidstamp/internal/config"
	"github.com/mydehq/vidstamp/internal/journal"
	"github.com/mydehq/vidstamp/internal/matcher"
	"github.com/mydehq/vidstamp/internal/scanner"
	"github.com/mydehq/vidstamp/internal/types"
)

var logger = log.Default()

// SetLogger injects the application logger.
func SetLogger(l *log.Logger) {
	if l != nil {
		logger = l
	}
}

// ErrHalted is returned when a failed group stops the batch
var ErrHalted = errors.New("batch halted after failed rename")

// Options controls how a Renamer touches the filesystem
type Options struct {
	DryRun    bool
	KeepGoing bool // Continue with later groups after a failure
	Events    types.EventHandler
}

// Result holds every operation of a run
type Result struct {
	Normalized []types.RenameOperation
	Groups     []types.GroupOperation
}

// Renamer plans and applies renames for one configuration
type Renamer struct {
	cfg      *types.Config
	pairing  types.PairingMode
	rewriter *matcher.Rewriter
	opts     Options
}

// New validates cfg and compiles its prefix pattern.
func New(cfg *types.Config, opts Options) (*Renamer, error) {
	if cfg == nil {
		d := config.GetDefaults().Config
		cfg = &d
	}
	if err := config.Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	pairing, err := types.ParsePairingMode(string(cfg.Pairing))
	if err != nil {
		return nil, err
	}
	rw, err := matcher.NewRewriter(cfg.Prefix, cfg.Output)
	if err != nil {
		return nil, err
	}
	return &Renamer{cfg: cfg.Clone(), pairing: pairing, rewriter: rw, opts: opts}, nil
}

// Run normalizes sidecar extensions, then plans and applies the group renames.
// In dry-run mode nothing on disk changes and every operation stays pending.
func (r *Renamer) Run(ctx context.Context, dir string) (*Result, error) {
	res := &Result{}

	normalized, err := r.NormalizeExtensions(ctx, dir)
	res.Normalized = normalized
	if err != nil {
		r.record(dir, res)
		return res, err
	}

	groups, err := r.Plan(ctx, dir)
	res.Groups = groups
	if err != nil || r.opts.DryRun {
		return res, err
	}

	err = r.Apply(ctx, dir, res.Groups)
	r.record(dir, res)
	return res, err
}

// sidecarSource maps a planned sidecar name to the file holding its text.
type sidecarSource map[string]string

// Plan computes the group renames for dir without changing anything.
// Description files that have not been normalized yet are planned as if
// they already carried the sidecar extension.
func (r *Renamer) Plan(ctx context.Context, dir string) ([]types.GroupOperation, error) {
	ext := r.cfg.Ext
	scan := scanner.Scan(dir, ext)

	names, sources := r.virtualNames(dir, scan.Files)
	files := scanner.Classify(names, ext)

	dates, ordered, err := r.extractDates(ctx, dir, files.Sidecars, sources)
	if err != nil {
		return nil, err
	}

	groups := make([]types.GroupOperation, 0, len(files.Videos))
	for i, video := range files.Videos {
		base := scanner.TrimExt(video, ext.Video)
		g := types.GroupOperation{Base: base}

		sidecar := findSidecar(files.Sidecars, base)
		if sidecar == "" {
			g.Reason = "no matching sidecar"
			r.opts.Events.Emit(types.EventWarning, fmt.Sprintf("Skipped: %s (%s)", video, g.Reason))
			groups = append(groups, g)
			continue
		}

		switch r.pairing {
		case types.PairingPositional:
			if i < len(ordered) {
				g.Date = ordered[i]
			} else {
				g.Reason = fmt.Sprintf("no date at position %d", i)
			}
		default:
			if d, ok := dates[sidecar]; ok {
				g.Date = d
			} else {
				g.Reason = types.ErrNoDate{Path: sidecar}.Error()
			}
		}
		if g.Date == "" {
			r.opts.Events.Emit(types.EventWarning, fmt.Sprintf("Skipped: %s (%s)", video, g.Reason))
			groups = append(groups, g)
			continue
		}

		g.Video = r.planMember(dir, types.KindVideo, video, g.Date)
		g.Sidecar = r.planMember(dir, types.KindSidecar, sidecar, g.Date)
		thumb := base + ext.Thumbnail
		if _, err := os.Stat(filepath.Join(dir, thumb)); err == nil {
			g.Thumbnail = r.planMember(dir, types.KindThumbnail, thumb, g.Date)
		}

		if g.Status() == types.StatusSkipped {
			g.Reason = "prefix not matched"
			logger.Debug("Prefix not matched", "video", video)
		}
		groups = append(groups, g)
	}
	return groups, nil
}

// Apply performs the pending renames of groups in order. Every member of a
// group is attempted; a group with a failed member halts the batch unless
// KeepGoing is set. Remaining groups are marked skipped.
func (r *Renamer) Apply(ctx context.Context, dir string, groups []types.GroupOperation) error {
	var failed []error
	for i := range groups {
		if err := ctx.Err(); err != nil {
			haltFrom(groups[i:], "cancelled")
			return err
		}

		g := &groups[i]
		for _, op := range g.Members() {
			if op.Status != types.StatusPending {
				continue
			}
			r.applyMember(op)
		}

		if err := g.Err(); err != nil {
			r.opts.Events.Emit(types.EventError, fmt.Sprintf("Failed: %s: %v", g.Base, err))
			failed = append(failed, fmt.Errorf("%s: %w", g.Base, err))
			if !r.opts.KeepGoing {
				haltFrom(groups[i+1:], "batch halted")
				return fmt.Errorf("%w: %w", ErrHalted, errors.Join(failed...))
			}
		}
	}
	return errors.Join(failed...)
}

func (r *Renamer) applyMember(op *types.RenameOperation) {
	if err := renameNoClobber(op.SourcePath, op.TargetPath); err != nil {
		op.Status = types.StatusFailed
		op.Err = err
		return
	}
	op.Status = types.StatusSuccess
	r.opts.Events.Emit(types.EventSuccess, fmt.Sprintf("Renamed: %s → %s",
		filepath.Base(op.SourcePath), filepath.Base(op.TargetPath)))
}

func (r *Renamer) planMember(dir string, kind types.FileKind, name, date string) *types.RenameOperation {
	op := &types.RenameOperation{
		Kind:       kind,
		SourcePath: filepath.Join(dir, name),
		TargetPath: filepath.Join(dir, r.rewriter.Rewrite(date, name)),
		Status:     types.StatusPending,
	}
	if !op.Changed() {
		op.Status = types.StatusSkipped
	}
	return op
}

// virtualNames replaces description files with the sidecar name they will
// get from NormalizeExtensions, so a dry run sees the same groups as a real one.
func (r *Renamer) virtualNames(dir string, files []string) ([]string, sidecarSource) {
	ext := r.cfg.Ext
	present := make(map[string]bool, len(files))
	for _, f := range files {
		present[f] = true
	}

	sources := sidecarSource{}
	names := make([]string, 0, len(files))
	for _, f := range files {
		if scanner.HasExt(f, ext.Description) {
			target := scanner.TrimExt(f, ext.Description) + ext.Sidecar
			if !present[target] {
				sources[target] = f
				names = append(names, target)
				present[target] = true
				continue
			}
		}
		names = append(names, f)
	}
	sort.Strings(names)
	return names, sources
}

// extractDates reads every sidecar in order. It returns dates keyed by
// sidecar name and the dates in sidecar order with misses omitted.
func (r *Renamer) extractDates(ctx context.Context, dir string, sidecars []string, sources sidecarSource) (map[string]string, []string, error) {
	opts := matcher.ExtractOptions{WordDates: r.cfg.WordDates}
	keyed := make(map[string]string, len(sidecars))
	var ordered []string

	for _, s := range sidecars {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}
		file := s
		if src, ok := sources[s]; ok {
			file = src
		}
		d, ok, err := matcher.ExtractDateFile(filepath.Join(dir, file), opts)
		if err != nil {
			r.opts.Events.Emit(types.EventWarning, fmt.Sprintf("Unreadable: %s (%v)", file, err))
			continue
		}
		if !ok {
			logger.Debug("No date found", "file", file)
			continue
		}
		keyed[s] = d.String()
		ordered = append(ordered, d.String())
	}
	return keyed, ordered, nil
}

// record appends the successful renames of res to the directory journal.
func (r *Renamer) record(dir string, res *Result) {
	if r.opts.DryRun || !r.cfg.JournalEnabled() {
		return
	}

	var entries []journal.Entry
	add := func(op *types.RenameOperation) {
		if op != nil && op.Status == types.StatusSuccess {
			entries = append(entries, journal.Entry{
				Source: filepath.Base(op.SourcePath),
				Target: filepath.Base(op.TargetPath),
			})
		}
	}
	for i := range res.Normalized {
		add(&res.Normalized[i])
	}
	for i := range res.Groups {
		for _, op := range res.Groups[i].Members() {
			add(op)
		}
	}
	if len(entries) == 0 {
		return
	}

	j, err := journal.Open(filepath.Join(dir, config.GetDefaults().JournalFile))
	if err == nil {
		err = j.Append(entries)
	}
	if err != nil {
		r.opts.Events.Emit(types.EventWarning, fmt.Sprintf("Journal not written: %v", err))
	}
}

// findSidecar returns the first sidecar whose name starts with base.
func findSidecar(sidecars []string, base string) string {
	for _, s := range sidecars {
		if strings.HasPrefix(s, base) {
			return s
		}
	}
	return ""
}

func haltFrom(groups []types.GroupOperation, reason string) {
	for i := range groups {
		for _, op := range groups[i].Members() {
			if op.Status == types.StatusPending {
				op.Status = types.StatusSkipped
			}
		}
		if groups[i].Reason == "" {
			groups[i].Reason = reason
		}
	}
}

// renameNoClobber moves src to dst unless dst already exists.
func renameNoClobber(src, dst string) error {
	if _, err := os.Lstat(dst); err == nil {
		return types.ErrTargetExists{Path: dst}
	} else if !errors.Is(err, os.ErrNotExist) {
		return err
	}
	if err := os.Rename(src, dst); err != nil {
		return fmt.Errorf("failed to rename %s: %w", filepath.Base(src), err)
	}
	return nil
}
