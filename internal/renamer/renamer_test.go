package renamer_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/mydehq/vidstamp/internal/config"
	"github.com/mydehq/vidstamp/internal/renamer"
	"github.com/mydehq/vidstamp/internal/types"
)

const kyPrefix = "2022-2023 - Kentucky Basketball - "

func writeFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

func listDir(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, e := range entries {
		if e.Name() == config.GetDefaults().JournalFile {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names
}

func assertFiles(t *testing.T, dir string, want []string) {
	t.Helper()
	sort.Strings(want)
	got := listDir(t, dir)
	if len(got) != len(want) {
		t.Fatalf("directory = %q\nwant       %q", got, want)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Fatalf("directory = %q\nwant       %q", got, want)
		}
	}
}

func newRenamer(t *testing.T, mutate func(c *types.Config), opts renamer.Options) *renamer.Renamer {
	t.Helper()
	cfg := config.GetDefaults().Config
	if mutate != nil {
		mutate(&cfg)
	}
	r, err := renamer.New(&cfg, opts)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return r
}

func TestNormalizeExtensions(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"a.description": "x",
		"B.DESCRIPTION": "y",
		"c.mp4":         "",
	})

	r := newRenamer(t, nil, renamer.Options{})
	ops, err := r.NormalizeExtensions(context.Background(), dir)
	if err != nil {
		t.Fatalf("NormalizeExtensions() error = %v", err)
	}
	if len(ops) != 2 {
		t.Fatalf("ops = %d; want 2", len(ops))
	}
	assertFiles(t, dir, []string{"B.txt", "a.txt", "c.mp4"})

	// Second pass has nothing left to do
	ops, err = r.NormalizeExtensions(context.Background(), dir)
	if err != nil {
		t.Fatalf("second NormalizeExtensions() error = %v", err)
	}
	if len(ops) != 0 {
		t.Errorf("second pass ops = %d; want 0", len(ops))
	}
	assertFiles(t, dir, []string{"B.txt", "a.txt", "c.mp4"})
}

func TestNormalizeMissingDir(t *testing.T) {
	var events []types.Event
	r := newRenamer(t, nil, renamer.Options{Events: func(e types.Event) { events = append(events, e) }})

	ops, err := r.NormalizeExtensions(context.Background(), filepath.Join(t.TempDir(), "missing"))
	if err != nil {
		t.Fatalf("NormalizeExtensions() error = %v", err)
	}
	if len(ops) != 0 {
		t.Errorf("ops = %d; want 0", len(ops))
	}
	if len(events) != 1 || events[0].Type != types.EventWarning {
		t.Errorf("events = %+v; want one warning", events)
	}
}

func TestRunOnRegularFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notadir")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	var events []types.Event
	r := newRenamer(t, nil, renamer.Options{Events: func(e types.Event) { events = append(events, e) }})
	res, err := r.Run(context.Background(), path)
	if err != nil {
		t.Fatalf("Run() error = %v; want nil", err)
	}
	if len(res.Normalized) != 0 || len(res.Groups) != 0 {
		t.Errorf("Run() = %+v; want empty result", res)
	}
	if len(events) == 0 || events[0].Type != types.EventWarning {
		t.Errorf("events = %+v; want a warning first", events)
	}
}

func TestNormalizeDoesNotOverwrite(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"a.description": "new",
		"a.txt":         "old",
	})

	r := newRenamer(t, nil, renamer.Options{})
	_, err := r.NormalizeExtensions(context.Background(), dir)
	var te types.ErrTargetExists
	if !errors.As(err, &te) {
		t.Fatalf("error = %v; want ErrTargetExists", err)
	}
	data, _ := os.ReadFile(filepath.Join(dir, "a.txt"))
	if string(data) != "old" {
		t.Errorf("a.txt = %q; existing file was overwritten", data)
	}
}

func TestRunRenamesGroup(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		kyPrefix + "Georgia.mp4":         "",
		kyPrefix + "Georgia.description": "Kentucky vs Georgia\nRecorded on 01/05/2023 at home\n",
		kyPrefix + "Georgia.jpg":         "",
		"notes.md":                       "",
	})

	var events []types.Event
	r := newRenamer(t, nil, renamer.Options{Events: func(e types.Event) { events = append(events, e) }})
	res, err := r.Run(context.Background(), dir)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	assertFiles(t, dir, []string{
		"UKMB 2023-01-05 - Georgia.mp4",
		"UKMB 2023-01-05 - Georgia.txt",
		"UKMB 2023-01-05 - Georgia.jpg",
		"notes.md",
	})

	if len(res.Groups) != 1 {
		t.Fatalf("groups = %d; want 1", len(res.Groups))
	}
	g := res.Groups[0]
	if g.Date != "2023-01-05" || g.Status() != types.StatusSuccess {
		t.Errorf("group = %+v", g)
	}
	if g.Thumbnail == nil || g.Thumbnail.Status != types.StatusSuccess {
		t.Errorf("thumbnail = %+v; want renamed", g.Thumbnail)
	}

	renamed := 0
	for _, e := range events {
		if e.Type == types.EventSuccess {
			renamed++
		}
	}
	// One normalization plus three group members
	if renamed != 4 {
		t.Errorf("success events = %d; want 4", renamed)
	}

	if _, err := os.Stat(filepath.Join(dir, config.GetDefaults().JournalFile)); err != nil {
		t.Errorf("journal not written: %v", err)
	}
}

func TestRunWithoutPrefixOnlyNormalizes(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"game1.mp4":         "",
		"game1.description": "Tip-off 01/02/2023",
		"game1.jpg":         "",
	})

	r := newRenamer(t, nil, renamer.Options{})
	res, err := r.Run(context.Background(), dir)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	assertFiles(t, dir, []string{"game1.mp4", "game1.txt", "game1.jpg"})

	if len(res.Groups) != 1 {
		t.Fatalf("groups = %d; want 1", len(res.Groups))
	}
	g := res.Groups[0]
	if g.Date != "2023-01-02" {
		t.Errorf("Date = %q; want 2023-01-02", g.Date)
	}
	if g.Status() != types.StatusSkipped || g.Reason != "prefix not matched" {
		t.Errorf("group status = %s (%s); want skipped", g.Status(), g.Reason)
	}
}

func TestRunMissingSidecarContinues(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		kyPrefix + "Auburn.mp4":    "",
		kyPrefix + "Tennessee.mp4": "",
		kyPrefix + "Tennessee.txt": "2/11/2023",
	})

	r := newRenamer(t, nil, renamer.Options{})
	res, err := r.Run(context.Background(), dir)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	assertFiles(t, dir, []string{
		kyPrefix + "Auburn.mp4",
		"UKMB 2023-02-11 - Tennessee.mp4",
		"UKMB 2023-02-11 - Tennessee.txt",
	})
	if res.Groups[0].Reason != "no matching sidecar" {
		t.Errorf("Auburn reason = %q", res.Groups[0].Reason)
	}
}

// A sidecar without a date shrinks the positional date list, so every later
// video gets its neighbour's date. Keyed pairing does not.
func TestPairingMisalignment(t *testing.T) {
	files := map[string]string{
		kyPrefix + "A.mp4": "", kyPrefix + "A.txt": "no date in this one",
		kyPrefix + "B.mp4": "", kyPrefix + "B.txt": "Aired 2/2/2023",
		kyPrefix + "C.mp4": "", kyPrefix + "C.txt": "Aired 3/3/2023",
	}

	t.Run("Positional", func(t *testing.T) {
		dir := t.TempDir()
		writeFiles(t, dir, files)
		r := newRenamer(t, func(c *types.Config) { c.Pairing = types.PairingPositional }, renamer.Options{})
		if _, err := r.Run(context.Background(), dir); err != nil {
			t.Fatalf("Run() error = %v", err)
		}
		assertFiles(t, dir, []string{
			"UKMB 2023-02-02 - A.mp4", "UKMB 2023-02-02 - A.txt",
			"UKMB 2023-03-03 - B.mp4", "UKMB 2023-03-03 - B.txt",
			kyPrefix + "C.mp4", kyPrefix + "C.txt",
		})
	})

	t.Run("Keyed", func(t *testing.T) {
		dir := t.TempDir()
		writeFiles(t, dir, files)
		r := newRenamer(t, nil, renamer.Options{})
		res, err := r.Run(context.Background(), dir)
		if err != nil {
			t.Fatalf("Run() error = %v", err)
		}
		assertFiles(t, dir, []string{
			kyPrefix + "A.mp4", kyPrefix + "A.txt",
			"UKMB 2023-02-02 - B.mp4", "UKMB 2023-02-02 - B.txt",
			"UKMB 2023-03-03 - C.mp4", "UKMB 2023-03-03 - C.txt",
		})
		if res.Groups[0].Reason == "" {
			t.Error("group A should carry a skip reason")
		}
	})
}

func TestDryRunLeavesDirectory(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		kyPrefix + "Florida.mp4":         "",
		kyPrefix + "Florida.description": "2/4/2023",
	}
	writeFiles(t, dir, files)

	r := newRenamer(t, nil, renamer.Options{DryRun: true})
	res, err := r.Run(context.Background(), dir)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	assertFiles(t, dir, []string{kyPrefix + "Florida.mp4", kyPrefix + "Florida.description"})

	if len(res.Normalized) != 1 || res.Normalized[0].Status != types.StatusPending {
		t.Errorf("normalized = %+v; want one pending op", res.Normalized)
	}
	if len(res.Groups) != 1 {
		t.Fatalf("groups = %d; want 1", len(res.Groups))
	}
	g := res.Groups[0]
	if g.Status() != types.StatusPending {
		t.Errorf("status = %s; want pending", g.Status())
	}
	if got := filepath.Base(g.Sidecar.TargetPath); got != "UKMB 2023-02-04 - Florida.txt" {
		t.Errorf("sidecar target = %q", got)
	}
	if _, err := os.Stat(filepath.Join(dir, config.GetDefaults().JournalFile)); !os.IsNotExist(err) {
		t.Error("dry run must not write a journal")
	}
}

func TestApplyHaltsOnFailure(t *testing.T) {
	setup := func(t *testing.T) string {
		dir := t.TempDir()
		writeFiles(t, dir, map[string]string{
			kyPrefix + "A.mp4": "", kyPrefix + "A.txt": "1/5/2023",
			kyPrefix + "B.mp4": "", kyPrefix + "B.txt": "1/7/2023",
		})
		// A directory occupies A's video target
		if err := os.Mkdir(filepath.Join(dir, "UKMB 2023-01-05 - A.mp4"), 0o755); err != nil {
			t.Fatal(err)
		}
		return dir
	}

	t.Run("Halt", func(t *testing.T) {
		dir := setup(t)
		r := newRenamer(t, nil, renamer.Options{})
		res, err := r.Run(context.Background(), dir)
		if !errors.Is(err, renamer.ErrHalted) {
			t.Fatalf("Run() error = %v; want ErrHalted", err)
		}
		var te types.ErrTargetExists
		if !errors.As(err, &te) {
			t.Errorf("error should wrap ErrTargetExists: %v", err)
		}

		a := res.Groups[0]
		if a.Video.Status != types.StatusFailed {
			t.Errorf("A video = %s; want failed", a.Video.Status)
		}
		// The rest of the group is still attempted
		if a.Sidecar.Status != types.StatusSuccess {
			t.Errorf("A sidecar = %s; want success", a.Sidecar.Status)
		}
		if res.Groups[1].Status() != types.StatusSkipped {
			t.Errorf("B = %s; want skipped after halt", res.Groups[1].Status())
		}
		if _, err := os.Stat(filepath.Join(dir, kyPrefix+"B.mp4")); err != nil {
			t.Error("B should be left untouched")
		}
	})

	t.Run("KeepGoing", func(t *testing.T) {
		dir := setup(t)
		r := newRenamer(t, nil, renamer.Options{KeepGoing: true})
		_, err := r.Run(context.Background(), dir)
		if err == nil || errors.Is(err, renamer.ErrHalted) {
			t.Fatalf("Run() error = %v; want plain failure", err)
		}
		if _, err := os.Stat(filepath.Join(dir, "UKMB 2023-01-07 - B.mp4")); err != nil {
			t.Errorf("B should be renamed: %v", err)
		}
	})
}

func TestPrefixSidecarMatch(t *testing.T) {
	// "Game" is a prefix of "Game 2", so the first sidecar starting with the
	// base name wins even when it belongs to another video.
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		kyPrefix + "Game 2.txt": "1/9/2023",
		kyPrefix + "Game.mp4":   "",
	})

	r := newRenamer(t, nil, renamer.Options{DryRun: true})
	groups, err := r.Plan(context.Background(), dir)
	if err != nil {
		t.Fatalf("Plan() error = %v", err)
	}
	if len(groups) != 1 || groups[0].Sidecar == nil {
		t.Fatalf("groups = %+v", groups)
	}
	if got := filepath.Base(groups[0].Sidecar.SourcePath); got != kyPrefix+"Game 2.txt" {
		t.Errorf("sidecar = %q", got)
	}
}

func TestUndo(t *testing.T) {
	dir := t.TempDir()
	original := []string{
		kyPrefix + "LSU.mp4",
		kyPrefix + "LSU.description",
		kyPrefix + "LSU.jpg",
	}
	writeFiles(t, dir, map[string]string{
		original[0]: "", original[1]: "3/1/2023", original[2]: "",
	})

	r := newRenamer(t, nil, renamer.Options{})
	if _, err := r.Run(context.Background(), dir); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	assertFiles(t, dir, []string{
		"UKMB 2023-03-01 - LSU.mp4", "UKMB 2023-03-01 - LSU.txt", "UKMB 2023-03-01 - LSU.jpg",
	})

	ops, err := renamer.Undo(context.Background(), dir, renamer.Options{})
	if err != nil {
		t.Fatalf("Undo() error = %v", err)
	}
	if len(ops) != 4 {
		t.Errorf("undo ops = %d; want 4", len(ops))
	}
	assertFiles(t, dir, original)

	if _, err := renamer.Undo(context.Background(), dir, renamer.Options{}); !errors.Is(err, renamer.ErrNothingToUndo) {
		t.Errorf("second Undo() error = %v; want ErrNothingToUndo", err)
	}
}

func TestNewRejectsBadConfig(t *testing.T) {
	cfg := config.GetDefaults().Config
	cfg.Prefix = `(\d`
	if _, err := renamer.New(&cfg, renamer.Options{}); err == nil {
		t.Error("expected error for invalid prefix")
	}
}
