package journal

import (
	"os"
	"path/filepath"
	"testing"
)

func TestAppendAndReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".vidstamp-journal.yml")

	j, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if _, ok := j.Last(); ok {
		t.Fatal("new journal should be empty")
	}

	if err := j.Append([]Entry{{Source: "a.mp4", Target: "b.mp4"}}); err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	if err := j.Append([]Entry{{Source: "c.mp4", Target: "d.mp4"}, {Source: "c.txt", Target: "d.txt"}}); err != nil {
		t.Fatalf("Append() error = %v", err)
	}

	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if len(reopened.Runs) != 2 {
		t.Fatalf("Runs = %d; want 2", len(reopened.Runs))
	}
	last, _ := reopened.Last()
	if len(last.Entries) != 2 || last.Entries[1].Target != "d.txt" {
		t.Errorf("Last() = %+v", last)
	}
}

func TestAppendEmptyIsNoop(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.yml")
	j, _ := Open(path)
	if err := j.Append(nil); err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("empty append should not create the file")
	}
}

func TestDropLastRemovesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.yml")
	j, _ := Open(path)
	if err := j.Append([]Entry{{Source: "a", Target: "b"}}); err != nil {
		t.Fatal(err)
	}
	if err := j.DropLast(); err != nil {
		t.Fatalf("DropLast() error = %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("journal file should be removed when empty")
	}
}

func TestOpenCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.yml")
	if err := os.WriteFile(path, []byte("runs: {{"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Open(path); err == nil {
		t.Error("expected parse error")
	}
}
