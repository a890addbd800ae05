// Package journal records completed renames so a run can be undone.
package journal

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Entry is one completed rename, stored as names relative to the directory
type Entry struct {
	Source string `yaml:"source"`
	Target string `yaml:"target"`
}

// Run groups the entries written by one invocation
type Run struct {
	Time    time.Time `yaml:"time"`
	Entries []Entry   `yaml:"entries"`
}

// Journal is the on-disk history of a directory
type Journal struct {
	Runs []Run `yaml:"runs"`

	path string
}

// Open loads the journal file at path. A missing file yields an empty journal.
func Open(path string) (*Journal, error) {
	j := &Journal{path: path}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return j, nil
		}
		return nil, fmt.Errorf("failed to read journal: %w", err)
	}
	if err := yaml.Unmarshal(data, j); err != nil {
		return nil, fmt.Errorf("failed to parse journal %s: %w", path, err)
	}
	return j, nil
}

// Path returns the journal file location
func (j *Journal) Path() string {
	return j.path
}

// Append stores a new run. Empty runs are ignored.
func (j *Journal) Append(entries []Entry) error {
	if len(entries) == 0 {
		return nil
	}
	j.Runs = append(j.Runs, Run{Time: time.Now().UTC().Truncate(time.Second), Entries: entries})
	return j.Save()
}

// Last returns the most recent run
func (j *Journal) Last() (Run, bool) {
	if len(j.Runs) == 0 {
		return Run{}, false
	}
	return j.Runs[len(j.Runs)-1], true
}

// DropLast removes the most recent run and saves. The file is removed once empty.
func (j *Journal) DropLast() error {
	if len(j.Runs) == 0 {
		return nil
	}
	j.Runs = j.Runs[:len(j.Runs)-1]
	if len(j.Runs) == 0 {
		if err := os.Remove(j.path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to remove journal: %w", err)
		}
		return nil
	}
	return j.Save()
}

// Save writes the journal atomically via a temp file in the same directory
func (j *Journal) Save() error {
	data, err := yaml.Marshal(j)
	if err != nil {
		return fmt.Errorf("failed to encode journal: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(j.path), ".vidstamp-journal-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp journal: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write journal: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	if err := os.Rename(tmp.Name(), j.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to save journal: %w", err)
	}
	return nil
}
