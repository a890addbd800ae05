// Package config loads and saves vidstamp configuration files.
//
// Settings are read from the global file (~/.config/vidstamp/config.yml)
// and then overridden by a per-directory map file (_vidstamp.yml) placed in
// the directory being organized.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mydehq/vidstamp/internal/types"
	"gopkg.in/yaml.v3"
)

// Defaults holds the built-in settings and file names
type Defaults struct {
	MapFile     string
	GlobalDir   string
	GlobalFile  string
	JournalFile string
	Config      types.Config
}

var defaults = Defaults{
	MapFile:     "_vidstamp.yml",
	GlobalDir:   "vidstamp",
	GlobalFile:  "config.yml",
	JournalFile: ".vidstamp-journal.yml",
	Config: types.Config{
		Prefix:  `\d{4}-\d{4} - Kentucky Basketball - `,
		Output:  "UKMB {{DATE}} - ",
		Pairing: types.PairingKeyed,
		Ext: types.ExtensionConfig{
			Video:       ".mp4",
			Sidecar:     ".txt",
			Thumbnail:   ".jpg",
			Description: ".description",
		},
	},
}

// GetDefaults returns a copy of the built-in defaults
func GetDefaults() Defaults {
	d := defaults
	d.Config = *defaults.Config.Clone()
	return d
}

// GlobalPath returns the location of the global config file
func GlobalPath() (string, error) {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to resolve home directory: %w", err)
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, defaults.GlobalDir, defaults.GlobalFile), nil
}

// LoadGlobal reads the global config file. A missing file yields the defaults.
func LoadGlobal() (*types.Config, error) {
	base := GetDefaults().Config
	path, err := GlobalPath()
	if err != nil {
		return &base, err
	}
	cfg, err := readFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &base, nil
		}
		return &base, err
	}
	return base.Merge(cfg), nil
}

// Load resolves the effective configuration for dir: defaults, then the
// global file, then dir's map file.
func Load(dir string) (*types.Config, error) {
	cfg, err := LoadGlobal()
	if err != nil {
		return cfg, fmt.Errorf("failed to load global config: %w", err)
	}

	local, err := readFile(filepath.Join(dir, defaults.MapFile))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) || !usableDir(dir) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to load %s: %w", defaults.MapFile, err)
	}
	return cfg.Merge(local), nil
}

// usableDir reports whether dir is a directory that can be opened. Callers
// treat an unusable directory as empty, so its map file counts as absent.
func usableDir(dir string) bool {
	f, err := os.Open(dir)
	if err != nil {
		return false
	}
	defer f.Close()
	info, err := f.Stat()
	return err == nil && info.IsDir()
}

// SaveToDir writes cfg as the map file of dir
func SaveToDir(dir string, cfg *types.Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	path := filepath.Join(dir, defaults.MapFile)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// Validate checks the fields that would otherwise fail mid-run
func Validate(cfg *types.Config) error {
	if cfg.Prefix == "" {
		return fmt.Errorf("prefix must not be empty")
	}
	if cfg.Output == "" {
		return fmt.Errorf("output must not be empty")
	}
	if _, err := types.ParsePairingMode(string(cfg.Pairing)); err != nil {
		return err
	}
	for name, ext := range map[string]string{
		"video":       cfg.Ext.Video,
		"sidecar":     cfg.Ext.Sidecar,
		"thumbnail":   cfg.Ext.Thumbnail,
		"description": cfg.Ext.Description,
	} {
		if len(ext) < 2 || ext[0] != '.' {
			return fmt.Errorf("%s extension %q must start with a dot", name, ext)
		}
	}
	return nil
}

func readFile(path string) (*types.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg types.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return &cfg, nil
}
