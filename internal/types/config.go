package types

import (
	"fmt"
	"strings"
)

// Config represents the vidstamp configuration file
type Config struct {
	Prefix    string          `yaml:"prefix"`               // Regexp matched at the start of a filename
	Output    string          `yaml:"output"`               // Replacement template, {{DATE}} is the extracted date
	Pairing   PairingMode     `yaml:"pairing,omitempty"`    // How dates are associated with videos
	WordDates bool            `yaml:"word_dates,omitempty"` // Fall back to "January 5, 2023" style dates
	Journal   *bool           `yaml:"journal,omitempty"`    // Record renames for undo (default true)
	Ext       ExtensionConfig `yaml:"extensions"`
}

// ExtensionConfig lists the extensions of each member of a file group.
// Extensions carry the leading dot and are compared case-insensitively.
type ExtensionConfig struct {
	Video       string `yaml:"video"`
	Sidecar     string `yaml:"sidecar"`
	Thumbnail   string `yaml:"thumbnail"`
	Description string `yaml:"description"`
}

// PairingMode controls how extracted dates are matched to videos.
type PairingMode string

const (
	// PairingKeyed looks dates up by the sidecar base name.
	PairingKeyed PairingMode = "keyed"
	// PairingPositional gives the i-th video the i-th extracted date.
	// Sidecars without a date shift every later pairing.
	PairingPositional PairingMode = "positional"
)

// ParsePairingMode validates a pairing mode name. An empty string selects PairingKeyed.
func ParsePairingMode(s string) (PairingMode, error) {
	switch PairingMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", PairingKeyed:
		return PairingKeyed, nil
	case PairingPositional:
		return PairingPositional, nil
	}
	return "", fmt.Errorf("unknown pairing mode %q (want %q or %q)", s, PairingKeyed, PairingPositional)
}

// JournalEnabled reports whether renames should be recorded.
func (c *Config) JournalEnabled() bool {
	return c.Journal == nil || *c.Journal
}

// Clone returns a deep copy of the configuration
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}
	res := *c
	if c.Journal != nil {
		j := *c.Journal
		res.Journal = &j
	}
	return &res
}

// Merge overlays the non-zero fields of o onto a copy of c.
func (c *Config) Merge(o *Config) *Config {
	res := c.Clone()
	if o == nil {
		return res
	}
	if o.Prefix != "" {
		res.Prefix = o.Prefix
	}
	if o.Output != "" {
		res.Output = o.Output
	}
	if o.Pairing != "" {
		res.Pairing = o.Pairing
	}
	if o.WordDates {
		res.WordDates = true
	}
	if o.Journal != nil {
		j := *o.Journal
		res.Journal = &j
	}
	if o.Ext.Video != "" {
		res.Ext.Video = o.Ext.Video
	}
	if o.Ext.Sidecar != "" {
		res.Ext.Sidecar = o.Ext.Sidecar
	}
	if o.Ext.Thumbnail != "" {
		res.Ext.Thumbnail = o.Ext.Thumbnail
	}
	if o.Ext.Description != "" {
		res.Ext.Description = o.Ext.Description
	}
	return res
}
