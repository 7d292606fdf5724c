// Package config holds the baseline environment settings applied during
// bootstrap: text encoding, history retention, backup policy, garbage
// collection tuning, and the autoload rule declarations that seed the
// minor-mode dispatcher.
//
// Settings come from three layers, later layers winning: built-in
// defaults, an optional TOML file in the host-namespaced etc directory,
// and DOOM_-prefixed environment variables.
package config

import (
	"path/filepath"

	"github.com/jhirn/doom-emacs/internal/location"
)

// Settings is the resolved configuration for one bootstrap run.
type Settings struct {
	// Encoding is the default text encoding for new buffers.
	Encoding string `toml:"encoding"`

	// HistoryLength caps the number of retained history entries
	// (command history, recent files).
	HistoryLength int `toml:"history_length"`

	// HistoryDir is where history files are persisted. Defaults to the
	// host-namespaced etc directory so machines sharing a tree keep
	// separate histories.
	HistoryDir string `toml:"history_dir"`

	// GCPercent is the steady-state garbage collection target applied
	// after bootstrap completes. See runtime/debug.SetGCPercent.
	GCPercent int `toml:"gc_percent"`

	// LogLevel is the minimum diagnostic level ("debug", "info",
	// "warn", "error").
	LogLevel string `toml:"log_level"`

	// Backup is the file backup policy.
	Backup BackupPolicy `toml:"backup"`

	// Autoload declares pattern-to-mode rules evaluated on file open.
	Autoload []AutoloadRule `toml:"autoload"`
}

// BackupPolicy controls how file backups are made.
type BackupPolicy struct {
	// Enabled switches backups on.
	Enabled bool `toml:"enabled"`

	// Dir is where backups are written. Defaults to a directory under
	// the host-namespaced cache so backups never pollute the tree being
	// edited and never collide across hosts.
	Dir string `toml:"dir"`

	// Versioned enables numbered backups (name.~N~) instead of a
	// single trailing-tilde backup.
	Versioned bool `toml:"versioned"`

	// KeptNew is how many newest numbered backups to keep.
	KeptNew int `toml:"kept_new"`

	// KeptOld is how many oldest numbered backups to keep.
	KeptOld int `toml:"kept_old"`
}

// AutoloadRule declares one dispatcher rule in configuration: a path
// pattern and the minor modes to enable when it matches.
type AutoloadRule struct {
	// Pattern is a regular expression matched against normalized paths.
	Pattern string `toml:"pattern"`

	// Modes are the mode names to enable on a match.
	Modes []string `toml:"modes"`
}

// Defaults returns the built-in settings for the given directory layout.
func Defaults(loc location.Registry) Settings {
	return Settings{
		Encoding:      "utf-8",
		HistoryLength: 1000,
		HistoryDir:    loc.Etc,
		GCPercent:     100,
		LogLevel:      "info",
		Backup: BackupPolicy{
			Enabled:   true,
			Dir:       filepath.Join(loc.Cache, "backup"),
			Versioned: true,
			KeptNew:   5,
			KeptOld:   2,
		},
	}
}

// File returns the conventional path of the settings file for the given
// layout: <etc>/config.toml.
func File(loc location.Registry) string {
	return filepath.Join(loc.Etc, "config.toml")
}
