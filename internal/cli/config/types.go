// Package config provides configuration management for the benchvet CLI.
//
// Configuration is layered: built-in defaults, an optional benchvet.yaml,
// BENCHVET_* environment variables, and command-line flags, in rising
// precedence.
package config

import "time"

// Config holds all CLI configuration options.
type Config struct {
	// QuixBugsFile is the newline-delimited QuixBugs program list,
	// resolved relative to the working directory.
	QuixBugsFile string `koanf:"quixbugs_file"`

	// ExportFile is the BugSwarm export with one image_tag per record,
	// resolved relative to the working directory.
	ExportFile string `koanf:"export_file"`

	// StatePath is the SQLite database that records audit runs.
	StatePath string `koanf:"state_path"`

	// History enables recording audit runs to the state database.
	History bool `koanf:"history"`

	Verbose      bool   `koanf:"verbose"`
	OutputFormat string `koanf:"output"`

	// WatchDebounce is the quiet period watch mode waits after the
	// last filesystem event before re-auditing.
	WatchDebounce time.Duration `koanf:"watch_debounce"`
}

// Default configuration values.
const (
	DefaultQuixBugsFile = "QuixBugs.txt"
	DefaultExportFile   = "Export.json"
	DefaultStateFile    = ".benchvet/state.db"
	DefaultOutput       = "auto" // Auto-detect: TTY=text, non-TTY=markdown
)

// DefaultWatchDebounce is the default quiet period for watch mode.
const DefaultWatchDebounce = 500 * time.Millisecond
