package config

import (
	"fmt"
	"os"
)

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.QuixBugsFile == "" {
		return fmt.Errorf("quixbugs_file is required")
	}
	if c.ExportFile == "" {
		return fmt.Errorf("export_file is required")
	}

	switch c.OutputFormat {
	case "", "auto", "text", "markdown", "md", "json":
	default:
		return fmt.Errorf("invalid output format %q\nHint: Valid formats are auto, text, markdown, json", c.OutputFormat)
	}

	if c.WatchDebounce < 0 {
		return fmt.Errorf("watch_debounce must not be negative")
	}

	// Reference file existence is checked separately so help and
	// completion commands work without the files present.
	return nil
}

// ValidateReferenceFiles checks that the reference files exist.
// Commands that audit a repository need both; commands like version
// and checks do not.
func (c *Config) ValidateReferenceFiles() error {
	if _, err := os.Stat(c.QuixBugsFile); os.IsNotExist(err) {
		return fmt.Errorf("QuixBugs program list does not exist: %s\nHint: Use --quixbugs-file to point at the list", c.QuixBugsFile)
	}
	if _, err := os.Stat(c.ExportFile); os.IsNotExist(err) {
		return fmt.Errorf("BugSwarm export does not exist: %s\nHint: Use --export-file to point at the artifact export", c.ExportFile)
	}
	return nil
}
