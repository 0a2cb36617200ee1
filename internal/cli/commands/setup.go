package commands

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/claudeyj/benchvet/internal/cli/config"
	"github.com/claudeyj/benchvet/internal/cli/output"
	"github.com/claudeyj/benchvet/internal/history"
	"github.com/claudeyj/benchvet/internal/refset"
	"github.com/spf13/cobra"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Refs     refset.Sets
	Renderer *output.Renderer
}

// NewCommandContext creates a CommandContext with the reference sets
// loaded. Commands that audit a repository need both sets; a missing or
// malformed reference file is fatal before any dataset is checked.
func NewCommandContext(cmd *cobra.Command) (*CommandContext, error) {
	cmdCtx := NewCommandContextWithoutRefs(cmd)

	if err := cmdCtx.Cfg.ValidateReferenceFiles(); err != nil {
		return nil, err
	}
	refs, err := refset.Load(cmdCtx.Cfg.QuixBugsFile, cmdCtx.Cfg.ExportFile)
	if err != nil {
		return nil, err
	}
	cmdCtx.Refs = refs

	cmdCtx.Logger.Debug("reference sets loaded",
		"quixbugs", refs.QuixBugs.Len(),
		"bugswarm", refs.BugSwarm.Len(),
	)
	return cmdCtx, nil
}

// NewCommandContextWithoutRefs creates a CommandContext without loading
// the reference sets. Useful for commands that don't audit anything.
func NewCommandContextWithoutRefs(cmd *cobra.Command) *CommandContext {
	cfg := getConfig()
	logger := config.GetLogger(cmd.Context())
	mode := output.Mode(cfg.OutputFormat)
	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode)

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Renderer: r,
	}
}

// Helper functions shared across commands

// getConfig returns the current configuration.
// It uses config.GetCurrentConfig() if available, otherwise falls back to environment variables.
func getConfig() *config.Config {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}

	// Fallback: read from environment with defaults
	quixbugsFile := getEnvOrDefault("BENCHVET_QUIXBUGS_FILE", config.DefaultQuixBugsFile)
	exportFile := getEnvOrDefault("BENCHVET_EXPORT_FILE", config.DefaultExportFile)
	statePath := getEnvOrDefault("BENCHVET_STATE_PATH", config.DefaultStateFile)
	verbose := os.Getenv("BENCHVET_VERBOSE") == "true"
	historyOn := os.Getenv("BENCHVET_HISTORY") == "true"
	outputFormat := os.Getenv("BENCHVET_OUTPUT")

	return &config.Config{
		QuixBugsFile:  quixbugsFile,
		ExportFile:    exportFile,
		StatePath:     statePath,
		History:       historyOn,
		Verbose:       verbose,
		OutputFormat:  outputFormat,
		WatchDebounce: config.DefaultWatchDebounce,
	}
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

// openHistory opens the run-history store and brings its schema up to
// date. Returns the store and a cleanup function that must be called
// (typically via defer).
func openHistory(cfg *config.Config, logger *slog.Logger) (*history.SQLiteStore, func(), error) {
	// Ensure state directory exists
	stateDir := filepath.Dir(cfg.StatePath)
	if stateDir != "." && stateDir != "" {
		if err := os.MkdirAll(stateDir, 0750); err != nil {
			return nil, nil, err
		}
	}

	store := history.NewSQLiteStore(logger)
	if err := store.Open(cfg.StatePath); err != nil {
		return nil, nil, err
	}
	if err := store.Migrate(); err != nil {
		_ = store.Close()
		return nil, nil, err
	}

	cleanup := func() {
		_ = store.Close()
	}
	return store, cleanup, nil
}
