package commands

import (
	"fmt"
	"os"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/claudeyj/benchvet/internal/cli/output"
	"github.com/claudeyj/benchvet/internal/history"
)

// HistoryOptions holds options for the history command.
type HistoryOptions struct {
	Limit  int    // Maximum number of runs to list
	Format string // Output format: text, markdown, json
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand() *cobra.Command {
	opts := &HistoryOptions{}
	cmd := &cobra.Command{
		Use:   "history [run-id]",
		Short: "Show recorded audit runs",
		Long: `Show audit runs recorded in the run-history store.

Without arguments the most recent runs are listed, newest first. Given
a run ID (a unique prefix suffices) the run's findings are shown in
report order.

Runs are recorded by 'validate' when history is enabled with the
--history flag, the history config key, or BENCHVET_HISTORY=true.

Output adapts to environment:
  - Terminal: Styled output with colors
  - Piped/Scripted: Markdown format
  - JSON: Machine-readable format`,
		Example: `  # List recent runs
  benchvet history

  # List the last three runs
  benchvet history --limit 3

  # Show one run's findings
  benchvet history 4f2c1a9b

  # Output as JSON
  benchvet history --format json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(cmd, args, opts)
		},
	}

	cmd.Flags().IntVar(&opts.Limit, "limit", history.DefaultListLimit, "Maximum number of runs to list")
	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, markdown, json")

	return cmd
}

func runHistory(cmd *cobra.Command, args []string, opts *HistoryOptions) error {
	cmdCtx := NewCommandContextWithoutRefs(cmd)
	r := cmdCtx.Renderer

	// Override renderer if format flag is set
	if opts.Format != "" {
		r = output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(opts.Format))
	}

	// Opening the store would create an empty database, so a missing
	// file gets the friendly notice instead.
	if _, err := os.Stat(cmdCtx.Cfg.StatePath); os.IsNotExist(err) {
		r.Warning(fmt.Sprintf("No run history at %s. Record runs with 'benchvet validate --history <repo-path>'.",
			cmdCtx.Cfg.StatePath))
		return nil
	}

	store, cleanup, err := openHistory(cmdCtx.Cfg, cmdCtx.Logger)
	if err != nil {
		return err
	}
	defer cleanup()

	if len(args) > 0 {
		return showRun(r, store, args[0])
	}
	return listRuns(r, store, opts.Limit)
}

// HistoryOutput is the JSON output for the run listing.
type HistoryOutput struct {
	Runs []*history.Run `json:"runs"`
}

// RunDetailOutput is the JSON output for a single run.
type RunDetailOutput struct {
	Run      *history.Run       `json:"run"`
	Findings []*history.Finding `json:"findings"`
}

func listRuns(r *output.Renderer, store *history.SQLiteStore, limit int) error {
	runs, err := store.ListRuns(limit)
	if err != nil {
		return err
	}

	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(HistoryOutput{Runs: runs})
	}

	if len(runs) == 0 {
		r.Warning("No recorded runs yet. Record runs with 'benchvet validate --history <repo-path>'.")
		return nil
	}

	r.Header(1, "Audit Runs")

	t := table.NewWriter()
	t.SetOutputMirror(r.Writer())
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Run", "Started", "Repository", "Status", "Findings"})
	for _, run := range runs {
		t.AppendRow(table.Row{
			shortID(run.ID),
			run.StartedAt.Local().Format("2006-01-02 15:04:05"),
			run.RepoPath,
			run.Status,
			run.Findings,
		})
	}
	if r.EffectiveMode() == output.ModeMarkdown {
		t.RenderMarkdown()
		return nil
	}
	t.Render()
	return nil
}

func showRun(r *output.Renderer, store *history.SQLiteStore, id string) error {
	run, err := store.GetRun(id)
	if err != nil {
		return err
	}
	findings, err := store.ListFindings(run.ID)
	if err != nil {
		return err
	}

	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(RunDetailOutput{Run: run, Findings: findings})
	}

	styles := r.Styles()

	r.Header(1, "Run "+shortID(run.ID))
	r.Println(output.FormatKeyValue("Repository", run.RepoPath))
	r.Println(output.FormatKeyValue("Started", run.StartedAt.Local().Format(time.RFC3339)))
	if run.CompletedAt != nil {
		r.Println(output.FormatKeyValue("Completed", run.CompletedAt.Local().Format(time.RFC3339)))
	}
	r.Println(output.FormatKeyValue("Status", run.Status))
	r.Println(output.FormatKeyValue("Halted", fmt.Sprintf("%t", run.Halted)))
	r.Println("")

	if len(findings) == 0 {
		r.Println(styles.StatusSuccess.String() + " Validation pass")
		return nil
	}
	for _, f := range findings {
		r.Println(styles.StatusFailed.String() + " " + f.Message)
	}
	return nil
}

// shortID abbreviates a run UUID for tables; full IDs stay available
// in JSON output.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
