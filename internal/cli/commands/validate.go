package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/claudeyj/benchvet/internal/audit"
	"github.com/claudeyj/benchvet/internal/cli/output"
	"github.com/claudeyj/benchvet/internal/watch"
)

// ValidateOptions holds options for the validate command.
type ValidateOptions struct {
	Format  string // Output format: text, markdown, json
	Summary bool   // Append the per-dataset summary table
	Watch   bool   // Re-audit on filesystem changes
}

// NewValidateCommand creates the validate command.
func NewValidateCommand() *cobra.Command {
	opts := &ValidateOptions{}
	cmd := &cobra.Command{
		Use:   "validate <repo-path>",
		Short: "Audit the structure of a benchmark repository",
		Long: `Audit a software-bug benchmark repository for structural conformance.

The repository must provide one folder per dataset (Defects4J, QuixBugs,
Bears, BugSwarm), each holding one folder per candidate bug. Every
candidate must carry Buggy-Version and Patched-Version snapshots with
generated Randoop and Evosuite test files, a test.txt failing-test
record, and a Coverage folder with all six per-tool subfolders.

Each violation prints one [FAIL] line; a fully conformant repository
prints [PASS] Validation pass. Hard violations stop the audit at the
first offending candidate; a dataset below its minimum count is
reported but audited anyway.

Output adapts to environment:
  - Terminal: Styled output with colors
  - Piped/Scripted: Markdown format
  - JSON: Machine-readable format`,
		Example: `  # Audit a repository
  benchvet validate ./benchmark-repo

  # Machine-readable findings
  benchvet validate ./benchmark-repo --format json

  # Append the per-dataset summary table
  benchvet validate ./benchmark-repo --summary

  # Re-audit whenever the repository changes
  benchvet validate ./benchmark-repo --watch

  # Record the outcome in the run history
  benchvet validate ./benchmark-repo --history`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, markdown, json")
	cmd.Flags().BoolVar(&opts.Summary, "summary", false, "Append a per-dataset summary table")
	cmd.Flags().BoolVar(&opts.Watch, "watch", false, "Re-audit whenever the repository changes")

	return cmd
}

func runValidate(cmd *cobra.Command, repoPath string, opts *ValidateOptions) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}

	r := cmdCtx.Renderer

	// Override renderer if format flag is set
	if opts.Format != "" {
		r = output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(opts.Format))
	}

	rep, err := runAudit(cmdCtx, r, repoPath)
	if err != nil {
		return err
	}
	if err := renderReport(r, repoPath, rep, opts); err != nil {
		return err
	}

	if opts.Watch {
		return watchValidate(cmd, cmdCtx, r, repoPath, opts)
	}

	// Structural findings never make the command fail; only reference
	// and I/O errors do.
	return nil
}

// runAudit audits the repository once and records the outcome when
// history is enabled.
func runAudit(cmdCtx *CommandContext, r *output.Renderer, repoPath string) (*audit.Report, error) {
	startedAt := time.Now()
	rep, err := audit.New(repoPath, cmdCtx.Refs, audit.Options{Logger: cmdCtx.Logger}).Run()
	if err != nil {
		return nil, err
	}
	if cmdCtx.Cfg.History {
		recordRun(cmdCtx, r, repoPath, rep, startedAt)
	}
	return rep, nil
}

// recordRun persists one audit outcome. Recording failures must not
// disturb the diagnostic stream, so they surface as notices on stderr.
func recordRun(cmdCtx *CommandContext, r *output.Renderer, repoPath string, rep *audit.Report, startedAt time.Time) {
	store, cleanup, err := openHistory(cmdCtx.Cfg, cmdCtx.Logger)
	if err != nil {
		r.Warning(fmt.Sprintf("Failed to open history store: %v", err))
		return
	}
	defer cleanup()

	if _, err := store.RecordRun(repoPath, rep, startedAt, time.Now()); err != nil {
		r.Warning(fmt.Sprintf("Failed to record run: %v", err))
	}
}

// ValidateOutput is the JSON output for the validate command.
type ValidateOutput struct {
	RepoPath string          `json:"repo_path"`
	Passed   bool            `json:"passed"`
	Halted   bool            `json:"halted"`
	Findings []audit.Finding `json:"findings"`
	Datasets []DatasetResult `json:"datasets,omitempty"`
}

// DatasetResult reports one dataset's candidate count against its
// required minimum.
type DatasetResult struct {
	Dataset  string `json:"dataset"`
	Required int    `json:"required"`
	Found    int    `json:"found"`
}

func renderReport(r *output.Renderer, repoPath string, rep *audit.Report, opts *ValidateOptions) error {
	if r.EffectiveMode() == output.ModeJSON {
		out := ValidateOutput{
			RepoPath: repoPath,
			Passed:   rep.Passed(),
			Halted:   rep.Halted,
			Findings: rep.Findings,
		}
		for _, st := range rep.Stats {
			out.Datasets = append(out.Datasets, DatasetResult{
				Dataset:  string(st.Dataset),
				Required: st.Required,
				Found:    st.Found,
			})
		}
		return r.JSON(out)
	}

	// Text and markdown share the same diagnostic lines; styling only
	// ever colors the status tokens, never changes the bytes.
	styles := r.Styles()
	for _, f := range rep.Findings {
		r.Println(styles.StatusFailed.String() + " " + f.Message)
	}
	if rep.Passed() {
		r.Println(styles.StatusSuccess.String() + " Validation pass")
	}

	if opts.Summary {
		renderSummaryTable(r, rep)
	}
	return nil
}

// renderSummaryTable appends the per-dataset candidate counts after the
// diagnostic stream. Datasets never reached before a halt are absent.
func renderSummaryTable(r *output.Renderer, rep *audit.Report) {
	if len(rep.Stats) == 0 {
		return
	}

	r.Println("")
	t := table.NewWriter()
	t.SetOutputMirror(r.Writer())
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Dataset", "Required", "Found", "Status"})
	for _, st := range rep.Stats {
		status := "ok"
		if st.Found < st.Required {
			status = fmt.Sprintf("missing %d", st.Required-st.Found)
		}
		t.AppendRow(table.Row{string(st.Dataset), st.Required, st.Found, status})
	}
	if r.EffectiveMode() == output.ModeMarkdown {
		t.RenderMarkdown()
		return
	}
	t.Render()
}

// watchValidate keeps re-auditing the repository until interrupted.
// Each debounced change burst triggers a fresh audit whose report is
// rendered in full, so the last block of output always reflects the
// current state of the tree.
func watchValidate(cmd *cobra.Command, cmdCtx *CommandContext, r *output.Renderer, repoPath string, opts *ValidateOptions) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	w, err := watch.New(repoPath, cmdCtx.Cfg.WatchDebounce, cmdCtx.Logger)
	if err != nil {
		return err
	}
	defer func() { _ = w.Close() }()

	r.Warning("Watching for changes. Press Ctrl+C to stop.")

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		return w.Run(egCtx)
	})
	eg.Go(func() error {
		for {
			select {
			case <-egCtx.Done():
				return nil
			case <-w.Changes():
				rep, err := runAudit(cmdCtx, r, repoPath)
				if err != nil {
					return err
				}
				r.Println("")
				if err := renderReport(r, repoPath, rep, opts); err != nil {
					return err
				}
			}
		}
	})
	return eg.Wait()
}
