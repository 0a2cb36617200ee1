package commands

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/claudeyj/benchvet/internal/cli/output"
	"github.com/claudeyj/benchvet/internal/dataset"
)

// DatasetsOptions holds options for the datasets command.
type DatasetsOptions struct {
	Format string // Output format: text, markdown, json
}

// NewDatasetsCommand creates the datasets command.
func NewDatasetsCommand() *cobra.Command {
	opts := &DatasetsOptions{}
	cmd := &cobra.Command{
		Use:   "datasets",
		Short: "List the benchmark datasets and their requirements",
		Long: `List the four benchmark datasets with their audit requirements.

Each dataset names a folder at the repository root, requires a minimum
number of candidate bug folders, and selects candidates by a membership
rule. The QuixBugs and BugSwarm rules are backed by reference files;
the Defects4J and Bears rules are static name patterns.

Output adapts to environment:
  - Terminal: Styled output with colors
  - Piped/Scripted: Markdown format
  - JSON: Machine-readable format`,
		Example: `  # List all datasets
  benchvet datasets

  # Output as JSON
  benchvet datasets --format json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDatasets(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, markdown, json")

	return cmd
}

// DatasetInfo describes one dataset in machine-readable output.
type DatasetInfo struct {
	Name    string `json:"name"`
	Minimum int    `json:"minimum"`
	Rule    string `json:"rule"`
}

// DatasetsOutput is the JSON output for the datasets command.
type DatasetsOutput struct {
	Datasets []DatasetInfo `json:"datasets"`
}

func runDatasets(cmd *cobra.Command, opts *DatasetsOptions) error {
	cmdCtx := NewCommandContextWithoutRefs(cmd)
	r := cmdCtx.Renderer

	// Override renderer if format flag is set
	if opts.Format != "" {
		r = output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(opts.Format))
	}

	infos := make([]DatasetInfo, 0, len(dataset.All()))
	for _, ds := range dataset.All() {
		infos = append(infos, DatasetInfo{
			Name:    string(ds),
			Minimum: ds.MinCandidates(),
			Rule:    ds.RuleSummary(),
		})
	}

	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(DatasetsOutput{Datasets: infos})
	}

	r.Header(1, "Benchmark Datasets")

	t := table.NewWriter()
	t.SetOutputMirror(r.Writer())
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Dataset", "Minimum", "Membership Rule"})
	for _, info := range infos {
		t.AppendRow(table.Row{info.Name, info.Minimum, info.Rule})
	}
	if r.EffectiveMode() == output.ModeMarkdown {
		t.RenderMarkdown()
		return nil
	}
	t.Render()
	return nil
}
