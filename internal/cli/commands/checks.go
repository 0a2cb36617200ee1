package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/claudeyj/benchvet/internal/audit"
	"github.com/claudeyj/benchvet/internal/cli/output"
)

// ChecksOptions holds options for the checks command.
type ChecksOptions struct {
	Group  string // Filter by group
	Format string // Output format: text, markdown, json
}

// NewChecksCommand creates the checks command.
func NewChecksCommand() *cobra.Command {
	opts := &ChecksOptions{}
	cmd := &cobra.Command{
		Use:   "checks",
		Short: "List the structural checks applied during an audit",
		Long: `List every structural check in the order the auditor applies it.

Checks are organized in four groups: dataset (folder presence and
candidate counts), layout (version snapshots and the failing-test
record), tests (generated Randoop and Evosuite files), and coverage
(the Coverage folder and its per-tool subfolders).

Output adapts to environment:
  - Terminal: Styled output with colors
  - Piped/Scripted: Markdown format
  - JSON: Machine-readable format`,
		Example: `  # List all checks
  benchvet checks

  # List coverage checks only
  benchvet checks --group coverage

  # Output as JSON
  benchvet checks --format json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runChecks(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Group, "group", "g", "", "Filter by group: dataset, layout, tests, coverage")
	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, markdown, json")

	_ = cmd.RegisterFlagCompletionFunc("group", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return audit.Groups(), cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

// ChecksJSONOutput is the JSON output for the checks command.
type ChecksJSONOutput struct {
	Checks []audit.Check `json:"checks"`
	Count  int           `json:"count"`
}

func runChecks(cmd *cobra.Command, opts *ChecksOptions) error {
	cmdCtx := NewCommandContextWithoutRefs(cmd)
	r := cmdCtx.Renderer

	// Override renderer if format flag is set
	if opts.Format != "" {
		r = output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(opts.Format))
	}

	checks := audit.Checks()
	if opts.Group != "" {
		checks = filterChecksByGroup(checks, opts.Group)
		if len(checks) == 0 {
			return fmt.Errorf("unknown check group %q (valid groups: %s)",
				opts.Group, strings.Join(audit.Groups(), ", "))
		}
	}

	switch r.EffectiveMode() {
	case output.ModeJSON:
		return listChecksJSON(r, checks)
	case output.ModeMarkdown:
		return listChecksMarkdown(r, checks)
	default:
		return listChecksText(r, checks)
	}
}

func filterChecksByGroup(checks []audit.Check, group string) []audit.Check {
	var filtered []audit.Check
	for _, chk := range checks {
		if chk.Group == group {
			filtered = append(filtered, chk)
		}
	}
	return filtered
}

// listChecksText outputs checks in styled text format.
func listChecksText(r *output.Renderer, checks []audit.Check) error {
	styles := r.Styles()

	r.Println("")
	r.Println(styles.Header1.Render(fmt.Sprintf("Structural Checks (%d)", len(checks))))
	r.Println("")

	currentGroup := ""
	titleCaser := cases.Title(language.English)
	for _, chk := range checks {
		if chk.Group != currentGroup {
			currentGroup = chk.Group
			r.Println(styles.Bold.Render("  " + titleCaser.String(currentGroup)))
		}
		r.Printf("    %s  %-26s %s\n",
			styles.Muted.Render(chk.ID),
			chk.Name,
			styles.Muted.Render(chk.Description),
		)
	}
	r.Println("")

	return nil
}

// listChecksMarkdown outputs checks in markdown format.
func listChecksMarkdown(r *output.Renderer, checks []audit.Check) error {
	r.Println("# Structural Checks")
	r.Println("")

	currentGroup := ""
	titleCaser := cases.Title(language.English)
	for _, chk := range checks {
		if chk.Group != currentGroup {
			currentGroup = chk.Group
			r.Println("## " + titleCaser.String(currentGroup))
			r.Println("")
		}
		r.Printf("- **%s** %s - %s\n", chk.ID, chk.Name, chk.Description)
	}
	r.Println("")

	return nil
}

// listChecksJSON outputs checks in JSON format.
func listChecksJSON(r *output.Renderer, checks []audit.Check) error {
	return r.JSON(ChecksJSONOutput{Checks: checks, Count: len(checks)})
}
