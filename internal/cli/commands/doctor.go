package commands

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/claudeyj/benchvet/internal/cli/config"
	"github.com/claudeyj/benchvet/internal/cli/output"
	"github.com/claudeyj/benchvet/internal/refset"
)

// DoctorOptions holds options for the doctor command.
type DoctorOptions struct {
	Format string // Output format: text, json
}

// NewDoctorCommand creates the doctor command.
func NewDoctorCommand() *cobra.Command {
	opts := &DoctorOptions{}
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check that the auditing environment is ready",
		Long: `Check that the benchvet environment is ready for auditing.

Verifies the configuration source, loads both reference files and
reports their identifier counts, and probes the run-history store when
recording is enabled. A failing check makes the command exit non-zero.

Output adapts to environment:
  - Terminal: Styled output with colors
  - Piped/Scripted: Markdown format
  - JSON: Machine-readable format`,
		Example: `  # Run environment checks
  benchvet doctor

  # Check against explicit reference files
  benchvet doctor --quixbugs-file refs/QuixBugs.txt --export-file refs/Export.json

  # Output as JSON
  benchvet doctor --format json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDoctor(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, json")

	return cmd
}

// HealthCheck is one environment check result.
type HealthCheck struct {
	Name   string `json:"name"`
	Status string `json:"status"` // "pass", "warn", "fail"
	Detail string `json:"detail,omitempty"`
}

// DoctorOutput is the JSON output for the doctor command.
type DoctorOutput struct {
	ConfigFile string        `json:"config_file,omitempty"`
	Checks     []HealthCheck `json:"checks"`
	Healthy    bool          `json:"healthy"`
}

func runDoctor(cmd *cobra.Command, opts *DoctorOptions) error {
	cmdCtx := NewCommandContextWithoutRefs(cmd)
	r := cmdCtx.Renderer

	// Override renderer if format flag is set
	if opts.Format != "" {
		r = output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(opts.Format))
	}

	out := buildDoctorOutput(cmdCtx.Cfg, cmdCtx.Logger)

	switch r.EffectiveMode() {
	case output.ModeJSON:
		if err := r.JSON(out); err != nil {
			return err
		}
	case output.ModeMarkdown:
		renderDoctorMarkdown(r, out)
	default:
		renderDoctorText(r, out)
	}

	if !out.Healthy {
		return fmt.Errorf("environment problems found")
	}
	return nil
}

func buildDoctorOutput(cfg *config.Config, logger *slog.Logger) *DoctorOutput {
	out := &DoctorOutput{ConfigFile: config.GetConfigFileUsed(), Healthy: true}

	configDetail := "built-in defaults"
	if out.ConfigFile != "" {
		configDetail = out.ConfigFile
	}
	out.Checks = append(out.Checks, HealthCheck{
		Name: "Config", Status: "pass", Detail: configDetail,
	})

	if set, err := refset.LoadList(cfg.QuixBugsFile); err != nil {
		out.Checks = append(out.Checks, HealthCheck{
			Name: "QuixBugs reference", Status: "fail", Detail: err.Error(),
		})
		out.Healthy = false
	} else {
		out.Checks = append(out.Checks, HealthCheck{
			Name: "QuixBugs reference", Status: "pass",
			Detail: fmt.Sprintf("%d programs in %s", set.Len(), cfg.QuixBugsFile),
		})
	}

	if set, err := refset.LoadImageTags(cfg.ExportFile); err != nil {
		out.Checks = append(out.Checks, HealthCheck{
			Name: "BugSwarm export", Status: "fail", Detail: err.Error(),
		})
		out.Healthy = false
	} else {
		out.Checks = append(out.Checks, HealthCheck{
			Name: "BugSwarm export", Status: "pass",
			Detail: fmt.Sprintf("%d image tags in %s", set.Len(), cfg.ExportFile),
		})
	}

	switch {
	case !cfg.History:
		out.Checks = append(out.Checks, HealthCheck{
			Name: "History store", Status: "pass", Detail: "recording disabled",
		})
	default:
		if _, cleanup, err := openHistory(cfg, logger); err != nil {
			out.Checks = append(out.Checks, HealthCheck{
				Name: "History store", Status: "fail", Detail: err.Error(),
			})
			out.Healthy = false
		} else {
			cleanup()
			out.Checks = append(out.Checks, HealthCheck{
				Name: "History store", Status: "pass", Detail: cfg.StatePath,
			})
		}
	}

	return out
}

func renderDoctorText(r *output.Renderer, out *DoctorOutput) {
	styles := r.Styles()

	r.Println("")
	r.Println(styles.Header1.Render("Environment Health"))
	r.Println("")

	for _, chk := range out.Checks {
		r.StatusLine(chk.Name, chk.Status, chk.Detail)
	}
	r.Println("")
}

func renderDoctorMarkdown(r *output.Renderer, out *DoctorOutput) {
	r.Println("# Environment Health")
	r.Println("")

	for _, chk := range out.Checks {
		r.Printf("- **[%s]** %s", strings.ToUpper(chk.Status), chk.Name)
		if chk.Detail != "" {
			r.Printf(": %s", chk.Detail)
		}
		r.Println("")
	}
	r.Println("")
}
