package output

import "github.com/charmbracelet/lipgloss"

// Status tokens shared by every renderer mode. Diagnostic lines are
// built from these exact strings so piped output stays stable.
const (
	statusPass = "[PASS]"
	statusFail = "[FAIL]"
	statusWarn = "[WARN]"
)

// Styles carries the lipgloss styles used when rendering text output.
type Styles struct {
	Header1 lipgloss.Style
	Header2 lipgloss.Style
	Bold    lipgloss.Style
	Muted   lipgloss.Style
	Path    lipgloss.Style

	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Info    lipgloss.Style

	// StatusSuccess and StatusFailed render the [PASS] and [FAIL]
	// tokens diagnostic lines start with; call String() to get the
	// token itself.
	StatusSuccess lipgloss.Style
	StatusFailed  lipgloss.Style
}

// NewStyles returns the style set. When styled is false every style is
// a bare passthrough that renders its input unchanged.
func NewStyles(styled bool) *Styles {
	s := &Styles{
		Header1:       lipgloss.NewStyle(),
		Header2:       lipgloss.NewStyle(),
		Bold:          lipgloss.NewStyle(),
		Muted:         lipgloss.NewStyle(),
		Path:          lipgloss.NewStyle(),
		Success:       lipgloss.NewStyle(),
		Warning:       lipgloss.NewStyle(),
		Error:         lipgloss.NewStyle(),
		Info:          lipgloss.NewStyle(),
		StatusSuccess: lipgloss.NewStyle().SetString(statusPass),
		StatusFailed:  lipgloss.NewStyle().SetString(statusFail),
	}
	if !styled {
		return s
	}

	s.Header1 = s.Header1.Bold(true).Foreground(lipgloss.Color("12"))
	s.Header2 = s.Header2.Bold(true).Foreground(lipgloss.Color("14"))
	s.Bold = s.Bold.Bold(true)
	s.Muted = s.Muted.Foreground(lipgloss.Color("8"))
	s.Path = s.Path.Foreground(lipgloss.Color("14"))
	s.Success = s.Success.Foreground(lipgloss.Color("10"))
	s.Warning = s.Warning.Foreground(lipgloss.Color("11"))
	s.Error = s.Error.Foreground(lipgloss.Color("9"))
	s.Info = s.Info.Foreground(lipgloss.Color("12"))
	s.StatusSuccess = s.StatusSuccess.Bold(true).Foreground(lipgloss.Color("10"))
	s.StatusFailed = s.StatusFailed.Bold(true).Foreground(lipgloss.Color("9"))
	return s
}
