// Package output renders command output in one of four modes: styled
// text for terminals, plain markdown for pipes, JSON for machines, or
// auto, which picks text on a TTY and markdown otherwise.
//
// Diagnostic lines must survive redirection byte for byte, so styling
// is applied only in text mode on a color-capable terminal; everywhere
// else styles render their content unchanged.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// OutputMode selects how command output is rendered.
type OutputMode string

const (
	// ModeAuto resolves to text on a terminal and markdown when piped.
	ModeAuto OutputMode = "auto"
	// ModeText is styled human-first output.
	ModeText OutputMode = "text"
	// ModeMarkdown is plain markdown suitable for piping.
	ModeMarkdown OutputMode = "markdown"
	// ModeJSON is machine-readable JSON.
	ModeJSON OutputMode = "json"
)

// Mode parses a mode string, falling back to auto for anything unknown.
func Mode(s string) OutputMode {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "text":
		return ModeText
	case "markdown", "md":
		return ModeMarkdown
	case "json":
		return ModeJSON
	default:
		return ModeAuto
	}
}

// Renderer writes command output in the selected mode.
type Renderer struct {
	out    io.Writer
	errOut io.Writer
	mode   OutputMode
	isTTY  bool
	styles *Styles
}

// NewRenderer creates a renderer that detects whether out is a
// terminal.
func NewRenderer(out, errOut io.Writer, mode OutputMode) *Renderer {
	isTTY := false
	styled := false
	if f, ok := out.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		isTTY = true
		// NO_COLOR and dumb terminals keep text mode but lose styling.
		styled = termenv.NewOutput(f).ColorProfile() != termenv.Ascii
	}
	r := &Renderer{out: out, errOut: errOut, mode: mode, isTTY: isTTY}
	r.styles = NewStyles(styled && r.EffectiveMode() == ModeText)
	return r
}

// NewRendererWithTTY creates a renderer with an explicit TTY setting.
// Tests use it to force a deterministic mode regardless of where
// output actually goes.
func NewRendererWithTTY(out, errOut io.Writer, isTTY bool, mode OutputMode) *Renderer {
	r := &Renderer{out: out, errOut: errOut, mode: mode, isTTY: isTTY}
	r.styles = NewStyles(isTTY && r.EffectiveMode() == ModeText)
	return r
}

// EffectiveMode resolves auto to a concrete mode.
func (r *Renderer) EffectiveMode() OutputMode {
	if r.mode != ModeAuto && r.mode != "" {
		return r.mode
	}
	if r.isTTY {
		return ModeText
	}
	return ModeMarkdown
}

// IsTTY reports whether primary output goes to a terminal.
func (r *Renderer) IsTTY() bool { return r.isTTY }

// Writer returns the destination for primary output.
func (r *Renderer) Writer() io.Writer { return r.out }

// ErrWriter returns the destination for notices and progress messages.
func (r *Renderer) ErrWriter() io.Writer { return r.errOut }

// Styles returns the style set for the effective mode.
func (r *Renderer) Styles() *Styles { return r.styles }

// Println writes a line to primary output.
func (r *Renderer) Println(a ...any) {
	fmt.Fprintln(r.out, a...)
}

// Printf writes formatted text to primary output.
func (r *Renderer) Printf(format string, a ...any) {
	fmt.Fprintf(r.out, format, a...)
}

// JSON writes v as indented JSON to primary output.
func (r *Renderer) JSON(v any) error {
	enc := json.NewEncoder(r.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// Header writes a section heading appropriate for the effective mode.
func (r *Renderer) Header(level int, text string) {
	if r.EffectiveMode() == ModeMarkdown {
		r.Println(FormatHeader(level, text))
		r.Println("")
		return
	}
	style := r.styles.Header1
	if level > 1 {
		style = r.styles.Header2
	}
	r.Println(style.Render(text))
	r.Println("")
}

// StatusLine writes a one-line check result such as
// "[PASS] QuixBugs reference: 20 programs".
func (r *Renderer) StatusLine(name, status, detail string) {
	var token string
	switch status {
	case "pass", "success", "ok":
		token = r.styles.StatusSuccess.String()
	case "warn", "warning":
		token = r.styles.Warning.Render(statusWarn)
	default:
		token = r.styles.StatusFailed.String()
	}
	line := token + " " + name
	if detail != "" {
		line += ": " + detail
	}
	r.Println(line)
}

// Success writes a confirmation line to primary output.
func (r *Renderer) Success(msg string) {
	r.Println(r.styles.Success.Render("✓ " + msg))
}

// Warning writes a notice line to error output, keeping primary output
// reserved for diagnostics and structured results.
func (r *Renderer) Warning(msg string) {
	fmt.Fprintln(r.errOut, r.styles.Warning.Render(msg))
}

// FormatHeader renders a markdown heading.
func FormatHeader(level int, text string) string {
	if level < 1 {
		level = 1
	}
	return strings.Repeat("#", level) + " " + text
}

// FormatKeyValue renders a markdown definition bullet.
func FormatKeyValue(key, value string) string {
	return fmt.Sprintf("- **%s:** %s", key, value)
}
