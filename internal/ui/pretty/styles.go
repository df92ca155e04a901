// Package pretty provides Lipgloss-based styled output utilities.
package pretty

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/yaklabco/md2html/pkg/mdast"
)

// Styles contains all styled renderers for CLI output.
type Styles struct {
	// Token kinds, indexed by mdast.TokenKind.
	Tokens map[mdast.TokenKind]lipgloss.Style

	// Tree dump
	NodeKind  lipgloss.Style
	NodeAttrs lipgloss.Style
	NodeText  lipgloss.Style

	// Locations and paths
	FilePath lipgloss.Style
	Location lipgloss.Style

	// Diff styles
	DiffHeader  lipgloss.Style
	DiffHunk    lipgloss.Style
	DiffAdd     lipgloss.Style
	DiffRemove  lipgloss.Style
	DiffContext lipgloss.Style

	// Summary styles
	SummaryTitle lipgloss.Style
	SummaryValue lipgloss.Style
	Success      lipgloss.Style
	Warning      lipgloss.Style
	Failure      lipgloss.Style

	// Table styles
	TableHeader    lipgloss.Style
	TableSeparator lipgloss.Style

	// Misc
	Dim  lipgloss.Style
	Bold lipgloss.Style

	color bool
}

// NewStyles creates a new Styles with the given color mode.
func NewStyles(colorEnabled bool) *Styles {
	if !colorEnabled {
		return newNoColorStyles()
	}
	return newColorStyles()
}

func fg(color string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).TabWidth(lipgloss.NoTabConversion)
}

// newColorStyles creates styles with ANSI 256 colors.
func newColorStyles() *Styles {
	return &Styles{
		Tokens: map[mdast.TokenKind]lipgloss.Style{
			mdast.TokText:       lipgloss.NewStyle(),
			mdast.TokPrefix:     fg("13").Bold(true),
			mdast.TokIndent:     fg("8"),
			mdast.TokEmphasis:   fg("11"),
			mdast.TokHorizontal: fg("14"),
			mdast.TokNewline:    fg("8"),
			mdast.TokBackQuote:  fg("10"),
		},

		NodeKind:  lipgloss.NewStyle().Bold(true),
		NodeAttrs: fg("12"),
		NodeText:  fg("7"),

		FilePath: lipgloss.NewStyle().Bold(true),
		Location: fg("8"),

		DiffHeader:  lipgloss.NewStyle().Bold(true),
		DiffHunk:    fg("14"),
		DiffAdd:     fg("10"),
		DiffRemove:  fg("9"),
		DiffContext: fg("8"),

		SummaryTitle: lipgloss.NewStyle().Bold(true),
		SummaryValue: lipgloss.NewStyle(),
		Success:      fg("10").Bold(true),
		Warning:      fg("11").Bold(true),
		Failure:      fg("9").Bold(true),

		TableHeader:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7")),
		TableSeparator: fg("8"),

		Dim:  fg("8"),
		Bold: lipgloss.NewStyle().Bold(true),

		color: true,
	}
}

// newNoColorStyles creates styles with no color formatting.
func newNoColorStyles() *Styles {
	plain := lipgloss.NewStyle()
	return &Styles{
		Tokens:         map[mdast.TokenKind]lipgloss.Style{},
		NodeKind:       plain,
		NodeAttrs:      plain,
		NodeText:       plain,
		FilePath:       plain,
		Location:       plain,
		DiffHeader:     plain,
		DiffHunk:       plain,
		DiffAdd:        plain,
		DiffRemove:     plain,
		DiffContext:    plain,
		SummaryTitle:   plain,
		SummaryValue:   plain,
		Success:        plain,
		Warning:        plain,
		Failure:        plain,
		TableHeader:    plain,
		TableSeparator: plain,
		Dim:            plain,
		Bold:           plain,
	}
}

// paint renders text with style, leaving it untouched when color is off.
func (s *Styles) paint(style lipgloss.Style, text string) string {
	if !s.color {
		return text
	}
	return style.Render(text)
}

// Token returns the style for a token kind; unknown kinds are unstyled.
func (s *Styles) Token(kind mdast.TokenKind) lipgloss.Style {
	if style, ok := s.Tokens[kind]; ok {
		return style
	}
	return lipgloss.NewStyle()
}

// IsColorEnabled determines if color should be enabled based on mode and writer.
// Mode values: "auto" (default), "always", "never".
// In auto mode, color is enabled only if the writer is a TTY and NO_COLOR is not set.
func IsColorEnabled(mode string, writer io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default:
		// https://no-color.org/
		if os.Getenv("NO_COLOR") != "" {
			return false
		}
		if f, ok := writer.(*os.File); ok {
			return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
		}
		return false
	}
}
