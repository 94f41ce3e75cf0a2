package writer

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

type styles struct {
	title   lipgloss.Style
	address lipgloss.Style
	column  lipgloss.Style
	valid   lipgloss.Style
	invalid lipgloss.Style
}

// newStyles returns the styles for the output. The renderer detects the
// color support of the output, writing to a file results in plain text.
// Disabled styles leave the text untouched.
func newStyles(w io.Writer, color bool) styles {
	r := lipgloss.NewRenderer(w)
	if !color {
		return styles{
			title:   r.NewStyle(),
			address: r.NewStyle(),
			column:  r.NewStyle(),
			valid:   r.NewStyle(),
			invalid: r.NewStyle(),
		}
	}

	return styles{
		title:   r.NewStyle().Bold(true).Foreground(lipgloss.ANSIColor(5)),
		address: r.NewStyle().Foreground(lipgloss.ANSIColor(4)),
		column:  r.NewStyle().Bold(true).Foreground(lipgloss.ANSIColor(8)),
		valid:   r.NewStyle().Foreground(lipgloss.ANSIColor(2)),
		invalid: r.NewStyle().Bold(true).Foreground(lipgloss.ANSIColor(7)).Background(lipgloss.ANSIColor(1)),
	}
}
