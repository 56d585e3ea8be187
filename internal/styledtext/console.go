package styledtext

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var consoleStyles = map[Style]lipgloss.Style{
	Failure:     lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
	Info:        lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	UserInput:   lipgloss.NewStyle().Bold(true),
	Description: lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
	Header:      lipgloss.NewStyle().Bold(true),
}

// ConsoleSink writes spans to an io.Writer, mapping semantic styles to
// terminal styling when color is enabled.
type ConsoleSink struct {
	w     io.Writer
	color bool
}

func NewConsoleSink(w io.Writer, color bool) *ConsoleSink {
	return &ConsoleSink{w: w, color: color}
}

func (c *ConsoleSink) Span(st Style, text string) {
	if !c.color || st == Normal || strings.TrimSpace(text) == "" {
		io.WriteString(c.w, text)
		return
	}
	io.WriteString(c.w, consoleStyles[st].Render(text))
}
