// Package ui writes progress and diagnostic lines for the person at the
// terminal. Responses meant for the caller never go through here.
package ui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Status prints styled one-line messages. Colour is dropped automatically
// when the writer is not a terminal.
type Status struct {
	w      io.Writer
	accent lipgloss.Style
	dim    lipgloss.Style
	err    lipgloss.Style
}

func NewStatus(w io.Writer) *Status {
	r := lipgloss.NewRenderer(w)
	return &Status{
		w:      w,
		accent: r.NewStyle().Bold(true).Foreground(lipgloss.Color("#c084fc")),
		dim:    r.NewStyle().Foreground(lipgloss.Color("#666666")),
		err:    r.NewStyle().Foreground(lipgloss.Color("#ef4444")),
	}
}

// Step announces something the user should notice, such as "speak now".
func (s *Status) Step(format string, args ...any) {
	s.println(s.accent, format, args...)
}

func (s *Status) Info(format string, args ...any) {
	s.println(s.dim, format, args...)
}

func (s *Status) Error(format string, args ...any) {
	s.println(s.err, format, args...)
}

func (s *Status) println(style lipgloss.Style, format string, args ...any) {
	fmt.Fprintln(s.w, style.Render(fmt.Sprintf(format, args...)))
}
