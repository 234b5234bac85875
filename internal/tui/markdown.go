package tui

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

// markdown renders record bodies, rebuilding its renderer when the width changes.
type markdown struct {
	width    int
	renderer *glamour.TermRenderer
}

func (m *markdown) render(src string, width int) string {
	if width < 20 {
		width = 20
	}
	if m.renderer == nil || m.width != width {
		r, err := glamour.NewTermRenderer(
			glamour.WithStylePath("dark"),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return src
		}
		m.renderer = r
		m.width = width
	}
	out, err := m.renderer.Render(src)
	if err != nil {
		return src
	}
	return strings.Trim(out, "\n")
}
