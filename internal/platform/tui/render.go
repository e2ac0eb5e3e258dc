package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/irr-runner/internal/core"
)

// styles holds one lipgloss style per core color, indexed by color.
var styles = buildStyles()

func buildStyles() []lipgloss.Style {
	colors := core.Colors()
	out := make([]lipgloss.Style, len(colors))
	for i, c := range colors {
		out[i] = lipgloss.NewStyle()
		if code := c.ANSI(); code != "" {
			out[i] = out[i].Foreground(lipgloss.Color(code))
		}
	}
	return out
}

func styleFor(c core.Color) lipgloss.Style {
	if int(c) < len(styles) {
		return styles[c]
	}
	return styles[core.ColorDefault]
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Each row is split into spans of equal color and every span is styled once.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	var span []rune
	for y := range s.Height() {
		if y > 0 {
			sb.WriteByte('\n')
		}

		span = span[:0]
		spanColor := s.GetCell(0, y).Color
		for x := range s.Width() {
			cell := s.GetCell(x, y)
			if cell.Color != spanColor {
				sb.WriteString(styleFor(spanColor).Render(string(span)))
				span, spanColor = span[:0], cell.Color
			}
			span = append(span, cell.Rune)
		}
		if len(span) > 0 {
			sb.WriteString(styleFor(spanColor).Render(string(span)))
		}
	}
	return sb.String()
}

// renderTooSmall draws the resize prompt shown below the minimum terminal size.
func renderTooSmall(s *core.Screen, minW, minH int) {
	s.Clear()
	y := s.Height()/2 - 1
	s.DrawTextCentered(y, "Terminal too small", core.ColorYellow)
	s.DrawTextCentered(y+1, fmt.Sprintf("need %dx%d", minW, minH), core.ColorGray)
}
