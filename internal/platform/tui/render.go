package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/arcade-physics/internal/core"
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault: lipgloss.NewStyle(),
	core.ColorRed:     lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	core.ColorGreen:   lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	core.ColorYellow:  lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	core.ColorBlue:    lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
	core.ColorMagenta: lipgloss.NewStyle().Foreground(lipgloss.Color("13")),
	core.ColorCyan:    lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
	core.ColorWhite:   lipgloss.NewStyle().Foreground(lipgloss.Color("15")),
	core.ColorOrange:  lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	core.ColorGray:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
}

var (
	hudStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57")).
			Padding(0, 1)
	hudDimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
	pausedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("11")).
			Padding(0, 1)
)

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := 0; y < s.Height(); y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			startColor := s.GetCell(x, y).Color

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}

// RenderHUD renders the status line shown above the scene.
func RenderHUD(title string, state core.SimState, tickRate int, last []core.ContactInfo, width int) string {
	left := hudStyle.Render(title)
	status := fmt.Sprintf(" step %d  bodies %d  contacts %d  %d/s",
		state.Step, state.Bodies, state.TotalContacts, tickRate)
	if state.Done {
		status += "  done"
	}
	line := left + hudDimStyle.Render(status)
	if state.Paused {
		line += " " + pausedStyle.Render("PAUSED")
	}
	if len(last) > 0 {
		line += hudDimStyle.Render("  " + describeContacts(last))
	}
	return lipgloss.NewStyle().MaxWidth(width).Render(line)
}

// describeContacts summarizes contacts as "a→b:right" pairs.
func describeContacts(contacts []core.ContactInfo) string {
	const maxShown = 3
	parts := make([]string, 0, maxShown+1)
	for i, c := range contacts {
		if i == maxShown {
			parts = append(parts, fmt.Sprintf("+%d", len(contacts)-maxShown))
			break
		}
		parts = append(parts, fmt.Sprintf("%s→%s:%s", c.Left, c.Right, c.Side))
	}
	return strings.Join(parts, " ")
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}
