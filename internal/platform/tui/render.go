package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tickrun/internal/core"
)

var (
	backgroundStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	obstacleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("208"))
	playerStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true)
	statusStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Bold(true)
	pausedStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("11")).Padding(0, 1)
	helpStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	frameStyle      = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240"))
)

// RenderScreen converts a Screen buffer to a styled string.
// Adjacent cells of the same kind share one style run to keep escape
// sequences short.
func RenderScreen(s *core.Screen, player, background rune) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y, h := 0, s.Height(); y < h; y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			start := styleFor(s.Get(x, y), player, background)

			var run strings.Builder
			for x < s.Width() {
				r := s.Get(x, y)
				if styleFor(r, player, background) != start {
					break
				}
				run.WriteRune(r)
				x++
			}
			sb.WriteString(styles[start].Render(run.String()))
		}
	}
	return sb.String()
}

type cellKind int

const (
	kindBackground cellKind = iota
	kindObstacle
	kindPlayer
)

var styles = map[cellKind]lipgloss.Style{
	kindBackground: backgroundStyle,
	kindObstacle:   obstacleStyle,
	kindPlayer:     playerStyle,
}

func styleFor(r, player, background rune) cellKind {
	switch r {
	case player:
		return kindPlayer
	case background:
		return kindBackground
	}
	return kindObstacle
}
