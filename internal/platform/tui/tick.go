// Package tui is the interactive Bubble Tea front-end. It delivers key
// presses and ticks to an engine on Bubble Tea's event loop.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger one engine tick.
type TickMsg time.Time

// tickCmd schedules the next tick at fps ticks per second.
func tickCmd(fps int) tea.Cmd {
	if fps <= 0 {
		fps = 60
	}
	interval := time.Second / time.Duration(fps)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
