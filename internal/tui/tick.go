// Package tui is a terminal viewer for a powder world built on Bubble Tea.
// Each terminal row shows two grid rows using upper half blocks.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg advances the simulation by one step.
type TickMsg time.Time

func tickCmd(tickRate int) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 30
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
