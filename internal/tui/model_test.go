package tui

import (
	"io"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"powder/internal/sims/powder"
	"powder/internal/tools"
)

func newTestModel(t *testing.T, w, h int) Model {
	t.Helper()
	cfg := powder.DefaultConfig()
	cfg.Width, cfg.Height = w, h
	cfg.Scene = powder.SceneEmpty
	world, err := powder.NewWithConfig(cfg)
	if err != nil {
		t.Fatalf("NewWithConfig: %v", err)
	}
	quiet := log.New(io.Discard)
	world.SetLogger(quiet)
	return NewModel(world, Options{TickRate: 60, Logger: quiet})
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	out, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return out
}

func TestPaintAtCursor(t *testing.T) {
	m := newTestModel(t, 16, 16)
	m = press(t, m, runes("x"))
	if m.world.IsEmpty(m.cursorX, m.cursorY) {
		t.Fatalf("cursor cell still empty after paint")
	}
	if got := m.world.Element(m.cursorX, m.cursorY).Name(); got != "sand" {
		t.Fatalf("painted %q, want sand", got)
	}
	m = press(t, m, runes("d"))
	if !m.world.IsEmpty(m.cursorX, m.cursorY) {
		t.Fatalf("cursor cell still occupied after erase")
	}
}

func TestPauseStopsTicks(t *testing.T) {
	m := newTestModel(t, 8, 8)
	m = press(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	if !m.paused {
		t.Fatalf("space did not pause")
	}
	before := m.world.TickCount()
	m = press(t, m, TickMsg{})
	if m.world.TickCount() != before {
		t.Fatalf("paused model advanced the world")
	}
	m = press(t, m, runes("n"))
	if m.world.TickCount() != before+1 {
		t.Fatalf("single step did not advance the world")
	}
}

func TestCursorClampsToGrid(t *testing.T) {
	m := newTestModel(t, 4, 4)
	for i := 0; i < 10; i++ {
		m = press(t, m, tea.KeyMsg{Type: tea.KeyUp})
		m = press(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	}
	if m.cursorX != 0 || m.cursorY != 0 {
		t.Fatalf("cursor = (%d,%d), want (0,0)", m.cursorX, m.cursorY)
	}
}

func TestToolAndMaterialCycling(t *testing.T) {
	m := newTestModel(t, 8, 8)
	start := m.stroke.Material
	m = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.stroke.Material == start {
		t.Fatalf("tab did not change material")
	}
	m = press(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.stroke.Material != start {
		t.Fatalf("shift+tab did not restore material")
	}
	m = press(t, m, runes("t"))
	if m.stroke.Kind != tools.Erase {
		t.Fatalf("tool = %v, want erase", m.stroke.Kind)
	}
	m = press(t, m, runes("]"))
	if m.stroke.Brush.Radius != 2 {
		t.Fatalf("radius = %d, want 2", m.stroke.Brush.Radius)
	}
}

func TestMouseMapsHalfBlocks(t *testing.T) {
	m := newTestModel(t, 10, 10)
	m.stroke.Brush.Radius = 0
	m = press(t, m, tea.MouseMsg{X: 3, Y: 2, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
	if m.world.IsEmpty(3, 4) {
		t.Fatalf("mouse paint missed cell (3,4)")
	}
}

func TestNeutralGravityToggle(t *testing.T) {
	m := newTestModel(t, 8, 8)
	m = press(t, m, runes("g"))
	if !m.world.Gravity().Config().Neutral {
		t.Fatalf("g did not enable neutral gravity")
	}
}

func TestRenderGridDimensions(t *testing.T) {
	m := newTestModel(t, 12, 7)
	out := renderGrid(m.world, m.styles, 12, 7, -1, -1)
	lines := strings.Split(out, "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines, want 4", len(lines))
	}
	for i, line := range lines {
		if w := lipgloss.Width(line); w != 12 {
			t.Fatalf("line %d width = %d, want 12", i, w)
		}
	}
}

func TestViewportClipsToTerminal(t *testing.T) {
	m := newTestModel(t, 100, 100)
	m = press(t, m, tea.WindowSizeMsg{Width: 40, Height: 12})
	cols, rows := m.viewport()
	if cols != 40 || rows != 20 {
		t.Fatalf("viewport = %dx%d, want 40x20", cols, rows)
	}
}

func TestHelpToggleReservesRows(t *testing.T) {
	m := newTestModel(t, 100, 100)
	m = press(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	_, short := m.viewport()
	m = press(t, m, runes("?"))
	if !m.help.ShowAll {
		t.Fatalf("? did not expand help")
	}
	_, full := m.viewport()
	if full >= short {
		t.Fatalf("full help should leave fewer grid rows: %d vs %d", full, short)
	}
	if !strings.Contains(m.View(), "quit") {
		t.Fatalf("help text missing from view")
	}
}
