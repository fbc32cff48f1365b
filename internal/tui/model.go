package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"powder/internal/sims/powder"
	"powder/internal/tools"
)

// Options configures the viewer.
type Options struct {
	TickRate int
	Seed     int64
	Logger   *log.Logger
}

// Model is the Bubble Tea model driving a powder world.
type Model struct {
	world  *powder.World
	logger *log.Logger
	opts   Options

	materials []*powder.Material
	matIdx    int
	stroke    tools.Stroke

	cursorX, cursorY int
	width, height    int

	keys KeyMap
	help help.Model

	paused   bool
	quitting bool
	styles   *styleCache
}

// NewModel wraps world in a viewer. The brush starts as a small circle
// painting the first non-fire material.
func NewModel(world *powder.World, opts Options) Model {
	if opts.TickRate <= 0 {
		opts.TickRate = 30
	}
	if opts.Logger == nil {
		opts.Logger = log.Default().WithPrefix("tui")
	}
	mats := world.Registry().Materials()
	m := Model{
		world:     world,
		logger:    opts.Logger,
		opts:      opts,
		materials: mats,
		stroke: tools.Stroke{
			Kind:     tools.Paint,
			Brush:    tools.Brush{Shape: tools.Circle, Radius: 1},
			Strength: 1,
		},
		keys:   DefaultKeyMap(),
		help:   help.New(),
		styles: newStyleCache(),
	}
	size := world.Size()
	m.cursorX, m.cursorY = size.W/2, size.H/4
	for i, mat := range mats {
		if mat.Name == "sand" {
			m.matIdx = i
		}
	}
	m.syncMaterial()
	return m
}

func (m *Model) syncMaterial() {
	if len(m.materials) == 0 {
		return
	}
	m.stroke.Material = m.materials[m.matIdx].ID
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.opts.TickRate)
}

// Update handles input and ticks.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		return m.handleMouse(msg)
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		return m, nil
	case TickMsg:
		return m.handleTick()
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	size := m.world.Size()
	k := m.keys
	switch {
	case key.Matches(msg, k.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, k.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, k.Pause):
		m.paused = !m.paused
	case key.Matches(msg, k.Step):
		if m.paused {
			m.world.Step()
		}
	case key.Matches(msg, k.Reset):
		m.world.Reset(m.opts.Seed)
		m.logger.Info("world reset", "seed", m.world.Config().Seed)
	case key.Matches(msg, k.Up):
		m.cursorY = max(m.cursorY-1, 0)
	case key.Matches(msg, k.Down):
		m.cursorY = min(m.cursorY+1, size.H-1)
	case key.Matches(msg, k.Left):
		m.cursorX = max(m.cursorX-1, 0)
	case key.Matches(msg, k.Right):
		m.cursorX = min(m.cursorX+1, size.W-1)
	case key.Matches(msg, k.NextMat):
		if len(m.materials) > 0 {
			m.matIdx = (m.matIdx + 1) % len(m.materials)
			m.syncMaterial()
		}
	case key.Matches(msg, k.PrevMat):
		if len(m.materials) > 0 {
			m.matIdx = (m.matIdx + len(m.materials) - 1) % len(m.materials)
			m.syncMaterial()
		}
	case key.Matches(msg, k.NextTool):
		m.stroke.Kind = (m.stroke.Kind + 1) % tools.Kind(len(tools.Kinds()))
	case key.Matches(msg, k.Shape):
		if m.stroke.Brush.Shape == tools.Circle {
			m.stroke.Brush.Shape = tools.Square
		} else {
			m.stroke.Brush.Shape = tools.Circle
		}
	case key.Matches(msg, k.Shrink):
		m.stroke.Brush.Resize(-1)
	case key.Matches(msg, k.Grow):
		m.stroke.Brush.Resize(1)
	case key.Matches(msg, k.Apply):
		m.apply(m.stroke, m.cursorX, m.cursorY)
	case key.Matches(msg, k.Erase):
		erase := m.stroke
		erase.Kind = tools.Erase
		m.apply(erase, m.cursorX, m.cursorY)
	case key.Matches(msg, k.Select):
		m.world.Select(m.cursorX, m.cursorY)
	case key.Matches(msg, k.Gravity):
		grav := m.world.Gravity()
		grav.SetNeutral(!grav.Config().Neutral)
	}
	return m, nil
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	x, y := msg.X, msg.Y*2
	if !m.world.InBounds(x, y) {
		return m, nil
	}
	m.cursorX, m.cursorY = x, y
	switch msg.Button {
	case tea.MouseButtonLeft:
		if msg.Action == tea.MouseActionPress || msg.Action == tea.MouseActionMotion {
			m.apply(m.stroke, x, y)
		}
	case tea.MouseButtonRight:
		if msg.Action == tea.MouseActionPress {
			m.world.Select(x, y)
		}
	case tea.MouseButtonWheelUp:
		m.stroke.Brush.Resize(1)
	case tea.MouseButtonWheelDown:
		m.stroke.Brush.Resize(-1)
	}
	return m, nil
}

func (m Model) apply(s tools.Stroke, x, y int) {
	if _, err := tools.Apply(m.world, s, x, y); err != nil {
		m.logger.Warn("stroke rejected", "err", err)
	}
}

func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if !m.paused {
		m.world.Step()
	}
	return m, tickCmd(m.opts.TickRate)
}

// View draws the visible part of the grid and a status bar.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	cols, rows := m.viewport()
	return renderGrid(m.world, m.styles, cols, rows, m.cursorX, m.cursorY) + "\n" + m.status()
}

// viewport returns how many grid columns and rows fit on screen above the
// status bar and help.
func (m Model) viewport() (int, int) {
	size := m.world.Size()
	cols, rows := size.W, size.H
	reserved := 2
	if m.help.ShowAll {
		reserved = 1 + len(m.keys.FullHelp()[0])
	}
	if m.width > 0 && m.width < cols {
		cols = m.width
	}
	if m.height > reserved && (m.height-reserved)*2 < rows {
		rows = (m.height - reserved) * 2
	}
	return cols, rows
}

func (m Model) status() string {
	st := m.world.Stats()
	name := "-"
	if len(m.materials) > 0 {
		name = m.materials[m.matIdx].Name
	}
	state := "running"
	if m.paused {
		state = "paused"
	}
	line := fmt.Sprintf("%s %s | %s r%d | tick %d | %d elements | %.1f K",
		m.stroke.Kind, name, m.stroke.Brush.Shape, m.stroke.Brush.Radius,
		st.Tick, st.Elements, st.MeanTemperature)
	if m.world.Gravity().Config().Neutral {
		line += " | neutral gravity"
	}
	line += " | " + state
	info := m.help.View(m.keys)
	if sel := m.world.Selected(); sel != nil {
		info = hintStyle.Render(fmt.Sprintf("%s at (%d,%d)  T=%.1f K  v=%.2f  m=%.2f  life=%.0f",
			sel.Name(), sel.X, sel.Y, sel.Temperature, sel.Speed, sel.Mass, sel.Life))
	}
	return statusStyle.Render(line) + "\n" + info
}

// Run starts the viewer in the alternate screen with mouse support.
func Run(world *powder.World, opts Options) error {
	p := tea.NewProgram(
		NewModel(world, opts),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	_, err := p.Run()
	return err
}
