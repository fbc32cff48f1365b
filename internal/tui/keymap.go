package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap binds the viewer actions.
type KeyMap struct {
	Up, Down, Left, Right key.Binding

	Apply    key.Binding
	Erase    key.Binding
	Select   key.Binding
	NextMat  key.Binding
	PrevMat  key.Binding
	NextTool key.Binding
	Shape    key.Binding
	Grow     key.Binding
	Shrink   key.Binding
	Gravity  key.Binding
	Pause    key.Binding
	Step     key.Binding
	Reset    key.Binding
	Help     key.Binding
	Quit     key.Binding
}

// ShortHelp returns the bindings shown in the one-line help.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextMat, k.NextTool, k.Apply, k.Erase, k.Pause, k.Help, k.Quit}
}

// FullHelp returns every binding grouped in columns.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Apply, k.Erase, k.Select, k.Gravity},
		{k.NextMat, k.PrevMat, k.NextTool, k.Shape},
		{k.Grow, k.Shrink, k.Pause, k.Step},
		{k.Reset, k.Help, k.Quit},
	}
}

// DefaultKeyMap returns the default bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Left:     key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "left")),
		Right:    key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "right")),
		Apply:    key.NewBinding(key.WithKeys("x", "enter"), key.WithHelp("x", "apply tool")),
		Erase:    key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "erase")),
		Select:   key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "select")),
		NextMat:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "material")),
		PrevMat:  key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("S-tab", "prev material")),
		NextTool: key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "tool")),
		Shape:    key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "brush shape")),
		Grow:     key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "bigger brush")),
		Shrink:   key.NewBinding(key.WithKeys("["), key.WithHelp("[", "smaller brush")),
		Gravity:  key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "neutral gravity")),
		Pause:    key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "pause")),
		Step:     key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "step")),
		Reset:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:     key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}
