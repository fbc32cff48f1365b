//go:build ebiten

package app

import (
	"fmt"
	"image/color"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"

	"powder/internal/render"
	"powder/internal/sims/powder"
	"powder/internal/tools"
	"powder/internal/ui"
)

// Game adapts a powder world to the ebiten.Game interface.
type Game struct {
	world   *powder.World
	cfg     Config
	logger  *log.Logger
	painter *render.GridPainter
	overlay *ui.Overlay
	hud     *ui.HUD

	materials []*powder.Material
	matIdx    int
	stroke    tools.Stroke
	mode      render.Mode

	paused   bool
	tickOnce bool
	seed     int64
}

// New constructs a Game for world.
func New(world *powder.World, cfg Config, logger *log.Logger) *Game {
	if cfg.Scale <= 0 {
		cfg.Scale = 1
	}
	if logger == nil {
		logger = log.Default().WithPrefix("app")
	}
	size := world.Size()
	g := &Game{
		world:     world,
		cfg:       cfg,
		logger:    logger,
		painter:   render.NewGridPainter(size.W, size.H),
		overlay:   ui.NewOverlay(world, cfg.Scale),
		materials: world.Registry().Materials(),
		stroke: tools.Stroke{
			Kind:     tools.Paint,
			Brush:    tools.Brush{Shape: tools.Circle, Radius: cfg.Brush},
			Strength: cfg.Strength,
		},
		seed: world.Config().Seed,
	}
	if cfg.HUDWidth > 0 {
		g.hud = ui.NewHUD(world, cfg.HUDWidth)
	}
	if id, ok := world.Registry().Lookup("sand"); ok {
		for i, m := range g.materials {
			if m.ID == id {
				g.matIdx = i
			}
		}
	}
	g.syncMaterial()
	return g
}

func (g *Game) syncMaterial() {
	if len(g.materials) > 0 {
		g.stroke.Material = g.materials[g.matIdx].ID
	}
}

// Reset reinitializes the world with seed.
func (g *Game) Reset(seed int64) {
	g.seed = seed
	g.world.Reset(seed)
	g.tickOnce = false
	g.logger.Info("world reset", "seed", seed)
}

// Update handles per-frame input and advances the world.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		g.paused = false
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.tickOnce = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.Reset(g.seed)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.Reset(time.Now().UnixNano())
	}
	g.handleTools()

	g.overlay.Update()
	if g.hud != nil {
		g.hud.Update(g.gridWidth())
	}

	if !g.paused || g.tickOnce {
		g.world.Step()
		g.tickOnce = false
	}
	return nil
}

func (g *Game) handleTools() {
	if n := len(g.materials); n > 0 && inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		if ebiten.IsKeyPressed(ebiten.KeyShift) {
			g.matIdx = (g.matIdx + n - 1) % n
		} else {
			g.matIdx = (g.matIdx + 1) % n
		}
		g.syncMaterial()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyT) {
		g.stroke.Kind = (g.stroke.Kind + 1) % tools.Kind(len(tools.Kinds()))
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyB) {
		if g.stroke.Brush.Shape == tools.Circle {
			g.stroke.Brush.Shape = tools.Square
		} else {
			g.stroke.Brush.Shape = tools.Circle
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyG) {
		grav := g.world.Gravity()
		grav.SetNeutral(!grav.Config().Neutral)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyM) {
		g.mode = (g.mode + 1) % 2
	}
	if _, wy := ebiten.Wheel(); wy > 0 {
		g.stroke.Brush.Resize(1)
	} else if wy < 0 {
		g.stroke.Brush.Resize(-1)
	}

	mx, my := ebiten.CursorPosition()
	x, y, ok := cellAt(mx, my, g.cfg.Scale, g.world.Size())
	if !ok {
		return
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight) {
		g.world.Select(x, y)
	}
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		if _, err := tools.Apply(g.world, g.stroke, x, y); err != nil {
			g.logger.Warn("stroke rejected", "err", err)
		}
	}
}

func (g *Game) gridWidth() int { return g.world.Size().W * g.cfg.Scale }

// Draw renders the grid, the overlay, the status line and the HUD.
func (g *Game) Draw(screen *ebiten.Image) {
	g.painter.Blit(screen, g.world, g.mode, g.cfg.Scale)
	g.overlay.Draw(screen)
	text.Draw(screen, g.status(), basicfont.Face7x13, 6, 16, color.RGBA{R: 230, G: 230, B: 240, A: 255})
	if g.hud != nil {
		g.hud.Draw(screen, g.gridWidth(), g.cfg.Scale)
	}
}

func (g *Game) status() string {
	name := "-"
	if len(g.materials) > 0 {
		name = g.materials[g.matIdx].Name
	}
	st := g.world.Stats()
	s := fmt.Sprintf("%s %s  %s r%d  %s view  tick %d  %d elements  %.0f fps",
		g.stroke.Kind, name, g.stroke.Brush.Shape, g.stroke.Brush.Radius, g.mode,
		st.Tick, st.Elements, ebiten.ActualFPS())
	if g.paused {
		s += "  paused"
	}
	return s
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	s := g.world.Size()
	return s.W*g.cfg.Scale + max(g.cfg.HUDWidth, 0), s.H * g.cfg.Scale
}
