//go:build ebiten

package ui

import (
	"image"
	"image/color"
	"strings"

	"powder/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"
)

// ParamSource is what the HUD edits: the world tunables plus the selected
// element.
type ParamSource interface {
	Name() string
	Size() core.Size
	core.ParameterProvider
	core.ParameterControlsProvider
	core.IntParameterSetter
	core.FloatParameterSetter
}

var (
	hudBackground = color.RGBA{R: 16, G: 16, B: 20, A: 255}
	hudTitle      = color.RGBA{R: 200, G: 200, B: 210, A: 255}
	hudInfo       = color.RGBA{R: 160, G: 170, B: 180, A: 255}
	hudLabel      = color.RGBA{R: 220, G: 220, B: 230, A: 255}
	hudMuted      = color.RGBA{R: 160, G: 160, B: 170, A: 255}
	hudButton     = color.RGBA{R: 54, G: 56, B: 64, A: 255}
	hudButtonOff  = color.RGBA{R: 32, G: 34, B: 40, A: 255}
	hudGlyph      = color.RGBA{R: 230, G: 230, B: 240, A: 255}
	hudGlyphOff   = color.RGBA{R: 120, G: 120, B: 130, A: 255}
)

const (
	panelPadding   = 12
	titleY         = panelPadding + 18
	titleGap       = 14
	infoLineHeight = 16
	rowHeight      = 36
	buttonSize     = 24
	buttonGap      = 6
	labelBaseline  = 24
)

// HUD is the element editor panel drawn to the right of the grid.
type HUD struct {
	src     ParamSource
	width   int
	title   string
	canvas  *ebiten.Image
	originX int

	snapshot core.ParameterSnapshot
	info     []string
	rows     []controlState
	rowsKey  string
}

// NewHUD constructs a HUD for src with the given panel width.
func NewHUD(src ParamSource, width int) *HUD {
	title := "Controls"
	if name := src.Name(); name != "" {
		title = strings.ToUpper(name[:1]) + name[1:] + " Controls"
	}
	return &HUD{src: src, width: max(width, 0), title: title}
}

// Update pulls a fresh snapshot and handles clicks on the +/- buttons.
// originX is where the panel starts on screen.
func (h *HUD) Update(originX int) {
	if h == nil {
		return
	}
	h.originX = originX
	h.snapshot = h.src.Parameters()
	h.info = infoLines(h.snapshot)

	controls := h.src.ParameterControls()
	if key := controlKeys(controls); key != h.rowsKey || len(controls) != len(h.rows) {
		h.rows = newControlStates(controls)
		h.rowsKey = key
	}
	h.layout()
	refreshValues(h.rows, h.snapshot)

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		mx, my := ebiten.CursorPosition()
		h.click(mx-h.originX, my)
	}
}

// Draw paints the panel at offsetX, matching the grid height at scale.
func (h *HUD) Draw(screen *ebiten.Image, offsetX int, scale int) {
	if h == nil || h.width == 0 {
		return
	}
	height := h.src.Size().H * max(scale, 1)
	if height <= 0 {
		return
	}
	if h.canvas == nil || h.canvas.Bounds().Dy() != height {
		h.canvas = ebiten.NewImage(h.width, height)
	}
	h.canvas.Fill(hudBackground)
	h.paint()

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(offsetX), 0)
	screen.DrawImage(h.canvas, op)
}

func (h *HUD) click(x, y int) {
	if x < 0 {
		return
	}
	for i := range h.rows {
		r := &h.rows[i]
		if pointInRect(x, y, r.minusRect) {
			h.nudge(r, -1)
			return
		}
		if pointInRect(x, y, r.plusRect) {
			h.nudge(r, 1)
			return
		}
	}
}

func (h *HUD) nudge(r *controlState, dir int) {
	target, ok := adjustTarget(r, dir)
	if !ok {
		return
	}
	switch r.control.Type {
	case core.ParamTypeInt:
		if h.src.SetIntParameter(r.control.Key, int(target)) {
			r.intValue, r.floatValue = int(target), target
		}
	case core.ParamTypeFloat:
		if h.src.SetFloatParameter(r.control.Key, target) {
			r.floatValue = target
			r.value = formatFloat(r.control, target)
		}
	}
}

func (h *HUD) firstRowY() int {
	return titleY + titleGap + len(h.info)*infoLineHeight
}

// layout places each row below the info lines with its buttons flush right.
func (h *HUD) layout() {
	y0 := h.firstRowY()
	right := h.width - panelPadding
	for i := range h.rows {
		r := &h.rows[i]
		r.top = y0 + i*rowHeight
		by := r.top + (rowHeight-buttonSize)/2
		r.plusRect = image.Rect(right-buttonSize, by, right, by+buttonSize)
		r.minusRect = r.plusRect.Sub(image.Pt(buttonSize+buttonGap, 0))
	}
}

func (h *HUD) paint() {
	face := basicfont.Face7x13
	text.Draw(h.canvas, h.title, face, panelPadding, titleY, hudTitle)
	for i, line := range h.info {
		text.Draw(h.canvas, line, face, panelPadding, titleY+titleGap+(i+1)*infoLineHeight-4, hudInfo)
	}
	if len(h.rows) == 0 {
		text.Draw(h.canvas, "Right click an element to edit it", face, panelPadding, h.firstRowY()+labelBaseline, hudMuted)
		return
	}
	for i := range h.rows {
		h.paintRow(&h.rows[i])
	}
}

func (h *HUD) paintRow(r *controlState) {
	face := basicfont.Face7x13
	y := r.top + labelBaseline
	text.Draw(h.canvas, r.control.Label, face, panelPadding, y, hudLabel)

	valueColor := hudLabel
	if !r.hasValue {
		valueColor = hudMuted
	}
	w := text.BoundString(face, r.value).Dx()
	text.Draw(h.canvas, r.value, face, r.minusRect.Min.X-buttonGap-w, y, valueColor)

	_, canDec := adjustTarget(r, -1)
	_, canInc := adjustTarget(r, 1)
	h.paintButton(r.minusRect, "-", canDec)
	h.paintButton(r.plusRect, "+", canInc)
}

func (h *HUD) paintButton(rect image.Rectangle, glyph string, enabled bool) {
	fill, ink := hudButton, hudGlyph
	if !enabled {
		fill, ink = hudButtonOff, hudGlyphOff
	}
	vector.DrawFilledRect(h.canvas, float32(rect.Min.X), float32(rect.Min.Y),
		float32(rect.Dx()), float32(rect.Dy()), fill, false)

	face := basicfont.Face7x13
	b := text.BoundString(face, glyph)
	text.Draw(h.canvas, glyph, face, rect.Min.X+(rect.Dx()-b.Dx())/2, rect.Max.Y-(rect.Dy()-b.Dy())/2, ink)
}
