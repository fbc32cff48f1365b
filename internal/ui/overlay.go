//go:build ebiten

package ui

import (
	"image/color"
	"math"

	"powder/internal/core"
	"powder/internal/field"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// FieldSource exposes the coarse fields the overlay visualizes.
type FieldSource interface {
	Size() core.Size
	Air() *field.Air
	Gravity() *field.Gravity
}

// Overlay draws the air and gravity fields on top of the grid. Keys 1-3
// toggle pressure, temperature and gravity.
type Overlay struct {
	src   FieldSource
	scale int

	showPressure    bool
	showTemperature bool
	showGravity     bool

	maskImg *ebiten.Image
	maskBuf []byte
	maskA   []float32
	maskB   []float32

	pixel   *ebiten.Image
	samples [][2]int
	span    float64
	cacheW  int
	cacheH  int
}

// NewOverlay constructs an overlay over src drawn at the given scale.
func NewOverlay(src FieldSource, scale int) *Overlay {
	if scale <= 0 {
		scale = 1
	}
	o := &Overlay{src: src, scale: scale}
	o.pixel = ebiten.NewImage(1, 1)
	o.pixel.Fill(color.White)
	return o
}

// Update toggles layers from the number keys.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit1) {
		o.showPressure = !o.showPressure
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit2) {
		o.showTemperature = !o.showTemperature
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit3) {
		o.showGravity = !o.showGravity
	}
}

// Draw renders the enabled layers onto screen.
func (o *Overlay) Draw(screen *ebiten.Image) {
	size := o.src.Size()
	total := size.W * size.H
	if total <= 0 {
		return
	}
	if o.maskImg == nil || o.maskImg.Bounds().Dx() != size.W || o.maskImg.Bounds().Dy() != size.H {
		o.maskImg = ebiten.NewImage(size.W, size.H)
		o.maskBuf = make([]byte, 4*total)
	}

	if o.showPressure {
		o.maskA, o.maskB = pressureMasks(o.maskA, o.maskB, o.src.Air(), size.W, size.H)
		o.drawMask(screen, o.maskA, color.RGBA{R: 255, G: 90, B: 60})
		o.drawMask(screen, o.maskB, color.RGBA{R: 70, G: 120, B: 255})
	}
	if o.showTemperature {
		o.maskA, o.maskB = temperatureMasks(o.maskA, o.maskB, o.src.Air(), size.W, size.H)
		o.drawMask(screen, o.maskA, color.RGBA{R: 255, G: 170, B: 40})
		o.drawMask(screen, o.maskB, color.RGBA{R: 120, G: 220, B: 255})
	}
	if o.showGravity {
		o.drawGravity(screen, size)
	}
}

func (o *Overlay) drawGravity(screen *ebiten.Image, size core.Size) {
	if o.cacheW != size.W || o.cacheH != size.H || len(o.samples) == 0 {
		var spacing int
		o.samples, spacing = sampleGrid(size.W, size.H, 360, 6, 20)
		o.span = float64(spacing * o.scale)
		o.cacheW, o.cacheH = size.W, size.H
	}

	const (
		calmThreshold = 1e-3
		maxEstimate   = 2.0
		headAngle     = math.Pi / 6
	)
	grav := o.src.Gravity()
	minLength, maxLength := o.span*0.35, o.span*0.7
	scale := float64(o.scale)
	for _, p := range o.samples {
		a := attraction(grav, p[0], p[1])
		sx := (float64(p[0]) + 0.5) * scale
		sy := (float64(p[1]) + 0.5) * scale
		mag := a.Magnitude()
		if mag < calmThreshold {
			o.drawPoint(screen, sx, sy, math.Max(scale*0.75, 1), color.RGBA{R: 90, G: 130, B: 170, A: 90})
			continue
		}
		n := a.Scale(1 / mag)
		t := clamp01(mag / maxEstimate)
		length := minLength + (maxLength-minLength)*math.Sqrt(t)
		head := math.Min(length*0.3, scale*4.5)
		tipX, tipY := sx+n.X*length*0.6, sy+n.Y*length*0.6
		tailX, tailY := sx-n.X*length*0.4, sy-n.Y*length*0.4
		thickness := math.Max(scale*(0.65+0.4*t), 1)
		col := arrowColor(t)
		o.drawLine(screen, tailX, tailY, tipX-n.X*head, tipY-n.Y*head, thickness, col)

		angle := math.Atan2(n.Y, n.X)
		o.drawLine(screen, tipX, tipY, tipX-math.Cos(angle+headAngle)*head, tipY-math.Sin(angle+headAngle)*head, thickness*0.85, col)
		o.drawLine(screen, tipX, tipY, tipX-math.Cos(angle-headAngle)*head, tipY-math.Sin(angle-headAngle)*head, thickness*0.85, col)
	}
}

func (o *Overlay) drawPoint(screen *ebiten.Image, x, y, size float64, col color.RGBA) {
	if o.pixel == nil || size <= 0 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(size, size)
	op.GeoM.Translate(x-size*0.5, y-size*0.5)
	op.ColorScale.ScaleWithColor(col)
	screen.DrawImage(o.pixel, op)
}

func (o *Overlay) drawLine(screen *ebiten.Image, x1, y1, x2, y2, thickness float64, col color.RGBA) {
	if o.pixel == nil || thickness <= 0 {
		return
	}
	dx, dy := x2-x1, y2-y1
	length := math.Hypot(dx, dy)
	if length <= 1e-4 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(length, thickness)
	op.GeoM.Translate(0, -thickness/2)
	op.GeoM.Rotate(math.Atan2(dy, dx))
	op.GeoM.Translate(x1, y1)
	op.ColorScale.ScaleWithColor(col)
	screen.DrawImage(o.pixel, op)
}

func (o *Overlay) drawMask(screen *ebiten.Image, mask []float32, tint color.RGBA) {
	if len(mask)*4 != len(o.maskBuf) {
		return
	}
	const (
		maxAlpha      = 140.0
		glowBase      = 0.35
		glowRange     = 0.65
		intensityBias = 0.75
	)
	for i, v := range mask {
		base := i * 4
		intensity := clamp01(float64(v))
		if intensity == 0 {
			o.maskBuf[base+0] = 0
			o.maskBuf[base+1] = 0
			o.maskBuf[base+2] = 0
			o.maskBuf[base+3] = 0
			continue
		}
		// premultiplied alpha
		alpha := math.Round(maxAlpha * math.Pow(intensity, intensityBias))
		glow := (glowBase + glowRange*math.Sqrt(intensity)) * alpha / 255
		o.maskBuf[base+0] = scaleColorComponent(tint.R, glow)
		o.maskBuf[base+1] = scaleColorComponent(tint.G, glow)
		o.maskBuf[base+2] = scaleColorComponent(tint.B, glow)
		o.maskBuf[base+3] = uint8(alpha)
	}
	o.maskImg.WritePixels(o.maskBuf)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(o.scale), float64(o.scale))
	screen.DrawImage(o.maskImg, op)
}

func arrowColor(t float64) color.RGBA {
	t = clamp01(t)
	return color.RGBA{
		R: uint8(math.Round(80 + 70*t)),
		G: uint8(math.Round(170 + 70*t)),
		B: uint8(math.Round(230 + 20*t)),
		A: uint8(math.Round(150 + 90*t)),
	}
}

func scaleColorComponent(value uint8, factor float64) uint8 {
	scaled := math.Round(float64(value) * factor)
	if scaled < 0 {
		return 0
	}
	if scaled > 255 {
		return 255
	}
	return uint8(scaled)
}
