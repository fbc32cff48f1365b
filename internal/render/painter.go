//go:build ebiten

package render

import "github.com/hajimehoshi/ebiten/v2"

// GridPainter uploads a world frame into an offscreen image and draws it
// scaled onto the screen.
type GridPainter struct {
	img  *ebiten.Image
	buf  []byte
	w, h int
}

// NewGridPainter allocates a painter for a w*h grid.
func NewGridPainter(w, h int) *GridPainter {
	return &GridPainter{
		img: ebiten.NewImage(w, h),
		buf: make([]byte, 4*w*h),
		w:   w,
		h:   h,
	}
}

// Blit refreshes the pixels from src and draws them at the given scale.
func (p *GridPainter) Blit(screen *ebiten.Image, src Source, mode Mode, scale int) {
	Fill(p.buf, src, mode)
	p.img.WritePixels(p.buf)
	if scale <= 0 {
		scale = 1
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(scale), float64(scale))
	screen.DrawImage(p.img, op)
}
