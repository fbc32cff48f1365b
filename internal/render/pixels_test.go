package render

import (
	"image/color"
	"testing"
)

type fakeSource struct {
	colors  []color.RGBA
	cells   []uint8
	palette []color.RGBA
}

func (f fakeSource) Colors() []color.RGBA  { return f.colors }
func (f fakeSource) Cells() []uint8        { return f.cells }
func (f fakeSource) Palette() []color.RGBA { return f.palette }

func TestFillColorMode(t *testing.T) {
	src := fakeSource{colors: []color.RGBA{{R: 1, G: 2, B: 3, A: 4}, {R: 5, G: 6, B: 7, A: 8}}}
	buf := make([]byte, 8)
	Fill(buf, src, ModeColor)
	want := []byte{1, 2, 3, 4, 5, 6, 7, 8}
	for i := range want {
		if buf[i] != want[i] {
			t.Fatalf("buf = %v, want %v", buf, want)
		}
	}
}

func TestFillMaterialMode(t *testing.T) {
	src := fakeSource{
		cells:   []uint8{0, 1, 9},
		palette: []color.RGBA{{A: 255}, {R: 200, A: 255}},
	}
	buf := make([]byte, 12)
	Fill(buf, src, ModeMaterial)
	if buf[0] != 0 || buf[3] != 255 {
		t.Fatalf("background pixel = %v", buf[0:4])
	}
	if buf[4] != 200 {
		t.Fatalf("material pixel = %v", buf[4:8])
	}
	// out of range ids clamp to the last entry
	if buf[8] != 200 {
		t.Fatalf("clamped pixel = %v", buf[8:12])
	}
}

func TestFillPaletteEmptyClears(t *testing.T) {
	buf := []byte{9, 9, 9, 9}
	fillPaletteRGBA(buf, []uint8{3}, nil)
	for _, b := range buf {
		if b != 0 {
			t.Fatalf("buf = %v, want zeros", buf)
		}
	}
}

func TestFillColorsShortBuffer(t *testing.T) {
	buf := make([]byte, 4)
	fillColorsRGBA(buf, []color.RGBA{{R: 1}, {R: 2}})
	if buf[0] != 1 {
		t.Fatalf("buf = %v", buf)
	}
}
