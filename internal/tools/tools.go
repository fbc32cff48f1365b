// Package tools applies brush strokes to a powder world: painting and erasing
// elements, and heating or cooling whatever sits under the brush.
package tools

import (
	"errors"
	"fmt"
	"strings"

	"powder/internal/sims/powder"
)

// Kind selects what a stroke does to the covered cells.
type Kind int

const (
	Paint Kind = iota
	Erase
	Heat
	Cool
)

var kindNames = [...]string{"paint", "erase", "heat", "cool"}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Kinds lists the tools in cycling order.
func Kinds() []Kind { return []Kind{Paint, Erase, Heat, Cool} }

// ParseKind resolves a tool name.
func ParseKind(s string) (Kind, error) {
	for i, name := range kindNames {
		if strings.EqualFold(s, name) {
			return Kind(i), nil
		}
	}
	return 0, fmt.Errorf("tools: unknown tool %q", s)
}

// HeatPerStrength is the heat a full-strength heat or cool stroke adds to each
// covered element per application.
const HeatPerStrength = 10000

// Shape enumerates brush footprints.
type Shape int

const (
	Circle Shape = iota
	Square
)

func (s Shape) String() string {
	if s == Square {
		return "square"
	}
	return "circle"
}

// Brush is a footprint centred on a cell.
type Brush struct {
	Shape  Shape
	Radius int
}

// MaxRadius bounds Resize.
const MaxRadius = 32

// Resize grows or shrinks the brush by delta, clamped to [0, MaxRadius].
func (b *Brush) Resize(delta int) {
	b.Radius += delta
	if b.Radius < 0 {
		b.Radius = 0
	}
	if b.Radius > MaxRadius {
		b.Radius = MaxRadius
	}
}

// Cells calls fn for every cell the brush covers around (cx, cy). Cells are
// visited row by row so painting is reproducible.
func (b Brush) Cells(cx, cy int, fn func(x, y int)) {
	r := b.Radius
	if r < 0 {
		r = 0
	}
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			if b.Shape == Circle && dx*dx+dy*dy > r*r {
				continue
			}
			fn(cx+dx, cy+dy)
		}
	}
}

// Stroke is one application of a tool.
type Stroke struct {
	Kind     Kind
	Brush    Brush
	Material powder.MaterialID
	// Strength scales heat and cool strokes.
	Strength float64
}

// Apply runs the stroke centred on (cx, cy) and returns the number of cells it
// changed. Occupied or off-grid cells are skipped when painting; only an
// unknown material aborts the stroke.
func Apply(w *powder.World, s Stroke, cx, cy int) (int, error) {
	changed := 0
	var err error
	s.Brush.Cells(cx, cy, func(x, y int) {
		if err != nil || !w.InBounds(x, y) {
			return
		}
		switch s.Kind {
		case Paint:
			if !w.IsEmpty(x, y) {
				return
			}
			if _, cerr := w.CreateElement(s.Material, x, y); cerr != nil {
				if errors.Is(cerr, powder.ErrInvalidMaterial) {
					err = cerr
				}
				return
			}
			changed++
		case Erase:
			if w.RemoveElement(x, y) {
				changed++
			}
		case Heat:
			if w.AddHeat(x, y, s.Strength*HeatPerStrength) {
				changed++
			}
		case Cool:
			if w.AddHeat(x, y, -s.Strength*HeatPerStrength) {
				changed++
			}
		}
	})
	if err != nil {
		return changed, fmt.Errorf("tools: %s stroke: %w", s.Kind, err)
	}
	return changed, nil
}
