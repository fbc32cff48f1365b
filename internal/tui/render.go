package tui

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"powder/internal/sims/powder"
)

const halfBlock = "▀"

var (
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Background(lipgloss.Color("237")).Bold(true)
	hintStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	cursorColor = color.RGBA{R: 255, G: 255, B: 255, A: 255}
)

// cellPair is the color of the upper and lower grid cell in one terminal cell.
type cellPair struct {
	top, bottom color.RGBA
}

// styleCache keeps one lipgloss style per color pair seen so far.
type styleCache struct {
	styles map[cellPair]lipgloss.Style
}

func newStyleCache() *styleCache {
	return &styleCache{styles: make(map[cellPair]lipgloss.Style)}
}

func (c *styleCache) get(p cellPair) lipgloss.Style {
	if s, ok := c.styles[p]; ok {
		return s
	}
	s := lipgloss.NewStyle().
		Foreground(hexColor(p.top)).
		Background(hexColor(p.bottom))
	c.styles[p] = s
	return s
}

func hexColor(c color.RGBA) lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B))
}

// renderGrid draws the top-left cols x rows of the world. Adjacent terminal
// cells sharing a color pair are written as one styled run.
func renderGrid(w *powder.World, cache *styleCache, cols, rows, cursorX, cursorY int) string {
	size := w.Size()
	colors := w.Colors()
	if cols > size.W {
		cols = size.W
	}
	if rows > size.H {
		rows = size.H
	}
	at := func(x, y int) color.RGBA {
		if y >= rows || y >= size.H {
			return color.RGBA{A: 255}
		}
		if x == cursorX && y == cursorY {
			return cursorColor
		}
		return colors[y*size.W+x]
	}

	var sb strings.Builder
	sb.Grow(cols * (rows/2 + 1) * 4)
	for y := 0; y < rows; y += 2 {
		if y > 0 {
			sb.WriteByte('\n')
		}
		x := 0
		for x < cols {
			pair := cellPair{top: at(x, y), bottom: at(x, y+1)}
			n := 0
			for x < cols && (cellPair{top: at(x, y), bottom: at(x, y+1)}) == pair {
				n++
				x++
			}
			sb.WriteString(cache.get(pair).Render(strings.Repeat(halfBlock, n)))
		}
	}
	return sb.String()
}
