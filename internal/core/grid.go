package core

// Grid stores a fixed 2D array of cell values in row-major order. The zero
// value of T marks an empty cell.
type Grid[T comparable] struct {
	W, H int
	data []T
}

// NewGrid allocates a grid with the given dimensions.
func NewGrid[T comparable](w, h int) *Grid[T] {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	return &Grid[T]{W: w, H: h, data: make([]T, w*h)}
}

// Cells exposes the backing slice so callers can read values directly.
func (g *Grid[T]) Cells() []T { return g.data }

// Index returns the linear slice index for coordinates (x, y).
func (g *Grid[T]) Index(x, y int) int { return y*g.W + x }

// Coords converts a linear index back into coordinates.
func (g *Grid[T]) Coords(idx int) (int, int) { return idx % g.W, idx / g.W }

// InBounds reports whether (x, y) lies inside the grid.
func (g *Grid[T]) InBounds(x, y int) bool {
	return x >= 0 && x < g.W && y >= 0 && y < g.H
}

// Get returns the value stored at (x, y). Callers must bounds-check first.
func (g *Grid[T]) Get(x, y int) T {
	if !g.InBounds(x, y) {
		panic("core: grid access out of bounds")
	}
	return g.data[y*g.W+x]
}

// IsZero reports whether (x, y) holds the zero value.
func (g *Grid[T]) IsZero(x, y int) bool {
	var zero T
	return g.Get(x, y) == zero
}

// Set stores v at (x, y).
func (g *Grid[T]) Set(x, y int, v T) {
	if !g.InBounds(x, y) {
		panic("core: grid access out of bounds")
	}
	g.data[y*g.W+x] = v
}

// Clear resets (x, y) to the zero value.
func (g *Grid[T]) Clear(x, y int) {
	var zero T
	g.Set(x, y, zero)
}

// Swap exchanges the contents of two valid cells.
func (g *Grid[T]) Swap(x1, y1, x2, y2 int) {
	if !g.InBounds(x1, y1) || !g.InBounds(x2, y2) {
		panic("core: grid access out of bounds")
	}
	i, j := y1*g.W+x1, y2*g.W+x2
	g.data[i], g.data[j] = g.data[j], g.data[i]
}

// Reset fills the grid with zero values.
func (g *Grid[T]) Reset() {
	var zero T
	for i := range g.data {
		g.data[i] = zero
	}
}
