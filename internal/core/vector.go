package core

import "math"

// Vec2 is a 2D float vector in grid space; +Y points down.
type Vec2 struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// V2 is shorthand for constructing a Vec2.
func V2(x, y float64) Vec2 { return Vec2{X: x, Y: y} }

// Add returns v+o.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

// Sub returns v-o.
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

// Scale multiplies both components by s.
func (v Vec2) Scale(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }

// Div divides both components by s.
func (v Vec2) Div(s float64) Vec2 { return Vec2{v.X / s, v.Y / s} }

// Dot returns the dot product.
func (v Vec2) Dot(o Vec2) float64 { return v.X*o.X + v.Y*o.Y }

// Neg flips the vector.
func (v Vec2) Neg() Vec2 { return Vec2{-v.X, -v.Y} }

// IsZero reports whether both components are zero.
func (v Vec2) IsZero() bool { return v.X == 0 && v.Y == 0 }

// Magnitude returns the Euclidean length.
func (v Vec2) Magnitude() float64 { return math.Hypot(v.X, v.Y) }

// MagnitudeSq returns the squared length.
func (v Vec2) MagnitudeSq() float64 { return v.X*v.X + v.Y*v.Y }

// Round converts the vector to the nearest cell coordinates.
func (v Vec2) Round() (int, int) { return int(math.Round(v.X)), int(math.Round(v.Y)) }

// Normalize returns the unit vector, or the zero vector for zero input.
func (v Vec2) Normalize() Vec2 {
	m := v.Magnitude()
	if m == 0 {
		return Vec2{}
	}
	return Vec2{v.X / m, v.Y / m}
}

// PerpendicularCW rotates the vector a quarter turn clockwise on screen.
func (v Vec2) PerpendicularCW() Vec2 { return Vec2{-v.Y, v.X} }
