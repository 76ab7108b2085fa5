// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package edgeaa

import "math"

// Point represents a 2D point or vector in path space.
// Coordinates are float32 so slices of points upload to the GPU unchanged.
type Point struct {
	X, Y float32
}

// Pt is a convenience function to create a Point.
func Pt(x, y float32) Point {
	return Point{X: x, Y: y}
}

// Add returns the sum of two points (vector addition).
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns the difference of two points (vector subtraction).
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Mul returns the point scaled by a scalar.
func (p Point) Mul(s float32) Point {
	return Point{X: p.X * s, Y: p.Y * s}
}

// Length returns the length of the vector.
func (p Point) Length() float32 {
	return float32(math.Hypot(float64(p.X), float64(p.Y)))
}

// Size represents a width and height in pixels.
type Size struct {
	Width, Height int
}

// Sz is a convenience function to create a Size.
func Sz(w, h int) Size {
	return Size{Width: w, Height: h}
}

// Scale returns the size multiplied component-wise by (sx, sy).
func (s Size) Scale(sx, sy int) Size {
	return Size{Width: s.Width * sx, Height: s.Height * sy}
}

// IsEmpty reports whether either dimension is zero or negative.
func (s Size) IsEmpty() bool {
	return s.Width <= 0 || s.Height <= 0
}

// Area returns the pixel area of the size.
func (s Size) Area() int {
	if s.IsEmpty() {
		return 0
	}
	return s.Width * s.Height
}

// Rect is an axis-aligned rectangle in path space.
type Rect struct {
	MinX, MinY, MaxX, MaxY float32
}

// Union returns the smallest rectangle containing both r and q.
func (r Rect) Union(q Rect) Rect {
	return Rect{
		MinX: minf(r.MinX, q.MinX),
		MinY: minf(r.MinY, q.MinY),
		MaxX: maxf(r.MaxX, q.MaxX),
		MaxY: maxf(r.MaxY, q.MaxY),
	}
}

// ExtendTo grows the rectangle to include the point p.
func (r Rect) ExtendTo(p Point) Rect {
	return Rect{
		MinX: minf(r.MinX, p.X),
		MinY: minf(r.MinY, p.Y),
		MaxX: maxf(r.MaxX, p.X),
		MaxY: maxf(r.MaxY, p.Y),
	}
}

// Width returns the horizontal extent of the rectangle.
func (r Rect) Width() float32 {
	return r.MaxX - r.MinX
}

// Height returns the vertical extent of the rectangle.
func (r Rect) Height() float32 {
	return r.MaxY - r.MinY
}

// Transform is a 2D affine transform.
// Matrix layout (column-major, matching the WGSL shader side):
//
//	| A C E |
//	| B D F |
//	| 0 0 1 |
type Transform struct {
	A, B, C, D, E, F float32
}

// IdentityTransform returns the identity transform.
func IdentityTransform() Transform {
	return Transform{A: 1, D: 1}
}

// TranslateTransform returns a pure translation.
func TranslateTransform(tx, ty float32) Transform {
	return Transform{A: 1, D: 1, E: tx, F: ty}
}

// ScaleTransform returns a pure scale.
func ScaleTransform(sx, sy float32) Transform {
	return Transform{A: sx, D: sy}
}

// Mul returns the transform that applies u first and then t.
func (t Transform) Mul(u Transform) Transform {
	return Transform{
		A: t.A*u.A + t.C*u.B,
		B: t.B*u.A + t.D*u.B,
		C: t.A*u.C + t.C*u.D,
		D: t.B*u.C + t.D*u.D,
		E: t.A*u.E + t.C*u.F + t.E,
		F: t.B*u.E + t.D*u.F + t.F,
	}
}

// Apply transforms the point p.
func (t Transform) Apply(p Point) Point {
	return Point{
		X: t.A*p.X + t.C*p.Y + t.E,
		Y: t.B*p.X + t.D*p.Y + t.F,
	}
}

func minf(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func maxf(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}
