package image

import (
	"math"

	"golang.org/x/image/math/f64"
)

// Affine represents a 2D affine transformation matrix.
//
// The transformation is represented as a 3x3 matrix:
//
//	| a  b  c |
//	| d  e  f |
//	| 0  0  1 |
//
// Coordinates are in pixel space with y pointing down.
type Affine struct {
	a, b, c float64 // First row: x' = ax + by + c
	d, e, f float64 // Second row: y' = dx + ey + f
}

// Identity returns the identity transformation (no change).
func Identity() Affine {
	return Affine{
		a: 1, b: 0, c: 0,
		d: 0, e: 1, f: 0,
	}
}

// Translate returns a translation transformation that shifts points by (tx, ty).
func Translate(tx, ty float64) Affine {
	return Affine{
		a: 1, b: 0, c: tx,
		d: 0, e: 1, f: ty,
	}
}

// Rotation returns a rotation by angle radians around the origin.
// With y pointing down, positive angles turn the picture clockwise.
//
// Sine and cosine are rounded to 15 decimal places so that exact angles
// produce exact matrices and canvas sizes computed from them do not grow
// by a pixel because of rounding noise.
func Rotation(angle float64) Affine {
	cos := round15(math.Cos(angle))
	sin := round15(math.Sin(angle))
	return Affine{
		a: cos, b: -sin, c: 0,
		d: sin, e: cos, f: 0,
	}
}

// Multiply returns the result of multiplying this affine transform by another.
// The result applies 'other' first, then 'this'.
// This is equivalent to matrix multiplication: this * other.
func (a Affine) Multiply(other Affine) Affine {
	return Affine{
		a: a.a*other.a + a.b*other.d,
		b: a.a*other.b + a.b*other.e,
		c: a.a*other.c + a.b*other.f + a.c,
		d: a.d*other.a + a.e*other.d,
		e: a.d*other.b + a.e*other.e,
		f: a.d*other.c + a.e*other.f + a.f,
	}
}

// TransformPoint applies the affine transformation to point (x, y).
// Returns the transformed coordinates (x', y').
func (a Affine) TransformPoint(x, y float64) (float64, float64) {
	return a.a*x + a.b*y + a.c, a.d*x + a.e*y + a.f
}

// Aff3 returns the matrix in the row-major layout used by
// golang.org/x/image/draw.Transformer.
func (a Affine) Aff3() f64.Aff3 {
	return f64.Aff3{a.a, a.b, a.c, a.d, a.e, a.f}
}

func round15(v float64) float64 {
	return math.Round(v*1e15) / 1e15
}
