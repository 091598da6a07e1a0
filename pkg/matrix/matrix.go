// Package matrix builds 4x4 homogeneous transform matrices.
//
// Matrices are row-major and act on row vectors from the right:
// p' = p · M. Translation therefore lives in the bottom row. All
// constructors are pure and allocate nothing but their return value.
package matrix

import (
	"errors"
	"fmt"
	"math"
)

// Mat4 is a row-major 4x4 matrix. m[row][col].
type Mat4 [4][4]float64

// ErrUnknownAxis is returned when an Axis value is outside the enumeration.
var ErrUnknownAxis = errors.New("unknown axis")

// Axis selects one of the three coordinate axes.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	default:
		return fmt.Sprintf("Axis(%d)", int(a))
	}
}

// ParseAxis converts "x", "y" or "z" (either case) to an Axis.
func ParseAxis(s string) (Axis, error) {
	switch s {
	case "x", "X":
		return AxisX, nil
	case "y", "Y":
		return AxisY, nil
	case "z", "Z":
		return AxisZ, nil
	}
	return 0, fmt.Errorf("%w %q, expected x, y, or z", ErrUnknownAxis, s)
}

// Identity returns the identity matrix.
func Identity() Mat4 {
	return Mat4{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}
}

// Translation returns a matrix that adds (dx, dy, dz) to a point and
// leaves w unchanged.
func Translation(dx, dy, dz float64) Mat4 {
	return Mat4{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
		{dx, dy, dz, 1},
	}
}

// Scale returns a diagonal scaling matrix about the origin. A zero factor
// collapses its axis; that is allowed.
func Scale(sx, sy, sz float64) Mat4 {
	return Mat4{
		{sx, 0, 0, 0},
		{0, sy, 0, 0},
		{0, 0, sz, 0},
		{0, 0, 0, 1},
	}
}

// RotateX returns a rotation about the x axis through the origin.
// A row vector (0, 1, 0) rotated by +π/2 lands on (0, 0, -1).
func RotateX(radians float64) Mat4 {
	c, s := math.Cos(radians), math.Sin(radians)
	return Mat4{
		{1, 0, 0, 0},
		{0, c, -s, 0},
		{0, s, c, 0},
		{0, 0, 0, 1},
	}
}

// RotateY returns a rotation about the y axis through the origin.
// A row vector (1, 0, 0) rotated by +π/2 lands on (0, 0, 1).
func RotateY(radians float64) Mat4 {
	c, s := math.Cos(radians), math.Sin(radians)
	return Mat4{
		{c, 0, s, 0},
		{0, 1, 0, 0},
		{-s, 0, c, 0},
		{0, 0, 0, 1},
	}
}

// RotateZ returns a rotation about the z axis through the origin.
// A row vector (1, 0, 0) rotated by +π/2 lands on (0, -1, 0).
func RotateZ(radians float64) Mat4 {
	c, s := math.Cos(radians), math.Sin(radians)
	return Mat4{
		{c, -s, 0, 0},
		{s, c, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}
}

// Rotate dispatches to RotateX, RotateY or RotateZ.
func Rotate(axis Axis, radians float64) (Mat4, error) {
	switch axis {
	case AxisX:
		return RotateX(radians), nil
	case AxisY:
		return RotateY(radians), nil
	case AxisZ:
		return RotateZ(radians), nil
	}
	return Mat4{}, fmt.Errorf("rotate: %w %v", ErrUnknownAxis, axis)
}

// Mul returns the product a · b.
func Mul(a, b Mat4) Mat4 {
	var out Mat4
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			out[row][col] = a[row][0]*b[0][col] +
				a[row][1]*b[1][col] +
				a[row][2]*b[2][col] +
				a[row][3]*b[3][col]
		}
	}
	return out
}

// Chain multiplies the matrices left to right. Because points are row
// vectors, the first matrix is the first one applied. Chain() is the
// identity.
func Chain(ms ...Mat4) Mat4 {
	out := Identity()
	for _, m := range ms {
		out = Mul(out, m)
	}
	return out
}

// Apply returns the row vector v multiplied by m.
func (m Mat4) Apply(v [4]float64) [4]float64 {
	var out [4]float64
	for col := 0; col < 4; col++ {
		out[col] = v[0]*m[0][col] + v[1]*m[1][col] + v[2]*m[2][col] + v[3]*m[3][col]
	}
	return out
}

// Equal reports whether every element of m and o differs by at most tol.
func (m Mat4) Equal(o Mat4, tol float64) bool {
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			if math.Abs(m[row][col]-o[row][col]) > tol {
				return false
			}
		}
	}
	return true
}
