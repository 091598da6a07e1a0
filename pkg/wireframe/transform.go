package wireframe

import "github.com/chazu/wireview/pkg/matrix"

// Transform multiplies every node, as a row vector, by m in place.
func (w *Wireframe) Transform(m matrix.Mat4) {
	for i := range w.nodes {
		w.nodes[i] = nodeFromRow(m.Apply(w.nodes[i].row()))
	}
}

// Center returns the mean of all current node coordinates. It is computed
// fresh on every call.
func (w *Wireframe) Center() (Vec3, error) {
	if len(w.nodes) == 0 {
		return Vec3{}, &Error{Op: "center", Item: -1, Err: ErrEmptyGeometry}
	}
	var sum Vec3
	for _, n := range w.nodes {
		sum.X += n.X
		sum.Y += n.Y
		sum.Z += n.Z
	}
	count := float64(len(w.nodes))
	return Vec3{X: sum.X / count, Y: sum.Y / count, Z: sum.Z / count}, nil
}

// CenteredTransform applies m about the current centroid c by applying the
// single composite T(-c) · m · T(c). Used for scale and rotation.
func (w *Wireframe) CenteredTransform(m matrix.Mat4) error {
	c, err := w.Center()
	if err != nil {
		return &Error{Op: "centered transform", Item: -1, Err: ErrEmptyGeometry}
	}
	w.Transform(matrix.Chain(
		matrix.Translation(-c.X, -c.Y, -c.Z),
		m,
		matrix.Translation(c.X, c.Y, c.Z),
	))
	return nil
}

// Translate moves every node by (dx, dy, dz). Translation never recenters.
func (w *Wireframe) Translate(dx, dy, dz float64) {
	w.Transform(matrix.Translation(dx, dy, dz))
}

// TranslateAxis moves every node by d along one axis.
func (w *Wireframe) TranslateAxis(axis matrix.Axis, d float64) error {
	switch axis {
	case matrix.AxisX:
		w.Translate(d, 0, 0)
	case matrix.AxisY:
		w.Translate(0, d, 0)
	case matrix.AxisZ:
		w.Translate(0, 0, d)
	default:
		return &Error{Op: "translate", Item: -1, Detail: axis.String(), Err: matrix.ErrUnknownAxis}
	}
	return nil
}

// Scale scales each axis independently about the centroid.
func (w *Wireframe) Scale(sx, sy, sz float64) error {
	return w.CenteredTransform(matrix.Scale(sx, sy, sz))
}

// ScaleUniform scales all axes by s about the centroid.
func (w *Wireframe) ScaleUniform(s float64) error {
	return w.Scale(s, s, s)
}

// Rotate rotates about the given axis through the centroid.
func (w *Wireframe) Rotate(axis matrix.Axis, radians float64) error {
	m, err := matrix.Rotate(axis, radians)
	if err != nil {
		return &Error{Op: "rotate", Item: -1, Detail: axis.String(), Err: err}
	}
	return w.CenteredTransform(m)
}
