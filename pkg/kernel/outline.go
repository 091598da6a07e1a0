package kernel

import (
	"fmt"

	"github.com/chazu/wireview/pkg/shape"
	"github.com/chazu/wireview/pkg/wireframe"
)

// Outline appends the axis-aligned bounding box of s to w as a cuboid with
// one palette color per face.
func Outline(w *wireframe.Wireframe, s Solid, palette []wireframe.Color) error {
	min, max := s.BoundingBox()
	for i := 0; i < 3; i++ {
		if min[i] > max[i] {
			return fmt.Errorf("kernel: outline: inverted bounds on axis %d: %v > %v: %w",
				i, min[i], max[i], wireframe.ErrInvalidGeometry)
		}
	}
	lo := wireframe.Vec3{X: min[0], Y: min[1], Z: min[2]}
	hi := wireframe.Vec3{X: max[0], Y: max[1], Z: max[2]}
	if err := shape.AddCuboid(w, lo, hi, palette); err != nil {
		return fmt.Errorf("kernel: outline: %w", err)
	}
	return nil
}
