package kernel

import (
	"errors"
	"testing"

	"github.com/chazu/wireview/pkg/shape"
	"github.com/chazu/wireview/pkg/wireframe"
)

// stubSolid is a minimal Solid implementation for testing.
type stubSolid struct {
	minBB, maxBB [3]float64
}

func (s *stubSolid) BoundingBox() (min, max [3]float64) {
	return s.minBB, s.maxBB
}

// stubKernel proves the interface is satisfiable. Booleans and transforms
// return their first operand unchanged.
type stubKernel struct{}

func (k *stubKernel) Box(x, y, z float64) Solid {
	return &stubSolid{maxBB: [3]float64{x, y, z}}
}

func (k *stubKernel) Cylinder(height, radius float64) Solid {
	return &stubSolid{
		minBB: [3]float64{-radius, -radius, -height / 2},
		maxBB: [3]float64{radius, radius, height / 2},
	}
}

func (k *stubKernel) Union(a, _ Solid) Solid        { return a }
func (k *stubKernel) Difference(a, _ Solid) Solid   { return a }
func (k *stubKernel) Intersection(a, _ Solid) Solid { return a }

func (k *stubKernel) Translate(s Solid, _, _, _ float64) Solid { return s }
func (k *stubKernel) Rotate(s Solid, _, _, _ float64) Solid    { return s }

var _ Solid = (*stubSolid)(nil)
var _ Kernel = (*stubKernel)(nil)

func TestOutlineBox(t *testing.T) {
	var k Kernel = &stubKernel{}
	w := wireframe.New()
	if err := Outline(w, k.Box(10, 20, 30), shape.DefaultPalette); err != nil {
		t.Fatalf("Outline() error = %v", err)
	}
	if w.NodeCount() != 8 || w.EdgeCount() != 12 || w.FaceCount() != 6 {
		t.Fatalf("counts = %d/%d/%d, want 8/12/6", w.NodeCount(), w.EdgeCount(), w.FaceCount())
	}
	if err := w.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	c, _ := w.Center()
	if c != (wireframe.Vec3{X: 5, Y: 10, Z: 15}) {
		t.Errorf("Center() = %+v, want (5, 10, 15)", c)
	}
	if n := w.Node(7); n != (wireframe.Node{X: 10, Y: 20, Z: 30, W: 1}) {
		t.Errorf("max corner = %+v", n)
	}
}

func TestOutlineAppends(t *testing.T) {
	var k Kernel = &stubKernel{}
	w := wireframe.New()
	for _, s := range []Solid{k.Box(1, 1, 1), k.Cylinder(4, 2)} {
		if err := Outline(w, s, shape.DefaultPalette); err != nil {
			t.Fatal(err)
		}
	}
	if w.NodeCount() != 16 || w.FaceCount() != 12 {
		t.Fatalf("counts = %d nodes, %d faces; want 16, 12", w.NodeCount(), w.FaceCount())
	}
	if n := w.Node(8); n != (wireframe.Node{X: -2, Y: -2, Z: -2, W: 1}) {
		t.Errorf("cylinder min corner = %+v", n)
	}
}

func TestOutlineInvertedBounds(t *testing.T) {
	w := wireframe.New()
	s := &stubSolid{minBB: [3]float64{0, 5, 0}, maxBB: [3]float64{1, 1, 1}}
	err := Outline(w, s, shape.DefaultPalette)
	if !errors.Is(err, wireframe.ErrInvalidGeometry) {
		t.Fatalf("error = %v, want ErrInvalidGeometry", err)
	}
	if w.NodeCount() != 0 {
		t.Errorf("NodeCount() = %d after failed outline", w.NodeCount())
	}
}

func TestOutlineEmptyPalette(t *testing.T) {
	w := wireframe.New()
	err := Outline(w, (&stubKernel{}).Box(1, 1, 1), nil)
	if !errors.Is(err, shape.ErrEmptyPalette) {
		t.Fatalf("error = %v, want ErrEmptyPalette", err)
	}
}
