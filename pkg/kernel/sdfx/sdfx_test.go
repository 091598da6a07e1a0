package sdfx

import (
	"math"
	"testing"

	"github.com/chazu/wireview/pkg/kernel"
	"github.com/chazu/wireview/pkg/shape"
	"github.com/chazu/wireview/pkg/wireframe"
)

const tol = 0.5

func checkBounds(t *testing.T, s kernel.Solid, wantMin, wantMax [3]float64) {
	t.Helper()
	min, max := s.BoundingBox()
	for i := 0; i < 3; i++ {
		if math.Abs(min[i]-wantMin[i]) > tol {
			t.Errorf("min[%d] = %f, expected ~%f", i, min[i], wantMin[i])
		}
		if math.Abs(max[i]-wantMax[i]) > tol {
			t.Errorf("max[%d] = %f, expected ~%f", i, max[i], wantMax[i])
		}
	}
}

func TestBoxAtOrigin(t *testing.T) {
	k := New()
	checkBounds(t, k.Box(100, 50, 25), [3]float64{0, 0, 0}, [3]float64{100, 50, 25})
}

func TestCylinderCentered(t *testing.T) {
	k := New()
	checkBounds(t, k.Cylinder(50, 10), [3]float64{-10, -10, -25}, [3]float64{10, 10, 25})
}

func TestTranslate(t *testing.T) {
	k := New()
	box := k.Translate(k.Box(10, 10, 10), 100, 200, 300)
	checkBounds(t, box, [3]float64{100, 200, 300}, [3]float64{110, 210, 310})
}

func TestUnion(t *testing.T) {
	k := New()
	u := k.Union(k.Box(50, 50, 50), k.Translate(k.Box(50, 50, 50), 30, 0, 0))
	checkBounds(t, u, [3]float64{0, 0, 0}, [3]float64{80, 50, 50})
}

func TestIntersection(t *testing.T) {
	k := New()
	box1 := k.Box(100, 100, 100)
	box2 := k.Translate(k.Box(100, 100, 100), 50, 0, 0)
	min, max := k.Intersection(box1, box2).BoundingBox()
	// The intersection can only be bounded tighter than either operand.
	if min[0] < -tol || max[0] > 150+tol {
		t.Errorf("intersection x bounds = [%f, %f]", min[0], max[0])
	}
}

func TestDifferenceKeepsOuterBounds(t *testing.T) {
	k := New()
	diff := k.Difference(k.Box(100, 100, 100), k.Cylinder(120, 20))
	checkBounds(t, diff, [3]float64{0, 0, 0}, [3]float64{100, 100, 100})
}

func TestRotate(t *testing.T) {
	k := New()
	// A long box along X turned a quarter about Z extends along Y instead.
	min, max := k.Rotate(k.Box(100, 10, 10), 0, 0, math.Pi/2).BoundingBox()
	if xExtent := max[0] - min[0]; math.Abs(xExtent-10) > 1 {
		t.Errorf("rotated X extent = %f, expected ~10", xExtent)
	}
	if yExtent := max[1] - min[1]; math.Abs(yExtent-100) > 1 {
		t.Errorf("rotated Y extent = %f, expected ~100", yExtent)
	}
}

func TestOutlineOfPlacedBox(t *testing.T) {
	k := New()
	w := wireframe.New()
	box := k.Translate(k.Box(200, 200, 200), 50, 50, 50)
	if err := kernel.Outline(w, box, shape.DefaultPalette); err != nil {
		t.Fatalf("Outline() error = %v", err)
	}
	c, err := w.Center()
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(c.X-150) > tol || math.Abs(c.Y-150) > tol || math.Abs(c.Z-150) > tol {
		t.Errorf("Center() = %+v, want ~(150, 150, 150)", c)
	}
	if w.FaceCount() != 6 || len(w.Colors()) != 6 {
		t.Errorf("faces = %d, colors = %d; want 6 and 6", w.FaceCount(), len(w.Colors()))
	}
}
