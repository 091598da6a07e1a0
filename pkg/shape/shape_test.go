package shape

import (
	"errors"
	"testing"

	"github.com/chazu/wireview/pkg/wireframe"
)

func TestAddCube(t *testing.T) {
	w := wireframe.New()
	if err := AddCube(w, wireframe.Vec3{X: 50, Y: 50, Z: 50}, 200, DefaultPalette); err != nil {
		t.Fatalf("AddCube() error = %v", err)
	}
	if w.NodeCount() != 8 || w.EdgeCount() != 12 || w.FaceCount() != 6 {
		t.Fatalf("counts = %d/%d/%d, want 8/12/6", w.NodeCount(), w.EdgeCount(), w.FaceCount())
	}
	if err := w.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	c, _ := w.Center()
	if c != (wireframe.Vec3{X: 150, Y: 150, Z: 150}) {
		t.Errorf("Center() = %+v, want (150, 150, 150)", c)
	}
	if n := w.Node(5); n != (wireframe.Node{X: 250, Y: 50, Z: 250, W: 1}) {
		t.Errorf("Node(5) = %+v", n)
	}
}

// Every edge must join corners that differ in exactly one coordinate, and
// every face must have all four corners on one plane.
func TestCuboidTopology(t *testing.T) {
	w := wireframe.New()
	if err := AddCuboid(w, wireframe.Vec3{}, wireframe.Vec3{X: 1, Y: 2, Z: 3}, DefaultPalette); err != nil {
		t.Fatal(err)
	}
	for i, e := range w.Edges() {
		a, b := w.Node(e.Start), w.Node(e.End)
		diff := 0
		if a.X != b.X {
			diff++
		}
		if a.Y != b.Y {
			diff++
		}
		if a.Z != b.Z {
			diff++
		}
		if diff != 1 {
			t.Errorf("edge %d joins %+v and %+v", i, a, b)
		}
	}
	for i, f := range w.Faces() {
		n := [4]wireframe.Node{w.Node(f[0]), w.Node(f[1]), w.Node(f[2]), w.Node(f[3])}
		sameX := n[0].X == n[1].X && n[1].X == n[2].X && n[2].X == n[3].X
		sameY := n[0].Y == n[1].Y && n[1].Y == n[2].Y && n[2].Y == n[3].Y
		sameZ := n[0].Z == n[1].Z && n[1].Z == n[2].Z && n[2].Z == n[3].Z
		if !sameX && !sameY && !sameZ {
			t.Errorf("face %d is not axis-planar: %v", i, n)
		}
	}
}

func TestAddCuboidOffsetsIndices(t *testing.T) {
	w := wireframe.New()
	if err := AddCube(w, wireframe.Vec3{}, 1, DefaultPalette); err != nil {
		t.Fatal(err)
	}
	if err := AddCube(w, wireframe.Vec3{X: 5}, 1, DefaultPalette[:2]); err != nil {
		t.Fatal(err)
	}
	if w.NodeCount() != 16 {
		t.Fatalf("NodeCount() = %d, want 16", w.NodeCount())
	}
	for _, e := range w.Edges()[12:] {
		if e.Start < 8 || e.End < 8 {
			t.Errorf("second cube edge %v refers to first cube", e)
		}
	}
	colors := w.Colors()
	if colors[6] != DefaultPalette[0] || colors[7] != DefaultPalette[1] || colors[8] != DefaultPalette[0] {
		t.Errorf("short palette did not wrap: %v", colors[6:])
	}
}

func TestAddCuboidEmptyPalette(t *testing.T) {
	w := wireframe.New()
	if err := AddCube(w, wireframe.Vec3{}, 1, nil); !errors.Is(err, ErrEmptyPalette) {
		t.Fatalf("error = %v, want ErrEmptyPalette", err)
	}
	if w.NodeCount() != 0 {
		t.Errorf("NodeCount() = %d, want 0", w.NodeCount())
	}
}

func TestDemoCube(t *testing.T) {
	w, err := DemoCube(DefaultPalette)
	if err != nil {
		t.Fatalf("DemoCube() error = %v", err)
	}
	if n := w.Node(0); n != (wireframe.Node{X: 50, Y: 50, Z: 50, W: 1}) {
		t.Errorf("Node(0) = %+v", n)
	}
	if n := w.Node(7); n != (wireframe.Node{X: 250, Y: 250, Z: 250, W: 1}) {
		t.Errorf("Node(7) = %+v", n)
	}
}

func TestDemoScene(t *testing.T) {
	s, err := DemoScene(DefaultPalette)
	if err != nil {
		t.Fatalf("DemoScene() error = %v", err)
	}
	if names := s.Names(); len(names) != 1 || names[0] != DemoName {
		t.Fatalf("Names() = %v, want [%s]", names, DemoName)
	}
	if s.NodeCount() != 8 {
		t.Errorf("NodeCount() = %d, want 8", s.NodeCount())
	}
	if _, err := DemoScene(nil); !errors.Is(err, ErrEmptyPalette) {
		t.Errorf("DemoScene(nil) error = %v, want ErrEmptyPalette", err)
	}
}
