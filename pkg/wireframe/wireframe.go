// Package wireframe holds a single rigid 3D object as homogeneous nodes,
// edges and quad faces, transforms it in place with 4x4 matrices and
// orders its faces for painter's-algorithm fill. A Set groups several
// named wireframes that move together but turn about their own centers.
//
// A Wireframe is not safe for concurrent use. Callers that render from an
// event loop must apply a frame's transforms before reading geometry.
package wireframe

import "fmt"

// Node is a homogeneous point. W is 1 for every node added through AddNodes.
type Node struct {
	X, Y, Z, W float64
}

func (n Node) row() [4]float64 { return [4]float64{n.X, n.Y, n.Z, n.W} }

func nodeFromRow(r [4]float64) Node { return Node{X: r[0], Y: r[1], Z: r[2], W: r[3]} }

// Vec3 is a plain 3D coordinate.
type Vec3 struct {
	X, Y, Z float64
}

// Edge joins two nodes by index.
type Edge struct {
	Start, End int
}

// Face is a planar quad given as four node indices in winding order.
type Face [4]int

// Color is an RGB triple. Face i is painted with color i.
type Color struct {
	R, G, B uint8
}

// Hex formats the color as #rrggbb.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Wireframe is the geometry store. The zero value is ready to use.
//
// Nodes are append-only; transforms rewrite their coordinates in place.
// Edges and faces refer to nodes by index and are immutable once added.
// Nothing is ever removed: rebuilding means constructing a new Wireframe.
type Wireframe struct {
	nodes  []Node
	edges  []Edge
	faces  []Face
	colors []Color
}

// New returns an empty Wireframe.
func New() *Wireframe {
	return &Wireframe{}
}

// AddNodes appends each point as a homogeneous node with W=1, preserving
// order. Every point must have exactly three coordinates. The batch is
// validated before anything is appended.
func (w *Wireframe) AddNodes(points [][]float64) error {
	for i, p := range points {
		if len(p) != 3 {
			return &Error{
				Op:     "add nodes",
				Item:   i,
				Detail: fmt.Sprintf("point has %d coordinates, want 3", len(p)),
				Err:    ErrInvalidGeometry,
			}
		}
	}
	for _, p := range points {
		w.nodes = append(w.nodes, Node{X: p[0], Y: p[1], Z: p[2], W: 1})
	}
	return nil
}

// AddEdges appends edges verbatim. Indices are checked eagerly against the
// node count at call time; an out-of-range index rejects the whole batch.
func (w *Wireframe) AddEdges(edges []Edge) error {
	for i, e := range edges {
		for _, idx := range [2]int{e.Start, e.End} {
			if err := w.checkIndex("add edges", i, idx); err != nil {
				return err
			}
		}
	}
	w.edges = append(w.edges, edges...)
	return nil
}

// AddFaces appends quads verbatim, with the same index contract as AddEdges.
func (w *Wireframe) AddFaces(faces []Face) error {
	for i, f := range faces {
		for _, idx := range f {
			if err := w.checkIndex("add faces", i, idx); err != nil {
				return err
			}
		}
	}
	w.faces = append(w.faces, faces...)
	return nil
}

// AddColors appends face colors. The count is not checked against the
// faces here; PaintFaces and Validate enforce that contract.
func (w *Wireframe) AddColors(colors []Color) {
	w.colors = append(w.colors, colors...)
}

func (w *Wireframe) checkIndex(op string, item, idx int) error {
	if idx < 0 || idx >= len(w.nodes) {
		return &Error{
			Op:     op,
			Item:   item,
			Detail: fmt.Sprintf("index %d out of range [0, %d)", idx, len(w.nodes)),
			Err:    ErrInvalidIndex,
		}
	}
	return nil
}

// NodeCount returns the number of nodes.
func (w *Wireframe) NodeCount() int { return len(w.nodes) }

// EdgeCount returns the number of edges.
func (w *Wireframe) EdgeCount() int { return len(w.edges) }

// FaceCount returns the number of faces.
func (w *Wireframe) FaceCount() int { return len(w.faces) }

// Node returns node i. It panics if i is out of range.
func (w *Wireframe) Node(i int) Node { return w.nodes[i] }

// Nodes returns a copy of the current node coordinates.
func (w *Wireframe) Nodes() []Node {
	return append([]Node(nil), w.nodes...)
}

// Edges returns a copy of the edge list.
func (w *Wireframe) Edges() []Edge {
	return append([]Edge(nil), w.edges...)
}

// Faces returns a copy of the face list.
func (w *Wireframe) Faces() []Face {
	return append([]Face(nil), w.faces...)
}

// Colors returns a copy of the color list.
func (w *Wireframe) Colors() []Color {
	return append([]Color(nil), w.colors...)
}

// Validate re-checks every stored index and the one-color-per-face contract.
func (w *Wireframe) Validate() error {
	for i, e := range w.edges {
		for _, idx := range [2]int{e.Start, e.End} {
			if err := w.checkIndex("validate edges", i, idx); err != nil {
				return err
			}
		}
	}
	for i, f := range w.faces {
		for _, idx := range f {
			if err := w.checkIndex("validate faces", i, idx); err != nil {
				return err
			}
		}
	}
	return w.checkColors("validate")
}

func (w *Wireframe) checkColors(op string) error {
	if len(w.colors) != len(w.faces) {
		return &Error{
			Op:     op,
			Item:   -1,
			Detail: fmt.Sprintf("%d faces, %d colors", len(w.faces), len(w.colors)),
			Err:    ErrColorCountMismatch,
		}
	}
	return nil
}
