package wireframe

import (
	"cmp"
	"slices"
)

// FaceDepth pairs a face index with the mean Z of its four nodes.
// The viewer looks down +Z, so a larger depth is farther away.
type FaceDepth struct {
	Face  int
	Depth float64
}

// FaceDepths returns one entry per face, in face insertion order.
func (w *Wireframe) FaceDepths() []FaceDepth {
	depths := make([]FaceDepth, len(w.faces))
	for i, f := range w.faces {
		z := w.nodes[f[0]].Z + w.nodes[f[1]].Z + w.nodes[f[2]].Z + w.nodes[f[3]].Z
		depths[i] = FaceDepth{Face: i, Depth: z / 4.0}
	}
	return depths
}

// PaintOrder returns face indices farthest first. Faces of equal depth keep
// their insertion order.
func (w *Wireframe) PaintOrder() []int {
	depths := w.FaceDepths()
	slices.SortStableFunc(depths, func(a, b FaceDepth) int {
		return cmp.Compare(b.Depth, a.Depth)
	})
	order := make([]int, len(depths))
	for i, d := range depths {
		order[i] = d.Face
	}
	return order
}

// PaintFace is a face ready for filling: its corners, color and depth.
type PaintFace struct {
	Face    int
	Corners [4]Node
	Color   Color
	Depth   float64
}

// PaintFaces returns the faces in paint order, each paired with its color.
// It fails with ErrColorCountMismatch unless there is exactly one color per
// face.
func (w *Wireframe) PaintFaces() ([]PaintFace, error) {
	if err := w.checkColors("paint faces"); err != nil {
		return nil, err
	}
	depths := w.FaceDepths()
	slices.SortStableFunc(depths, func(a, b FaceDepth) int {
		return cmp.Compare(b.Depth, a.Depth)
	})
	out := make([]PaintFace, len(depths))
	for i, d := range depths {
		f := w.faces[d.Face]
		out[i] = PaintFace{
			Face:    d.Face,
			Corners: [4]Node{w.nodes[f[0]], w.nodes[f[1]], w.nodes[f[2]], w.nodes[f[3]]},
			Color:   w.colors[d.Face],
			Depth:   d.Depth,
		}
	}
	return out, nil
}
