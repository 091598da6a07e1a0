// Package project maps wireframe geometry onto the 2D screen plane with an
// orthographic projection and assembles the per-frame draw lists a renderer
// consumes.
package project

import (
	"fmt"
	"math"

	"github.com/chazu/wireview/pkg/wireframe"
)

// Point is a logical screen position. Rounding to device pixels is left to
// the renderer.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Round returns the point snapped to the nearest integer pixel.
func (p Point) Round() (x, y int) {
	return int(math.Round(p.X)), int(math.Round(p.Y))
}

// Line is a projected edge.
type Line struct {
	From Point `json:"from"`
	To   Point `json:"to"`
}

// Polygon is a projected face with its fill color. Face indexes into the
// faces of the named Object. Depth is the face's mean Z, kept so the
// renderer can tell how the order was chosen.
type Polygon struct {
	Object string          `json:"object"`
	Face   int             `json:"face"`
	Points [4]Point        `json:"points"`
	Color  wireframe.Color `json:"color"`
	Depth  float64         `json:"depth"`
}

// Frame is everything needed to draw one view of a wireframe. Polygons are
// in paint order, farthest first.
type Frame struct {
	Points   []Point   `json:"points"`
	Lines    []Line    `json:"lines"`
	Polygons []Polygon `json:"polygons"`
}

// Options selects which layers Frame fills in.
type Options struct {
	Nodes bool
	Edges bool
	Faces bool
}

// Ortho is an orthographic projector. The depth axis is dropped and the
// result is shifted by the offset.
type Ortho struct {
	OffsetX, OffsetY float64
}

// Project maps a node to the screen plane.
func (o Ortho) Project(n wireframe.Node) Point {
	return Point{X: n.X + o.OffsetX, Y: n.Y + o.OffsetY}
}

// Frame projects every object of s into one set of draw lists. Points and
// lines follow object order; polygons from all objects are merged farthest
// first. Faces are only drawn when each object has exactly one color per
// face; a mismatch is reported rather than guessed.
func (o Ortho) Frame(s *wireframe.Set, opts Options) (Frame, error) {
	f := Frame{
		Points:   []Point{},
		Lines:    []Line{},
		Polygons: []Polygon{},
	}

	if opts.Faces {
		faces, err := s.PaintFaces()
		if err != nil {
			return Frame{}, fmt.Errorf("project: %w", err)
		}
		for _, pf := range faces {
			poly := Polygon{Object: pf.Object, Face: pf.Face, Color: pf.Color, Depth: pf.Depth}
			for k, c := range pf.Corners {
				poly.Points[k] = o.Project(c)
			}
			f.Polygons = append(f.Polygons, poly)
		}
	}

	for _, name := range s.Names() {
		w, _ := s.Object(name)
		nodes := w.Nodes()
		projected := make([]Point, len(nodes))
		for i, n := range nodes {
			projected[i] = o.Project(n)
		}
		if opts.Edges {
			for _, e := range w.Edges() {
				f.Lines = append(f.Lines, Line{From: projected[e.Start], To: projected[e.End]})
			}
		}
		if opts.Nodes {
			f.Points = append(f.Points, projected...)
		}
	}

	return f, nil
}
