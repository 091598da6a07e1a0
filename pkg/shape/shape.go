// Package shape adds ready-made solids to a wireframe.
package shape

import (
	"errors"

	"github.com/chazu/wireview/pkg/wireframe"
)

// DefaultPalette gives each cuboid face a distinct color.
var DefaultPalette = []wireframe.Color{
	{R: 0x4A, G: 0x90, B: 0xD9},
	{R: 0xE6, G: 0x7E, B: 0x22},
	{R: 0x2E, G: 0xCC, B: 0x71},
	{R: 0x9B, G: 0x59, B: 0xB6},
	{R: 0xE7, G: 0x4C, B: 0x3C},
	{R: 0x1A, G: 0xBC, B: 0x9C},
}

// ErrEmptyPalette is returned when a cuboid is requested without colors.
var ErrEmptyPalette = errors.New("shape: palette is empty")

// Corner nodes are laid out x-major over {min,max}: index = 4x + 2y + z.
var (
	cuboidEdges = []wireframe.Edge{
		{Start: 0, End: 4}, {Start: 1, End: 5}, {Start: 2, End: 6}, {Start: 3, End: 7}, // along x
		{Start: 0, End: 1}, {Start: 2, End: 3}, {Start: 4, End: 5}, {Start: 6, End: 7}, // along z
		{Start: 0, End: 2}, {Start: 1, End: 3}, {Start: 4, End: 6}, {Start: 5, End: 7}, // along y
	}
	cuboidFaces = []wireframe.Face{
		{0, 1, 3, 2}, // x = min
		{4, 6, 7, 5}, // x = max
		{0, 4, 5, 1}, // y = min
		{2, 3, 7, 6}, // y = max
		{0, 2, 6, 4}, // z = min
		{1, 5, 7, 3}, // z = max
	}
)

// AddCuboid appends an axis-aligned box spanning min..max: 8 nodes, 12 edges
// and 6 faces. Face colors are taken from palette in order, wrapping around
// if it has fewer than six entries. Indices are offset past any nodes
// already in w.
func AddCuboid(w *wireframe.Wireframe, min, max wireframe.Vec3, palette []wireframe.Color) error {
	if len(palette) == 0 {
		return ErrEmptyPalette
	}
	base := w.NodeCount()

	var pts [][]float64
	for _, x := range []float64{min.X, max.X} {
		for _, y := range []float64{min.Y, max.Y} {
			for _, z := range []float64{min.Z, max.Z} {
				pts = append(pts, []float64{x, y, z})
			}
		}
	}
	if err := w.AddNodes(pts); err != nil {
		return err
	}

	edges := make([]wireframe.Edge, len(cuboidEdges))
	for i, e := range cuboidEdges {
		edges[i] = wireframe.Edge{Start: e.Start + base, End: e.End + base}
	}
	if err := w.AddEdges(edges); err != nil {
		return err
	}

	faces := make([]wireframe.Face, len(cuboidFaces))
	colors := make([]wireframe.Color, len(cuboidFaces))
	for i, f := range cuboidFaces {
		faces[i] = wireframe.Face{f[0] + base, f[1] + base, f[2] + base, f[3] + base}
		colors[i] = palette[i%len(palette)]
	}
	if err := w.AddFaces(faces); err != nil {
		return err
	}
	w.AddColors(colors)
	return nil
}

// AddCube appends a cube with its minimum corner at origin.
func AddCube(w *wireframe.Wireframe, origin wireframe.Vec3, size float64, palette []wireframe.Color) error {
	max := wireframe.Vec3{X: origin.X + size, Y: origin.Y + size, Z: origin.Z + size}
	return AddCuboid(w, origin, max, palette)
}

// DemoCube returns a wireframe holding the classic 200-unit cube that spans
// 50..250 on every axis.
func DemoCube(palette []wireframe.Color) (*wireframe.Wireframe, error) {
	w := wireframe.New()
	if err := AddCube(w, wireframe.Vec3{X: 50, Y: 50, Z: 50}, 200, palette); err != nil {
		return nil, err
	}
	return w, nil
}

// DemoName is the object name DemoScene gives its cube.
const DemoName = "cube"

// DemoScene returns a set whose only object is the demo cube.
func DemoScene(palette []wireframe.Color) (*wireframe.Set, error) {
	w, err := DemoCube(palette)
	if err != nil {
		return nil, err
	}
	s := wireframe.NewSet()
	if err := s.Add(DemoName, w); err != nil {
		return nil, err
	}
	return s, nil
}
