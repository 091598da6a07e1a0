package wireframe

import (
	"cmp"
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/chazu/wireview/pkg/matrix"
)

// DefaultObject names the object that receives geometry when no other object
// was chosen.
const DefaultObject = "main"

// ErrDuplicateObject is returned when a name is added to a Set twice.
var ErrDuplicateObject = errors.New("duplicate object name")

// Set is an ordered collection of named wireframes. Each member is a
// separate rigid object: centered transforms pivot every object on its own
// centroid, never on a centroid shared across objects.
//
// Objects are kept in the order they were added, which is also the order
// they are drawn in when depths tie.
type Set struct {
	names   []string
	objects map[string]*Wireframe
}

// NewSet returns an empty Set.
func NewSet() *Set {
	return &Set{objects: make(map[string]*Wireframe)}
}

// Add appends w under name. Names must be non-empty and unique.
func (s *Set) Add(name string, w *Wireframe) error {
	if name == "" {
		return &Error{Op: "add object", Item: -1, Detail: "empty name", Err: ErrInvalidGeometry}
	}
	if _, ok := s.objects[name]; ok {
		return fmt.Errorf("wireframe: add object %q: %w", name, ErrDuplicateObject)
	}
	if s.objects == nil {
		s.objects = make(map[string]*Wireframe)
	}
	s.names = append(s.names, name)
	s.objects[name] = w
	return nil
}

// Object returns the wireframe stored under name.
func (s *Set) Object(name string) (*Wireframe, bool) {
	w, ok := s.objects[name]
	return w, ok
}

// Names returns a copy of the object names in insertion order.
func (s *Set) Names() []string {
	return slices.Clone(s.names)
}

// Len returns the number of objects.
func (s *Set) Len() int { return len(s.names) }

// NodeCount returns the number of nodes across all objects.
func (s *Set) NodeCount() int {
	n := 0
	for _, name := range s.names {
		n += s.objects[name].NodeCount()
	}
	return n
}

// Translate moves every object by (dx, dy, dz).
func (s *Set) Translate(dx, dy, dz float64) {
	for _, name := range s.names {
		s.objects[name].Translate(dx, dy, dz)
	}
}

// Scale scales every object about its own centroid.
func (s *Set) Scale(sx, sy, sz float64) error {
	return s.centeredTransform("scale", matrix.Scale(sx, sy, sz))
}

// ScaleUniform scales every object by f about its own centroid.
func (s *Set) ScaleUniform(f float64) error {
	return s.Scale(f, f, f)
}

// Rotate turns every object about the given axis through its own centroid.
func (s *Set) Rotate(axis matrix.Axis, radians float64) error {
	m, err := matrix.Rotate(axis, radians)
	if err != nil {
		return &Error{Op: "rotate", Item: -1, Detail: axis.String(), Err: err}
	}
	return s.centeredTransform("rotate", m)
}

// centeredTransform applies m to each non-empty object about that object's
// centroid. Objects without nodes are skipped; a Set with no nodes at all
// fails with ErrEmptyGeometry and is left unchanged.
func (s *Set) centeredTransform(op string, m matrix.Mat4) error {
	if s.NodeCount() == 0 {
		return &Error{Op: op, Item: -1, Err: ErrEmptyGeometry}
	}
	for _, name := range s.names {
		w := s.objects[name]
		if w.NodeCount() == 0 {
			continue
		}
		if err := w.CenteredTransform(m); err != nil {
			return fmt.Errorf("object %q: %w", name, err)
		}
	}
	return nil
}

// Validate validates every object and names the first one that fails.
func (s *Set) Validate() error {
	for _, name := range s.names {
		if err := s.objects[name].Validate(); err != nil {
			return fmt.Errorf("object %q: %w", name, err)
		}
	}
	return nil
}

// ObjectFace is a paint-ready face tagged with the object it belongs to.
type ObjectFace struct {
	Object string
	PaintFace
}

// PaintFaces merges the faces of all objects into one farthest-first list.
// Ties keep object order, then face order within the object.
func (s *Set) PaintFaces() ([]ObjectFace, error) {
	var out []ObjectFace
	for _, name := range s.names {
		faces, err := s.objects[name].PaintFaces()
		if err != nil {
			return nil, fmt.Errorf("object %q: %w", name, err)
		}
		for _, f := range faces {
			out = append(out, ObjectFace{Object: name, PaintFace: f})
		}
	}
	slices.SortStableFunc(out, func(a, b ObjectFace) int {
		return cmp.Compare(b.Depth, a.Depth)
	})
	return out, nil
}

// Dump writes the node and edge listing of every object, each under a
// header line with its name.
func (s *Set) Dump(out io.Writer) error {
	for _, name := range s.names {
		if _, err := fmt.Fprintf(out, "=== %s ===\n", name); err != nil {
			return err
		}
		w := s.objects[name]
		if err := w.DumpNodes(out); err != nil {
			return err
		}
		if err := w.DumpEdges(out); err != nil {
			return err
		}
	}
	return nil
}
