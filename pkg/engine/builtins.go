package engine

import (
	"fmt"
	"strings"

	"github.com/chazu/wireview/pkg/kernel"
	"github.com/chazu/wireview/pkg/matrix"
	"github.com/chazu/wireview/pkg/shape"
	"github.com/chazu/wireview/pkg/wireframe"
	zygo "github.com/glycerine/zygomys/zygo"
)

// ---------------------------------------------------------------------------
// Custom Sexp types for passing Go values through the zygomys environment
// ---------------------------------------------------------------------------

// sexpVec3 wraps a wireframe.Vec3.
type sexpVec3 struct {
	vec wireframe.Vec3
}

func (v *sexpVec3) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(vec3 %g %g %g)", v.vec.X, v.vec.Y, v.vec.Z)
}
func (v *sexpVec3) Type() *zygo.RegisteredType { return nil }

// sexpSolid wraps a kernel.Solid so it can flow from box/cylinder through
// place and the booleans into outline.
type sexpSolid struct {
	solid kernel.Solid
	desc  string
}

func (s *sexpSolid) SexpString(ps *zygo.PrintState) string {
	return "(" + s.desc + ")"
}
func (s *sexpSolid) Type() *zygo.RegisteredType { return nil }

// ---------------------------------------------------------------------------
// Keyword argument parsing
// ---------------------------------------------------------------------------

// isKW reports whether s is a preprocessed keyword and returns its name.
func isKW(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", false
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], true
	}
	return "", false
}

// kwArgs holds the result of parsing a mixed positional+keyword argument list.
type kwArgs struct {
	kw         map[string]zygo.Sexp
	order      []string
	positional []zygo.Sexp
}

// parseArgs separates args into keyword and positional arguments, keeping
// the order keywords appeared in. A keyword may appear only once.
func parseArgs(args []zygo.Sexp) (kwArgs, error) {
	result := kwArgs{kw: make(map[string]zygo.Sexp)}
	i := 0
	for i < len(args) {
		name, ok := isKW(args[i])
		if !ok {
			result.positional = append(result.positional, args[i])
			i++
			continue
		}
		if _, seen := result.kw[name]; seen {
			return kwArgs{}, fmt.Errorf("duplicate keyword :%s", name)
		}
		result.order = append(result.order, name)
		if i+1 < len(args) {
			result.kw[name] = args[i+1]
			i += 2
		} else {
			// Trailing keyword with no value.
			result.kw[name] = zygo.SexpNull
			i++
		}
	}
	return result, nil
}

// ---------------------------------------------------------------------------
// Value extraction helpers
// ---------------------------------------------------------------------------

// toFloat64 extracts a float64 from a Sexp (SexpInt or SexpFloat).
func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %T (%s)", s, s.SexpString(nil))
}

// toInt extracts an integer. Floats are rejected rather than truncated.
func toInt(s zygo.Sexp) (int, error) {
	if v, ok := s.(*zygo.SexpInt); ok {
		return int(v.Val), nil
	}
	return 0, fmt.Errorf("expected integer, got %T (%s)", s, s.SexpString(nil))
}

// toKeywordString extracts a keyword name or plain string from a Sexp.
func toKeywordString(s zygo.Sexp) (string, error) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", fmt.Errorf("expected keyword or string, got %T (%s)", s, s.SexpString(nil))
	}
	return strings.TrimPrefix(str.S, kwPrefix), nil
}

// toVec3 extracts a Vec3 from a sexpVec3.
func toVec3(s zygo.Sexp) (wireframe.Vec3, error) {
	if v, ok := s.(*sexpVec3); ok {
		return v.vec, nil
	}
	return wireframe.Vec3{}, fmt.Errorf("expected vec3, got %T (%s)", s, s.SexpString(nil))
}

// toSolid extracts a kernel.Solid from a sexpSolid.
func toSolid(s zygo.Sexp) (kernel.Solid, error) {
	if v, ok := s.(*sexpSolid); ok {
		return v.solid, nil
	}
	return nil, fmt.Errorf("expected solid, got %T (%s)", s, s.SexpString(nil))
}

// sexpListToSlice converts a SexpPair (Lisp list) or SexpArray to a Go slice.
func sexpListToSlice(s zygo.Sexp) ([]zygo.Sexp, error) {
	switch v := s.(type) {
	case *zygo.SexpPair:
		return zygo.ListToArray(v)
	case *zygo.SexpArray:
		return v.Val, nil
	case *zygo.SexpSentinel:
		if v == zygo.SexpNull {
			return nil, nil
		}
	}
	return nil, fmt.Errorf("expected list or array, got %T", s)
}

// tuple reads a list or array of exactly n items through conv.
func tuple[T any](s zygo.Sexp, n int, conv func(zygo.Sexp) (T, error)) ([]T, error) {
	items, err := sexpListToSlice(s)
	if err != nil {
		return nil, err
	}
	if len(items) != n {
		return nil, fmt.Errorf("expected %d elements, got %d", n, len(items))
	}
	out := make([]T, n)
	for i, item := range items {
		if out[i], err = conv(item); err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
	}
	return out, nil
}

func sexpInt(n int) zygo.Sexp {
	return &zygo.SexpInt{Val: int64(n)}
}

// ---------------------------------------------------------------------------
// Scene state
// ---------------------------------------------------------------------------

// scene is the set a script is building plus the object its geometry and
// transform builtins currently act on.
type scene struct {
	set *wireframe.Set
	cur *wireframe.Wireframe
}

// current returns the active object, creating wireframe.DefaultObject on
// first use.
func (sc *scene) current() (*wireframe.Wireframe, error) {
	if sc.cur == nil {
		if err := sc.start(wireframe.DefaultObject); err != nil {
			return nil, err
		}
	}
	return sc.cur, nil
}

// start adds an empty object called name and makes it current.
func (sc *scene) start(name string) error {
	w := wireframe.New()
	if err := sc.set.Add(name, w); err != nil {
		return err
	}
	sc.cur = w
	return nil
}

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

// registerBuiltins installs the scene builtins into a zygomys environment.
// They append geometry to the current object of sc and transform it in
// place as the script runs.
//
// Source code must be preprocessed with preprocessSource() before evaluation so
// that :keyword tokens are converted to recognizable string literals.
func registerBuiltins(env *zygo.Zlisp, sc *scene, k kernel.Kernel, palette []wireframe.Color) {

	// -----------------------------------------------------------------------
	// (object "name") or (object :name) starts a new, empty object. The
	// geometry and transforms that follow apply to it alone.
	// -----------------------------------------------------------------------
	env.AddFunction("object", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("object requires exactly 1 name, got %d", len(args))
		}
		objName, err := toKeywordString(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("object: %w", err)
		}
		if err := sc.start(objName); err != nil {
			return zygo.SexpNull, fmt.Errorf("object: %w", err)
		}
		return &zygo.SexpStr{S: objName}, nil
	})

	// -----------------------------------------------------------------------
	// (nodes [x y z] [x y z] ...) -> index of the first new node
	// -----------------------------------------------------------------------
	env.AddFunction("nodes", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		w, err := sc.current()
		if err != nil {
			return zygo.SexpNull, err
		}
		base := w.NodeCount()
		points := make([][]float64, 0, len(args))
		for i, a := range args {
			items, err := sexpListToSlice(a)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("nodes: point %d: %w", i, err)
			}
			p := make([]float64, len(items))
			for j, item := range items {
				if p[j], err = toFloat64(item); err != nil {
					return zygo.SexpNull, fmt.Errorf("nodes: point %d: %w", i, err)
				}
			}
			points = append(points, p)
		}
		if err := w.AddNodes(points); err != nil {
			return zygo.SexpNull, err
		}
		return sexpInt(base), nil
	})

	// -----------------------------------------------------------------------
	// (edges [start end] ...)
	// -----------------------------------------------------------------------
	env.AddFunction("edges", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		w, err := sc.current()
		if err != nil {
			return zygo.SexpNull, err
		}
		edges := make([]wireframe.Edge, 0, len(args))
		for i, a := range args {
			ix, err := tuple(a, 2, toInt)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("edges: edge %d: %w", i, err)
			}
			edges = append(edges, wireframe.Edge{Start: ix[0], End: ix[1]})
		}
		if err := w.AddEdges(edges); err != nil {
			return zygo.SexpNull, err
		}
		return sexpInt(w.EdgeCount()), nil
	})

	// -----------------------------------------------------------------------
	// (faces [a b c d] ...)
	// -----------------------------------------------------------------------
	env.AddFunction("faces", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		w, err := sc.current()
		if err != nil {
			return zygo.SexpNull, err
		}
		faces := make([]wireframe.Face, 0, len(args))
		for i, a := range args {
			ix, err := tuple(a, 4, toInt)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("faces: face %d: %w", i, err)
			}
			faces = append(faces, wireframe.Face{ix[0], ix[1], ix[2], ix[3]})
		}
		if err := w.AddFaces(faces); err != nil {
			return zygo.SexpNull, err
		}
		return sexpInt(w.FaceCount()), nil
	})

	// -----------------------------------------------------------------------
	// (colors [r g b] ...) with channels in 0..255
	// -----------------------------------------------------------------------
	env.AddFunction("colors", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		w, err := sc.current()
		if err != nil {
			return zygo.SexpNull, err
		}
		colors := make([]wireframe.Color, 0, len(args))
		for i, a := range args {
			rgb, err := tuple(a, 3, toInt)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("colors: color %d: %w", i, err)
			}
			for _, c := range rgb {
				if c < 0 || c > 255 {
					return zygo.SexpNull, fmt.Errorf("colors: color %d: channel %d out of range 0..255", i, c)
				}
			}
			colors = append(colors, wireframe.Color{R: uint8(rgb[0]), G: uint8(rgb[1]), B: uint8(rgb[2])})
		}
		w.AddColors(colors)
		return sexpInt(len(w.Colors())), nil
	})

	// -----------------------------------------------------------------------
	// (vec3 1 2 3)
	// -----------------------------------------------------------------------
	env.AddFunction("vec3", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 3 {
			return zygo.SexpNull, fmt.Errorf("vec3 requires exactly 3 arguments, got %d", len(args))
		}
		var c [3]float64
		for i, a := range args {
			f, err := toFloat64(a)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("vec3: %s: %w", matrix.Axis(i), err)
			}
			c[i] = f
		}
		return &sexpVec3{vec: wireframe.Vec3{X: c[0], Y: c[1], Z: c[2]}}, nil
	})

	// -----------------------------------------------------------------------
	// (cube :at (vec3 50 50 50) :size 200) -> index of its first node
	// -----------------------------------------------------------------------
	env.AddFunction("cube", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa, err := parseArgs(args)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("%s: %w", name, err)
		}
		v, ok := pa.kw["size"]
		if !ok {
			return zygo.SexpNull, fmt.Errorf("cube requires :size")
		}
		size, err := toFloat64(v)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("cube: size: %w", err)
		}
		var at wireframe.Vec3
		if v, ok := pa.kw["at"]; ok {
			if at, err = toVec3(v); err != nil {
				return zygo.SexpNull, fmt.Errorf("cube: at: %w", err)
			}
		}
		w, err := sc.current()
		if err != nil {
			return zygo.SexpNull, err
		}
		base := w.NodeCount()
		if err := shape.AddCube(w, at, size, palette); err != nil {
			return zygo.SexpNull, fmt.Errorf("cube: %w", err)
		}
		return sexpInt(base), nil
	})

	// -----------------------------------------------------------------------
	// (box :size (vec3 100 50 25)) -> solid with its min corner at the origin
	// -----------------------------------------------------------------------
	env.AddFunction("box", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa, err := parseArgs(args)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("%s: %w", name, err)
		}
		v, ok := pa.kw["size"]
		if !ok {
			return zygo.SexpNull, fmt.Errorf("box requires :size")
		}
		size, err := toVec3(v)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("box: size: %w", err)
		}
		if size.X <= 0 || size.Y <= 0 || size.Z <= 0 {
			return zygo.SexpNull, fmt.Errorf("box: size must be positive, got %g %g %g", size.X, size.Y, size.Z)
		}
		return &sexpSolid{
			solid: k.Box(size.X, size.Y, size.Z),
			desc:  fmt.Sprintf("box %gx%gx%g", size.X, size.Y, size.Z),
		}, nil
	})

	// -----------------------------------------------------------------------
	// (cylinder :height 50 :radius 10)
	// -----------------------------------------------------------------------
	env.AddFunction("cylinder", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa, err := parseArgs(args)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("%s: %w", name, err)
		}
		var dims [2]float64
		for i, key := range []string{"height", "radius"} {
			v, ok := pa.kw[key]
			if !ok {
				return zygo.SexpNull, fmt.Errorf("cylinder requires :%s", key)
			}
			f, err := toFloat64(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("cylinder: %s: %w", key, err)
			}
			if f <= 0 {
				return zygo.SexpNull, fmt.Errorf("cylinder: %s must be positive, got %g", key, f)
			}
			dims[i] = f
		}
		return &sexpSolid{
			solid: k.Cylinder(dims[0], dims[1]),
			desc:  fmt.Sprintf("cylinder h=%g r=%g", dims[0], dims[1]),
		}, nil
	})

	// -----------------------------------------------------------------------
	// (place solid :rotate (vec3 rx ry rz) :at (vec3 x y z))
	// Rotation (radians) is applied before translation.
	// -----------------------------------------------------------------------
	env.AddFunction("place", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa, err := parseArgs(args)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("%s: %w", name, err)
		}
		if len(pa.positional) < 1 {
			return zygo.SexpNull, fmt.Errorf("place requires a solid as first argument")
		}
		s, err := toSolid(pa.positional[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("place: %w", err)
		}
		if v, ok := pa.kw["rotate"]; ok {
			r, err := toVec3(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("place: rotate: %w", err)
			}
			s = k.Rotate(s, r.X, r.Y, r.Z)
		}
		if v, ok := pa.kw["at"]; ok {
			at, err := toVec3(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("place: at: %w", err)
			}
			s = k.Translate(s, at.X, at.Y, at.Z)
		}
		return &sexpSolid{solid: s, desc: "placed " + pa.positional[0].SexpString(nil)}, nil
	})

	// -----------------------------------------------------------------------
	// (union a b), (difference a b), (intersection a b)
	// -----------------------------------------------------------------------
	booleans := map[string]func(a, b kernel.Solid) kernel.Solid{
		"union":        k.Union,
		"difference":   k.Difference,
		"intersection": k.Intersection,
	}
	for op, fn := range booleans {
		env.AddFunction(op, func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
			if len(args) != 2 {
				return zygo.SexpNull, fmt.Errorf("%s requires exactly 2 solids, got %d", op, len(args))
			}
			a, err := toSolid(args[0])
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("%s: first: %w", op, err)
			}
			b, err := toSolid(args[1])
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("%s: second: %w", op, err)
			}
			return &sexpSolid{solid: fn(a, b), desc: op}, nil
		})
	}

	// -----------------------------------------------------------------------
	// (outline solid) -> index of the first node of its bounding cuboid
	// -----------------------------------------------------------------------
	env.AddFunction("outline", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("outline requires exactly 1 solid, got %d", len(args))
		}
		s, err := toSolid(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("outline: %w", err)
		}
		w, err := sc.current()
		if err != nil {
			return zygo.SexpNull, err
		}
		base := w.NodeCount()
		if err := kernel.Outline(w, s, palette); err != nil {
			return zygo.SexpNull, err
		}
		return sexpInt(base), nil
	})

	// -----------------------------------------------------------------------
	// (translate dx dy dz) moves the current object.
	// -----------------------------------------------------------------------
	env.AddFunction("translate", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 3 {
			return zygo.SexpNull, fmt.Errorf("translate requires exactly 3 arguments, got %d", len(args))
		}
		var d [3]float64
		for i, a := range args {
			f, err := toFloat64(a)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("translate: d%s: %w", matrix.Axis(i), err)
			}
			d[i] = f
		}
		w, err := sc.current()
		if err != nil {
			return zygo.SexpNull, err
		}
		w.Translate(d[0], d[1], d[2])
		return zygo.SexpNull, nil
	})

	// -----------------------------------------------------------------------
	// (scale s) or (scale sx sy sz), about the current object's centroid.
	// -----------------------------------------------------------------------
	env.AddFunction("scale", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 && len(args) != 3 {
			return zygo.SexpNull, fmt.Errorf("scale requires 1 or 3 arguments, got %d", len(args))
		}
		f := make([]float64, len(args))
		for i, a := range args {
			v, err := toFloat64(a)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("scale: factor %d: %w", i, err)
			}
			f[i] = v
		}
		w, err := sc.current()
		if err != nil {
			return zygo.SexpNull, err
		}
		if len(f) == 1 {
			err = w.ScaleUniform(f[0])
		} else {
			err = w.Scale(f[0], f[1], f[2])
		}
		if err != nil {
			return zygo.SexpNull, err
		}
		return zygo.SexpNull, nil
	})

	// -----------------------------------------------------------------------
	// (rotate :x 0.5 :z 1.0) about the current object's centroid, in keyword
	// order. Each axis may be given once.
	// -----------------------------------------------------------------------
	env.AddFunction("rotate", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa, err := parseArgs(args)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("%s: %w", name, err)
		}
		if len(pa.positional) > 0 {
			return zygo.SexpNull, fmt.Errorf("rotate takes only :x, :y or :z keywords")
		}
		if len(pa.order) == 0 {
			return zygo.SexpNull, fmt.Errorf("rotate requires at least one of :x, :y, :z")
		}
		w, err := sc.current()
		if err != nil {
			return zygo.SexpNull, err
		}
		for _, key := range pa.order {
			axis, err := matrix.ParseAxis(key)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("rotate: %w", err)
			}
			rad, err := toFloat64(pa.kw[key])
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("rotate: %s: %w", key, err)
			}
			if err := w.Rotate(axis, rad); err != nil {
				return zygo.SexpNull, err
			}
		}
		return zygo.SexpNull, nil
	})
}
