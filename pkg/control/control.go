// Package control turns viewer input into transform requests on a set of
// wireframes. Renderers translate device keys into key names; the Controller
// maps names to Actions and Actions to transforms.
package control

import (
	"errors"
	"fmt"
	"sort"

	"github.com/chazu/wireview/pkg/matrix"
	"github.com/chazu/wireview/pkg/wireframe"
)

// Action is a single transform request.
type Action int

const (
	ActionNone Action = iota
	MoveLeft
	MoveRight
	MoveUp
	MoveDown
	ZoomIn
	ZoomOut
	RotateXPos
	RotateXNeg
	RotateYPos
	RotateYNeg
	RotateZPos
	RotateZNeg
)

var actionNames = [...]string{
	ActionNone: "none",
	MoveLeft:   "move-left",
	MoveRight:  "move-right",
	MoveUp:     "move-up",
	MoveDown:   "move-down",
	ZoomIn:     "zoom-in",
	ZoomOut:    "zoom-out",
	RotateXPos: "rotate-x-pos",
	RotateXNeg: "rotate-x-neg",
	RotateYPos: "rotate-y-pos",
	RotateYNeg: "rotate-y-neg",
	RotateZPos: "rotate-z-pos",
	RotateZNeg: "rotate-z-neg",
}

var actionHelp = [...]string{
	MoveLeft:   "move left",
	MoveRight:  "move right",
	MoveUp:     "move up",
	MoveDown:   "move down",
	ZoomIn:     "zoom in",
	ZoomOut:    "zoom out",
	RotateXPos: "rotate about x",
	RotateXNeg: "rotate about x (reverse)",
	RotateYPos: "rotate about y",
	RotateYNeg: "rotate about y (reverse)",
	RotateZPos: "rotate about z",
	RotateZNeg: "rotate about z (reverse)",
}

func (a Action) String() string {
	if a >= 0 && int(a) < len(actionNames) {
		return actionNames[a]
	}
	return fmt.Sprintf("Action(%d)", int(a))
}

// ErrUnknownAction is returned by ParseAction for names outside the set.
var ErrUnknownAction = errors.New("unknown action")

// ParseAction returns the Action named s, as printed by String.
func ParseAction(s string) (Action, error) {
	for i, name := range actionNames {
		if i != int(ActionNone) && name == s {
			return Action(i), nil
		}
	}
	return ActionNone, fmt.Errorf("%w %q", ErrUnknownAction, s)
}

// Steps sizes each action. Translation is in world units, zoom factors are
// multiplicative and rotation is in radians.
type Steps struct {
	Translate float64
	ZoomIn    float64
	ZoomOut   float64
	Rotate    float64
}

// DefaultSteps are the increments of the classic pygame viewer.
var DefaultSteps = Steps{Translate: 10, ZoomIn: 1.25, ZoomOut: 0.8, Rotate: 0.1}

// DefaultKeymap binds the classic viewer keys. Screen y grows downward, so
// shift moves the object down and space moves it up.
func DefaultKeymap() map[string]Action {
	return map[string]Action{
		"a":      MoveLeft,
		"d":      MoveRight,
		"lshift": MoveDown,
		"space":  MoveUp,
		"w":      ZoomIn,
		"s":      ZoomOut,
		"q":      RotateXPos,
		"e":      RotateXNeg,
		"f":      RotateYPos,
		"g":      RotateYNeg,
		"z":      RotateZPos,
		"x":      RotateZNeg,
	}
}

// Controller applies actions to every object of a wireframe.Set.
type Controller struct {
	Steps  Steps
	Keymap map[string]Action
}

// New returns a Controller. A nil keymap binds nothing.
func New(steps Steps, keymap map[string]Action) *Controller {
	if keymap == nil {
		keymap = map[string]Action{}
	}
	return &Controller{Steps: steps, Keymap: keymap}
}

// Apply performs a on every object in s. Translation moves all objects
// together; scaling and rotation pivot each object on its own centroid and
// fail with wireframe.ErrEmptyGeometry when s has no nodes.
func (c *Controller) Apply(s *wireframe.Set, a Action) error {
	st := c.Steps
	switch a {
	case MoveLeft:
		s.Translate(-st.Translate, 0, 0)
	case MoveRight:
		s.Translate(st.Translate, 0, 0)
	case MoveUp:
		s.Translate(0, -st.Translate, 0)
	case MoveDown:
		s.Translate(0, st.Translate, 0)
	case ZoomIn:
		return s.ScaleUniform(st.ZoomIn)
	case ZoomOut:
		return s.ScaleUniform(st.ZoomOut)
	case RotateXPos:
		return s.Rotate(matrix.AxisX, st.Rotate)
	case RotateXNeg:
		return s.Rotate(matrix.AxisX, -st.Rotate)
	case RotateYPos:
		return s.Rotate(matrix.AxisY, st.Rotate)
	case RotateYNeg:
		return s.Rotate(matrix.AxisY, -st.Rotate)
	case RotateZPos:
		return s.Rotate(matrix.AxisZ, st.Rotate)
	case RotateZNeg:
		return s.Rotate(matrix.AxisZ, -st.Rotate)
	case ActionNone:
	default:
		return fmt.Errorf("control: %w %v", ErrUnknownAction, a)
	}
	return nil
}

// Press applies the action bound to key. Unbound keys return ActionNone
// and do nothing.
func (c *Controller) Press(s *wireframe.Set, key string) (Action, error) {
	a, ok := c.Keymap[key]
	if !ok {
		return ActionNone, nil
	}
	return a, c.Apply(s, a)
}

// Binding is one line of key help.
type Binding struct {
	Key    string `json:"key"`
	Action Action `json:"-"`
	Help   string `json:"help"`
}

// Help lists the bound keys in action order, then by key name.
func (c *Controller) Help() []Binding {
	out := make([]Binding, 0, len(c.Keymap))
	for k, a := range c.Keymap {
		h := ""
		if a > ActionNone && int(a) < len(actionHelp) {
			h = actionHelp[a]
		}
		out = append(out, Binding{Key: k, Action: a, Help: h})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Action != out[j].Action {
			return out[i].Action < out[j].Action
		}
		return out[i].Key < out[j].Key
	})
	return out
}
