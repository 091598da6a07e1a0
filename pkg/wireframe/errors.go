package wireframe

import (
	"errors"
	"fmt"
)

// Sentinel errors. Every failure returned by this package wraps one of them,
// so callers can test with errors.Is.
var (
	ErrInvalidGeometry    = errors.New("invalid geometry")
	ErrInvalidIndex       = errors.New("invalid node index")
	ErrEmptyGeometry      = errors.New("empty geometry")
	ErrColorCountMismatch = errors.New("color count does not match face count")
)

// Error describes a failed operation on a Wireframe.
type Error struct {
	Op     string // "add nodes", "add edges", "centered transform", ...
	Item   int    // offending batch position, -1 if not tied to one item
	Detail string
	Err    error // one of the sentinels above
}

func (e *Error) Error() string {
	if e.Item >= 0 {
		return fmt.Sprintf("wireframe: %s: item %d: %v: %s", e.Op, e.Item, e.Err, e.Detail)
	}
	if e.Detail != "" {
		return fmt.Sprintf("wireframe: %s: %v: %s", e.Op, e.Err, e.Detail)
	}
	return fmt.Sprintf("wireframe: %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }
