// Package engine provides the scene-script evaluator for wireview.
// It wraps zygomys in a sandboxed environment and produces a set of named
// wireframes from user source code.
package engine

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/chazu/wireview/pkg/kernel"
	"github.com/chazu/wireview/pkg/shape"
	"github.com/chazu/wireview/pkg/wireframe"
	zygo "github.com/glycerine/zygomys/zygo"
)

// EvalError represents a non-fatal error encountered during evaluation,
// such as a parse error, a runtime error in user code, or geometry that
// failed validation.
type EvalError struct {
	Line    int
	Col     int
	Message string
}

func (e EvalError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Message)
	}
	return e.Message
}

// Engine wraps the zygomys interpreter. It is safe for concurrent use; each
// call to Evaluate creates a fresh sandboxed environment and a fresh
// wireframe.Set, so results depend only on the source.
type Engine struct {
	// Palette colors the faces of cubes and outlines built by scripts.
	Palette []wireframe.Color

	kernel     kernel.Kernel
	mu         sync.Mutex
	generation uint64
}

// NewEngine creates an Engine whose solid builtins are backed by k.
func NewEngine(k kernel.Kernel) *Engine {
	return &Engine{kernel: k, Palette: shape.DefaultPalette}
}

// Evaluate runs a scene script and returns the objects it built. Geometry
// goes into wireframe.DefaultObject until the script names another object
// with (object name).
//
// Return semantics:
//   - On success: returns set + nil errors + nil error
//   - On parse/eval/validation failure: returns nil + eval errors + nil error
//   - On fatal failure (timeout, panic, superseded): returns nil + nil + error
func (e *Engine) Evaluate(source string) (*wireframe.Set, []EvalError, error) {
	e.mu.Lock()
	e.generation++
	gen := e.generation
	e.mu.Unlock()

	ch := make(chan evalResult, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				ch <- evalResult{err: fmt.Errorf("panic during evaluation: %v", r)}
			}
		}()

		s, evalErrs, err := e.evaluate(source)
		ch <- evalResult{scene: s, errors: evalErrs, err: err}
	}()

	return waitWithTimeout(ch, gen, &e.mu, &e.generation)
}

// EvaluateFile evaluates the script at path. Eval errors are folded into the
// returned error, first one first.
func (e *Engine) EvaluateFile(path string) (*wireframe.Set, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("engine: %w", err)
	}
	s, evalErrs, err := e.Evaluate(string(source))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if len(evalErrs) > 0 {
		return nil, fmt.Errorf("%s: %w", path, evalErrs[0])
	}
	return s, nil
}

func (e *Engine) evaluate(source string) (*wireframe.Set, []EvalError, error) {
	s := wireframe.NewSet()
	if strings.TrimSpace(source) == "" {
		return s, nil, nil
	}

	// Sandbox mode keeps scripts away from the filesystem and syscalls.
	env := zygo.NewZlispSandbox()
	defer env.Stop()

	registerBuiltins(env, &scene{set: s}, e.kernel, e.Palette)

	if err := env.LoadString(preprocessSource(source)); err != nil {
		return nil, parseZygomysError(err), nil
	}
	if _, err := env.Run(); err != nil {
		return nil, parseZygomysError(err), nil
	}

	if err := s.Validate(); err != nil {
		return nil, []EvalError{{Message: err.Error()}}, nil
	}
	return s, nil, nil
}

// linePattern matches zygomys error messages that include "Error on line N: ..."
var linePattern = regexp.MustCompile(`(?i)(?:error )?on line (\d+):\s*(.*)`)

// linePatternShort matches simpler "line N: ..." patterns.
var linePatternShort = regexp.MustCompile(`(?i)^line (\d+):\s*(.*)`)

// parseZygomysError converts a zygomys error into EvalError values,
// extracting a line number when the message carries one.
func parseZygomysError(err error) []EvalError {
	msg := err.Error()

	for _, re := range []*regexp.Regexp{linePattern, linePatternShort} {
		if m := re.FindStringSubmatch(msg); m != nil {
			line, _ := strconv.Atoi(m[1])
			return []EvalError{{Line: line, Message: strings.TrimSpace(m[2])}}
		}
	}

	return []EvalError{{Message: strings.TrimSpace(msg)}}
}
