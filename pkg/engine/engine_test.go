package engine

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/chazu/wireview/pkg/kernel/sdfx"
	"github.com/chazu/wireview/pkg/wireframe"
)

func newTestEngine() *Engine {
	return NewEngine(sdfx.New())
}

func TestEvaluateEmptyString(t *testing.T) {
	for _, src := range []string{"", "   \n\t  \n  "} {
		s, evalErrs, err := newTestEngine().Evaluate(src)
		if err != nil {
			t.Fatalf("unexpected fatal error: %v", err)
		}
		if len(evalErrs) > 0 {
			t.Fatalf("unexpected eval errors: %v", evalErrs)
		}
		if s == nil {
			t.Fatal("expected non-nil set")
		}
		if s.Len() != 0 {
			t.Errorf("expected no objects, got %v", s.Names())
		}
	}
}

func TestEvaluatePlainLisp(t *testing.T) {
	source := `
(def x 10)
(def y 20)
(+ x y)
`
	s, evalErrs, err := newTestEngine().Evaluate(source)
	if err != nil {
		t.Fatalf("unexpected fatal error: %v", err)
	}
	if len(evalErrs) > 0 {
		t.Fatalf("unexpected eval errors: %v", evalErrs)
	}
	if s == nil || s.Len() != 0 {
		t.Fatalf("expected empty set, got %v", s)
	}
}

func TestEvaluateSyntaxError(t *testing.T) {
	// Unmatched paren is a parse error.
	s, evalErrs, err := newTestEngine().Evaluate("(+ 1 2")
	if err != nil {
		t.Fatalf("expected non-fatal eval error, got fatal: %v", err)
	}
	if s != nil {
		t.Fatal("expected nil set on syntax error")
	}
	if len(evalErrs) == 0 {
		t.Fatal("expected at least one eval error for syntax error")
	}
	if evalErrs[0].Message == "" {
		t.Error("eval error message should not be empty")
	}
}

func TestEvaluateUndefinedSymbol(t *testing.T) {
	s, evalErrs, err := newTestEngine().Evaluate("(+ 1 undefined-symbol)")
	if err != nil {
		t.Fatalf("expected non-fatal eval error, got fatal: %v", err)
	}
	if s != nil {
		t.Fatal("expected nil set on eval error")
	}
	if len(evalErrs) == 0 {
		t.Fatal("expected at least one eval error for undefined symbol")
	}
}

func TestEvaluateColorMismatchReported(t *testing.T) {
	source := `
(nodes [0 0 0] [1 0 0] [1 1 0] [0 1 0])
(faces [0 1 2 3])
`
	s, evalErrs, err := newTestEngine().Evaluate(source)
	if err != nil {
		t.Fatalf("unexpected fatal error: %v", err)
	}
	if s != nil {
		t.Fatal("expected nil set when faces lack colors")
	}
	if len(evalErrs) != 1 || !strings.Contains(evalErrs[0].Message, wireframe.ErrColorCountMismatch.Error()) {
		t.Fatalf("eval errors = %v, want color count mismatch", evalErrs)
	}
}

func TestEvaluateFile(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.wv")
	bad := filepath.Join(dir, "bad.wv")
	if err := os.WriteFile(good, []byte("(cube :size 5)"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(bad, []byte("(cube :size 5)\n(nodes [1 2])"), 0o644); err != nil {
		t.Fatal(err)
	}

	eng := newTestEngine()
	s, err := eng.EvaluateFile(good)
	if err != nil {
		t.Fatalf("EvaluateFile(good) error = %v", err)
	}
	if s.NodeCount() != 8 {
		t.Errorf("NodeCount() = %d, want 8", s.NodeCount())
	}

	_, err = eng.EvaluateFile(bad)
	var evalErr EvalError
	if !errors.As(err, &evalErr) {
		t.Fatalf("EvaluateFile(bad) error = %v, want EvalError", err)
	}
	if !strings.Contains(err.Error(), "bad.wv") {
		t.Errorf("error should name the file: %v", err)
	}

	if _, err := eng.EvaluateFile(filepath.Join(dir, "missing.wv")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing file error = %v", err)
	}
}

func TestEvalErrorImplementsError(t *testing.T) {
	e := EvalError{Line: 5, Col: 0, Message: "something went wrong"}
	s := e.Error()
	if !strings.Contains(s, "line 5") {
		t.Errorf("Error() should contain line info, got: %s", s)
	}
	if !strings.Contains(s, "something went wrong") {
		t.Errorf("Error() should contain message, got: %s", s)
	}

	e2 := EvalError{Line: 0, Col: 0, Message: "no location"}
	if s2 := e2.Error(); strings.Contains(s2, "line") {
		t.Errorf("Error() with no line should not contain 'line', got: %s", s2)
	}
}

func TestEvaluateDeterministic(t *testing.T) {
	eng := newTestEngine()
	source := "(cube :at (vec3 50 50 50) :size 200) (rotate :z 0.3)"

	first, _, err := eng.Evaluate(source)
	if err != nil || first == nil {
		t.Fatalf("first evaluation failed: %v", err)
	}
	for i := 0; i < 5; i++ {
		s, evalErrs, err := eng.Evaluate(source)
		if err != nil {
			t.Fatalf("iteration %d: unexpected fatal error: %v", i, err)
		}
		if len(evalErrs) > 0 {
			t.Fatalf("iteration %d: unexpected eval errors: %v", i, evalErrs)
		}
		got, want := mainObject(t, s).Nodes(), mainObject(t, first).Nodes()
		for j := range want {
			if got[j] != want[j] {
				t.Fatalf("iteration %d: node %d = %+v, want %+v", i, j, got[j], want[j])
			}
		}
	}
}

func TestEvaluateTimeout(t *testing.T) {
	// Drives waitWithTimeout directly with a channel that never sends, rather
	// than a script that loops forever.

	var mu sync.Mutex
	var gen uint64 = 1
	ch := make(chan evalResult) // Never sends

	done := make(chan struct{})
	var resultErr error

	go func() {
		defer close(done)
		_, _, resultErr = waitWithTimeout(ch, 1, &mu, &gen)
	}()

	select {
	case <-done:
		if resultErr == nil {
			t.Fatal("expected timeout error, got nil")
		}
		if !strings.Contains(resultErr.Error(), "timed out") {
			t.Errorf("expected timeout error message, got: %v", resultErr)
		}
	case <-time.After(EvalTimeout + 2*time.Second):
		t.Fatal("test itself timed out waiting for evaluation timeout")
	}
}

func TestEvaluateGenerationDiscardsStale(t *testing.T) {
	// Test that a stale generation is detected.
	var mu sync.Mutex
	gen := uint64(2) // Current generation is 2

	ch := make(chan evalResult, 1)
	ch <- evalResult{}

	// Pass generation 1 (stale).
	_, _, err := waitWithTimeout(ch, 1, &mu, &gen)
	if !errors.Is(err, ErrSuperseded) {
		t.Fatalf("expected ErrSuperseded, got: %v", err)
	}
}

func TestParseZygomysError(t *testing.T) {
	tests := []struct {
		name     string
		msg      string
		wantLine int
		wantMsg  string
	}{
		{
			name:     "error on line format",
			msg:      "Error on line 5: unexpected token\n",
			wantLine: 5,
			wantMsg:  "unexpected token",
		},
		{
			name:     "no line info",
			msg:      "some generic error",
			wantLine: 0,
			wantMsg:  "some generic error",
		},
		{
			name:     "line format lowercase",
			msg:      "error on line 12: missing paren",
			wantLine: 12,
			wantMsg:  "missing paren",
		},
		{
			name:     "short line prefix",
			msg:      "line 3: faces: face 0: expected 4 elements, got 3",
			wantLine: 3,
			wantMsg:  "expected 4 elements",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := parseZygomysError(errString(tt.msg))
			if len(errs) == 0 {
				t.Fatal("expected at least one error")
			}
			e := errs[0]
			if e.Line != tt.wantLine {
				t.Errorf("line = %d, want %d", e.Line, tt.wantLine)
			}
			if !strings.Contains(e.Message, tt.wantMsg) {
				t.Errorf("message = %q, want containing %q", e.Message, tt.wantMsg)
			}
		})
	}
}

// errString is a simple error type for testing.
type errString string

func (e errString) Error() string { return string(e) }
