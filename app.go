package main

import (
	"context"
	"log"
	"strings"
	"sync"

	"github.com/chazu/wireview/pkg/config"
	"github.com/chazu/wireview/pkg/control"
	"github.com/chazu/wireview/pkg/engine"
	"github.com/chazu/wireview/pkg/kernel/sdfx"
	"github.com/chazu/wireview/pkg/project"
	"github.com/chazu/wireview/pkg/shape"
	"github.com/chazu/wireview/pkg/wireframe"
)

// App is the Wails backend. It exposes methods to the frontend via bindings.
// It holds the objects on screen; every binding that touches them runs
// under mu.
type App struct {
	ctx        context.Context
	cfg        *config.Config
	engine     *engine.Engine
	controller *control.Controller
	projector  project.Ortho

	mu    sync.Mutex
	scene *wireframe.Set
}

// EvalErrorData is a JSON-serializable eval error for the frontend.
type EvalErrorData struct {
	Line    int    `json:"line"`
	Col     int    `json:"col"`
	Message string `json:"message"`
}

// PolygonData is a filled face as the frontend draws it.
type PolygonData struct {
	Points [4]project.Point `json:"points"`
	Color  string           `json:"color"`
}

// FrameData is one view of the scene plus the display settings needed to
// draw it. Polygons are in paint order, farthest first, across all objects.
type FrameData struct {
	Objects    []string        `json:"objects"`
	Width      int             `json:"width"`
	Height     int             `json:"height"`
	Background string          `json:"background"`
	NodeColor  string          `json:"nodeColor"`
	EdgeColor  string          `json:"edgeColor"`
	NodeRadius float64         `json:"nodeRadius"`
	Points     []project.Point `json:"points"`
	Lines      []project.Line  `json:"lines"`
	Polygons   []PolygonData   `json:"polygons"`
}

// Result is returned by every binding that changes or reads the view.
type Result struct {
	Frame  FrameData       `json:"frame"`
	Errors []EvalErrorData `json:"errors"`
	Action string          `json:"action,omitempty"`
}

// NewApp creates an App from cfg showing the configured script, or the demo
// cube when no script is set.
func NewApp(cfg *config.Config) (*App, error) {
	controller, err := cfg.Controller()
	if err != nil {
		return nil, err
	}
	a := &App{
		cfg:        cfg,
		engine:     engine.NewEngine(sdfx.New()),
		controller: controller,
	}

	if cfg.Script == "" {
		a.scene, err = shape.DemoScene(shape.DefaultPalette)
	} else {
		a.scene, err = a.engine.EvaluateFile(cfg.Script)
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}

// startup is called by Wails on app startup. The context is saved
// so we can call Wails runtime methods later if needed.
func (a *App) startup(ctx context.Context) {
	a.ctx = ctx
}

// Evaluate runs a scene script. On success its objects replace the ones on
// screen; on any error the previous scene stays and the errors are returned
// alongside its frame.
func (a *App) Evaluate(source string) Result {
	scene, evalErrs, err := a.engine.Evaluate(source)

	a.mu.Lock()
	defer a.mu.Unlock()

	var errs []EvalErrorData
	switch {
	case err != nil:
		// Fatal error (panic, timeout, superseded)
		log.Printf("Evaluate fatal error: %v", err)
		errs = append(errs, EvalErrorData{Message: err.Error()})
	case len(evalErrs) > 0:
		for _, e := range evalErrs {
			errs = append(errs, EvalErrorData{Line: e.Line, Col: e.Col, Message: e.Message})
		}
	default:
		a.scene = scene
	}
	return a.result(errs)
}

// Press applies the action bound to a key name (see config keymap) to every
// object and returns the new frame.
func (a *App) Press(key string) Result {
	a.mu.Lock()
	defer a.mu.Unlock()

	action, err := a.controller.Press(a.scene, key)
	var errs []EvalErrorData
	if err != nil {
		log.Printf("Press %q (%v): %v", key, action, err)
		errs = append(errs, EvalErrorData{Message: err.Error()})
	}
	r := a.result(errs)
	if action != control.ActionNone {
		r.Action = action.String()
	}
	return r
}

// Frame returns the current view without changing it.
func (a *App) Frame() Result {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.result(nil)
}

// Help lists the key bindings.
func (a *App) Help() []control.Binding {
	return a.controller.Help()
}

// Dump returns the node and edge listing of every object on screen.
func (a *App) Dump() string {
	a.mu.Lock()
	defer a.mu.Unlock()

	var b strings.Builder
	if err := a.scene.Dump(&b); err != nil {
		return err.Error()
	}
	return b.String()
}

// result projects the current scene. Callers hold mu.
func (a *App) result(errs []EvalErrorData) Result {
	d := a.cfg.Display
	r := Result{
		Frame: FrameData{
			Objects:    a.scene.Names(),
			Width:      a.cfg.Window.Width,
			Height:     a.cfg.Window.Height,
			Background: d.Background.Color().Hex(),
			NodeColor:  d.NodeColor.Color().Hex(),
			EdgeColor:  d.EdgeColor.Color().Hex(),
			NodeRadius: d.NodeRadius,
			Points:     []project.Point{},
			Lines:      []project.Line{},
			Polygons:   []PolygonData{},
		},
		Errors: []EvalErrorData{},
	}
	r.Errors = append(r.Errors, errs...)

	f, err := a.projector.Frame(a.scene, project.Options{
		Nodes: d.ShowNodes,
		Edges: d.ShowEdges,
		Faces: d.ShowFaces,
	})
	if err != nil {
		log.Printf("Frame error: %v", err)
		r.Errors = append(r.Errors, EvalErrorData{Message: err.Error()})
		return r
	}

	r.Frame.Points = f.Points
	r.Frame.Lines = f.Lines
	for _, p := range f.Polygons {
		r.Frame.Polygons = append(r.Frame.Polygons, PolygonData{Points: p.Points, Color: p.Color.Hex()})
	}
	return r
}
