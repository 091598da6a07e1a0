package main

import (
	"fmt"
	"image"
	"image/color"
	"log"
	"strings"

	"github.com/chazu/wireview/pkg/config"
	"github.com/chazu/wireview/pkg/control"
	"github.com/chazu/wireview/pkg/project"
	"github.com/chazu/wireview/pkg/wireframe"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// boundKey pairs a physical key with the keymap name it is known by.
type boundKey struct {
	name string
	key  ebiten.Key
}

type viewer struct {
	cfg       *config.Config
	ctrl      *control.Controller
	scene     *wireframe.Set
	projector project.Ortho
	keys      []boundKey
	help      string
	showHelp  bool
	status    string

	// white is the 1x1 source image for filled polygons.
	white    *ebiten.Image
	vertices []ebiten.Vertex
	indices  []uint16
}

func newViewer(cfg *config.Config, scene *wireframe.Set) (*viewer, error) {
	ctrl, err := cfg.Controller()
	if err != nil {
		return nil, err
	}

	names := keyNames()
	v := &viewer{cfg: cfg, ctrl: ctrl, scene: scene}
	var help strings.Builder
	for _, b := range ctrl.Help() {
		k, ok := names[b.Key]
		if !ok {
			return nil, fmt.Errorf("keymap: no such key %q", b.Key)
		}
		v.keys = append(v.keys, boundKey{name: b.Key, key: k})
		fmt.Fprintf(&help, "%-7s %s\n", b.Key, b.Help)
	}
	help.WriteString("f1      toggle help\nesc     quit\n")
	v.help = help.String()

	img := ebiten.NewImage(3, 3)
	img.Fill(color.White)
	v.white = img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	return v, nil
}

// keyNames maps lower-cased ebiten key names ("a", "space", "shiftleft")
// to keys, plus the short "lshift"/"rshift" aliases the default keymap uses.
func keyNames() map[string]ebiten.Key {
	m := make(map[string]ebiten.Key)
	for k := ebiten.Key(0); k <= ebiten.KeyMax; k++ {
		m[strings.ToLower(k.String())] = k
	}
	m["lshift"] = ebiten.KeyShiftLeft
	m["rshift"] = ebiten.KeyShiftRight
	return m
}

func (v *viewer) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		v.showHelp = !v.showHelp
	}
	for _, k := range v.keys {
		if !inpututil.IsKeyJustPressed(k.key) {
			continue
		}
		action, err := v.ctrl.Press(v.scene, k.name)
		if err != nil {
			log.Printf("%s (%v): %v", k.name, action, err)
			v.status = err.Error()
			continue
		}
		v.status = ""
	}
	return nil
}

func (v *viewer) Draw(screen *ebiten.Image) {
	d := v.cfg.Display
	screen.Fill(rgba(d.Background.Color()))

	f, err := v.projector.Frame(v.scene, project.Options{
		Nodes: d.ShowNodes,
		Edges: d.ShowEdges,
		Faces: d.ShowFaces,
	})
	if err != nil {
		ebitenutil.DebugPrint(screen, err.Error())
		return
	}

	for _, p := range f.Polygons {
		v.fillPolygon(screen, p)
	}

	edge := rgba(d.EdgeColor.Color())
	for _, l := range f.Lines {
		vector.StrokeLine(screen, float32(l.From.X), float32(l.From.Y), float32(l.To.X), float32(l.To.Y), 1, edge, true)
	}

	node := rgba(d.NodeColor.Color())
	for _, p := range f.Points {
		x, y := p.Round()
		vector.DrawFilledCircle(screen, float32(x), float32(y), float32(d.NodeRadius), node, true)
	}

	text := v.status
	if v.showHelp {
		text = v.help + text
	}
	if text != "" {
		ebitenutil.DebugPrint(screen, text)
	}
}

func (v *viewer) fillPolygon(screen *ebiten.Image, p project.Polygon) {
	var path vector.Path
	path.MoveTo(float32(p.Points[0].X), float32(p.Points[0].Y))
	for _, pt := range p.Points[1:] {
		path.LineTo(float32(pt.X), float32(pt.Y))
	}
	path.Close()

	v.vertices, v.indices = path.AppendVerticesAndIndicesForFilling(v.vertices[:0], v.indices[:0])
	for i := range v.vertices {
		v.vertices[i].SrcX = 1
		v.vertices[i].SrcY = 1
		v.vertices[i].ColorR = float32(p.Color.R) / 0xff
		v.vertices[i].ColorG = float32(p.Color.G) / 0xff
		v.vertices[i].ColorB = float32(p.Color.B) / 0xff
		v.vertices[i].ColorA = 1
	}
	screen.DrawTriangles(v.vertices, v.indices, v.white, &ebiten.DrawTrianglesOptions{AntiAlias: true})
}

func (v *viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	return v.cfg.Window.Width, v.cfg.Window.Height
}

func rgba(c wireframe.Color) color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff}
}
