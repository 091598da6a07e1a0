// Command wireview shows a wireframe scene in a desktop window and lets the
// keyboard move, zoom and rotate it.
package main

import (
	"errors"
	"flag"
	"log"
	"os"

	"github.com/chazu/wireview/pkg/config"
	"github.com/chazu/wireview/pkg/engine"
	"github.com/chazu/wireview/pkg/kernel/sdfx"
	"github.com/chazu/wireview/pkg/shape"
	"github.com/chazu/wireview/pkg/wireframe"
	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	configPath := flag.String("config", "", "viewer config file (.yaml, .yml or .toml)")
	script := flag.String("script", "", "scene script to open, overrides the config")
	dump := flag.Bool("dump", false, "print each object's nodes and edges and exit")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			log.Fatal(err)
		}
	}
	if *script != "" {
		cfg.Script = *script
	}

	scene, err := loadScene(cfg)
	if err != nil {
		log.Fatal(err)
	}

	if *dump {
		if err := scene.Dump(os.Stdout); err != nil {
			log.Fatal(err)
		}
		return
	}

	v, err := newViewer(cfg, scene)
	if err != nil {
		log.Fatal(err)
	}

	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetTPS(60)
	if err := ebiten.RunGame(v); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}

func loadScene(cfg *config.Config) (*wireframe.Set, error) {
	if cfg.Script == "" {
		return shape.DemoScene(shape.DefaultPalette)
	}
	log.Printf("loading %s", cfg.Script)
	return engine.NewEngine(sdfx.New()).EvaluateFile(cfg.Script)
}
