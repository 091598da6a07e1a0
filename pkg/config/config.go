// Package config loads viewer settings from YAML or TOML files.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chazu/wireview/pkg/control"
	"github.com/chazu/wireview/pkg/wireframe"
	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// validate is a singleton validator instance
var validate = validator.New()

// ErrUnknownFormat is returned for config files that are neither YAML nor TOML.
var ErrUnknownFormat = errors.New("config: unknown format")

// RGB is a color as three 0..255 channels, written [r, g, b] in files.
type RGB [3]int

// Color converts to the wireframe color type.
func (c RGB) Color() wireframe.Color {
	return wireframe.Color{R: uint8(c[0]), G: uint8(c[1]), B: uint8(c[2])}
}

// Window sizes and titles the viewer window.
type Window struct {
	Title  string `yaml:"title" toml:"title" validate:"required"`
	Width  int    `yaml:"width" toml:"width" validate:"min=1"`
	Height int    `yaml:"height" toml:"height" validate:"min=1"`
}

// Display holds colors, node size and which layers are drawn.
type Display struct {
	Background RGB     `yaml:"background" toml:"background" validate:"dive,min=0,max=255"`
	NodeColor  RGB     `yaml:"node_color" toml:"node_color" validate:"dive,min=0,max=255"`
	EdgeColor  RGB     `yaml:"edge_color" toml:"edge_color" validate:"dive,min=0,max=255"`
	NodeRadius float64 `yaml:"node_radius" toml:"node_radius" validate:"gt=0"`
	ShowNodes  bool    `yaml:"show_nodes" toml:"show_nodes"`
	ShowEdges  bool    `yaml:"show_edges" toml:"show_edges"`
	ShowFaces  bool    `yaml:"show_faces" toml:"show_faces"`
}

// Steps mirrors control.Steps in file form.
type Steps struct {
	Translate float64 `yaml:"translate" toml:"translate" validate:"gt=0"`
	ZoomIn    float64 `yaml:"zoom_in" toml:"zoom_in" validate:"gt=1"`
	ZoomOut   float64 `yaml:"zoom_out" toml:"zoom_out" validate:"gt=0,lt=1"`
	Rotate    float64 `yaml:"rotate" toml:"rotate" validate:"gt=0"`
}

// Config is the full viewer configuration.
type Config struct {
	Window  Window  `yaml:"window" toml:"window"`
	Display Display `yaml:"display" toml:"display"`
	Steps   Steps   `yaml:"steps" toml:"steps"`
	// Keymap binds key names to action names (see control.ParseAction).
	Keymap map[string]string `yaml:"keymap" toml:"keymap" validate:"required,min=1,dive,keys,min=1,endkeys,required"`
	// Script is an optional scene script to load at startup.
	Script string `yaml:"script" toml:"script"`
}

// Default returns the settings of the classic pygame viewer.
func Default() *Config {
	keymap := make(map[string]string)
	for k, a := range control.DefaultKeymap() {
		keymap[k] = a.String()
	}
	return &Config{
		Window: Window{Title: "Wireframe Display", Width: 400, Height: 300},
		Display: Display{
			Background: RGB{10, 10, 50},
			NodeColor:  RGB{255, 255, 255},
			EdgeColor:  RGB{200, 200, 200},
			NodeRadius: 4,
			ShowNodes:  true,
			ShowEdges:  true,
			ShowFaces:  true,
		},
		Steps: Steps{
			Translate: control.DefaultSteps.Translate,
			ZoomIn:    control.DefaultSteps.ZoomIn,
			ZoomOut:   control.DefaultSteps.ZoomOut,
			Rotate:    control.DefaultSteps.Rotate,
		},
		Keymap: keymap,
	}
}

// Load reads path, choosing the decoder by extension (.yaml, .yml, .toml).
// Keys missing from the file keep their defaults; a keymap in the file
// replaces the default keymap rather than merging into it.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return Parse(data, strings.TrimPrefix(filepath.Ext(path), "."))
}

// Parse decodes data in the given format ("yaml", "yml" or "toml") over the
// defaults and validates the result. Unknown keys are rejected.
func Parse(data []byte, format string) (*Config, error) {
	cfg := Default()
	defaultKeys := cfg.Keymap
	cfg.Keymap = nil

	switch strings.ToLower(format) {
	case "yaml", "yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		// A file with no document decodes to io.EOF.
		if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("config: yaml: %w", err)
		}
	case "toml":
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(cfg); err != nil {
			return nil, fmt.Errorf("config: toml: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownFormat, format)
	}

	if cfg.Keymap == nil {
		cfg.Keymap = defaultKeys
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks field ranges and that every keymap entry names an action.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config: %w", formatValidationError(err))
	}
	if _, err := c.Bindings(); err != nil {
		return err
	}
	return nil
}

// Bindings parses the keymap into control actions.
func (c *Config) Bindings() (map[string]control.Action, error) {
	out := make(map[string]control.Action, len(c.Keymap))
	for key, name := range c.Keymap {
		a, err := control.ParseAction(name)
		if err != nil {
			return nil, fmt.Errorf("config: keymap %q: %w", key, err)
		}
		out[key] = a
	}
	return out, nil
}

// ControlSteps returns the step sizes for a control.Controller.
func (c *Config) ControlSteps() control.Steps {
	return control.Steps{
		Translate: c.Steps.Translate,
		ZoomIn:    c.Steps.ZoomIn,
		ZoomOut:   c.Steps.ZoomOut,
		Rotate:    c.Steps.Rotate,
	}
}

// Controller builds a control.Controller from the steps and keymap.
func (c *Config) Controller() (*control.Controller, error) {
	keymap, err := c.Bindings()
	if err != nil {
		return nil, err
	}
	return control.New(c.ControlSteps(), keymap), nil
}

// formatValidationError reports the first failing field in a readable form.
// The returned error still wraps the validator errors.
func formatValidationError(err error) error {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) || len(validationErrs) == 0 {
		return err
	}

	e := validationErrs[0]
	field, param := e.Namespace(), e.Param()
	switch e.Tag() {
	case "required":
		return fmt.Errorf("%s: field is required: %w", field, err)
	case "min":
		return fmt.Errorf("%s: must be at least %s: %w", field, param, err)
	case "max":
		return fmt.Errorf("%s: must not exceed %s: %w", field, param, err)
	case "gt":
		return fmt.Errorf("%s: must be greater than %s: %w", field, param, err)
	case "lt":
		return fmt.Errorf("%s: must be less than %s: %w", field, param, err)
	default:
		return fmt.Errorf("%s: validation failed (%s): %w", field, e.Tag(), err)
	}
}
