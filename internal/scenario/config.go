package scenario

import (
	"encoding/json"
	"fmt"
	"image/color"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"

	"github.com/borkshop/markerfield/internal/vec"
)

// Scatter modes for marker placement.
const (
	ScatterUniform = "uniform"
	ScatterNoise   = "noise"
)

// Config describes a scenario: the grid, its markers and its agent classes.
type Config struct {
	Name       string        `json:"name"`
	Width      int           `json:"width"`
	Height     int           `json:"height"`
	Markers    int           `json:"markers"`
	Scatter    string        `json:"scatter,omitempty"`
	NoiseScale float64       `json:"noiseScale,omitempty"`
	Window     int           `json:"window,omitempty"`
	Radius     float64       `json:"radius,omitempty"`
	Classes    []ClassConfig `json:"classes"`
}

// ClassConfig describes one agent class. A class with no color takes the
// palette color for its position.
type ClassConfig struct {
	ID    string  `json:"id"`
	Count int     `json:"count"`
	Goal  vec.Vec `json:"goal"`
	Color Color   `json:"color"`
}

// Color is an RGBA color spelled "#rrggbb" in JSON.
type Color color.RGBA

// Hex parses a "#rrggbb" color, panicking on malformed input; for literals.
func Hex(s string) Color {
	var c Color
	if err := c.parse(s); err != nil {
		panic(err)
	}
	return c
}

func (c *Color) parse(s string) error {
	var r, g, b uint8
	if len(s) != 7 || s[0] != '#' {
		return errors.Errorf("invalid color %q, want #rrggbb", s)
	}
	if _, err := fmt.Sscanf(s[1:], "%02x%02x%02x", &r, &g, &b); err != nil {
		return errors.Wrapf(err, "invalid color %q", s)
	}
	*c = Color{r, g, b, 0xff}
	return nil
}

// RGBA returns the color as image/color's type.
func (c Color) RGBA() color.RGBA { return color.RGBA(c) }

func (c Color) String() string { return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B) }

// MarshalJSON encodes the color as "#rrggbb".
func (c Color) MarshalJSON() ([]byte, error) { return json.Marshal(c.String()) }

// UnmarshalJSON decodes a "#rrggbb" string.
func (c *Color) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	return c.parse(s)
}

// Validate checks the config for values a grid cannot be built from.
func (cfg Config) Validate() error {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return errors.Errorf("scenario %q: invalid size %vx%v", cfg.Name, cfg.Width, cfg.Height)
	}
	if cfg.Markers < 0 {
		return errors.Errorf("scenario %q: negative marker count %v", cfg.Name, cfg.Markers)
	}
	switch cfg.Scatter {
	case "", ScatterUniform, ScatterNoise:
	default:
		return errors.Errorf("scenario %q: unknown scatter %q", cfg.Name, cfg.Scatter)
	}
	if cfg.NoiseScale < 0 || cfg.Window < 0 || cfg.Radius < 0 {
		return errors.Errorf("scenario %q: noiseScale, window and radius must not be negative", cfg.Name)
	}
	if len(cfg.Classes) == 0 {
		return errors.Errorf("scenario %q: no agent classes", cfg.Name)
	}
	seen := make(map[string]bool, len(cfg.Classes))
	for i, cc := range cfg.Classes {
		switch {
		case cc.ID == "":
			return errors.Errorf("scenario %q: class[%d] has no id", cfg.Name, i)
		case seen[cc.ID]:
			return errors.Errorf("scenario %q: duplicate class %q", cfg.Name, cc.ID)
		case cc.Count < 0:
			return errors.Errorf("scenario %q: class %q has negative count", cfg.Name, cc.ID)
		case cc.Goal.X < 0 || cc.Goal.Y < 0 ||
			cc.Goal.X > float64(cfg.Width-1) || cc.Goal.Y > float64(cfg.Height-1):
			return errors.Errorf("scenario %q: class %q goal %v outside the grid", cfg.Name, cc.ID, cc.Goal)
		}
		seen[cc.ID] = true
	}
	return nil
}

// Decode reads a JSON config and validates it.
func Decode(r io.Reader) (Config, error) {
	var cfg Config
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return cfg, errors.Wrap(err, "decoding scenario")
	}
	return cfg, cfg.Validate()
}

// Load reads a JSON config file; an unnamed config takes the file's name.
func Load(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, errors.Wrap(err, "loading scenario")
	}
	defer f.Close()
	cfg, err := Decode(f)
	if err != nil {
		return cfg, errors.Wrapf(err, "loading %s", path)
	}
	if cfg.Name == "" {
		cfg.Name = strings.TrimSuffix(baseName(path), ".json")
	}
	return cfg, nil
}

func baseName(path string) string {
	if i := strings.LastIndexAny(path, `/\`); i >= 0 {
		return path[i+1:]
	}
	return path
}

// Lookup returns the named preset, or loads the config file at a path ending
// in ".json".
func Lookup(nameOrPath string) (Config, error) {
	if cfg, ok := presets[nameOrPath]; ok {
		cfg.Classes = append([]ClassConfig(nil), cfg.Classes...)
		return cfg, nil
	}
	if strings.HasSuffix(nameOrPath, ".json") {
		return Load(nameOrPath)
	}
	return Config{}, errors.Errorf("no scenario %q (presets: %s)", nameOrPath, strings.Join(Names(), ", "))
}
