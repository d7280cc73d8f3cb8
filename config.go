package cones

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"golang.org/x/image/colornames"
)

// Config is read from a TOML file. Fields missing from the file keep the
// values of DefaultConfig.
type Config struct {
	Display DisplayConfig `toml:"display"`
	Scene   SceneConfig   `toml:"scene"`
}

type DisplayConfig struct {
	Title      string     `toml:"title"`
	Width      int        `toml:"width"`
	Height     int        `toml:"height"`
	ClearColor [4]float32 `toml:"clear_color"`
}

type SceneConfig struct {
	GridSize        int     `toml:"grid_size"`
	Spacing         float32 `toml:"spacing"`
	ConeDivisions   int     `toml:"cone_divisions"`
	LightIntensity  float32 `toml:"light_intensity"`
	RedLightColor   string  `toml:"red_light_color"`
	GreenLightColor string  `toml:"green_light_color"`
}

func DefaultConfig() Config {
	return Config{
		Display: DisplayConfig{
			Title:      "cones",
			Width:      1280,
			Height:     720,
			ClearColor: [4]float32{0.34, 0.36, 0.52, 1.0},
		},
		Scene: SceneConfig{
			GridSize:        201,
			Spacing:         2.5,
			ConeDivisions:   7,
			LightIntensity:  10.0,
			RedLightColor:   "red",
			GreenLightColor: "lime",
		},
	}
}

func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()

	dec := toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return Config{}, fmt.Errorf("unknown fields:\n%s", strict.String())
		}
		return Config{}, fmt.Errorf("decode: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (cfg Config) Validate() error {
	if cfg.Display.Width <= 0 || cfg.Display.Height <= 0 {
		return fmt.Errorf("display size must be positive, got %dx%d", cfg.Display.Width, cfg.Display.Height)
	}
	if cfg.Scene.GridSize < 0 {
		return fmt.Errorf("grid_size must not be negative, got %d", cfg.Scene.GridSize)
	}
	if cfg.Scene.ConeDivisions < 3 {
		return fmt.Errorf("cone_divisions must be at least 3, got %d", cfg.Scene.ConeDivisions)
	}
	if _, err := ParseColor(cfg.Scene.RedLightColor); err != nil {
		return fmt.Errorf("red_light_color: %w", err)
	}
	if _, err := ParseColor(cfg.Scene.GreenLightColor); err != nil {
		return fmt.Errorf("green_light_color: %w", err)
	}
	return nil
}

// ParseColor accepts a CSS colour name or #rrggbb and returns linear RGB in
// [0, 1].
func ParseColor(s string) ([3]float32, error) {
	s = strings.ToLower(strings.TrimSpace(s))

	if hex, ok := strings.CutPrefix(s, "#"); ok {
		if len(hex) != 6 {
			return [3]float32{}, fmt.Errorf("colour %q: want #rrggbb", s)
		}
		v, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return [3]float32{}, fmt.Errorf("colour %q: %w", s, err)
		}
		return [3]float32{
			float32(v>>16&0xff) / 255,
			float32(v>>8&0xff) / 255,
			float32(v&0xff) / 255,
		}, nil
	}

	c, ok := colornames.Map[s]
	if !ok {
		return [3]float32{}, fmt.Errorf("unknown colour name %q", s)
	}
	return [3]float32{float32(c.R) / 255, float32(c.G) / 255, float32(c.B) / 255}, nil
}
