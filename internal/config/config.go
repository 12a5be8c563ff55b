package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"voxel-island/internal/logging"
)

// EnvConfigPath names the settings file when Load is given an empty path
const EnvConfigPath = "VOXEL_CONFIG"

var ErrInvalid = errors.New("invalid settings")

// Settings is the root of the YAML settings file
type Settings struct {
	Window   WindowSettings   `yaml:"window"`
	Render   RenderSettings   `yaml:"render"`
	World    WorldGenSettings `yaml:"world"`
	Atlas    AtlasSettings    `yaml:"atlas"`
	LogLevel string           `yaml:"log_level"`
}

type WindowSettings struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

// RenderSettings holds per-frame render configuration
type RenderSettings struct {
	TargetFPS int     `yaml:"target_fps"`
	FOV       float32 `yaml:"fov"`
	Wireframe bool    `yaml:"wireframe"`
	// FrustumCulling swaps the always-visible predicate for a frustum test
	FrustumCulling   bool `yaml:"frustum_culling"`
	DebugChunkColors bool `yaml:"debug_chunk_colors"`
}

// Default returns the built-in settings
func Default() *Settings {
	return &Settings{
		Window: WindowSettings{
			Title:  "Voxel Island",
			Width:  1280,
			Height: 720,
		},
		Render: RenderSettings{
			TargetFPS: 60,
			FOV:       70,
		},
		World:    DefaultWorldGen(),
		Atlas:    DefaultAtlas(),
		LogLevel: "info",
	}
}

// Load reads a YAML settings file over the defaults.
// An empty path falls back to $VOXEL_CONFIG; with neither set the defaults are returned.
func Load(path string) (*Settings, error) {
	cfg := Default()
	if path == "" {
		path = os.Getenv(EnvConfigPath)
		if path == "" {
			return cfg, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read settings: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse settings %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks every section
func (s *Settings) Validate() error {
	if s.Window.Width <= 0 || s.Window.Height <= 0 {
		return fmt.Errorf("%w: window size %dx%d", ErrInvalid, s.Window.Width, s.Window.Height)
	}
	if s.Render.TargetFPS < 0 {
		return fmt.Errorf("%w: target_fps %d", ErrInvalid, s.Render.TargetFPS)
	}
	if s.Render.FOV <= 0 || s.Render.FOV >= 180 {
		return fmt.Errorf("%w: fov %v", ErrInvalid, s.Render.FOV)
	}
	if _, err := logging.ParseLevel(s.LogLevel); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if err := s.World.Validate(); err != nil {
		return err
	}
	return s.Atlas.Validate()
}

// Level returns the parsed log level, INFO if it cannot be parsed
func (s *Settings) Level() logging.Level {
	l, _ := logging.ParseLevel(s.LogLevel)
	return l
}
