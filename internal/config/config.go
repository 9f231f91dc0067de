package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/caarlos0/env/v11"
)

// Config holds all configurable paths and render settings.
type Config struct {
	// Paths
	BaseDir    string `json:"base_dir" env:"PICKER_BASE_DIR"`
	Scene      string `json:"scene" env:"PICKER_SCENE"`
	Shots      string `json:"shots" env:"PICKER_SHOTS"`
	TextureDir string `json:"texture_dir" env:"PICKER_TEXTURE_DIR"`
	OutputDir  string `json:"output_dir" env:"PICKER_OUTPUT_DIR"`

	// Render settings
	Width       int `json:"width" env:"PICKER_WIDTH"`
	Height      int `json:"height" env:"PICKER_HEIGHT"`
	Supersample int `json:"supersample" env:"PICKER_SUPERSAMPLE"`
	Workers     int `json:"workers" env:"PICKER_WORKERS"`
}

// Defaults applied by Resolve to fields left unset.
const (
	DefaultOutputDir   = "renders"
	DefaultWidth       = 640
	DefaultHeight      = 480
	DefaultSupersample = 2
)

// Load reads a JSON config file and returns Config.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// ApplyEnv overrides fields from PICKER_* environment variables. Unset
// variables leave the current values alone.
func (c *Config) ApplyEnv() error {
	if err := env.Parse(c); err != nil {
		return fmt.Errorf("config: parse env: %w", err)
	}
	return nil
}

// Resolve applies CLI flags, resolves relative paths against BaseDir, and
// fills remaining empty fields with defaults.
// CLI flags take priority when non-zero/non-empty.
func (c *Config) Resolve(flags Flags) {
	// CLI flags override config file and environment
	if flags.Scene != "" {
		c.Scene = flags.Scene
	}
	if flags.Shots != "" {
		c.Shots = flags.Shots
	}
	if flags.TextureDir != "" {
		c.TextureDir = flags.TextureDir
	}
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	}
	if flags.Width > 0 {
		c.Width = flags.Width
	}
	if flags.Height > 0 {
		c.Height = flags.Height
	}
	if flags.Supersample > 0 {
		c.Supersample = flags.Supersample
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}

	if c.OutputDir == "" {
		c.OutputDir = DefaultOutputDir
	}

	// Resolve relative paths against base dir
	if c.BaseDir != "" {
		for _, p := range []*string{&c.Scene, &c.Shots, &c.TextureDir, &c.OutputDir} {
			if *p != "" && !filepath.IsAbs(*p) {
				*p = filepath.Join(c.BaseDir, *p)
			}
		}
	}

	// Defaults for render settings
	if c.Width <= 0 {
		c.Width = DefaultWidth
	}
	if c.Height <= 0 {
		c.Height = DefaultHeight
	}
	if c.Supersample <= 0 {
		c.Supersample = DefaultSupersample
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	Scene       string
	Shots       string
	TextureDir  string
	OutputDir   string
	Width       int
	Height      int
	Supersample int
	Workers     int
}
