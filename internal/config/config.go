package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// Supported preview formats. WebP output is lossless.
const (
	FormatWebP = "webp"
	FormatTGA  = "tga"
)

// Config holds all configurable paths and render settings.
type Config struct {
	// Paths
	SceneFile string `json:"scene_file"`
	OutputDir string `json:"output_dir"`

	// Render settings
	RenderSize  int    `json:"render_size"`
	Supersample int    `json:"supersample"`
	Format      string `json:"format"`
	Workers     int    `json:"workers"`
}

// Load reads a JSON config file and returns Config.
// Fields not set in the file keep their zero values. Relative paths in the
// file are taken relative to the file's directory.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	dir := filepath.Dir(path)
	if cfg.SceneFile != "" && !filepath.IsAbs(cfg.SceneFile) {
		cfg.SceneFile = filepath.Join(dir, cfg.SceneFile)
	}
	if cfg.OutputDir != "" && !filepath.IsAbs(cfg.OutputDir) {
		cfg.OutputDir = filepath.Join(dir, cfg.OutputDir)
	}

	return cfg, nil
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	SceneFile string
	OutputDir string
	Size      int
	Format    string
	Workers   int
}

// Resolve applies flag overrides, then fills any empty fields with defaults.
func (c *Config) Resolve(flags Flags) {
	// CLI flags override config file
	if flags.SceneFile != "" {
		c.SceneFile = flags.SceneFile
	}
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	}
	if flags.Size > 0 {
		c.RenderSize = flags.Size
	}
	if flags.Format != "" {
		c.Format = flags.Format
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}

	if c.OutputDir == "" && c.SceneFile != "" {
		c.OutputDir = filepath.Join(filepath.Dir(c.SceneFile), "renders")
	}

	// Defaults for render settings
	if c.RenderSize <= 0 {
		c.RenderSize = 256
	}
	if c.Supersample <= 0 {
		c.Supersample = 2
	}
	c.Format = strings.ToLower(c.Format)
	if c.Format == "" {
		c.Format = FormatWebP
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
}

// Validate reports settings that Resolve cannot default.
func (c *Config) Validate() error {
	if c.SceneFile == "" {
		return fmt.Errorf("config: no scene file (use -scene or scene_file)")
	}
	switch c.Format {
	case FormatWebP, FormatTGA:
	default:
		return fmt.Errorf("config: unsupported format %q", c.Format)
	}
	if c.RenderSize > 8192 {
		return fmt.Errorf("config: render_size %d exceeds 8192", c.RenderSize)
	}
	return nil
}
