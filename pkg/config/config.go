// Package config handles renderer configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"go.uber.org/multierr"

	"github.com/df07/go-raytracer/pkg/output"
	"github.com/df07/go-raytracer/pkg/renderer"
)

// Config holds all renderer settings.
type Config struct {
	Render  RenderConfig  `yaml:"render"`
	Scene   SceneConfig   `yaml:"scene"`
	Output  OutputConfig  `yaml:"output"`
	Logging LoggingConfig `yaml:"logging"`
}

// RenderConfig holds image size and sampling settings.
// Zero SamplesPerPixel or a nil MaxDepth defers to the scene's recommendation;
// an explicit max_depth of 0 renders black.
type RenderConfig struct {
	Width           int   `yaml:"width"`
	SamplesPerPixel int   `yaml:"samples_per_pixel"`
	MaxDepth        *int  `yaml:"max_depth,omitempty"`
	Workers         int   `yaml:"workers"` // 0 uses every CPU
	TileSize        int   `yaml:"tile_size"`
	Seed            int64 `yaml:"seed"`
}

// SceneConfig selects what to render.
type SceneConfig struct {
	Name       string `yaml:"name"` // Built-in scene id
	File       string `yaml:"file"` // YAML scene description, takes priority over Name
	TextureDir string `yaml:"texture_dir"`
	ScenesDir  string `yaml:"scenes_dir"` // Scanned by the scenes command
}

// OutputConfig controls where and how the frame is written.
type OutputConfig struct {
	Dir         string `yaml:"dir"`
	Path        string `yaml:"path"` // Explicit file path; empty means <dir>/<scene>/render_<timestamp>
	Format      string `yaml:"format"`
	Compression string `yaml:"compression"` // raw format only
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level      string `yaml:"level"`
	LogFile    string `yaml:"log_file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
	Compress   bool   `yaml:"compress"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	sampling := renderer.DefaultSamplingConfig()
	return &Config{
		Render: RenderConfig{
			Width:    sampling.Width,
			Workers:  0,
			TileSize: sampling.TileSize,
			Seed:     sampling.Seed,
		},
		Scene: SceneConfig{
			Name:       "random-spheres",
			TextureDir: "textures",
			ScenesDir:  "scenes",
		},
		Output: OutputConfig{
			Dir:         "output",
			Format:      string(output.FormatPNG),
			Compression: string(output.CompressionZstd),
		},
		Logging: LoggingConfig{
			Level:      "info",
			LogFile:    "",
			MaxSizeMB:  50,
			MaxBackups: 3,
			MaxAgeDays: 7,
			Compress:   true,
		},
	}
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var err error
	if c.Render.Width <= 0 {
		err = multierr.Append(err, fmt.Errorf("render.width must be positive, got %d", c.Render.Width))
	}
	if c.Render.SamplesPerPixel < 0 {
		err = multierr.Append(err, fmt.Errorf("render.samples_per_pixel must not be negative, got %d", c.Render.SamplesPerPixel))
	}
	if c.Render.MaxDepth != nil && *c.Render.MaxDepth < 0 {
		err = multierr.Append(err, fmt.Errorf("render.max_depth must not be negative, got %d", *c.Render.MaxDepth))
	}
	if c.Render.Workers < 0 {
		err = multierr.Append(err, fmt.Errorf("render.workers must not be negative, got %d", c.Render.Workers))
	}
	if c.Render.TileSize <= 0 {
		err = multierr.Append(err, fmt.Errorf("render.tile_size must be positive, got %d", c.Render.TileSize))
	}
	if c.Scene.Name == "" && c.Scene.File == "" {
		err = multierr.Append(err, errors.New("scene.name or scene.file is required"))
	}
	if _, formatErr := output.ParseFormat(c.Output.Format); formatErr != nil {
		err = multierr.Append(err, fmt.Errorf("output.format: %w", formatErr))
	}
	if _, compressionErr := output.ParseCompression(c.Output.Compression); compressionErr != nil {
		err = multierr.Append(err, fmt.Errorf("output.compression: %w", compressionErr))
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		err = multierr.Append(err, fmt.Errorf("logging.level must be debug, info, warn or error, got %q", c.Logging.Level))
	}
	return err
}

// Sampling merges the render settings over a scene's recommended sampling.
func (c *Config) Sampling(recommended renderer.SamplingConfig) renderer.SamplingConfig {
	sampling := recommended
	if c.Render.SamplesPerPixel > 0 {
		sampling.SamplesPerPixel = c.Render.SamplesPerPixel
	}
	if c.Render.MaxDepth != nil {
		sampling.MaxDepth = *c.Render.MaxDepth
	}
	sampling.NumWorkers = c.Render.Workers
	sampling.TileSize = c.Render.TileSize
	sampling.Seed = c.Render.Seed
	return sampling
}

// OutputFile returns the frame path: Output.Path when set, otherwise a
// timestamped file under Output.Dir/<scene>.
func (c *Config) OutputFile(sceneName string, now time.Time) string {
	if c.Output.Path != "" {
		return c.Output.Path
	}
	format, _ := output.ParseFormat(c.Output.Format)
	compression, _ := output.ParseCompression(c.Output.Compression)
	filename := fmt.Sprintf("render_%s%s", now.Format("20060102_150405"), output.Extension(format, compression))
	return filepath.Join(c.Output.Dir, sceneName, filename)
}
