package cmd

import (
	"fmt"

	"github.com/urfave/cli"

	"github.com/df07/go-raytracer/pkg/config"
	"github.com/df07/go-raytracer/pkg/logger"
)

// loadConfig merges the config file and the command's flags
func loadConfig(ctx *cli.Context) (*config.Config, error) {
	overrides := config.Overrides{
		Width:           ctx.Int("width"),
		SamplesPerPixel: ctx.Int("spp"),
		Workers:         ctx.Int("workers"),
		TileSize:        ctx.Int("tile-size"),
		Scene:           ctx.String("scene"),
		SceneFile:       ctx.String("file"),
		TextureDir:      ctx.String("textures"),
		OutputPath:      ctx.String("out"),
		Format:          ctx.String("format"),
		Compression:     ctx.String("compression"),
		LogFile:         ctx.String("log-file"),
	}
	if ctx.IsSet("depth") {
		depth := ctx.Int("depth")
		overrides.MaxDepth = &depth
	}
	if ctx.IsSet("seed") {
		seed := ctx.Int64("seed")
		overrides.Seed = &seed
	}
	if ctx.GlobalBool("v") || ctx.GlobalBool("vv") {
		overrides.LogLevel = "debug"
	}

	cfg, err := config.Load(ctx.GlobalString("config"), overrides)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func setupLogging(cfg *config.Config) error {
	return logger.InitWithFileConfig(cfg.Logging.Level, logFileConfig(cfg.Logging), true)
}

// logFileConfig starts from the rotation defaults and applies the configured limits
func logFileConfig(l config.LoggingConfig) logger.FileConfig {
	if l.LogFile == "" {
		return logger.FileConfig{}
	}
	fileCfg := logger.DefaultFileConfig(l.LogFile)
	if l.MaxSizeMB > 0 {
		fileCfg.MaxSizeMB = l.MaxSizeMB
	}
	if l.MaxBackups > 0 {
		fileCfg.MaxBackups = l.MaxBackups
	}
	if l.MaxAgeDays > 0 {
		fileCfg.MaxAgeDays = l.MaxAgeDays
	}
	fileCfg.Compress = l.Compress
	return fileCfg
}
