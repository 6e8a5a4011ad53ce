package cmd

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/urfave/cli"
	"go.uber.org/zap"

	"github.com/df07/go-raytracer/pkg/config"
	"github.com/df07/go-raytracer/pkg/logger"
	"github.com/df07/go-raytracer/pkg/output"
	"github.com/df07/go-raytracer/pkg/renderer"
	"github.com/df07/go-raytracer/pkg/scene"
	"github.com/df07/go-raytracer/pkg/sysinfo"
)

// RenderScene renders a still frame and writes it to disk.
func RenderScene(ctx *cli.Context) error {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}
	if err := setupLogging(cfg); err != nil {
		return err
	}
	defer logger.Sync()

	s, err := loadScene(cfg)
	if err != nil {
		return err
	}

	sampling := cfg.Sampling(s.SamplingConfig)
	rt := renderer.NewRaytracer(s.World, s.Camera(), s.Background, sampling, logger.NewPrintfLogger("scene", s.Name))
	if ctx.GlobalBool("vv") {
		rt.SetProgressCallback(func(done, total int) {
			logger.Debug("progress", zap.Int("pixels", done), zap.Int("total", total))
		})
	}

	// Ctrl-C cancels the render between pixels
	renderCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	frame, stats, err := rt.Render(renderCtx)
	if err != nil {
		logger.Error("render failed", zap.String("scene", s.Name), zap.Error(err))
		return fmt.Errorf("render %s: %w", s.Name, err)
	}

	path := cfg.OutputFile(s.Name, time.Now())
	format, _ := output.ParseFormat(cfg.Output.Format)
	compression, _ := output.ParseCompression(cfg.Output.Compression)
	if err := output.WriteFile(path, frame, format, compression); err != nil {
		return err
	}
	logger.Info("frame saved",
		zap.String("render", stats.ID.String()),
		zap.String("path", path),
		zap.Float64("avg_luminance", frame.CalculateAverageLuminance()))

	displayFrameStats(ctx, s, stats, path)
	return nil
}

// loadScene builds the configured scene; a scene file takes priority over a name
func loadScene(cfg *config.Config) (*scene.Scene, error) {
	opts := scene.Options{
		Seed:       cfg.Render.Seed,
		TextureDir: cfg.Scene.TextureDir,
		Width:      cfg.Render.Width,
		Logger:     logger.NewPrintfLogger("phase", "scene"),
	}
	if cfg.Scene.File != "" {
		return scene.LoadFile(cfg.Scene.File, opts)
	}
	return scene.Create(cfg.Scene.Name, opts)
}

func displayFrameStats(ctx *cli.Context, s *scene.Scene, stats renderer.RenderStats, path string) {
	rows := [][]string{
		{"Scene", s.Name},
		{"Output", path},
	}
	if s.BVHStats != nil {
		rows = append(rows, []string{"BVH nodes/depth", fmt.Sprintf("%d/%d", s.BVHStats.TotalNodes, s.BVHStats.MaxDepth)})
	}

	host, err := sysinfo.Collect()
	if err != nil {
		logger.Warn("incomplete host information", zap.Error(err))
	}
	rows = append(rows, host.Rows()...)

	var buf bytes.Buffer
	renderer.WriteStatsTable(&buf, stats, rows...)
	fmt.Fprint(ctx.App.Writer, buf.String())
}
