package renderer

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/df07/go-raytracer/pkg/core"
	"github.com/df07/go-raytracer/pkg/integrator"
)

// DefaultTileSize is the edge length of a render tile in pixels
const DefaultTileSize = 32

// SamplingConfig contains rendering configuration
type SamplingConfig struct {
	Width           int   // Image width in pixels
	Height          int   // Image height in pixels
	SamplesPerPixel int   // Number of rays per pixel
	MaxDepth        int   // Maximum ray bounce depth
	NumWorkers      int   // Number of parallel workers (0 = use CPU count)
	TileSize        int   // Size of each tile
	Seed            int64 // Base seed for the per-tile samplers
}

// DefaultSamplingConfig returns sensible default values
func DefaultSamplingConfig() SamplingConfig {
	return SamplingConfig{
		Width:           400,
		Height:          225,
		SamplesPerPixel: 100,
		MaxDepth:        50,
		NumWorkers:      0,
		TileSize:        DefaultTileSize,
		Seed:            42,
	}
}

// Validate rejects configurations that cannot produce an image
func (c SamplingConfig) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("invalid image size %dx%d", c.Width, c.Height)
	}
	if c.SamplesPerPixel <= 0 {
		return fmt.Errorf("samples per pixel must be positive, got %d", c.SamplesPerPixel)
	}
	if c.MaxDepth < 0 {
		return fmt.Errorf("max depth must not be negative, got %d", c.MaxDepth)
	}
	return nil
}

// Raytracer renders a world through a camera with a tiled worker pool
type Raytracer struct {
	world      core.Hittable
	camera     *Camera
	integrator integrator.Integrator
	config     SamplingConfig
	logger     core.Logger
	onProgress ProgressFunc
}

// NewRaytracer creates a raytracer using the path tracing integrator
func NewRaytracer(world core.Hittable, camera *Camera, background integrator.Background, config SamplingConfig, logger core.Logger) *Raytracer {
	if logger == nil {
		logger = core.NopLogger{}
	}
	return &Raytracer{
		world:      world,
		camera:     camera,
		integrator: integrator.NewPathTracingIntegrator(config.MaxDepth, background),
		config:     config,
		logger:     logger,
	}
}

// SetIntegrator replaces the light transport algorithm
func (rt *Raytracer) SetIntegrator(integratorInst integrator.Integrator) {
	rt.integrator = integratorInst
}

// SetProgressCallback installs a progress callback, invoked from worker goroutines
func (rt *Raytracer) SetProgressCallback(callback ProgressFunc) {
	rt.onProgress = callback
}

// Render renders the full image. Every pixel receives exactly SamplesPerPixel samples.
// If ctx is cancelled the partial frame is discarded and ctx.Err() is returned.
func (rt *Raytracer) Render(ctx context.Context) (*Frame, RenderStats, error) {
	if err := rt.config.Validate(); err != nil {
		return nil, RenderStats{}, err
	}

	width, height := rt.config.Width, rt.config.Height
	tiles := NewTileGrid(width, height, rt.config.TileSize, rt.config.Seed)
	frame := NewFrame(width, height)
	totalPixels := width * height

	logStep := max(1, totalPixels/10)
	lastLogged := 0
	progress := NewProgress(totalPixels, min(logStep, max(1, width)), func(done, total int) {
		// Called under the progress lock, so lastLogged needs no extra guard
		if done-lastLogged >= logStep || done == total {
			lastLogged = done
			rt.logger.Printf("Rendered %d/%d pixels (%.0f%%)\n", done, total, 100*float64(done)/float64(total))
		}
		if rt.onProgress != nil {
			rt.onProgress(done, total)
		}
	})

	tileRenderer := NewTileRenderer(rt.world, rt.camera, rt.integrator, width, height, rt.config.SamplesPerPixel)
	pool := NewWorkerPool(tileRenderer, frame, progress, len(tiles), rt.config.NumWorkers)

	stats := RenderStats{
		ID:              uuid.New(),
		Width:           width,
		Height:          height,
		TotalPixels:     totalPixels,
		SamplesPerPixel: rt.config.SamplesPerPixel,
		MaxDepth:        rt.config.MaxDepth,
		Workers:         pool.GetNumWorkers(),
		Tiles:           len(tiles),
	}

	rt.logger.Printf("Render %s: %dx%d, %d samples/pixel, depth %d, %d tiles on %d workers\n",
		stats.ID, width, height, stats.SamplesPerPixel, stats.MaxDepth, stats.Tiles, stats.Workers)

	startTime := time.Now()
	pool.Start(ctx)
	for i, tile := range tiles {
		pool.SubmitTask(TileTask{Tile: tile, TaskID: i})
	}

	var renderErr error
	for i := 0; i < len(tiles); i++ {
		result, ok := pool.GetResult()
		if !ok {
			renderErr = fmt.Errorf("worker pool closed unexpectedly")
			break
		}
		if result.Error != nil && renderErr == nil {
			renderErr = result.Error
		}
	}
	pool.Stop()

	stats.Duration = time.Since(startTime)
	if renderErr != nil {
		rt.logger.Printf("Render %s cancelled after %v (%d/%d pixels)\n", stats.ID, stats.Duration, progress.Done(), totalPixels)
		return nil, stats, renderErr
	}

	stats.TotalSamples = int64(totalPixels) * int64(rt.config.SamplesPerPixel)
	rt.logger.Printf("Render %s completed in %v\n", stats.ID, stats.Duration)

	return frame, stats, nil
}

// RenderPixels is the per-pixel entry point: it renders the world and returns
// the tone-mapped rows, top row first
func RenderPixels(ctx context.Context, world core.Hittable, cameraConfig CameraConfig, background integrator.Background, config SamplingConfig) ([][]RGB, error) {
	frame, _, err := NewRaytracer(world, NewCamera(cameraConfig), background, config, nil).Render(ctx)
	if err != nil {
		return nil, err
	}
	return frame.Pixels, nil
}
