package renderer

import (
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/olekukonko/tablewriter"
)

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	ID              uuid.UUID     // Render id, also used in log lines
	Width, Height   int           // Image size
	TotalPixels     int           // Total number of pixels rendered
	TotalSamples    int64         // Total number of camera samples taken
	SamplesPerPixel int           // Samples taken for every pixel
	MaxDepth        int           // Maximum ray bounce depth
	Workers         int           // Worker goroutines used
	Tiles           int           // Tiles in the grid
	Duration        time.Duration // Wall clock render time
}

// SamplesPerSecond returns the sampling throughput
func (s RenderStats) SamplesPerSecond() float64 {
	if s.Duration <= 0 {
		return 0
	}
	return float64(s.TotalSamples) / s.Duration.Seconds()
}

// WriteStatsTable renders the stats, followed by any extra rows, as a text table
func WriteStatsTable(w io.Writer, stats RenderStats, extra ...[]string) {
	table := tablewriter.NewWriter(w)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"Stat", "Value"})
	table.Append([]string{"Render id", stats.ID.String()})
	table.Append([]string{"Resolution", fmt.Sprintf("%dx%d", stats.Width, stats.Height)})
	table.Append([]string{"Samples/pixel", fmt.Sprintf("%d", stats.SamplesPerPixel)})
	table.Append([]string{"Max depth", fmt.Sprintf("%d", stats.MaxDepth)})
	table.Append([]string{"Total samples", fmt.Sprintf("%d", stats.TotalSamples)})
	table.Append([]string{"Tiles/workers", fmt.Sprintf("%d/%d", stats.Tiles, stats.Workers)})
	table.Append([]string{"Render time", stats.Duration.Round(time.Millisecond).String()})
	table.Append([]string{"Samples/sec", fmt.Sprintf("%.0f", stats.SamplesPerSecond())})
	for _, row := range extra {
		table.Append(row)
	}
	table.Render()
}
