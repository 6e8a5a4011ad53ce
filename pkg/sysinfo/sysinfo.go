// Package sysinfo summarizes the host a render ran on.
package sysinfo

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
	"go.uber.org/multierr"
)

const bytesPerGiB = 1024 * 1024 * 1024

// Host describes the CPU and memory of the machine
type Host struct {
	CPUModel      string
	ClockGHz      float64
	PhysicalCores int
	LogicalCores  int
	TotalMemory   uint64 // bytes
	OS, Arch      string
}

// Collect queries the host. Fields that cannot be read are left zero and
// their errors are combined into the returned error.
func Collect() (Host, error) {
	host := Host{OS: runtime.GOOS, Arch: runtime.GOARCH}
	var err error

	infos, infoErr := cpu.Info()
	switch {
	case infoErr != nil:
		err = multierr.Append(err, fmt.Errorf("cpu info: %w", infoErr))
	case len(infos) == 0:
		err = multierr.Append(err, errors.New("no CPU information available"))
	default:
		host.CPUModel = infos[0].ModelName
		host.ClockGHz = infos[0].Mhz / 1000
	}

	physical, countErr := cpu.Counts(false)
	if countErr != nil {
		err = multierr.Append(err, fmt.Errorf("physical cores: %w", countErr))
	}
	host.PhysicalCores = physical

	logical, countErr := cpu.Counts(true)
	if countErr != nil || logical == 0 {
		logical = runtime.NumCPU()
	}
	host.LogicalCores = logical

	vm, memErr := mem.VirtualMemory()
	if memErr != nil {
		err = multierr.Append(err, fmt.Errorf("memory: %w", memErr))
	} else {
		host.TotalMemory = vm.Total
	}

	return host, err
}

// Rows formats the host as table rows for the render statistics
func (h Host) Rows() [][]string {
	model := h.CPUModel
	if model == "" {
		model = "unknown"
	}
	if h.ClockGHz > 0 {
		model = fmt.Sprintf("%s @ %.2f GHz", model, h.ClockGHz)
	}
	return [][]string{
		{"CPU", model},
		{"Cores", fmt.Sprintf("%d physical / %d logical", h.PhysicalCores, h.LogicalCores)},
		{"Memory", fmt.Sprintf("%.1f GiB", float64(h.TotalMemory)/bytesPerGiB)},
		{"Platform", h.OS + "/" + h.Arch},
	}
}
