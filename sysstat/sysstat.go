// Package sysstat samples host CPU and GPU utilisation for the status bar.
package sysstat

import (
	"context"
	"errors"
	"math"
)

// GPU is one accelerator as reported by the driver. Load is in 0..1.
type GPU struct {
	Index int
	Name  string
	Load  float64
}

// Usage is a rounded percentage snapshot ready for display.
type Usage struct {
	CPU     int
	GPU     int
	GPUName string
}

// Sampler is the OS metrics provider.
type Sampler interface {
	CPUPercent(ctx context.Context) (float64, error)
	GPUs(ctx context.Context) ([]GPU, error)
}

// GPUPercent reports the first GPU's load as a rounded percentage, or 0 without GPUs.
func GPUPercent(gpus []GPU) int {
	if len(gpus) == 0 {
		return 0
	}
	return clampPercent(math.Round(gpus[0].Load * 100))
}

// Sample takes one reading from s. A failing sensor reads as 0 and its error is
// returned alongside whatever the other sensor produced.
func Sample(ctx context.Context, s Sampler) (Usage, error) {
	var usage Usage

	cpuPct, cpuErr := s.CPUPercent(ctx)
	if cpuErr == nil {
		usage.CPU = clampPercent(math.Round(cpuPct))
	}

	gpus, gpuErr := s.GPUs(ctx)
	if gpuErr == nil {
		usage.GPU = GPUPercent(gpus)
		if len(gpus) > 0 {
			usage.GPUName = gpus[0].Name
		}
	}

	return usage, errors.Join(cpuErr, gpuErr)
}

func clampPercent(v float64) int {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return int(v)
}
