package sysstat

import (
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/shirou/gopsutil/v4/cpu"
)

// HostSampler reads CPU load through gopsutil and GPU load through nvidia-smi.
// Hosts without nvidia-smi simply report no GPUs.
type HostSampler struct {
	nvidiaSMI string
	run       func(ctx context.Context, name string, args ...string) ([]byte, error)
}

func NewHostSampler() *HostSampler {
	path, _ := exec.LookPath("nvidia-smi")
	return &HostSampler{
		nvidiaSMI: path,
		run: func(ctx context.Context, name string, args ...string) ([]byte, error) {
			return exec.CommandContext(ctx, name, args...).Output()
		},
	}
}

// CPUPercent returns total CPU utilisation since the previous call.
func (h *HostSampler) CPUPercent(ctx context.Context) (float64, error) {
	values, err := cpu.PercentWithContext(ctx, 0, false)
	if err != nil {
		return 0, fmt.Errorf("failed to read cpu usage: %w", err)
	}
	if len(values) == 0 {
		return 0, nil
	}
	return values[0], nil
}

func (h *HostSampler) GPUs(ctx context.Context) ([]GPU, error) {
	if h.nvidiaSMI == "" {
		return nil, nil
	}

	out, err := h.run(ctx, h.nvidiaSMI,
		"--query-gpu=index,name,utilization.gpu",
		"--format=csv,noheader,nounits",
	)
	if err != nil {
		return nil, fmt.Errorf("nvidia-smi failed: %w", err)
	}

	return ParseNvidiaSMI(string(out))
}

// ParseNvidiaSMI parses "index, name, utilization" CSV lines. Utilisation that
// the driver cannot report ("[N/A]") reads as 0.
func ParseNvidiaSMI(out string) ([]GPU, error) {
	var gpus []GPU

	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		fields := strings.Split(line, ",")
		if len(fields) < 3 {
			return nil, fmt.Errorf("unexpected nvidia-smi line %q", line)
		}

		index, err := strconv.Atoi(strings.TrimSpace(fields[0]))
		if err != nil {
			return nil, fmt.Errorf("bad gpu index in %q: %w", line, err)
		}

		// GPU names may themselves contain commas
		name := strings.TrimSpace(strings.Join(fields[1:len(fields)-1], ","))
		utilField := strings.TrimSpace(fields[len(fields)-1])

		var load float64
		if util, err := strconv.ParseFloat(utilField, 64); err == nil {
			load = util / 100
		}

		gpus = append(gpus, GPU{Index: index, Name: name, Load: load})
	}

	return gpus, nil
}
