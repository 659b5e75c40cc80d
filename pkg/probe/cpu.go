// Copyright (c) 2025, the lxc-autoscale authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package probe

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/proxmoxkit/lxc-autoscale/pkg/defaults"
	"github.com/proxmoxkit/lxc-autoscale/pkg/errors"
	"github.com/proxmoxkit/lxc-autoscale/pkg/executor"
)

// Probe reads CPU and memory utilization of a single container through the
// container manager's exec facility.
type Probe struct {
	exec executor.Executor

	// sampleInterval is the sleep between the two /proc/stat reads in the
	// delta-sampling CPU method.
	sampleInterval time.Duration
}

// New creates a Probe with the default CPU sampling interval.
func New(exec executor.Executor) *Probe {
	return NewWithInterval(exec, defaults.CPUSampleInterval)
}

// NewWithInterval creates a Probe with an explicit CPU sampling interval.
func NewWithInterval(exec executor.Executor, interval time.Duration) *Probe {
	if interval <= 0 {
		interval = defaults.CPUSampleInterval
	}
	return &Probe{exec: exec, sampleInterval: interval}
}

// cpuMethod is one independently-fallible CPU estimation strategy.
type cpuMethod struct {
	name string
	fn   func(ctx context.Context, id string) (float64, error)
}

// CPUUsage estimates the container's CPU utilization in percent. Methods
// are tried in fixed priority order until one yields a valid, non-negative
// reading. If every method fails, the probe returns 0.0 and logs the
// failure: a monitoring cycle must never abort because one container's CPU
// cannot be read.
func (p *Probe) CPUUsage(ctx context.Context, id string) float64 {
	methods := []cpuMethod{
		{name: "loadavg", fn: p.cpuFromLoadAverage},
		{name: "stat-delta", fn: p.cpuFromStatDelta},
	}

	for _, m := range methods {
		usage, err := m.fn(ctx, id)
		if err != nil {
			slog.Warn("cpu method failed", "method", m.name, "container", id, "error", err)
			continue
		}
		if usage < 0 {
			slog.Warn("cpu method returned negative reading", "method", m.name, "container", id, "usage", usage)
			continue
		}
		slog.Info("cpu usage measured", "method", m.name, "container", id, "usage", usage)
		return usage
	}

	slog.Error("all cpu methods failed, using 0.0", "container", id)
	return 0.0
}

// cpuFromLoadAverage estimates utilization from the container's 1-minute
// load average relative to its visible CPU count.
func (p *Probe) cpuFromLoadAverage(ctx context.Context, id string) (float64, error) {
	out, err := p.exec.Run(ctx, fmt.Sprintf("pct exec %s -- cat /proc/loadavg", id))
	if err != nil {
		return 0, fmt.Errorf("reading loadavg: %w", err)
	}
	fields := strings.Fields(out)
	if len(fields) == 0 {
		return 0, errors.New(errors.ErrCodeParse, "empty loadavg output")
	}
	load, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeParse, "unparseable loadavg", err)
	}

	out, err = p.exec.Run(ctx, fmt.Sprintf("pct exec %s -- nproc", id))
	if err != nil {
		return 0, fmt.Errorf("reading cpu count: %w", err)
	}
	cpus, err := strconv.Atoi(strings.TrimSpace(out))
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeParse, "unparseable cpu count", err)
	}
	if cpus == 0 {
		return 0, errors.New(errors.ErrCodeParse, "cpu count is zero")
	}

	return round2(math.Min(load/float64(cpus)*100, 100.0)), nil
}

// cpuFromStatDelta samples the container's cumulative CPU time counters
// twice, sampleInterval apart, and derives busy time from the delta. A
// zero total delta is a real failure mode under clock or scheduling
// anomalies and is reported as an error, not masked.
func (p *Probe) cpuFromStatDelta(ctx context.Context, id string) (float64, error) {
	firstTotal, firstIdle, err := p.readCPUTimes(ctx, id)
	if err != nil {
		return 0, err
	}

	select {
	case <-ctx.Done():
		return 0, ctx.Err()
	case <-time.After(p.sampleInterval):
	}

	secondTotal, secondIdle, err := p.readCPUTimes(ctx, id)
	if err != nil {
		return 0, err
	}

	totalDelta := secondTotal - firstTotal
	idleDelta := secondIdle - firstIdle
	if totalDelta == 0 {
		return 0, errors.New(errors.ErrCodeParse, "total cpu time did not change between samples")
	}

	usage := 100.0 * (totalDelta - idleDelta) / totalDelta
	return round2(math.Max(math.Min(usage, 100.0), 0.0)), nil
}

// readCPUTimes parses the aggregate cpu line of the container's
// /proc/stat, returning total and idle jiffies.
func (p *Probe) readCPUTimes(ctx context.Context, id string) (total, idle float64, err error) {
	out, err := p.exec.Run(ctx, fmt.Sprintf("pct exec %s -- cat /proc/stat", id))
	if err != nil {
		return 0, 0, fmt.Errorf("reading /proc/stat: %w", err)
	}

	for _, line := range strings.Split(out, "\n") {
		if !strings.HasPrefix(line, "cpu ") {
			continue
		}
		fields := strings.Fields(line)[1:]
		if len(fields) < 4 {
			return 0, 0, errors.New(errors.ErrCodeParse, "cpu line has too few fields")
		}
		for i, f := range fields {
			v, parseErr := strconv.ParseFloat(f, 64)
			if parseErr != nil {
				return 0, 0, errors.Wrap(errors.ErrCodeParse, "unparseable cpu time field", parseErr)
			}
			total += v
			if i == 3 {
				idle = v
			}
		}
		return total, idle, nil
	}

	return 0, 0, errors.New(errors.ErrCodeParse, "no aggregate cpu line in /proc/stat")
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
