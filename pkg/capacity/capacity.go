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

package capacity

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/proxmoxkit/lxc-autoscale/pkg/errors"
	"github.com/proxmoxkit/lxc-autoscale/pkg/executor"
)

// Capacity is the host-level headroom after the configured reservation.
// Derived on demand, never persisted.
type Capacity struct {
	AvailableCores    int `json:"available_cores" yaml:"available_cores"`
	AvailableMemoryMB int `json:"available_memory_mb" yaml:"available_memory_mb"`
}

// AvailableCores returns the cores left for container use after reserving
// reservePercent of the total. At least one core is always reserved for
// the host, even when the percentage rounds to zero.
func AvailableCores(totalCores, reservePercent int) int {
	reserved := max(1, totalCores*reservePercent/100)
	return max(0, totalCores-reserved)
}

// AvailableMemoryMB returns the memory left for container use after the
// fixed reservation. Never negative.
func AvailableMemoryMB(totalMB, reserveMB int) int {
	return max(0, totalMB-reserveMB)
}

// Estimator computes host headroom by querying the host for its totals.
type Estimator struct {
	exec              executor.Executor
	reserveCPUPercent int
	reserveMemoryMB   int
}

// NewEstimator creates an Estimator with the configured reservations.
func NewEstimator(exec executor.Executor, reserveCPUPercent, reserveMemoryMB int) *Estimator {
	return &Estimator{
		exec:              exec,
		reserveCPUPercent: reserveCPUPercent,
		reserveMemoryMB:   reserveMemoryMB,
	}
}

// Estimate returns the host's current headroom.
func (e *Estimator) Estimate(ctx context.Context) (Capacity, error) {
	cores, err := e.totalCores(ctx)
	if err != nil {
		return Capacity{}, err
	}
	memory, err := e.totalMemoryMB(ctx)
	if err != nil {
		return Capacity{}, err
	}

	headroom := Capacity{
		AvailableCores:    AvailableCores(cores, e.reserveCPUPercent),
		AvailableMemoryMB: AvailableMemoryMB(memory, e.reserveMemoryMB),
	}
	slog.Debug("estimated host capacity",
		"total_cores", cores,
		"total_memory_mb", memory,
		"available_cores", headroom.AvailableCores,
		"available_memory_mb", headroom.AvailableMemoryMB)
	return headroom, nil
}

func (e *Estimator) totalCores(ctx context.Context) (int, error) {
	out, err := e.exec.Run(ctx, "nproc")
	if err != nil {
		return 0, fmt.Errorf("reading host cpu count: %w", err)
	}
	cores, err := strconv.Atoi(strings.TrimSpace(out))
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeParse, "unparseable nproc output", err)
	}
	return cores, nil
}

// totalMemoryMB parses the Mem row of `free -m`.
func (e *Estimator) totalMemoryMB(ctx context.Context) (int, error) {
	out, err := e.exec.Run(ctx, "free -m")
	if err != nil {
		return 0, fmt.Errorf("reading host memory: %w", err)
	}
	for _, line := range strings.Split(out, "\n") {
		if !strings.HasPrefix(line, "Mem:") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			break
		}
		total, parseErr := strconv.Atoi(fields[1])
		if parseErr != nil {
			return 0, errors.Wrap(errors.ErrCodeParse, "unparseable free output", parseErr)
		}
		return total, nil
	}
	return 0, errors.New(errors.ErrCodeParse, "no Mem row in free output")
}
