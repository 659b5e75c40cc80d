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

package collector

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/proxmoxkit/lxc-autoscale/pkg/defaults"
	"github.com/proxmoxkit/lxc-autoscale/pkg/inventory"
	"github.com/proxmoxkit/lxc-autoscale/pkg/ledger"
	"github.com/proxmoxkit/lxc-autoscale/pkg/measurement"
	"github.com/proxmoxkit/lxc-autoscale/pkg/probe"
)

// Collector fans out per-container collection pipelines with bounded
// parallelism. Each container's pipeline is isolated: a failure for one
// container is logged and excluded from the result, never canceling or
// corrupting sibling work.
type Collector struct {
	inventory *inventory.Inventory
	probe     *probe.Probe
	ledger    *ledger.Ledger

	// workers bounds pipeline parallelism. Deliberately small: a single
	// pipeline may sleep for the CPU sample interval and issue several
	// remote round-trips.
	workers int
}

// New creates a Collector with the default fan-out width.
func New(inv *inventory.Inventory, p *probe.Probe, l *ledger.Ledger) *Collector {
	return &Collector{
		inventory: inv,
		probe:     p,
		ledger:    l,
		workers:   defaults.CollectWorkers,
	}
}

// Collect runs one collection cycle and returns complete metrics
// snapshots keyed by container ID. Containers that are ignored, not
// running, or fail any pipeline step are omitted. Only a failure to list
// the inventory fails the cycle as a whole.
func (c *Collector) Collect(ctx context.Context) (map[string]measurement.Metrics, error) {
	start := time.Now()

	ids, err := c.inventory.List(ctx)
	if err != nil {
		cycleTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("collection cycle: %w", err)
	}

	var mu sync.Mutex
	results := make(map[string]measurement.Metrics, len(ids))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.workers)

	for _, id := range ids {
		g.Go(func() error {
			metrics, ok := c.collectOne(gctx, id)
			if !ok {
				return nil
			}
			mu.Lock()
			results[id] = metrics
			mu.Unlock()
			return nil
		})
	}

	// Pipelines never return errors, so Wait only observes ctx
	// cancellation via gctx.
	_ = g.Wait()

	cycleDuration.Observe(time.Since(start).Seconds())
	cycleTotal.WithLabelValues("success").Inc()
	containersCollected.Set(float64(len(results)))

	slog.Debug("collection cycle complete",
		"listed", len(ids),
		"collected", len(results),
		"elapsed", time.Since(start))
	return results, nil
}

// collectOne runs one container's pipeline: configuration read, settings
// backup, CPU probe, memory probe. Skips are silent; failures are logged
// and reported as not-ok.
func (c *Collector) collectOne(ctx context.Context, id string) (measurement.Metrics, bool) {
	start := time.Now()
	defer func() {
		containerDuration.Observe(time.Since(start).Seconds())
	}()

	if !c.inventory.IsRunning(ctx, id) {
		slog.Debug("skipping container", "container", id, "reason", "not running")
		return measurement.Metrics{}, false
	}

	settings, err := c.inventory.Configured(ctx, id)
	if err != nil {
		slog.Error("failed to read container configuration", "container", id, "error", err)
		return measurement.Metrics{}, false
	}

	// Backup before anything that could lead to a mutation downstream.
	// A failed backup degrades rollback for this container only.
	if err := c.ledger.Backup(id, settings); err != nil {
		slog.Error("failed to back up container settings", "container", id, "error", err)
	}

	metrics := measurement.Metrics{
		CPUPercent:      c.probe.CPUUsage(ctx, id),
		MemPercent:      c.probe.MemoryUsage(ctx, id),
		InitialCores:    settings.Cores,
		InitialMemoryMB: settings.MemoryMB,
	}

	slog.Debug("collected container metrics",
		"container", id,
		"cpu_percent", metrics.CPUPercent,
		"mem_percent", metrics.MemPercent)
	return metrics, true
}
