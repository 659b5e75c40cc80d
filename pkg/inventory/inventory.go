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

package inventory

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/proxmoxkit/lxc-autoscale/pkg/errors"
	"github.com/proxmoxkit/lxc-autoscale/pkg/executor"
	"github.com/proxmoxkit/lxc-autoscale/pkg/measurement"
)

// Inventory lists managed containers by querying the host's container
// manager, filtered against a configured ignore set.
type Inventory struct {
	exec   executor.Executor
	ignore map[string]struct{}
}

// New creates an Inventory backed by the given executor. Ignored container
// IDs are matched exactly.
func New(exec executor.Executor, ignore []string) *Inventory {
	set := make(map[string]struct{}, len(ignore))
	for _, id := range ignore {
		set[id] = struct{}{}
	}
	return &Inventory{exec: exec, ignore: set}
}

// List returns the IDs of all managed containers, minus the ignore set.
// The `pct list` output is tabular with a header row; the first field of
// each data row is the numeric VMID.
func (inv *Inventory) List(ctx context.Context) ([]string, error) {
	out, err := inv.exec.Run(ctx, "pct list")
	if err != nil {
		return nil, fmt.Errorf("listing containers: %w", err)
	}

	var ids []string
	for i, line := range strings.Split(out, "\n") {
		if i == 0 {
			// Header row: VMID Status Lock Name
			continue
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		id := fields[0]
		if _, parseErr := strconv.Atoi(id); parseErr != nil {
			slog.Warn("skipping unparseable pct list row", "row", line)
			continue
		}
		if inv.IsIgnored(id) {
			continue
		}
		ids = append(ids, id)
	}

	slog.Debug("listed containers", "count", len(ids))
	return ids, nil
}

// IsIgnored reports whether the container is in the configured ignore set.
func (inv *Inventory) IsIgnored(id string) bool {
	_, ok := inv.ignore[id]
	return ok
}

// IsRunning reports whether the container's status is "running". Any other
// status, unparseable output, or a failed command is treated as not
// running (fail closed).
func (inv *Inventory) IsRunning(ctx context.Context, id string) bool {
	out, err := inv.exec.Run(ctx, fmt.Sprintf("pct status %s", id))
	if err != nil {
		slog.Warn("container status query failed, treating as not running", "container", id, "error", err)
		return false
	}
	return strings.Contains(strings.ToLower(out), "status: running")
}

// Configured reads the container's allocated cores and memory from its
// manager configuration (`pct config` emits `key: value` lines).
func (inv *Inventory) Configured(ctx context.Context, id string) (measurement.Settings, error) {
	out, err := inv.exec.Run(ctx, fmt.Sprintf("pct config %s", id))
	if err != nil {
		return measurement.Settings{}, fmt.Errorf("reading config for %s: %w", id, err)
	}

	values := map[string]int{}
	for _, line := range strings.Split(out, "\n") {
		key, value, found := strings.Cut(line, ":")
		if !found {
			continue
		}
		key = strings.TrimSpace(key)
		if key != "cores" && key != "memory" {
			continue
		}
		n, parseErr := strconv.Atoi(strings.TrimSpace(value))
		if parseErr != nil {
			return measurement.Settings{}, errors.WrapWithContext(errors.ErrCodeParse,
				"unparseable pct config value", parseErr, map[string]any{
					"container": id,
					"key":       key,
					"value":     strings.TrimSpace(value),
				})
		}
		values[key] = n
	}

	settings := measurement.Settings{Cores: values["cores"], MemoryMB: values["memory"]}
	if !settings.Valid() {
		return measurement.Settings{}, errors.WrapWithContext(errors.ErrCodeParse,
			"pct config missing cores or memory", nil, map[string]any{"container": id})
	}
	return settings, nil
}
