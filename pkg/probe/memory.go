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
	"strconv"
	"strings"
)

// MemoryUsage returns the container's memory utilization in percent,
// derived from MemTotal and MemAvailable in its /proc/meminfo. Any read or
// parse failure, including a zero MemTotal, yields 0.0 with a logged
// error so the cycle continues on a degraded basis.
func (p *Probe) MemoryUsage(ctx context.Context, id string) float64 {
	out, err := p.exec.Run(ctx, fmt.Sprintf("pct exec %s -- cat /proc/meminfo", id))
	if err != nil {
		slog.Error("memory usage read failed", "container", id, "error", err)
		return 0.0
	}

	total, totalOK := meminfoValue(out, "MemTotal")
	available, availOK := meminfoValue(out, "MemAvailable")
	if !totalOK || !availOK {
		slog.Error("meminfo missing MemTotal or MemAvailable", "container", id)
		return 0.0
	}
	if total == 0 {
		// A zero total is a broken reading, not an empty container.
		slog.Error("meminfo reports zero total memory", "container", id)
		return 0.0
	}

	return (total - available) * 100 / total
}

// meminfoValue extracts one numeric meminfo field (kB units dropped).
func meminfoValue(out, key string) (float64, bool) {
	for _, line := range strings.Split(out, "\n") {
		name, rest, found := strings.Cut(line, ":")
		if !found || strings.TrimSpace(name) != key {
			continue
		}
		fields := strings.Fields(rest)
		if len(fields) == 0 {
			return 0, false
		}
		v, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return 0, false
		}
		return v, true
	}
	return 0, false
}
