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

package measurement

import "sort"

// Prioritize totally orders collected metrics for downstream reallocation
// decisions: descending by CPU utilization, ties broken descending by
// memory utilization, remaining ties by container ID so the order is
// deterministic. Pure function: no I/O, input map is not modified.
// An empty or nil input yields an empty slice.
func Prioritize(metrics map[string]Metrics) []Ranked {
	ranked := make([]Ranked, 0, len(metrics))
	for id, m := range metrics {
		ranked = append(ranked, Ranked{ID: id, Metrics: m})
	}

	sort.Slice(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.Metrics.CPUPercent != b.Metrics.CPUPercent {
			return a.Metrics.CPUPercent > b.Metrics.CPUPercent
		}
		if a.Metrics.MemPercent != b.Metrics.MemPercent {
			return a.Metrics.MemPercent > b.Metrics.MemPercent
		}
		return a.ID < b.ID
	})

	return ranked
}
