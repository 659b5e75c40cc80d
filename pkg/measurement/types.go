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

// Settings is the mutable resource allocation of a container at a point in
// time. The JSON field names match the on-disk backup format.
type Settings struct {
	Cores    int `json:"cores" yaml:"cores"`
	MemoryMB int `json:"memory" yaml:"memory"`
}

// Valid reports whether both allocations are positive.
func (s Settings) Valid() bool {
	return s.Cores > 0 && s.MemoryMB > 0
}

// Metrics is one container's utilization snapshot for a collection cycle.
// Immutable once produced.
type Metrics struct {
	CPUPercent      float64 `json:"cpu_percent" yaml:"cpu_percent"`
	MemPercent      float64 `json:"mem_percent" yaml:"mem_percent"`
	InitialCores    int     `json:"initial_cores" yaml:"initial_cores"`
	InitialMemoryMB int     `json:"initial_memory_mb" yaml:"initial_memory_mb"`
}

// Ranked pairs a container ID with its metrics in priority order.
type Ranked struct {
	ID      string  `json:"container_id" yaml:"container_id"`
	Metrics Metrics `json:"metrics" yaml:"metrics"`
}
