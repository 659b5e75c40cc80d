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
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	cycleDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "lxcas_collection_cycle_duration_seconds",
			Help:    "Time taken to complete one collection cycle",
			Buckets: []float64{1, 5, 10, 30, 60, 120, 300},
		},
	)

	cycleTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lxcas_collection_cycles_total",
			Help: "Total number of collection cycle attempts",
		},
		[]string{"status"}, // success or error
	)

	containerDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "lxcas_container_collect_duration_seconds",
			Help:    "Time taken by individual per-container pipelines",
			Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 30},
		},
	)

	containersCollected = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "lxcas_containers_collected",
			Help: "Number of containers with complete metrics in the last cycle",
		},
	)
)
