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

package defaults

import "time"

// Command execution timeouts.
const (
	// CommandTimeout is the default per-call timeout for local and remote
	// command execution. One attempt per call, no retries.
	CommandTimeout = 30 * time.Second

	// SSHDialTimeout is the timeout for establishing the SSH connection
	// to the hypervisor host, separate from the per-command timeout.
	SSHDialTimeout = 10 * time.Second
)

// Collection timeouts and tuning.
const (
	// CycleTimeout bounds one full collection cycle across all containers.
	CycleTimeout = 5 * time.Minute

	// CPUSampleInterval is the sleep between the two /proc/stat reads in
	// the delta-sampling CPU method.
	CPUSampleInterval = 1 * time.Second

	// CollectWorkers is the fan-out width for per-container pipelines.
	// Deliberately small: a single pipeline may sleep for CPUSampleInterval
	// and issue several remote round-trips.
	CollectWorkers = 2
)

// Executor rate limiting, guarding the host shell / SSH channel.
const (
	// ExecutorRateLimit is the sustained command rate per second.
	ExecutorRateLimit = 10

	// ExecutorRateBurst is the command burst size.
	ExecutorRateBurst = 20
)
