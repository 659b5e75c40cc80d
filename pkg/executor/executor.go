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

package executor

import (
	"context"
	"time"

	"golang.org/x/time/rate"

	"github.com/proxmoxkit/lxc-autoscale/pkg/defaults"
)

// Executor runs a shell command on the hypervisor host and returns its
// trimmed output. Implementations make exactly one attempt per call and
// classify failures with pkg/errors codes (TIMEOUT, EXECUTION_FAILED,
// TRANSPORT_FAILURE). Callers treat a failed call as "container
// unavailable this cycle", never as fatal to the whole run.
type Executor interface {
	Run(ctx context.Context, command string) (string, error)
}

// Options tunes behavior shared by all executor strategies.
type Options struct {
	// Timeout bounds each command. Zero means defaults.CommandTimeout.
	Timeout time.Duration

	// Limiter throttles command dispatch to protect the host shell or
	// SSH channel. Nil disables rate limiting.
	Limiter *rate.Limiter
}

func (o Options) timeout() time.Duration {
	if o.Timeout > 0 {
		return o.Timeout
	}
	return defaults.CommandTimeout
}

// NewLimiter returns a rate limiter with the default executor rate.
func NewLimiter() *rate.Limiter {
	return rate.NewLimiter(rate.Limit(defaults.ExecutorRateLimit), defaults.ExecutorRateBurst)
}

// wait blocks on the limiter if one is configured.
func (o Options) wait(ctx context.Context) error {
	if o.Limiter == nil {
		return nil
	}
	return o.Limiter.Wait(ctx)
}
