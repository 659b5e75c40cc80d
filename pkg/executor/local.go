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
	stderrors "errors"
	"log/slog"
	"os/exec"
	"strings"

	"github.com/proxmoxkit/lxc-autoscale/pkg/errors"
)

// Local executes commands by spawning a shell on the current host.
type Local struct {
	opts Options
}

// NewLocal creates a local shell executor.
func NewLocal(opts Options) *Local {
	return &Local{opts: opts}
}

// Run spawns `sh -c command`, captures combined stdout/stderr, enforces
// the configured timeout, and returns the output with trailing whitespace
// trimmed.
func (l *Local) Run(ctx context.Context, command string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, l.opts.timeout())
	defer cancel()

	// The timeout covers time queued on the limiter as well as the run.
	if err := l.opts.wait(ctx); err != nil {
		return "", errors.Wrap(errors.ErrCodeTransport, "rate limiter wait canceled", err)
	}

	cmd := exec.CommandContext(ctx, "sh", "-c", command)
	out, err := cmd.CombinedOutput()
	output := strings.TrimSpace(string(out))

	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			slog.Error("local command timed out", "command", command, "timeout", l.opts.timeout())
			return "", errors.Wrap(errors.ErrCodeTimeout, "command timed out", ctx.Err())
		}
		var exitErr *exec.ExitError
		if stderrors.As(err, &exitErr) {
			slog.Error("local command failed",
				"command", command,
				"exit_status", exitErr.ExitCode(),
				"output", output)
			return "", errors.WrapWithContext(errors.ErrCodeExecution, "command failed", err, map[string]any{
				"exit_status": exitErr.ExitCode(),
				"output":      output,
			})
		}
		slog.Error("local command could not run", "command", command, "error", err)
		return "", errors.Wrap(errors.ErrCodeTransport, "command could not run", err)
	}

	slog.Debug("local command executed", "command", command)
	return output, nil
}
