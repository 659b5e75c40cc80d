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

package ledger

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/proxmoxkit/lxc-autoscale/pkg/errors"
	"github.com/proxmoxkit/lxc-autoscale/pkg/events"
	"github.com/proxmoxkit/lxc-autoscale/pkg/executor"
	"github.com/proxmoxkit/lxc-autoscale/pkg/measurement"
)

// Ledger persists each container's last-known resource configuration so a
// failed mutation can be rolled back to the pre-mutation state. Storage is
// one JSON file per container under dir, one live record per ID. The
// Ledger is the exclusive owner of that storage; the mutex covers each
// read-modify-write of the backing files and is never held across an
// executor call.
type Ledger struct {
	dir  string
	exec executor.Executor
	rec  *events.Recorder

	mu sync.Mutex
}

// New creates a Ledger storing backups under dir. The executor issues the
// restore commands during rollback; the recorder, when non-nil, receives
// an audit record for every rollback performed.
func New(dir string, exec executor.Executor, rec *events.Recorder) *Ledger {
	return &Ledger{dir: dir, exec: exec, rec: rec}
}

// Backup durably records settings for the container, overwriting any prior
// record. Must be called before any mutation is attempted so rollback
// always targets the pre-mutation state. Failures are returned for the
// caller to log; they degrade rollback for this one container and must not
// stop collection for others.
func (l *Ledger) Backup(id string, settings measurement.Settings) error {
	data, err := json.Marshal(settings)
	if err != nil {
		return errors.Wrap(errors.ErrCodeStorage, "marshaling backup", err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if err := os.MkdirAll(l.dir, 0o755); err != nil {
		return errors.Wrap(errors.ErrCodeStorage, "creating backup directory", err)
	}
	if err := os.WriteFile(l.backupPath(id), data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeStorage, fmt.Sprintf("writing backup for %s", id), err)
	}

	slog.Debug("backup saved", "container", id, "cores", settings.Cores, "memory_mb", settings.MemoryMB)
	return nil
}

// Load returns the last backup for the container, or nil if none exists.
// A corrupt record is logged and treated as absent, never propagated.
func (l *Ledger) Load(id string) (*measurement.Settings, error) {
	l.mu.Lock()
	data, err := os.ReadFile(l.backupPath(id))
	l.mu.Unlock()

	if err != nil {
		if stderrors.Is(err, os.ErrNotExist) {
			slog.Warn("no backup found", "container", id)
			return nil, nil
		}
		return nil, errors.Wrap(errors.ErrCodeStorage, fmt.Sprintf("reading backup for %s", id), err)
	}

	var settings measurement.Settings
	if err := json.Unmarshal(data, &settings); err != nil {
		slog.Error("corrupt backup treated as absent", "container", id, "error", err)
		return nil, nil
	}
	return &settings, nil
}

// Rollback restores the container's cores and memory to the last backup by
// issuing mutation commands through the executor. It is a no-op with a
// warning when no backup exists, and idempotent: repeated rollbacks with
// no intervening backup issue the same restore commands.
func (l *Ledger) Rollback(ctx context.Context, id string) error {
	settings, err := l.Load(id)
	if err != nil {
		return err
	}
	if settings == nil {
		slog.Warn("rollback skipped, no backup available", "container", id)
		return nil
	}

	slog.Info("rolling back container settings",
		"container", id,
		"cores", settings.Cores,
		"memory_mb", settings.MemoryMB)

	var restoreErrs []error
	if _, err := l.exec.Run(ctx, fmt.Sprintf("pct set %s -cores %d", id, settings.Cores)); err != nil {
		restoreErrs = append(restoreErrs, fmt.Errorf("restoring cores: %w", err))
	}
	if _, err := l.exec.Run(ctx, fmt.Sprintf("pct set %s -memory %d", id, settings.MemoryMB)); err != nil {
		restoreErrs = append(restoreErrs, fmt.Errorf("restoring memory: %w", err))
	}
	if err := stderrors.Join(restoreErrs...); err != nil {
		return err
	}

	if l.rec != nil {
		if err := l.rec.Record(id, "rollback", *settings); err != nil {
			slog.Error("failed to record rollback event", "container", id, "error", err)
		}
	}
	return nil
}

func (l *Ledger) backupPath(id string) string {
	return filepath.Join(l.dir, fmt.Sprintf("%s_backup.json", id))
}
