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

package events

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/proxmoxkit/lxc-autoscale/pkg/errors"
)

// Record is one audit entry for a state-changing action. Ordering is
// append order; records are never mutated or deleted.
type Record struct {
	ID          string    `json:"id"`
	Timestamp   time.Time `json:"timestamp"`
	Host        string    `json:"host"`
	ContainerID string    `json:"container_id"`
	Action      string    `json:"action"`
	Change      any       `json:"change"`
}

// Recorder appends structured audit records to a JSON-lines log, one
// object per line. Concurrent appenders serialize around the file write
// so lines never interleave.
type Recorder struct {
	path string
	host string

	mu sync.Mutex
}

// NewRecorder creates a Recorder writing to path, tagging every record
// with the host identity.
func NewRecorder(path, host string) *Recorder {
	return &Recorder{path: path, host: host}
}

// Record appends one event, timestamped at call time.
func (r *Recorder) Record(containerID, action string, change any) error {
	rec := Record{
		ID:          uuid.NewString(),
		Timestamp:   time.Now().UTC(),
		Host:        r.host,
		ContainerID: containerID,
		Action:      action,
		Change:      change,
	}

	line, err := json.Marshal(rec)
	if err != nil {
		return errors.Wrap(errors.ErrCodeStorage, "marshaling event record", err)
	}
	line = append(line, '\n')

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(r.path), 0o755); err != nil {
		return errors.Wrap(errors.ErrCodeStorage, "creating event log directory", err)
	}

	f, err := os.OpenFile(r.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return errors.Wrap(errors.ErrCodeStorage, "opening event log", err)
	}
	defer f.Close()

	// One Write call per record keeps each line atomic with respect to
	// other appenders holding the mutex.
	if _, err := f.Write(line); err != nil {
		return errors.Wrap(errors.ErrCodeStorage, fmt.Sprintf("appending event for %s", containerID), err)
	}
	return nil
}
