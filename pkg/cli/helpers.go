/*
Copyright © 2025 the lxc-autoscale authors
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"fmt"
	"strconv"

	"github.com/urfave/cli/v3"

	"github.com/proxmoxkit/lxc-autoscale/pkg/capacity"
	"github.com/proxmoxkit/lxc-autoscale/pkg/config"
	"github.com/proxmoxkit/lxc-autoscale/pkg/executor"
	"github.com/proxmoxkit/lxc-autoscale/pkg/measurement"
	"github.com/proxmoxkit/lxc-autoscale/pkg/serializer"
)

// runtime holds the wired process-wide collaborators for one command run.
type runtime struct {
	cfg  *config.Config
	exec executor.Executor
}

// newRuntime loads configuration and builds the executor selected by the
// remote toggle. Config failures are fatal to the command.
func newRuntime(cmd *cli.Command) (*runtime, error) {
	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return nil, err
	}
	exec, err := cfg.NewExecutor()
	if err != nil {
		return nil, err
	}
	return &runtime{cfg: cfg, exec: exec}, nil
}

// newWriter builds the output writer from the shared format/output flags.
func newWriter(cmd *cli.Command) (*serializer.Writer, error) {
	format := serializer.Format(cmd.String("format"))
	if format.IsUnknown() {
		return nil, fmt.Errorf("unknown output format: %q", cmd.String("format"))
	}
	return serializer.NewFileWriterOrStdout(format, cmd.String("output")), nil
}

// ranking adapts prioritized metrics for table output.
type ranking []measurement.Ranked

func (r ranking) TableHeader() []string {
	return []string{"RANK", "CONTAINER", "CPU%", "MEM%", "CORES", "MEMORY_MB"}
}

func (r ranking) TableRows() [][]string {
	rows := make([][]string, 0, len(r))
	for i, entry := range r {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			entry.ID,
			strconv.FormatFloat(entry.Metrics.CPUPercent, 'f', 2, 64),
			strconv.FormatFloat(entry.Metrics.MemPercent, 'f', 2, 64),
			strconv.Itoa(entry.Metrics.InitialCores),
			strconv.Itoa(entry.Metrics.InitialMemoryMB),
		})
	}
	return rows
}

// headroom adapts host capacity for table output.
type headroom capacity.Capacity

func (h headroom) TableHeader() []string {
	return []string{"AVAILABLE_CORES", "AVAILABLE_MEMORY_MB"}
}

func (h headroom) TableRows() [][]string {
	return [][]string{{
		strconv.Itoa(h.AvailableCores),
		strconv.Itoa(h.AvailableMemoryMB),
	}}
}
