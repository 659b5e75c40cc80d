/*
Copyright © 2025 the lxc-autoscale authors
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/proxmoxkit/lxc-autoscale/pkg/collector"
	"github.com/proxmoxkit/lxc-autoscale/pkg/defaults"
	"github.com/proxmoxkit/lxc-autoscale/pkg/events"
	"github.com/proxmoxkit/lxc-autoscale/pkg/inventory"
	"github.com/proxmoxkit/lxc-autoscale/pkg/ledger"
	"github.com/proxmoxkit/lxc-autoscale/pkg/measurement"
	"github.com/proxmoxkit/lxc-autoscale/pkg/probe"
)

func collectCmd() *cli.Command {
	return &cli.Command{
		Name:                  "collect",
		EnableShellCompletion: true,
		Usage:                 "Run one collection cycle and print prioritized container metrics",
		Description: `Collect CPU and memory utilization from all managed containers and print
them ordered by reallocation priority: descending CPU usage, ties broken
by descending memory usage.

Containers that are ignored, not running, or fail to report are omitted
from the result. Each collected container's current resource settings are
backed up before anything else so a later mutation can be rolled back.`,
		Flags: []cli.Flag{
			&cli.DurationFlag{
				Name:  "timeout",
				Usage: "Timeout for the whole collection cycle",
				Value: defaults.CycleTimeout,
			},
			outputFlag,
			formatFlag,
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			rt, err := newRuntime(cmd)
			if err != nil {
				return err
			}
			writer, err := newWriter(cmd)
			if err != nil {
				return err
			}
			defer writer.Close()

			ctx, cancel := context.WithTimeout(ctx, cmd.Duration("timeout"))
			defer cancel()

			recorder := events.NewRecorder(rt.cfg.EventLog, rt.cfg.Host)
			inv := inventory.New(rt.exec, rt.cfg.IgnoreContainers)
			led := ledger.New(rt.cfg.BackupDir, rt.exec, recorder)
			prb := probe.NewWithInterval(rt.exec, rt.cfg.SampleInterval.Std())
			col := collector.New(inv, prb, led)

			metrics, err := col.Collect(ctx)
			if err != nil {
				return err
			}

			return writer.Serialize(ranking(measurement.Prioritize(metrics)))
		},
	}
}
