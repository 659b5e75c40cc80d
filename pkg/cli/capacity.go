/*
Copyright © 2025 the lxc-autoscale authors
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/proxmoxkit/lxc-autoscale/pkg/capacity"
)

func capacityCmd() *cli.Command {
	return &cli.Command{
		Name:                  "capacity",
		EnableShellCompletion: true,
		Usage:                 "Estimate host headroom available for scale-up decisions",
		Description: `Query the host for its total core count and memory, subtract the
configured reservations, and print what remains available for
container scale-up. Values never go below zero.`,
		Flags: []cli.Flag{
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

			est := capacity.NewEstimator(rt.exec, rt.cfg.ReserveCPUPercent, rt.cfg.ReserveMemoryMB)
			head, err := est.Estimate(ctx)
			if err != nil {
				return err
			}

			return writer.Serialize(headroom(head))
		},
	}
}
