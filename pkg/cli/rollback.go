/*
Copyright © 2025 the lxc-autoscale authors
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/proxmoxkit/lxc-autoscale/pkg/events"
	"github.com/proxmoxkit/lxc-autoscale/pkg/ledger"
)

func rollbackCmd() *cli.Command {
	return &cli.Command{
		Name:                  "rollback",
		EnableShellCompletion: true,
		Usage:                 "Restore a container's resources from its last backup",
		ArgsUsage:             "<container-id>",
		Description: `Look up the container's backed-up core and memory settings and apply
them. Missing a backup is not an error: the command logs a warning and
leaves the container untouched.`,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			id := cmd.Args().First()
			if id == "" {
				return fmt.Errorf("container id argument is required")
			}

			rt, err := newRuntime(cmd)
			if err != nil {
				return err
			}

			recorder := events.NewRecorder(rt.cfg.EventLog, rt.cfg.Host)
			led := ledger.New(rt.cfg.BackupDir, rt.exec, recorder)
			return led.Rollback(ctx, id)
		},
	}
}
