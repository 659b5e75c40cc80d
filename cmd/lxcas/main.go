/*
Copyright © 2025 the lxc-autoscale authors
SPDX-License-Identifier: Apache-2.0
*/
package main

import "github.com/proxmoxkit/lxc-autoscale/pkg/cli"

func main() {
	cli.Execute()
}
