// Package cli implements the command-line interface for the lxcas tool.
//
// # Overview
//
// The lxcas CLI provides commands for collecting LXC container resource
// metrics, estimating host capacity, and rolling back container settings
// from backups. It is designed for Proxmox host administrators who want
// visibility into which containers most need resource reallocation.
//
// # Commands
//
// collect - Run one collection cycle:
//
//	lxcas collect [--timeout 5m] [--output FILE] [--format json|yaml|table]
//
// Lists all managed containers, probes each running one for CPU and memory
// utilization in parallel, backs up current resource settings, and prints
// the containers ordered by reallocation priority. Output defaults to
// stdout in JSON format.
//
// capacity - Estimate host headroom:
//
//	lxcas capacity [--output FILE] [--format json|yaml|table]
//
// Queries the host's total cores and memory, subtracts the configured
// reservations, and prints the remaining capacity available for scale-up.
//
// rollback - Restore a container from backup:
//
//	lxcas rollback <container-id>
//
// Reapplies the core and memory settings stored in the container's latest
// backup file. A missing backup logs a warning and changes nothing.
//
// # Global Flags
//
//	--config, -c   Configuration file path
//	--log-level    Logging verbosity: debug, info, warn, error
//	--output, -o   Output file path (default: stdout)
//	--format, -t   Output format: json, yaml, table (default: json)
//
// # Environment Variables
//
//	LXCAS_CONFIG       Configuration file path
//	LXCAS_HOST         Override the host identity used in event records
//	LXCAS_BACKUP_DIR   Override the backup directory
//	LXCAS_EVENT_LOG    Override the event log path
//	LOG_LEVEL          Set logging verbosity (debug, info, warn, error)
//
// # Architecture
//
// The CLI uses the urfave/cli/v3 framework and delegates to specialized
// packages:
//   - pkg/collector - Parallel metric collection with fault isolation
//   - pkg/measurement - Deterministic prioritization
//   - pkg/capacity - Host headroom estimation
//   - pkg/ledger - Backup and rollback of container settings
//   - pkg/serializer - Output formatting
//   - pkg/logging - Structured logging
//
// Version information is embedded at build time using ldflags:
//
//	go build -ldflags="-X 'github.com/proxmoxkit/lxc-autoscale/pkg/cli.version=1.0.0'"
package cli
