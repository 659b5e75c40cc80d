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

package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/proxmoxkit/lxc-autoscale/pkg/executor"
)

// TierConfig is a named resource policy bucket: scaling thresholds and
// allocation bounds applied to a container.
type TierConfig struct {
	CPUUpperThreshold int `yaml:"cpu_upper_threshold"`
	CPULowerThreshold int `yaml:"cpu_lower_threshold"`
	MinCores          int `yaml:"min_cores"`
	MaxCores          int `yaml:"max_cores"`
	MinMemoryMB       int `yaml:"min_memory_mb"`
	MaxMemoryMB       int `yaml:"max_memory_mb"`
}

// Config is the process-wide configuration. Loading failures are the one
// class of error allowed to be fatal to the whole process.
type Config struct {
	// Host is the hypervisor host identity used to tag audit events.
	// Defaults to the local hostname.
	Host string `yaml:"host"`

	// UseRemote selects the SSH executor strategy. Read once at startup;
	// the chosen executor is injected into every component.
	UseRemote bool               `yaml:"use_remote"`
	SSH       executor.SSHConfig `yaml:"ssh"`

	IgnoreContainers []string `yaml:"ignore_containers"`

	ReserveCPUPercent int `yaml:"reserve_cpu_percent"`
	ReserveMemoryMB   int `yaml:"reserve_memory_mb"`

	BackupDir string `yaml:"backup_dir"`
	EventLog  string `yaml:"event_log"`

	CommandTimeout Duration `yaml:"command_timeout"`

	// SampleInterval is the sleep between CPU stat reads during probing.
	// Zero selects the built-in default.
	SampleInterval Duration `yaml:"sample_interval"`

	// Defaults applies to containers without a tier association.
	Defaults TierConfig `yaml:"defaults"`

	// Tiers maps container IDs to their tier configuration.
	Tiers map[string]TierConfig `yaml:"tiers"`
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	hostname, _ := os.Hostname()
	return &Config{
		Host:              hostname,
		ReserveCPUPercent: 10,
		ReserveMemoryMB:   2048,
		BackupDir:         "/var/lib/lxc-autoscale/backups",
		EventLog:          "/var/log/lxc-autoscale/events.json",
		Defaults: TierConfig{
			CPUUpperThreshold: 80,
			CPULowerThreshold: 20,
			MinCores:          1,
			MaxCores:          4,
			MinMemoryMB:       512,
			MaxMemoryMB:       8192,
		},
	}
}

// Load reads the YAML config at path over the defaults, then applies
// environment overrides and validates the result. An empty path yields
// defaults plus environment overrides.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// applyEnv overrides select fields from LXCAS_* environment variables.
func (c *Config) applyEnv() {
	if host := os.Getenv("LXCAS_HOST"); host != "" {
		c.Host = host
	}
	if dir := os.Getenv("LXCAS_BACKUP_DIR"); dir != "" {
		c.BackupDir = dir
	}
	if log := os.Getenv("LXCAS_EVENT_LOG"); log != "" {
		c.EventLog = log
	}
}

// Validate checks cross-field consistency.
func (c *Config) Validate() error {
	if c.ReserveCPUPercent < 0 || c.ReserveCPUPercent > 100 {
		return fmt.Errorf("reserve_cpu_percent must be in [0,100], got %d", c.ReserveCPUPercent)
	}
	if c.ReserveMemoryMB < 0 {
		return fmt.Errorf("reserve_memory_mb must be non-negative, got %d", c.ReserveMemoryMB)
	}
	if c.BackupDir == "" {
		return fmt.Errorf("backup_dir is required")
	}
	if c.EventLog == "" {
		return fmt.Errorf("event_log is required")
	}
	if c.UseRemote {
		if err := c.SSH.Validate(); err != nil {
			return fmt.Errorf("remote execution enabled: %w", err)
		}
	}
	return nil
}

// ForContainer returns the container's tier configuration, falling back to
// the defaults when no association exists.
func (c *Config) ForContainer(id string) TierConfig {
	if tier, ok := c.Tiers[id]; ok {
		return tier
	}
	return c.Defaults
}

// NewExecutor builds the process-wide command executor from the remote
// toggle: local shell or SSH, with the shared rate limiter and the
// configured per-call timeout.
func (c *Config) NewExecutor() (executor.Executor, error) {
	opts := executor.Options{
		Timeout: c.CommandTimeout.Std(),
		Limiter: executor.NewLimiter(),
	}
	if c.UseRemote {
		return executor.NewSSH(c.SSH, opts)
	}
	return executor.NewLocal(opts), nil
}
