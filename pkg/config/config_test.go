package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/proxmoxkit/lxc-autoscale/pkg/executor"
)

const sampleConfig = `
host: pve1
use_remote: true
ssh:
  host: 10.0.0.5
  port: 2222
  user: root
  key_path: /root/.ssh/id_ed25519
ignore_containers: ["100", "105"]
reserve_cpu_percent: 20
reserve_memory_mb: 4096
backup_dir: /tmp/backups
event_log: /tmp/events.json
command_timeout: 45s
sample_interval: 2s
defaults:
  cpu_upper_threshold: 85
  cpu_lower_threshold: 15
  min_cores: 1
  max_cores: 8
  min_memory_mb: 256
  max_memory_mb: 16384
tiers:
  "101":
    cpu_upper_threshold: 90
    cpu_lower_threshold: 10
    min_cores: 2
    max_cores: 16
    min_memory_mb: 1024
    max_memory_mb: 32768
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "lxcas.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, "pve1", cfg.Host)
	assert.True(t, cfg.UseRemote)
	assert.Equal(t, executor.SSHConfig{
		Host:    "10.0.0.5",
		Port:    2222,
		User:    "root",
		KeyPath: "/root/.ssh/id_ed25519",
	}, cfg.SSH)
	assert.Equal(t, []string{"100", "105"}, cfg.IgnoreContainers)
	assert.Equal(t, 20, cfg.ReserveCPUPercent)
	assert.Equal(t, 45*time.Second, cfg.CommandTimeout.Std())
	assert.Equal(t, 2*time.Second, cfg.SampleInterval.Std())
}

func TestLoad_EmptyPathUsesDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 10, cfg.ReserveCPUPercent)
	assert.Equal(t, 2048, cfg.ReserveMemoryMB)
	assert.False(t, cfg.UseRemote)
	assert.NotEmpty(t, cfg.BackupDir)
}

func TestLoad_MissingFileFails(t *testing.T) {
	_, err := Load("/nonexistent/lxcas.yaml")
	assert.Error(t, err)
}

func TestLoad_MalformedYAMLFails(t *testing.T) {
	_, err := Load(writeConfig(t, "host: [unclosed"))
	assert.Error(t, err)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("LXCAS_HOST", "pve-override")
	t.Setenv("LXCAS_BACKUP_DIR", "/srv/backups")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "pve-override", cfg.Host)
	assert.Equal(t, "/srv/backups", cfg.BackupDir)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults valid", func(c *Config) {}, false},
		{"negative reserve percent", func(c *Config) { c.ReserveCPUPercent = -1 }, true},
		{"reserve percent above 100", func(c *Config) { c.ReserveCPUPercent = 101 }, true},
		{"negative reserve memory", func(c *Config) { c.ReserveMemoryMB = -1 }, true},
		{"empty backup dir", func(c *Config) { c.BackupDir = "" }, true},
		{"empty event log", func(c *Config) { c.EventLog = "" }, true},
		{"remote without ssh creds", func(c *Config) { c.UseRemote = true }, true},
		{"remote with ssh creds", func(c *Config) {
			c.UseRemote = true
			c.SSH = executor.SSHConfig{Host: "pve1", User: "root", Password: "x"}
		}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestForContainer(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	tier := cfg.ForContainer("101")
	assert.Equal(t, 90, tier.CPUUpperThreshold)
	assert.Equal(t, 16, tier.MaxCores)

	fallback := cfg.ForContainer("999")
	assert.Equal(t, 85, fallback.CPUUpperThreshold)
	assert.Equal(t, 8, fallback.MaxCores)
}

func TestNewExecutor(t *testing.T) {
	local, err := Default().NewExecutor()
	require.NoError(t, err)
	assert.IsType(t, &executor.Local{}, local)

	remote := Default()
	remote.UseRemote = true
	remote.SSH = executor.SSHConfig{Host: "pve1", User: "root", Password: "x"}
	ex, err := remote.NewExecutor()
	require.NoError(t, err)
	assert.IsType(t, &executor.SSH{}, ex)

	broken := Default()
	broken.UseRemote = true
	_, err = broken.NewExecutor()
	assert.Error(t, err)
}
