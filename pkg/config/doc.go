// Package config loads the process-wide configuration from a YAML file
// with environment overrides: host identity, the remote-execution toggle
// and SSH credentials, the container ignore list, host reservations,
// storage paths, and tier-to-configuration associations. Configuration
// loading is the only failure allowed to be fatal to the process.
package config
