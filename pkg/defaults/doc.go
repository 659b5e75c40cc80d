// Package defaults provides centralized configuration constants for the
// lxc-autoscale components: command and SSH timeouts, collection cycle
// bounds, the CPU sampling interval, fan-out width, and executor rate
// limits. Centralizing these values keeps tuning in one place.
package defaults
