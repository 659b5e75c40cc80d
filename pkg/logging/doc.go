// Package logging wraps the standard library slog package with defaults
// shared by all lxc-autoscale components: structured JSON output to stderr,
// LOG_LEVEL environment configuration, module/version context on every
// record, and source location tracking for debug logs.
//
// Set the default logger early in main:
//
//	logging.SetDefaultStructuredLogger("lxcas", version)
//	slog.Info("collection started", "containers", 12)
package logging
