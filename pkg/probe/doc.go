// Package probe reads per-container CPU and memory utilization through the
// container manager's exec facility.
//
// CPU estimation is a fallback chain of independently-fallible methods
// tried in fixed priority order: the 1-minute load average scaled by the
// visible CPU count, then a two-point delta sample of the cumulative
// /proc/stat counters. If every method fails the probe reports 0.0 and
// logs the failure; a collection cycle never aborts because one reading
// could not be taken. The method order is a policy choice, not a
// correctness requirement.
package probe
