// Package capacity computes host-level resource headroom after a
// configured reservation. The reservation floor guarantees at least one
// core stays with the host regardless of the configured percentage.
package capacity
