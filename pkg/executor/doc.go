// Package executor runs shell commands against the hypervisor host, either
// by spawning a local shell or over an authenticated SSH session.
//
// The strategy is selected once at startup from configuration and injected
// into every component that issues commands; it is never re-read mid-run.
// Both strategies enforce a per-call timeout, make at most one attempt per
// call, and classify failures with pkg/errors codes so call sites can treat
// a failed command as "container unavailable this cycle" instead of a
// fatal error. A shared rate limiter throttles dispatch so a burst of
// probes cannot overwhelm the host shell or the SSH channel.
package executor
