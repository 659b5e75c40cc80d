// Package inventory queries the host's container manager for the set of
// managed containers, their running status, and their configured resource
// allocation. Output parsing is defensive: missing or reformatted fields
// degrade to a typed failure, and a failed status query is treated as not
// running rather than running.
package inventory
