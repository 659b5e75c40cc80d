// Package measurement defines the shared data model for container resource
// observation: per-container Settings (the mutable allocation), Metrics
// (one immutable utilization snapshot per collection cycle), and the pure
// Prioritize ordering that ranks containers for reallocation decisions.
package measurement
