// Package collector orchestrates one collection cycle: it fans out
// per-container pipelines (configuration read, settings backup, CPU and
// memory probes) across the inventory with bounded parallelism, isolating
// each container's failures from its siblings. The returned map contains
// only containers for which a complete snapshot was produced this cycle.
// No pool state persists across cycles.
package collector
