// Package ledger persists and restores per-container resource
// configuration backups. A backup is written before any mutation is
// attempted against a container so rollback always targets the
// pre-mutation state, even under partial failures of the execution
// channel.
package ledger
