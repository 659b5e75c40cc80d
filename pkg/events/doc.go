// Package events appends structured audit records of state-changing
// actions to an append-only JSON-lines log, one object per line.
package events
