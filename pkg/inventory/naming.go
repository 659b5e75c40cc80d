package inventory

import (
	"fmt"
	"time"
)

// snapshotTimeFormat yields sortable, second-granularity snapshot suffixes.
const snapshotTimeFormat = "20060102150405"

// SnapshotName generates a timestamped, unique snapshot name for a
// container.
func SnapshotName(base string) string {
	return fmt.Sprintf("%s-%s", base, time.Now().Format(snapshotTimeFormat))
}

// CloneHostname generates the hostname for the nth clone of a container.
func CloneHostname(base string, cloneNumber int) string {
	return fmt.Sprintf("%s-cloned-%d", base, cloneNumber)
}
