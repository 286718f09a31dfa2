package interfaces

import "go-tower-arena/internal/snapshot"

// SnapshotSource is anything a renderer can draw from.
type SnapshotSource interface {
	Snapshot() snapshot.Snapshot
}
