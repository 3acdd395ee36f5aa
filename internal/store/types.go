// Package store provides SQLite persistence for pyreview analysis
// snapshots, so coverage and dependency health can be compared over time.
package store

import "time"

// Snapshot is a point-in-time capture of one analysis run over a
// project.
type Snapshot struct {
	ID          int64     `json:"id"`
	TakenAt     time.Time `json:"taken_at"`
	Command     string    `json:"command"`
	ProjectPath string    `json:"project_path"`
	Version     string    `json:"version"`
}

// Metric is a named metric value recorded under a snapshot, such as
// coverage_percentage or unused_dependencies.
type Metric struct {
	ID         int64   `json:"id"`
	SnapshotID int64   `json:"snapshot_id"`
	Name       string  `json:"name"`
	Value      float64 `json:"value"`
	Detail     string  `json:"detail,omitempty"`
}

// SnapshotDiff is the comparison between two snapshots of the same
// project.
type SnapshotDiff struct {
	Previous *Snapshot     `json:"previous"`
	Current  *Snapshot     `json:"current"`
	Deltas   []MetricDelta `json:"deltas"`
}

// MetricDelta is the change in a single metric between snapshots.
type MetricDelta struct {
	Name      string  `json:"name"`
	Previous  float64 `json:"previous"`
	Current   float64 `json:"current"`
	Delta     float64 `json:"delta"`
	Direction string  `json:"direction"` // "improved", "regressed", "unchanged"
}
