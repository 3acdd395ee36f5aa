package store

import (
	"database/sql"
	"time"
)

// CreateSnapshot inserts a new snapshot and returns its ID.
func (db *DB) CreateSnapshot(command, projectPath, version string) (int64, error) {
	result, err := db.conn.Exec(
		"INSERT INTO snapshots (taken_at, command, project_path, version) VALUES (?, ?, ?, ?)",
		time.Now().UTC().Format(time.RFC3339), command, projectPath, version,
	)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

// GetLatestSnapshot returns the most recent snapshot for a project, or
// nil if none exist.
func (db *DB) GetLatestSnapshot(projectPath string) (*Snapshot, error) {
	row := db.conn.QueryRow(
		"SELECT id, taken_at, command, project_path, version FROM snapshots WHERE project_path = ? ORDER BY id DESC LIMIT 1",
		projectPath,
	)
	return scanSnapshot(row)
}

// GetSnapshot returns a snapshot by ID.
func (db *DB) GetSnapshot(id int64) (*Snapshot, error) {
	row := db.conn.QueryRow(
		"SELECT id, taken_at, command, project_path, version FROM snapshots WHERE id = ?", id,
	)
	return scanSnapshot(row)
}

// GetSnapshotN returns the Nth most recent snapshot for a project
// (1 = latest, 2 = previous, and so on).
func (db *DB) GetSnapshotN(projectPath string, n int) (*Snapshot, error) {
	row := db.conn.QueryRow(
		"SELECT id, taken_at, command, project_path, version FROM snapshots WHERE project_path = ? ORDER BY id DESC LIMIT 1 OFFSET ?",
		projectPath, n-1,
	)
	return scanSnapshot(row)
}

// ListSnapshots returns the most recent snapshots for a project, newest
// first.
func (db *DB) ListSnapshots(projectPath string, limit int) ([]Snapshot, error) {
	rows, err := db.conn.Query(
		"SELECT id, taken_at, command, project_path, version FROM snapshots WHERE project_path = ? ORDER BY id DESC LIMIT ?",
		projectPath, limit,
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var snapshots []Snapshot
	for rows.Next() {
		var s Snapshot
		var takenAt string
		if err := rows.Scan(&s.ID, &takenAt, &s.Command, &s.ProjectPath, &s.Version); err != nil {
			return nil, err
		}
		s.TakenAt, _ = time.Parse(time.RFC3339, takenAt)
		snapshots = append(snapshots, s)
	}
	return snapshots, rows.Err()
}

func scanSnapshot(row *sql.Row) (*Snapshot, error) {
	var s Snapshot
	var takenAt string
	err := row.Scan(&s.ID, &takenAt, &s.Command, &s.ProjectPath, &s.Version)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	s.TakenAt, _ = time.Parse(time.RFC3339, takenAt)
	return &s, nil
}

// InsertMetric records one metric value under a snapshot.
func (db *DB) InsertMetric(snapshotID int64, name string, value float64, detail string) error {
	_, err := db.conn.Exec(
		"INSERT INTO analysis_metrics (snapshot_id, metric_name, metric_value, detail) VALUES (?, ?, ?, ?)",
		snapshotID, name, value, detail,
	)
	return err
}

// GetMetrics returns all metrics recorded under a snapshot.
func (db *DB) GetMetrics(snapshotID int64) ([]Metric, error) {
	rows, err := db.conn.Query(
		"SELECT id, snapshot_id, metric_name, metric_value, detail FROM analysis_metrics WHERE snapshot_id = ?",
		snapshotID,
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var metrics []Metric
	for rows.Next() {
		var m Metric
		var detail sql.NullString
		if err := rows.Scan(&m.ID, &m.SnapshotID, &m.Name, &m.Value, &detail); err != nil {
			return nil, err
		}
		m.Detail = detail.String
		metrics = append(metrics, m)
	}
	return metrics, rows.Err()
}
