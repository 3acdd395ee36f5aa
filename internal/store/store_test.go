package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := OpenInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestOpen_CreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "pyreview.db")
	db, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = os.Stat(path)
	require.NoError(t, err)

	_, err = db.CreateSnapshot("history", "/proj", "dev")
	require.NoError(t, err)
}

func TestSnapshotRoundTrip(t *testing.T) {
	db := openTestDB(t)

	id, err := db.CreateSnapshot("history", "/proj", "1.0.0")
	require.NoError(t, err)
	require.NoError(t, db.InsertMetric(id, "coverage_percentage", 81.5, ""))

	snap, err := db.GetLatestSnapshot("/proj")
	require.NoError(t, err)
	require.NotNil(t, snap)
	require.Equal(t, id, snap.ID)
	require.Equal(t, "history", snap.Command)
	require.Equal(t, "/proj", snap.ProjectPath)
	require.False(t, snap.TakenAt.IsZero())

	metrics, err := db.GetMetrics(id)
	require.NoError(t, err)
	require.Len(t, metrics, 1)
	require.Equal(t, "coverage_percentage", metrics[0].Name)
	require.Equal(t, 81.5, metrics[0].Value)
}

func TestSnapshotsArePerProject(t *testing.T) {
	db := openTestDB(t)

	_, err := db.CreateSnapshot("history", "/a", "dev")
	require.NoError(t, err)
	_, err = db.CreateSnapshot("history", "/b", "dev")
	require.NoError(t, err)

	snap, err := db.GetLatestSnapshot("/a")
	require.NoError(t, err)
	require.Equal(t, "/a", snap.ProjectPath)

	none, err := db.GetLatestSnapshot("/c")
	require.NoError(t, err)
	require.Nil(t, none)
}

func TestGetSnapshotN(t *testing.T) {
	db := openTestDB(t)

	first, err := db.CreateSnapshot("history", "/proj", "dev")
	require.NoError(t, err)
	second, err := db.CreateSnapshot("history", "/proj", "dev")
	require.NoError(t, err)

	latest, err := db.GetSnapshotN("/proj", 1)
	require.NoError(t, err)
	require.Equal(t, second, latest.ID)

	previous, err := db.GetSnapshotN("/proj", 2)
	require.NoError(t, err)
	require.Equal(t, first, previous.ID)

	missing, err := db.GetSnapshotN("/proj", 3)
	require.NoError(t, err)
	require.Nil(t, missing)
}

func TestListSnapshots(t *testing.T) {
	db := openTestDB(t)

	for i := 0; i < 3; i++ {
		_, err := db.CreateSnapshot("history", "/proj", "dev")
		require.NoError(t, err)
	}

	snaps, err := db.ListSnapshots("/proj", 2)
	require.NoError(t, err)
	require.Len(t, snaps, 2)
	require.Greater(t, snaps[0].ID, snaps[1].ID)
}

func TestCompareSnapshots(t *testing.T) {
	db := openTestDB(t)

	prevID, err := db.CreateSnapshot("history", "/proj", "dev")
	require.NoError(t, err)
	require.NoError(t, db.InsertMetric(prevID, "coverage_percentage", 60, ""))
	require.NoError(t, db.InsertMetric(prevID, "unused_dependencies", 3, ""))
	require.NoError(t, db.InsertMetric(prevID, "total_items", 10, ""))

	currID, err := db.CreateSnapshot("history", "/proj", "dev")
	require.NoError(t, err)
	require.NoError(t, db.InsertMetric(currID, "coverage_percentage", 75, ""))
	require.NoError(t, db.InsertMetric(currID, "unused_dependencies", 5, ""))
	require.NoError(t, db.InsertMetric(currID, "total_items", 10, ""))

	prev, err := db.GetSnapshot(prevID)
	require.NoError(t, err)
	curr, err := db.GetSnapshot(currID)
	require.NoError(t, err)

	diff, err := db.CompareSnapshots(prev, curr)
	require.NoError(t, err)
	require.Len(t, diff.Deltas, 3)

	byName := map[string]MetricDelta{}
	for _, d := range diff.Deltas {
		byName[d.Name] = d
	}

	cov := byName["coverage_percentage"]
	require.Equal(t, 15.0, cov.Delta)
	require.Equal(t, "improved", cov.Direction)

	unused := byName["unused_dependencies"]
	require.Equal(t, 2.0, unused.Delta)
	require.Equal(t, "regressed", unused.Direction)

	require.Equal(t, "unchanged", byName["total_items"].Direction)
}

func TestMigrateIsIdempotent(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, db.Migrate())
	require.NoError(t, db.Migrate())
}
