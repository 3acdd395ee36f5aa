package store

import "sort"

// higherIsBetter maps metric names to their improvement direction.
// Metrics not listed count deltas as neutral "changed" movements.
var higherIsBetter = map[string]bool{
	"coverage_percentage":       true,
	"documented_items":          true,
	"missing_docstrings":        false,
	"unused_dependencies":       false,
	"packages_without_metadata": false,
}

// MetricHigherIsBetter reports the improvement direction for a metric
// name; the second return is false for metrics with no known direction.
func MetricHigherIsBetter(name string) (bool, bool) {
	higher, known := higherIsBetter[name]
	return higher, known
}

// CompareSnapshots computes per-metric deltas between two snapshots.
// Metrics present in only one snapshot are skipped.
func (db *DB) CompareSnapshots(previous, current *Snapshot) (*SnapshotDiff, error) {
	prevMetrics, err := db.GetMetrics(previous.ID)
	if err != nil {
		return nil, err
	}
	currMetrics, err := db.GetMetrics(current.ID)
	if err != nil {
		return nil, err
	}

	prevByName := make(map[string]float64, len(prevMetrics))
	for _, m := range prevMetrics {
		prevByName[m.Name] = m.Value
	}

	diff := &SnapshotDiff{Previous: previous, Current: current}
	for _, m := range currMetrics {
		prev, ok := prevByName[m.Name]
		if !ok {
			continue
		}
		diff.Deltas = append(diff.Deltas, MetricDelta{
			Name:      m.Name,
			Previous:  prev,
			Current:   m.Value,
			Delta:     m.Value - prev,
			Direction: deltaDirection(m.Name, m.Value-prev),
		})
	}
	sort.Slice(diff.Deltas, func(i, j int) bool {
		return diff.Deltas[i].Name < diff.Deltas[j].Name
	})
	return diff, nil
}

func deltaDirection(name string, delta float64) string {
	if delta == 0 {
		return "unchanged"
	}
	higher, known := higherIsBetter[name]
	if !known {
		return "changed"
	}
	if (delta > 0) == higher {
		return "improved"
	}
	return "regressed"
}
