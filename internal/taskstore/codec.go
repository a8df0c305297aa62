package taskstore

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/runoshun/todo/internal/domain"
)

// SnapshotVersion is the version written by Encode.
const SnapshotVersion = 1

// snapshot is the on-disk form of the collection.
// Fields are ordered to minimize memory padding.
type snapshot struct {
	Tasks   []*domain.Task `json:"tasks"`
	Version int            `json:"version"`
}

// Encode serializes tasks into a snapshot.
func Encode(tasks []*domain.Task) ([]byte, error) {
	if tasks == nil {
		tasks = []*domain.Task{}
	}
	data, err := json.MarshalIndent(snapshot{Version: SnapshotVersion, Tasks: tasks}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return data, nil
}

// Decode parses a snapshot. Empty input yields an empty collection.
// A bare JSON array of tasks, as written by the browser version, is accepted too.
func Decode(data []byte) ([]*domain.Task, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil, nil
	}

	var tasks []*domain.Task
	switch data[0] {
	case '[':
		if err := json.Unmarshal(data, &tasks); err != nil {
			return nil, fmt.Errorf("%w: %w", domain.ErrSnapshotCorrupt, err)
		}
	case '{':
		var snap snapshot
		if err := json.Unmarshal(data, &snap); err != nil {
			return nil, fmt.Errorf("%w: %w", domain.ErrSnapshotCorrupt, err)
		}
		if snap.Version > SnapshotVersion {
			return nil, fmt.Errorf("%w: version %d is newer than %d", domain.ErrSnapshotCorrupt, snap.Version, SnapshotVersion)
		}
		tasks = snap.Tasks
	default:
		return nil, fmt.Errorf("%w: unexpected leading byte %q", domain.ErrSnapshotCorrupt, data[0])
	}

	return compact(tasks), nil
}

// compact drops null entries.
func compact(tasks []*domain.Task) []*domain.Task {
	out := tasks[:0]
	for _, t := range tasks {
		if t != nil {
			out = append(out, t)
		}
	}
	return out
}
