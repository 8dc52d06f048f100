package backup

import (
	"fmt"

	"github.com/adamancini/foxport/internal/types"
)

// DefaultKeepCount is the default number of snapshots retained per channel.
const DefaultKeepCount = 5

// PruneResult contains information about what was pruned.
type PruneResult struct {
	Deleted []Snapshot
	Kept    int
}

// Prune removes old snapshots for a channel, keeping only the most recent
// N. An empty channel prunes every channel independently.
func (m *Manager) Prune(ch types.Channel, keep int) (*PruneResult, error) {
	if keep < 0 {
		return nil, fmt.Errorf("keep count must be non-negative")
	}

	if ch == "" {
		result := &PruneResult{}
		for _, c := range types.AllChannels() {
			r, err := m.Prune(c, keep)
			if err != nil {
				return nil, err
			}
			result.Deleted = append(result.Deleted, r.Deleted...)
			result.Kept += r.Kept
		}
		return result, nil
	}

	snapshots, err := m.List(ch)
	if err != nil {
		return nil, err
	}

	result := &PruneResult{}

	// Snapshots are already sorted newest first
	if len(snapshots) <= keep {
		result.Kept = len(snapshots)
		return result, nil
	}

	toDelete := snapshots[keep:]
	result.Kept = keep

	for _, snap := range toDelete {
		if err := m.Delete(snap.ID); err != nil {
			return nil, fmt.Errorf("delete snapshot %s: %w", snap.ID, err)
		}
		result.Deleted = append(result.Deleted, snap)
	}

	return result, nil
}
