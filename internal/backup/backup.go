// Package backup handles profile snapshot and restore operations. A browser
// update never touches the profile, but profiles are the only state a user
// cannot re-download, so snapshots land as zip archives in the base
// directory's backups folder.
package backup

import (
	"archive/zip"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/adamancini/foxport/internal/types"
)

const idTimeFormat = "2006-01-02-150405"

// Snapshot describes one stored profile archive.
type Snapshot struct {
	ID        string        `json:"id" yaml:"id"`
	Channel   types.Channel `json:"channel" yaml:"channel"`
	CreatedAt time.Time     `json:"created_at" yaml:"created_at"`
	Note      string        `json:"note,omitempty" yaml:"note,omitempty"`
	Size      int64         `json:"size" yaml:"size"`
}

// Manager handles snapshot operations against one backups directory.
type Manager struct {
	backupDir string
}

// NewManager creates a manager storing snapshots under backupDir.
func NewManager(backupDir string) *Manager {
	return &Manager{backupDir: backupDir}
}

// BackupDir returns the backup directory path.
func (m *Manager) BackupDir() string {
	return m.backupDir
}

// Create archives the channel's profile directory into a new snapshot and
// returns it. The note is stored in the archive comment.
func (m *Manager) Create(ch types.Channel, profileDir, note string) (*Snapshot, error) {
	if _, err := os.Stat(profileDir); err != nil {
		return nil, fmt.Errorf("profile directory not found: %w", err)
	}

	if err := os.MkdirAll(m.backupDir, 0o755); err != nil {
		return nil, fmt.Errorf("create backup directory: %w", err)
	}

	now := time.Now()
	id := string(ch) + "-" + now.Format(idTimeFormat)
	path := m.snapshotPath(id)

	if err := writeArchive(path, profileDir, note); err != nil {
		os.Remove(path)
		return nil, err
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat snapshot: %w", err)
	}

	return &Snapshot{
		ID:        id,
		Channel:   ch,
		CreatedAt: now,
		Note:      note,
		Size:      info.Size(),
	}, nil
}

// List returns all snapshots sorted by creation time, newest first. When ch
// is non-empty only that channel's snapshots are returned.
func (m *Manager) List(ch types.Channel) ([]Snapshot, error) {
	entries, err := os.ReadDir(m.backupDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []Snapshot{}, nil
		}
		return nil, fmt.Errorf("read backup directory: %w", err)
	}

	snapshots := []Snapshot{}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".zip" {
			continue
		}

		snap, err := m.parseSnapshot(entry)
		if err != nil {
			continue
		}
		if ch != "" && snap.Channel != ch {
			continue
		}
		snapshots = append(snapshots, snap)
	}

	sort.Slice(snapshots, func(i, j int) bool {
		return snapshots[i].CreatedAt.After(snapshots[j].CreatedAt)
	})

	return snapshots, nil
}

// Latest returns the newest snapshot for a channel.
func (m *Manager) Latest(ch types.Channel) (*Snapshot, error) {
	snapshots, err := m.List(ch)
	if err != nil {
		return nil, err
	}
	if len(snapshots) == 0 {
		return nil, fmt.Errorf("no snapshots found for %s", ch)
	}
	return &snapshots[0], nil
}

// Restore replaces profileDir's contents with the snapshot's archive.
func (m *Manager) Restore(id string, profileDir string) error {
	path := m.snapshotPath(id)
	r, err := zip.OpenReader(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("snapshot not found: %s", id)
		}
		return fmt.Errorf("open snapshot: %w", err)
	}
	defer r.Close()

	if err := os.RemoveAll(profileDir); err != nil {
		return fmt.Errorf("clear profile directory: %w", err)
	}
	if err := os.MkdirAll(profileDir, 0o755); err != nil {
		return fmt.Errorf("create profile directory: %w", err)
	}

	for _, f := range r.File {
		if err := extractEntry(f, profileDir); err != nil {
			return err
		}
	}

	return nil
}

// Delete removes a snapshot by ID.
func (m *Manager) Delete(id string) error {
	path := m.snapshotPath(id)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return fmt.Errorf("snapshot not found: %s", id)
	}

	if err := os.Remove(path); err != nil {
		return fmt.Errorf("delete snapshot: %w", err)
	}

	return nil
}

func (m *Manager) snapshotPath(id string) string {
	return filepath.Join(m.backupDir, id+".zip")
}

// parseSnapshot reconstructs snapshot metadata from the archive filename
// and comment. IDs look like "stable-2026-08-30-153000".
func (m *Manager) parseSnapshot(entry fs.DirEntry) (Snapshot, error) {
	id := strings.TrimSuffix(entry.Name(), ".zip")

	idx := strings.Index(id, "-")
	if idx < 0 {
		return Snapshot{}, fmt.Errorf("malformed snapshot name: %s", entry.Name())
	}
	ch, err := types.ParseChannel(id[:idx])
	if err != nil {
		return Snapshot{}, err
	}
	createdAt, err := time.ParseInLocation(idTimeFormat, id[idx+1:], time.Local)
	if err != nil {
		return Snapshot{}, fmt.Errorf("malformed snapshot timestamp: %s", entry.Name())
	}

	info, err := entry.Info()
	if err != nil {
		return Snapshot{}, err
	}

	note := ""
	if r, err := zip.OpenReader(filepath.Join(m.backupDir, entry.Name())); err == nil {
		note = r.Comment
		r.Close()
	}

	return Snapshot{
		ID:        id,
		Channel:   ch,
		CreatedAt: createdAt,
		Note:      note,
		Size:      info.Size(),
	}, nil
}

func writeArchive(path, srcDir, note string) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create snapshot file: %w", err)
	}
	defer out.Close()

	zw := zip.NewWriter(out)
	if note != "" {
		if err := zw.SetComment(note); err != nil {
			return fmt.Errorf("set snapshot note: %w", err)
		}
	}

	err = filepath.WalkDir(srcDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(srcDir, p)
		if err != nil {
			return err
		}

		w, err := zw.Create(filepath.ToSlash(rel))
		if err != nil {
			return err
		}

		in, err := os.Open(p)
		if err != nil {
			return err
		}
		defer in.Close()

		_, err = io.Copy(w, in)
		return err
	})
	if err != nil {
		zw.Close()
		return fmt.Errorf("archive profile: %w", err)
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("finalize snapshot: %w", err)
	}
	return out.Close()
}

func extractEntry(f *zip.File, destDir string) error {
	// Reject entries that would escape the profile directory.
	target := filepath.Join(destDir, filepath.FromSlash(f.Name))
	if !strings.HasPrefix(target, filepath.Clean(destDir)+string(os.PathSeparator)) {
		return fmt.Errorf("snapshot entry escapes profile directory: %s", f.Name)
	}

	if f.FileInfo().IsDir() {
		return os.MkdirAll(target, 0o755)
	}

	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}

	in, err := f.Open()
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
