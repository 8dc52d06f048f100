package history

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/adamancini/foxport/internal/types"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "history.db"))
}

func TestRecordAndRecent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	events := []Event{
		{Channel: types.ChannelStable, Kind: EventInstall, ToVersion: "119.0"},
		{Channel: types.ChannelStable, Kind: EventUpdate, FromVersion: "119.0", ToVersion: "120.0"},
		{Channel: types.ChannelBeta, Kind: EventRemove, FromVersion: "121.0b4"},
	}
	for _, ev := range events {
		if err := s.Record(ctx, ev); err != nil {
			t.Fatalf("Record() error = %v", err)
		}
	}

	got, err := s.Recent(ctx, 0)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("Recent() returned %d events, want 3", len(got))
	}

	// Newest first.
	if got[0].Kind != EventRemove || got[0].Channel != types.ChannelBeta {
		t.Errorf("newest event = %+v, want beta remove", got[0])
	}
	if got[2].Kind != EventInstall || got[2].ToVersion != "119.0" {
		t.Errorf("oldest event = %+v, want stable install of 119.0", got[2])
	}
	if got[1].FromVersion != "119.0" || got[1].ToVersion != "120.0" {
		t.Errorf("update event versions = %q -> %q", got[1].FromVersion, got[1].ToVersion)
	}
}

func TestRecentLimit(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if err := s.Record(ctx, Event{Channel: types.ChannelNightly, Kind: EventUpdate}); err != nil {
			t.Fatalf("Record() error = %v", err)
		}
	}

	got, err := s.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if len(got) != 2 {
		t.Errorf("Recent(2) returned %d events", len(got))
	}
}

func TestRecentEmptyLedger(t *testing.T) {
	s := newTestStore(t)

	got, err := s.Recent(context.Background(), 10)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Recent() on fresh ledger returned %d events", len(got))
	}
}

func TestRecordSetsTimestamp(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	before := time.Now().UTC().Add(-time.Second)
	if err := s.Record(ctx, Event{Channel: types.ChannelStable, Kind: EventInstall}); err != nil {
		t.Fatalf("Record() error = %v", err)
	}

	got, err := s.Recent(ctx, 1)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("Recent() returned %d events, want 1", len(got))
	}
	if got[0].CreatedAt.Before(before) {
		t.Errorf("CreatedAt = %v, want recent timestamp", got[0].CreatedAt)
	}
}

func TestStoreCreatesFileLazily(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "history.db")
	s := NewStore(path)

	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatal("db file created before first use")
	}

	if err := s.Record(context.Background(), Event{Channel: types.ChannelStable, Kind: EventInstall}); err != nil {
		t.Fatalf("Record() error = %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("db file missing after first write: %v", err)
	}
}
