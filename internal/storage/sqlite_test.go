package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/shroom-run/internal/config"
	"github.com/vovakirdan/shroom-run/internal/replay"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func recordRun(t *testing.T, seed int64, ticks int) *replay.Replay {
	t.Helper()
	res, err := replay.Run(replay.Options{
		Config:   config.Default(),
		Seed:     seed,
		TickRate: 60,
		Ticks:    ticks,
		Policy:   replay.JumpEvery{Every: 40},
	})
	if err != nil {
		t.Fatalf("replay.Run() failed: %v", err)
	}
	return res.Replay
}

func TestStoreOpenClose(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndLoad(t *testing.T) {
	store := openTestStore(t)
	rec := recordRun(t, 3, 300)

	id, err := store.SaveReplay("first", rec)
	if err != nil {
		t.Fatalf("SaveReplay() failed: %v", err)
	}
	if rec.Name == "first" {
		t.Error("SaveReplay() should not modify the caller's replay")
	}

	loaded, err := store.Replay(id)
	if err != nil {
		t.Fatalf("Replay() failed: %v", err)
	}
	if loaded.Name != "first" || loaded.Seed != 3 || loaded.Checksum != rec.Checksum {
		t.Errorf("loaded replay = %+v", loaded)
	}
	if _, err := replay.Verify(loaded); err != nil {
		t.Errorf("stored replay does not verify: %v", err)
	}
}

func TestStoreRecentReplays(t *testing.T) {
	store := openTestStore(t)

	for i, name := range []string{"a", "b", "c"} {
		if _, err := store.SaveReplay(name, recordRun(t, int64(i), 60)); err != nil {
			t.Fatalf("SaveReplay(%s) failed: %v", name, err)
		}
	}

	entries, err := store.RecentReplays(2)
	if err != nil {
		t.Fatalf("RecentReplays() failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(entries))
	}
	if entries[0].Name != "c" || entries[1].Name != "b" {
		t.Errorf("Expected newest first, got %s, %s", entries[0].Name, entries[1].Name)
	}
	if entries[0].Ticks != 60 || entries[0].TickRate != 60 || entries[0].Checksum == "" {
		t.Errorf("Unexpected entry %+v", entries[0])
	}
	if entries[0].CreatedAt.IsZero() {
		t.Error("Expected created_at to be parsed")
	}
}

func TestStoreDeleteReplay(t *testing.T) {
	store := openTestStore(t)
	id, err := store.SaveReplay("gone", recordRun(t, 1, 30))
	if err != nil {
		t.Fatalf("SaveReplay() failed: %v", err)
	}

	if err := store.DeleteReplay(id); err != nil {
		t.Fatalf("DeleteReplay() failed: %v", err)
	}
	if _, err := store.Replay(id); !errors.Is(err, ErrNotFound) {
		t.Errorf("Replay() after delete error = %v, expected ErrNotFound", err)
	}
	if err := store.DeleteReplay(id); !errors.Is(err, ErrNotFound) {
		t.Errorf("second DeleteReplay() error = %v, expected ErrNotFound", err)
	}
}

func TestStoreRequiresName(t *testing.T) {
	store := openTestStore(t)
	if _, err := store.SaveReplay("", recordRun(t, 1, 10)); err == nil {
		t.Error("expected an error for an unnamed replay")
	}
}

func TestStoreEmpty(t *testing.T) {
	store := openTestStore(t)

	entries, err := store.RecentReplays(10)
	if err != nil {
		t.Fatalf("RecentReplays() failed: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("Expected no entries, got %d", len(entries))
	}
}
