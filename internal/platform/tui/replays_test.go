package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/shroom-run/internal/config"
	"github.com/vovakirdan/shroom-run/internal/replay"
	"github.com/vovakirdan/shroom-run/internal/storage"
)

// memStore keeps replays in memory.
type memStore struct {
	entries []storage.ReplayEntry
	docs    map[int64]*replay.Replay
}

func newMemStore(t *testing.T, names ...string) *memStore {
	t.Helper()
	s := &memStore{docs: make(map[int64]*replay.Replay)}
	for i, name := range names {
		res, err := replay.Run(replay.Options{
			Config:   config.Default(),
			Seed:     int64(i + 1),
			TickRate: 60,
			Name:     name,
			Ticks:    90,
		})
		if err != nil {
			t.Fatalf("replay.Run() error = %v", err)
		}
		id := int64(i + 1)
		s.docs[id] = res.Replay
		s.entries = append([]storage.ReplayEntry{{
			ID:        id,
			Name:      name,
			Seed:      res.Replay.Seed,
			TickRate:  60,
			Ticks:     res.Replay.Ticks,
			Checksum:  res.Replay.Checksum,
			CreatedAt: time.Now(),
		}}, s.entries...)
	}
	return s
}

func (s *memStore) RecentReplays(limit int) ([]storage.ReplayEntry, error) {
	return append([]storage.ReplayEntry(nil), s.entries...), nil
}

func (s *memStore) Replay(id int64) (*replay.Replay, error) {
	r, ok := s.docs[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return r, nil
}

func (s *memStore) DeleteReplay(id int64) error {
	if _, ok := s.docs[id]; !ok {
		return storage.ErrNotFound
	}
	delete(s.docs, id)
	kept := s.entries[:0]
	for _, e := range s.entries {
		if e.ID != id {
			kept = append(kept, e)
		}
	}
	s.entries = kept
	return nil
}

func browserSend(t *testing.T, m BrowserModel, msg tea.Msg) BrowserModel {
	t.Helper()
	next, _ := m.Update(msg)
	model, ok := next.(BrowserModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return model
}

func TestBrowserListsNewestFirst(t *testing.T) {
	m := NewBrowserModel(newMemStore(t, "old", "new"), 100, 30)

	if len(m.entries) != 2 || m.entries[0].Name != "new" {
		t.Fatalf("entries = %+v", m.entries)
	}
	if !strings.Contains(m.View(), "REPLAYS (2)") {
		t.Error("title should count the replays")
	}
}

func TestBrowserPlaySelected(t *testing.T) {
	m := NewBrowserModel(newMemStore(t, "a", "b"), 100, 30)

	m = browserSend(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m = browserSend(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.PlayID() != 1 {
		t.Errorf("PlayID() = %d, expected the second row (id 1)", m.PlayID())
	}
}

func TestBrowserVerify(t *testing.T) {
	store := newMemStore(t, "ok")
	m := NewBrowserModel(store, 100, 30)

	m = browserSend(t, m, runeKey("v"))
	if m.statusErr || !strings.Contains(m.status, "verified") {
		t.Errorf("status = %q (err=%v), expected a verified message", m.status, m.statusErr)
	}

	store.docs[1].Checksum = "tampered"
	m = browserSend(t, m, runeKey("v"))
	if !m.statusErr || !strings.Contains(m.status, "checksum mismatch") {
		t.Errorf("status = %q, expected a checksum mismatch", m.status)
	}
}

func TestBrowserDelete(t *testing.T) {
	store := newMemStore(t, "a", "b")
	m := NewBrowserModel(store, 100, 30)

	m = browserSend(t, m, runeKey("d"))
	if len(m.entries) != 1 || m.entries[0].Name != "a" {
		t.Errorf("entries after delete = %+v", m.entries)
	}
	if len(store.docs) != 1 {
		t.Errorf("store should hold one replay, holds %d", len(store.docs))
	}
}

func TestBrowserEmptyAndBack(t *testing.T) {
	m := NewBrowserModel(nil, 80, 24)
	if !strings.Contains(m.View(), "No replays recorded yet") {
		t.Error("empty archive should show a hint")
	}

	m = browserSend(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.PlayID() != 0 {
		t.Error("nothing to play in an empty archive")
	}

	m = browserSend(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if !m.IsGoingBack() || m.IsQuitting() {
		t.Error("esc should go back to the menu")
	}
}
