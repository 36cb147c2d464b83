package refresolver

import (
	"path/filepath"
	"testing"

	"github.com/ProgramComputer/EmbeddingBridge-sub001/internal/ebterr"
	"github.com/ProgramComputer/EmbeddingBridge-sub001/internal/objectstore"
	"github.com/ProgramComputer/EmbeddingBridge-sub001/internal/setmgr"
)

func newTestResolver(t *testing.T) (*Resolver, *setmgr.Manager, *objectstore.Store) {
	t.Helper()
	embrDir := filepath.Join(t.TempDir(), ".embr")
	sets := setmgr.New(embrDir)
	if _, err := sets.Current(); err != nil {
		t.Fatalf("Current: %v", err)
	}
	store := objectstore.Open(embrDir)
	if err := store.EnsureLayout(); err != nil {
		t.Fatalf("EnsureLayout: %v", err)
	}
	return New(sets, store), sets, store
}

func TestCurrentHashReturnsLastAppend(t *testing.T) {
	r, sets, _ := newTestResolver(t)
	if err := sets.UpsertIndex("main", "doc.txt", "aaaa"); err != nil {
		t.Fatalf("UpsertIndex: %v", err)
	}
	if err := sets.UpsertIndex("main", "doc.txt", "bbbb"); err != nil {
		t.Fatalf("UpsertIndex: %v", err)
	}

	got, err := r.CurrentHash("main", "doc.txt")
	if err != nil {
		t.Fatalf("CurrentHash: %v", err)
	}
	if got != "bbbb" {
		t.Fatalf("CurrentHash = %q, want bbbb", got)
	}
}

func TestCurrentHashNotFound(t *testing.T) {
	r, _, _ := newTestResolver(t)
	if _, err := r.CurrentHash("main", "missing.txt"); !ebterr.Is(err, ebterr.KindNotFound) {
		t.Fatalf("err = %v, want NotFound", err)
	}
}

func TestCurrentHashWithModelPrefersModelRef(t *testing.T) {
	r, sets, _ := newTestResolver(t)
	if err := sets.UpsertIndex("main", "doc.txt", "aaaa"); err != nil {
		t.Fatalf("UpsertIndex: %v", err)
	}
	if err := sets.UpsertModelRef("main", "clip-vit-b32", "doc.txt", "cccc"); err != nil {
		t.Fatalf("UpsertModelRef: %v", err)
	}

	got, err := r.CurrentHashWithModel("main", "doc.txt", "clip-vit-b32")
	if err != nil {
		t.Fatalf("CurrentHashWithModel: %v", err)
	}
	if got != "cccc" {
		t.Fatalf("CurrentHashWithModel = %q, want cccc", got)
	}
}

func TestVersionHistoryIsChronological(t *testing.T) {
	r, sets, _ := newTestResolver(t)
	entries := []setmgr.LogEntry{
		{Timestamp: 100, Hash: "aaaa", Path: "doc.txt", Model: "m1"},
		{Timestamp: 200, Hash: "bbbb", Path: "doc.txt", Model: "m1"},
		{Timestamp: 150, Hash: "cccc", Path: "other.txt", Model: "m1"},
	}
	for _, e := range entries {
		if err := sets.AppendLog("main", e); err != nil {
			t.Fatalf("AppendLog: %v", err)
		}
	}

	history, err := r.VersionHistory("main", "doc.txt")
	if err != nil {
		t.Fatalf("VersionHistory: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("len(history) = %d, want 2", len(history))
	}
	if history[0].Hash != "aaaa" || history[1].Hash != "bbbb" {
		t.Fatalf("history out of order: %+v", history)
	}
	if history[0].ID != 1 || history[1].ID != 2 {
		t.Fatalf("history ids wrong: %+v", history)
	}
}
