package gc

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ProgramComputer/EmbeddingBridge-sub001/internal/objectstore"
	"github.com/ProgramComputer/EmbeddingBridge-sub001/internal/setmgr"
)

func TestResolveExpiryDefaultsToTwoWeeksAgo(t *testing.T) {
	fixed := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	got, err := ResolveExpiry("", fixed)
	if err != nil {
		t.Fatalf("ResolveExpiry: %v", err)
	}
	want := fixed.Add(-14 * 24 * time.Hour)
	if !got.Equal(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestResolveExpiryParsesUnitAgo(t *testing.T) {
	fixed := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	got, err := ResolveExpiry("2.weeks.ago", fixed)
	if err != nil {
		t.Fatalf("ResolveExpiry: %v", err)
	}
	want := fixed.Add(-2 * 7 * 24 * time.Hour)
	if !got.Equal(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestResolveExpiryRejectsMalformed(t *testing.T) {
	if _, err := ResolveExpiry("bogus", time.Now()); err == nil {
		t.Fatal("expected error for malformed prune_expire")
	}
}

func TestIsNever(t *testing.T) {
	if !IsNever("never") {
		t.Fatal("expected never to report true")
	}
	if IsNever("2.weeks.ago") {
		t.Fatal("expected non-never to report false")
	}
}

func TestLockAcquireReleaseRoundTrip(t *testing.T) {
	dir := t.TempDir()
	lock := NewLock(dir)
	if err := lock.Acquire(); err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	if err := lock.Release(); err != nil {
		t.Fatalf("Release: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "gc.lock")); !os.IsNotExist(err) {
		t.Fatal("expected gc.lock to be removed after Release")
	}
}

func TestLockAcquireFailsWhenHeldByLiveProcess(t *testing.T) {
	dir := t.TempDir()
	lockPath := filepath.Join(dir, "gc.lock")
	if err := os.WriteFile(lockPath, []byte("1\n"), 0o644); err != nil {
		t.Fatalf("seed lock: %v", err)
	}

	lock := NewLock(dir)
	if err := lock.Acquire(); err == nil {
		t.Fatal("expected Acquire to fail against a lock held by pid 1")
	}
}

func TestLockAcquireRecoversStaleLock(t *testing.T) {
	dir := t.TempDir()
	lockPath := filepath.Join(dir, "gc.lock")
	// a pid unlikely to correspond to a running process.
	if err := os.WriteFile(lockPath, []byte("999999\n"), 0o644); err != nil {
		t.Fatalf("seed lock: %v", err)
	}

	lock := NewLock(dir)
	if err := lock.Acquire(); err != nil {
		t.Fatalf("expected stale lock recovery to succeed, got: %v", err)
	}
	lock.Release()
}

func TestRunSweepsUnreferencedExpiredObjects(t *testing.T) {
	root := t.TempDir()
	embrDir := filepath.Join(root, ".embr")
	store := objectstore.Open(embrDir)
	if err := store.EnsureLayout(); err != nil {
		t.Fatalf("EnsureLayout: %v", err)
	}
	sets := setmgr.New(embrDir)
	if err := sets.Create("main", "", ""); err != nil {
		t.Fatalf("Create: %v", err)
	}

	keptHash, err := store.Write([]byte{0, 0, 0x80, 0x3f}, objectstore.ObjVector, 0, 0)
	if err != nil {
		t.Fatalf("Write kept: %v", err)
	}
	if err := sets.WriteRef("main", "kept.txt", keptHash); err != nil {
		t.Fatalf("WriteRef: %v", err)
	}

	staleHash, err := store.Write([]byte{0, 0, 0, 0x40}, objectstore.ObjVector, 0, 0)
	if err != nil {
		t.Fatalf("Write stale: %v", err)
	}
	oldTime := time.Now().Add(-30 * 24 * time.Hour)
	rawPath := filepath.Join(store.ObjectsDir(), staleHash+".raw")
	if err := os.Chtimes(rawPath, oldTime, oldTime); err != nil {
		t.Fatalf("Chtimes: %v", err)
	}

	result, err := Run(embrDir, store, sets, Options{PruneExpire: "2.weeks.ago"})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.ObjectsRemoved != 1 {
		t.Fatalf("ObjectsRemoved = %d, want 1", result.ObjectsRemoved)
	}
	if result.ObjectsKept != 1 {
		t.Fatalf("ObjectsKept = %d, want 1", result.ObjectsKept)
	}
	if !store.Exists(keptHash) {
		t.Fatal("referenced object was removed")
	}
	if store.Exists(staleHash) {
		t.Fatal("unreferenced expired object was not removed")
	}
}

func TestRunSkipsWhenNever(t *testing.T) {
	root := t.TempDir()
	embrDir := filepath.Join(root, ".embr")
	store := objectstore.Open(embrDir)
	store.EnsureLayout()
	sets := setmgr.New(embrDir)
	sets.Create("main", "", "")

	result, err := Run(embrDir, store, sets, Options{PruneExpire: "never"})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !result.Skipped {
		t.Fatal("expected Skipped=true for prune_expire=never")
	}
}

func TestRunDryRunDoesNotDelete(t *testing.T) {
	root := t.TempDir()
	embrDir := filepath.Join(root, ".embr")
	store := objectstore.Open(embrDir)
	store.EnsureLayout()
	sets := setmgr.New(embrDir)
	sets.Create("main", "", "")

	staleHash, err := store.Write([]byte{1, 2, 3, 4}, objectstore.ObjVector, 0, 0)
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	oldTime := time.Now().Add(-30 * 24 * time.Hour)
	rawPath := filepath.Join(store.ObjectsDir(), staleHash+".raw")
	os.Chtimes(rawPath, oldTime, oldTime)

	result, err := Run(embrDir, store, sets, Options{PruneExpire: "2.weeks.ago", DryRun: true})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.ObjectsRemoved != 1 {
		t.Fatalf("ObjectsRemoved = %d, want 1", result.ObjectsRemoved)
	}
	if !store.Exists(staleHash) {
		t.Fatal("dry run should not have deleted the object")
	}
}
