// Package gc implements the lockfile-guarded sweep that removes
// unreferenced, expired objects from the store: at most one sweep runs
// per repository at a time, and an object survives as long as any set's
// refs/ subtree still names its hash, regardless of age.
package gc

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ProgramComputer/EmbeddingBridge-sub001/internal/objectstore"
	"github.com/ProgramComputer/EmbeddingBridge-sub001/internal/setmgr"
)

// Options configures a sweep.
type Options struct {
	PruneExpire string // "never", "now", "<N>.<unit>.ago", or "" for the default
	Aggressive  bool   // declared, no additional required behavior
	DryRun      bool
}

// Result reports what a sweep did or would do.
type Result struct {
	ObjectsRemoved int
	ObjectsKept    int
	Removed        []string
	Skipped        bool // true when PruneExpire == "never"
}

// Run acquires the GC lock, resolves the expiry horizon, sweeps
// .embr/objects/ for hashes unreferenced by every set's refs/ subtree
// and older than the horizon, and releases the lock. Lock contention is
// reported as a LockFailed error; it is the caller's job to treat that
// as non-fatal to the invoking command.
func Run(embrDir string, store *objectstore.Store, sets *setmgr.Manager, opts Options) (*Result, error) {
	if IsNever(opts.PruneExpire) {
		return &Result{Skipped: true}, nil
	}

	lock := NewLock(embrDir)
	if err := lock.Acquire(); err != nil {
		return nil, err
	}
	defer lock.Release()

	horizon, err := ResolveExpiry(opts.PruneExpire, now())
	if err != nil {
		return nil, err
	}

	referenced, err := referencedHashes(sets)
	if err != nil {
		return nil, err
	}

	return sweepObjects(store, referenced, horizon, opts.DryRun)
}

// referencedHashes unions every set's refs/<source> contents: an object
// is kept if any set, through any ref, still names its hash.
func referencedHashes(sets *setmgr.Manager) (map[string]bool, error) {
	out := make(map[string]bool)

	infos, err := sets.List(false)
	if err != nil {
		return nil, err
	}
	for _, info := range infos {
		refs, err := sets.ListRefs(info.Name)
		if err != nil {
			return nil, err
		}
		for _, hash := range refs {
			out[hash] = true
		}
	}
	return out, nil
}

func sweepObjects(store *objectstore.Store, referenced map[string]bool, horizon time.Time, dryRun bool) (*Result, error) {
	result := &Result{}

	entries, err := os.ReadDir(store.ObjectsDir())
	if err != nil {
		if os.IsNotExist(err) {
			return result, nil
		}
		return nil, err
	}

	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if !strings.HasSuffix(name, ".raw") {
			continue
		}
		hash := strings.TrimSuffix(name, ".raw")

		if referenced[hash] {
			result.ObjectsKept++
			continue
		}

		info, err := e.Info()
		if err != nil {
			continue
		}
		if info.ModTime().After(horizon) {
			result.ObjectsKept++
			continue
		}

		if !dryRun {
			os.Remove(filepath.Join(store.ObjectsDir(), name))
			os.Remove(store.MetaPath(hash))
		}
		result.ObjectsRemoved++
		result.Removed = append(result.Removed, hash)
	}

	return result, nil
}

// now supplies the current time from which the sweep resolves its
// expiry horizon.
var now = time.Now
