// Package refresolver answers "what hash does this source path resolve
// to" questions: the current hash for a source, optionally scoped to a
// model, and the full chronological version history of a source.
package refresolver

import (
	"github.com/ProgramComputer/EmbeddingBridge-sub001/internal/ebterr"
	"github.com/ProgramComputer/EmbeddingBridge-sub001/internal/objectstore"
	"github.com/ProgramComputer/EmbeddingBridge-sub001/internal/setmgr"
)

// Resolver reads a set's index/log/refs-models files to answer
// source-path queries. It never mutates them.
type Resolver struct {
	sets  *setmgr.Manager
	store *objectstore.Store
}

// New returns a Resolver backed by the given set manager and object
// store.
func New(sets *setmgr.Manager, store *objectstore.Store) *Resolver {
	return &Resolver{sets: sets, store: store}
}

// CurrentHash scans the set's index for the last line whose path equals
// source and returns its hash.
func (r *Resolver) CurrentHash(set, source string) (string, error) {
	const op = "refresolver.CurrentHash"
	entries, err := r.sets.ReadIndex(set)
	if err != nil {
		return "", err
	}
	for i := len(entries) - 1; i >= 0; i-- {
		if entries[i].Path == source {
			return entries[i].Hash, nil
		}
	}
	return "", ebterr.New(op, ebterr.KindNotFound, "no index entry for "+source)
}

// CurrentHashWithModel prefers refs/models/<model>, falls back to the
// index (verified against the object's .meta provider/model), then to
// the most recent matching log entry.
func (r *Resolver) CurrentHashWithModel(set, source, model string) (string, error) {
	const op = "refresolver.CurrentHashWithModel"

	modelRefs, err := r.sets.ReadModelRef(set, model)
	if err != nil {
		return "", err
	}
	for i := len(modelRefs) - 1; i >= 0; i-- {
		if modelRefs[i].Path == source {
			return modelRefs[i].Hash, nil
		}
	}

	entries, err := r.sets.ReadIndex(set)
	if err != nil {
		return "", err
	}
	for i := len(entries) - 1; i >= 0; i-- {
		if entries[i].Path != source {
			continue
		}
		meta, metaErr := objectstore.SidecarMap(r.store.MetaPath(entries[i].Hash))
		if metaErr == nil && sidecarMatchesModel(meta, model) {
			return entries[i].Hash, nil
		}
	}

	logEntries, err := r.sets.ReadLog(set)
	if err != nil {
		return "", err
	}
	for i := len(logEntries) - 1; i >= 0; i-- {
		if logEntries[i].Path == source && logEntries[i].Model == model {
			return logEntries[i].Hash, nil
		}
	}

	return "", ebterr.New(op, ebterr.KindNotFound, "no hash for "+source+" at model "+model)
}

func sidecarMatchesModel(meta map[string]string, model string) bool {
	if v, ok := meta["model"]; ok && v == model {
		return true
	}
	if v, ok := meta["provider"]; ok && v == model {
		return true
	}
	return false
}

// Version is one entry in a source's chronological history.
type Version struct {
	ID        int
	Timestamp int64
	Hash      string
	Provider  string
}

// VersionHistory scans the set's log and returns an ordered sequence of
// versions for source, in chronological (append) order.
func (r *Resolver) VersionHistory(set, source string) ([]Version, error) {
	entries, err := r.sets.ReadLog(set)
	if err != nil {
		return nil, err
	}
	var out []Version
	id := 1
	for _, e := range entries {
		if e.Path != source {
			continue
		}
		out = append(out, Version{ID: id, Timestamp: e.Timestamp, Hash: e.Hash, Provider: e.Model})
		id++
	}
	return out, nil
}
