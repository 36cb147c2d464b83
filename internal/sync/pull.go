package sync

import (
	"os"
	"strings"

	"github.com/ProgramComputer/EmbeddingBridge-sub001/internal/ebterr"
	"github.com/ProgramComputer/EmbeddingBridge-sub001/internal/objectstore"
	"github.com/ProgramComputer/EmbeddingBridge-sub001/internal/parquet"
	"github.com/ProgramComputer/EmbeddingBridge-sub001/internal/progress"
	"github.com/ProgramComputer/EmbeddingBridge-sub001/internal/setmgr"
	"github.com/ProgramComputer/EmbeddingBridge-sub001/internal/transport"
)

// PullResult summarizes a pull: per-object outcomes and whether local
// state was rebuilt from metadata.json.
type PullResult struct {
	Downloaded int
	Failed     []string // "<hash>: <error>"
	Rebuilt    bool
}

// Pull ensures the set's working files exist, downloads any remote
// document absent locally, inverse-transforms it into an object plus
// sidecar, and rebuilds index/log/refs from metadata.json when local
// state is missing or empty. Per-object failures are recorded but do
// not abort the pull.
func Pull(tr transport.Transport, sets *setmgr.Manager, store *objectstore.Store, set string, reporter progress.Reporter) (*PullResult, error) {
	if err := tr.Connect(); err != nil {
		return nil, err
	}
	if err := sets.EnsureWorkingFiles(set); err != nil {
		return nil, err
	}
	if err := store.EnsureLayout(); err != nil {
		return nil, err
	}

	result := &PullResult{}

	keys, err := tr.ListFiles(documentsPrefix(set))
	if err != nil {
		return result, err
	}

	snapshot, snapErr := fetchSnapshot(tr, set)
	if snapErr == nil && snapshot != nil {
		rebuilt, err := rebuildIfEmpty(sets, store, set, snapshot)
		if err != nil {
			return result, err
		}
		result.Rebuilt = rebuilt
	}

	localHashes := localObjectHashes(store)

	var toDownload []string
	for _, key := range keys {
		hash := hashFromDocumentKey(key)
		if hash != "" && !localHashes[hash] {
			toDownload = append(toDownload, key)
		}
	}

	if reporter != nil {
		reporter.Start(len(toDownload))
	}

	for i, key := range toDownload {
		if reporter != nil {
			reporter.Update(i+1, key)
		}
		if err := pullOne(tr, store, key); err != nil {
			result.Failed = append(result.Failed, key+": "+err.Error())
			continue
		}
		result.Downloaded++
	}

	if reporter != nil {
		reporter.Finish()
	}

	return result, nil
}

func fetchSnapshot(tr transport.Transport, set string) (*Snapshot, error) {
	data, err := tr.ReceiveData(metadataKey(set))
	if err != nil {
		if ebterr.Is(err, ebterr.KindNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return decodeSnapshot(data)
}

func rebuildIfEmpty(sets *setmgr.Manager, store *objectstore.Store, set string, snapshot *Snapshot) (bool, error) {
	index, err := sets.ReadIndex(set)
	if err != nil {
		return false, err
	}
	logEntries, err := sets.ReadLog(set)
	if err != nil {
		return false, err
	}
	models, err := sets.ListModels(set)
	if err != nil {
		return false, err
	}

	if len(index) > 0 && len(logEntries) > 0 && len(models) > 0 {
		return false, nil
	}

	if len(index) == 0 {
		var entries []setmgr.IndexEntry
		for _, ref := range snapshot.Index {
			entries = append(entries, setmgr.IndexEntry{Hash: ref.Hash, Path: ref.Path})
			if err := sets.WriteRef(set, ref.Path, ref.Hash); err != nil {
				return false, err
			}
		}
		if err := sets.WriteIndex(set, entries); err != nil {
			return false, err
		}
	}

	if len(logEntries) == 0 {
		for _, obj := range snapshot.Objects {
			if err := sets.AppendLog(set, setmgr.LogEntry{
				Timestamp: obj.Created,
				Hash:      obj.Hash,
				Path:      obj.Path,
				Model:     obj.Model,
			}); err != nil {
				return false, err
			}
		}
	}

	if len(models) == 0 {
		for model, hash := range snapshot.Refs {
			for _, obj := range snapshot.Objects {
				if obj.Model == model && obj.Hash == hash {
					if err := sets.UpsertModelRef(set, model, obj.Path, hash); err != nil {
						return false, err
					}
				}
			}
		}
	}

	return true, nil
}

func pullOne(tr transport.Transport, store *objectstore.Store, documentKey string) error {
	data, err := tr.ReceiveData(documentKey)
	if err != nil {
		return err
	}

	result, err := parquet.InverseTransform(data)
	if err != nil {
		return err
	}

	if _, err := store.Write(result.NumPy, objectstore.ObjVector, 0, 0); err != nil {
		return err
	}

	return objectstore.WriteSidecar(store.MetaPath(result.Hash), result.Sidecar)
}

func localObjectHashes(store *objectstore.Store) map[string]bool {
	out := map[string]bool{}

	entries, err := os.ReadDir(store.ObjectsDir())
	if err != nil {
		return out
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		switch {
		case strings.HasSuffix(name, ".raw"):
			out[strings.TrimSuffix(name, ".raw")] = true
		case strings.HasSuffix(name, ".meta"):
			out[strings.TrimSuffix(name, ".meta")] = true
		}
	}
	return out
}
