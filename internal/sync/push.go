package sync

import (
	"path"
	"strings"

	"github.com/google/uuid"

	"github.com/ProgramComputer/EmbeddingBridge-sub001/internal/ebterr"
	"github.com/ProgramComputer/EmbeddingBridge-sub001/internal/objectstore"
	"github.com/ProgramComputer/EmbeddingBridge-sub001/internal/parquet"
	"github.com/ProgramComputer/EmbeddingBridge-sub001/internal/progress"
	"github.com/ProgramComputer/EmbeddingBridge-sub001/internal/setmgr"
	"github.com/ProgramComputer/EmbeddingBridge-sub001/internal/transport"
)

// PushResult summarizes a push: per-object outcomes and whether any
// object was newly pushed.
type PushResult struct {
	SessionID  string
	Attempted  int
	Succeeded  int
	Failed     []string // "<hash>: <error>"
	AnyPushed  bool
}

// Push uploads every log entry for set as a Parquet document under
// sets/<set>/documents/<hash>.parquet, then a fresh metadata.json
// snapshot. With force, remote objects whose hash is absent from the
// local log are deleted first. Per-object failures are recorded but do
// not abort the push.
func Push(tr transport.Transport, sets *setmgr.Manager, store *objectstore.Store, set string, force bool, reporter progress.Reporter) (*PushResult, error) {
	const op = "sync.Push"

	if err := tr.Connect(); err != nil {
		return nil, err
	}

	logEntries, err := sets.ReadLog(set)
	if err != nil {
		return nil, err
	}

	result := &PushResult{SessionID: uuid.NewString()}

	if force {
		if err := pruneRemoteNotInLog(tr, set, logEntries); err != nil {
			return result, err
		}
	}

	if reporter != nil {
		reporter.Start(len(logEntries))
	}

	seen := make(map[string]bool, len(logEntries))
	for i, entry := range logEntries {
		if seen[entry.Hash] {
			continue
		}
		seen[entry.Hash] = true
		result.Attempted++

		if reporter != nil {
			reporter.Update(i+1, entry.Path)
		}

		if err := pushOne(tr, store, set, entry); err != nil {
			result.Failed = append(result.Failed, entry.Hash+": "+err.Error())
			continue
		}
		result.Succeeded++
		result.AnyPushed = true
	}

	if reporter != nil {
		reporter.Finish()
	}

	snapshot, err := buildSnapshot(sets, set, logEntries)
	if err != nil {
		return result, err
	}
	data, err := snapshot.encode()
	if err != nil {
		return result, ebterr.Wrap(op, ebterr.KindInvalidFormat, err)
	}
	if err := tr.SendData(metadataKey(set), data); err != nil {
		return result, err
	}

	return result, nil
}

func pushOne(tr transport.Transport, store *objectstore.Store, set string, entry setmgr.LogEntry) error {
	// Transform works from the on-disk header-prefixed bytes so it can
	// detect the compressed flag itself, rather than from the already
	// decoded payload Store.Read would return.
	fullRaw, err := store.ReadRaw(entry.Hash)
	if err != nil {
		return err
	}

	meta, _ := objectstore.SidecarMap(store.MetaPath(entry.Hash))
	docText := meta["document_text"]
	opts := parquet.TransformOptions{
		Source:    entry.Path,
		Model:     entry.Model,
		Timestamp: entry.Timestamp,
	}
	if docText != "" {
		opts.DocumentText = &docText
	}

	encoded, _, err := parquet.Transform(fullRaw, opts)
	if err != nil {
		return err
	}

	return tr.SendData(documentKey(set, entry.Hash), encoded)
}

func buildSnapshot(sets *setmgr.Manager, set string, logEntries []setmgr.LogEntry) (*Snapshot, error) {
	indexEntries, err := sets.ReadIndex(set)
	if err != nil {
		return nil, err
	}

	s := &Snapshot{Refs: map[string]string{}}
	for _, e := range indexEntries {
		s.Index = append(s.Index, IndexRef{Hash: e.Hash, Path: e.Path})
	}
	for _, e := range logEntries {
		s.Objects = append(s.Objects, ObjectRecord{
			Created: e.Timestamp,
			Hash:    e.Hash,
			Path:    e.Path,
			Model:   e.Model,
		})
	}

	models, err := sets.ListModels(set)
	if err != nil {
		return nil, err
	}
	for _, model := range models {
		refs, err := sets.ReadModelRef(set, model)
		if err != nil {
			continue
		}
		if len(refs) > 0 {
			s.Refs[model] = refs[len(refs)-1].Hash
		}
	}
	return s, nil
}

func pruneRemoteNotInLog(tr transport.Transport, set string, logEntries []setmgr.LogEntry) error {
	localHashes := make(map[string]bool, len(logEntries))
	for _, e := range logEntries {
		localHashes[e.Hash] = true
	}

	keys, err := tr.ListFiles(documentsPrefix(set))
	if err != nil {
		return err
	}

	var toDelete []string
	for _, key := range keys {
		hash := hashFromDocumentKey(key)
		if hash != "" && !localHashes[hash] {
			toDelete = append(toDelete, key)
		}
	}
	if len(toDelete) == 0 {
		return nil
	}
	return tr.DeleteFiles(toDelete)
}

func documentsPrefix(set string) string { return path.Join("sets", set, "documents") }
func metadataKey(set string) string     { return path.Join("sets", set, "metadata.json") }
func documentKey(set, hash string) string {
	return path.Join("sets", set, "documents", hash+".parquet")
}

func hashFromDocumentKey(key string) string {
	base := path.Base(key)
	if !strings.HasSuffix(base, ".parquet") {
		return ""
	}
	return strings.TrimSuffix(base, ".parquet")
}

