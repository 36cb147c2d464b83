package setmgr

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/ProgramComputer/EmbeddingBridge-sub001/internal/ebterr"
)

// Strategy names the merge algorithm applied when both source and target
// already reference a given source path with different hashes.
type Strategy string

const (
	StrategyUnion    Strategy = "union"
	StrategyMean     Strategy = "mean"
	StrategyMax      Strategy = "max"
	StrategyWeighted Strategy = "weighted"
)

// ReadRef reads the single hash line stored at refs/<source> for a set,
// or "" if no such ref file exists. Source paths containing "/" nest
// naturally under refs/.
func (m *Manager) ReadRef(set, source string) (string, error) {
	const op = "setmgr.ReadRef"
	path := filepath.Join(m.refsDir(set), filepath.FromSlash(source))
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", ebterr.Wrap(op, ebterr.KindFileIO, err)
	}
	return trimNewline(string(data)), nil
}

// WriteRef atomically writes the single hash line at refs/<source>.
func (m *Manager) WriteRef(set, source, hash string) error {
	path := filepath.Join(m.refsDir(set), filepath.FromSlash(source))
	return writeFileAtomic(path, []byte(hash+"\n"))
}

// ListRefs enumerates every source -> hash ref a set owns, walking
// refs/ recursively since multi-segment source paths nest as
// directories. refs/models/ holds model refs, not source refs, and is
// skipped. Keys are slash-separated paths relative to refs/, so an
// absolute source path is listed without its leading "/".
func (m *Manager) ListRefs(set string) (map[string]string, error) {
	const op = "setmgr.ListRefs"
	root := m.refsDir(set)
	out := make(map[string]string)

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) && path == root {
				return filepath.SkipDir
			}
			return err
		}
		if d.IsDir() {
			if path == filepath.Join(root, "models") {
				return filepath.SkipDir
			}
			return nil
		}
		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return nil
		}
		data, readErr := os.ReadFile(path)
		if readErr != nil {
			return nil
		}
		out[filepath.ToSlash(rel)] = trimNewline(string(data))
		return nil
	})
	if err != nil && !os.IsNotExist(err) {
		return nil, ebterr.Wrap(op, ebterr.KindFileIO, err)
	}
	return out, nil
}

// Merge copies refs from source into target: a source path absent from
// target is copied as-is; a source path present in both with a
// different hash is resolved by strategy. Only StrategyUnion (keep
// target's hash) is implemented; the others are declared in the CLI
// surface but return Unimplemented until a metadata weight schema
// exists.
func (m *Manager) Merge(source, target string, strategy Strategy) (copied int, err error) {
	const op = "setmgr.Merge"
	if !m.Exists(source) {
		return 0, ebterr.New(op, ebterr.KindNotFound, "no such set: "+source)
	}
	if !m.Exists(target) {
		return 0, ebterr.New(op, ebterr.KindNotFound, "no such set: "+target)
	}

	srcRefs, err := m.ListRefs(source)
	if err != nil {
		return 0, err
	}
	tgtRefs, err := m.ListRefs(target)
	if err != nil {
		return 0, err
	}

	for path, hash := range srcRefs {
		existing, ok := tgtRefs[path]
		if !ok {
			if err := m.WriteRef(target, path, hash); err != nil {
				return copied, err
			}
			copied++
			continue
		}
		if existing == hash {
			continue
		}
		switch strategy {
		case StrategyUnion, "":
			// keep target's hash; no write needed.
		case StrategyMean, StrategyMax, StrategyWeighted:
			return copied, ebterr.New(op, ebterr.KindUnimplemented,
				"merge strategy "+string(strategy)+" is declared but not implemented")
		default:
			return copied, ebterr.New(op, ebterr.KindInvalidInput, "unknown merge strategy: "+string(strategy))
		}
	}
	return copied, nil
}
