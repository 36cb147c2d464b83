package objectstore

import (
	"bufio"
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"github.com/ProgramComputer/EmbeddingBridge-sub001/internal/ebterr"
)

// KV is a single metadata key/value pair, in the order it was written.
type KV struct {
	Key   string
	Value string
}

// EncodeMetaPayload renders pairs as the META object body: a
// concatenation of null-terminated key, then null-terminated value, for
// each pair. The entry count is returned separately since spec stores it
// in the object header's Flags field rather than in the payload itself.
func EncodeMetaPayload(pairs []KV) (payload []byte, count uint32) {
	var buf bytes.Buffer
	for _, kv := range pairs {
		buf.WriteString(kv.Key)
		buf.WriteByte(0)
		buf.WriteString(kv.Value)
		buf.WriteByte(0)
	}
	return buf.Bytes(), uint32(len(pairs))
}

// DecodeMetaPayload reverses EncodeMetaPayload, reading exactly count
// key/value pairs out of a null-terminated byte stream.
func DecodeMetaPayload(data []byte, count uint32) ([]KV, error) {
	const op = "objectstore.DecodeMetaPayload"
	pairs := make([]KV, 0, count)
	rest := data
	for i := uint32(0); i < count; i++ {
		key, tail, ok := cutNull(rest)
		if !ok {
			return nil, ebterr.New(op, ebterr.KindInvalidFormat, "truncated META payload (key)")
		}
		value, tail2, ok := cutNull(tail)
		if !ok {
			return nil, ebterr.New(op, ebterr.KindInvalidFormat, "truncated META payload (value)")
		}
		pairs = append(pairs, KV{Key: key, Value: value})
		rest = tail2
	}
	return pairs, nil
}

func cutNull(b []byte) (field string, rest []byte, ok bool) {
	idx := bytes.IndexByte(b, 0)
	if idx < 0 {
		return "", nil, false
	}
	return string(b[:idx]), b[idx+1:], true
}

// ReadSidecar reads a <hash>.meta key=value text file into an ordered
// slice of pairs, tolerating blank lines and lines without an '='.
func ReadSidecar(path string) ([]KV, error) {
	const op = "objectstore.ReadSidecar"
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ebterr.Wrap(op, ebterr.KindNotFound, err)
		}
		return nil, ebterr.Wrap(op, ebterr.KindFileIO, err)
	}
	defer f.Close()

	var pairs []KV
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		eq := strings.IndexByte(line, '=')
		if eq < 0 {
			continue
		}
		pairs = append(pairs, KV{Key: line[:eq], Value: line[eq+1:]})
	}
	if err := scanner.Err(); err != nil {
		return nil, ebterr.Wrap(op, ebterr.KindFileIO, err)
	}
	return pairs, nil
}

// SidecarMap is a convenience wrapper over ReadSidecar returning the last
// value seen for each key.
func SidecarMap(path string) (map[string]string, error) {
	pairs, err := ReadSidecar(path)
	if err != nil {
		return nil, err
	}
	m := make(map[string]string, len(pairs))
	for _, kv := range pairs {
		m[kv.Key] = kv.Value
	}
	return m, nil
}

// WriteSidecar atomically writes pairs as a key=value text file.
func WriteSidecar(path string, pairs []KV) error {
	const op = "objectstore.WriteSidecar"

	var buf bytes.Buffer
	for _, kv := range pairs {
		buf.WriteString(kv.Key)
		buf.WriteByte('=')
		buf.WriteString(kv.Value)
		buf.WriteByte('\n')
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return ebterr.Wrap(op, ebterr.KindFileIO, err)
	}

	tmp, err := os.CreateTemp(dir, "tmp-meta-*")
	if err != nil {
		return ebterr.Wrap(op, ebterr.KindFileIO, err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return ebterr.Wrap(op, ebterr.KindFileIO, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return ebterr.Wrap(op, ebterr.KindFileIO, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return ebterr.Wrap(op, ebterr.KindFileIO, err)
	}
	return nil
}
