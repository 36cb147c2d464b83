package objectstore

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ProgramComputer/EmbeddingBridge-sub001/internal/codec"
	"github.com/ProgramComputer/EmbeddingBridge-sub001/internal/ebterr"
)

// Store is the content-addressed object store rooted at <root>/.embr/objects.
type Store struct {
	dir     string // <root>/.embr/objects
	tempDir string // <root>/.embr/objects/temp
}

// Open returns a Store rooted under the given .embr directory. It does not
// create any directories; callers that are initializing a repository
// should call EnsureLayout first.
func Open(embrDir string) *Store {
	dir := filepath.Join(embrDir, "objects")
	return &Store{dir: dir, tempDir: filepath.Join(dir, "temp")}
}

// EnsureLayout creates objects/ and objects/temp/ if they do not exist.
func (s *Store) EnsureLayout() error {
	if err := os.MkdirAll(s.tempDir, 0o755); err != nil {
		return ebterr.Wrap("objectstore.EnsureLayout", ebterr.KindFileIO, err)
	}
	return nil
}

func (s *Store) rawPath(hash string) string  { return filepath.Join(s.dir, hash+".raw") }
func (s *Store) metaPath(hash string) string { return filepath.Join(s.dir, hash+".meta") }

// Write stores payload under its content hash, compressing VECTOR bodies
// with zstd at level (DefaultLevel if <= 0). Write is idempotent: if the
// object already exists on disk it is left untouched and its hash is
// returned without error.
func (s *Store) Write(payload []byte, objType ObjType, flags uint32, level int) (string, error) {
	const op = "objectstore.Write"

	hash := codec.HashHex(payload)
	rawPath := s.rawPath(hash)
	if _, err := os.Stat(rawPath); err == nil {
		return hash, nil
	} else if !os.IsNotExist(err) {
		return "", ebterr.Wrap(op, ebterr.KindFileIO, err)
	}

	body := payload
	if objType == ObjVector {
		compressed, err := codec.Compress(payload, level)
		if err != nil {
			return "", err
		}
		body = compressed
		flags |= FlagCompressed
	}

	var hashBytes [32]byte
	rawHashBytes, err := codec.HexToBytes(hash)
	if err != nil {
		return "", ebterr.Wrap(op, ebterr.KindInvalidInput, err)
	}
	hashBytes = rawHashBytes

	header := Header{
		Magic:   Magic,
		Version: CurrentVersion,
		Type:    objType,
		Flags:   flags,
		Size:    uint64(len(payload)),
		Hash:    hashBytes,
	}

	if err := s.EnsureLayout(); err != nil {
		return "", err
	}

	tmp, err := os.CreateTemp(s.tempDir, "tmp-"+hash+"-*")
	if err != nil {
		return "", ebterr.Wrap(op, ebterr.KindFileIO, err)
	}
	tmpPath := tmp.Name()

	writeErr := func() error {
		if _, err := tmp.Write(header.Encode()); err != nil {
			return err
		}
		if _, err := tmp.Write(body); err != nil {
			return err
		}
		return tmp.Close()
	}()
	if writeErr != nil {
		os.Remove(tmpPath)
		return "", ebterr.Wrap(op, ebterr.KindFileIO, writeErr)
	}

	if err := os.Rename(tmpPath, rawPath); err != nil {
		os.Remove(tmpPath)
		return "", ebterr.Wrap(op, ebterr.KindFileIO, err)
	}

	return hash, nil
}

// Read opens hash's object file, validates its header, decompresses the
// body if needed, and — for VECTOR objects — verifies the decoded payload
// against the header's recorded hash.
func (s *Store) Read(hash string) ([]byte, Header, error) {
	const op = "objectstore.Read"

	data, err := os.ReadFile(s.rawPath(hash))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, Header{}, ebterr.Wrap(op, ebterr.KindNotFound, err)
		}
		return nil, Header{}, ebterr.Wrap(op, ebterr.KindFileIO, err)
	}

	header, err := DecodeHeader(data)
	if err != nil {
		return nil, Header{}, err
	}

	body := data[HeaderSize:]
	payload := body
	if header.IsCompressed() {
		payload, err = codec.Decompress(body)
		if err != nil {
			return nil, Header{}, err
		}
	}
	if uint64(len(payload)) != header.Size {
		return nil, Header{}, ebterr.New(op, ebterr.KindInvalidFormat, "decompressed length does not match header size")
	}

	if header.Type == ObjVector {
		sum := codec.Hash(payload)
		if sum != header.Hash {
			return nil, Header{}, ebterr.New(op, ebterr.KindHashMismatch, "object payload does not match header hash")
		}
	}

	return payload, header, nil
}

// ReadRaw returns an object's on-disk bytes (header followed by body,
// still compressed if the Compressed flag is set) without decoding,
// for callers like the Parquet transformer that want to detect the
// header and compression flag themselves.
func (s *Store) ReadRaw(hash string) ([]byte, error) {
	const op = "objectstore.ReadRaw"
	data, err := os.ReadFile(s.rawPath(hash))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ebterr.Wrap(op, ebterr.KindNotFound, err)
		}
		return nil, ebterr.Wrap(op, ebterr.KindFileIO, err)
	}
	return data, nil
}

// Exists reports whether hash's .raw file is present.
func (s *Store) Exists(hash string) bool {
	_, err := os.Stat(s.rawPath(hash))
	return err == nil
}

// Resolve expands a partial hash (>= 4 hex characters) to the single
// matching full hash, or returns NotFound / HashAmbiguous.
func (s *Store) Resolve(partial string) (string, error) {
	const op = "objectstore.Resolve"

	if len(partial) < 4 {
		return "", ebterr.New(op, ebterr.KindInvalidInput, "partial hash must be at least 4 characters")
	}

	if _, err := os.Stat(s.rawPath(partial)); err == nil {
		return partial, nil
	}

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return "", ebterr.New(op, ebterr.KindNotFound, "no objects stored")
		}
		return "", ebterr.Wrap(op, ebterr.KindFileIO, err)
	}

	var matches []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if !strings.HasSuffix(name, ".raw") {
			continue
		}
		stem := strings.TrimSuffix(name, ".raw")
		if strings.HasPrefix(stem, partial) {
			matches = append(matches, stem)
		}
	}

	switch len(matches) {
	case 0:
		return "", ebterr.New(op, ebterr.KindNotFound, "no object matches partial hash "+partial)
	case 1:
		return matches[0], nil
	default:
		sort.Strings(matches)
		return "", ebterr.New(op, ebterr.KindHashAmbiguous, "partial hash "+partial+" matches multiple objects")
	}
}

// MetaPath returns the sidecar path for hash, for callers that read or
// write the plain-text metadata file directly.
func (s *Store) MetaPath(hash string) string { return s.metaPath(hash) }

// ObjectsDir returns the root objects directory.
func (s *Store) ObjectsDir() string { return s.dir }

// TempDir returns the staging directory used for atomic writes.
func (s *Store) TempDir() string { return s.tempDir }
