package objectstore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ProgramComputer/EmbeddingBridge-sub001/internal/codec"
	"github.com/ProgramComputer/EmbeddingBridge-sub001/internal/ebterr"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	root := t.TempDir()
	s := Open(filepath.Join(root, ".embr"))
	if err := s.EnsureLayout(); err != nil {
		t.Fatalf("EnsureLayout: %v", err)
	}
	return s
}

func TestWriteReadRoundtrip(t *testing.T) {
	s := newTestStore(t)
	payload := []byte{
		0x03, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x80, 0x3f,
		0x00, 0x00, 0x00, 0x40,
		0x00, 0x00, 0x40, 0x40,
	}

	hash, err := s.Write(payload, ObjVector, 0, codec.DefaultLevel)
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if want := codec.HashHex(payload); hash != want {
		t.Fatalf("hash mismatch: got %s want %s", hash, want)
	}

	got, header, err := s.Read(hash)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if string(got) != string(payload) {
		t.Fatalf("read payload mismatch: %x vs %x", got, payload)
	}
	if !header.IsCompressed() {
		t.Fatal("expected VECTOR object to be compressed")
	}
}

func TestWriteIsIdempotent(t *testing.T) {
	s := newTestStore(t)
	payload := []byte("some vector bytes")

	h1, err := s.Write(payload, ObjVector, 0, codec.DefaultLevel)
	if err != nil {
		t.Fatalf("first Write: %v", err)
	}
	h2, err := s.Write(payload, ObjVector, 0, codec.DefaultLevel)
	if err != nil {
		t.Fatalf("second Write: %v", err)
	}
	if h1 != h2 {
		t.Fatalf("hash changed across writes: %s vs %s", h1, h2)
	}

	entries, err := os.ReadDir(s.ObjectsDir())
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	count := 0
	for _, e := range entries {
		if !e.IsDir() {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("expected exactly one object file, found %d", count)
	}
}

func TestReadDetectsHashMismatch(t *testing.T) {
	s := newTestStore(t)
	payload := []byte("original payload")
	hash, err := s.Write(payload, ObjVector, 0, codec.DefaultLevel)
	if err != nil {
		t.Fatalf("Write: %v", err)
	}

	// Corrupt the stored header's hash field directly.
	raw, err := os.ReadFile(s.rawPath(hash))
	if err != nil {
		t.Fatalf("reading raw object: %v", err)
	}
	raw[HeaderSize-1] ^= 0xFF
	if err := os.WriteFile(s.rawPath(hash), raw, 0o644); err != nil {
		t.Fatalf("writing corrupted object: %v", err)
	}

	if _, _, err := s.Read(hash); !ebterr.Is(err, ebterr.KindHashMismatch) {
		t.Fatalf("expected HashMismatch, got %v", err)
	}
}

func TestResolveAmbiguousThenUnique(t *testing.T) {
	s := newTestStore(t)

	writeWithName := func(hash string) {
		header := Header{Magic: Magic, Version: CurrentVersion, Type: ObjVector}
		data := header.Encode()
		if err := os.WriteFile(s.rawPath(hash), data, 0o644); err != nil {
			t.Fatalf("seeding object %s: %v", hash, err)
		}
	}

	writeWithName("abcd123400000000000000000000000000000000000000000000000000000000"[:64])
	writeWithName("abcdef0000000000000000000000000000000000000000000000000000000000"[:64])

	if _, err := s.Resolve("abcd"); !ebterr.Is(err, ebterr.KindHashAmbiguous) {
		t.Fatalf("expected HashAmbiguous, got %v", err)
	}

	if err := os.Remove(s.rawPath("abcdef0000000000000000000000000000000000000000000000000000000000"[:64])); err != nil {
		t.Fatalf("removing disambiguating object: %v", err)
	}

	got, err := s.Resolve("abcd")
	if err != nil {
		t.Fatalf("Resolve after disambiguation: %v", err)
	}
	if got != "abcd123400000000000000000000000000000000000000000000000000000000"[:64] {
		t.Fatalf("unexpected resolved hash: %s", got)
	}
}

func TestResolveRejectsShortPrefix(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.Resolve("abc"); !ebterr.Is(err, ebterr.KindInvalidInput) {
		t.Fatalf("expected InvalidInput for 3-char prefix, got %v", err)
	}
}
