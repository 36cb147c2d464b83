package codec

import (
	"bytes"
	"testing"

	"github.com/ProgramComputer/EmbeddingBridge-sub001/internal/ebterr"
)

func TestHashHexLength(t *testing.T) {
	h := HashHex([]byte("hello"))
	if len(h) != 64 {
		t.Fatalf("expected 64 hex chars, got %d: %s", len(h), h)
	}
}

func TestCompressDecompressRoundtrip(t *testing.T) {
	payload := bytes.Repeat([]byte("the quick brown fox "), 100)

	frame, err := Compress(payload, DefaultLevel)
	if err != nil {
		t.Fatalf("Compress: %v", err)
	}
	if !LooksCompressed(frame) {
		t.Fatal("compressed frame does not carry zstd magic")
	}

	out, err := Decompress(frame)
	if err != nil {
		t.Fatalf("Decompress: %v", err)
	}
	if !bytes.Equal(out, payload) {
		t.Fatal("decompressed payload does not match original")
	}
}

func TestDecompressRejectsFrameWithoutContentSize(t *testing.T) {
	// A bare magic number with a descriptor byte claiming no content size
	// and no single-segment flag must be rejected before ever reaching
	// the decoder.
	frame := []byte{0x28, 0xB5, 0x2F, 0xFD, 0x00}
	_, err := Decompress(frame)
	if err == nil {
		t.Fatal("expected InvalidFormat error")
	}
	if !ebterr.Is(err, ebterr.KindInvalidFormat) {
		t.Fatalf("expected KindInvalidFormat, got %v", err)
	}
}

func TestLooksCompressedDetectsMagicOnly(t *testing.T) {
	if LooksCompressed([]byte("plain text")) {
		t.Fatal("plain text should not look compressed")
	}
	if !LooksCompressed([]byte{0x28, 0xB5, 0x2F, 0xFD, 0x01, 0x02}) {
		t.Fatal("zstd-magic-prefixed data should look compressed")
	}
}
