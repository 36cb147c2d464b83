// Package objectstore implements the write-once, content-addressed object
// files that back every embedding and metadata sidecar in a repository:
// <hash>.raw (fixed header + optionally-compressed body) and <hash>.meta
// (plain key=value text).
package objectstore

import (
	"encoding/binary"

	"github.com/ProgramComputer/EmbeddingBridge-sub001/internal/ebterr"
)

// ObjType distinguishes a vector payload from a metadata payload.
type ObjType uint32

const (
	ObjVector ObjType = 0
	ObjMeta   ObjType = 1
)

// Flag bits for VECTOR objects. For META objects the Flags field instead
// holds the sidecar's key/value entry count.
const (
	FlagNormalize  uint32 = 1 << 0
	FlagCompressed uint32 = 1 << 1
)

// Magic identifies an embr object file ("EBVM" read as a big-endian u32;
// like every header field it is stored little-endian, so the first four
// bytes on disk are "MVBE").
const Magic uint32 = 0x4542564D

// CurrentVersion is the header version this build writes and the highest
// version it accepts on read.
const CurrentVersion uint32 = 1

// HeaderSize is the fixed, little-endian, on-disk size of a Header.
const HeaderSize = 4 + 4 + 4 + 4 + 8 + codecHashSize

// codecHashSize mirrors codec.HashSize (32, the SHA-256 digest size) so
// that header.go does not import internal/codec just for the constant.
const codecHashSize = 32

// Header is the fixed struct written before every object's body.
type Header struct {
	Magic   uint32
	Version uint32
	Type    ObjType
	Flags   uint32
	Size    uint64 // uncompressed payload size
	Hash    [32]byte
}

// IsCompressed reports whether the Compressed flag bit is set.
func (h Header) IsCompressed() bool { return h.Flags&FlagCompressed != 0 }

// Encode renders h as HeaderSize little-endian bytes.
func (h Header) Encode() []byte {
	buf := make([]byte, HeaderSize)
	binary.LittleEndian.PutUint32(buf[0:4], h.Magic)
	binary.LittleEndian.PutUint32(buf[4:8], h.Version)
	binary.LittleEndian.PutUint32(buf[8:12], uint32(h.Type))
	binary.LittleEndian.PutUint32(buf[12:16], h.Flags)
	binary.LittleEndian.PutUint64(buf[16:24], h.Size)
	copy(buf[24:24+32], h.Hash[:])
	return buf
}

// DecodeHeader parses a HeaderSize-byte slice into a Header, validating
// the magic number and version.
func DecodeHeader(buf []byte) (Header, error) {
	const op = "objectstore.DecodeHeader"
	var h Header
	if len(buf) < HeaderSize {
		return h, ebterr.New(op, ebterr.KindInvalidFormat, "truncated object header")
	}

	h.Magic = binary.LittleEndian.Uint32(buf[0:4])
	h.Version = binary.LittleEndian.Uint32(buf[4:8])
	h.Type = ObjType(binary.LittleEndian.Uint32(buf[8:12]))
	h.Flags = binary.LittleEndian.Uint32(buf[12:16])
	h.Size = binary.LittleEndian.Uint64(buf[16:24])
	copy(h.Hash[:], buf[24:24+32])

	if h.Magic != Magic {
		return h, ebterr.New(op, ebterr.KindInvalidFormat, "bad object magic")
	}
	if h.Version > CurrentVersion {
		return h, ebterr.New(op, ebterr.KindInvalidFormat, "object version newer than this reader supports")
	}
	return h, nil
}
