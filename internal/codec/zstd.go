package codec

import (
	"fmt"

	"github.com/klauspost/compress/zstd"

	"github.com/ProgramComputer/EmbeddingBridge-sub001/internal/ebterr"
)

// zstdMagic is the four-byte frame magic number that identifies a zstd
// frame, used to detect input that has already been compressed.
var zstdMagic = [4]byte{0x28, 0xB5, 0x2F, 0xFD}

// DefaultLevel is the compression level used for object payloads unless
// the caller overrides it (spec: default 9 for objects, up to 22 supported).
const DefaultLevel = 9

// MaxLevel is the highest compression level accepted by Compress.
const MaxLevel = 22

// LooksCompressed reports whether data begins with the zstd frame magic.
// Accidental double-compression is detected this way but is only logged
// by callers, never rejected outright.
func LooksCompressed(data []byte) bool {
	if len(data) < 4 {
		return false
	}
	return data[0] == zstdMagic[0] && data[1] == zstdMagic[1] &&
		data[2] == zstdMagic[2] && data[3] == zstdMagic[3]
}

// Compress encodes payload as a single zstd frame at the given level,
// always including the decoded content size in the frame header so that
// Decompress can validate it on the way back out.
func Compress(payload []byte, level int) ([]byte, error) {
	if level <= 0 {
		level = DefaultLevel
	}
	if level > MaxLevel {
		level = MaxLevel
	}

	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstdLevel(level)))
	if err != nil {
		return nil, ebterr.Wrap("codec.Compress", ebterr.KindCompression, err)
	}
	defer enc.Close()

	return enc.EncodeAll(payload, make([]byte, 0, len(payload))), nil
}

// Decompress inflates a single zstd frame, requiring that the frame
// header carries an explicit decoded content size (spec: frames without
// one are rejected as InvalidFormat rather than silently streamed).
func Decompress(frame []byte) ([]byte, error) {
	if !frameHasContentSize(frame) {
		return nil, ebterr.New("codec.Decompress", ebterr.KindInvalidFormat,
			"zstd frame does not declare a content size")
	}

	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, ebterr.Wrap("codec.Decompress", ebterr.KindCompression, err)
	}
	defer dec.Close()

	out, err := dec.DecodeAll(frame, nil)
	if err != nil {
		return nil, ebterr.Wrap("codec.Decompress", ebterr.KindCompression, err)
	}
	return out, nil
}

// zstdLevel maps a 1-22 integer compression level onto the small set of
// tiers the klauspost encoder understands.
func zstdLevel(level int) zstd.EncoderLevel {
	switch {
	case level <= 1:
		return zstd.SpeedFastest
	case level <= 6:
		return zstd.SpeedDefault
	case level <= 12:
		return zstd.SpeedBetterCompression
	default:
		return zstd.SpeedBestCompression
	}
}

// frameHasContentSize parses the zstd frame header descriptor (RFC 8878
// §3.1.1.1.2) to determine whether a Frame_Content_Size field is present,
// either because Single_Segment_flag is set or because the
// Frame_Content_Size_flag bits are nonzero.
func frameHasContentSize(frame []byte) bool {
	if !LooksCompressed(frame) || len(frame) < 5 {
		return false
	}
	descriptor := frame[4]
	fcsFlag := descriptor >> 6
	singleSegment := (descriptor>>5)&1 == 1
	return fcsFlag != 0 || singleSegment
}

// FrameError surfaces a descriptive InvalidFormat error for malformed
// zstd input detected before handing bytes to the decoder.
func FrameError(reason string) error {
	return ebterr.New("codec.Decompress", ebterr.KindInvalidFormat, fmt.Sprintf("invalid zstd frame: %s", reason))
}
