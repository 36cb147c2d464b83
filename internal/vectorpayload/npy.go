// Package vectorpayload decodes and encodes the two on-disk vector
// payload formats accepted by the object store: NumPy .npy v1.0 and the
// raw "dimension count + float32 values" binary format.
package vectorpayload

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"

	"github.com/ProgramComputer/EmbeddingBridge-sub001/internal/ebterr"
)

// npyMagic is the eight-byte prefix of every NumPy v1.0 array file:
// \x93NUMPY followed by major/minor version bytes 1, 0.
var npyMagic = []byte{0x93, 'N', 'U', 'M', 'P', 'Y', 0x01, 0x00}

// IsNumPy reports whether data begins with the NumPy v1.0 magic.
func IsNumPy(data []byte) bool {
	return len(data) >= len(npyMagic) && bytes.Equal(data[:len(npyMagic)], npyMagic)
}

// DecodeNumPy parses a NumPy v1.0 float32 array and returns its values.
func DecodeNumPy(data []byte) ([]float32, error) {
	const op = "vectorpayload.DecodeNumPy"
	if !IsNumPy(data) {
		return nil, ebterr.New(op, ebterr.KindInvalidFormat, "missing NumPy magic")
	}
	if len(data) < 10 {
		return nil, ebterr.New(op, ebterr.KindInvalidFormat, "truncated NumPy header")
	}

	headerLen := int(binary.LittleEndian.Uint16(data[8:10]))
	headerStart := 10
	headerEnd := headerStart + headerLen
	if headerEnd > len(data) {
		return nil, ebterr.New(op, ebterr.KindInvalidFormat, "NumPy header length exceeds payload")
	}

	body := data[headerEnd:]
	if len(body)%4 != 0 {
		return nil, ebterr.New(op, ebterr.KindInvalidFormat, "NumPy body is not a whole number of float32 values")
	}

	n := len(body) / 4
	values := make([]float32, n)
	for i := 0; i < n; i++ {
		bits := binary.LittleEndian.Uint32(body[i*4 : i*4+4])
		values[i] = math.Float32frombits(bits)
	}
	return values, nil
}

// EncodeNumPy renders values as a NumPy v1.0 float32 array, padding the
// ASCII header with spaces and a trailing newline so that
// (10 + header_len) % 64 == 0, per spec.
func EncodeNumPy(values []float32) []byte {
	dict := fmt.Sprintf("{'descr': '<f4', 'fortran_order': False, 'shape': (%d,), }", len(values))

	// Total preamble is 10 (magic+version+header-length field) + header.
	// Pad so the whole preamble is a multiple of 64, ending in '\n'.
	unpadded := len(dict) + 1 // +1 for the trailing newline
	total := 10 + unpadded
	pad := 0
	if rem := total % 64; rem != 0 {
		pad = 64 - rem
	}

	padded := make([]byte, len(dict)+pad+1)
	copy(padded, dict)
	for i := len(dict); i < len(padded)-1; i++ {
		padded[i] = ' '
	}
	padded[len(padded)-1] = '\n'

	headerLen := len(padded)

	out := make([]byte, 0, 10+headerLen+len(values)*4)
	out = append(out, npyMagic...)
	lenBuf := make([]byte, 2)
	binary.LittleEndian.PutUint16(lenBuf, uint16(headerLen))
	out = append(out, lenBuf...)
	out = append(out, padded...)

	valBuf := make([]byte, 4)
	for _, v := range values {
		binary.LittleEndian.PutUint32(valBuf, math.Float32bits(v))
		out = append(out, valBuf...)
	}
	return out
}
