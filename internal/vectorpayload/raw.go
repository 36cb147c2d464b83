package vectorpayload

import (
	"encoding/binary"
	"math"

	"github.com/ProgramComputer/EmbeddingBridge-sub001/internal/ebterr"
)

// DecodeRaw parses the "u32 dimension count, then dimension x float32"
// binary format.
func DecodeRaw(data []byte) ([]float32, error) {
	const op = "vectorpayload.DecodeRaw"
	if len(data) < 4 {
		return nil, ebterr.New(op, ebterr.KindInvalidFormat, "raw vector payload shorter than dimension header")
	}

	dims := binary.LittleEndian.Uint32(data[:4])
	body := data[4:]
	want := int(dims) * 4
	if len(body) != want {
		return nil, ebterr.New(op, ebterr.KindInvalidFormat, "raw vector payload length does not match declared dimension count")
	}

	values := make([]float32, dims)
	for i := range values {
		bits := binary.LittleEndian.Uint32(body[i*4 : i*4+4])
		values[i] = math.Float32frombits(bits)
	}
	return values, nil
}

// EncodeRaw renders values in the "u32 dimension count, then dimension x
// float32" binary format.
func EncodeRaw(values []float32) []byte {
	out := make([]byte, 4+len(values)*4)
	binary.LittleEndian.PutUint32(out[:4], uint32(len(values)))
	for i, v := range values {
		binary.LittleEndian.PutUint32(out[4+i*4:8+i*4], math.Float32bits(v))
	}
	return out
}

// Decode detects the payload format (NumPy vs raw binary) and returns the
// decoded values along with a format tag suitable for the metadata
// sidecar's file_type field ("npy" or "bin").
func Decode(data []byte) (values []float32, fileType string, err error) {
	if IsNumPy(data) {
		values, err = DecodeNumPy(data)
		return values, "npy", err
	}
	values, err = DecodeRaw(data)
	return values, "bin", err
}
