package parquet

import (
	"bytes"
	"encoding/json"
	"strconv"

	goparquet "github.com/parquet-go/parquet-go"

	"github.com/ProgramComputer/EmbeddingBridge-sub001/internal/ebterr"
	"github.com/ProgramComputer/EmbeddingBridge-sub001/internal/objectstore"
	"github.com/ProgramComputer/EmbeddingBridge-sub001/internal/vectorpayload"
)

// InverseResult holds the reconstructed pieces of an inverse-transform:
// a NumPy-encoded vector payload plus the sidecar metadata pairs to
// write alongside it.
type InverseResult struct {
	Hash    string
	NumPy   []byte
	Sidecar []objectstore.KV
}

// InverseTransform reads a single-row Parquet buffer (as produced by
// Transform) and reconstructs the original vector as a NumPy .npy
// payload, along with the metadata sidecar pairs parsed from the
// metadata column.
func InverseTransform(parquetData []byte) (*InverseResult, error) {
	const op = "parquet.InverseTransform"

	reader := goparquet.NewGenericReader[row](bytes.NewReader(parquetData))
	defer reader.Close()

	rows := make([]row, 1)
	n, err := reader.Read(rows)
	if n == 0 {
		if err != nil {
			return nil, ebterr.Wrap(op, ebterr.KindInvalidFormat, err)
		}
		return nil, ebterr.New(op, ebterr.KindInvalidFormat, "parquet file has no rows")
	}
	r := rows[0]

	var meta rowMetadata
	if jsonErr := json.Unmarshal([]byte(r.Metadata), &meta); jsonErr != nil {
		return nil, ebterr.Wrap(op, ebterr.KindInvalidFormat, jsonErr)
	}

	npy := vectorpayload.EncodeNumPy(r.Values)

	sidecar := []objectstore.KV{
		{Key: "file_type", Value: "npy"},
	}
	if meta.Source != "" {
		sidecar = append(sidecar, objectstore.KV{Key: "source_file", Value: meta.Source})
	}
	if meta.Model != "" {
		sidecar = append(sidecar, objectstore.KV{Key: "model", Value: meta.Model})
	}
	if meta.Timestamp != 0 {
		sidecar = append(sidecar, objectstore.KV{Key: "timestamp", Value: strconv.FormatInt(meta.Timestamp, 10)})
	}
	sidecar = append(sidecar, objectstore.KV{Key: "dimensions", Value: strconv.Itoa(meta.Dimensions)})

	return &InverseResult{Hash: r.ID, NumPy: npy, Sidecar: sidecar}, nil
}
