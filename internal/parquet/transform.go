package parquet

import (
	"bytes"
	"encoding/hex"

	goparquet "github.com/parquet-go/parquet-go"
	zstdcodec "github.com/parquet-go/parquet-go/compress/zstd"

	"github.com/ProgramComputer/EmbeddingBridge-sub001/internal/codec"
	"github.com/ProgramComputer/EmbeddingBridge-sub001/internal/ebterr"
	"github.com/ProgramComputer/EmbeddingBridge-sub001/internal/objectstore"
	"github.com/ProgramComputer/EmbeddingBridge-sub001/internal/vectorpayload"
)

// TransformOptions carries the per-call inputs that the original
// implementation threaded through a thread-local document-text pointer;
// here it is an explicit argument, never package-level state.
type TransformOptions struct {
	DocumentText *string
	Source       string
	Model        string
	Timestamp    int64
}

// Transform converts one object's on-disk bytes (header-prefixed or
// bare payload) into a single-row Parquet file. If the payload is
// plainly JSON or text (leading '{' or '['), it is returned unchanged
// as a pass-through rather than encoded as Parquet.
func Transform(raw []byte, opts TransformOptions) (out []byte, passthrough bool, err error) {
	const op = "parquet.Transform"

	payload, hash, err := unwrapObject(raw)
	if err != nil {
		return nil, false, err
	}

	if looksLikeJSON(payload) {
		return payload, true, nil
	}

	values, fileType, err := vectorpayload.Decode(payload)
	if err != nil {
		return nil, false, err
	}

	meta := rowMetadata{
		Hash:       hash,
		Dimensions: len(values),
		FileType:   fileType,
		Source:     opts.Source,
		Model:      opts.Model,
		Timestamp:  opts.Timestamp,
	}
	var blob rowBlob
	if opts.DocumentText != nil {
		blob.Text = *opts.DocumentText
	}

	r := row{
		ID:       hash,
		Values:   values,
		Metadata: meta.encode(),
		Blob:     blob.encode(),
	}

	var buf bytes.Buffer
	w := goparquet.NewGenericWriter[row](&buf, goparquet.Compression(&zstdcodec.Codec{}))
	if _, err := w.Write([]row{r}); err != nil {
		return nil, false, ebterr.Wrap(op, ebterr.KindInvalidFormat, err)
	}
	if err := w.Close(); err != nil {
		return nil, false, ebterr.Wrap(op, ebterr.KindInvalidFormat, err)
	}
	return buf.Bytes(), false, nil
}

// unwrapObject strips an object header if present, decompressing the
// body when the Compressed flag is set, and returns the decoded payload
// plus the hex hash to use for the Parquet id column (the header's
// recorded hash when present, else the payload's own content hash).
func unwrapObject(raw []byte) (payload []byte, hash string, err error) {
	if len(raw) >= objectstore.HeaderSize {
		if header, decErr := objectstore.DecodeHeader(raw[:objectstore.HeaderSize]); decErr == nil {
			body := raw[objectstore.HeaderSize:]
			if header.IsCompressed() {
				body, err = codec.Decompress(body)
				if err != nil {
					return nil, "", err
				}
			}
			return body, hex.EncodeToString(header.Hash[:]), nil
		}
	}
	return raw, codec.HashHex(raw), nil
}

func looksLikeJSON(data []byte) bool {
	for _, b := range data {
		switch b {
		case ' ', '\t', '\n', '\r':
			continue
		case '{', '[':
			return true
		default:
			return false
		}
	}
	return false
}
