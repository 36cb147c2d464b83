// Package parquet implements the bidirectional codec between the
// internal object format and the four-column Pinecone-compatible
// Arrow/Parquet interchange schema (id, values, metadata, blob).
package parquet

import (
	"encoding/json"
)

// row is the fixed, struct-tagged Parquet schema. Column order matches
// the schema definition exactly.
type row struct {
	ID       string    `parquet:"id"`
	Values   []float32 `parquet:"values"`
	Metadata string    `parquet:"metadata"`
	Blob     string    `parquet:"blob"`
}

// rowMetadata is the JSON shape of the metadata column.
type rowMetadata struct {
	Hash       string `json:"hash"`
	Dimensions int    `json:"dimensions"`
	FileType   string `json:"file_type"`
	Source     string `json:"source,omitempty"`
	Model      string `json:"model,omitempty"`
	Timestamp  int64  `json:"timestamp,omitempty"`
}

// rowBlob is the JSON shape of the blob column: either {} or
// {"text": "..."}.
type rowBlob struct {
	Text string `json:"text,omitempty"`
}

func (m rowMetadata) encode() string {
	b, _ := json.Marshal(m)
	return string(b)
}

func (b rowBlob) encode() string {
	if b.Text == "" {
		return "{}"
	}
	out, _ := json.Marshal(b)
	return string(out)
}
