package parquet

import (
	"encoding/json"
	"testing"

	"github.com/ProgramComputer/EmbeddingBridge-sub001/internal/vectorpayload"
)

func TestTransformInverseRoundTripsNumPyVector(t *testing.T) {
	npy := vectorpayload.EncodeNumPy([]float32{0.5, -0.5})

	out, passthrough, err := Transform(npy, TransformOptions{})
	if err != nil {
		t.Fatalf("Transform: %v", err)
	}
	if passthrough {
		t.Fatal("Transform treated a NumPy payload as pass-through")
	}

	result, err := InverseTransform(out)
	if err != nil {
		t.Fatalf("InverseTransform: %v", err)
	}

	values, err := vectorpayload.DecodeNumPy(result.NumPy)
	if err != nil {
		t.Fatalf("DecodeNumPy: %v", err)
	}
	if len(values) != 2 || values[0] != 0.5 || values[1] != -0.5 {
		t.Fatalf("round-tripped values = %v, want [0.5 -0.5]", values)
	}

	want := []byte{0x00, 0x00, 0x00, 0x3f, 0x00, 0x00, 0x00, 0xbf}
	headerLen := len(result.NumPy) - len(want) - 10
	got := result.NumPy[10+headerLen:]
	if string(got) != string(want) {
		t.Fatalf("NumPy data bytes = % x, want % x", got, want)
	}
}

func TestTransformPassthroughForJSON(t *testing.T) {
	input := []byte(`{"hello":"world"}`)
	out, passthrough, err := Transform(input, TransformOptions{})
	if err != nil {
		t.Fatalf("Transform: %v", err)
	}
	if !passthrough {
		t.Fatal("expected pass-through for JSON input")
	}
	if string(out) != string(input) {
		t.Fatalf("Transform(json) = %q, want unchanged %q", out, input)
	}
}

func TestRowMetadataEncodesDimensionsAndFileType(t *testing.T) {
	m := rowMetadata{Hash: "abc123", Dimensions: 2, FileType: "npy"}
	var decoded map[string]any
	if err := json.Unmarshal([]byte(m.encode()), &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if decoded["dimensions"].(float64) != 2 {
		t.Fatalf("dimensions = %v, want 2", decoded["dimensions"])
	}
	if decoded["file_type"] != "npy" {
		t.Fatalf("file_type = %v, want npy", decoded["file_type"])
	}
}
