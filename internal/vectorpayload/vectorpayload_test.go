package vectorpayload

import (
	"bytes"
	"testing"
)

func TestEncodeRawMatchesScenario(t *testing.T) {
	// spec.md §8 scenario 2: [1.0, 2.0, 3.0] -> 03 00 00 00 then the three
	// little-endian float32 values.
	want := []byte{
		0x03, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x80, 0x3f,
		0x00, 0x00, 0x00, 0x40,
		0x00, 0x00, 0x40, 0x40,
	}
	got := EncodeRaw([]float32{1.0, 2.0, 3.0})
	if !bytes.Equal(got, want) {
		t.Fatalf("EncodeRaw mismatch:\n got  % x\n want % x", got, want)
	}

	values, err := DecodeRaw(got)
	if err != nil {
		t.Fatalf("DecodeRaw: %v", err)
	}
	if len(values) != 3 || values[0] != 1.0 || values[1] != 2.0 || values[2] != 3.0 {
		t.Fatalf("DecodeRaw roundtrip mismatch: %v", values)
	}
}

func TestDecodeRawRejectsLengthMismatch(t *testing.T) {
	bad := []byte{0x02, 0x00, 0x00, 0x00, 0x00, 0x00, 0x80, 0x3f} // says 2 dims, only 1 float present
	if _, err := DecodeRaw(bad); err == nil {
		t.Fatal("expected error for truncated raw payload")
	}
}

func TestEncodeNumPyRoundtrip(t *testing.T) {
	values := []float32{0.5, -0.5}
	encoded := EncodeNumPy(values)

	if !IsNumPy(encoded) {
		t.Fatal("encoded payload missing NumPy magic")
	}

	total := 10 + int(encoded[8]) + int(encoded[9])<<8
	if total%64 != 0 {
		t.Fatalf("preamble length %d is not a multiple of 64", total)
	}

	decoded, err := DecodeNumPy(encoded)
	if err != nil {
		t.Fatalf("DecodeNumPy: %v", err)
	}
	if len(decoded) != 2 || decoded[0] != 0.5 || decoded[1] != -0.5 {
		t.Fatalf("decoded values mismatch: %v", decoded)
	}

	// spec.md §8 scenario 3: the raw data bytes of the npy payload for
	// [0.5, -0.5] are 00 00 00 3f 00 00 00 bf.
	wantData := []byte{0x00, 0x00, 0x00, 0x3f, 0x00, 0x00, 0x00, 0xbf}
	gotData := encoded[len(encoded)-8:]
	if !bytes.Equal(gotData, wantData) {
		t.Fatalf("npy data bytes mismatch:\n got  % x\n want % x", gotData, wantData)
	}
}

func TestDecodeDetectsFormat(t *testing.T) {
	raw := EncodeRaw([]float32{1, 2})
	if _, ft, err := Decode(raw); err != nil || ft != "bin" {
		t.Fatalf("Decode(raw) = %q, %v", ft, err)
	}

	npy := EncodeNumPy([]float32{1, 2})
	if _, ft, err := Decode(npy); err != nil || ft != "npy" {
		t.Fatalf("Decode(npy) = %q, %v", ft, err)
	}
}
