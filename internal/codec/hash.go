package codec

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashSize is the length in bytes of a raw object hash.
const HashSize = sha256.Size

// Hash computes the SHA-256 digest of payload, the content address used
// throughout the object store.
func Hash(payload []byte) [HashSize]byte {
	return sha256.Sum256(payload)
}

// HashHex renders a digest as 64 lowercase hex characters.
func HashHex(payload []byte) string {
	sum := Hash(payload)
	return hex.EncodeToString(sum[:])
}

// HexToBytes parses a full 64-character hex hash into its raw form.
func HexToBytes(hexHash string) ([HashSize]byte, error) {
	var out [HashSize]byte
	b, err := hex.DecodeString(hexHash)
	if err != nil {
		return out, err
	}
	if len(b) != HashSize {
		return out, errBadHashLength
	}
	copy(out[:], b)
	return out, nil
}
