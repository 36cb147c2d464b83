package codec

import "errors"

var errBadHashLength = errors.New("codec: hash must be 32 bytes")
