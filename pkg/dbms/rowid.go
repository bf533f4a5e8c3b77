package dbms

import (
	"crypto/rand"
	"encoding/base32"
	"time"
)

// crockfordBase32 is a sortable base32 alphabet (digits before letters).
const crockfordBase32 = "0123456789abcdefghjkmnpqrstvwxyz"

var crockfordEncoding = base32.NewEncoding(crockfordBase32).WithPadding(base32.NoPadding)

const (
	timestampBytes = 4
	randomBytes    = 5
	byteMask       = 0xFF
)

// newRowID generates a process-unique opaque row identifier.
//
// The first 4 bytes are Unix seconds (big-endian) so IDs sort roughly
// by insertion time; the remaining 5 bytes are random. Encoded in
// Crockford's base32 for compact, copy-friendly IDs.
func newRowID() string {
	buf := make([]byte, timestampBytes+randomBytes)

	sec := time.Now().Unix()
	for i := timestampBytes - 1; i >= 0; i-- {
		buf[i] = byte(sec & byteMask)
		sec >>= 8
	}

	// crypto/rand.Read never returns an error on supported platforms.
	_, _ = rand.Read(buf[timestampBytes:])

	return crockfordEncoding.EncodeToString(buf)
}
