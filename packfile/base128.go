// The functions in this file implement the Git packfile variable-length
// number encoding used both by per-object preambles and by the leading
// source/target size fields of a delta program: the standard "MSB set
// = more bytes follow" scheme, little-endian, bits accumulating from
// least to most significant. It is exactly the encoding encoding/binary
// calls Uvarint.

package packfile

import (
	"encoding/binary"
	"io"
)

// base128LE decodes a uint64 from buf and returns that value and the
// number of bytes read (> 0). If an error occurred, the value is 0 and
// the number of bytes n is <= 0 meaning:
//
//	n == 0: buf too small
//	n  < 0: value larger than 64 bits (overflow)
//	     and -n is the number of bytes read
func base128LE(buf []byte) (uint64, int) {
	return binary.Uvarint(buf)
}

// readBase128LE reads a little-endian base128-encoded number from r.
// It returns an error if the encoded number does not fit in 64 bits.
func readBase128LE(r io.ByteReader) (uint64, error) {
	return binary.ReadUvarint(r)
}
