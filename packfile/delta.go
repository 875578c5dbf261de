// To save space, certain objects in Git packfiles are stored as
// deltas: differences from an earlier object in the stream. This file
// implements resolving such deltas. For details on their binary
// representation, see http://git.rsbx.net/Documents/Git_Data_Formats.txt.

package packfile

import (
	"github.com/pkg/errors"

	"github.com/jeerrry/gitlit/object"
)

// These errors can be returned during delta resolution.
var (
	// ErrCorruptDelta is returned when applying a delta object fails
	// sanity checks: an out-of-bounds copy, an instruction running
	// past the end of the delta program, or a result length that
	// doesn't match the declared target size.
	ErrCorruptDelta = errors.New("packfile: corrupt delta instruction stream")
	// ErrDeltaLength is returned if the leading source/target size
	// fields of a delta program cannot be decoded.
	ErrDeltaLength = errors.New("packfile: invalid length in delta object")
)

// refDelta is the pack object type code for a reference-delta: a
// delta whose base is named by a 20-byte object ID that precedes the
// deflated delta program in the stream. Offset-delta objects (type 6,
// whose base is named by a negative byte offset from the current
// position) are not supported by this decoder.
const refDelta object.Type = 7

// applyDelta reconstructs a target byte sequence from a base and a
// delta program. The delta program's own source-size field is not
// validated against len(base); see the DESIGN NOTES on this in the
// project root.
func applyDelta(base, delta []byte) (result []byte, err error) {
	var i, j int
	_, n := base128LE(delta[i:])
	if n <= 0 {
		return nil, ErrDeltaLength
	}
	i += n
	targetLen, n := base128LE(delta[i:])
	if n <= 0 {
		return nil, ErrDeltaLength
	}
	i += n
	result = make([]byte, targetLen)
	for i < len(delta) {
		opcode := delta[i]
		i++
		switch {
		case opcode == 0:
			// reserved; skip silently
		case opcode&0x80 == 0:
			n := int(opcode)
			if i+n > len(delta) || j+n > len(result) {
				return nil, ErrCorruptDelta
			}
			j += copy(result[j:], delta[i:i+n])
			i += n
		default:
			off, n := uvarintMask(delta[i:], opcode&0x0F)
			if n < 0 {
				return nil, ErrCorruptDelta
			}
			i += n
			size, n := uvarintMask(delta[i:], (opcode&0x70)>>4)
			if n < 0 {
				return nil, ErrCorruptDelta
			}
			i += n
			if size == 0 {
				size = 1 << 16
			}
			if off+size > uint64(len(base)) || j+int(size) > len(result) {
				return nil, ErrCorruptDelta
			}
			j += copy(result[j:], base[off:off+size])
		}
	}
	if uint64(j) != targetLen {
		return nil, ErrCorruptDelta
	}
	return result, nil
}

// uvarintMask reads "bitmask-compressed" unsigned integers, the encoding a COPY instruction's offset and size
// fields use. A bitmask-compressed integer is a little-endian integer
// with all zero bytes omitted; a separate bitmask communicates which
// bytes are present, with less significant bits corresponding to less
// significant bytes. A byte is present if and only if its bit is set
// in the mask.

// uvarintMask decodes a uint64 from buf using mask and returns that
// value and the number of bytes read (>=0). If an error occurred, the
// value is 0 and the number of bytes n is <0, meaning that buf is too
// small.
func uvarintMask(buf []byte, mask uint8) (x uint64, n int) {
	for i := uint(0); i < 8; i++ {
		if mask&(1<<i) != 0 {
			if n >= len(buf) {
				return 0, -1
			}
			x |= uint64(buf[n]) << (i * 8)
			n++
		}
	}
	return
}
