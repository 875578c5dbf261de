// Package packfile decodes Git v2 packfiles: a 12-byte header, N
// objects each carrying their own variable-length type-and-size
// preamble and a deflated body, and a trailing checksum this decoder
// does not verify. Reference-delta objects are resolved against an
// object store as they're encountered; offset-delta objects, thin
// packs (a delta whose base isn't itself in the pack) and pack
// checksum verification are out of scope. See
// http://git.rsbx.net/Documents/Git_Data_Formats.txt for the format.
package packfile

import (
	"encoding/binary"

	"github.com/pkg/errors"

	"github.com/jeerrry/gitlit/internal/zlibutil"
	"github.com/jeerrry/gitlit/object"
	"github.com/jeerrry/gitlit/store"
)

var (
	// ErrHeader is returned when decoding pack data that does not
	// begin with the PACK magic.
	ErrHeader = errors.New("packfile: invalid header")
	// ErrVersion is returned when decoding pack data with a version
	// number other than 2.
	ErrVersion = errors.New("packfile: unsupported version")
	// ErrTruncatedHeader is returned when an object's preamble (or,
	// for a reference-delta, its base ID) runs past the end of the
	// input.
	ErrTruncatedHeader = errors.New("packfile: truncated object header")
	// ErrMissingBase is returned when a reference-delta names a base
	// object that is not yet in the store. This decoder does not
	// support thin packs: every delta's base must appear earlier in
	// the same pack stream.
	ErrMissingBase = errors.New("packfile: missing base object for delta")
	// ErrObjectType is returned when a pack object's type code is
	// neither a recognized non-delta type nor a reference-delta.
	ErrObjectType = errors.New("packfile: unsupported object type code")
)

var signature = [4]byte{'P', 'A', 'C', 'K'}

// Decode reads every object out of a complete pack stream held in
// data and writes it into s, in stream order. Any per-object failure
// aborts the whole pack; objects already written before the failure
// remain in the store, which is harmless since they are
// content-addressed.
func Decode(s *store.Store, data []byte) error {
	if len(data) < 12 {
		return ErrHeader
	}
	var sig [4]byte
	copy(sig[:], data[:4])
	if sig != signature {
		return ErrHeader
	}
	version := binary.BigEndian.Uint32(data[4:8])
	if version != 2 {
		return ErrVersion
	}
	n := binary.BigEndian.Uint32(data[8:12])
	pos := 12
	for i := uint32(0); i < n; i++ {
		consumed, err := decodeObject(s, data[pos:])
		if err != nil {
			return errors.Wrapf(err, "packfile: object %d at offset %d", i, pos)
		}
		pos += consumed
	}
	return nil
}

// decodeObject decodes the single pack object at the head of data and
// writes its resolved form to s, returning the number of input bytes
// the object occupied.
func decodeObject(s *store.Store, data []byte) (consumed int, err error) {
	br := newByteReader(data)
	objType, size, err := readObjHeader(br)
	if err != nil {
		return 0, ErrTruncatedHeader
	}

	var baseID object.ID
	isDelta := objType == refDelta
	if isDelta {
		if br.remaining() < len(baseID) {
			return 0, ErrTruncatedHeader
		}
		br.read(baseID[:])
	}
	hdrLen := br.pos

	body, deflated, err := zlibutil.Inflate(data[hdrLen:], size)
	if err != nil {
		return 0, errors.Wrap(err, "packfile: inflate")
	}
	consumed = hdrLen + int(deflated)

	if isDelta {
		baseType, baseBody, err := s.Read(baseID)
		if err != nil {
			return 0, errors.Wrapf(ErrMissingBase, "%s", baseID)
		}
		body, err = applyDelta(baseBody, body)
		if err != nil {
			return 0, err
		}
		objType = baseType
	} else if objType < object.TypeCommit || objType > object.TypeTag {
		return 0, errors.Wrapf(ErrObjectType, "%d", objType)
	}

	canon, err := canonicalize(objType, body)
	if err != nil {
		return 0, err
	}
	if _, err := s.Write(canon); err != nil {
		return 0, err
	}
	return consumed, nil
}
