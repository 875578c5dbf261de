// Git objects are stored in packfiles with a special type of header:
// a little-endian base128-encoded number where bits 4-6 encode the
// object's type and the rest its size. The reason this is kept
// separate from the object package's own (un)marshaling is that the
// bodies of objects inside a packfile are not yet wrapped in the
// "type size\0" canonical header when they're decompressed; that
// wrapping happens only once a delta has been resolved (if any) and
// the result is handed to the store.

package packfile

import (
	"io"
	"strconv"

	"github.com/pkg/errors"

	"github.com/jeerrry/gitlit/object"
)

func readObjHeader(r io.ByteReader) (object.Type, int64, error) {
	hdr, err := readBase128LE(r)
	if err != nil {
		return 0, 0, err
	}
	objType := object.Type(hdr >> 4 & 0x7)
	size := int64((hdr >> 3 &^ 0xF) | (hdr & 0xF))
	return objType, size, nil
}

// canonicalize prepends the "type size\0" header packfile bodies lack
// to data, so the result can be handed to the object store as-is.
func canonicalize(objType object.Type, data []byte) ([]byte, error) {
	if objType.String() == "" {
		return nil, errors.Errorf("packfile: unrecognized object type code %d", objType)
	}
	header := []byte(objType.String() + " " + strconv.Itoa(len(data)) + "\x00")
	return append(header, data...), nil
}
