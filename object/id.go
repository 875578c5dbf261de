// Package object implements the Git object model: the four object
// types (blob, tree, commit, tag), their canonical binary encoding,
// and the SHA-1 digest that names them. See
// http://git.rsbx.net/Documents/Git_Data_Formats.txt for the on-disk
// format this package is compatible with.
package object

import (
	"crypto/sha1"
	"encoding"
	"encoding/hex"
	"errors"
	"fmt"
)

var errBadIDLen = errors.New("object: invalid ID length")

// Interface defines the functionality expected of a Git object.
//
// A Git object has a canonical binary representation, whose SHA-1
// digest is the object's name. The methods MarshalBinary and
// UnmarshalBinary encode and decode Git objects to and from these
// representations. An object additionally has a human-readable
// representation (returned by "cat-file -p"), encoded and decoded
// with MarshalText and UnmarshalText.
//
// Though it is possible for an external type to satisfy this
// interface, functions operating on it should not be expected to work
// with implementations other than the ones defined in this package.
type Interface interface {
	encoding.BinaryMarshaler
	encoding.BinaryUnmarshaler
	encoding.TextMarshaler
	encoding.TextUnmarshaler
}

// NOTE(lor): The (Un)marshalBinary methods include the Git object
// header in their in/output for type-checking purposes. This results
// in some duplicated code, but otherwise any byte slice would
// unmarshal successfully into a Blob.

// An ID is the name of a Git object: the SHA-1 digest of its
// canonical binary representation.
type ID [sha1.Size]byte

// ZeroID (20 zero bytes) designates a nonexistent object, e.g. the
// absent parent of a repository's first commit.
var ZeroID ID

// Hash computes the ID of a Git object. It returns a *TypeError
// containing obj if it is not one of the standard Git objects.
func Hash(obj Interface) (ID, error) {
	data, err := Marshal(obj)
	if err != nil {
		return ZeroID, err
	}
	return ID(sha1.Sum(data)), nil
}

// Marshal and Unmarshal (canonical binary encode/decode), New and
// TypeOf (object construction/introspection) live in type.go.

// DecodeID parses a 40-character hexadecimal string as a Git ID.
func DecodeID(s string) (id ID, err error) {
	b, err := hex.DecodeString(s)
	switch {
	case err != nil:
		return id, err
	case len(b) != len(id):
		return id, errBadIDLen
	}
	copy(id[:], b)
	return id, nil
}

// String returns the ID as a lowercase 40-digit hexadecimal string.
func (id ID) String() string {
	return hex.EncodeToString(id[:])
}

// Scan is a support routine for fmt.Scanner. The format verb is
// ignored; Scan always attempts to read 40 hexadecimal digits from
// the input.
func (id *ID) Scan(ss fmt.ScanState, verb rune) error {
	var p []byte
	if _, err := fmt.Fscanf(ss, "%40x", &p); err != nil {
		return err
	}
	if copy((*id)[:], p) != len(*id) {
		return errBadIDLen
	}
	return nil
}
