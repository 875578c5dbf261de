// Package store implements the content-addressed object store: a
// repository rooted at a directory, holding a .git metadata
// subdirectory whose objects/ tree persists blobs, trees, commits and
// tags under their SHA-1 digest, zlib-compressed.
//
// The read path mirrors the write path exactly, the way the teacher's
// object package mirrors MarshalBinary/UnmarshalBinary: compute the
// canonical representation, hash it, shard it, compress it.
package store

import (
	"bytes"
	"crypto/sha1"
	"fmt"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/jeerrry/gitlit/internal/fsutil"
	"github.com/jeerrry/gitlit/internal/zlibutil"
	"github.com/jeerrry/gitlit/object"
)

// MetadataDir is the name of the repository metadata subdirectory
// inside a Store's root.
const MetadataDir = ".git"

var (
	// ErrNotFound is returned by Read when no object is stored under
	// the given ID.
	ErrNotFound = errors.New("store: object not found")
	// ErrCorruptObject is returned by Read when a stored object fails
	// to decompress, or its header doesn't parse, or its declared
	// size doesn't match its body.
	ErrCorruptObject = errors.New("store: corrupt object")
)

// A Store is a content-addressed object store rooted at a repository
// directory.
type Store struct {
	Root string
}

// New returns a Store rooted at dir. It does not touch the filesystem;
// call Init to lay out a fresh repository, or use New directly against
// one that already exists.
func New(dir string) *Store {
	return &Store{Root: dir}
}

// ObjectsDir returns the path of the store's objects directory.
func (s *Store) ObjectsDir() string {
	return filepath.Join(s.Root, MetadataDir, "objects")
}

func (s *Store) objectPath(id object.ID) string {
	hex := id.String()
	return filepath.Join(s.ObjectsDir(), hex[:2], hex[2:])
}

// Read resolves id to its stored canonical representation,
// decompresses it, and parses its header. It returns the object's
// type and body; the body is a slice of a buffer the caller does not
// share with anything else, so there is no aliasing concern in
// mutating it.
func (s *Store) Read(id object.ID) (object.Type, []byte, error) {
	path := s.objectPath(id)
	if !fsutil.Exists(path) {
		return 0, nil, errors.Wrapf(ErrNotFound, "%s", id)
	}
	compressed, err := fsutil.ReadFile(path)
	if err != nil {
		return 0, nil, err
	}
	raw, err := zlibutil.Decompress(compressed)
	if err != nil {
		return 0, nil, errors.Wrapf(ErrCorruptObject, "%s: %v", id, err)
	}
	i := bytes.IndexByte(raw, 0)
	if i < 0 {
		return 0, nil, errors.Wrapf(ErrCorruptObject, "%s: missing header terminator", id)
	}
	var objType object.Type
	var size int
	if _, err := fmt.Sscanf(string(raw[:i]), "%s %d", &objType, &size); err != nil {
		return 0, nil, errors.Wrapf(ErrCorruptObject, "%s: malformed header", id)
	}
	body := raw[i+1:]
	if size != len(body) {
		return 0, nil, errors.Wrapf(ErrCorruptObject, "%s: declared size %d, got %d", id, size, len(body))
	}
	return objType, body, nil
}

// ReadObject resolves id and unmarshals the result into the object
// model in object.Interface form, for callers that want structured
// access (e.g. a tree's entries) rather than a raw body.
func (s *Store) ReadObject(id object.ID) (object.Interface, error) {
	objType, body, err := s.Read(id)
	if err != nil {
		return nil, err
	}
	obj, err := object.New(objType)
	if err != nil {
		return nil, errors.Wrapf(ErrCorruptObject, "%s: %v", id, err)
	}
	canon, err := canonicalize(objType, body)
	if err != nil {
		return nil, err
	}
	if err := obj.UnmarshalBinary(canon); err != nil {
		return nil, errors.Wrapf(ErrCorruptObject, "%s: %v", id, err)
	}
	return obj, nil
}

// Write persists an already-canonical representation ("<type> <size>\0
// <payload>") under its SHA-1 digest. If an object is already stored
// at that digest, Write is a no-op: content-addressing guarantees the
// two representations are byte-equal.
func (s *Store) Write(canonical []byte) (object.ID, error) {
	id := object.ID(sha1.Sum(canonical))
	path := s.objectPath(id)
	if fsutil.Exists(path) {
		return id, nil
	}
	if err := fsutil.MkdirAll(filepath.Dir(path)); err != nil {
		return object.ZeroID, err
	}
	compressed, err := zlibutil.Compress(canonical)
	if err != nil {
		return object.ZeroID, errors.Wrapf(err, "store: compress %s", id)
	}
	if err := fsutil.WriteFile(path, compressed, 0644); err != nil {
		return object.ZeroID, err
	}
	return id, nil
}

// WriteObject marshals obj to its canonical representation and stores
// it, returning its digest.
func (s *Store) WriteObject(obj object.Interface) (object.ID, error) {
	canon, err := object.Marshal(obj)
	if err != nil {
		return object.ZeroID, err
	}
	return s.Write(canon)
}

func canonicalize(objType object.Type, body []byte) ([]byte, error) {
	if objType.String() == "" {
		return nil, errors.Errorf("store: unrecognized object type code %d", objType)
	}
	header := []byte(fmt.Sprintf("%s %d\x00", objType, len(body)))
	return append(header, body...), nil
}
