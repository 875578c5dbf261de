package store

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/jeerrry/gitlit/internal/fsutil"
	"github.com/jeerrry/gitlit/object"
)

// BlobFromFile reads path and stores its contents as a blob, returning
// the blob's digest.
func (s *Store) BlobFromFile(path string) (object.ID, error) {
	data, err := fsutil.ReadFile(path)
	if err != nil {
		return object.ZeroID, err
	}
	blob := object.Blob(data)
	return s.WriteObject(&blob)
}

// TreeFromDir builds a tree object from the contents of dir,
// recursing into subdirectories, and stores it. Entries are sorted by
// filename in byte-wise ascending order before the tree is marshaled,
// so the result depends only on dir's contents, never on the
// filesystem's iteration order. The store's own metadata directory is
// excluded, as are entries that are neither regular files nor
// directories (symlinks, devices, sockets).
func (s *Store) TreeFromDir(dir string) (object.ID, error) {
	entries, err := fsutil.ListDir(dir)
	if err != nil {
		return object.ZeroID, err
	}
	tree := make(object.Tree)
	for _, e := range entries {
		if e.Name == MetadataDir {
			continue
		}
		path := filepath.Join(dir, e.Name)
		switch {
		case e.IsDir:
			id, err := s.TreeFromDir(path)
			if err != nil {
				return object.ZeroID, err
			}
			tree[e.Name] = object.TreeInfo{Mode: object.ModeTree, Object: id}
		case e.IsRegular:
			id, err := s.BlobFromFile(path)
			if err != nil {
				return object.ZeroID, err
			}
			tree[e.Name] = object.TreeInfo{Mode: object.ModeBlob, Object: id}
		}
	}
	return s.WriteObject(&tree)
}

// Materialize walks the tree stored under id and writes it into dir,
// creating dir and any subdirectories as needed. Existing files are
// overwritten; existing directories are reused.
func (s *Store) Materialize(id object.ID, dir string) error {
	if err := fsutil.MkdirAll(dir); err != nil {
		return err
	}
	obj, err := s.ReadObject(id)
	if err != nil {
		return err
	}
	tree, ok := obj.(*object.Tree)
	if !ok {
		return errors.Errorf("store: %s is not a tree", id)
	}
	for name, info := range *tree {
		path := filepath.Join(dir, name)
		if info.Mode == object.ModeTree {
			if err := s.Materialize(info.Object, path); err != nil {
				return err
			}
			continue
		}
		blobType, body, err := s.Read(info.Object)
		if err != nil {
			return err
		}
		if blobType != object.TypeBlob {
			return errors.Errorf("store: %s: tree entry %q is not a blob", id, name)
		}
		if err := fsutil.WriteFile(path, body, os.FileMode(info.Mode&0777)); err != nil {
			return err
		}
	}
	return nil
}
