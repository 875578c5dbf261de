// Package fsutil provides the filesystem primitives the rest of the
// module is built on: reading and writing whole files, testing for a
// directory, and listing one.  Writes go through renameio so that an
// object file is never observed half-written.
package fsutil

import (
	"os"
	"sort"

	"github.com/google/renameio"
	"github.com/pkg/errors"
)

// DirMode is the permission bits used for every directory this
// package creates.
const DirMode = 0755

// ReadFile reads an entire file into memory.
func ReadFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", path)
	}
	return data, nil
}

// WriteFile writes data to path, replacing any existing content.
// The write lands atomically: readers never observe a partial file.
func WriteFile(path string, data []byte, perm os.FileMode) error {
	t, err := renameio.TempFile("", path)
	if err != nil {
		return errors.Wrapf(err, "create temp file for %s", path)
	}
	defer t.Cleanup()
	if err := t.Chmod(perm); err != nil {
		return errors.Wrapf(err, "chmod %s", path)
	}
	if _, err := t.Write(data); err != nil {
		return errors.Wrapf(err, "write %s", path)
	}
	if err := t.CloseAtomicallyReplace(); err != nil {
		return errors.Wrapf(err, "replace %s", path)
	}
	return nil
}

// MkdirAll creates path and any missing parents with DirMode.
func MkdirAll(path string) error {
	if err := os.MkdirAll(path, DirMode); err != nil {
		return errors.Wrapf(err, "mkdir %s", path)
	}
	return nil
}

// Exists reports whether path exists, regardless of type.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// DirExists reports whether path exists and is a directory.
func DirExists(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && fi.IsDir()
}

// An Entry is one name in a directory listing, tagged with its type.
type Entry struct {
	Name      string
	IsDir     bool
	IsRegular bool
}

// ListDir lists the entries of a directory in byte-wise ascending
// order by name. Callers that need Git's own tree-sort order (which
// treats directories as if their name had a trailing slash) must sort
// again themselves; ListDir only guarantees a deterministic iteration
// order, not Git's.
func ListDir(path string) ([]Entry, error) {
	des, err := os.ReadDir(path)
	if err != nil {
		return nil, errors.Wrapf(err, "list %s", path)
	}
	entries := make([]Entry, len(des))
	for i, de := range des {
		entries[i] = Entry{
			Name:      de.Name(),
			IsDir:     de.IsDir(),
			IsRegular: de.Type().IsRegular(),
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name < entries[j].Name
	})
	return entries, nil
}
