package store

import (
	"path/filepath"

	"github.com/jeerrry/gitlit/internal/fsutil"
)

// defaultHead is the exact contents of a freshly initialized
// repository's HEAD file.
const defaultHead = "ref: refs/heads/main\n"

// Init lays out a fresh repository under s.Root: the metadata
// directory, its refs/ and objects/ subdirectories, and a HEAD file
// pointing at the default branch. Init does not require s.Root itself
// to already exist.
func (s *Store) Init() error {
	root := filepath.Join(s.Root, MetadataDir)
	for _, dir := range []string{root, filepath.Join(root, "refs"), s.ObjectsDir()} {
		if err := fsutil.MkdirAll(dir); err != nil {
			return err
		}
	}
	return fsutil.WriteFile(filepath.Join(root, "HEAD"), []byte(defaultHead), 0644)
}
