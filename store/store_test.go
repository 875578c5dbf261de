package store_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeerrry/gitlit/object"
	"github.com/jeerrry/gitlit/store"
)

func TestInit(t *testing.T) {
	dir := t.TempDir()
	s := store.New(dir)
	require.NoError(t, s.Init())

	head, err := os.ReadFile(filepath.Join(dir, store.MetadataDir, "HEAD"))
	require.NoError(t, err)
	assert.Equal(t, "ref: refs/heads/main\n", string(head))

	refs, err := os.ReadDir(filepath.Join(dir, store.MetadataDir, "refs"))
	require.NoError(t, err)
	assert.Empty(t, refs)

	objs, err := os.ReadDir(s.ObjectsDir())
	require.NoError(t, err)
	assert.Empty(t, objs)
}

func TestBlobRoundTrip(t *testing.T) {
	dir := t.TempDir()
	s := store.New(dir)
	require.NoError(t, s.Init())

	f := filepath.Join(dir, "f")
	require.NoError(t, os.WriteFile(f, []byte("hello world"), 0644))

	id, err := s.BlobFromFile(f)
	require.NoError(t, err)
	assert.Equal(t, "95d09f2b10159347eece71399a7e2e907ea3df4f", id.String())

	objType, body, err := s.Read(id)
	require.NoError(t, err)
	assert.Equal(t, object.TypeBlob, objType)
	assert.Equal(t, "hello world", string(body))
}

func TestWriteIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	s := store.New(dir)
	require.NoError(t, s.Init())

	blob := object.Blob("idempotent")
	id1, err := s.WriteObject(&blob)
	require.NoError(t, err)
	id2, err := s.WriteObject(&blob)
	require.NoError(t, err)
	assert.Equal(t, id1, id2)

	des, err := os.ReadDir(filepath.Join(s.ObjectsDir(), id1.String()[:2]))
	require.NoError(t, err)
	assert.Len(t, des, 1)
}

func TestEmptyDirectoryTree(t *testing.T) {
	dir := t.TempDir()
	s := store.New(dir)
	require.NoError(t, s.Init())

	id, err := s.TreeFromDir(dir)
	require.NoError(t, err)
	assert.Equal(t, "4b825dc642cb6eb9a060e54bf8d69288fbee4904", id.String())
}

func TestTreeFromDirIsOrderIndependent(t *testing.T) {
	dir := t.TempDir()
	s := store.New(dir)
	require.NoError(t, s.Init())

	require.NoError(t, os.WriteFile(filepath.Join(dir, "b"), []byte("2"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a"), []byte("1"), 0644))

	id, err := s.TreeFromDir(dir)
	require.NoError(t, err)

	dir2 := t.TempDir()
	s2 := store.New(dir2)
	require.NoError(t, s2.Init())
	require.NoError(t, os.WriteFile(filepath.Join(dir2, "a"), []byte("1"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir2, "b"), []byte("2"), 0644))

	id2, err := s2.TreeFromDir(dir2)
	require.NoError(t, err)
	assert.Equal(t, id, id2)
}

func TestMaterializeRoundTrip(t *testing.T) {
	src := t.TempDir()
	s := store.New(src)
	require.NoError(t, s.Init())
	require.NoError(t, os.MkdirAll(filepath.Join(src, "sub"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(src, "top"), []byte("top-content"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(src, "sub", "nested"), []byte("nested-content"), 0644))

	treeID, err := s.TreeFromDir(src)
	require.NoError(t, err)

	dst := t.TempDir()
	require.NoError(t, s.Materialize(treeID, dst))

	top, err := os.ReadFile(filepath.Join(dst, "top"))
	require.NoError(t, err)
	assert.Equal(t, "top-content", string(top))

	nested, err := os.ReadFile(filepath.Join(dst, "sub", "nested"))
	require.NoError(t, err)
	assert.Equal(t, "nested-content", string(nested))
}

func TestCommitTreeAtMostOneParent(t *testing.T) {
	dir := t.TempDir()
	s := store.New(dir)
	require.NoError(t, s.Init())

	treeID, err := s.TreeFromDir(dir)
	require.NoError(t, err)

	id, err := s.CommitTree(treeID, object.ZeroID, "initial commit", store.DefaultIdent)
	require.NoError(t, err)

	objType, body, err := s.Read(id)
	require.NoError(t, err)
	assert.Equal(t, object.TypeCommit, objType)
	assert.Contains(t, string(body), "tree "+treeID.String()+"\n")
	assert.NotContains(t, string(body), "parent ")
}
