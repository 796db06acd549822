package backup

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStorePath(t *testing.T) {
	s := NewStore("/backup")

	assert.Equal(t, filepath.Join("/backup", "files", "ab", "abcdef"), s.Path("abcdef"))
	assert.Empty(t, s.Path("a"))
	assert.Empty(t, s.Path(""))
	assert.Empty(t, s.Path("ab/../../etc"))
	assert.Empty(t, s.Path(`ab\cd`))
}

func TestStoreResolve(t *testing.T) {
	root := t.TempDir()
	s := NewStore(root)
	writeFile(t, filepath.Join(root, "files", "aa", "aa11"), "lecture")
	require.NoError(t, os.MkdirAll(filepath.Join(root, "files", "bb", "bb22"), 0o750))

	p, ok := s.Resolve("aa11")
	assert.True(t, ok)
	assert.Equal(t, filepath.Join(root, "files", "aa", "aa11"), p)

	_, ok = s.Resolve("cc33")
	assert.False(t, ok, "absent blob")

	_, ok = s.Resolve("bb22")
	assert.False(t, ok, "directory is not a blob")

	_, ok = s.Resolve("x")
	assert.False(t, ok, "short hash")
}

func TestStoreRemoveAndPrune(t *testing.T) {
	root := t.TempDir()
	s := NewStore(root)
	writeFile(t, filepath.Join(root, "files", "aa", "aa11"), "one")
	writeFile(t, filepath.Join(root, "files", "bb", "bb22"), "two")
	require.NoError(t, os.MkdirAll(filepath.Join(root, "files", "zz"), 0o750))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "files", "abc"), 0o750))

	require.NoError(t, s.Remove("aa11"))
	require.NoError(t, s.Remove("aa11"), "removing twice is fine")

	removed, err := s.PruneEmptyShards()
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	assert.NoDirExists(t, filepath.Join(root, "files", "aa"))
	assert.FileExists(t, filepath.Join(root, "files", "bb", "bb22"))
	assert.DirExists(t, filepath.Join(root, "files", "zz"), "not a hex shard")
	assert.DirExists(t, filepath.Join(root, "files", "abc"), "not a shard name")
}

func TestPruneWithoutStore(t *testing.T) {
	removed, err := NewStore(t.TempDir()).PruneEmptyShards()
	require.NoError(t, err)
	assert.Zero(t, removed)
}
