package utils

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	t.Setenv("MM_TEST_DIR", "/srv/course")

	got, err := ExpandPath("~/backup")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "backup"), got)

	got, err = ExpandPath("$MM_TEST_DIR/repo")
	require.NoError(t, err)
	assert.Equal(t, "/srv/course/repo", got)
}

func TestSafeFilename(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Лекція 3.pdf", "Лекція 3.pdf"},
		{"../../etc/passwd", "passwd"},
		{`dir\evil.txt`, "evil.txt"},
		{"..", ""},
		{".", ""},
		{"", ""},
		{"/", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, SafeFilename(tt.in))
		})
	}
}

func TestCopyFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "aa11")
	content := []byte("byte-identical content \x00\x01\x02")
	require.NoError(t, os.WriteFile(src, content, 0o600))
	mtime := time.Date(2020, 9, 1, 8, 30, 0, 0, time.UTC)
	require.NoError(t, os.Chtimes(src, mtime, mtime))

	dst := filepath.Join(dir, "out", "nested", "Лекція 3.pdf")
	n, err := CopyFile(src, dst)
	require.NoError(t, err)
	assert.Equal(t, int64(len(content)), n)

	// #nosec G304 - test file operations with t.TempDir() are safe
	got, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, content, got)

	info, err := os.Stat(dst)
	require.NoError(t, err)
	assert.True(t, info.ModTime().Equal(mtime))
}

func TestCopyFileOverwrites(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src")
	dst := filepath.Join(dir, "dst")
	require.NoError(t, os.WriteFile(src, []byte("new"), 0o600))
	require.NoError(t, os.WriteFile(dst, []byte("older and longer"), 0o600))

	_, err := CopyFile(src, dst)
	require.NoError(t, err)

	// #nosec G304 - test file operations with t.TempDir() are safe
	got, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "new", string(got))
}

func TestCopyFileMissingSource(t *testing.T) {
	dir := t.TempDir()
	_, err := CopyFile(filepath.Join(dir, "missing"), filepath.Join(dir, "dst"))
	require.Error(t, err)
	assert.NoFileExists(t, filepath.Join(dir, "dst"))
}
