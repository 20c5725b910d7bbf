package extractor

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectDir(t *testing.T) {
	tmp := t.TempDir()
	for _, name := range []string{"b.zip", "a.zip", "UPPER.ZIP", "notes.txt", "archive.zip.bak"} {
		require.NoError(t, os.WriteFile(filepath.Join(tmp, name), []byte("x"), 0o644))
	}
	require.NoError(t, os.MkdirAll(filepath.Join(tmp, "folder.zip"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(tmp, "sub"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(tmp, "sub", "deep.zip"), []byte("x"), 0o644))

	got, err := CollectDir(tmp)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(tmp, "UPPER.ZIP"),
		filepath.Join(tmp, "a.zip"),
		filepath.Join(tmp, "b.zip"),
	}, got)
}

func TestCollectDirEmpty(t *testing.T) {
	got, err := CollectDir(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestCollectFiles(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)

	got := CollectFiles([]string{"a.zip", "", "./sub/../b.zip", "/abs/c.zip"})
	assert.Equal(t, []string{
		filepath.Join(wd, "a.zip"),
		filepath.Join(wd, "b.zip"),
		filepath.Clean("/abs/c.zip"),
	}, got)
}

func TestCollect(t *testing.T) {
	tmp := t.TempDir()
	withZips := filepath.Join(tmp, "with")
	empty := filepath.Join(tmp, "empty")
	require.NoError(t, os.MkdirAll(withZips, 0o755))
	require.NoError(t, os.MkdirAll(empty, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(withZips, "x.zip"), []byte("x"), 0o644))

	single := filepath.Join(tmp, "single.zip")
	missing := filepath.Join(tmp, "missing.zip")

	c, err := Collect([]string{single, withZips, empty, missing})
	require.NoError(t, err)
	assert.Equal(t, []string{single, filepath.Join(withZips, "x.zip"), missing}, c.Paths)
	assert.Equal(t, []string{empty}, c.EmptyDirs)
}

func TestIsZipName(t *testing.T) {
	assert.True(t, IsZipName("a.zip"))
	assert.True(t, IsZipName("A.Zip"))
	assert.False(t, IsZipName("a.zipx"))
	assert.False(t, IsZipName("zip"))
}
