package files

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiscovery_FindCSVFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.csv", "a.CSV", "notes.txt", "c.xlsx"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.csv"), 0755))

	files, err := NewDiscovery("").FindCSVFiles(dir)
	require.NoError(t, err)
	require.Len(t, files, 2)

	// Name-sorted for deterministic batch order; extension matching is
	// case-insensitive; directories are ignored even with a .csv suffix.
	assert.Equal(t, "a.CSV", files[0].Name)
	assert.Equal(t, "b.csv", files[1].Name)
	assert.Equal(t, filepath.Join(dir, "b.csv"), files[1].Path)
}

func TestDiscovery_FindCSVFiles_MissingDir(t *testing.T) {
	_, err := NewDiscovery("").FindCSVFiles(filepath.Join(t.TempDir(), "absent"))
	assert.Error(t, err)
}

func TestDiscovery_RelativeDirUsesBasePath(t *testing.T) {
	base := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(base, "input"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(base, "input", "x.csv"), []byte("x"), 0644))

	files, err := NewDiscovery(base).FindCSVFiles("input")
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "x.csv", files[0].Name)
}

func TestFileInfo_BaseName(t *testing.T) {
	f := FileInfo{Name: "orders_2026-03.csv"}
	assert.Equal(t, "orders_2026-03", f.BaseName())
}

func TestEnsureDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "nested")
	require.NoError(t, EnsureDir(path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
