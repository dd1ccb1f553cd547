package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStorageAt(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", ".abook")

	s, err := NewStorageAt(dir)
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	assert.Equal(t, os.FileMode(0700), info.Mode().Perm())

	assert.Equal(t, dir, s.DataDir())
	assert.Equal(t, filepath.Join(dir, "config.yaml"), s.ConfigPath())
	assert.Equal(t, filepath.Join(dir, "abook.log"), s.LogPath())
}

func TestNewStorage_UsesHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	s, err := NewStorage()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, ".abook"), s.DataDir())
}

func TestExportPath(t *testing.T) {
	s, err := NewStorageAt(t.TempDir())
	require.NoError(t, err)

	path, err := s.ExportPath("", "address_book.xlsx")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(s.DataDir(), "address_book.xlsx"), path)

	exportDir := filepath.Join(t.TempDir(), "exports")
	path, err = s.ExportPath(exportDir, "address_book.xlsx")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(exportDir, "address_book.xlsx"), path)
	assert.DirExists(t, exportDir)
}

func TestExportPath_ExpandsHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	s, err := NewStorageAt(t.TempDir())
	require.NoError(t, err)

	path, err := s.ExportPath("~/Documents", "address_book.xlsx")

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "Documents", "address_book.xlsx"), path)
}

func TestResolveImportPath(t *testing.T) {
	s, err := NewStorageAt(t.TempDir())
	require.NoError(t, err)

	dir := t.TempDir()
	file := filepath.Join(dir, "book.xlsx")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0600))

	resolved, err := s.ResolveImportPath("  " + file + "\n")
	require.NoError(t, err)
	assert.Equal(t, file, resolved)

	tests := []struct {
		name string
		path string
	}{
		{name: "empty", path: "   "},
		{name: "missing", path: filepath.Join(dir, "nope.xlsx")},
		{name: "directory", path: dir},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.ResolveImportPath(tt.path)
			assert.Error(t, err)
		})
	}
}
