package util

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDirectoryMaskFiles(t *testing.T) {
	dir := t.TempDir()
	write := func(name string, data []byte) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), data, 0o644))
	}
	write("sample_002.png", []byte("second"))
	write("sample_000.png", []byte("first"))
	write("sample_010.jpg", []byte("third"))
	write("notes.txt", []byte("ignored extension"))
	write("overview.png", []byte("ignored name"))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sample_001.png"), 0o755))

	masks, err := LoadDirectoryMaskFiles(dir)
	require.NoError(t, err)
	require.Len(t, masks, 3)

	assert.Equal(t, 0, masks[0].Index)
	assert.Equal(t, 2, masks[1].Index)
	assert.Equal(t, 10, masks[2].Index)
	assert.Equal(t, []byte("first"), masks[0].Data)
	assert.Equal(t, []byte("second"), masks[1].Data)
	assert.Equal(t, filepath.Join(dir, "sample_010.jpg"), masks[2].Path)
}

func TestLoadDirectoryMaskFiles_MissingDirectory(t *testing.T) {
	_, err := LoadDirectoryMaskFiles(filepath.Join(t.TempDir(), "absent"))
	assert.Error(t, err)
}

func TestLoadDirectoryMaskFiles_EmptyDirectory(t *testing.T) {
	masks, err := LoadDirectoryMaskFiles(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, masks)
}
