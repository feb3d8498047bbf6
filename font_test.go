package glyphrun

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/goregular"
)

func TestLoadBytes(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.LoadBytes("goregular.ttf", goregular.TTF))
	assert.Equal(t, 1, reg.Len())
	assert.Equal(t, "goregular.ttf", reg.Name(0))
	assert.Len(t, reg.Faces(), 1)
}

func TestLoadBytesGarbage(t *testing.T) {
	reg := NewRegistry()
	err := reg.LoadBytes("garbage.ttf", []byte("this is not a font"))
	assert.ErrorIs(t, err, ErrFontLoad)
	assert.Equal(t, 0, reg.Len())
}

func TestLoadMissingFile(t *testing.T) {
	reg := NewRegistry()
	err := reg.Load("definitely-not-a-real-font-name-xyz.ttf")
	assert.ErrorIs(t, err, ErrFontLoad)
}

func TestLoadFromPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "regular.ttf")
	require.NoError(t, os.WriteFile(path, goregular.TTF, 0o644))

	reg := NewRegistry()
	require.NoError(t, reg.Load(path))
	assert.Equal(t, "regular.ttf", reg.Name(0))
}

func TestLoadDirPrimaryFirst(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"aaa.ttf", "zzz.ttf"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), goregular.TTF, 0o644))
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("skip me"), 0o644))

	reg := NewRegistry()
	require.NoError(t, reg.LoadDir(dir, "zzz.ttf"))
	require.Equal(t, 2, reg.Len())
	assert.Equal(t, "zzz.ttf", reg.Name(0))
	assert.Equal(t, "aaa.ttf", reg.Name(1))
}

func TestResolveFace(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.LoadBytes("goregular.ttf", goregular.TTF))

	// covered rune resolves to the face that has it
	assert.Equal(t, reg.Faces()[0], reg.ResolveFace('A'))

	// uncovered rune falls back to the primary
	assert.Equal(t, reg.Faces()[0], reg.ResolveFace('😀'))
}

func TestResolveFaceEmptyRegistry(t *testing.T) {
	reg := NewRegistry()
	assert.Nil(t, reg.ResolveFace('A'))
}
