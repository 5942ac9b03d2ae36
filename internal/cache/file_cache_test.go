package cache

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type output struct {
	Path  string `json:"path"`
	Width int    `json:"width"`
}

func TestFileCacheSetGet(t *testing.T) {
	fc := NewFileCache[output](filepath.Join(t.TempDir(), "raster"))
	key := fc.GenerateKey("a", 1, 2.5)

	_, ok := fc.Get(key)
	assert.False(t, ok)

	require.NoError(t, fc.Set(key, output{Path: "/tmp/out.tif", Width: 12}))
	got, ok := fc.Get(key)
	require.True(t, ok)
	assert.Equal(t, output{Path: "/tmp/out.tif", Width: 12}, got)

	require.NoError(t, fc.Delete(key))
	_, ok = fc.Get(key)
	assert.False(t, ok)
	assert.NoError(t, fc.Delete(key))
}

func TestFileCacheCorruptedEntry(t *testing.T) {
	fc := NewFileCache[output](t.TempDir())
	key := fc.GenerateKey("k")
	require.NoError(t, fc.Set(key, output{Path: "x"}))
	require.NoError(t, os.WriteFile(filepath.Join(fc.Dir(), key+".json"),
		[]byte(`{"data":{"path":"y","width":0},"checksum":"bad"}`), 0644))

	_, ok := fc.Get(key)
	assert.False(t, ok)
}

func TestFileKeyTracksModification(t *testing.T) {
	fc := NewFileCache[output](t.TempDir())
	input := filepath.Join(t.TempDir(), "in.geojson")
	require.NoError(t, os.WriteFile(input, []byte("{}"), 0644))

	k1, err := fc.FileKey([]string{input}, "code")
	require.NoError(t, err)
	k2, err := fc.FileKey([]string{input}, "code")
	require.NoError(t, err)
	assert.Equal(t, k1, k2)

	later := time.Now().Add(time.Hour)
	require.NoError(t, os.Chtimes(input, later, later))
	k3, err := fc.FileKey([]string{input}, "code")
	require.NoError(t, err)
	assert.NotEqual(t, k1, k3)

	_, err = fc.FileKey([]string{filepath.Join(t.TempDir(), "missing")})
	assert.Error(t, err)
}
