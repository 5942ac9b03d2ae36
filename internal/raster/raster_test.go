package raster

import (
	"os"
	"testing"

	"github.com/airbusgeo/godal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	godal.RegisterAll()
	os.Exit(m.Run())
}

func createTif(t *testing.T, name string, dtype godal.DataType, bands ...[]float64) string {
	t.Helper()
	path := "/vsimem/" + name + ".tif"
	ds, err := godal.Create(godal.GTiff, path, len(bands), dtype, 3, 2)
	require.NoError(t, err)
	require.NoError(t, ds.SetGeoTransform([6]float64{500000, 10, 0, 6300000, 0, -10}))
	for i, b := range bands {
		require.NoError(t, ds.Bands()[i].Write(0, 0, b, 3, 2))
	}
	require.NoError(t, ds.Close())
	t.Cleanup(func() { _ = godal.VSIUnlink(path) })
	return path
}

func TestOpenMissing(t *testing.T) {
	_, err := Open("/vsimem/does-not-exist.tif")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrOpen)
	var oe *OpenError
	require.ErrorAs(t, err, &oe)
	assert.Equal(t, "/vsimem/does-not-exist.tif", oe.Path)
}

func TestDatasetStructure(t *testing.T) {
	path := createTif(t, "structure", godal.UInt16,
		[]float64{1, 2, 3, 4, 5, 6},
		[]float64{10, 20, 30, 40, 50, 60})

	ds, err := Open(path)
	require.NoError(t, err)
	defer ds.Close()

	rows, cols, bands := ds.Dimensions()
	assert.Equal(t, 2, rows)
	assert.Equal(t, 3, cols)
	assert.Equal(t, 2, bands)
	assert.Equal(t, "uint16", ds.DataType())

	ox, oy, err := ds.Origin()
	require.NoError(t, err)
	assert.Equal(t, 500000.0, ox)
	assert.Equal(t, 6300000.0, oy)

	px, py, err := ds.PixelSize()
	require.NoError(t, err)
	assert.Equal(t, 10.0, px)
	assert.Equal(t, -10.0, py)

	g, err := ds.ReadBand(1)
	require.NoError(t, err)
	assert.Equal(t, 50.0, g.At(1, 1))

	_, err = ds.ReadBand(2)
	assert.ErrorIs(t, err, ErrBandIndex)
}

func TestXYToRowCol(t *testing.T) {
	gt := [6]float64{500000, 10, 0, 6300000, 0, -10}
	row, col, err := GeoTransformRowCol(gt, 500025, 6299985)
	require.NoError(t, err)
	assert.Equal(t, 1, row)
	assert.Equal(t, 2, col)

	row, col, err = GeoTransformRowCol(gt, 500000, 6300000)
	require.NoError(t, err)
	assert.Equal(t, 0, row)
	assert.Equal(t, 0, col)

	_, _, err = GeoTransformRowCol([6]float64{0, 0, 0, 0, 0, -1}, 1, 1)
	assert.ErrorIs(t, err, ErrEmptyPixelDim)
}

func TestTypeName(t *testing.T) {
	assert.Equal(t, "uint8", TypeName("Byte"))
	assert.Equal(t, "float32", TypeName("Float32"))
	assert.Equal(t, "int16", TypeName("Int16"))
}

func TestWriteAndLoadImage(t *testing.T) {
	src := createTif(t, "template", godal.Int32, []float64{1, 2, 3, 4, 5, 6})
	tmpl, err := Open(src)
	require.NoError(t, err)
	defer tmpl.Close()

	g1, err := GridFromRows([][]float64{{7, 8, 9}, {10, 11, 12}})
	require.NoError(t, err)
	g2 := NewGrid(3, 2)
	g2.Set(1, 2, 42)

	out := "/vsimem/written.tif"
	defer godal.VSIUnlink(out)
	require.NoError(t, WriteImage(out, []*Grid{g1, g2}, WriteOptions{Template: tmpl}))

	bands, dtype, err := LoadImage(out)
	require.NoError(t, err)
	require.Len(t, bands, 2)
	assert.Equal(t, "int32", dtype)
	assert.Equal(t, g1.Data, bands[0].Data)
	assert.Equal(t, 42.0, bands[1].At(1, 2))

	ds, err := Open(out)
	require.NoError(t, err)
	defer ds.Close()
	gt, err := ds.GeoTransform()
	require.NoError(t, err)
	assert.Equal(t, [6]float64{500000, 10, 0, 6300000, 0, -10}, gt)
}

func TestWriteImageRejectsMismatchedBands(t *testing.T) {
	err := WriteImage("/vsimem/bad.tif", []*Grid{NewGrid(2, 2), NewGrid(3, 2)}, WriteOptions{})
	assert.ErrorIs(t, err, ErrGridSize)
	assert.ErrorIs(t, WriteImage("/vsimem/none.tif", nil, WriteOptions{}), ErrNoBands)
}

func TestMemorySource(t *testing.T) {
	_, err := NewMemory("uint8", NewGrid(2, 2), NewGrid(2, 3))
	assert.ErrorIs(t, err, ErrGridSize)

	m, err := NewMemory("uint8", NewGrid(4, 3))
	require.NoError(t, err)
	assert.Equal(t, 4, m.Width())
	assert.Equal(t, 3, m.Height())
	assert.Equal(t, 1, m.BandCount())
	_, err = m.ReadBand(1)
	assert.ErrorIs(t, err, ErrBandIndex)
}

func TestDatasetBounds(t *testing.T) {
	ds, err := Open(createTif(t, "bounds", godal.Byte, make([]float64, 6)))
	require.NoError(t, err)
	defer ds.Close()

	b, err := ds.Bounds()
	require.NoError(t, err)
	assert.Equal(t, [4]float64{500000, 6299980, 500030, 6300000}, b)
}
