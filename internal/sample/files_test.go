package sample

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/airbusgeo/godal"
	"github.com/forest-guardian/landcover-samples/internal/raster"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	godal.RegisterAll()
	os.Exit(m.Run())
}

var testTransform = [6]float64{500000, 10, 0, 6300000, 0, -10}

func writeTif(t *testing.T, name string, width, height int, dtype godal.DataType, bands ...[]float64) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name+".tif")
	ds, err := godal.Create(godal.GTiff, path, len(bands), dtype, width, height)
	require.NoError(t, err)
	require.NoError(t, ds.SetGeoTransform(testTransform))
	for i, b := range bands {
		require.NoError(t, ds.Bands()[i].Write(0, 0, b, width, height))
	}
	require.NoError(t, ds.Close())
	return path
}

func TestExtractFiles(t *testing.T) {
	img := writeTif(t, "image", 3, 3, godal.UInt16,
		[]float64{1, 2, 3, 4, 5, 6, 7, 8, 9},
		[]float64{0, 0, 0, 0, 0, 0, 0, 0, 0})
	roi := writeTif(t, "roi", 3, 3, godal.Byte,
		[]float64{0, 0, 0, 0, 7, 0, 0, 0, 0})

	res, err := ExtractFiles(img, roi, Options{})
	require.NoError(t, err)
	assert.Equal(t, []float64{5, 0}, res.X.Data)
	assert.Equal(t, []int32{7}, res.Y)
	assert.Equal(t, "uint16", res.DataType)
}

func TestExtractFilesErrors(t *testing.T) {
	img := writeTif(t, "image", 4, 4, godal.Byte, make([]float64, 16))
	roi := writeTif(t, "roi", 5, 5, godal.Byte, make([]float64, 25))

	res, err := ExtractFiles(img, roi, Options{})
	assert.ErrorIs(t, err, ErrDimensionMismatch)
	assert.Nil(t, res)

	res, err = ExtractFiles(img, filepath.Join(t.TempDir(), "missing.tif"), Options{})
	assert.ErrorIs(t, err, raster.ErrOpen)
	assert.Nil(t, res)
}

func TestFromPoints(t *testing.T) {
	img := writeTif(t, "image", 3, 2, godal.Float32,
		[]float64{1, 2, 3, 4, 5, 6},
		[]float64{10, 20, 30, 40, 50, 60})
	points := filepath.Join(t.TempDir(), "points.geojson")
	require.NoError(t, os.WriteFile(points, []byte(`{
  "type": "FeatureCollection",
  "features": [
    {"type": "Feature", "properties": {"code": 12}, "geometry": {"type": "Point", "coordinates": [500025, 6299985]}},
    {"type": "Feature", "properties": {"code": 25}, "geometry": {"type": "Point", "coordinates": [500005, 6299995]}}
  ]
}`), 0o644))

	res, err := FromPoints(points, img, "code", Options{})
	require.NoError(t, err)
	assert.Equal(t, []int32{12, 25}, res.Y)
	assert.Equal(t, Coords{Rows: []int{1, 0}, Cols: []int{2, 0}}, res.Coords)
	assert.Equal(t, []float64{6, 60}, res.X.Row(0))
	assert.Equal(t, []float64{1, 10}, res.X.Row(1))
	assert.Equal(t, "float32", res.DataType)
}

func TestFromPointsOutside(t *testing.T) {
	img := writeTif(t, "image", 3, 2, godal.Byte, make([]float64, 6))
	points := filepath.Join(t.TempDir(), "points.geojson")
	require.NoError(t, os.WriteFile(points, []byte(`{"type":"FeatureCollection","features":[
    {"type":"Feature","properties":{"code":1},"geometry":{"type":"Point","coordinates":[600000,6299985]}}]}`), 0o644))

	_, err := FromPoints(points, img, "code", Options{})
	assert.ErrorIs(t, err, ErrOutOfBounds)
}

func TestCSVRoundTrip(t *testing.T) {
	res := &Result{
		X:      &Matrix{Rows: 2, Cols: 2, Data: []float64{5, 0.25, -1, 1e6}},
		Y:      []int32{7, 12},
		Coords: Coords{Rows: []int{1, 2}, Cols: []int{1, 0}},
	}
	path := filepath.Join(t.TempDir(), "samples.csv")
	require.NoError(t, WriteCSV(res, path))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "row,col,label,values")
	assert.Contains(t, string(content), "1,1,7,5;0.25")

	back, err := ReadCSV(path)
	require.NoError(t, err)
	assert.Equal(t, res.X, back.X)
	assert.Equal(t, res.Y, back.Y)
	assert.Equal(t, res.Coords, back.Coords)
}

func TestWriteCSVDeviceFull(t *testing.T) {
	if _, err := os.Stat("/dev/full"); err != nil {
		t.Skip("/dev/full not available")
	}
	res := &Result{
		X:      &Matrix{Rows: 1, Cols: 1, Data: []float64{3}},
		Y:      []int32{11},
		Coords: Coords{Rows: []int{0}, Cols: []int{0}},
	}
	assert.Error(t, WriteCSV(res, "/dev/full"))
}
