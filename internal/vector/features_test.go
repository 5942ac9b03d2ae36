package vector

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadFeatures(t *testing.T) {
	features, err := ReadFeatures(writeGeoJSON(t, samplePoints), "code")
	require.NoError(t, err)
	require.Len(t, features, 3)
	assert.Equal(t, "12", features[0].Attributes["code"])
	assert.Equal(t, orb.Point{500015, 6299995}, features[0].Geometry)
	assert.IsType(t, orb.Polygon{}, features[1].Geometry)

	_, err = ReadFeatures(writeGeoJSON(t, samplePoints), "TFV")
	assert.ErrorIs(t, err, ErrFieldMissing)
}

func TestExtent(t *testing.T) {
	bounds, err := Extent(writeGeoJSON(t, samplePoints))
	require.NoError(t, err)
	assert.Equal(t, [4]float64{500000, 6299980, 500020, 6300000}, bounds)

	_, err = Extent(writeGeoJSON(t, `{"type":"FeatureCollection","features":[]}`))
	assert.ErrorIs(t, err, ErrEmptyGeometry)
}

func TestWriteGeoJSON(t *testing.T) {
	features := []Feature{
		{FID: 4, Geometry: orb.Point{1, 2}},
		{FID: 7, Geometry: orb.Polygon{{{0, 0}, {1, 0}, {1, 1}, {0, 0}}}},
	}
	path := filepath.Join(t.TempDir(), "out", "curated.geojson")
	err := WriteGeoJSON(path, "EPSG:2154", features, func(f Feature) map[string]any {
		return map[string]any{"fid": f.FID, "Code_Pixel": 12}
	})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	fc, err := geojson.UnmarshalFeatureCollection(data)
	require.NoError(t, err)
	require.Len(t, fc.Features, 2)
	assert.Equal(t, orb.Point{1, 2}, fc.Features[0].Geometry)
	assert.Equal(t, 12.0, fc.Features[1].Properties["Code_Pixel"])
	assert.Equal(t, 7.0, fc.Features[1].Properties["fid"])
	assert.Equal(t, map[string]any{
		"type":       "name",
		"properties": map[string]any{"name": "EPSG:2154"},
	}, fc.ExtraMembers["crs"])

	wkt, err := SpatialRef(path)
	require.NoError(t, err)
	assert.Contains(t, wkt, "2154")
}

func TestWriteGeoJSONWithoutCRS(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plain.geojson")
	require.NoError(t, WriteGeoJSON(path, "", []Feature{{FID: 1, Geometry: orb.Point{1, 2}}}, func(Feature) map[string]any {
		return nil
	}))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), `"crs"`)
}
