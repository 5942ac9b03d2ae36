package vector

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/airbusgeo/godal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	godal.RegisterAll()
	os.Exit(m.Run())
}

const samplePoints = `{
  "type": "FeatureCollection",
  "features": [
    {"type": "Feature", "properties": {"code": 12}, "geometry": {"type": "Point", "coordinates": [500015, 6299995]}},
    {"type": "Feature", "properties": {"code": 25}, "geometry": {"type": "Polygon", "coordinates": [[[500000, 6299980], [500020, 6299980], [500020, 6300000], [500000, 6300000], [500000, 6299980]]]}},
    {"type": "Feature", "properties": {"code": 12}, "geometry": {"type": "Point", "coordinates": [500005, 6299985]}}
  ]
}`

func writeGeoJSON(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "points.geojson")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReadPoints(t *testing.T) {
	path := writeGeoJSON(t, samplePoints)

	points, err := ReadPoints(path, "code")
	require.NoError(t, err)
	require.Len(t, points, 3)

	assert.Equal(t, 500015.0, points[0].X)
	assert.Equal(t, 6299995.0, points[0].Y)
	assert.Equal(t, 12.0, points[0].Value)

	assert.InDelta(t, 500010.0, points[1].X, 1e-6)
	assert.InDelta(t, 6299990.0, points[1].Y, 1e-6)
	assert.Equal(t, 25.0, points[1].Value)
}

func TestReadPointsMissingField(t *testing.T) {
	path := writeGeoJSON(t, samplePoints)
	_, err := ReadPoints(path, "nope")
	assert.ErrorIs(t, err, ErrFieldMissing)
}

func TestReadPointsOpenFailure(t *testing.T) {
	_, err := ReadPoints(filepath.Join(t.TempDir(), "missing.geojson"), "code")
	assert.ErrorIs(t, err, ErrOpen)
}

func TestAreasByField(t *testing.T) {
	areas, err := AreasByField(writeGeoJSON(t, samplePoints), "code")
	require.NoError(t, err)
	assert.Equal(t, map[int32][]float64{12: {0, 0}, 25: {400}}, areas)

	_, err = AreasByField(writeGeoJSON(t, samplePoints), "TFV")
	assert.ErrorIs(t, err, ErrFieldMissing)
}

func TestRowCols(t *testing.T) {
	gt := [6]float64{500000, 10, 0, 6300000, 0, -10}
	rows, cols, err := RowCols([]Point{{X: 500015, Y: 6299995}, {X: 500005, Y: 6299985}}, gt)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1}, rows)
	assert.Equal(t, []int{1, 0}, cols)
}

func TestLocation(t *testing.T) {
	p, err := Location([]byte(`{"type":"Point","coordinates":[1.5,2.5]}`))
	require.NoError(t, err)
	assert.Equal(t, 1.5, p.X())
	assert.Equal(t, 2.5, p.Y())

	_, err = Location([]byte(`{"type":"LineString","coordinates":[[0,0],[1,1]]}`))
	assert.ErrorIs(t, err, ErrGeometryType)
}
