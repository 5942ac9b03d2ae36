package curation

import (
	"testing"

	"github.com/forest-guardian/landcover-samples/internal/vector"
	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/unicode/norm"
)

func TestPixelClass(t *testing.T) {
	assert.Equal(t, Class{12, "Chêne"}, PixelClass("FF1G01-01"))
	assert.Equal(t, Class{25, "Pin maritime"}, PixelClass(" FF2-51-51 "))
	assert.Equal(t, int32(11), PixelClass("FF1-10-10").Code)
	assert.Equal(t, int32(29), ObjectClass("FF31").Code)

	unknown := PixelClass("LA4")
	assert.False(t, unknown.Known())
	assert.Equal(t, Unknown, unknown.Name)
	assert.Equal(t, Unknown, ObjectClass("").Name)
}

func TestClassName(t *testing.T) {
	assert.Equal(t, "Douglas", ClassName(23))
	assert.Equal(t, Unknown, ClassName(99))
	assert.True(t, IsValidPixelCode(21))
	assert.False(t, IsValidPixelCode(26))
}

func TestNormalize(t *testing.T) {
	decomposed := norm.NFD.String("Forêt fermée sans couvert arboré")
	assert.NotEqual(t, "Forêt fermée sans couvert arboré", decomposed)
	assert.Equal(t, "Forêt fermée sans couvert arboré", Normalize(decomposed))
	assert.True(t, IsExcludedFormation(decomposed))

	latin1 := string([]byte{'L', 'a', 'n', 'd', 'e'})
	assert.Equal(t, "Lande", Normalize(latin1))
	assert.Equal(t, "Chêne", Normalize(string([]byte{'C', 'h', 0xEA, 'n', 'e'})))
}

func TestFormationFilter(t *testing.T) {
	assert.Equal(t,
		"TFV NOT IN ('Formation herbacée', 'Lande', 'Forêt fermée sans couvert arboré', 'Forêt ouverte sans couvert arboré')",
		FormationFilter(TypeField))
}

func square(x, y, size float64) orb.Polygon {
	return orb.Polygon{{{x, y}, {x + size, y}, {x + size, y + size}, {x, y + size}, {x, y}}}
}

func feature(fid int64, code, formation string, geom orb.Geometry) vector.Feature {
	return vector.Feature{
		FID:        fid,
		Attributes: map[string]string{CodeField: code, TypeField: formation},
		Geometry:   geom,
	}
}

func TestCurate(t *testing.T) {
	features := []vector.Feature{
		feature(1, "FF1G01-01", "Forêt fermée de chênes", square(0, 0, 100)),
		feature(2, "FF2-51-51", "Forêt fermée de pin maritime", square(0, 0, 50)),
		feature(3, "LA4", "Lande", square(0, 0, 10)),
		feature(4, "XX", "Forêt fermée", square(0, 0, 10)),
		feature(5, "FF2-00-00", "Forêt fermée de conifères", square(0, 0, 10)),
		feature(6, "FF1G01-01", "Forêt ouverte de chênes", square(0, 0, 30)),
	}

	records, sum := Curate(features, Options{})
	require.Len(t, records, 4)
	assert.Equal(t, 6, sum.Total)
	assert.Equal(t, 4, sum.Kept)
	assert.Equal(t, 1, sum.Excluded)
	assert.Equal(t, 1, sum.Unknown)
	assert.Equal(t, map[int32]int{12: 2, 25: 1, 26: 1}, sum.Polygons)
	assert.Equal(t, map[int32]int{12: 109, 25: 25, 26: 1}, sum.Pixels)
	assert.Equal(t, 100, records[0].Pixels)
	assert.Equal(t, "Chêne", records[0].Properties()["Nom_Pixel"])

	records, sum = Curate(features, Options{ValidOnly: true})
	assert.Len(t, records, 3)
	assert.Equal(t, 1, sum.Invalid)
	assert.NotContains(t, sum.Polygons, int32(26))
}

func TestCurateExtent(t *testing.T) {
	features := []vector.Feature{
		feature(1, "FF1G01-01", "Forêt fermée de chênes", square(0, 0, 20)),
		feature(2, "FF1G01-01", "Forêt fermée de chênes", square(10, 0, 20)),
		feature(3, "FF2-51-51", "Forêt fermée de pin maritime", square(100, 100, 10)),
		feature(4, "FF2-51-51", "Forêt fermée de pin maritime", square(20, 0, 10)),
	}
	extent := orb.Bound{Min: orb.Point{0, 0}, Max: orb.Point{20, 20}}

	records, sum := Curate(features, Options{Extent: &extent})
	require.Len(t, records, 2)
	assert.Equal(t, 4, sum.Total)
	assert.Equal(t, 2, sum.Outside)
	assert.Equal(t, 4, records[0].Pixels)
	assert.Equal(t, 2, records[1].Pixels)
	assert.Equal(t, extent, records[1].Feature.Geometry.Bound().Union(extent))
	assert.Equal(t, map[int32]int{12: 6}, sum.Pixels)
}
