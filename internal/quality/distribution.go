package quality

import (
	"slices"

	"github.com/forest-guardian/landcover-samples/internal/curation"
	"github.com/forest-guardian/landcover-samples/internal/sample"
	"github.com/forest-guardian/landcover-samples/internal/utils"
	"github.com/forest-guardian/landcover-samples/internal/vector"
)

type ClassDistribution struct {
	Label    int32   `csv:"label"`
	Name     string  `csv:"name"`
	Pixels   int     `csv:"pixels"`
	Share    float64 `csv:"share"`
	Polygons int     `csv:"polygons"`
	// PixelsPerPolygon is the mean polygon size in pixels.
	PixelsPerPolygon float64 `csv:"pixels_per_polygon"`
	// Min, median and max polygon size in pixels.
	MinPolygon    float64 `csv:"min_polygon"`
	MedianPolygon float64 `csv:"median_polygon"`
	MaxPolygon    float64 `csv:"max_polygon"`
}

// Distribution counts pixels per class. polygons, when not nil, gives the
// size in pixels of every polygon of each class.
func Distribution(pixels map[int32]int, polygons map[int32][]float64) []ClassDistribution {
	labels := utils.SortedKeys(pixels)
	for _, l := range utils.SortedKeys(polygons) {
		if _, ok := pixels[l]; !ok {
			labels = append(labels, l)
		}
	}
	slices.Sort(labels)

	total := 0
	for _, n := range pixels {
		total += n
	}
	out := make([]ClassDistribution, len(labels))
	for i, l := range labels {
		d := ClassDistribution{
			Label:    l,
			Name:     curation.ClassName(l),
			Pixels:   pixels[l],
			Polygons: len(polygons[l]),
		}
		if total > 0 {
			d.Share = float64(d.Pixels) / float64(total) * 100
		}
		if d.Polygons > 0 {
			d.PixelsPerPolygon = float64(d.Pixels) / float64(d.Polygons)
			d.MinPolygon, d.MedianPolygon, d.MaxPolygon = spread(polygons[l])
		}
		out[i] = d
	}
	return out
}

func spread(sizes []float64) (lo, median, hi float64) {
	sorted := slices.Clone(sizes)
	slices.Sort(sorted)
	n := len(sorted)
	median = sorted[n/2]
	if n%2 == 0 {
		median = (sorted[n/2-1] + sorted[n/2]) / 2
	}
	return sorted[0], median, sorted[n-1]
}

// ResultDistribution is the distribution of an extraction result, with
// polygon sizes read from polygonsPath when it is not empty. pixelArea
// converts polygon areas to pixels and defaults to a 10 m pixel.
func ResultDistribution(res *sample.Result, polygonsPath, field string, pixelArea float64) ([]ClassDistribution, error) {
	if pixelArea <= 0 {
		pixelArea = curation.DefaultPixelArea
	}
	var polygons map[int32][]float64
	if polygonsPath != "" {
		areas, err := vector.AreasByField(polygonsPath, field)
		if err != nil {
			return nil, err
		}
		polygons = make(map[int32][]float64, len(areas))
		for l, a := range areas {
			sizes := make([]float64, len(a))
			for i, v := range a {
				sizes[i] = v / pixelArea
			}
			polygons[l] = sizes
		}
	}
	return Distribution(res.Counts(), polygons), nil
}
