package sample

import (
	"fmt"

	"github.com/forest-guardian/landcover-samples/internal/log"
	"github.com/forest-guardian/landcover-samples/internal/raster"
	"github.com/forest-guardian/landcover-samples/internal/vector"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// FromPoints samples every band of imagePath at the features of pointsPath.
// Labels come from the numeric attribute field.
func FromPoints(pointsPath, imagePath, field string, opts Options) (res *Result, err error) {
	points, err := vector.ReadPoints(pointsPath, field)
	if err != nil {
		return nil, err
	}
	img, err := raster.Open(imagePath)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := img.Close(); cerr != nil {
			err = multierr.Append(err, cerr)
			res = nil
		}
	}()
	gt, err := img.GeoTransform()
	if err != nil {
		return nil, err
	}
	rows, cols, err := vector.RowCols(points, gt)
	if err != nil {
		return nil, err
	}
	labels := make([]float64, len(points))
	for i, p := range points {
		labels[i] = p.Value
	}
	res, err = AtCoords(img, Coords{Rows: rows, Cols: cols}, labels, opts)
	if err != nil {
		log.Error(logTag+"point sampling failed", zap.String("points", pointsPath), zap.String("image", imagePath), zap.Error(err))
	}
	return res, err
}

// AtCoords gathers the pixels of img at explicit coordinates. Options.Target
// keeps only the coordinates whose label equals it; a zero label is kept.
func AtCoords(img raster.Source, coords Coords, labels []float64, opts Options) (*Result, error) {
	if coords.Len() != len(labels) || len(coords.Cols) != len(labels) {
		return nil, fmt.Errorf("%d rows, %d cols and %d labels", len(coords.Rows), len(coords.Cols), len(labels))
	}
	bands, err := selectBands(opts.Bands, img.BandCount())
	if err != nil {
		return nil, err
	}

	var kept Coords
	var y []int32
	for i, l := range labels {
		if opts.Target != nil && l != *opts.Target {
			continue
		}
		r, c := coords.Rows[i], coords.Cols[i]
		if r < 0 || r >= img.Height() || c < 0 || c >= img.Width() {
			return nil, fmt.Errorf("sample %d at (%d,%d) in %dx%d image: %w", i, r, c, img.Width(), img.Height(), ErrOutOfBounds)
		}
		kept.Rows = append(kept.Rows, r)
		kept.Cols = append(kept.Cols, c)
		y = append(y, int32(l))
	}

	x, err := allocate(kept.Len(), len(bands), opts.MaxElements)
	if err != nil {
		return nil, err
	}
	if err := gather(img, bands, kept, x, opts.Progress); err != nil {
		return nil, err
	}
	res := &Result{X: x, Y: y, Coords: kept, Bands: bands, DataType: img.DataType()}
	if opts.Grouping == ByLabel {
		res.Groups = groupByLabel(res)
	}
	return res, nil
}
