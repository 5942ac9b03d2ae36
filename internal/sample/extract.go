package sample

import (
	"fmt"
	"math"

	"github.com/forest-guardian/landcover-samples/internal/log"
	"github.com/forest-guardian/landcover-samples/internal/raster"
	"github.com/schollz/progressbar/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

const logTag = "sample:"

// ExtractFiles opens rasterPath and roiPath, extracts the samples and closes
// both datasets on every path.
func ExtractFiles(rasterPath, roiPath string, opts Options) (res *Result, err error) {
	img, err := raster.Open(rasterPath)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := img.Close(); cerr != nil {
			err = multierr.Append(err, cerr)
			res = nil
		}
	}()
	roi, err := raster.Open(roiPath)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := roi.Close(); cerr != nil {
			err = multierr.Append(err, cerr)
			res = nil
		}
	}()
	res, err = Extract(img, roi, opts)
	if err != nil {
		log.Error(logTag+"extraction failed", zap.String("raster", rasterPath), zap.String("roi", roiPath), zap.Error(err))
	}
	return res, err
}

// Extract collects the pixels of img selected by the first band of roi.
// Nothing is returned unless every step succeeds.
func Extract(img, roi raster.Source, opts Options) (*Result, error) {
	if img.Width() != roi.Width() || img.Height() != roi.Height() {
		return nil, &DimensionMismatchError{
			Raster: [2]int{img.Width(), img.Height()},
			Labels: [2]int{roi.Width(), roi.Height()},
		}
	}

	bands, err := selectBands(opts.Bands, img.BandCount())
	if err != nil {
		return nil, err
	}

	labels, err := roi.ReadBand(0)
	if err != nil {
		return nil, err
	}
	coords := selectCoords(labels, opts.Target)
	y := make([]int32, coords.Len())
	for i := range y {
		y[i] = int32(labels.At(coords.Rows[i], coords.Cols[i]))
	}

	x, err := allocate(coords.Len(), len(bands), opts.MaxElements)
	if err != nil {
		return nil, err
	}

	log.Info(logTag+"extracting samples", zap.Int("samples", x.Rows), zap.Ints("bands", bands), zap.String("grouping", opts.Grouping.String()))
	if err := gather(img, bands, coords, x, opts.Progress); err != nil {
		return nil, err
	}

	res := &Result{
		X:        x,
		Y:        y,
		Coords:   coords,
		Bands:    bands,
		DataType: img.DataType(),
	}
	if opts.Grouping == ByLabel {
		res.Groups = groupByLabel(res)
	}
	return res, nil
}

func selectBands(requested []int, count int) ([]int, error) {
	if len(requested) == 0 {
		bands := make([]int, count)
		for i := range bands {
			bands[i] = i
		}
		return bands, nil
	}
	for _, b := range requested {
		if b < 0 || b >= count {
			return nil, fmt.Errorf("band %d of %d: %w", b, count, ErrBandIndex)
		}
	}
	return append([]int(nil), requested...), nil
}

// selectCoords scans labels in row-major order.
func selectCoords(labels *raster.Grid, target *float64) Coords {
	var c Coords
	for row := 0; row < labels.Height; row++ {
		for col := 0; col < labels.Width; col++ {
			v := labels.At(row, col)
			if target != nil && v != *target || target == nil && v == 0 {
				continue
			}
			c.Rows = append(c.Rows, row)
			c.Cols = append(c.Cols, col)
		}
	}
	return c
}

func allocate(samples, bands, limit int) (*Matrix, error) {
	if limit <= 0 {
		limit = DefaultMaxElements
	}
	if bands > 0 && samples > math.MaxInt/bands || samples*bands > limit {
		return nil, &AllocationError{Samples: samples, Bands: bands, Limit: limit}
	}
	return &Matrix{Rows: samples, Cols: bands, Data: make([]float64, samples*bands)}, nil
}

// gather reads each band once and copies the selected pixels into its column.
func gather(img raster.Source, bands []int, coords Coords, x *Matrix, progress bool) error {
	var bar *progressbar.ProgressBar
	if progress {
		bar = progressbar.Default(int64(len(bands)), "Extracting bands")
	} else {
		bar = progressbar.DefaultSilent(int64(len(bands)))
	}
	defer bar.Finish()

	for j, b := range bands {
		band, err := img.ReadBand(b)
		if err != nil {
			return err
		}
		for i := 0; i < x.Rows; i++ {
			if !band.Contains(coords.Rows[i], coords.Cols[i]) {
				return fmt.Errorf("pixel (%d,%d) of band %d: %w", coords.Rows[i], coords.Cols[i], b, ErrOutOfBounds)
			}
			x.Data[i*x.Cols+j] = band.At(coords.Rows[i], coords.Cols[i])
		}
		bar.Add(1)
	}
	return nil
}
