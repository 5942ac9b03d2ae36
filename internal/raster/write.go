package raster

import (
	"fmt"

	"github.com/airbusgeo/godal"
	"github.com/forest-guardian/landcover-samples/internal/log"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// LoadImage reads every band of path into memory. The returned type name
// is the one of the first band.
func LoadImage(path string) (bands []*Grid, dataType string, err error) {
	ds, err := Open(path)
	if err != nil {
		return nil, "", err
	}
	defer func() {
		err = multierr.Append(err, ds.Close())
		if err != nil {
			bands = nil
		}
	}()
	_, _, n := ds.Dimensions()
	bands = make([]*Grid, n)
	for i := 0; i < n; i++ {
		if bands[i], err = ds.ReadBand(i); err != nil {
			return nil, "", err
		}
	}
	return bands, ds.DataType(), nil
}

// WriteOptions describe the output dataset. Zero fields are taken from
// Template when it is set.
type WriteOptions struct {
	Template     *Dataset
	DataType     godal.DataType
	GeoTransform *[6]float64
	Projection   string
	Driver       godal.DriverName
	Creation     []string
}

// WriteImage writes bands into a new dataset at path.
func WriteImage(path string, bands []*Grid, opts WriteOptions) (err error) {
	if len(bands) == 0 {
		return ErrNoBands
	}
	width, height := bands[0].Width, bands[0].Height
	for i, b := range bands {
		if b.Width != width || b.Height != height {
			return fmt.Errorf("band %d is %dx%d, want %dx%d: %w", i, b.Width, b.Height, width, height, ErrGridSize)
		}
	}

	if t := opts.Template; t != nil {
		if opts.DataType == godal.Unknown {
			opts.DataType = t.GDALType()
		}
		if opts.GeoTransform == nil {
			if gt, gtErr := t.GeoTransform(); gtErr == nil {
				opts.GeoTransform = &gt
			}
		}
		if opts.Projection == "" {
			opts.Projection = t.Projection()
		}
	}
	if opts.DataType == godal.Unknown {
		opts.DataType = godal.Float64
	}
	if opts.Driver == "" {
		opts.Driver = godal.GTiff
	}

	var createOpts []godal.DatasetCreateOption
	if len(opts.Creation) > 0 {
		createOpts = append(createOpts, godal.CreationOption(opts.Creation...))
	}
	out, err := godal.Create(opts.Driver, path, len(bands), opts.DataType, width, height, createOpts...)
	if err != nil {
		log.Error(logTag+"create dataset failed", zap.String("path", path), zap.Error(err))
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() {
		err = multierr.Append(err, out.Close())
	}()

	if opts.GeoTransform != nil {
		if err = out.SetGeoTransform(*opts.GeoTransform); err != nil {
			return fmt.Errorf("failed to set geotransform on %s: %w", path, err)
		}
	}
	if opts.Projection != "" {
		if err = out.SetProjection(opts.Projection); err != nil {
			return fmt.Errorf("failed to set projection on %s: %w", path, err)
		}
	}
	outBands := out.Bands()
	for i, b := range bands {
		if err = outBands[i].Write(0, 0, b.Data, width, height); err != nil {
			return fmt.Errorf("failed to write band %d of %s: %w", i, path, err)
		}
	}
	log.Info(logTag+"image written", zap.String("path", path), zap.Int("bands", len(bands)), zap.String("type", opts.DataType.String()))
	return nil
}
