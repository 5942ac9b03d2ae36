package raster

import (
	"errors"
	"fmt"
)

var (
	ErrOpen          = errors.New("raster open err")
	ErrBandRead      = errors.New("raster band read err")
	ErrBandIndex     = errors.New("raster band index out of range")
	ErrGridSize      = errors.New("grids differ in size")
	ErrNoBands       = errors.New("no bands to write")
	ErrGeoTransform  = errors.New("raster has no usable geotransform")
	ErrEmptyPixelDim = errors.New("raster pixel size is zero")
)

// OpenError reports a dataset that GDAL could not open.
type OpenError struct {
	Path string
	Err  error
}

func (e *OpenError) Error() string {
	return fmt.Sprintf("impossible to open %s: %v", e.Path, e.Err)
}

func (e *OpenError) Unwrap() error { return e.Err }

func (e *OpenError) Is(target error) bool { return target == ErrOpen }
