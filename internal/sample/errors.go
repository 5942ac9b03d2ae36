package sample

import (
	"errors"
	"fmt"
)

var (
	ErrDimensionMismatch = errors.New("images should be of the same size")
	ErrAllocation        = errors.New("impossible to allocate memory: roi too large")
	ErrBandIndex         = errors.New("band index out of range")
	ErrOutOfBounds       = errors.New("sample outside of the image")
)

// DimensionMismatchError reports a label source whose grid differs from the
// reference raster.
type DimensionMismatchError struct {
	Raster [2]int // width, height
	Labels [2]int
}

func (e *DimensionMismatchError) Error() string {
	return fmt.Sprintf("%v: raster is %dx%d, roi is %dx%d", ErrDimensionMismatch, e.Raster[0], e.Raster[1], e.Labels[0], e.Labels[1])
}

func (e *DimensionMismatchError) Is(target error) bool { return target == ErrDimensionMismatch }

// AllocationError reports a sample matrix that cannot be allocated.
type AllocationError struct {
	Samples int
	Bands   int
	Limit   int
}

func (e *AllocationError) Error() string {
	return fmt.Sprintf("%v: %d samples x %d bands exceeds %d elements", ErrAllocation, e.Samples, e.Bands, e.Limit)
}

func (e *AllocationError) Is(target error) bool { return target == ErrAllocation }
