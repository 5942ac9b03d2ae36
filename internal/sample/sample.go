package sample

import (
	"math"
	"slices"

	"github.com/forest-guardian/landcover-samples/internal/raster"
)

type Grouping int

const (
	// Flat returns one matrix for all selected pixels.
	Flat Grouping = iota
	// ByLabel additionally splits the matrix and coordinates per label.
	ByLabel
)

func (g Grouping) String() string {
	if g == ByLabel {
		return "by_label"
	}
	return "full_matrix"
}

// DefaultMaxElements bounds the size of X when Options.MaxElements is zero.
const DefaultMaxElements = math.MaxInt32

type Options struct {
	// Target selects pixels equal to *Target. Nil selects every non-zero pixel.
	Target *float64
	// Bands are zero-based band indices, in output column order. Empty means
	// all bands.
	Bands       []int
	Grouping    Grouping
	MaxElements int
	// Progress shows a progress bar while bands are read.
	Progress bool
}

// TargetValue is a helper for Options.Target.
func TargetValue(v float64) *float64 {
	return &v
}

// Matrix is a dense row-major n x d matrix.
type Matrix struct {
	Rows int
	Cols int
	Data []float64
}

func (m *Matrix) At(i, j int) float64 {
	return m.Data[i*m.Cols+j]
}

func (m *Matrix) Row(i int) []float64 {
	return m.Data[i*m.Cols : (i+1)*m.Cols]
}

// Coords are the grid positions of samples, in sample order.
type Coords struct {
	Rows []int
	Cols []int
}

func (c Coords) Len() int {
	return len(c.Rows)
}

// Group holds the samples of a single label.
type Group struct {
	Label  int32
	X      *Matrix
	Coords Coords
}

// Result is the outcome of one extraction. X, Y and Coords share the same
// row order.
type Result struct {
	X        *Matrix
	Y        []int32
	Coords   Coords
	Bands    []int
	DataType string
	// Groups is only set for ByLabel extractions.
	Groups map[int32]*Group
}

func (r *Result) Len() int {
	return len(r.Y)
}

// Labels returns the distinct labels present in Y, ascending.
func (r *Result) Labels() []int32 {
	seen := make(map[int32]struct{})
	var labels []int32
	for _, y := range r.Y {
		if _, ok := seen[y]; !ok {
			seen[y] = struct{}{}
			labels = append(labels, y)
		}
	}
	slices.Sort(labels)
	return labels
}

// Counts returns the number of samples per label.
func (r *Result) Counts() map[int32]int {
	counts := make(map[int32]int)
	for _, y := range r.Y {
		counts[y]++
	}
	return counts
}

// Reconstruct scatters Y onto a zero grid of the given size.
func (r *Result) Reconstruct(width, height int) *raster.Grid {
	g := raster.NewGrid(width, height)
	for i, y := range r.Y {
		g.Set(r.Coords.Rows[i], r.Coords.Cols[i], float64(y))
	}
	return g
}
