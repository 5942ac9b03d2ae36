package raster

import "fmt"

// Grid is a single band held in memory, row-major.
type Grid struct {
	Width  int
	Height int
	Data   []float64
}

func NewGrid(width, height int) *Grid {
	return &Grid{Width: width, Height: height, Data: make([]float64, width*height)}
}

// GridFromRows builds a grid from a slice of equal-length rows.
func GridFromRows(rows [][]float64) (*Grid, error) {
	if len(rows) == 0 {
		return &Grid{}, nil
	}
	g := NewGrid(len(rows[0]), len(rows))
	for r, row := range rows {
		if len(row) != g.Width {
			return nil, fmt.Errorf("row %d has %d columns, want %d: %w", r, len(row), g.Width, ErrGridSize)
		}
		copy(g.Data[r*g.Width:], row)
	}
	return g, nil
}

func (g *Grid) At(row, col int) float64 {
	return g.Data[row*g.Width+col]
}

func (g *Grid) Set(row, col int, v float64) {
	g.Data[row*g.Width+col] = v
}

func (g *Grid) Contains(row, col int) bool {
	return row >= 0 && row < g.Height && col >= 0 && col < g.Width
}

// Source is read access to a multi-band grid. Band indices are zero-based.
type Source interface {
	Width() int
	Height() int
	BandCount() int
	DataType() string
	ReadBand(index int) (*Grid, error)
}

// Memory is a Source backed by grids already in memory.
type Memory struct {
	bands    []*Grid
	dataType string
}

func NewMemory(dataType string, bands ...*Grid) (*Memory, error) {
	if len(bands) == 0 {
		return nil, ErrNoBands
	}
	for i, b := range bands[1:] {
		if b.Width != bands[0].Width || b.Height != bands[0].Height {
			return nil, fmt.Errorf("band %d is %dx%d, band 0 is %dx%d: %w", i+1, b.Width, b.Height, bands[0].Width, bands[0].Height, ErrGridSize)
		}
	}
	return &Memory{bands: bands, dataType: dataType}, nil
}

func (m *Memory) Width() int {
	if len(m.bands) == 0 {
		return 0
	}
	return m.bands[0].Width
}

func (m *Memory) Height() int {
	if len(m.bands) == 0 {
		return 0
	}
	return m.bands[0].Height
}

func (m *Memory) BandCount() int { return len(m.bands) }
func (m *Memory) DataType() string { return m.dataType }

func (m *Memory) ReadBand(index int) (*Grid, error) {
	if index < 0 || index >= len(m.bands) {
		return nil, fmt.Errorf("band %d of %d: %w", index, len(m.bands), ErrBandIndex)
	}
	return m.bands[index], nil
}
