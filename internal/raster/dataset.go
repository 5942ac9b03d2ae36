package raster

import (
	"fmt"
	"strings"

	"github.com/airbusgeo/godal"
	"github.com/forest-guardian/landcover-samples/internal/log"
	"go.uber.org/zap"
)

const logTag = "raster:"

// Dataset is a read-only GDAL raster implementing Source.
type Dataset struct {
	path string
	ds   *godal.Dataset
}

// Open opens path read-only. Open failures are logged and returned as *OpenError.
func Open(path string) (*Dataset, error) {
	ds, err := godal.Open(path, godal.RasterOnly(), godal.ErrLogger(func(ec godal.ErrorCategory, code int, msg string) error {
		if ec == godal.CE_Warning {
			log.Debug(logTag+"gdal warning", zap.String("path", path), zap.String("msg", msg))
			return nil
		}
		return fmt.Errorf("%s", msg)
	}))
	if err != nil {
		log.Error(logTag+"impossible to open", zap.String("path", path), zap.Error(err))
		return nil, &OpenError{Path: path, Err: err}
	}
	log.Debug(logTag+"open", zap.String("path", path))
	return &Dataset{path: path, ds: ds}, nil
}

// Close may be called more than once.
func (d *Dataset) Close() error {
	if d == nil || d.ds == nil {
		return nil
	}
	err := d.ds.Close()
	d.ds = nil
	return err
}

func (d *Dataset) Path() string { return d.path }
func (d *Dataset) Handle() *godal.Dataset { return d.ds }
func (d *Dataset) Width() int { return d.ds.Structure().SizeX }
func (d *Dataset) Height() int { return d.ds.Structure().SizeY }
func (d *Dataset) BandCount() int { return d.ds.Structure().NBands }
func (d *Dataset) Projection() string { return d.ds.Projection() }
func (d *Dataset) GDALType() godal.DataType { return d.ds.Structure().DataType }

// DataType is the Go name of the first band's type.
func (d *Dataset) DataType() string {
	return TypeName(d.GDALType().String())
}

// Dimensions returns rows, columns and band count.
func (d *Dataset) Dimensions() (rows, cols, bands int) {
	st := d.ds.Structure()
	log.Debug(logTag+"dimensions", zap.String("path", d.path), zap.Int("cols", st.SizeX), zap.Int("rows", st.SizeY), zap.Int("bands", st.NBands))
	return st.SizeY, st.SizeX, st.NBands
}

// ReadBand reads the whole band into memory.
func (d *Dataset) ReadBand(index int) (*Grid, error) {
	bands := d.ds.Bands()
	if index < 0 || index >= len(bands) {
		return nil, fmt.Errorf("band %d of %d in %s: %w", index, len(bands), d.path, ErrBandIndex)
	}
	st := bands[index].Structure()
	g := NewGrid(st.SizeX, st.SizeY)
	if err := bands[index].Read(0, 0, g.Data, st.SizeX, st.SizeY); err != nil {
		log.Error(logTag+"read band failed", zap.String("path", d.path), zap.Int("band", index), zap.Error(err))
		return nil, fmt.Errorf("band %d of %s: %v: %w", index, d.path, err, ErrBandRead)
	}
	return g, nil
}

// NoData returns the nodata value of a band, if one is set.
func (d *Dataset) NoData(index int) (float64, bool) {
	bands := d.ds.Bands()
	if index < 0 || index >= len(bands) {
		return 0, false
	}
	return bands[index].NoData()
}

func (d *Dataset) GeoTransform() ([6]float64, error) {
	gt, err := d.ds.GeoTransform()
	if err != nil {
		return gt, fmt.Errorf("%s: %v: %w", d.path, err, ErrGeoTransform)
	}
	return gt, nil
}

func (d *Dataset) Origin() (x, y float64, err error) {
	gt, err := d.GeoTransform()
	if err != nil {
		return 0, 0, err
	}
	return gt[0], gt[3], nil
}

func (d *Dataset) PixelSize() (x, y float64, err error) {
	gt, err := d.GeoTransform()
	if err != nil {
		return 0, 0, err
	}
	return gt[1], gt[5], nil
}

// Bounds returns the extent covered by the grid as minX, minY, maxX, maxY.
func (d *Dataset) Bounds() ([4]float64, error) {
	gt, err := d.GeoTransform()
	if err != nil {
		return [4]float64{}, err
	}
	x0, y0 := gt[0], gt[3]
	x1, y1 := x0+float64(d.Width())*gt[1], y0+float64(d.Height())*gt[5]
	return [4]float64{min(x0, x1), min(y0, y1), max(x0, x1), max(y0, y1)}, nil
}

// XYToRowCol converts geographic coordinates to grid indices. Results are
// not clamped to the grid.
func (d *Dataset) XYToRowCol(x, y float64) (row, col int, err error) {
	gt, err := d.GeoTransform()
	if err != nil {
		return 0, 0, err
	}
	return GeoTransformRowCol(gt, x, y)
}

// GeoTransformRowCol applies the origin and pixel size of gt, truncating
// toward zero.
func GeoTransformRowCol(gt [6]float64, x, y float64) (row, col int, err error) {
	if gt[1] == 0 || gt[5] == 0 {
		return 0, 0, ErrEmptyPixelDim
	}
	col = int((x - gt[0]) / gt[1])
	row = -int((gt[3] - y) / gt[5])
	return row, col, nil
}

// TypeName converts a GDAL data type name to its Go spelling.
func TypeName(gdalType string) string {
	if gdalType == "Byte" {
		return "uint8"
	}
	return strings.ToLower(gdalType)
}
