package rasterize

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"

	"github.com/airbusgeo/godal"
	"github.com/forest-guardian/landcover-samples/internal/cache"
	"github.com/forest-guardian/landcover-samples/internal/curation"
	"github.com/forest-guardian/landcover-samples/internal/log"
	"github.com/forest-guardian/landcover-samples/internal/raster"
	"github.com/forest-guardian/landcover-samples/internal/vector"
	"github.com/google/uuid"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

const logTag = "rasterize:"

// DefaultResolution is the pixel size of the forest mask in map units.
const DefaultResolution = 10.0

var (
	ErrRasterize  = errors.New("rasterization failed")
	ErrResolution = errors.New("resolution must be positive")
	ErrEmptyGrid  = errors.New("extent smaller than one pixel")
	ErrNoneBurned = errors.New("no feature burned into the grid")
)

// Output describes a raster written by a Rasterizer.
type Output struct {
	Path   string `json:"path"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	// Burned counts the non zero pixels of the first band.
	Burned  int   `json:"burned"`
	ModTime int64 `json:"mod_time"`
}

// Rasterizer burns vector layers into GeoTIFFs. Outputs are remembered in
// Cache, when set, and reused while inputs and output are unchanged.
type Rasterizer struct {
	Cache *cache.FileCache[Output]
}

func New() *Rasterizer {
	return &Rasterizer{Cache: cache.NewDataCache[Output]("rasterize")}
}

func fmtFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func extentSwitches(b [4]float64) []string {
	return []string{"-te", fmtFloat(b[0]), fmtFloat(b[1]), fmtFloat(b[2]), fmtFloat(b[3])}
}

// Attribute burns the numeric field of every feature of vectorPath onto the
// grid of refImage: same extent, size and projection. Pixels outside any
// feature are 0, which is also the nodata value. A raster where no feature
// was burned, usually a layer whose spatial reference does not match its
// coordinates, is returned with ErrNoneBurned.
func (r *Rasterizer) Attribute(vectorPath, refImage, out, field string, dtype godal.DataType) (Output, error) {
	ref, err := raster.Open(refImage)
	if err != nil {
		return Output{}, err
	}
	defer ref.Close()
	bounds, err := ref.Bounds()
	if err != nil {
		return Output{}, err
	}

	switches := []string{
		"-a", field,
		"-ts", strconv.Itoa(ref.Width()), strconv.Itoa(ref.Height()),
		"-ot", dtype.String(),
		"-init", "0",
		"-a_nodata", "0",
	}
	switches = append(switches, extentSwitches(bounds)...)
	if wkt := ref.Projection(); wkt != "" {
		switches = append(switches, "-a_srs", wkt)
	}
	key := []any{"attribute", field, dtype.String(), out}
	o, err := r.run([]string{vectorPath, refImage}, key, vectorPath, out, switches)
	if err != nil {
		return Output{}, err
	}
	if o.Burned == 0 {
		log.Warn(logTag+"no feature burned", zap.String("src", vectorPath), zap.String("ref", refImage))
		return o, fmt.Errorf("%s on %s: %w", vectorPath, refImage, ErrNoneBurned)
	}
	return o, nil
}

// ForestMask rasterizes the forest formations of formationPath over the
// extent of extentPath at the given resolution, in the spatial reference of
// extentPath. Forest pixels are 1, all others 0 (nodata).
func (r *Rasterizer) ForestMask(formationPath, extentPath, out string, resolution float64) (Output, error) {
	if resolution == 0 {
		resolution = DefaultResolution
	}
	if resolution < 0 || math.IsNaN(resolution) {
		return Output{}, ErrResolution
	}
	bounds, err := vector.Extent(extentPath)
	if err != nil {
		return Output{}, err
	}
	// the grid is anchored on the top-left corner and truncated
	width := int((bounds[2] - bounds[0]) / resolution)
	height := int((bounds[3] - bounds[1]) / resolution)
	if width <= 0 || height <= 0 {
		return Output{}, fmt.Errorf("%s at %v: %w", extentPath, resolution, ErrEmptyGrid)
	}
	bounds[2] = bounds[0] + float64(width)*resolution
	bounds[1] = bounds[3] - float64(height)*resolution

	switches := []string{
		"-where", curation.FormationFilter(curation.TypeField),
		"-burn", "1",
		"-init", "0",
		"-a_nodata", "0",
		"-ot", "Byte",
		"-tr", fmtFloat(resolution), fmtFloat(resolution),
	}
	switches = append(switches, extentSwitches(bounds)...)
	srs, err := vector.SpatialRef(extentPath)
	if err != nil {
		return Output{}, err
	}
	if srs != "" {
		switches = append(switches, "-a_srs", srs)
	}
	key := []any{"forest_mask", resolution, out}
	return r.run([]string{formationPath, extentPath}, key, formationPath, out, switches)
}

func (r *Rasterizer) run(inputs []string, params []any, src, out string, switches []string) (Output, error) {
	var key string
	if r.Cache != nil {
		k, err := r.Cache.FileKey(inputs, params...)
		if err != nil {
			return Output{}, err
		}
		key = k
		if o, ok := r.Cache.Get(key); ok && fresh(o) {
			log.Info(logTag+"reusing output", zap.String("path", o.Path))
			return o, nil
		}
	}

	o, err := rasterize(src, out, switches)
	if err != nil {
		return Output{}, err
	}
	if r.Cache != nil {
		if err := r.Cache.Set(key, o); err != nil {
			log.Warn(logTag+"cache not updated", zap.String("path", out), zap.Error(err))
		}
	}
	return o, nil
}

func fresh(o Output) bool {
	info, err := os.Stat(o.Path)
	return err == nil && info.ModTime().UnixNano() == o.ModTime
}

// rasterize writes next to out under a temporary name and renames it once
// GDAL has closed the file.
func rasterize(src, out string, switches []string) (Output, error) {
	ds, err := godal.Open(src, godal.VectorOnly())
	if err != nil {
		log.Error(logTag+"impossible to open", zap.String("path", src), zap.Error(err))
		return Output{}, fmt.Errorf("%s: %v: %w", src, err, vector.ErrOpen)
	}
	defer ds.Close()

	if err := os.MkdirAll(filepath.Dir(out), 0755); err != nil {
		return Output{}, err
	}
	tmp := filepath.Join(filepath.Dir(out), "."+uuid.NewString()+".tif")
	log.Debug(logTag+"gdal_rasterize", zap.String("src", src), zap.Strings("switches", switches))
	switches = append([]string{"-of", "GTiff"}, switches...)
	dst, err := ds.Rasterize(tmp, switches, godal.CreationOption("COMPRESS=LZW"))
	if err != nil {
		os.Remove(tmp)
		log.Error(logTag+"gdal_rasterize failed", zap.String("src", src), zap.Error(err))
		return Output{}, fmt.Errorf("%s: %v: %w", src, err, ErrRasterize)
	}
	st := dst.Structure()
	if err := dst.Close(); err != nil {
		os.Remove(tmp)
		return Output{}, fmt.Errorf("%s: %v: %w", out, err, ErrRasterize)
	}
	if err := os.Rename(tmp, out); err != nil {
		os.Remove(tmp)
		return Output{}, err
	}
	burned, err := countBurned(out)
	if err != nil {
		return Output{}, err
	}
	info, err := os.Stat(out)
	if err != nil {
		return Output{}, err
	}
	log.Info(logTag+"raster written", zap.String("path", out), zap.Int("width", st.SizeX), zap.Int("height", st.SizeY), zap.Int("burned", burned))
	return Output{Path: out, Width: st.SizeX, Height: st.SizeY, Burned: burned, ModTime: info.ModTime().UnixNano()}, nil
}

func countBurned(path string) (n int, err error) {
	ds, err := raster.Open(path)
	if err != nil {
		return 0, err
	}
	defer func() { err = multierr.Append(err, ds.Close()) }()
	g, err := ds.ReadBand(0)
	if err != nil {
		return 0, err
	}
	for _, v := range g.Data {
		if v != 0 {
			n++
		}
	}
	return n, nil
}
