package vector

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/airbusgeo/godal"
	"github.com/forest-guardian/landcover-samples/internal/log"
	"github.com/forest-guardian/landcover-samples/internal/raster"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/planar"
	"go.uber.org/zap"
)

const logTag = "vector:"

var (
	ErrOpen          = errors.New("vector open err")
	ErrNoLayer       = errors.New("vector file has no layer")
	ErrFieldMissing  = errors.New("field missing from feature")
	ErrGeometryType  = errors.New("unsupported geometry type")
	ErrEmptyGeometry = errors.New("empty geometry")
)

// Point is one feature reduced to a location and the value of the
// requested attribute. Polygons are reduced to their centroid.
type Point struct {
	FID   int64
	X     float64
	Y     float64
	Value float64
}

func open(path string) (*godal.Dataset, error) {
	ds, err := godal.Open(path, godal.VectorOnly())
	if err != nil {
		log.Error(logTag+"impossible to open", zap.String("path", path), zap.Error(err))
		return nil, fmt.Errorf("%s: %v: %w", path, err, ErrOpen)
	}
	return ds, nil
}

// ReadPoints reads the features of the first layer of path. When field is
// empty Value is left at zero.
func ReadPoints(path, field string) ([]Point, error) {
	ds, err := open(path)
	if err != nil {
		return nil, err
	}
	defer ds.Close()

	layers := ds.Layers()
	if len(layers) == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrNoLayer)
	}
	layer := layers[0]
	layer.ResetReading()

	var points []Point
	for {
		feat := layer.NextFeature()
		if feat == nil {
			break
		}
		p, err := featurePoint(feat, field)
		fid := feat.FID()
		feat.Close()
		if err != nil {
			return nil, fmt.Errorf("feature %d of %s: %w", fid, path, err)
		}
		points = append(points, p)
	}
	log.Info(logTag+"points read", zap.String("path", path), zap.Int("count", len(points)), zap.String("field", field))
	return points, nil
}

func featurePoint(feat *godal.Feature, field string) (Point, error) {
	p := Point{FID: feat.FID()}
	if field != "" {
		val, ok := feat.Fields()[field]
		if !ok {
			return p, fmt.Errorf("%s: %w", field, ErrFieldMissing)
		}
		p.Value = val.Float()
	}
	geom := feat.Geometry()
	if geom == nil || geom.Empty() {
		return p, ErrEmptyGeometry
	}
	js, err := geom.GeoJSON()
	if err != nil {
		return p, err
	}
	loc, err := Location([]byte(js))
	if err != nil {
		return p, err
	}
	p.X, p.Y = loc.X(), loc.Y()
	return p, nil
}

// Location parses a GeoJSON geometry and returns the point itself or the
// centroid of a polygonal geometry.
func Location(geometryJSON []byte) (orb.Point, error) {
	g, err := geojson.UnmarshalGeometry(geometryJSON)
	if err != nil {
		return orb.Point{}, err
	}
	switch c := g.Coordinates.(type) {
	case orb.Point:
		return c, nil
	case orb.MultiPoint:
		if len(c) == 0 {
			return orb.Point{}, ErrEmptyGeometry
		}
		return c[0], nil
	case orb.Polygon, orb.MultiPolygon:
		centroid, area := planar.CentroidArea(c)
		if area <= 0 {
			return orb.Point{}, ErrEmptyGeometry
		}
		return centroid, nil
	default:
		return orb.Point{}, fmt.Errorf("%s: %w", g.Coordinates.GeoJSONType(), ErrGeometryType)
	}
}

// RowCols converts point locations to grid indices with the origin and
// pixel size of gt.
func RowCols(points []Point, gt [6]float64) (rows, cols []int, err error) {
	rows = make([]int, len(points))
	cols = make([]int, len(points))
	for i, p := range points {
		if rows[i], cols[i], err = raster.GeoTransformRowCol(gt, p.X, p.Y); err != nil {
			return nil, nil, err
		}
	}
	return rows, cols, nil
}

// AreasByField returns the planar area of every feature of the first layer,
// grouped by the integer value of field. Non polygonal features have a zero
// area.
func AreasByField(path, field string) (map[int32][]float64, error) {
	features, err := ReadFeatures(path, field)
	if err != nil {
		return nil, err
	}
	areas := make(map[int32][]float64)
	for _, f := range features {
		code, err := strconv.ParseFloat(f.Attributes[field], 64)
		if err != nil {
			return nil, fmt.Errorf("feature %d of %s: %s %q: %w", f.FID, path, field, f.Attributes[field], err)
		}
		areas[int32(code)] = append(areas[int32(code)], math.Abs(planar.Area(f.Geometry)))
	}
	return areas, nil
}
