package vector

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/airbusgeo/godal"
	"github.com/forest-guardian/landcover-samples/internal/log"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"go.uber.org/zap"
)

// Feature is a feature of the first layer with its requested attributes
// rendered as strings.
type Feature struct {
	FID        int64
	Attributes map[string]string
	Geometry   orb.Geometry
}

// ReadFeatures reads every feature of the first layer of path. Each name in
// fields must exist on every feature.
func ReadFeatures(path string, fields ...string) ([]Feature, error) {
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

	var features []Feature
	for {
		feat := layer.NextFeature()
		if feat == nil {
			break
		}
		f, err := readFeature(feat, fields)
		feat.Close()
		if err != nil {
			return nil, fmt.Errorf("feature %d of %s: %w", f.FID, path, err)
		}
		features = append(features, f)
	}
	log.Debug(logTag+"features read", zap.String("path", path), zap.Int("count", len(features)))
	return features, nil
}

func readFeature(feat *godal.Feature, fields []string) (Feature, error) {
	f := Feature{FID: feat.FID(), Attributes: make(map[string]string, len(fields))}
	all := feat.Fields()
	for _, name := range fields {
		val, ok := all[name]
		if !ok {
			return f, fmt.Errorf("%s: %w", name, ErrFieldMissing)
		}
		f.Attributes[name] = val.String()
	}
	geom := feat.Geometry()
	if geom == nil || geom.Empty() {
		return f, ErrEmptyGeometry
	}
	js, err := geom.GeoJSON()
	if err != nil {
		return f, err
	}
	g, err := geojson.UnmarshalGeometry([]byte(js))
	if err != nil {
		return f, err
	}
	f.Geometry = g.Coordinates
	return f, nil
}

// SpatialRef returns the WKT of the spatial reference of the first layer of
// path, or "" when the layer has none.
func SpatialRef(path string) (string, error) {
	ds, err := open(path)
	if err != nil {
		return "", err
	}
	defer ds.Close()

	layers := ds.Layers()
	if len(layers) == 0 {
		return "", fmt.Errorf("%s: %w", path, ErrNoLayer)
	}
	sr := layers[0].SpatialRef()
	if sr == nil {
		return "", nil
	}
	wkt, err := sr.WKT()
	if err != nil {
		log.Warn(logTag+"layer has no usable spatial reference", zap.String("path", path), zap.Error(err))
		return "", nil
	}
	return wkt, nil
}

// WriteGeoJSON writes features as a GeoJSON feature collection. props
// gives the properties of each feature. A non empty crs, as WKT or an
// authority code, is written as the named crs member so GDAL does not read
// the coordinates as WGS84.
func WriteGeoJSON(path, crs string, features []Feature, props func(Feature) map[string]any) error {
	fc := geojson.NewFeatureCollection()
	if crs != "" {
		fc.ExtraMembers = geojson.Properties{
			"crs": map[string]any{
				"type":       "name",
				"properties": map[string]any{"name": crs},
			},
		}
	}
	for _, f := range features {
		gf := geojson.NewFeature(f.Geometry)
		gf.ID = f.FID
		gf.Properties = props(f)
		fc.Append(gf)
	}
	data, err := fc.MarshalJSON()
	if err != nil {
		return err
	}
	if err := writeFile(path, data); err != nil {
		log.Error(logTag+"impossible to write features", zap.String("path", path), zap.Error(err))
		return err
	}
	log.Info(logTag+"features written", zap.String("path", path), zap.Int("count", len(features)))
	return nil
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Extent returns the bounds of every geometry of the first layer of path as
// minX, minY, maxX, maxY.
func Extent(path string) ([4]float64, error) {
	features, err := ReadFeatures(path)
	if err != nil {
		return [4]float64{}, err
	}
	if len(features) == 0 {
		return [4]float64{}, fmt.Errorf("%s: %w", path, ErrEmptyGeometry)
	}
	b := features[0].Geometry.Bound()
	for _, f := range features[1:] {
		b = b.Union(f.Geometry.Bound())
	}
	return [4]float64{b.Min.X(), b.Min.Y(), b.Max.X(), b.Max.Y()}, nil
}
