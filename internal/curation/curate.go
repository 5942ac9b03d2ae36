package curation

import (
	"math"

	"github.com/forest-guardian/landcover-samples/internal/log"
	"github.com/forest-guardian/landcover-samples/internal/vector"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/clip"
	"github.com/paulmach/orb/planar"
	"go.uber.org/zap"
)

const logTag = "curation:"

// DefaultPixelArea is the area in square metres of a 10 m pixel.
const DefaultPixelArea = 100.0

type Options struct {
	CodeField string
	TypeField string
	// ValidOnly keeps only polygons whose pixel class is in ValidPixelCodes.
	ValidOnly bool
	PixelArea float64
	// ExtentPath is a study area layer. CurateFile clips the polygons to
	// its bounds.
	ExtentPath string
	// Extent, when set, drops the features outside the bound and clips the
	// others before their area is measured.
	Extent *orb.Bound
}

func (o Options) withDefaults() Options {
	if o.CodeField == "" {
		o.CodeField = CodeField
	}
	if o.TypeField == "" {
		o.TypeField = TypeField
	}
	if o.PixelArea <= 0 {
		o.PixelArea = DefaultPixelArea
	}
	return o
}

// Record is a curated polygon.
type Record struct {
	Feature   vector.Feature
	CodeTFV   string
	Formation string
	Pixel     Class
	Object    Class
	// Pixels is the polygon area expressed in pixels.
	Pixels int
}

func (r Record) Properties() map[string]any {
	return map[string]any{
		CodeField:    r.CodeTFV,
		TypeField:    r.Formation,
		"Code_Pixel": r.Pixel.Code,
		"Nom_Pixel":  r.Pixel.Name,
		"Code_Objet": r.Object.Code,
		"Nom_Objet":  r.Object.Name,
		"NB_PIX":     r.Pixels,
	}
}

type Summary struct {
	Total    int
	Outside  int
	Kept     int
	Excluded int
	Unknown  int
	Invalid  int
	// Polygons and Pixels are counted per pixel class over kept records.
	Polygons map[int32]int
	Pixels   map[int32]int
}

// Curate classifies features with the forest type nomenclature. Features
// outside Options.Extent, of an excluded formation or with an unknown code
// are dropped, as are invalid classes when Options.ValidOnly is set.
func Curate(features []vector.Feature, opts Options) ([]Record, Summary) {
	opts = opts.withDefaults()
	sum := Summary{
		Total:    len(features),
		Polygons: make(map[int32]int),
		Pixels:   make(map[int32]int),
	}
	var records []Record
	for _, f := range features {
		if opts.Extent != nil {
			if f.Geometry = clipToBound(f.Geometry, *opts.Extent); f.Geometry == nil {
				sum.Outside++
				continue
			}
		}
		formation := Normalize(f.Attributes[opts.TypeField])
		if IsExcludedFormation(formation) {
			sum.Excluded++
			continue
		}
		code := Normalize(f.Attributes[opts.CodeField])
		rec := Record{
			Feature:   f,
			CodeTFV:   code,
			Formation: formation,
			Pixel:     PixelClass(code),
			Object:    ObjectClass(code),
		}
		if !rec.Pixel.Known() {
			sum.Unknown++
			continue
		}
		if opts.ValidOnly && !IsValidPixelCode(rec.Pixel.Code) {
			sum.Invalid++
			continue
		}
		if f.Geometry != nil {
			rec.Pixels = int(math.Abs(planar.Area(f.Geometry)) / opts.PixelArea)
		}
		sum.Kept++
		sum.Polygons[rec.Pixel.Code]++
		sum.Pixels[rec.Pixel.Code] += rec.Pixels
		records = append(records, rec)
	}
	log.Info(logTag+"features curated",
		zap.Int("total", sum.Total),
		zap.Int("outside", sum.Outside),
		zap.Int("kept", sum.Kept),
		zap.Int("excluded", sum.Excluded),
		zap.Int("unknown", sum.Unknown),
		zap.Int("invalid", sum.Invalid))
	return records, sum
}

// clipToBound returns the part of g inside b, or nil when nothing of it
// remains.
func clipToBound(g orb.Geometry, b orb.Bound) orb.Geometry {
	if g == nil || !b.Intersects(g.Bound()) {
		return nil
	}
	c := clip.Geometry(b, g)
	if c == nil {
		return nil
	}
	if c.Dimensions() == 2 && planar.Area(c) == 0 {
		return nil
	}
	return c
}

// CurateFile curates the polygons of in and writes the kept ones to out as
// GeoJSON with their pixel and object classes, in the spatial reference of
// in.
func CurateFile(in, out string, opts Options) (Summary, error) {
	opts = opts.withDefaults()
	if opts.ExtentPath != "" && opts.Extent == nil {
		b, err := vector.Extent(opts.ExtentPath)
		if err != nil {
			return Summary{}, err
		}
		opts.Extent = &orb.Bound{Min: orb.Point{b[0], b[1]}, Max: orb.Point{b[2], b[3]}}
	}
	features, err := vector.ReadFeatures(in, opts.CodeField, opts.TypeField)
	if err != nil {
		return Summary{}, err
	}
	crs, err := vector.SpatialRef(in)
	if err != nil {
		return Summary{}, err
	}
	records, sum := Curate(features, opts)

	kept := make([]vector.Feature, len(records))
	props := make(map[int64]map[string]any, len(records))
	for i, r := range records {
		kept[i] = r.Feature
		props[r.Feature.FID] = r.Properties()
	}
	err = vector.WriteGeoJSON(out, crs, kept, func(f vector.Feature) map[string]any {
		return props[f.FID]
	})
	return sum, err
}
