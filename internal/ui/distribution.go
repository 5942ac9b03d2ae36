package ui

import (
	"fmt"
	"math"

	"github.com/forest-guardian/landcover-samples/internal/quality"
	"github.com/forest-guardian/landcover-samples/internal/raster"
	"github.com/forest-guardian/landcover-samples/internal/sample"
	"go.uber.org/multierr"
)

func rasterSize(path string) (rows, cols int, err error) {
	ds, err := raster.Open(path)
	if err != nil {
		return 0, 0, err
	}
	defer func() { err = multierr.Append(err, ds.Close()) }()
	rows, cols, _ = ds.Dimensions()
	return rows, cols, nil
}

// pixelArea is the area of one pixel of path in map units.
func pixelArea(path string) (area float64, err error) {
	ds, err := raster.Open(path)
	if err != nil {
		return 0, err
	}
	defer func() { err = multierr.Append(err, ds.Close()) }()
	x, y, err := ds.PixelSize()
	if err != nil {
		return 0, err
	}
	return math.Abs(x * y), nil
}

// SampleDistribution counts labelled pixels per class and, optionally, the
// number and size of the polygons they come from.
func SampleDistribution() {
	PrintWarning("Label rasters are read from data/labels. The report is written to data/reports.")

	labels, err := SelectFile("Label rasters", "labels", rasterExts...)
	if err != nil {
		PrintError(err.Error())
		return
	}
	res, err := sample.ExtractFiles(labels, labels, sample.Options{Bands: []int{0}, Progress: true})
	if err != nil {
		fail("Error reading labels", err)
		return
	}

	var polygons, field string
	var area float64
	if ReadYesNo("Count polygons from a vector layer?") {
		if polygons, err = SelectFile("Sample layers", "vectors", vectorExts...); err != nil {
			PrintError(err.Error())
			return
		}
		if field = ReadString("Enter the class field (default Code_Pixel): "); field == "" {
			field = "Code_Pixel"
		}
		if area, err = pixelArea(labels); err != nil {
			fail("Error reading label raster", err)
			return
		}
	}
	dist, err := quality.ResultDistribution(res, polygons, field, area)
	if err != nil {
		fail("Error counting polygons", err)
		return
	}
	fmt.Print(quality.DistributionMarkdown(dist))

	md, csv, err := quality.SaveDistribution(quality.ReportsDir(), dist)
	if err != nil {
		fail("Error saving distribution", err)
		return
	}
	succeed(fmt.Sprintf("Distribution report saved: %s, %s", md, csv))
}
