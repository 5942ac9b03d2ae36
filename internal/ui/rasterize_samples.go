package ui

import (
	"fmt"
	"strings"

	"github.com/airbusgeo/godal"
	"github.com/forest-guardian/landcover-samples/internal/curation"
	"github.com/forest-guardian/landcover-samples/internal/rasterize"
	"github.com/forest-guardian/landcover-samples/internal/utils"
)

// RasterizeSamples curates forest polygons with the forest type
// nomenclature and burns their pixel class on the grid of a reference image.
func RasterizeSamples() {
	PrintWarning(fmt.Sprintf("The polygons need the %s and %s fields.\nThe curated layer is written to data/vectors and the label raster to data/labels.",
		curation.CodeField, curation.TypeField))

	polygons, err := SelectFile("Forest polygon layers", "vectors", vectorExts...)
	if err != nil {
		PrintError(err.Error())
		return
	}
	ref, err := SelectFile("Reference images", "images", rasterExts...)
	if err != nil {
		PrintError(err.Error())
		return
	}
	validOnly := ReadYesNo("Keep only the training classes " + joinCodes(curation.ValidPixelCodes) + "?")
	var extent string
	if ReadYesNo("Clip the polygons to a study extent layer?") {
		if extent, err = SelectFile("Study extent layers", "vectors", vectorExts...); err != nil {
			PrintError(err.Error())
			return
		}
	}

	curated, err := OutputPath("vectors", baseName(polygons)+"_curated.geojson")
	if err != nil {
		PrintError(err.Error())
		return
	}
	summary, err := curation.CurateFile(polygons, curated, curation.Options{ValidOnly: validOnly, ExtentPath: extent})
	if err != nil {
		fail("Error curating samples", err)
		return
	}
	PrintSuccess(fmt.Sprintf("%d of %d polygons kept (%d outside the study extent, %d excluded formations, %d unknown codes, %d outside the training classes)",
		summary.Kept, summary.Total, summary.Outside, summary.Excluded, summary.Unknown, summary.Invalid))
	for _, code := range utils.SortedKeys(summary.Polygons) {
		fmt.Printf("  %d %-50s %6d polygons %10d pixels\n", code, curation.ClassName(code), summary.Polygons[code], summary.Pixels[code])
	}

	out, err := OutputPath("labels", baseName(polygons)+"_"+baseName(ref)+".tif")
	if err != nil {
		PrintError(err.Error())
		return
	}
	o, err := rasterize.New().Attribute(curated, ref, out, "Code_Pixel", godal.Byte)
	if err != nil {
		fail("Error rasterizing samples", err)
		return
	}
	succeed(fmt.Sprintf("Label raster created: %s (%dx%d, %d labelled pixels)", o.Path, o.Width, o.Height, o.Burned))
}

func joinCodes(codes []int32) string {
	parts := make([]string, len(codes))
	for i, c := range codes {
		parts[i] = fmt.Sprint(c)
	}
	return strings.Join(parts, ", ")
}
