package ui

import (
	"fmt"

	"github.com/forest-guardian/landcover-samples/internal/rasterize"
)

// BuildForestMask rasterizes the forest formations over the study extent.
func BuildForestMask() {
	PrintWarning("Vector layers are read from the data/vectors folder.\nThe mask is written to data/masks.")

	formation, err := SelectFile("Vegetation formation layers", "vectors", vectorExts...)
	if err != nil {
		PrintError(err.Error())
		return
	}
	extent, err := SelectFile("Study extent layers", "vectors", vectorExts...)
	if err != nil {
		PrintError(err.Error())
		return
	}
	resolution, err := ReadOptionalFloat(fmt.Sprintf("Enter the pixel size (default %g): ", rasterize.DefaultResolution))
	if err != nil {
		PrintError(err.Error())
		return
	}
	res := rasterize.DefaultResolution
	if resolution != nil {
		res = *resolution
	}

	out, err := OutputPath("masks", "forest_mask_"+baseName(extent)+".tif")
	if err != nil {
		PrintError(err.Error())
		return
	}
	o, err := rasterize.New().ForestMask(formation, extent, out, res)
	if err != nil {
		fail("Error building forest mask", err)
		return
	}
	succeed(fmt.Sprintf("Forest mask created: %s (%dx%d)", o.Path, o.Width, o.Height))
}
