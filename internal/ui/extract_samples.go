package ui

import (
	"fmt"

	"github.com/forest-guardian/landcover-samples/internal/curation"
	"github.com/forest-guardian/landcover-samples/internal/sample"
	"github.com/forest-guardian/landcover-samples/internal/utils"
	"github.com/forest-guardian/landcover-samples/output"
)

func readSampleOptions() (sample.Options, error) {
	var opts sample.Options
	target, err := ReadOptionalFloat("Enter the label to extract (empty for every non-zero label): ")
	if err != nil {
		return opts, err
	}
	bands, err := ReadBands("Enter the bands to read, e.g. 1,3,4 (empty for all): ")
	if err != nil {
		return opts, err
	}
	opts.Target = target
	opts.Bands = bands
	opts.Progress = true
	if ReadYesNo("Group samples by label?") {
		opts.Grouping = sample.ByLabel
	}
	return opts, nil
}

func printCounts(res *sample.Result) {
	counts := res.Counts()
	fmt.Printf("  %d samples, %d bands, %s\n", res.Len(), len(res.Bands), res.DataType)
	for _, label := range utils.SortedKeys(counts) {
		fmt.Printf("  %d %-50s %10d\n", label, curation.ClassName(label), counts[label])
	}
}

func saveSamples(res *sample.Result, name string) (string, error) {
	path, err := OutputPath("samples", name+".csv")
	if err != nil {
		return "", err
	}
	if res.Groups != nil {
		for _, label := range res.Labels() {
			g := res.Groups[label]
			gpath, err := OutputPath("samples", fmt.Sprintf("%s_%d.csv", name, label))
			if err != nil {
				return "", err
			}
			labels := make([]int32, g.Coords.Len())
			for i := range labels {
				labels[i] = label
			}
			if err := sample.WriteCSV(&sample.Result{X: g.X, Y: labels, Coords: g.Coords}, gpath); err != nil {
				return "", err
			}
		}
	}
	return path, sample.WriteCSV(res, path)
}

// ExtractROISamples pairs every labelled pixel of a label raster with the
// band values of an image of the same size.
func ExtractROISamples() {
	PrintWarning("Images are read from data/images and label rasters from data/labels.\nBoth rasters must have the same size. Samples are written to data/samples.")

	img, err := SelectFile("Images", "images", rasterExts...)
	if err != nil {
		PrintError(err.Error())
		return
	}
	roi, err := SelectFile("Label rasters", "labels", rasterExts...)
	if err != nil {
		PrintError(err.Error())
		return
	}
	opts, err := readSampleOptions()
	if err != nil {
		PrintError(err.Error())
		return
	}

	res, err := sample.ExtractFiles(img, roi, opts)
	if err != nil {
		fail("Error extracting samples", err)
		return
	}
	printCounts(res)

	name := baseName(img) + "_" + baseName(roi)
	path, err := saveSamples(res, name)
	if err != nil {
		fail("Error saving samples", err)
		return
	}
	if ReadYesNo("Save a preview of the sampled pixels?") {
		previewLabels(res, roi, name)
	}
	succeed(fmt.Sprintf("%d samples extracted: %s", res.Len(), path))
}

func previewLabels(res *sample.Result, roiPath, name string) {
	rows, cols, err := rasterSize(roiPath)
	if err != nil {
		PrintError(err.Error())
		return
	}
	path, err := OutputPath("previews", name+".png")
	if err != nil {
		PrintError(err.Error())
		return
	}
	if err := output.LabelPreview(res, cols, rows, path, output.PreviewOptions{Legend: true}); err != nil {
		PrintError(err.Error())
		return
	}
	PrintSuccess("Preview saved: " + path)
}

// ExtractPointSamples reads the image values under point or polygon features.
func ExtractPointSamples() {
	PrintWarning("Point layers are read from data/vectors; polygons are sampled at their centroid.")

	points, err := SelectFile("Sample layers", "vectors", vectorExts...)
	if err != nil {
		PrintError(err.Error())
		return
	}
	img, err := SelectFile("Images", "images", rasterExts...)
	if err != nil {
		PrintError(err.Error())
		return
	}
	field := ReadString("Enter the label field (default Code_Pixel): ")
	if field == "" {
		field = "Code_Pixel"
	}
	opts, err := readSampleOptions()
	if err != nil {
		PrintError(err.Error())
		return
	}

	res, err := sample.FromPoints(points, img, field, opts)
	if err != nil {
		fail("Error extracting point samples", err)
		return
	}
	printCounts(res)
	path, err := saveSamples(res, baseName(img)+"_"+baseName(points))
	if err != nil {
		fail("Error saving samples", err)
		return
	}
	succeed(fmt.Sprintf("%d point samples extracted: %s", res.Len(), path))
}
