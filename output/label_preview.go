package output

import (
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"

	"github.com/fogleman/gg"
	"github.com/forest-guardian/landcover-samples/internal/curation"
	"github.com/forest-guardian/landcover-samples/internal/log"
	"github.com/forest-guardian/landcover-samples/internal/properties"
	"github.com/forest-guardian/landcover-samples/internal/sample"
	"github.com/forest-guardian/landcover-samples/internal/utils"
	"go.uber.org/zap"
)

const logTag = "output:"

const (
	legendSpacing  = 20
	legendMinWidth = 320
)

type PreviewOptions struct {
	// Scale is the side in pixels of one grid cell. Zero means 1.
	Scale  int
	Legend bool
}

func classColor(label int32) color.RGBA {
	c := properties.ClassColor(label)
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 255}
}

// LabelPreview scatters the labels of res on a blank width x height grid and
// saves it as a PNG. Unlabelled cells are white.
func LabelPreview(res *sample.Result, width, height int, path string, opts PreviewOptions) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("invalid preview size %dx%d", width, height)
	}
	scale := max(opts.Scale, 1)
	grid := res.Reconstruct(width, height)

	img := image.NewRGBA(image.Rect(0, 0, width*scale, height*scale))
	for y := 0; y < height*scale; y++ {
		for x := 0; x < width*scale; x++ {
			img.Set(x, y, color.White)
		}
	}
	for row := 0; row < height; row++ {
		for col := 0; col < width; col++ {
			v := grid.At(row, col)
			if v == 0 {
				continue
			}
			c := classColor(int32(v))
			for dy := 0; dy < scale; dy++ {
				for dx := 0; dx < scale; dx++ {
					img.Set(col*scale+dx, row*scale+dy, c)
				}
			}
		}
	}

	counts := res.Counts()
	labels := utils.SortedKeys(counts)
	imgW, imgH := width*scale, height*scale
	totalW, totalH := imgW, imgH
	if opts.Legend {
		totalW = max(imgW, legendMinWidth)
		totalH = imgH + 10 + len(labels)*legendSpacing
	}

	dc := gg.NewContext(totalW, totalH)
	dc.SetRGB(1, 1, 1)
	dc.Clear()
	dc.DrawImage(img, 0, 0)

	if opts.Legend {
		legendX := 10
		for i, label := range labels {
			y := imgH + 10 + i*legendSpacing
			c := classColor(label)
			dc.SetRGB(float64(c.R)/255, float64(c.G)/255, float64(c.B)/255)
			dc.DrawRectangle(float64(legendX), float64(y), 15, 15)
			dc.Fill()

			dc.SetRGB(0, 0, 0)
			dc.DrawRectangle(float64(legendX), float64(y), 15, 15)
			dc.SetLineWidth(1)
			dc.Stroke()

			dc.DrawStringAnchored(fmt.Sprintf("%d %s (%d px)", label, curation.ClassName(label), counts[label]),
				float64(legendX+20), float64(y+7), 0, 0.5)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
		return fmt.Errorf("failed to create output folder: %w", err)
	}
	if err := dc.SavePNG(path); err != nil {
		return fmt.Errorf("failed to save image: %w", err)
	}
	log.Info(logTag+"label preview saved", zap.String("path", path), zap.Int("width", totalW), zap.Int("height", totalH), zap.Int("classes", len(labels)))
	return nil
}
