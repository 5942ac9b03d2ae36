package output

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/forest-guardian/landcover-samples/internal/sample"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, path string) image.Image {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	return img
}

func rgba(c color.Color) color.RGBA {
	r, g, b, a := c.RGBA()
	return color.RGBA{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8), uint8(a >> 8)}
}

func TestLabelPreview(t *testing.T) {
	res := &sample.Result{
		Y:      []int32{12, 25},
		Coords: sample.Coords{Rows: []int{0, 1}, Cols: []int{2, 0}},
	}
	path := filepath.Join(t.TempDir(), "previews", "labels.png")
	require.NoError(t, LabelPreview(res, 3, 2, path, PreviewOptions{Scale: 2}))

	img := decode(t, path)
	assert.Equal(t, image.Rect(0, 0, 6, 4), img.Bounds())
	assert.Equal(t, classColor(12), rgba(img.At(4, 0)))
	assert.Equal(t, classColor(12), rgba(img.At(5, 1)))
	assert.Equal(t, classColor(25), rgba(img.At(0, 2)))
	assert.Equal(t, color.RGBA{255, 255, 255, 255}, rgba(img.At(0, 0)))
	assert.Equal(t, color.RGBA{255, 255, 255, 255}, rgba(img.At(3, 3)))
}

func TestLabelPreviewLegend(t *testing.T) {
	res := &sample.Result{
		Y:      []int32{12, 25, 12},
		Coords: sample.Coords{Rows: []int{0, 1, 1}, Cols: []int{2, 0, 1}},
	}
	path := filepath.Join(t.TempDir(), "labels.png")
	require.NoError(t, LabelPreview(res, 3, 2, path, PreviewOptions{Legend: true}))

	img := decode(t, path)
	assert.Equal(t, legendMinWidth, img.Bounds().Dx())
	assert.Equal(t, 2+10+2*legendSpacing, img.Bounds().Dy())
}

func TestLabelPreviewInvalidSize(t *testing.T) {
	err := LabelPreview(&sample.Result{}, 0, 2, filepath.Join(t.TempDir(), "x.png"), PreviewOptions{})
	assert.Error(t, err)
}
