package export

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"

	"golang.org/x/image/draw"
	"go.uber.org/zap"

	"github.com/Faultbox/printgeo/internal/logger"
	"github.com/Faultbox/printgeo/internal/terrain"
)

// DefaultPreviewSize is the preview width in pixels.
const DefaultPreviewSize = 512

// HeightImage renders the grid one pixel per cell with north up. The lowest
// cell is black and the highest white; a flat grid is mid gray.
func HeightImage(grid *terrain.HeightGrid) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, grid.GridX, grid.GridY))
	lo, hi := grid.MinMax()
	span := hi - lo
	for iy := range grid.GridY {
		for ix := range grid.GridX {
			v := uint8(128)
			if span > 0 {
				v = uint8((grid.At(ix, iy)-lo)/span*255 + 0.5)
			}
			img.SetGray(ix, grid.GridY-1-iy, color.Gray{Y: v})
		}
	}
	return img
}

// Preview renders the grid scaled to width pixels, keeping the aspect
// ratio of the grid.
func Preview(grid *terrain.HeightGrid, width int) *image.Gray {
	src := HeightImage(grid)
	if width <= 0 {
		width = DefaultPreviewSize
	}
	height := max(1, width*grid.GridY/max(grid.GridX, 1))
	dst := image.NewGray(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}

// SavePreview writes a PNG heightmap preview of grid to path.
func SavePreview(path string, grid *terrain.HeightGrid, width int) error {
	img := Preview(grid, width)
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return err
	}

	b := img.Bounds()
	logger.Named("export").Info("preview written",
		zap.String("path", path),
		zap.Int("width", b.Dx()),
		zap.Int("height", b.Dy()))
	return nil
}
