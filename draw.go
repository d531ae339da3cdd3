package seamcarve

import (
	"image"
	"image/color"
	"math"

	"github.com/esimov/seamcarve/imop"
	"github.com/esimov/seamcarve/utils"
	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/pkg/errors"
)

// energyPicture renders the grid energies as a grayscale image.
//
// Every pixel is first scaled against BorderEnergy. If the interior holds any
// energy at all, the interior pixels are then normalized by the highest interior
// energy, so the border keeps its fixed scaling.
func energyPicture(g *Grid) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, g.width, g.height))

	var maxVal float64
	for row := 0; row < g.height; row++ {
		for col := 0; col < g.width; col++ {
			e := g.pixels[g.index(col, row)].Energy
			if row != 0 && col != 0 && row != g.height-1 && col != g.width-1 {
				maxVal = utils.Max(maxVal, e)
			}
			setGray(img, col, row, e/BorderEnergy)
		}
	}
	// A flat image has no interior energy to normalize.
	if maxVal == 0 {
		return img
	}
	for row := 1; row < g.height-1; row++ {
		for col := 1; col < g.width-1; col++ {
			setGray(img, col, row, g.pixels[g.index(col, row)].Energy/maxVal)
		}
	}
	return img
}

func setGray(img *image.NRGBA, x, y int, v float64) {
	lum := uint8(math.Floor(utils.Clamp(v, 0, 1) * 255))
	img.SetNRGBA(x, y, color.NRGBA{R: lum, G: lum, B: lum, A: 0xff})
}

// drawSeams lays the removed seams over the picture in the seam color.
func (c *Carver) drawSeams(img *image.NRGBA) *image.NRGBA {
	layer := image.NewNRGBA(img.Bounds())
	for _, seam := range c.removed {
		for row, col := range seam {
			layer.SetNRGBA(col, row, c.seamColor)
		}
	}
	return overlay(layer, img, c.blend)
}

// overlay composes the layer over the backdrop with the source-over operator.
func overlay(layer, backdrop *image.NRGBA, blend *imop.Blend) *image.NRGBA {
	bmp := imop.NewBitmap(backdrop.Bounds())
	op := imop.InitOp()
	op.Draw(bmp, layer, backdrop, blend)

	return bmp.Img
}

// ParseColor converts a hex color string like "#ff0000" to a color.
func ParseColor(hex string) (color.NRGBA, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return color.NRGBA{}, errors.Wrapf(err, "invalid seam color %q", hex)
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 0xff}, nil
}
