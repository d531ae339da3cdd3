package seamcarve

import (
	"image"
	"image/color"

	"github.com/esimov/seamcarve/imop"
	"github.com/esimov/seamcarve/utils"
	"github.com/pkg/errors"
)

// Carver is a seam carving session. It keeps the original grid untouched and
// carves a working copy of it, recording every removed seam.
type Carver struct {
	original *Grid
	resized  *Grid
	seams    []Seam
	// removed holds the seams projected back to the original image columns.
	removed   []Seam
	state     searchState
	seamColor color.NRGBA
	blend     *imop.Blend
}

// DefaultSeamColor is the color used to highlight the removed seams.
var DefaultSeamColor = color.NRGBA{R: 0xff, A: 0xff}

// NewCarver creates a new session from an RGBA byte sequence.
func NewCarver(pix []uint8, width, height int) (*Carver, error) {
	g, err := NewGrid(pix, width, height)
	if err != nil {
		return nil, err
	}
	return NewCarverFromGrid(g), nil
}

// NewCarverFromImage creates a new session from any image type.
func NewCarverFromImage(img image.Image) (*Carver, error) {
	g, err := NewGridFromImage(img)
	if err != nil {
		return nil, err
	}
	return NewCarverFromGrid(g), nil
}

// NewCarverFromGrid creates a new session on top of g. The grid is owned by the
// session from now on and must not be modified by the caller.
func NewCarverFromGrid(g *Grid) *Carver {
	return &Carver{
		original:  g,
		resized:   g.Clone(),
		seamColor: DefaultSeamColor,
	}
}

// Width returns the width of the carved image.
func (c *Carver) Width() int { return c.resized.width }

// Height returns the height of the carved image.
func (c *Carver) Height() int { return c.resized.height }

// Original returns the grid the session was created from.
func (c *Carver) Original() *Grid { return c.original }

// SetSeamColor changes the color used for highlighting the seams.
func (c *Carver) SetSeamColor(col color.Color) {
	c.seamColor = color.NRGBAModel.Convert(col).(color.NRGBA)
}

// SetBlendMode mixes the seam color with the highlighted picture using one of
// the imop blend modes. An empty mode paints the seams in plain color.
func (c *Carver) SetBlendMode(mode string) error {
	if mode == "" {
		c.blend = nil
		return nil
	}
	blend := imop.NewBlend()
	if err := blend.Set(mode); err != nil {
		return errors.Wrap(err, "cannot set the seam blend mode")
	}
	c.blend = blend
	return nil
}

// Seams returns the seams removed by the last ResizeWidth call, in removal order.
// The column indexes refer to the grid as it was when the seam was found.
func (c *Carver) Seams() []Seam {
	seams := make([]Seam, len(c.seams))
	for i, s := range c.seams {
		seams[i] = append(Seam(nil), s...)
	}
	return seams
}

// ResizeWidth removes n vertical seams, starting over from the original image.
// Calling it twice with the same n yields the same result. A request of zero
// seams restores the original image.
func (c *Carver) ResizeWidth(n int) error {
	width := c.original.width
	if n < 0 || n >= width {
		return errors.Wrapf(ErrInvalidResize, "cannot remove %d seams from an image %d pixels wide", n, width)
	}

	c.seams = c.seams[:0]
	c.removed = c.removed[:0]
	c.resized = c.original.Clone()

	for i := 0; i < n; i++ {
		seam, err := c.state.find(c.resized)
		if err != nil {
			return err
		}
		c.seams = append(c.seams, seam)
		c.removed = append(c.removed, c.origins(seam))

		if err := c.resized.RemoveColumnPath(seam); err != nil {
			return err
		}
		if err := c.reenergize(seam); err != nil {
			return err
		}
	}
	return nil
}

// origins maps the seam columns to the original image columns.
func (c *Carver) origins(seam Seam) Seam {
	orig := make(Seam, len(seam))
	for row, col := range seam {
		orig[row] = c.resized.pixels[c.resized.index(col, row)].origin
	}
	return orig
}

// reenergize recomputes the energy of the pixels adjacent to the removed seam.
// A seam removed from the last column points outside the narrowed grid, so the
// column is clamped to the new bounds.
func (c *Carver) reenergize(seam Seam) error {
	g := c.resized
	for row, col := range seam {
		col = utils.Min(col, g.width-1)
		if col > 0 {
			if err := g.RecomputeEnergyAt(col-1, row); err != nil {
				return err
			}
		}
		if col < g.width-1 {
			if err := g.RecomputeEnergyAt(col+1, row); err != nil {
				return err
			}
		}
		if err := g.RecomputeEnergyAt(col, row); err != nil {
			return err
		}
	}
	return nil
}

// ResizedPicture returns the carved image.
func (c *Carver) ResizedPicture() *image.NRGBA {
	return c.resized.Image()
}

// ResizedEnergyPicture returns the energy map of the carved image.
func (c *Carver) ResizedEnergyPicture() *image.NRGBA {
	return energyPicture(c.resized)
}

// PathPicture returns the original image with all the removed seams highlighted.
func (c *Carver) PathPicture() *image.NRGBA {
	return c.drawSeams(c.original.Image())
}

// EnergyPathPicture returns the energy map of the original image with all the removed seams highlighted.
func (c *Carver) EnergyPathPicture() *image.NRGBA {
	return c.drawSeams(energyPicture(c.original))
}
