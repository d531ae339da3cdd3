package seamcarve

import (
	"image"

	"github.com/esimov/seamcarve/utils"
	"github.com/pkg/errors"
)

// Color holds the four 8-bit channels of a pixel as read from the source image.
type Color struct {
	R, G, B, A uint8
}

// Pixel is a single grid cell. Col and Row always reflect the current position
// of the pixel inside the grid, which changes after every removed seam.
type Pixel struct {
	Col    int
	Row    int
	Color  Color
	Energy float64

	// origin is the column this pixel had in the source image.
	origin int
	// bias is added on top of the gradient energy of interior pixels.
	bias float64
}

// Grid stores the image pixels in row-major order together with the raw RGBA
// buffer they were read from. Both are kept in sync on every mutation.
type Grid struct {
	width  int
	height int
	pixels []Pixel
	pix    []uint8
}

// NewGrid builds a grid from an RGBA byte sequence of 4 bytes per pixel,
// stored row by row from top to bottom.
//
// Every pixel color is read before any energy is computed, since the energy
// of a pixel depends on the colors of its neighbours.
func NewGrid(pix []uint8, width, height int) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, errors.Wrapf(ErrEmptyGrid, "cannot build a %dx%d grid", width, height)
	}
	if len(pix) != width*height*4 {
		return nil, errors.Wrapf(ErrInvalidBuffer, "got %d bytes for a %dx%d grid", len(pix), width, height)
	}

	g := &Grid{
		width:  width,
		height: height,
		pixels: make([]Pixel, width*height),
		pix:    make([]uint8, len(pix)),
	}
	copy(g.pix, pix)

	for row := 0; row < height; row++ {
		for col := 0; col < width; col++ {
			i := g.index(col, row)
			g.pixels[i] = Pixel{
				Col: col,
				Row: row,
				Color: Color{
					R: pix[i*4],
					G: pix[i*4+1],
					B: pix[i*4+2],
					A: pix[i*4+3],
				},
				origin: col,
			}
		}
	}
	for row := 0; row < height; row++ {
		for col := 0; col < width; col++ {
			g.pixels[g.index(col, row)].Energy = energy(g, col, row)
		}
	}
	return g, nil
}

// NewGridFromImage builds a grid from any image type.
func NewGridFromImage(img image.Image) (*Grid, error) {
	src := imgToNRGBA(img)
	dx, dy := src.Bounds().Dx(), src.Bounds().Dy()

	pix := make([]uint8, 0, dx*dy*4)
	for y := 0; y < dy; y++ {
		off := src.PixOffset(0, y)
		pix = append(pix, src.Pix[off:off+dx*4]...)
	}
	return NewGrid(pix, dx, dy)
}

// Width returns the current grid width.
func (g *Grid) Width() int { return g.width }

// Height returns the grid height.
func (g *Grid) Height() int { return g.height }

// Pix returns a copy of the RGBA buffer.
func (g *Grid) Pix() []uint8 {
	pix := make([]uint8, len(g.pix))
	copy(pix, g.pix)
	return pix
}

// Pixels returns a copy of the pixel records in row-major order.
func (g *Grid) Pixels() []Pixel {
	pixels := make([]Pixel, len(g.pixels))
	copy(pixels, g.pixels)
	return pixels
}

// Image returns the grid colors as a new image.
func (g *Grid) Image() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, g.width, g.height))
	copy(img.Pix, g.pix)
	return img
}

// EnergyAt returns the stored energy of the pixel located at (col, row).
func (g *Grid) EnergyAt(col, row int) (float64, error) {
	if err := g.checkBounds(col, row); err != nil {
		return 0, err
	}
	return g.pixels[g.index(col, row)].Energy, nil
}

// ColorAt returns the color of the pixel located at (col, row).
func (g *Grid) ColorAt(col, row int) (Color, error) {
	if err := g.checkBounds(col, row); err != nil {
		return Color{}, err
	}
	return g.pixels[g.index(col, row)].Color, nil
}

// RecomputeEnergyAt evaluates the energy of a single pixel again and stores it.
func (g *Grid) RecomputeEnergyAt(col, row int) error {
	if err := g.checkBounds(col, row); err != nil {
		return err
	}
	g.pixels[g.index(col, row)].Energy = energy(g, col, row)
	return nil
}

// RemoveColumnPath removes one pixel per row, at the column given by the seam,
// and shifts the remaining pixels of that row to the left. The grid becomes one
// column narrower. The seam must be connected, moving at most one column
// between rows. It is validated upfront, so on error the grid is left untouched.
func (g *Grid) RemoveColumnPath(seam Seam) error {
	if g == nil || g.width == 0 || g.height == 0 {
		return ErrEmptyGrid
	}
	if len(seam) != g.height {
		return errors.Wrapf(ErrInvalidSeam, "got %d entries for height %d", len(seam), g.height)
	}
	for row, col := range seam {
		if col < 0 || col >= g.width {
			return errors.Wrapf(ErrOutOfRange, "seam column %d at row %d, width %d", col, row, g.width)
		}
	}
	for row := 1; row < len(seam); row++ {
		if utils.Abs(seam[row]-seam[row-1]) > 1 {
			return errors.Wrapf(ErrInvalidSeam, "seam jumps from column %d to %d at row %d", seam[row-1], seam[row], row)
		}
	}

	// Compact in place: every pixel moves to the left by the number of
	// pixels removed before it in the row-major order.
	newWidth := g.width - 1
	dst := 0
	for row := 0; row < g.height; row++ {
		for col := 0; col < g.width; col++ {
			if col == seam[row] {
				continue
			}
			src := g.index(col, row)
			p := g.pixels[src]
			p.Col = dst - row*newWidth
			g.pixels[dst] = p
			copy(g.pix[dst*4:dst*4+4], g.pix[src*4:src*4+4])
			dst++
		}
	}
	g.width = newWidth
	g.pixels = g.pixels[:dst]
	g.pix = g.pix[:dst*4]

	return nil
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	c := &Grid{
		width:  g.width,
		height: g.height,
		pixels: make([]Pixel, len(g.pixels)),
		pix:    make([]uint8, len(g.pix)),
	}
	copy(c.pixels, g.pixels)
	copy(c.pix, g.pix)

	return c
}

// ProtectRect raises the energy of the interior pixels inside rect by BorderEnergy,
// which keeps the seams away from that area whenever an alternative path exists.
func (g *Grid) ProtectRect(rect image.Rectangle) {
	rect = rect.Intersect(image.Rect(0, 0, g.width, g.height))
	for row := rect.Min.Y; row < rect.Max.Y; row++ {
		for col := rect.Min.X; col < rect.Max.X; col++ {
			g.protect(col, row)
		}
	}
}

// Protect raises the energy of every interior pixel where the mask is bright.
// The mask is expected to have the same size as the grid.
func (g *Grid) Protect(mask *image.NRGBA) error {
	b := mask.Bounds()
	if b.Dx() != g.width || b.Dy() != g.height {
		return errors.Wrapf(ErrOutOfRange, "mask size %dx%d differs from grid size %dx%d",
			b.Dx(), b.Dy(), g.width, g.height)
	}
	bw := dither(mask)
	for row := 0; row < g.height; row++ {
		for col := 0; col < g.width; col++ {
			if bw.NRGBAAt(b.Min.X+col, b.Min.Y+row).A != 0 {
				g.protect(col, row)
			}
		}
	}
	return nil
}

func (g *Grid) protect(col, row int) {
	i := g.index(col, row)
	if g.pixels[i].bias == 0 {
		g.pixels[i].bias = BorderEnergy
		g.pixels[i].Energy = energy(g, col, row)
	}
}

func (g *Grid) checkBounds(col, row int) error {
	if g == nil || g.width == 0 || g.height == 0 {
		return ErrEmptyGrid
	}
	if col < 0 || col >= g.width || row < 0 || row >= g.height {
		return errors.Wrapf(ErrOutOfRange, "(%d, %d) outside %dx%d", col, row, g.width, g.height)
	}
	return nil
}

// index returns the position of the pixel at (col, row) in the row-major storage.
func (g *Grid) index(col, row int) int {
	return row*g.width + col
}
