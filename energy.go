package seamcarve

import "math"

// BorderEnergy is the fixed energy assigned to every pixel lying on the image border.
const BorderEnergy = 1000.0

// Energy computes the dual gradient energy of the pixel located at (col, row)
// without storing it. It fails with ErrEmptyGrid on an empty grid and with
// ErrOutOfRange when the pixel lies outside the grid.
func Energy(g *Grid, col, row int) (float64, error) {
	if err := g.checkBounds(col, row); err != nil {
		return 0, err
	}
	return energy(g, col, row), nil
}

// energy is Energy for coordinates already known to be inside the grid.
//
// Border pixels always receive BorderEnergy. For interior pixels the energy is
// the magnitude of the central differences of the red, green and blue channels
// of the four direct neighbours, plus the protection bias of the pixel.
// The alpha channel is not taken into account.
func energy(g *Grid, col, row int) float64 {
	if col == 0 || row == 0 || col == g.width-1 || row == g.height-1 {
		return BorderEnergy
	}
	var (
		left  = g.pixels[g.index(col-1, row)].Color
		right = g.pixels[g.index(col+1, row)].Color
		above = g.pixels[g.index(col, row-1)].Color
		below = g.pixels[g.index(col, row+1)].Color
	)
	rx := float64(right.R) - float64(left.R)
	gx := float64(right.G) - float64(left.G)
	bx := float64(right.B) - float64(left.B)

	ry := float64(below.R) - float64(above.R)
	gy := float64(below.G) - float64(above.G)
	by := float64(below.B) - float64(above.B)

	dx := rx*rx + gx*gx + bx*bx
	dy := ry*ry + gy*gy + by*by

	return math.Sqrt(dx+dy) + g.pixels[g.index(col, row)].bias
}
