package seamcarve

import (
	"image/color"
	"math"
	"testing"

	"github.com/esimov/seamcarve/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setEnergies overwrites the grid energies with the given matrix.
func setEnergies(t *testing.T, g *Grid, energies [][]float64) {
	t.Helper()
	require.Len(t, energies, g.height)

	for row, line := range energies {
		require.Len(t, line, g.width)
		for col, e := range line {
			g.pixels[g.index(col, row)].Energy = e
		}
	}
}

// seamCost sums the energies along the seam.
func seamCost(g *Grid, seam Seam) float64 {
	var sum float64
	for row, col := range seam {
		sum += g.pixels[g.index(col, row)].Energy
	}
	return sum
}

// minCost computes the cheapest seam cost with a plain dynamic programming pass.
func minCost(g *Grid) float64 {
	prev := make([]float64, g.width)
	for col := range prev {
		prev[col] = g.pixels[g.index(col, 0)].Energy
	}
	for row := 1; row < g.height; row++ {
		cur := make([]float64, g.width)
		for col := range cur {
			best := prev[col]
			if col > 0 {
				best = math.Min(best, prev[col-1])
			}
			if col < g.width-1 {
				best = math.Min(best, prev[col+1])
			}
			cur[col] = best + g.pixels[g.index(col, row)].Energy
		}
		prev = cur
	}
	min := math.Inf(1)
	for _, c := range prev {
		min = math.Min(min, c)
	}
	return min
}

func assertConnected(t *testing.T, g *Grid, seam Seam) {
	t.Helper()
	require.Len(t, seam, g.height)

	for row, col := range seam {
		assert.True(t, col >= 0 && col < g.width, "column %d out of range at row %d", col, row)
		if row > 0 {
			assert.LessOrEqual(t, utils.Abs(col-seam[row-1]), 1, "seam breaks at row %d", row)
		}
	}
}

func TestSearch_ThreeByThree(t *testing.T) {
	g, err := NewGridFromImage(newUniformImage(3, 3, color.NRGBA{A: 255}))
	require.NoError(t, err)

	setEnergies(t, g, [][]float64{
		{1000, 1000, 1000},
		{1000, 0, 1000},
		{1000, 1000, 1000},
	})

	seam, err := FindVerticalSeam(g)
	require.NoError(t, err)
	assert.Equal(t, Seam{0, 1, 0}, seam)
}

func TestSearch_HighEnergyPixel(t *testing.T) {
	img := newUniformImage(4, 4, color.NRGBA{A: 255})
	img.SetNRGBA(2, 2, color.NRGBA{R: 255, G: 255, B: 255, A: 255})

	g, err := NewGridFromImage(img)
	require.NoError(t, err)

	seam, err := FindVerticalSeam(g)
	require.NoError(t, err)
	assert.Equal(t, Seam{0, 1, 2, 1}, seam)
}

func TestSearch_FirstMinimumWinsTies(t *testing.T) {
	g, err := NewGridFromImage(newUniformImage(5, 4, color.NRGBA{R: 40, A: 255}))
	require.NoError(t, err)

	// Every column ends with the same cost; the leftmost one is kept.
	seam, err := FindVerticalSeam(g)
	require.NoError(t, err)
	assert.Equal(t, Seam{0, 1, 1, 0}, seam)
	assert.Equal(t, 2*BorderEnergy, seamCost(g, seam))
}

func TestSearch_SingleColumn(t *testing.T) {
	g, err := NewGridFromImage(newUniformImage(1, 5, color.NRGBA{A: 255}))
	require.NoError(t, err)

	seam, err := FindVerticalSeam(g)
	require.NoError(t, err)
	assert.Equal(t, Seam{0, 0, 0, 0, 0}, seam)
}

func TestSearch_SingleRow(t *testing.T) {
	g, err := NewGridFromImage(newUniformImage(4, 1, color.NRGBA{A: 255}))
	require.NoError(t, err)

	setEnergies(t, g, [][]float64{{7, 3, 3, 9}})

	seam, err := FindVerticalSeam(g)
	require.NoError(t, err)
	assert.Equal(t, Seam{1}, seam)
}

func TestSearch_CheaperPathOverwritesCost(t *testing.T) {
	g, err := NewGridFromImage(newUniformImage(3, 4, color.NRGBA{A: 255}))
	require.NoError(t, err)

	// Column 2 is reached first from column 1, then through the cheaper column 2.
	setEnergies(t, g, [][]float64{
		{5, 4, 1},
		{9, 9, 1},
		{9, 9, 1},
		{9, 9, 1},
	})

	seam, err := FindVerticalSeam(g)
	require.NoError(t, err)
	assert.Equal(t, Seam{2, 2, 2, 2}, seam)
}

func TestSearch_MinimalCost(t *testing.T) {
	for seed := int64(1); seed <= 10; seed++ {
		g, err := NewGridFromImage(newRandomImage(12, 9, seed))
		require.NoError(t, err)

		seam, err := FindVerticalSeam(g)
		require.NoError(t, err)

		assertConnected(t, g, seam)
		assert.InDelta(t, minCost(g), seamCost(g, seam), 1e-6, "seed %d", seed)
	}
}

func TestSearch_StateReuse(t *testing.T) {
	var s searchState

	big, err := NewGridFromImage(newRandomImage(10, 8, 42))
	require.NoError(t, err)
	small, err := NewGridFromImage(newRandomImage(4, 3, 7))
	require.NoError(t, err)

	want, err := FindVerticalSeam(small)
	require.NoError(t, err)

	_, err = s.find(big)
	require.NoError(t, err)
	got, err := s.find(small)
	require.NoError(t, err)

	assert.Equal(t, want, got)
}

func TestSearch_EmptyGrid(t *testing.T) {
	_, err := FindVerticalSeam(nil)
	assert.ErrorIs(t, err, ErrEmptyGrid)

	_, err = FindVerticalSeam(&Grid{})
	assert.ErrorIs(t, err, ErrEmptyGrid)
}
