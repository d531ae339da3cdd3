package seamcarve

import (
	"math"

	"github.com/pkg/errors"
)

// Seam holds the column of the removed pixel for every row, from top to bottom.
// Two consecutive entries never differ by more than one column.
type Seam []int

// searchState holds the per-pixel bookkeeping of a single seam search.
// It is only meaningful between a reset and the end of the following search.
type searchState struct {
	cost    []float64
	prev    []int
	visited []bool

	cur, next []int
}

// reset sizes the state to the grid and clears every entry.
func (s *searchState) reset(g *Grid) {
	n := g.width * g.height
	if cap(s.cost) < n {
		s.cost = make([]float64, n)
		s.prev = make([]int, n)
		s.visited = make([]bool, n)
	}
	s.cost = s.cost[:n]
	s.prev = s.prev[:n]
	s.visited = s.visited[:n]

	for i := range s.cost {
		s.cost[i] = 0
		s.prev[i] = -1
		s.visited[i] = false
	}
	s.cur = s.cur[:0]
	s.next = s.next[:0]
}

// FindVerticalSeam returns the top to bottom path of minimum total energy,
// moving at most one column to the left or right between rows.
func FindVerticalSeam(g *Grid) (Seam, error) {
	var s searchState
	return s.find(g)
}

// find runs a label-correcting search over the grid, processing one row at a
// time. The pixels discovered on the next row form the next frontier; a cheaper
// path found for an already discovered pixel overwrites its cost in place.
// Since a row is only expanded after the whole previous row has been relaxed,
// every cost is final when its pixel gets expanded.
func (s *searchState) find(g *Grid) (Seam, error) {
	if g == nil || g.width == 0 || g.height == 0 {
		return nil, errors.Wrap(ErrEmptyGrid, "cannot search a seam")
	}
	s.reset(g)

	// Seed the frontier with the whole first row.
	for col := 0; col < g.width; col++ {
		i := g.index(col, 0)
		s.cost[i] = g.pixels[i].Energy
		s.visited[i] = true
		s.cur = append(s.cur, i)
	}

	for row := 0; row < g.height-1; row++ {
		for _, i := range s.cur {
			col := i - row*g.width
			for c := col - 1; c <= col+1; c++ {
				if c < 0 || c >= g.width {
					continue
				}
				n := g.index(c, row+1)
				cost := s.cost[i] + g.pixels[n].Energy
				if !s.visited[n] {
					s.cost[n] = cost
					s.prev[n] = i
					s.visited[n] = true
					s.next = append(s.next, n)
				} else if cost < s.cost[n] {
					s.cost[n] = cost
					s.prev[n] = i
				}
			}
		}
		s.cur, s.next = s.next, s.cur[:0]
	}

	// The frontier now holds the last row. The first minimum found wins the ties.
	end, min := -1, math.Inf(1)
	for _, i := range s.cur {
		if s.cost[i] < min {
			end, min = i, s.cost[i]
		}
	}

	seam := make(Seam, g.height)
	for i, row := end, g.height-1; i >= 0; i, row = s.prev[i], row-1 {
		seam[row] = i - row*g.width
	}
	return seam, nil
}
