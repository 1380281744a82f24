package viz

import (
	"math"
	"strings"

	"github.com/YannickKae/Interest-Rate-Simulation/internal/model"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const blank = 0x2800

type Canvas struct {
	Width, Height int
	Grid          [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
	}
	c.Clear()
	return c
}

// Set lights the dot at (x, y) in sub-pixel coordinates. The canvas is
// (Width*2) x (Height*4) sub-pixels; (0, 0) is top left.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}

	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}

	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = blank
		}
	}
}

// DrawLine draws a line using Bresenham's algorithm
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

// PathsPlot draws up to maxPaths trajectories of ens on a w x h character
// canvas, scaled to the range of the drawn paths.
func PathsPlot(ens *model.Ensemble, w, h, maxPaths int) string {
	n := ens.NumPaths()
	if maxPaths > 0 && n > maxPaths {
		n = maxPaths
	}
	c := NewCanvas(w, h)
	if n == 0 || ens.Grid.Len() < 2 {
		return c.String()
	}

	lo, hi := math.Inf(1), math.Inf(-1)
	for p := 0; p < n; p++ {
		for _, v := range ens.Paths[p] {
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
	}
	if hi == lo {
		hi = lo + 1
	}

	pw, ph := w*2-1, h*4-1
	last := float64(ens.Grid.Len() - 1)
	px := func(i int) int { return int(math.Round(float64(i) / last * float64(pw))) }
	py := func(v float64) int { return int(math.Round((hi - v) / (hi - lo) * float64(ph))) }

	for p := 0; p < n; p++ {
		path := ens.Paths[p]
		for i := 1; i < len(path); i++ {
			c.DrawLine(px(i-1), py(path[i-1]), px(i), py(path[i]))
		}
	}
	return c.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
