package viz

import (
	"image"
	"image/color"
	"strings"
)

// Braille cells hold 2x4 dots:
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

// Canvas is a grid of Braille characters. Coordinates passed to Set and
// friends are dots: the canvas is Width*2 dots wide and Height*4 dots tall.
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

// Dots returns the canvas size in dots.
func (c *Canvas) Dots() (int, int) { return c.Width * 2, c.Height * 4 }

func (c *Canvas) cell(x, y int) (row, col int, ok bool) {
	if x < 0 || y < 0 {
		return 0, 0, false
	}
	col, row = x/2, y/4
	if col >= c.Width || row >= c.Height {
		return 0, 0, false
	}
	return row, col, true
}

// Set turns on the dot at (x, y). Dots off the canvas are ignored.
func (c *Canvas) Set(x, y int) {
	if row, col, ok := c.cell(x, y); ok {
		c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
	}
}

func (c *Canvas) Unset(x, y int) {
	if row, col, ok := c.cell(x, y); ok {
		c.Grid[row][col] &^= rune(pixelMap[y%4][x%2])
	}
}

// Get reports whether the dot at (x, y) is on.
func (c *Canvas) Get(x, y int) bool {
	row, col, ok := c.cell(x, y)
	return ok && c.Grid[row][col]&rune(pixelMap[y%4][x%2]) != 0
}

// Count returns the number of dots that are on.
func (c *Canvas) Count() int {
	n := 0
	for _, row := range c.Grid {
		for _, r := range row {
			for bits := r - blank; bits != 0; bits &= bits - 1 {
				n++
			}
		}
	}
	return n
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

// Dot draws a filled square of side 2r+1 centred on (x, y).
func (c *Canvas) Dot(x, y, r int) {
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			c.Set(x+dx, y+dy)
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

// Image rasterises the canvas with each character cell charW by charH pixels.
func (c *Canvas) Image(charW, charH int, fg, bg color.Color) *image.Paletted {
	img := image.NewPaletted(image.Rect(0, 0, c.Width*charW, c.Height*charH), color.Palette{bg, fg})
	dotW, dotH := charW/2, charH/4
	w, h := c.Dots()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if !c.Get(x, y) {
				continue
			}
			for py := 0; py < dotH; py++ {
				for px := 0; px < dotW; px++ {
					img.SetColorIndex(x*dotW+px, y*dotH+py, 1)
				}
			}
		}
	}
	return img
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
