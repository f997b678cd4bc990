package view

import (
	"fmt"
	"unicode/utf8"

	termbox "github.com/nsf/termbox-go"

	"github.com/borkshop/markerfield/internal/point"
)

// Grid represents a sized buffer of terminal cells.
type Grid struct {
	Size point.Point
	Data []termbox.Cell
}

// MakeGrid makes a new Grid with the given size.
func MakeGrid(sz point.Point) Grid {
	g := Grid{Size: sz}
	g.Data = make([]termbox.Cell, sz.X*sz.Y)
	return g
}

// Resize update the grid size, growing Data capacity or truncating its length
// as needed; the cells are cleared.
func (g *Grid) Resize(sz point.Point) {
	g.Size = sz
	if n := sz.X * sz.Y; n > cap(g.Data) {
		g.Data = make([]termbox.Cell, n)
	} else {
		g.Data = g.Data[:n]
		g.Clear()
	}
}

// Clear zeros every cell.
func (g Grid) Clear() {
	for i := range g.Data {
		g.Data[i] = termbox.Cell{}
	}
}

// Contains returns true if x, y is a cell of the grid.
func (g Grid) Contains(x, y int) bool {
	return x >= 0 && y >= 0 && x < g.Size.X && y < g.Size.Y
}

// Get gets a cell in the grid.
func (g Grid) Get(x, y int) termbox.Cell {
	return g.Data[y*g.Size.X+x]
}

// Set sets a cell in the grid.
func (g Grid) Set(x, y int, ch rune, fg, bg termbox.Attribute) {
	g.Data[y*g.Size.X+x] = termbox.Cell{Ch: ch, Fg: fg, Bg: bg}
}

// Merge merges data into a cell in the grid; zero values leave the cell's
// existing data in place.
func (g Grid) Merge(x, y int, ch rune, fg, bg termbox.Attribute) {
	i := y*g.Size.X + x
	if ch != 0 {
		g.Data[i].Ch = ch
	}
	if fg != 0 {
		g.Data[i].Fg = fg
	}
	if bg != 0 {
		g.Data[i].Bg = bg
	}
}

// Copy copies another grid into this one, centered and clipped as necessary.
func (g Grid) Copy(og Grid) {
	off := g.Size.Sub(og.Size)
	off = point.Pt(off.X/2, off.Y/2)
	for y := 0; y < og.Size.Y; y++ {
		gy := y + off.Y
		if gy < 0 || gy >= g.Size.Y {
			continue
		}
		for x := 0; x < og.Size.X; x++ {
			if gx := x + off.X; gx >= 0 && gx < g.Size.X {
				g.Data[gy*g.Size.X+gx] = og.Data[y*og.Size.X+x]
			}
		}
	}
}

// WriteString writes a string into the grid at the given position, returning
// how many cells were affected.
func (g Grid) WriteString(x, y int, mess string, args ...interface{}) int {
	if len(args) > 0 {
		mess = fmt.Sprintf(mess, args...)
	}
	i := y*g.Size.X + x
	j := i
	for ; len(mess) > 0 && x < g.Size.X; x, j = x+1, j+1 {
		r, n := utf8.DecodeRuneInString(mess)
		mess = mess[n:]
		g.Data[j].Ch = r
	}
	return j - i
}

// WriteStringRTL is like WriteString except it goes Right-To-Left (in both the
// string and the grid).
func (g Grid) WriteStringRTL(x, y int, mess string, args ...interface{}) int {
	if len(args) > 0 {
		mess = fmt.Sprintf(mess, args...)
	}
	i := y*g.Size.X + x
	j := i
	for ; len(mess) > 0 && x >= 0; x, j = x-1, j-1 {
		r, n := utf8.DecodeLastRuneInString(mess)
		mess = mess[:len(mess)-n]
		g.Data[j].Ch = r
	}
	return i - j
}

// Lines returns a slice of row strings from the grid, filling in any
// zero runes with the given one.
func (g Grid) Lines(fillZero rune) []string {
	lines := make([]string, g.Size.Y)
	line := make([]rune, g.Size.X)
	for y, i := 0, 0; y < g.Size.Y; y++ {
		for x := 0; x < g.Size.X; x++ {
			if ch := g.Data[i].Ch; ch != 0 {
				line[x] = ch
			} else {
				line[x] = fillZero
			}
			i++
		}
		lines[y] = string(line)
	}
	return lines
}
