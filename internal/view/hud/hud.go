// Package hud provides an opinionated terminal layout: a world grid centered
// on screen, header rows above it with the log tail beneath them, and footer
// rows at the bottom.
package hud

import (
	"github.com/borkshop/markerfield/internal/moremath"
	"github.com/borkshop/markerfield/internal/point"
	"github.com/borkshop/markerfield/internal/view"
)

// HUD renders a World grid overlaid by header, log and footer elements.
type HUD struct {
	World view.Grid
	Logs  Logs

	header []part
	footer []part
}

type part struct {
	ren   view.Renderable
	right bool
}

// HeaderF adds a static string part to the header; a leading ">" aligns it
// right.
func (hud *HUD) HeaderF(mess string, args ...interface{}) {
	right := len(mess) > 0 && mess[0] == '>'
	if right {
		mess = mess[1:]
	}
	hud.header = append(hud.header, part{view.RenderString(mess, args...), right})
}

// AddFooter adds a Renderable to the footer, aligned left or right.
func (hud *HUD) AddFooter(ren view.Renderable, right bool) {
	hud.footer = append(hud.footer, part{ren, right})
}

// Render the HUD into the given grid. Each left part takes the next row from
// the top (or bottom, for the footer); right parts share rows with the left
// ones, when there's room, or take rows of their own.
func (hud HUD) Render(g view.Grid) {
	g.Copy(hud.World)

	top := placeRows(g, hud.header, 0, 1)
	if len(hud.Logs.Buffer) > 0 && top < g.Size.Y {
		wanted, needed := hud.Logs.RenderSize()
		room := g.Size.Y - top
		if needed.Y <= room {
			n := moremath.MinInt(wanted.Y, room)
			sub := view.MakeGrid(point.Pt(g.Size.X, n))
			hud.Logs.Render(sub)
			blit(g, sub, 0, top)
		}
	}
	placeRows(g, hud.footer, g.Size.Y-1, -1)
}

// placeRows renders parts one per row starting at row y and moving by dy,
// returning the next free row.
func placeRows(g view.Grid, parts []part, y, dy int) int {
	var lused, rused []int
	rowOf := func(i int) int { return y + i*dy }
	fits := func(i, w int) bool {
		if lused[i] > 0 || rused[i] > 0 {
			w++
		}
		return lused[i]+rused[i]+w <= g.Size.X
	}
	for _, p := range parts {
		wanted, needed := p.ren.RenderSize()
		row, w := -1, 0
		for i := 0; rowOf(i) >= 0 && rowOf(i) < g.Size.Y; i++ {
			if i >= len(lused) {
				lused = append(lused, 0)
				rused = append(rused, 0)
			}
			if !p.right && lused[i] > 0 {
				continue
			}
			if fits(i, wanted.X) {
				row, w = i, wanted.X
				break
			}
			if fits(i, needed.X) {
				row, w = i, needed.X
				break
			}
		}
		if row < 0 {
			continue
		}
		sub := view.MakeGrid(point.Pt(w, 1))
		p.ren.Render(sub)
		if p.right {
			if rused[row] > 0 {
				rused[row]++
			}
			rused[row] += w
			blit(g, sub, g.Size.X-rused[row], rowOf(row))
		} else {
			lused[row] = w
			blit(g, sub, 0, rowOf(row))
		}
	}
	return rowOf(len(lused))
}

// blit copies src into g at x, y, clipped; cells with no rune leave g as is.
func blit(g, src view.Grid, x, y int) {
	for sy := 0; sy < src.Size.Y; sy++ {
		for sx := 0; sx < src.Size.X; sx++ {
			if c := src.Get(sx, sy); c.Ch != 0 && g.Contains(x+sx, y+sy) {
				g.Set(x+sx, y+sy, c.Ch, c.Fg, c.Bg)
			}
		}
	}
}
