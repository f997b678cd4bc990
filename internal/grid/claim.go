package grid

import "github.com/borkshop/markerfield/internal/point"

// ResolveClaims assigns every marker to the nearest agent that both scanned
// it and holds it within range. Agents scan in priority order (see Agents)
// and only take a marker from a strictly farther claimant, so an earlier
// agent keeps a marker on an exact tie. Each agent only looks at the square
// of cells within Window of its truncated position, whatever its radius.
//
// Once all agents have scanned, one pass over the field rebuilds every
// agent's claimed list.
func (g *Grid) ResolveClaims() {
	for _, c := range g.classes {
		for _, a := range c.members {
			g.scan(a)
		}
	}
	g.compileClaims()
}

func (g *Grid) scan(a *Agent) {
	x, y := a.pos.Trunc()
	win := point.Pt(x, y).Square(g.Window).Intersect(g.bounds)
	if win.Empty() {
		return
	}
	for cy := win.TopLeft.Y; cy <= win.BottomRight.Y; cy++ {
		row := cy * g.width
		for cx := win.TopLeft.X; cx <= win.BottomRight.X; cx++ {
			m := g.cells[row+cx]
			if m == nil {
				continue
			}
			if d := a.pos.Dist(m.pos); d <= a.radius && d < m.claimDist {
				m.claimDist = d
				m.claimedBy = a.id
			}
		}
	}
}

func (g *Grid) compileClaims() {
	g.claimed = 0
	for _, m := range g.markers {
		if a := g.Agent(m.claimedBy); a != nil {
			a.claimed = append(a.claimed, m)
			g.claimed++
		}
	}
}
