// Package frame captures read-only snapshots of a grid for renderers that do
// not share the grid's goroutine: the viz server and GeoJSON dumps.
package frame

import (
	"fmt"
	"image/color"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/borkshop/markerfield/internal/grid"
)

// Frame is a snapshot of one grid tick.
type Frame struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Tick    int      `json:"tick"`
	Width   int      `json:"width"`
	Height  int      `json:"height"`
	Debug   bool     `json:"debug"`
	Claimed int      `json:"claimed"`
	Markers []Marker `json:"markers"`
	Agents  []Agent  `json:"agents"`
}

// Marker is a marker's cell, color and claimant.
type Marker struct {
	X     int    `json:"x"`
	Y     int    `json:"y"`
	Color string `json:"color"`
	Agent int    `json:"agent,omitempty"`
}

// Agent is an agent's kinematic state and claim count.
type Agent struct {
	ID      int     `json:"id"`
	Class   string  `json:"class"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	VX      float64 `json:"vx"`
	VY      float64 `json:"vy"`
	Radius  float64 `json:"radius"`
	Color   string  `json:"color"`
	Claimed int     `json:"claimed"`
}

// Capture snapshots g; id and name identify the scenario instance.
func Capture(id, name string, g *grid.Grid) Frame {
	w, h := g.Size()
	f := Frame{
		ID:      id,
		Name:    name,
		Tick:    g.Tick(),
		Width:   w,
		Height:  h,
		Debug:   grid.Debug(),
		Claimed: g.Claimed(),
		Markers: make([]Marker, 0, len(g.Markers())),
		Agents:  make([]Agent, 0, len(g.Agents())),
	}
	for _, m := range g.Markers() {
		c := m.Cell()
		f.Markers = append(f.Markers, Marker{
			X:     c.X,
			Y:     c.Y,
			Color: hex(m.Color()),
			Agent: int(m.ClaimedBy()),
		})
	}
	for _, a := range g.Agents() {
		f.Agents = append(f.Agents, Agent{
			ID:      int(a.ID()),
			Class:   a.Class().ID(),
			X:       a.Pos().X,
			Y:       a.Pos().Y,
			VX:      a.Vel().X,
			VY:      a.Vel().Y,
			Radius:  a.Radius(),
			Color:   hex(a.Class().Color()),
			Claimed: len(a.Claimed()),
		})
	}
	return f
}

// GeoJSON renders the frame as a feature collection in planar grid
// coordinates: one point per marker, one point per agent.
func GeoJSON(f Frame) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, m := range f.Markers {
		feat := geojson.NewFeature(orb.Point{float64(m.X), float64(m.Y)})
		feat.Properties["kind"] = "marker"
		feat.Properties["color"] = m.Color
		if m.Agent != 0 {
			feat.Properties["agent"] = m.Agent
		}
		fc.Append(feat)
	}
	for _, a := range f.Agents {
		feat := geojson.NewFeature(orb.Point{a.X, a.Y})
		feat.ID = a.ID
		feat.Properties["kind"] = "agent"
		feat.Properties["class"] = a.Class
		feat.Properties["color"] = a.Color
		feat.Properties["radius"] = a.Radius
		feat.Properties["claimed"] = a.Claimed
		fc.Append(feat)
	}
	fc.ExtraMembers = geojson.Properties{
		"name": f.Name,
		"tick": f.Tick,
	}
	return fc
}

func hex(c color.RGBA) string { return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B) }
