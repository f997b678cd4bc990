package main

import (
	"image/color"
	"io"
	"log"
	"math"
	"time"

	termbox "github.com/nsf/termbox-go"

	"github.com/borkshop/markerfield/internal/grid"
	"github.com/borkshop/markerfield/internal/perf"
	"github.com/borkshop/markerfield/internal/point"
	"github.com/borkshop/markerfield/internal/scenario"
	"github.com/borkshop/markerfield/internal/view"
	"github.com/borkshop/markerfield/internal/view/hud"
)

const (
	markerGlyph = '·'
	agentGlyph  = '●'
	ringGlyph   = '∘'
)

// termClient renders a scenario into the terminal, one cell per grid cell;
// it is the grid's Scene, so only draws range rings and the marker field
// while the grid asks for them.
type termClient struct {
	v      *view.View
	logger *log.Logger
	logs   hud.Logs
	perf   perf.Perf
	dash   perf.Dash

	cfgs []scenario.Config
	cur  int
	seed int64
	inst *scenario.Instance

	ranges    map[grid.AgentID]bool
	showField bool
	world     view.Grid
}

func newTermClient(v *view.View, cfg scenario.Config, seed int64, logOut io.Writer) (*termClient, error) {
	tc := &termClient{
		v:      v,
		seed:   seed,
		ranges: make(map[grid.AgentID]bool),
		cfgs:   []scenario.Config{cfg},
	}
	tc.logs.Init(100)
	tc.logger = log.New(io.MultiWriter(logOut, &tc.logs), "", 0)
	tc.perf.Init("term", nil)
	tc.dash.Perf = &tc.perf

	for _, name := range scenario.Names() {
		if name != cfg.Name {
			preset, _ := scenario.Lookup(name)
			tc.cfgs = append(tc.cfgs, preset)
		}
	}
	if err := tc.load(0); err != nil {
		return nil, err
	}
	return tc, nil
}

func (tc *termClient) load(i int) error {
	inst, err := scenario.Build(tc.cfgs[i], tc.seed)
	if err != nil {
		return err
	}
	if tc.inst != nil {
		tc.inst.Teardown()
	}
	tc.cur, tc.inst = i, inst
	tc.ranges = make(map[grid.AgentID]bool)
	tc.showField = grid.Debug()
	inst.Grid.Attach(tc)
	tc.perf.Proc = inst.Grid
	tc.logger.Printf("scenario %s seed=%d", inst.Name, inst.Seed)
	return nil
}

// Place is a no-op; agents are drawn from their positions at render time.
func (tc *termClient) Place(a *grid.Agent) {}

func (tc *termClient) ShowRange(a *grid.Agent, show bool) { tc.ranges[a.ID()] = show }

func (tc *termClient) ShowField(show bool) { tc.showField = show }

func (tc *termClient) Release() {
	tc.ranges = make(map[grid.AgentID]bool)
	tc.showField = false
}

func (tc *termClient) Tick() error {
	tc.perf.Process()
	return nil
}

func (tc *termClient) HandleKey(k view.KeyEvent) error {
	if tc.dash.HandleKey(k) {
		should, _ := tc.perf.Running()
		tc.logger.Printf("profiling=%v", should)
		return nil
	}
	switch {
	case k.Key == termbox.KeyEsc, k.Ch == 'q':
		return view.ErrStop
	case k.Key == termbox.KeySpace:
		tc.v.Paused = !tc.v.Paused
		tc.logger.Printf("paused=%v", tc.v.Paused)
	case k.Ch == '.':
		return tc.Tick()
	case k.Ch == 'd':
		tc.logger.Printf("debug=%v", grid.ToggleDebug())
	case k.Ch == 'n':
		return tc.load((tc.cur + 1) % len(tc.cfgs))
	}
	return nil
}

func (tc *termClient) Render(g view.Grid) error {
	tc.renderWorld()
	h := hud.HUD{World: tc.world, Logs: tc.logs}
	gr := tc.inst.Grid
	h.HeaderF("%s t=%d", tc.inst.Name, gr.Tick())
	h.HeaderF(">claimed=%d/%d", gr.Claimed(), len(gr.Markers()))
	if tc.v.Paused {
		h.HeaderF(">paused")
	}
	tc.dash.Note("agents", "%d", len(gr.Agents()))
	h.AddFooter(&tc.dash, true)
	h.AddFooter(view.RenderString("d:debug n:next space:pause .:step *:prof q:quit"), false)
	h.Render(g)
	return nil
}

func (tc *termClient) renderWorld() {
	gr := tc.inst.Grid
	w, h := gr.Size()
	if tc.world.Size != point.Pt(w, h) {
		tc.world = view.MakeGrid(point.Pt(w, h))
	} else {
		tc.world.Clear()
	}

	if tc.showField {
		for _, m := range gr.Markers() {
			c := m.Cell()
			tc.world.Set(c.X, c.Y, markerGlyph, termColor(m.Color()), 0)
		}
	}
	for _, a := range gr.Agents() {
		if !tc.ranges[a.ID()] {
			continue
		}
		fg := termColor(a.Class().Color())
		for _, pt := range ring(a.Pos().X, a.Pos().Y, a.Radius()) {
			if tc.world.Contains(pt.X, pt.Y) {
				tc.world.Merge(pt.X, pt.Y, ringGlyph, fg, 0)
			}
		}
	}
	for _, a := range gr.Agents() {
		x, y := a.Pos().Floor()
		if tc.world.Contains(x, y) {
			tc.world.Set(x, y, agentGlyph, termColor(a.Class().Color())|termbox.AttrBold, 0)
		}
	}
}

// ring returns the cells along a circle of radius r around x, y.
func ring(x, y, r float64) []point.Point {
	n := int(math.Ceil(2 * math.Pi * r))
	if n < 4 {
		n = 4
	}
	pts := make([]point.Point, 0, n)
	for i := 0; i < n; i++ {
		th := 2 * math.Pi * float64(i) / float64(n)
		pt := point.Pt(
			int(math.Floor(x+r*math.Cos(th))),
			int(math.Floor(y+r*math.Sin(th))),
		)
		if len(pts) == 0 || !pts[len(pts)-1].Equal(pt) {
			pts = append(pts, pt)
		}
	}
	return pts
}

// termColor maps a color onto the xterm 256 color cube.
func termColor(c color.RGBA) termbox.Attribute {
	q := func(v uint8) int { return (int(v)*5 + 127) / 255 }
	return termbox.Attribute(16+36*q(c.R)+6*q(c.G)+q(c.B)) + 1
}

func (tc *termClient) Close() error {
	tc.inst.Teardown()
	return tc.perf.Close()
}

func termAction(opts *options, tps int) error {
	v := &view.View{}
	if tps > 0 {
		v.Interval = time.Second / time.Duration(tps)
	}
	tc, err := newTermClient(v, opts.cfg, opts.seed, opts.logOut)
	if err != nil {
		return err
	}
	if opts.profile {
		tc.perf.Start()
	}
	return v.Run(tc)
}
