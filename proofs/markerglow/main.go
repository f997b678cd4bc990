// Command markerglow runs the marker claiming simulation in a window.
package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/ttacon/chalk"
	"github.com/urfave/cli"

	"github.com/borkshop/markerfield/internal/grid"
	"github.com/borkshop/markerfield/internal/palette"
	"github.com/borkshop/markerfield/internal/scenario"
)

const trailLen = 12

// game draws a scenario and is its grid's Scene: it keeps a short trail of
// every placed agent, and draws range rings and the marker field only while
// the grid shows them.
type game struct {
	logger *log.Logger
	scale  float64
	seed   int64
	names  []string
	cur    int
	inst   *scenario.Instance
	paused bool

	trails    map[grid.AgentID][]trailPoint
	ranges    map[grid.AgentID]bool
	showField bool
}

type trailPoint struct{ x, y float32 }

func (g *game) load(cfg scenario.Config) error {
	inst, err := scenario.Build(cfg, g.seed)
	if err != nil {
		return err
	}
	if g.inst != nil {
		g.inst.Teardown()
	}
	g.inst = inst
	g.trails = make(map[grid.AgentID][]trailPoint)
	g.ranges = make(map[grid.AgentID]bool)
	g.showField = grid.Debug()
	inst.Grid.Attach(g)
	w, h := inst.Grid.Size()
	ebiten.SetWindowSize(int(float64(w)*g.scale), int(float64(h)*g.scale))
	ebiten.SetWindowTitle("markerglow: " + inst.Name)
	g.logger.Printf("scenario %s id=%v seed=%d", inst.Name, inst.ID, inst.Seed)
	return nil
}

func (g *game) Place(a *grid.Agent) {
	p := a.Pos()
	tr := append(g.trails[a.ID()], trailPoint{float32(p.X), float32(p.Y)})
	if len(tr) > trailLen {
		tr = tr[len(tr)-trailLen:]
	}
	g.trails[a.ID()] = tr
}

func (g *game) ShowRange(a *grid.Agent, show bool) { g.ranges[a.ID()] = show }

func (g *game) ShowField(show bool) { g.showField = show }

func (g *game) Release() {
	g.trails = make(map[grid.AgentID][]trailPoint)
	g.ranges = make(map[grid.AgentID]bool)
	g.showField = false
}

func (g *game) Update() error {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyQ), inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		return ebiten.Termination
	case inpututil.IsKeyJustPressed(ebiten.KeyD):
		g.logger.Printf("debug=%v", grid.ToggleDebug())
	case inpututil.IsKeyJustPressed(ebiten.KeySpace):
		g.paused = !g.paused
	case inpututil.IsKeyJustPressed(ebiten.KeyN):
		g.cur = (g.cur + 1) % len(g.names)
		cfg, err := scenario.Lookup(g.names[g.cur])
		if err != nil {
			return err
		}
		return g.load(cfg)
	case inpututil.IsKeyJustPressed(ebiten.KeyPeriod):
		g.inst.Grid.Update()
		return nil
	}
	if !g.paused {
		g.inst.Grid.Update()
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	screen.Fill(palette.Asphalt)
	s := float32(g.scale)
	gr := g.inst.Grid

	if g.showField {
		for _, m := range gr.Markers() {
			c := m.Cell()
			vector.DrawFilledRect(screen, float32(c.X)*s-1, float32(c.Y)*s-1, 2, 2, m.Color(), false)
		}
	}
	for _, a := range gr.Agents() {
		col := a.Class().Color()
		tr := g.trails[a.ID()]
		for i := 1; i < len(tr); i++ {
			fade := col
			fade.A = uint8(0xff * i / len(tr))
			vector.StrokeLine(screen, tr[i-1].x*s, tr[i-1].y*s, tr[i].x*s, tr[i].y*s, 1, fade, true)
		}
		p := a.Pos()
		x, y := float32(p.X)*s, float32(p.Y)*s
		if g.ranges[a.ID()] {
			vector.StrokeCircle(screen, x, y, float32(a.Radius())*s, 1, col, true)
		}
		vector.DrawFilledCircle(screen, x, y, s*0.6, col, true)
	}

	state := ""
	if g.paused {
		state = " paused"
	}
	ebitenutil.DebugPrint(screen, fmt.Sprintf("%s t=%d claimed=%d/%d tps=%.0f%s\nd:debug n:next space:pause .:step q:quit",
		g.inst.Name, gr.Tick(), gr.Claimed(), len(gr.Markers()), ebiten.ActualTPS(), state))
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	w, h := g.inst.Grid.Size()
	return int(float64(w) * g.scale), int(float64(h) * g.scale)
}

func main() {
	app := cli.NewApp()
	app.Name = "markerglow"
	app.Usage = "watch agents claim a field of markers"
	app.Flags = []cli.Flag{
		cli.StringFlag{Name: "scenario", Value: "duel", Usage: "Preset name or path to a scenario .json file"},
		cli.Int64Flag{Name: "seed", Value: 0, Usage: "Random seed; 0 picks one from the clock"},
		cli.IntFlag{Name: "tps", Value: 30, Usage: "Number of ticks per second"},
		cli.Float64Flag{Name: "scale", Value: 8, Usage: "Pixels per grid cell"},
		cli.BoolFlag{Name: "debug", Usage: "Start with claim ranges and the marker field shown"},
	}
	app.Action = func(c *cli.Context) error {
		cfg, err := scenario.Lookup(c.String("scenario"))
		if err != nil {
			return err
		}
		g := &game{
			logger: log.New(os.Stderr, "", log.LstdFlags),
			scale:  c.Float64("scale"),
			seed:   c.Int64("seed"),
			names:  scenario.Names(),
		}
		if g.seed == 0 {
			g.seed = time.Now().UnixNano()
		}
		for i, name := range g.names {
			if name == cfg.Name {
				g.cur = i
			}
		}
		grid.SetDebug(c.Bool("debug"))
		if err := g.load(cfg); err != nil {
			return err
		}
		defer g.inst.Teardown()
		ebiten.SetTPS(c.Int("tps"))
		return ebiten.RunGame(g)
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, chalk.Red.Color("=== ❌ "+err.Error()))
		os.Exit(1)
	}
}
