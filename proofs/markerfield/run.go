package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/ttacon/chalk"

	"github.com/borkshop/markerfield/internal/frame"
	"github.com/borkshop/markerfield/internal/grid"
	"github.com/borkshop/markerfield/internal/perf"
	"github.com/borkshop/markerfield/internal/scenario"
)

type classStat struct {
	id       string
	agents   int
	claimed  int
	idle     int
	goalDist float64 // mean
}

func summarize(g *grid.Grid) []classStat {
	stats := make([]classStat, 0, len(g.Classes()))
	for _, c := range g.Classes() {
		st := classStat{id: c.ID(), agents: len(c.Members())}
		for _, a := range c.Members() {
			st.claimed += len(a.Claimed())
			if a.Vel().IsZero() {
				st.idle++
			}
			st.goalDist += a.Pos().Dist(c.Goal())
		}
		if st.agents > 0 {
			st.goalDist /= float64(st.agents)
		}
		stats = append(stats, st)
	}
	return stats
}

func runAction(opts *options, ticks int, geojsonPath string, out io.Writer) error {
	if ticks < 0 {
		return errors.Errorf("invalid tick count %d", ticks)
	}
	inst, err := scenario.Build(opts.cfg, opts.seed)
	if err != nil {
		return err
	}
	defer inst.Teardown()
	opts.logger.Printf("scenario %s id=%v seed=%d", inst.Name, inst.ID, inst.Seed)

	var p perf.Perf
	p.Init(inst.Name, inst.Grid)
	if opts.profile {
		p.Start()
	}
	start := time.Now()
	for i := 0; i < ticks; i++ {
		p.Process()
	}
	elapsed := time.Since(start)
	if err := p.Close(); err != nil {
		warnWith(errors.Wrap(err, "profiling"))
	} else if opts.profile {
		opts.logger.Printf("profiles written to %s", p.OutputDir())
	}

	writeSummary(out, inst, &p, elapsed)

	if geojsonPath != "" {
		f := frame.Capture(inst.ID.String(), inst.Name, inst.Grid)
		data, err := frame.GeoJSON(f).MarshalJSON()
		if err != nil {
			return errors.Wrap(err, "encoding geojson")
		}
		if err := os.WriteFile(geojsonPath, data, 0o644); err != nil {
			return errors.Wrap(err, "writing geojson")
		}
		opts.logger.Printf("wrote tick %d to %s", f.Tick, geojsonPath)
	}
	return nil
}

func writeSummary(out io.Writer, inst *scenario.Instance, p *perf.Perf, elapsed time.Duration) {
	g := inst.Grid
	w, h := g.Size()
	fmt.Fprintf(out, "%s %s (%dx%d, %d markers, seed %d)\n",
		chalk.Bold.TextStyle("scenario"), inst.Name, w, h, len(g.Markers()), inst.Seed)
	fmt.Fprintf(out, "%s %d in %v (mean %v, max %v)\n",
		chalk.Bold.TextStyle("ticks"), g.Tick(), elapsed.Round(time.Millisecond),
		p.Mean().Round(time.Microsecond), p.Max().Round(time.Microsecond))
	fmt.Fprintf(out, "%s %d/%d markers\n",
		chalk.Bold.TextStyle("claimed"), g.Claimed(), len(g.Markers()))
	for _, st := range summarize(g) {
		color := chalk.Green
		if st.idle == st.agents && st.agents > 0 {
			color = chalk.Yellow
		}
		fmt.Fprintln(out, color.Color(fmt.Sprintf(
			"  %-8s agents=%-4d claimed=%-5d idle=%-4d goal-dist=%.2f",
			st.id, st.agents, st.claimed, st.idle, st.goalDist)))
	}
}
