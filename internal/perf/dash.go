package perf

import (
	"fmt"
	"sort"
	"time"
	"unicode/utf8"

	"github.com/borkshop/markerfield/internal/point"
	"github.com/borkshop/markerfield/internal/view"
)

// Dash renders a one line perf summary: a profiling status glyph, the round
// and its time, then any notes sorted by name.
type Dash struct {
	*Perf
	notes map[string]string
	parts []string
}

// HandleKey toggles profiling on '*'.
func (da Dash) HandleKey(k view.KeyEvent) bool {
	if k.Ch != '*' {
		return false
	}
	da.Perf.Toggle()
	return true
}

// Note sets the note shown under name.
func (da *Dash) Note(name, format string, args ...interface{}) {
	if da.notes == nil {
		da.notes = make(map[string]string)
	}
	da.notes[name] = fmt.Sprintf(format, args...)
}

// RenderSize lays out the summary. Only the status and round are needed;
// wanted also counts every note.
func (da *Dash) RenderSize() (wanted, needed point.Point) {
	mem := da.Perf.MemStats()
	da.Note("heap", "%v/%v", siBytes(mem.HeapAlloc), mem.HeapObjects)
	da.Note("Δmax", "%v", da.Perf.Max().Round(time.Microsecond))

	head := fmt.Sprintf("t=%d Δt=%v", da.Perf.Round(), da.Perf.Last().Round(time.Microsecond))
	notes := make([]string, 0, len(da.notes))
	for name, note := range da.notes {
		notes = append(notes, name+"="+note)
	}
	sort.Strings(notes)
	da.parts = append(append(da.parts[:0], head), notes...)

	needed = point.Pt(2+utf8.RuneCountInString(head), 1)
	wanted = needed
	for _, note := range notes {
		wanted.X += 1 + utf8.RuneCountInString(note)
	}
	return wanted, needed
}

// Render draws the parts laid out by RenderSize, stopping at the first one
// that would overflow g.
func (da *Dash) Render(g view.Grid) {
	g.Set(0, 0, da.status(), 0, 0)
	x := 1
	for _, part := range da.parts {
		if x+1+utf8.RuneCountInString(part) > g.Size.X {
			return
		}
		x += 1 + g.WriteString(x+1, 0, part)
	}
}

func (da Dash) status() rune {
	should, are := da.Perf.Running()
	switch {
	case da.Perf.Err() != nil:
		return '■'
	case are:
		return '◉'
	case should:
		return '◎'
	}
	return '○'
}

var siUnits = []string{"KiB", "MiB", "GiB"}

func siBytes(n uint64) string {
	if n < 1024 {
		return fmt.Sprintf("%vB", n)
	}
	v, unit := float64(n)/1024, siUnits[0]
	for _, u := range siUnits[1:] {
		if v < 1024 {
			break
		}
		v, unit = v/1024, u
	}
	return fmt.Sprintf("%.1f%s", v, unit)
}
