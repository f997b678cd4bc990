package hud

import (
	"fmt"
	"unicode/utf8"

	"github.com/borkshop/markerfield/internal/moremath"
	"github.com/borkshop/markerfield/internal/point"
	"github.com/borkshop/markerfield/internal/view"
)

// Logs represents a renderable buffer of log messages.
type Logs struct {
	Buffer   []string
	Min, Max int
}

// Init initializes the log buffer and metadata, allocating the given capacity.
func (logs *Logs) Init(logCap int) {
	logs.Min = 1
	logs.Max = 5
	logs.Buffer = make([]string, 0, logCap)
}

// RenderSize returns the desired and necessary sizes for rendering.
func (logs Logs) RenderSize() (wanted, needed point.Point) {
	needed.X = 1
	needed.Y = moremath.MinInt(len(logs.Buffer), logs.Min)
	wanted.X = 1
	wanted.Y = moremath.MinInt(len(logs.Buffer), logs.Max)
	for i := range logs.Buffer {
		if n := utf8.RuneCountInString(logs.Buffer[i]); n > wanted.X {
			wanted.X = n
		}
	}
	if needed.Y > wanted.Y {
		needed.Y = wanted.Y
	}
	return wanted, needed
}

// Render renders the tail of the log buffer.
func (logs Logs) Render(g view.Grid) {
	off := moremath.MaxInt(0, len(logs.Buffer)-g.Size.Y)
	for i, y := off, 0; i < len(logs.Buffer); i, y = i+1, y+1 {
		g.WriteString(0, y, logs.Buffer[i])
	}
}

// Log formats and appends a log message to the buffer, discarding the oldest
// message if full.
func (logs *Logs) Log(mess string, args ...interface{}) {
	mess = fmt.Sprintf(mess, args...)
	if len(logs.Buffer) < cap(logs.Buffer) {
		logs.Buffer = append(logs.Buffer, mess)
	} else if len(logs.Buffer) > 0 {
		copy(logs.Buffer, logs.Buffer[1:])
		logs.Buffer[len(logs.Buffer)-1] = mess
	}
}

// Write implements io.Writer, logging each line written; it lets a log.Logger
// target the HUD.
func (logs *Logs) Write(p []byte) (int, error) {
	start := 0
	for i, b := range p {
		if b == '\n' {
			logs.Log("%s", p[start:i])
			start = i + 1
		}
	}
	if start < len(p) {
		logs.Log("%s", p[start:])
	}
	return len(p), nil
}
