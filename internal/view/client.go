package view

import (
	"errors"
	"fmt"
	"unicode/utf8"

	termbox "github.com/nsf/termbox-go"

	"github.com/borkshop/markerfield/internal/point"
)

// ErrStop may be returned by a client method to mean "we're done, break run loop".
var ErrStop = errors.New("client stop")

// KeyEvent is a key press delivered to a Client.
type KeyEvent struct {
	Ch  rune
	Key termbox.Key
	Mod termbox.Modifier
}

// Client is the interface exposed to the user of View; its various methods are
// called in a loop that provides terminal orchestration.
type Client interface {
	// Tick advances the client by one step of the View's ticker.
	Tick() error

	// HandleKey handles a key press, returning ErrStop to end the run.
	HandleKey(KeyEvent) error

	// Render renders the client into a grid sized to the terminal.
	Render(Grid) error

	Close() error
}

// Renderable is an element that may be placed and rendered within a grid; if
// its Render method is called, it will get a grid of at least the needed
// RenderSize.
type Renderable interface {
	RenderSize() (wanted, needed point.Point)
	Render(Grid)
}

// RenderString constructs a static string Renderable; either the entire string
// is rendered, or not; no truncation is supported.
func RenderString(mess string, args ...interface{}) Renderable {
	if len(args) > 0 {
		mess = fmt.Sprintf(mess, args...)
	}
	return renderStringT(mess)
}

type renderStringT string

func (rs renderStringT) RenderSize() (wanted, needed point.Point) {
	needed.X = utf8.RuneCountInString(string(rs))
	needed.Y = 1
	return needed, needed
}

func (rs renderStringT) Render(g Grid) {
	g.WriteString(0, 0, string(rs))
}
